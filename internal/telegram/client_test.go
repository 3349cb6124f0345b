package telegram

import (
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitByBytesKeepsRunesWhole(t *testing.T) {
	text := strings.Repeat("ş", 10) // 2 bytes each
	parts := splitByBytes(text, 5)

	require.Len(t, parts, 5)
	for _, p := range parts {
		assert.True(t, utf8.ValidString(p))
		assert.LessOrEqual(t, len(p), 5)
	}
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestSplitByBytesShortText(t *testing.T) {
	assert.Equal(t, []string{"merhaba"}, splitByBytes("merhaba", maxMessageBytes))
}

func TestTruncateByBytes(t *testing.T) {
	assert.Equal(t, "çç", truncateByBytes("ççç", 5))
	assert.Equal(t, "abc", truncateByBytes("abc", 10))
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(Options{HTTPClient: http.DefaultClient})
	require.Error(t, err)

	_, err = New(Options{Token: "x"})
	require.Error(t, err)
}
