package notify

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"akcayapi-web/internal/lead"
)

type recordingSender struct {
	mu   sync.Mutex
	sent map[int64][]string
	fail map[int64]bool
}

func newRecordingSender() *recordingSender {
	return &recordingSender{sent: make(map[int64][]string), fail: make(map[int64]bool)}
}

func (s *recordingSender) SendText(chatID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[chatID] {
		return errors.New("blocked")
	}
	s.sent[chatID] = append(s.sent[chatID], text)
	return nil
}

func (s *recordingSender) messages(chatID int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent[chatID]...)
}

func testLead(kind lead.Kind, summary string) lead.Lead {
	return lead.Lead{
		ID:        summary,
		Kind:      kind,
		Source:    "web",
		Summary:   summary,
		CreatedAt: time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestDebouncedDigestPerKind(t *testing.T) {
	sender := newRecordingSender()
	n := New(Options{Sender: sender, ChatIDs: []int64{1, 2}, Debounce: 20 * time.Millisecond})

	n.Add(testLead(lead.KindQuote, "first quote"))
	n.Add(testLead(lead.KindQuote, "second quote"))
	n.Add(testLead(lead.KindConfigurator, "shower"))

	require.Eventually(t, func() bool {
		return len(sender.messages(1)) == 2 && len(sender.messages(2)) == 2
	}, time.Second, 5*time.Millisecond)

	msgs := sender.messages(1)
	sort.Strings(msgs)
	joined := strings.Join(msgs, "\n---\n")
	assert.Contains(t, joined, "🔔 2 yeni talep: Teklif formu")
	assert.Contains(t, joined, "first quote")
	assert.Contains(t, joined, "second quote")
	assert.Contains(t, joined, "🔔 Yeni talep: Duşakabin konfiguratörü")
}

func TestFlushSendsImmediately(t *testing.T) {
	sender := newRecordingSender()
	n := New(Options{Sender: sender, ChatIDs: []int64{7}, Debounce: time.Hour})

	n.Add(testLead(lead.KindQuote, "pending"))
	assert.Empty(t, sender.messages(7))

	n.Flush()
	require.Len(t, sender.messages(7), 1)
	assert.Contains(t, sender.messages(7)[0], "pending")

	n.Close()
	n.Add(testLead(lead.KindQuote, "after close"))
	n.Flush()
	assert.Len(t, sender.messages(7), 1)
}

func TestFailingChatDoesNotBlockOthers(t *testing.T) {
	sender := newRecordingSender()
	sender.fail[1] = true
	n := New(Options{Sender: sender, ChatIDs: []int64{1, 2}, Debounce: time.Hour})

	n.Add(testLead(lead.KindQuote, "hello"))
	n.Flush()

	assert.Empty(t, sender.messages(1))
	assert.Len(t, sender.messages(2), 1)
}

func TestDisabledNotifier(t *testing.T) {
	n := New(Options{ChatIDs: []int64{1}})
	assert.False(t, n.Enabled())
	n.Add(testLead(lead.KindQuote, "ignored"))
	n.Flush()
	n.Close()

	var nilNotifier *Notifier
	assert.False(t, nilNotifier.Enabled())
	nilNotifier.Add(testLead(lead.KindQuote, "ignored"))
}

func TestDigestFormat(t *testing.T) {
	loc := time.FixedZone("TRT", 3*60*60)
	text := Digest(lead.KindConfigurator, []lead.Lead{testLead(lead.KindConfigurator, "line one\nline two")}, loc)

	assert.Equal(t, "🔔 Yeni talep: Duşakabin konfiguratörü\n\n01.06.2026 12:30 · web\nline one\nline two", text)
}
