package lead

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"akcayapi-web/internal/catalog"
	"akcayapi-web/internal/configurator"
)

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

func validQuote() Quote {
	return Quote{
		Name:     "Ayşe Yılmaz",
		Phone:    "0536 640 53 11",
		Products: []string{"cam-balkon"},
		Consent:  true,
	}
}

func TestValidateQuoteAccepts(t *testing.T) {
	cat := defaultCatalog(t)
	assert.True(t, ValidateQuote(cat, validQuote()).Empty())
}

func TestValidateQuoteRejects(t *testing.T) {
	cat := defaultCatalog(t)

	tests := []struct {
		name  string
		edit  func(*Quote)
		field string
	}{
		{name: "short name", edit: func(q *Quote) { q.Name = "A" }, field: "name"},
		{name: "digits in name", edit: func(q *Quote) { q.Name = "Ali 2" }, field: "name"},
		{name: "landline", edit: func(q *Quote) { q.Phone = "0212 880 15 07" }, field: "phone"},
		{name: "short phone", edit: func(q *Quote) { q.Phone = "0536 640" }, field: "phone"},
		{name: "bad email", edit: func(q *Quote) { q.Email = "ayse@" }, field: "email"},
		{name: "no products", edit: func(q *Quote) { q.Products = nil }, field: "products"},
		{name: "unknown product", edit: func(q *Quote) { q.Products = []string{"kapı"} }, field: "products"},
		{name: "no consent", edit: func(q *Quote) { q.Consent = false }, field: "consent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuote()
			tt.edit(&q)
			errs := ValidateQuote(cat, q)
			assert.Len(t, errs, 1)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestFormatPhone(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"0536":            "0536",
		"053664":          "0536 64",
		"05366405":        "0536 640 5",
		"05366405311":     "0536 640 53 11",
		"0536-640-53-11":  "0536 640 53 11",
		"053664053119999": "0536 640 53 11",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatPhone(in), "input %q", in)
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Ayşe Yılmaz", NormalizeName("  ayşe   YILMAZ "))
	assert.Equal(t, "İsmail Çelik", NormalizeName("ismail çelik"))
}

func TestComposeQuoteMessage(t *testing.T) {
	cat := defaultCatalog(t)
	q := validQuote()
	q.Products = []string{"dusakabin", "pvc-pencere"}

	msg := ComposeQuoteMessage(cat, q)
	lines := strings.Split(msg, "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "*Yeni Teklif Talebi*", lines[0])
	assert.Equal(t, "*Ad Soyad:* Ayşe Yılmaz", lines[1])
	assert.Equal(t, "*Ürünler:* PVC Pencere & Kapı, Duşakabin", lines[2])
	assert.Equal(t, "*Telefon:* 0536 640 53 11", lines[3])
	assert.Equal(t, "*Mülk Tipi:* Belirtilmedi", lines[4])
	assert.Equal(t, "*Adres:* Belirtilmedi", lines[5])
	assert.Equal(t, "*Mesaj:* Yok", lines[6])

	q.Email = "ayse@example.com"
	assert.Contains(t, ComposeQuoteMessage(cat, q), "*E-posta:* ayse@example.com")
}

func TestLeadConstructors(t *testing.T) {
	cat := defaultCatalog(t)
	now := time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)

	q := FromQuote(cat, validQuote(), now)
	assert.Equal(t, KindQuote, q.Kind)
	assert.Equal(t, "0536 640 53 11", q.Phone)
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, now, q.CreatedAt)

	st := configurator.New(cat)
	c := FromConfigurator(cat, st, "telegram", now)
	assert.Equal(t, KindConfigurator, c.Kind)
	assert.Equal(t, "telegram", c.Source)
	assert.Equal(t, configurator.ComposeMessage(cat, st), c.Summary)
	assert.NotEqual(t, q.ID, c.ID)
}
