package lead

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"akcayapi-web/internal/catalog"
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-ZğüşıöçĞÜŞİÖÇ\s'-]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

var turkishTitle = cases.Title(language.Turkish)

type Quote struct {
	Name         string
	Phone        string
	Email        string
	Address      string
	PropertyType string
	Message      string
	Products     []string
	Consent      bool
}

// FieldErrors maps form field names to the message shown next to them.
type FieldErrors map[string]string

func (e FieldErrors) Empty() bool { return len(e) == 0 }

func ValidateQuote(cat *catalog.Catalog, q Quote) FieldErrors {
	errs := FieldErrors{}

	if !ValidName(q.Name) {
		errs["name"] = "Lütfen geçerli bir ad soyad girin (en az 2 karakter)"
	}
	if !ValidPhone(q.Phone) {
		errs["phone"] = "Geçerli bir telefon numarası girin (05XX XXX XX XX)"
	}
	if !ValidEmail(q.Email) {
		errs["email"] = "Geçerli bir e-posta adresi girin"
	}

	known := 0
	for _, id := range q.Products {
		if _, ok := cat.CategoryByID(id); ok {
			known++
		}
	}
	if known == 0 {
		errs["products"] = "En az bir ürün seçmelisiniz"
	}

	if !q.Consent {
		errs["consent"] = "KVKK metnini onaylamanız gerekmektedir"
	}
	return errs
}

func ValidName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return len([]rune(trimmed)) >= 2 && nameRe.MatchString(trimmed)
}

func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return true
	}
	return emailRe.MatchString(email)
}

func PhoneDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func ValidPhone(raw string) bool {
	digits := PhoneDigits(raw)
	return len(digits) == 11 && strings.HasPrefix(digits, "05")
}

// FormatPhone groups digits as 05XX XXX XX XX while the number is typed.
func FormatPhone(raw string) string {
	d := PhoneDigits(raw)
	switch {
	case len(d) <= 4:
		return d
	case len(d) <= 7:
		return d[:4] + " " + d[4:]
	case len(d) <= 9:
		return d[:4] + " " + d[4:7] + " " + d[7:]
	default:
		end := len(d)
		if end > 11 {
			end = 11
		}
		return d[:4] + " " + d[4:7] + " " + d[7:9] + " " + d[9:end]
	}
}

func NormalizeName(name string) string {
	return turkishTitle.String(strings.Join(strings.Fields(name), " "))
}

func ProductLabels(cat *catalog.Catalog, ids []string) []string {
	var out []string
	for _, c := range cat.Categories() {
		for _, id := range ids {
			if c.ID == id {
				out = append(out, c.ShortName)
				break
			}
		}
	}
	return out
}

func ComposeQuoteMessage(cat *catalog.Catalog, q Quote) string {
	orDefault := func(v, fallback string) string {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
		return fallback
	}

	lines := []string{
		"*Yeni Teklif Talebi*",
		"*Ad Soyad:* " + NormalizeName(q.Name),
		"*Ürünler:* " + strings.Join(ProductLabels(cat, q.Products), ", "),
		"*Telefon:* " + FormatPhone(q.Phone),
		"*Mülk Tipi:* " + orDefault(q.PropertyType, "Belirtilmedi"),
		"*Adres:* " + orDefault(q.Address, "Belirtilmedi"),
		"*Mesaj:* " + orDefault(q.Message, "Yok"),
	}
	if email := strings.TrimSpace(q.Email); email != "" {
		lines = append(lines, "*E-posta:* "+email)
	}
	return strings.Join(lines, "\n")
}
