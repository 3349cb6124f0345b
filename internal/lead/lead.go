package lead

import (
	"time"

	"github.com/google/uuid"

	"akcayapi-web/internal/catalog"
	"akcayapi-web/internal/configurator"
)

type Kind string

const (
	KindQuote        Kind = "quote"
	KindConfigurator Kind = "configurator"
)

func (k Kind) Title() string {
	switch k {
	case KindQuote:
		return "Teklif formu"
	case KindConfigurator:
		return "Duşakabin konfiguratörü"
	default:
		return string(k)
	}
}

type Lead struct {
	ID        string
	Kind      Kind
	Source    string
	Name      string
	Phone     string
	Summary   string
	CreatedAt time.Time
}

func FromQuote(cat *catalog.Catalog, q Quote, now time.Time) Lead {
	return Lead{
		ID:        uuid.NewString(),
		Kind:      KindQuote,
		Source:    "web",
		Name:      NormalizeName(q.Name),
		Phone:     FormatPhone(q.Phone),
		Summary:   ComposeQuoteMessage(cat, q),
		CreatedAt: now,
	}
}

// FromConfigurator records a configurator submission. The visitor finishes
// the conversation in the messaging app, so no contact details are known.
func FromConfigurator(cat *catalog.Catalog, st configurator.State, source string, now time.Time) Lead {
	return Lead{
		ID:        uuid.NewString(),
		Kind:      KindConfigurator,
		Source:    source,
		Summary:   configurator.ComposeMessage(cat, st),
		CreatedAt: now,
	}
}
