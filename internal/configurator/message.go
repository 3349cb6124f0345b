package configurator

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"akcayapi-web/internal/catalog"
)

const (
	NotSpecified = "Belirtilmedi"
	NoneSelected = "Yok"

	DefaultLinkBase = "https://wa.me"
)

// ComposeMessage renders the quote request sent to the business. Lookups
// that do not resolve fall back to placeholders; it never fails.
func ComposeMessage(cat *catalog.Catalog, st State) string {
	shape := NotSpecified
	if s, ok := cat.Shape(st.Shape); ok {
		shape = s.NameTR
	}

	glass := NotSpecified
	if g, ok := cat.Glass(st.GlassType); ok {
		glass = g.NameTR
	}
	if st.Thickness > 0 {
		glass += fmt.Sprintf(" (%dmm)", st.Thickness)
	}

	color := NotSpecified
	if p, ok := cat.Color(st.Color); ok {
		color = p.NameTR
	}

	coating := NoneSelected
	if h, ok := cat.Coating(st.Coating); ok {
		coating = h.Name
	}

	lines := []string{
		"🚿 *Duşakabin Teklif Talebi*",
		"📐 *Form:* " + shape,
		"🪟 *Cam:* " + glass,
		"🎨 *Profil:* " + color,
		"✨ *Kaplama:* " + coating,
		"📏 *Ölçü:* " + FormatDimensions(st.Width, st.Height),
		"📸 _Banyonun fotoğrafını göndererek daha detaylı fiyat alabilirsiniz._",
	}
	return strings.Join(lines, "\n")
}

func FormatDimensions(width, height float64) string {
	return formatNumber(width) + "cm x " + formatNumber(height) + "cm"
}

// EncodeMessage percent-encodes text for a URL query value the way browsers'
// encodeURIComponent does (spaces become %20, not +).
func EncodeMessage(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

func BuildLink(base, destination, encoded string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultLinkBase
	}
	return base + "/" + destination + "?text=" + encoded
}

// Link composes, encodes and wraps the message in one call.
func Link(cat *catalog.Catalog, st State, base, destination string) string {
	return BuildLink(base, destination, EncodeMessage(ComposeMessage(cat, st)))
}

type SummaryRow struct {
	Label string
	Value string
	Hex   string
}

// Summary lists the selections shown on the last step, with "-" for gaps.
func Summary(cat *catalog.Catalog, st State) []SummaryRow {
	shape := "-"
	if s, ok := cat.Shape(st.Shape); ok {
		shape = s.NameTR
	}

	glass := "-"
	if g, ok := cat.Glass(st.GlassType); ok {
		glass = g.NameTR
	}
	if st.Thickness > 0 {
		glass += fmt.Sprintf(" (%dmm)", st.Thickness)
	}

	color := SummaryRow{Label: "Profil", Value: "-"}
	if p, ok := cat.Color(st.Color); ok {
		color.Value = p.NameTR
		color.Hex = p.Hex
	}

	coating := NoneSelected
	if h, ok := cat.Coating(st.Coating); ok {
		coating = h.Name
	}

	return []SummaryRow{
		{Label: "Form", Value: shape},
		{Label: "Cam", Value: glass},
		color,
		{Label: "Kaplama", Value: coating},
		{Label: "Ölçü", Value: FormatDimensions(st.Width, st.Height)},
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
