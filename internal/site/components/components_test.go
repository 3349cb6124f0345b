package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"akcayapi-web/internal/catalog"
	"akcayapi-web/internal/configurator"
	"akcayapi-web/internal/lead"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func TestConfiguratorGlassStep(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	st := configurator.New(cat)
	st = configurator.Reduce(cat, st, configurator.Select(configurator.StepShape, "square"))
	st = configurator.Advance(st)

	html := render(t, ConfiguratorPage(ConfiguratorView{Catalog: cat, State: st, Action: "/k"}))
	assert.Contains(t, html, "Adım 2 / 4")
	assert.Contains(t, html, "width: 50%")
	assert.Contains(t, html, "Premium")
	assert.NotContains(t, html, `name="mm"`, "no thickness picker before a glass is chosen")

	st = configurator.Reduce(cat, st, configurator.Select(configurator.StepGlass, "extra-clear"))
	html = render(t, ConfiguratorPage(ConfiguratorView{Catalog: cat, State: st, Action: "/k"}))
	assert.Contains(t, html, `value="8" class="chip selected"`)
	assert.Contains(t, html, `value="10" class="chip"`)
	assert.NotContains(t, html, `value="next" class="btn btn-primary" disabled`)
}

func TestConfiguratorLastStepShowsSummary(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	st := configurator.New(cat)
	st.Step = configurator.StepCoating
	st.Color = "matte-black"

	html := render(t, ConfiguratorPage(ConfiguratorView{Catalog: cat, State: st, Action: "/k"}))
	assert.Contains(t, html, "Seçimleriniz")
	assert.Contains(t, html, "background-color: #1a1a1a")
	assert.Contains(t, html, `value="submit"`)
	assert.NotContains(t, html, `value="next"`)
}

func TestQuotePageShowsErrors(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	html := render(t, QuotePage(QuoteView{
		Categories: cat.Categories(),
		Quote:      lead.Quote{Name: "X", PropertyType: "Villa"},
		Errors:     lead.FieldErrors{"name": "hatalı"},
		Action:     "/teklif-al",
	}))
	assert.Contains(t, html, `id="quote-name-error"`)
	assert.Contains(t, html, `aria-invalid="true"`)
	assert.Contains(t, html, `value="Villa" selected`)
	assert.NotContains(t, html, `id="quote-phone-error"`)
}
