package components

import (
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	gc "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"akcayapi-web/internal/catalog"
	"akcayapi-web/internal/configurator"
)

// ConfiguratorView is everything the configurator page renders from.
type ConfiguratorView struct {
	Catalog *catalog.Catalog
	State   configurator.State
	// Action is the URL the step forms post to.
	Action string
}

func ConfiguratorPage(v ConfiguratorView) g.Node {
	st := v.State

	return Section(
		Class("configurator container"),
		ID("konfigurator"),
		Div(
			Class("panel"),
			Div(
				Class("panel-header"),
				H1(g.Text("🛁 Duşakabin Konfiguratör")),
				P(g.Textf("Adım %d / %d", st.Step, configurator.TotalSteps)),
				Div(
					Class("progress"),
					Role("progressbar"),
					Aria("valuenow", strconv.Itoa(configurator.Progress(st))),
					Aria("valuemin", "0"),
					Aria("valuemax", "100"),
					Div(Class("progress-bar"), Style(fmt.Sprintf("width: %d%%", configurator.Progress(st)))),
				),
			),
			Div(
				Class("panel-body"),
				H2(g.Text(st.Step.Title())),
				stepBody(v),
			),
			navigation(v),
		),
	)
}

func stepBody(v ConfiguratorView) g.Node {
	var children []g.Node
	switch v.State.Step {
	case configurator.StepShape:
		children = []g.Node{shapeOptions(v), dimensionsForm(v)}
	case configurator.StepGlass:
		children = []g.Node{glassOptions(v), thicknessForm(v)}
	case configurator.StepColor:
		children = []g.Node{colorOptions(v)}
	case configurator.StepCoating:
		children = []g.Node{coatingOptions(v), summary(v)}
	}
	return Div(Class("step"), Data("step", v.State.Step.String()), g.Group(children))
}

// selectForm posts action=select; each option is a submit button carrying its id.
func selectForm(action string, options ...g.Node) g.Node {
	return Form(
		Method("post"),
		Action(action),
		Class("options"),
		Input(Type("hidden"), Name("action"), Value("select")),
		g.Group(options),
	)
}

func optionButton(id string, selected bool, children ...g.Node) g.Node {
	return Button(
		Type("submit"),
		Name("id"),
		Value(id),
		gc.Classes{"option": true, "selected": selected},
		Aria("pressed", strconv.FormatBool(selected)),
		g.Group(children),
	)
}

func shapeOptions(v ConfiguratorView) g.Node {
	return selectForm(v.Action, g.Map(v.Catalog.Shapes(), func(s catalog.ShowerShape) g.Node {
		return optionButton(s.ID, v.State.Shape == s.ID,
			Span(Class("option-icon"), g.Text(s.Icon)),
			Strong(g.Text(s.NameTR)),
			Small(g.Text(s.Description)),
			Small(Class("muted"), g.Textf("%s-%scm", num(s.MinWidth), num(s.MaxWidth))),
		)
	})...)
}

func dimensionsForm(v ConfiguratorView) g.Node {
	dims := v.Catalog.Dimensions()
	widthOK, heightOK := configurator.InRange(v.Catalog, v.State)

	field := func(name, label string, value float64, b catalog.Bound, ok bool) g.Node {
		return Label(
			Class("field"),
			Span(g.Text(label)),
			Input(
				Type("number"),
				Name(name),
				Value(num(value)),
				Min(num(b.Min)),
				Max(num(b.Max)),
				g.Attr("step", "any"),
			),
			g.If(!ok, Small(Class("hint warn"), g.Textf("Önerilen aralık: %s-%scm", num(b.Min), num(b.Max)))),
		)
	}

	return Form(
		Method("post"),
		Action(v.Action),
		Class("dimensions"),
		P(Class("label"), g.Text("Yaklaşık Ölçüler (cm)")),
		Input(Type("hidden"), Name("action"), Value("dimensions")),
		Div(
			Class("row"),
			field("width", "Genişlik", v.State.Width, dims.Width, widthOK),
			field("height", "Yükseklik", v.State.Height, dims.Height, heightOK),
		),
		Button(Type("submit"), Class("btn btn-small"), g.Text("Ölçüyü Kaydet")),
	)
}

func glassOptions(v ConfiguratorView) g.Node {
	return selectForm(v.Action, g.Map(v.Catalog.GlassTypes(), func(gt catalog.GlassType) g.Node {
		return optionButton(gt.ID, v.State.GlassType == gt.ID,
			Strong(g.Text(gt.NameTR)),
			g.If(gt.Premium(), Span(Class("badge premium"), g.Text("Premium"))),
			Small(g.Text(gt.Description)),
		)
	})...)
}

func thicknessForm(v ConfiguratorView) g.Node {
	glass, ok := v.Catalog.Glass(v.State.GlassType)
	if !ok {
		return nil
	}

	return Form(
		Method("post"),
		Action(v.Action),
		Class("thickness"),
		P(Class("label"), g.Text("Cam Kalınlığı Seçin")),
		Input(Type("hidden"), Name("action"), Value("thickness")),
		g.Group(g.Map(glass.Thickness, func(mm int) g.Node {
			selected := v.State.Thickness == mm
			return Button(
				Type("submit"),
				Name("mm"),
				Value(strconv.Itoa(mm)),
				gc.Classes{"chip": true, "selected": selected},
				g.Textf("%dmm", mm),
			)
		})),
		Small(Class("muted"), g.Text("💡 8mm standart, 10mm çerçevesiz sistemler için önerilir")),
	)
}

func colorOptions(v ConfiguratorView) g.Node {
	return selectForm(v.Action, g.Map(v.Catalog.ProfileColors(), func(p catalog.ProfileColor) g.Node {
		return optionButton(p.ID, v.State.Color == p.ID,
			Span(Class("swatch"), Style("background-color: "+p.Hex)),
			Strong(g.Text(p.NameTR)),
			Small(g.Text(p.Coating)),
			g.If(p.Popular, Span(Class("badge popular"), g.Text("⭐ Popüler"))),
		)
	})...)
}

func coatingOptions(v ConfiguratorView) g.Node {
	none := optionButton("", v.State.Coating == "",
		Strong(g.Text("Kaplama İstemiyorum")),
		Small(g.Text("Standart temperli cam")),
	)

	return selectForm(v.Action, append([]g.Node{none}, g.Map(v.Catalog.Coatings(), func(c catalog.HygieneCoating) g.Node {
		return optionButton(c.ID, v.State.Coating == c.ID,
			Strong(g.Text(c.Name)),
			Span(Class("badge"), g.Text(c.Technology)),
			Small(g.Text(c.Description)),
		)
	})...)...)
}

func summary(v ConfiguratorView) g.Node {
	return Div(
		Class("summary"),
		H3(g.Text("📋 Seçimleriniz")),
		Dl(g.Group(g.Map(configurator.Summary(v.Catalog, v.State), func(r configurator.SummaryRow) g.Node {
			return g.Group([]g.Node{
				Dt(g.Text(r.Label + ":")),
				Dd(
					g.If(r.Hex != "", Span(Class("swatch small"), Style("background-color: "+r.Hex))),
					g.Text(r.Value),
				),
			})
		}))),
	)
}

func navigation(v ConfiguratorView) g.Node {
	st := v.State
	last := st.Step == configurator.LastStep

	return Form(
		Method("post"),
		Action(v.Action),
		Class("nav-buttons"),
		Button(
			Type("submit"),
			Name("action"),
			Value("back"),
			Class("btn btn-muted"),
			g.If(st.Step == configurator.FirstStep, Disabled()),
			g.Text("← Geri"),
		),
		Button(Type("submit"), Name("action"), Value("reset"), Class("btn btn-link"), g.Text("Sıfırla")),
		g.If(!last, Button(
			Type("submit"),
			Name("action"),
			Value("next"),
			Class("btn btn-primary"),
			g.If(!configurator.CanAdvance(st, st.Step), Disabled()),
			g.Text("İleri →"),
		)),
		g.If(last, Button(
			Type("submit"),
			Name("action"),
			Value("submit"),
			g.Attr("formtarget", "_blank"),
			Class("btn btn-whatsapp"),
			g.Text("WhatsApp ile Gönder"),
		)),
	)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
