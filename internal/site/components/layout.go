package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type PageConfig struct {
	Title       string
	Description string
	Canonical   string
	Phone       string
}

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = "Akçayapı | Egepen Deceuninck Bayi"
	}

	if config.Description == "" {
		config.Description = "PVC pencere, cam balkon, duşakabin ve alüminyum sistemlerinde ücretsiz keşif ve WhatsApp üzerinden hızlı teklif."
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("tr"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),

				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),
				Meta(g.Attr("property", "og:locale"), Content("tr_TR")),
				g.If(config.Canonical != "", Link(Rel("canonical"), Href(config.Canonical))),

				Link(Rel("stylesheet"), Href("/static/styles.css")),
			),
			Body(
				SiteTopbar(),
				Main(g.Group(content)),
				PageFooter(config.Phone),
			),
		),
	})
}

func SiteTopbar() g.Node {
	links := []struct {
		Href  string
		Label string
	}{
		{"/", "Ana Sayfa"},
		{"/dusakabin-sistemleri/konfigurator", "Duşakabin Tasarla"},
		{"/teklif-al", "Teklif Al"},
	}

	return Header(
		Class("topbar"),
		Div(
			Class("container topbar-inner"),
			A(Class("logo"), Href("/"), g.Text("Akçayapı")),
			Nav(
				Class("topbar-nav"),
				g.Group(g.Map(links, func(l struct {
					Href  string
					Label string
				}) g.Node {
					return A(Href(l.Href), g.Text(l.Label))
				})),
			),
		),
	)
}

func PageFooter(phone string) g.Node {
	return Footer(
		Class("footer"),
		Div(
			Class("container"),
			P(g.Text("Akçayapı · Egepen Deceuninck Yetkili Bayi")),
			g.If(phone != "", P(g.Text("WhatsApp: "+phone))),
		),
	)
}
