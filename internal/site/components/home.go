package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"akcayapi-web/internal/catalog"
)

func Home(categories []catalog.Category) g.Node {
	return g.Group([]g.Node{
		Section(
			Class("hero"),
			Div(
				Class("container"),
				H1(g.Text("Evinize Değer Katan Çözümler")),
				P(
					Class("lead"),
					g.Text("PVC pencereden duşakabine, ölçüden montaja kadar tek adres. Ücretsiz keşif için hemen teklif alın."),
				),
				Div(
					Class("cta-row"),
					A(Class("btn btn-primary"), Href("/teklif-al"), g.Text("Ücretsiz Teklif Al")),
					A(Class("btn btn-outline"), Href("/dusakabin-sistemleri/konfigurator"), g.Text("Duşakabininizi Tasarlayın")),
				),
			),
		),
		Section(
			Class("categories"),
			ID("urunler"),
			Div(
				Class("container"),
				H2(g.Text("Ürünlerimiz")),
				Div(
					Class("grid"),
					g.Group(g.Map(categories, categoryCard)),
				),
			),
		),
	})
}

func categoryCard(c catalog.Category) g.Node {
	href := c.Href
	if href == "" {
		href = "/teklif-al?urun=" + c.ID
	}

	return A(
		Class("card"),
		Href(href),
		Span(Class("card-icon"), g.Text(c.Icon)),
		H3(g.Text(c.Name)),
		P(g.Text(c.Description)),
	)
}
