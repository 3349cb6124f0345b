package components

import (
	"slices"

	g "maragu.dev/gomponents"
	gc "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"akcayapi-web/internal/catalog"
	"akcayapi-web/internal/lead"
)

var PropertyTypes = []string{"Daire", "Müstakil Ev", "Villa", "Ofis", "Ticari"}

type QuoteView struct {
	Categories []catalog.Category
	Quote      lead.Quote
	Errors     lead.FieldErrors
	Action     string
}

func QuotePage(v QuoteView) g.Node {
	errs := v.Errors
	if errs == nil {
		errs = lead.FieldErrors{}
	}
	q := v.Quote

	return Section(
		Class("quote container"),
		H1(g.Text("Ücretsiz Teklif Alın")),
		P(Class("lead"), g.Text("Formu doldurun, talebiniz WhatsApp üzerinden bize ulaşsın. En geç 24 saat içinde dönüş yapıyoruz.")),
		Form(
			Method("post"),
			Action(v.Action),
			Class("quote-form"),
			g.Attr("novalidate"),

			FieldSet(
				Legend(g.Text("İlgilendiğiniz Ürünler *")),
				Div(
					Class("product-grid"),
					g.Group(g.Map(v.Categories, func(c catalog.Category) g.Node {
						checked := slices.Contains(q.Products, c.ID)
						return Label(
							gc.Classes{"product": true, "selected": checked},
							Input(Type("checkbox"), Name("products"), Value(c.ID), g.If(checked, Checked())),
							Span(g.Text(c.Icon)),
							g.Text(c.ShortName),
						)
					})),
				),
				fieldError("products", errs),
			),

			textField("name", "Ad Soyad *", "text", q.Name, "Adınız Soyadınız", errs),
			textField("phone", "Telefon *", "tel", q.Phone, "05XX XXX XX XX", errs),
			textField("email", "E-posta", "email", q.Email, "ornek@mail.com", errs),

			Div(
				Class("field"),
				Label(For("quote-propertyType"), g.Text("Mülk Tipi")),
				Select(
					ID("quote-propertyType"),
					Name("propertyType"),
					Option(Value(""), g.Text("Seçiniz")),
					g.Group(g.Map(PropertyTypes, func(t string) g.Node {
						return Option(Value(t), g.If(q.PropertyType == t, Selected()), g.Text(t))
					})),
				),
			),

			textField("address", "İlçe / Mahalle", "text", q.Address, "Örn: Beylikdüzü, Gürpınar...", errs),

			Div(
				Class("field"),
				Label(For("quote-message"), g.Text("Tahmini Ölçüler veya Notlar")),
				Textarea(ID("quote-message"), Name("message"), Rows("3"), Placeholder("Varsa ölçüleri belirtebilirsiniz..."), g.Text(q.Message)),
			),

			Div(
				Class("field consent"),
				Label(
					Input(Type("checkbox"), ID("quote-consent"), Name("consent"), Value("on"), g.If(q.Consent, Checked())),
					Span(
						A(Href("/gizlilik-politikasi"), g.Text("KVKK metnini")),
						g.Text("'nı okudum ve teklif amacıyla iletişim kurulmasını onaylıyorum. *"),
					),
				),
				fieldError("consent", errs),
			),

			Button(Type("submit"), Class("btn btn-primary btn-block"), g.Text("WhatsApp ile Ücretsiz Teklif Al")),
		),
	)
}

func textField(name, label, typ, value, placeholder string, errs lead.FieldErrors) g.Node {
	id := "quote-" + name
	_, invalid := errs[name]

	return Div(
		Class("field"),
		Label(For(id), g.Text(label)),
		Input(
			ID(id),
			Name(name),
			Type(typ),
			Value(value),
			Placeholder(placeholder),
			gc.Classes{"invalid": invalid},
			g.If(invalid, Aria("invalid", "true")),
			g.If(invalid, Aria("describedby", id+"-error")),
		),
		fieldError(name, errs),
	)
}

func fieldError(name string, errs lead.FieldErrors) g.Node {
	msg, ok := errs[name]
	if !ok {
		return nil
	}
	return P(ID("quote-"+name+"-error"), Class("error"), Role("alert"), g.Text(msg))
}
