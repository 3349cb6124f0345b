package site

import (
	"net/http"
	"strings"

	"akcayapi-web/internal/configurator"
	"akcayapi-web/internal/lead"
	"akcayapi-web/internal/site/components"
)

var quotePage = components.PageConfig{
	Title:       "Ücretsiz Teklif Al | Akçayapı",
	Description: "PVC pencere, cam balkon, sineklik, panjur, duşakabin ve alüminyum sistemleri için ücretsiz keşif ve teklif.",
}

func (s *Server) handleQuoteForm(w http.ResponseWriter, r *http.Request) {
	var q lead.Quote
	if id := strings.TrimSpace(r.URL.Query().Get("urun")); id != "" {
		if _, ok := s.cat.CategoryByID(id); ok {
			q.Products = []string{id}
		}
	}
	s.renderQuote(w, http.StatusOK, q, nil)
}

func (s *Server) handleQuoteSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	f := r.PostForm
	q := lead.Quote{
		Name:         strings.TrimSpace(f.Get("name")),
		Phone:        strings.TrimSpace(f.Get("phone")),
		Email:        strings.TrimSpace(f.Get("email")),
		Address:      strings.TrimSpace(f.Get("address")),
		PropertyType: strings.TrimSpace(f.Get("propertyType")),
		Message:      strings.TrimSpace(f.Get("message")),
		Products:     f["products"],
		Consent:      f.Get("consent") != "",
	}

	if errs := lead.ValidateQuote(s.cat, q); !errs.Empty() {
		s.renderQuote(w, http.StatusUnprocessableEntity, q, errs)
		return
	}

	if s.leads != nil {
		s.leads.Add(lead.FromQuote(s.cat, q, s.now()))
	}
	s.logger.Info("quote submitted", "products", strings.Join(q.Products, ","))

	encoded := configurator.EncodeMessage(lead.ComposeQuoteMessage(s.cat, q))
	http.Redirect(w, r, configurator.BuildLink(s.waBase, s.waNumber, encoded), http.StatusSeeOther)
}

func (s *Server) renderQuote(w http.ResponseWriter, status int, q lead.Quote, errs lead.FieldErrors) {
	page := quotePage
	page.Canonical = s.siteURL + QuotePath

	s.render(w, status, page, components.QuotePage(components.QuoteView{
		Categories: s.cat.Categories(),
		Quote:      q,
		Errors:     errs,
		Action:     QuotePath,
	}))
}
