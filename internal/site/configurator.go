package site

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"akcayapi-web/internal/configurator"
	"akcayapi-web/internal/lead"
	"akcayapi-web/internal/session"
	"akcayapi-web/internal/site/components"
)

// sessionID returns the visitor's configurator session, issuing a new
// cookie when the old one is missing or has expired.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		if _, ok := s.sessions.Lookup(c.Value); ok {
			return c.Value
		}
	}

	id := session.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
	s.sessions.Reset(id)
	return id
}

func (s *Server) handleConfigurator(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	sess := s.sessions.Get(id)

	s.render(w, http.StatusOK, components.PageConfig{
		Title:       "Duşakabin Konfiguratör | Akçayapı",
		Description: "4 adımda size özel duşakabini tasarlayın, teklif talebinizi WhatsApp ile gönderin.",
		Canonical:   s.siteURL + ConfiguratorPath,
	}, components.ConfiguratorPage(components.ConfiguratorView{
		Catalog: s.cat,
		State:   sess.State,
		Action:  ConfiguratorPath,
	}))
}

func (s *Server) handleConfiguratorAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id := s.sessionID(w, r)
	current := s.sessions.Get(id).State

	switch strings.TrimSpace(r.PostForm.Get("action")) {
	case "select":
		s.sessions.Apply(id, configurator.Select(current.Step, strings.TrimSpace(r.PostForm.Get("id"))))
	case "thickness":
		mm, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("mm")))
		if err == nil {
			s.sessions.Apply(id, configurator.PickThickness(mm))
		}
	case "dimensions":
		if raw, ok := r.PostForm["width"]; ok && len(raw) > 0 {
			s.sessions.Apply(id, configurator.SetNumber(configurator.FieldWidth, raw[0]))
		}
		if raw, ok := r.PostForm["height"]; ok && len(raw) > 0 {
			s.sessions.Apply(id, configurator.SetNumber(configurator.FieldHeight, raw[0]))
		}
	case "next":
		s.sessions.Apply(id, configurator.Action{Kind: configurator.ActionAdvance})
	case "back":
		s.sessions.Apply(id, configurator.Action{Kind: configurator.ActionRetreat})
	case "reset":
		s.sessions.Apply(id, configurator.Action{Kind: configurator.ActionReset})
	case "submit":
		if current.Step != configurator.LastStep {
			break
		}
		s.sessions.Update(id, func(sess *session.Session) { sess.LeadRecordedAt = s.now() })
		if s.leads != nil {
			s.leads.Add(lead.FromConfigurator(s.cat, current, "web", s.now()))
		}
		http.Redirect(w, r, configurator.Link(s.cat, current, s.waBase, s.waNumber), http.StatusSeeOther)
		return
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, ConfiguratorPath+"#konfigurator", http.StatusSeeOther)
}

type messageRequest struct {
	Shape     string   `json:"shape"`
	GlassType string   `json:"glassType"`
	Thickness int      `json:"thickness"`
	Color     string   `json:"profileColor"`
	Coating   string   `json:"coating"`
	Width     *float64 `json:"width"`
	Height    *float64 `json:"height"`
}

type messageResponse struct {
	Message string `json:"message"`
	Encoded string `json:"encoded"`
	Link    string `json:"link"`
}

// handleMessageAPI composes the message for an arbitrary state without
// touching any session. Missing dimensions fall back to catalog defaults.
func (s *Server) handleMessageAPI(w http.ResponseWriter, r *http.Request) {
	const maxBodyBytes = 16 << 10
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json body"})
		return
	}

	st := configurator.New(s.cat)
	st.Shape = req.Shape
	st.GlassType = req.GlassType
	st.Thickness = req.Thickness
	st.Color = req.Color
	st.Coating = req.Coating
	if req.Width != nil {
		st.Width = *req.Width
	}
	if req.Height != nil {
		st.Height = *req.Height
	}

	msg := configurator.ComposeMessage(s.cat, st)
	encoded := configurator.EncodeMessage(msg)
	writeJSON(w, http.StatusOK, messageResponse{
		Message: msg,
		Encoded: encoded,
		Link:    configurator.BuildLink(s.waBase, s.waNumber, encoded),
	})
}
