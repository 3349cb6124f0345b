package site

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	g "maragu.dev/gomponents"

	"akcayapi-web/internal/catalog"
	"akcayapi-web/internal/lead"
	"akcayapi-web/internal/session"
	"akcayapi-web/internal/site/components"
)

const (
	ConfiguratorPath = "/dusakabin-sistemleri/konfigurator"
	QuotePath        = "/teklif-al"
	MessageAPIPath   = "/api/configurator/message"

	sessionCookie = "cfg_sid"
)

type LeadSink interface {
	Add(lead.Lead)
}

type Options struct {
	Catalog        *catalog.Catalog
	Sessions       *session.Store
	Leads          LeadSink
	WhatsAppBase   string
	WhatsAppNumber string
	SiteURL        string
	Static         fs.FS
	Logger         *slog.Logger
	Now            func() time.Time
}

type Server struct {
	cat      *catalog.Catalog
	sessions *session.Store
	leads    LeadSink
	waBase   string
	waNumber string
	siteURL  string
	static   fs.FS
	logger   *slog.Logger
	now      func() time.Time
}

type apiError struct {
	Error string `json:"error"`
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Server{
		cat:      opts.Catalog,
		sessions: opts.Sessions,
		leads:    opts.Leads,
		waBase:   opts.WhatsAppBase,
		waNumber: opts.WhatsAppNumber,
		siteURL:  opts.SiteURL,
		static:   opts.Static,
		logger:   logger,
		now:      now,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(withLogging(s.logger))
	r.Use(middleware.Recoverer)

	if s.static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(s.static))))
	}

	r.Get("/", s.handleHome)
	r.Get("/health", handleHealth)

	r.Get(ConfiguratorPath, s.handleConfigurator)
	r.Post(ConfiguratorPath, s.handleConfiguratorAction)
	r.Post(MessageAPIPath, s.handleMessageAPI)

	r.Get(QuotePath, s.handleQuoteForm)
	r.Post(QuotePath, s.handleQuoteSubmit)

	return r
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, components.PageConfig{Canonical: s.siteURL + "/"},
		components.Home(s.cat.Categories()),
	)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) render(w http.ResponseWriter, status int, page components.PageConfig, content ...g.Node) {
	page.Phone = s.waNumber
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := components.Layout(page, content...).Render(w); err != nil {
		s.logger.Error("render failed", "err", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
