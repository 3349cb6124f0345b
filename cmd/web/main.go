package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"akcayapi-web/internal/catalog"
	"akcayapi-web/internal/config"
	"akcayapi-web/internal/httpclient"
	"akcayapi-web/internal/notify"
	"akcayapi-web/internal/session"
	"akcayapi-web/internal/site"
	"akcayapi-web/internal/telegram"
)

//go:embed static/*
var staticFS embed.FS

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		logger.Error("catalog load failed", "path", cfg.CatalogPath, "err", err)
		os.Exit(1)
	}

	sessions := session.NewStore(session.Options{
		Catalog: cat,
		TTL:     cfg.SessionTTL,
	})

	notifier := newNotifier(cfg, logger)

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		logger.Error("static assets", "err", err)
		os.Exit(1)
	}

	s := site.New(site.Options{
		Catalog:        cat,
		Sessions:       sessions,
		Leads:          notifier,
		WhatsAppBase:   cfg.WhatsAppBaseURL,
		WhatsAppNumber: cfg.WhatsAppNumber,
		SiteURL:        cfg.SiteURL,
		Static:         staticSub,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              cfg.WebAddr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("web started", "addr", cfg.WebAddr, "notifications", notifier.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sessions.Run(gctx, time.Minute, func(n int) {
			logger.Debug("sessions expired", "count", n, "active", sessions.Len())
		})
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "err", err)
	}
	notifier.Close()
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

// newNotifier returns nil when lead notifications are not configured; a nil
// notifier accepts and drops leads.
func newNotifier(cfg config.Config, logger *slog.Logger) *notify.Notifier {
	if !cfg.NotificationsEnabled() {
		return nil
	}

	tg, err := telegram.New(telegram.Options{
		Token: cfg.TelegramToken,
		HTTPClient: httpclient.New(httpclient.Options{
			PreferIPv4: cfg.PreferIPv4,
			Timeout:    cfg.HTTPTimeout,
			UserAgent:  "akcayapi-web",
		}),
		Logger: logger,
		Debug:  cfg.Debug,
	})
	if err != nil {
		logger.Warn("lead notifications disabled", "err", err)
		return nil
	}

	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		loc = time.FixedZone("TRT", 3*60*60)
	}

	return notify.New(notify.Options{
		Sender:   tg,
		ChatIDs:  cfg.LeadChatIDs,
		Debounce: cfg.NotifyDebounce,
		Location: loc,
		Logger:   logger,
	})
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
