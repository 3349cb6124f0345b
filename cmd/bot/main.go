package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"akcayapi-web/internal/catalog"
	"akcayapi-web/internal/config"
	"akcayapi-web/internal/handlers"
	"akcayapi-web/internal/httpclient"
	"akcayapi-web/internal/notify"
	"akcayapi-web/internal/session"
	"akcayapi-web/internal/telegram"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := cfg.RequireBot(); err != nil {
		panic(err)
	}

	logger := newLogger(cfg)

	var shower *catalog.Catalog
	if cfg.CatalogPath != "" {
		shower, err = catalog.Load(cfg.CatalogPath)
	} else {
		shower, err = catalog.Default()
	}
	if err != nil {
		logger.Error("catalog load failed", "path", cfg.CatalogPath, "err", err)
		os.Exit(1)
	}

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: cfg.PreferIPv4,
		Timeout:    cfg.HTTPTimeout,
		UserAgent:  "akcayapi-bot",
	})

	tg, err := telegram.New(telegram.Options{
		Token:      cfg.TelegramToken,
		HTTPClient: httpClient,
		Logger:     logger,
		Debug:      cfg.Debug,
	})
	if err != nil {
		logger.Error("telegram init failed", "err", err)
		os.Exit(1)
	}

	sessions := session.NewStore(session.Options{
		Catalog: shower,
		TTL:     cfg.SessionTTL,
	})

	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		loc = time.FixedZone("TRT", 3*60*60)
	}
	notifier := notify.New(notify.Options{
		Sender:   tg,
		ChatIDs:  cfg.LeadChatIDs,
		Debounce: cfg.NotifyDebounce,
		Location: loc,
		Logger:   logger,
	})
	defer notifier.Close()

	handler := handlers.New(handlers.Options{
		Telegram:       tg,
		Catalog:        shower,
		Sessions:       sessions,
		Leads:          notifier,
		WhatsAppBase:   cfg.WhatsAppBaseURL,
		WhatsAppNumber: cfg.WhatsAppNumber,
		Logger:         logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessions.Run(ctx, time.Minute, func(n int) {
		logger.Debug("sessions expired", "count", n)
	})

	sem := make(chan struct{}, cfg.MaxConcurrent)

	logger.Info("bot started", "username", tg.Username(), "lead_chats", len(cfg.LeadChatIDs))

	updates := tg.Updates(telegram.UpdatesOptions{
		Timeout: 30 * time.Second,
	})
	defer tg.StopUpdates()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case update, ok := <-updates:
			if !ok {
				logger.Info("updates channel closed")
				return
			}

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}

			go func(update telegram.Update) {
				defer func() { <-sem }()

				reqCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
				defer cancel()

				if err := handler.HandleUpdate(reqCtx, update); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("handle update failed", "err", err)
				}
			}(update)
		}
	}
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
