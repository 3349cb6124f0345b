package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	WebAddr string
	SiteURL string

	WhatsAppNumber  string
	WhatsAppBaseURL string
	CatalogPath     string
	SessionTTL      time.Duration

	TelegramToken  string
	LeadChatIDs    []int64
	NotifyDebounce time.Duration

	LogLevel string
	Debug    bool

	PreferIPv4     bool
	HTTPTimeout    time.Duration
	RequestTimeout time.Duration
	MaxConcurrent  int
}

func Load() (Config, error) {
	cfg := Config{
		WebAddr:         strings.TrimSpace(getEnv("WEB_ADDR", ":8080")),
		SiteURL:         strings.TrimRight(getEnv("SITE_URL", "https://egepenakcayapi.com.tr"), "/"),
		WhatsAppNumber:  strings.TrimSpace(os.Getenv("WHATSAPP_NUMBER")),
		WhatsAppBaseURL: strings.TrimSpace(getEnv("WHATSAPP_BASE_URL", "https://wa.me")),
		CatalogPath:     strings.TrimSpace(os.Getenv("CATALOG_PATH")),
		SessionTTL:      time.Duration(getEnvInt("SESSION_TTL_MINUTES", 30)) * time.Minute,
		TelegramToken:   strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		NotifyDebounce:  time.Duration(getEnvInt("NOTIFY_DEBOUNCE_MS", 3000)) * time.Millisecond,
		LogLevel:        strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", "info"))),
		Debug:           getEnvBool("DEBUG", false),
		PreferIPv4:      getEnvBool("PREFER_IPV4", true),
		HTTPTimeout:     time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 60)) * time.Second,
		RequestTimeout:  time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		MaxConcurrent:   getEnvInt("MAX_CONCURRENT", 4),
	}

	ids, err := parseChatIDs(os.Getenv("LEAD_CHAT_IDS"))
	if err != nil {
		return Config{}, err
	}
	cfg.LeadChatIDs = ids

	if cfg.WhatsAppNumber == "" {
		return Config{}, errors.New("WHATSAPP_NUMBER is required")
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.NotifyDebounce <= 0 {
		cfg.NotifyDebounce = 3 * time.Second
	}
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 60 * time.Second
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	return cfg, nil
}

// RequireBot checks the settings only the Telegram bot needs.
func (c Config) RequireBot() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is required")
	}
	return nil
}

// NotificationsEnabled is true when leads can be pushed to Telegram chats.
func (c Config) NotificationsEnabled() bool {
	return c.TelegramToken != "" && len(c.LeadChatIDs) > 0
}

func parseChatIDs(value string) ([]int64, error) {
	var out []int64
	for _, p := range strings.Split(value, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("LEAD_CHAT_IDS: invalid chat id %q", p)
		}
		out = append(out, id)
	}
	return out, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
