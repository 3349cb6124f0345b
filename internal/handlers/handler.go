package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"akcayapi-web/internal/catalog"
	"akcayapi-web/internal/configurator"
	"akcayapi-web/internal/lead"
	"akcayapi-web/internal/session"
	"akcayapi-web/internal/telegram"
)

type Messenger interface {
	SendText(chatID int64, text string) error
	SendTextWithKeyboard(chatID int64, text string, kb telegram.Keyboard) (int, error)
	EditTextWithKeyboard(chatID int64, messageID int, text string, kb telegram.Keyboard) error
	AnswerCallback(callbackID, text string, alert bool) error
}

type LeadSink interface {
	Add(lead.Lead)
}

type Options struct {
	Telegram       Messenger
	Catalog        *catalog.Catalog
	Sessions       *session.Store
	Leads          LeadSink
	WhatsAppBase   string
	WhatsAppNumber string
	Logger         *slog.Logger
	Now            func() time.Time
}

type Handler struct {
	tg       Messenger
	cat      *catalog.Catalog
	sessions *session.Store
	leads    LeadSink
	waBase   string
	waNumber string
	logger   *slog.Logger
	now      func() time.Time
}

func New(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Handler{
		tg:       opts.Telegram,
		cat:      opts.Catalog,
		sessions: opts.Sessions,
		leads:    opts.Leads,
		waBase:   opts.WhatsAppBase,
		waNumber: opts.WhatsAppNumber,
		logger:   logger,
		now:      now,
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, update telegram.Update) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if update.CallbackQuery != nil {
		return h.handleCallback(update.CallbackQuery)
	}
	if update.Message == nil || update.Message.From == nil {
		return nil
	}

	msg := update.Message
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if msg.IsCommand() {
		return h.handleCommand(chatID, userID, msg)
	}
	if msg.Text != "" {
		return h.handleText(chatID, userID, msg.Text)
	}
	return nil
}

func (h *Handler) handleCommand(chatID int64, userID int64, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start", "help":
		return h.tg.SendText(chatID,
			"🛁 Akçayapı Duşakabin Konfiguratör\n\n"+
				"4 adımda size özel duşakabin tasarlayın, talebinizi WhatsApp ile gönderin.\n\n"+
				"Komutlar:\n"+
				"/konfigurator - Yeni tasarım başlat\n"+
				"/olcu 90x200 - Ölçü gir (cm)\n"+
				"/iptal - Ölçü girişini iptal et\n"+
				"/id - Bu sohbetin kimliği",
		)
	case "id":
		return h.tg.SendText(chatID, fmt.Sprintf("Chat ID: %d", chatID))
	case "konfigurator":
		return h.startWizard(chatID, userID)
	case "olcu":
		args := strings.TrimSpace(msg.CommandArguments())
		if args == "" {
			h.sessions.Update(sessionKey(chatID, userID), func(s *session.Session) { s.AwaitingDims = true })
			return h.tg.SendText(chatID, "📏 Ölçüyü genişlik x yükseklik olarak yazın, örn. 90x200")
		}
		return h.applyDimensions(chatID, userID, args)
	case "iptal":
		h.sessions.Update(sessionKey(chatID, userID), func(s *session.Session) { s.AwaitingDims = false })
		return h.tg.SendText(chatID, "İptal edildi.")
	default:
		return h.tg.SendText(chatID, "❌ Bilinmeyen komut. /help yazın.")
	}
}

func (h *Handler) handleText(chatID int64, userID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	sess, ok := h.sessions.Lookup(sessionKey(chatID, userID))
	if ok && sess.AwaitingDims {
		return h.applyDimensions(chatID, userID, text)
	}
	return h.tg.SendText(chatID, "Başlamak için /konfigurator yazın.")
}

func (h *Handler) applyDimensions(chatID int64, userID int64, text string) error {
	width, height, ok := parseDimensions(text)
	if !ok {
		return h.tg.SendText(chatID, "❌ Ölçü anlaşılamadı. Örnek: 90x200")
	}

	key := sessionKey(chatID, userID)
	h.sessions.Update(key, func(s *session.Session) {
		s.State = configurator.Reduce(h.cat, s.State, configurator.SetNumber(configurator.FieldWidth, width))
		s.State = configurator.Reduce(h.cat, s.State, configurator.SetNumber(configurator.FieldHeight, height))
		s.AwaitingDims = false
	})
	return h.renderWizard(chatID, userID, 0, false)
}

func sessionKey(chatID, userID int64) string {
	return fmt.Sprintf("tg:%d:%d", chatID, userID)
}

// parseDimensions accepts "90x200", "90 x 200", "90*200" or "90 200".
func parseDimensions(text string) (string, string, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, sep := range []string{"×", "*", "x"} {
		text = strings.ReplaceAll(text, sep, " ")
	}
	text = strings.ReplaceAll(text, "cm", " ")

	parts := strings.Fields(text)
	if len(parts) != 2 {
		return "", "", false
	}
	if _, ok := configurator.ParseNumber(parts[0]); !ok {
		return "", "", false
	}
	if _, ok := configurator.ParseNumber(parts[1]); !ok {
		return "", "", false
	}
	return parts[0], parts[1], true
}
