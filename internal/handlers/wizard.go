package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"akcayapi-web/internal/catalog"
	"akcayapi-web/internal/configurator"
	"akcayapi-web/internal/lead"
	"akcayapi-web/internal/session"
	"akcayapi-web/internal/telegram"
)

const callbackPrefix = "cf"

// noCoating is the callback argument for "Kaplama İstemiyorum"; callback
// data cannot carry an empty trailing segment reliably.
const noCoating = "-"

func (h *Handler) startWizard(chatID int64, userID int64) error {
	key := sessionKey(chatID, userID)
	sess := h.sessions.Reset(key)

	msgID, err := h.tg.SendTextWithKeyboard(chatID, wizardText(h.cat, sess.State), wizardKeyboard(h.cat, userID, sess.State))
	if err != nil {
		return err
	}
	h.sessions.Update(key, func(s *session.Session) { s.MessageID = msgID })
	return nil
}

type callback struct {
	OwnerID int64
	Action  string
	Arg     string
}

func parseCallback(data string) (callback, bool) {
	parts := strings.SplitN(strings.TrimSpace(data), ":", 4)
	if len(parts) < 3 || parts[0] != callbackPrefix {
		return callback{}, false
	}
	ownerID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return callback{}, false
	}

	cb := callback{OwnerID: ownerID, Action: parts[2]}
	if len(parts) == 4 {
		cb.Arg = parts[3]
	}
	return cb, true
}

func cb(ownerID int64, parts ...string) string {
	return fmt.Sprintf("%s:%d:%s", callbackPrefix, ownerID, strings.Join(parts, ":"))
}

func (h *Handler) handleCallback(q *tgbotapi.CallbackQuery) error {
	if q == nil || q.Message == nil || q.From == nil {
		return nil
	}
	data, ok := parseCallback(q.Data)
	if !ok {
		return nil
	}
	if data.OwnerID != q.From.ID {
		_ = h.tg.AnswerCallback(q.ID, "Bu menü size ait değil.", true)
		return nil
	}

	chatID := q.Message.Chat.ID
	msgID := q.Message.MessageID
	key := sessionKey(chatID, data.OwnerID)

	before := h.sessions.Get(key).State
	var recorded bool

	updated := h.sessions.Update(key, func(s *session.Session) {
		s.MessageID = msgID

		switch data.Action {
		case "sel":
			id := data.Arg
			if id == noCoating {
				id = ""
			}
			s.State = configurator.Reduce(h.cat, s.State, configurator.Select(s.State.Step, id))
		case "th":
			if mm, err := strconv.Atoi(data.Arg); err == nil {
				s.State = configurator.Reduce(h.cat, s.State, configurator.PickThickness(mm))
			}
		case "next":
			s.State = configurator.Reduce(h.cat, s.State, configurator.Action{Kind: configurator.ActionAdvance})
		case "back":
			s.State = configurator.Reduce(h.cat, s.State, configurator.Action{Kind: configurator.ActionRetreat})
		case "reset":
			s.State = configurator.Reduce(h.cat, s.State, configurator.Action{Kind: configurator.ActionReset})
			s.AwaitingDims = false
			s.LeadRecordedAt = time.Time{}
		case "dims":
			s.AwaitingDims = true
		case "done":
			if s.State.Step == configurator.LastStep {
				s.LeadRecordedAt = h.now()
				recorded = true
			}
		}
	})

	switch data.Action {
	case "next":
		if updated.State.Step == before.Step {
			_ = h.tg.AnswerCallback(q.ID, "Devam etmek için önce bir seçim yapın.", false)
		} else {
			_ = h.tg.AnswerCallback(q.ID, "", false)
		}
	case "dims":
		_ = h.tg.AnswerCallback(q.ID, "", false)
		return h.tg.SendText(chatID, "📏 Ölçüyü genişlik x yükseklik olarak yazın, örn. 90x200 (iptal: /iptal)")
	case "done":
		if !recorded {
			_ = h.tg.AnswerCallback(q.ID, "Önce tüm adımları tamamlayın.", false)
			break
		}
		_ = h.tg.AnswerCallback(q.ID, "Talebiniz hazır ✅", false)
		if h.leads != nil {
			h.leads.Add(lead.FromConfigurator(h.cat, updated.State, "telegram", h.now()))
		}
		h.logger.Info("configurator lead", "chat_id", chatID, "user_id", data.OwnerID)
		return h.tg.EditTextWithKeyboard(chatID, msgID, configurator.ComposeMessage(h.cat, updated.State), h.submitKeyboard(data.OwnerID, updated.State))
	default:
		_ = h.tg.AnswerCallback(q.ID, "", false)
	}

	return h.renderWizard(chatID, data.OwnerID, msgID, true)
}

func (h *Handler) renderWizard(chatID int64, userID int64, messageID int, edit bool) error {
	key := sessionKey(chatID, userID)
	sess := h.sessions.Get(key)
	if messageID == 0 {
		messageID = sess.MessageID
	}

	text := wizardText(h.cat, sess.State)
	kb := wizardKeyboard(h.cat, userID, sess.State)

	if edit && messageID != 0 {
		if err := h.tg.EditTextWithKeyboard(chatID, messageID, text, kb); err == nil {
			return nil
		}
	}

	msgID, err := h.tg.SendTextWithKeyboard(chatID, text, kb)
	if err != nil {
		return err
	}
	h.sessions.Update(key, func(s *session.Session) { s.MessageID = msgID })
	return nil
}

func (h *Handler) submitKeyboard(ownerID int64, st configurator.State) telegram.Keyboard {
	link := configurator.Link(h.cat, st, h.waBase, h.waNumber)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("💬 WhatsApp ile Gönder", link)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("← Geri", cb(ownerID, "back")),
			tgbotapi.NewInlineKeyboardButtonData("Yeniden Başla", cb(ownerID, "reset")),
		),
	)
}

func wizardText(cat *catalog.Catalog, st configurator.State) string {
	var b strings.Builder
	b.WriteString("🛁 Duşakabin Konfiguratör\n")
	b.WriteString(fmt.Sprintf("Adım %d/%d · %%%d tamamlandı\n\n", st.Step, configurator.TotalSteps, configurator.Progress(st)))
	b.WriteString(st.Step.Title() + "\n\n")

	switch st.Step {
	case configurator.StepShape:
		dims := cat.Dimensions()
		b.WriteString(fmt.Sprintf("Yaklaşık ölçü: %s\n", configurator.FormatDimensions(st.Width, st.Height)))
		b.WriteString(fmt.Sprintf("Genişlik %v-%vcm, yükseklik %v-%vcm aralığında önerilir.\n", dims.Width.Min, dims.Width.Max, dims.Height.Min, dims.Height.Max))
		if s, ok := cat.Shape(st.Shape); ok {
			b.WriteString(fmt.Sprintf("\n%s %s: %s (%v-%vcm)\n", s.Icon, s.NameTR, s.Description, s.MinWidth, s.MaxWidth))
		}
	case configurator.StepGlass:
		if g, ok := cat.Glass(st.GlassType); ok {
			b.WriteString(g.NameTR + ": " + g.Description + "\n")
			b.WriteString("💡 8mm standart, 10mm çerçevesiz sistemler için önerilir\n")
		}
	case configurator.StepColor:
		if p, ok := cat.Color(st.Color); ok {
			b.WriteString(fmt.Sprintf("%s (%s) · %s\n", p.NameTR, p.Hex, p.Coating))
		}
	case configurator.StepCoating:
		b.WriteString("📋 Seçimleriniz\n")
		for _, row := range configurator.Summary(cat, st) {
			b.WriteString(fmt.Sprintf("%s: %s\n", row.Label, row.Value))
		}
	}

	if st.Step != configurator.LastStep && !configurator.CanAdvance(st, st.Step) {
		b.WriteString("\nDevam etmek için bir seçim yapın.")
	}
	return strings.TrimSpace(b.String())
}

func wizardKeyboard(cat *catalog.Catalog, ownerID int64, st configurator.State) telegram.Keyboard {
	var options []tgbotapi.InlineKeyboardButton
	var rows [][]tgbotapi.InlineKeyboardButton

	mark := func(selected bool, label string) string {
		if selected {
			return "✅ " + label
		}
		return label
	}

	switch st.Step {
	case configurator.StepShape:
		for _, s := range cat.Shapes() {
			options = append(options, tgbotapi.NewInlineKeyboardButtonData(mark(st.Shape == s.ID, s.Icon+" "+s.NameTR), cb(ownerID, "sel", s.ID)))
		}
		rows = pairRows(options)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📏 Ölçü: "+configurator.FormatDimensions(st.Width, st.Height), cb(ownerID, "dims")),
		))
	case configurator.StepGlass:
		for _, g := range cat.GlassTypes() {
			label := g.NameTR
			if g.Premium() {
				label += " ⭐"
			}
			options = append(options, tgbotapi.NewInlineKeyboardButtonData(mark(st.GlassType == g.ID, label), cb(ownerID, "sel", g.ID)))
		}
		rows = pairRows(options)
		if g, ok := cat.Glass(st.GlassType); ok {
			var thickness []tgbotapi.InlineKeyboardButton
			for _, t := range g.Thickness {
				thickness = append(thickness, tgbotapi.NewInlineKeyboardButtonData(mark(st.Thickness == t, fmt.Sprintf("%dmm", t)), cb(ownerID, "th", strconv.Itoa(t))))
			}
			rows = append(rows, thickness)
		}
	case configurator.StepColor:
		for _, p := range cat.ProfileColors() {
			label := p.NameTR
			if p.Popular {
				label += " ⭐"
			}
			options = append(options, tgbotapi.NewInlineKeyboardButtonData(mark(st.Color == p.ID, label), cb(ownerID, "sel", p.ID)))
		}
		rows = pairRows(options)
	case configurator.StepCoating:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(mark(st.Coating == "", "Kaplama İstemiyorum"), cb(ownerID, "sel", noCoating)),
		))
		for _, c := range cat.Coatings() {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(mark(st.Coating == c.ID, c.Name+" · "+c.Technology), cb(ownerID, "sel", c.ID)),
			))
		}
	}

	var nav []tgbotapi.InlineKeyboardButton
	if st.Step > configurator.FirstStep {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("← Geri", cb(ownerID, "back")))
	}
	if st.Step < configurator.LastStep {
		label := "İleri →"
		if !configurator.CanAdvance(st, st.Step) {
			label = "İleri 🔒"
		}
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(label, cb(ownerID, "next")))
	} else {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("✅ Talebi Oluştur", cb(ownerID, "done")))
	}
	rows = append(rows, nav, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Sıfırla", cb(ownerID, "reset")),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func pairRows(buttons []tgbotapi.InlineKeyboardButton) [][]tgbotapi.InlineKeyboardButton {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, b := range buttons {
		row = append(row, b)
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
