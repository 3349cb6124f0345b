package handlers

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"akcayapi-web/internal/catalog"
	"akcayapi-web/internal/configurator"
	"akcayapi-web/internal/lead"
	"akcayapi-web/internal/session"
	"akcayapi-web/internal/telegram"
)

type sentMessage struct {
	ChatID    int64
	MessageID int
	Text      string
	Keyboard  *telegram.Keyboard
}

type fakeMessenger struct {
	mu       sync.Mutex
	nextID   int
	sent     []sentMessage
	edits    []sentMessage
	answers  []string
	failEdit bool
}

func (m *fakeMessenger) SendText(chatID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMessage{ChatID: chatID, Text: text})
	return nil
}

func (m *fakeMessenger) SendTextWithKeyboard(chatID int64, text string, kb telegram.Keyboard) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.sent = append(m.sent, sentMessage{ChatID: chatID, MessageID: m.nextID, Text: text, Keyboard: &kb})
	return m.nextID, nil
}

func (m *fakeMessenger) EditTextWithKeyboard(chatID int64, messageID int, text string, kb telegram.Keyboard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failEdit {
		return assert.AnError
	}
	m.edits = append(m.edits, sentMessage{ChatID: chatID, MessageID: messageID, Text: text, Keyboard: &kb})
	return nil
}

func (m *fakeMessenger) AnswerCallback(callbackID, text string, alert bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = append(m.answers, text)
	return nil
}

func (m *fakeMessenger) lastEdit(t *testing.T) sentMessage {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.edits)
	return m.edits[len(m.edits)-1]
}

type leadRecorder struct {
	leads []lead.Lead
}

func (r *leadRecorder) Add(l lead.Lead) { r.leads = append(r.leads, l) }

const (
	testChat = int64(500)
	testUser = int64(42)
)

type fixture struct {
	h        *Handler
	tg       *fakeMessenger
	sessions *session.Store
	leads    *leadRecorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	tg := &fakeMessenger{}
	sessions := session.NewStore(session.Options{Catalog: cat})
	leads := &leadRecorder{}
	h := New(Options{
		Telegram:       tg,
		Catalog:        cat,
		Sessions:       sessions,
		Leads:          leads,
		WhatsAppBase:   "https://wa.me",
		WhatsAppNumber: "905366405311",
		Now:            func() time.Time { return time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC) },
	})
	return fixture{h: h, tg: tg, sessions: sessions, leads: leads}
}

func command(text string) telegram.Update {
	name := strings.Fields(text)[0]
	return telegram.Update{Message: &tgbotapi.Message{
		From:     &tgbotapi.User{ID: testUser},
		Chat:     &tgbotapi.Chat{ID: testChat},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
	}}
}

func textUpdate(body string) telegram.Update {
	return telegram.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: testUser},
		Chat: &tgbotapi.Chat{ID: testChat},
		Text: body,
	}}
}

func press(from int64, messageID int, data string) telegram.Update {
	return telegram.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: from},
		Message: &tgbotapi.Message{MessageID: messageID, Chat: &tgbotapi.Chat{ID: testChat}},
		Data:    data,
	}}
}

func (f fixture) state(t *testing.T) session.Session {
	t.Helper()
	s, ok := f.sessions.Lookup(sessionKey(testChat, testUser))
	require.True(t, ok)
	return s
}

func TestParseDimensions(t *testing.T) {
	cases := []struct {
		in     string
		w, h   string
		wantOK bool
	}{
		{"90x200", "90", "200", true},
		{"90 X 200", "90", "200", true},
		{"120*210cm", "120", "210", true},
		{"87,5 × 195", "87,5", "195", true},
		{"90 200", "90", "200", true},
		{"90x", "", "", false},
		{"abc x 200", "", "", false},
		{"90x200x10", "", "", false},
	}
	for _, tc := range cases {
		w, h, ok := parseDimensions(tc.in)
		assert.Equal(t, tc.wantOK, ok, tc.in)
		assert.Equal(t, tc.w, w, tc.in)
		assert.Equal(t, tc.h, h, tc.in)
	}
}

func TestParseCallback(t *testing.T) {
	got, ok := parseCallback(cb(42, "sel", "corner-entry"))
	require.True(t, ok)
	assert.Equal(t, callback{OwnerID: 42, Action: "sel", Arg: "corner-entry"}, got)

	got, ok = parseCallback("cf:7:next")
	require.True(t, ok)
	assert.Equal(t, "next", got.Action)
	assert.Empty(t, got.Arg)

	_, ok = parseCallback("pv:7:next")
	assert.False(t, ok)
	_, ok = parseCallback("cf:abc:next")
	assert.False(t, ok)
}

func TestWizardFlowRecordsLead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.h.HandleUpdate(ctx, command("/konfigurator")))
	require.Len(t, f.tg.sent, 1)
	msgID := f.tg.sent[0].MessageID
	assert.Contains(t, f.tg.sent[0].Text, "Adım 1/4")
	assert.Equal(t, msgID, f.state(t).MessageID)

	// Advancing without a shape is refused.
	require.NoError(t, f.h.HandleUpdate(ctx, press(testUser, msgID, cb(testUser, "next"))))
	assert.Equal(t, configurator.StepShape, f.state(t).State.Step)
	assert.Equal(t, "Devam etmek için önce bir seçim yapın.", f.tg.answers[len(f.tg.answers)-1])

	steps := []string{
		cb(testUser, "sel", "corner-entry"),
		cb(testUser, "next"),
		cb(testUser, "sel", "frosted"),
		cb(testUser, "th", "10"),
		cb(testUser, "next"),
		cb(testUser, "sel", "matte-black"),
		cb(testUser, "next"),
		cb(testUser, "sel", "nano-clear"),
	}
	for _, data := range steps {
		require.NoError(t, f.h.HandleUpdate(ctx, press(testUser, msgID, data)))
	}

	st := f.state(t).State
	assert.Equal(t, configurator.StepCoating, st.Step)
	assert.Equal(t, 10, st.Thickness)
	assert.Equal(t, "nano-clear", st.Coating)
	assert.Contains(t, f.tg.lastEdit(t).Text, "Seçimleriniz")

	require.NoError(t, f.h.HandleUpdate(ctx, press(testUser, msgID, cb(testUser, "done"))))
	require.Len(t, f.leads.leads, 1)
	assert.Equal(t, lead.KindConfigurator, f.leads.leads[0].Kind)
	assert.Equal(t, "telegram", f.leads.leads[0].Source)
	assert.Contains(t, f.leads.leads[0].Summary, "🪟 *Cam:* Buzlu (Kumlama) (10mm)")

	final := f.tg.lastEdit(t)
	assert.True(t, strings.HasPrefix(final.Text, "🚿"))
	require.NotNil(t, final.Keyboard)
	btn := final.Keyboard.InlineKeyboard[0][0]
	require.NotNil(t, btn.URL)
	assert.True(t, strings.HasPrefix(*btn.URL, "https://wa.me/905366405311?text="))
	assert.False(t, f.state(t).LeadRecordedAt.IsZero())
}

func TestDoneBeforeLastStepIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.h.HandleUpdate(ctx, command("/konfigurator")))

	require.NoError(t, f.h.HandleUpdate(ctx, press(testUser, 1, cb(testUser, "done"))))
	assert.Empty(t, f.leads.leads)
	assert.Equal(t, "Önce tüm adımları tamamlayın.", f.tg.answers[len(f.tg.answers)-1])
}

func TestForeignCallbackIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.h.HandleUpdate(ctx, command("/konfigurator")))

	require.NoError(t, f.h.HandleUpdate(ctx, press(99, 1, cb(testUser, "sel", "square"))))
	assert.Equal(t, "Bu menü size ait değil.", f.tg.answers[len(f.tg.answers)-1])
	assert.Empty(t, f.state(t).State.Shape)
	assert.Empty(t, f.tg.edits)
}

func TestDimensionsByText(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.h.HandleUpdate(ctx, command("/konfigurator")))

	require.NoError(t, f.h.HandleUpdate(ctx, press(testUser, 1, cb(testUser, "dims"))))
	assert.True(t, f.state(t).AwaitingDims)

	require.NoError(t, f.h.HandleUpdate(ctx, textUpdate("nonsense")))
	assert.Contains(t, f.tg.sent[len(f.tg.sent)-1].Text, "Ölçü anlaşılamadı")
	assert.True(t, f.state(t).AwaitingDims)

	require.NoError(t, f.h.HandleUpdate(ctx, textUpdate("120 x 210")))
	s := f.state(t)
	assert.False(t, s.AwaitingDims)
	assert.Equal(t, 120.0, s.State.Width)
	assert.Equal(t, 210.0, s.State.Height)
	assert.Contains(t, f.tg.sent[len(f.tg.sent)-1].Text, "120cm x 210cm")
}

func TestOlcuCommandWithArguments(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.h.HandleUpdate(context.Background(), command("/olcu 75x190")))

	s := f.state(t)
	assert.Equal(t, 75.0, s.State.Width)
	assert.Equal(t, 190.0, s.State.Height)
}

func TestTextWithoutSessionPromptsStart(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.h.HandleUpdate(context.Background(), textUpdate("merhaba")))
	require.Len(t, f.tg.sent, 1)
	assert.Equal(t, "Başlamak için /konfigurator yazın.", f.tg.sent[0].Text)
}

func TestRenderFallsBackToSendWhenEditFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.h.HandleUpdate(ctx, command("/konfigurator")))
	f.tg.failEdit = true

	require.NoError(t, f.h.HandleUpdate(ctx, press(testUser, 1, cb(testUser, "sel", "square"))))
	require.Len(t, f.tg.sent, 2)
	assert.Equal(t, 2, f.state(t).MessageID)
}

func TestWizardKeyboardLocksNext(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	st := configurator.New(cat)
	kb := wizardKeyboard(cat, testUser, st)
	nav := kb.InlineKeyboard[len(kb.InlineKeyboard)-2]
	assert.Equal(t, "İleri 🔒", nav[len(nav)-1].Text)

	st = configurator.Reduce(cat, st, configurator.Select(configurator.StepShape, "square"))
	kb = wizardKeyboard(cat, testUser, st)
	nav = kb.InlineKeyboard[len(kb.InlineKeyboard)-2]
	assert.Equal(t, "İleri →", nav[len(nav)-1].Text)
	assert.Equal(t, "✅ ◻️ Kare", kb.InlineKeyboard[0][0].Text)
}
