package notify

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"akcayapi-web/internal/lead"
)

type Sender interface {
	SendText(chatID int64, text string) error
}

type Options struct {
	Sender   Sender
	ChatIDs  []int64
	Debounce time.Duration
	Location *time.Location
	Logger   *slog.Logger
}

// Notifier collects leads per kind and sends one digest per kind once no
// new lead of that kind arrived for the debounce window.
type Notifier struct {
	mu       sync.Mutex
	sender   Sender
	chatIDs  []int64
	debounce time.Duration
	loc      *time.Location
	logger   *slog.Logger
	pending  map[lead.Kind]*pendingBatch
	closed   bool
	inflight sync.WaitGroup
}

type pendingBatch struct {
	leads []lead.Lead
	timer *time.Timer
}

func New(opts Options) *Notifier {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 3 * time.Second
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Notifier{
		sender:   opts.Sender,
		chatIDs:  append([]int64(nil), opts.ChatIDs...),
		debounce: debounce,
		loc:      loc,
		logger:   logger,
		pending:  make(map[lead.Kind]*pendingBatch),
	}
}

// Enabled is false when there is nobody to notify; Add is then a no-op.
func (n *Notifier) Enabled() bool {
	return n != nil && n.sender != nil && len(n.chatIDs) > 0
}

func (n *Notifier) Add(l lead.Lead) {
	if !n.Enabled() {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}

	pb, ok := n.pending[l.Kind]
	if !ok {
		pb = &pendingBatch{}
		n.pending[l.Kind] = pb
	}
	pb.leads = append(pb.leads, l)

	if pb.timer != nil {
		pb.timer.Stop()
	}
	kind := l.Kind
	pb.timer = time.AfterFunc(n.debounce, func() {
		n.flush(kind)
	})
}

// Flush sends everything pending right away and waits for in-flight sends.
func (n *Notifier) Flush() {
	if !n.Enabled() {
		return
	}

	n.mu.Lock()
	kinds := make([]lead.Kind, 0, len(n.pending))
	for k, pb := range n.pending {
		if pb.timer != nil {
			pb.timer.Stop()
		}
		kinds = append(kinds, k)
	}
	n.mu.Unlock()

	for _, k := range kinds {
		n.flush(k)
	}
	n.inflight.Wait()
}

func (n *Notifier) Close() {
	if !n.Enabled() {
		return
	}
	n.Flush()

	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()
}

func (n *Notifier) flush(kind lead.Kind) {
	n.mu.Lock()
	pb, ok := n.pending[kind]
	if !ok {
		n.mu.Unlock()
		return
	}
	delete(n.pending, kind)
	leads := pb.leads
	n.inflight.Add(1)
	n.mu.Unlock()
	defer n.inflight.Done()

	text := Digest(kind, leads, n.loc)
	if err := n.broadcast(text); err != nil {
		n.logger.Error("lead notification failed", "kind", kind, "count", len(leads), "err", err)
		return
	}
	n.logger.Info("lead notification sent", "kind", kind, "count", len(leads), "chats", len(n.chatIDs))
}

func (n *Notifier) broadcast(text string) error {
	var eg errgroup.Group
	for _, chatID := range n.chatIDs {
		chatID := chatID
		eg.Go(func() error {
			if err := n.sender.SendText(chatID, text); err != nil {
				return fmt.Errorf("chat %d: %w", chatID, err)
			}
			return nil
		})
	}
	return eg.Wait()
}

func Digest(kind lead.Kind, leads []lead.Lead, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	var b strings.Builder
	if len(leads) == 1 {
		b.WriteString(fmt.Sprintf("🔔 Yeni talep: %s\n", kind.Title()))
	} else {
		b.WriteString(fmt.Sprintf("🔔 %d yeni talep: %s\n", len(leads), kind.Title()))
	}

	for i, l := range leads {
		b.WriteString("\n")
		if len(leads) > 1 {
			b.WriteString(fmt.Sprintf("#%d ", i+1))
		}
		b.WriteString(l.CreatedAt.In(loc).Format("02.01.2006 15:04"))
		if l.Source != "" {
			b.WriteString(" · " + l.Source)
		}
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(l.Summary))
		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String())
}
