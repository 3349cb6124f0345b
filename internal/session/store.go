package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"akcayapi-web/internal/catalog"
	"akcayapi-web/internal/configurator"
)

type Session struct {
	ID           string
	State        configurator.State
	LastActivity time.Time

	// Telegram wizard bookkeeping; unused by the web surface.
	MessageID      int
	AwaitingDims   bool
	LeadRecordedAt time.Time
}

type Options struct {
	Catalog *catalog.Catalog
	TTL     time.Duration
	Now     func() time.Time
}

// Store keeps configurator sessions in memory only. Sessions idle for
// longer than TTL are dropped by Sweep.
type Store struct {
	mu       sync.Mutex
	cat      *catalog.Catalog
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*Session
}

func NewStore(opts Options) *Store {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Store{
		cat:      opts.Catalog,
		ttl:      ttl,
		now:      now,
		sessions: make(map[string]*Session),
	}
}

func NewID() string {
	return uuid.NewString()
}

func (s *Store) Get(id string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.getOrCreateLocked(id)
	sess.LastActivity = s.now()
	return *sess
}

// Lookup returns the session without creating it.
func (s *Store) Lookup(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

func (s *Store) Update(id string, fn func(*Session)) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.getOrCreateLocked(id)
	if fn != nil {
		fn(sess)
	}
	sess.ID = id
	sess.LastActivity = s.now()
	return *sess
}

// Apply runs one configurator action against the session state.
func (s *Store) Apply(id string, action configurator.Action) configurator.State {
	sess := s.Update(id, func(sess *Session) {
		sess.State = configurator.Reduce(s.cat, sess.State, action)
	})
	return sess.State
}

func (s *Store) Reset(id string) Session {
	return s.Update(id, func(sess *Session) {
		*sess = s.newSession(id)
	})
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	n := 0
	for id, sess := range s.sessions {
		if sess.LastActivity.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *Store) Run(ctx context.Context, interval time.Duration, onSweep func(int)) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}

func (s *Store) getOrCreateLocked(id string) *Session {
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	sess := s.newSession(id)
	s.sessions[id] = &sess
	return s.sessions[id]
}

func (s *Store) newSession(id string) Session {
	return Session{
		ID:           id,
		State:        configurator.New(s.cat),
		LastActivity: s.now(),
	}
}
