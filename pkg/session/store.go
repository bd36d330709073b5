package session

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/core/layout"
	"github.com/matzehuels/bstviz/pkg/core/step"
	"github.com/matzehuels/bstviz/pkg/errors"
	"github.com/matzehuels/bstviz/pkg/observability"
)

// DefaultMaxSessions bounds the number of live sessions.
const DefaultMaxSessions = 1024

// Store holds sessions in memory and evicts idle ones.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	ttl    time.Duration
	max    int
	now    func() time.Time
	logger *log.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL sets the idle timeout. Non-positive values keep the default.
func WithTTL(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithMaxSessions caps the number of live sessions.
func WithMaxSessions(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.max = n
		}
	}
}

// WithLogger sets the logger used for eviction messages.
func WithLogger(l *log.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      DefaultTTL,
		max:      DefaultMaxSessions,
		now:      time.Now,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a session that will insert values in order. The radius is
// kept for rendering; the bounds already account for it.
func (s *Store) Create(ctx context.Context, c bst.Category, values []bst.Value, b layout.Bounds, radius float64) (*Session, error) {
	sess := newSession(step.New(c, values, b), s.now())
	sess.radius = radius

	s.mu.Lock()
	if len(s.sessions) >= s.max {
		s.evictLocked(ctx, s.now())
	}
	if len(s.sessions) >= s.max {
		s.mu.Unlock()
		return nil, errors.New(errors.ErrCodeLimit, "too many active sessions (max %d)", s.max)
	}
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	observability.Session().OnSessionCreated(ctx, c.String(), len(values))
	s.logger.Debug("session created", "id", sess.ID, "category", c, "values", len(values))
	return sess, nil
}

// Get returns a live session and marks it used.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	now := s.now()

	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || s.expired(sess, now) {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	sess.touch(now)
	return sess, nil
}

// Delete forgets a session. Deleting an unknown ID is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Cleanup evicts expired sessions and returns how many were removed.
func (s *Store) Cleanup(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictLocked(ctx, s.now())
}

func (s *Store) evictLocked(ctx context.Context, now time.Time) int {
	hooks := observability.Session()
	n := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			hooks.OnSessionEvicted(ctx)
			n++
		}
	}
	if n > 0 {
		s.logger.Debug("evicted idle sessions", "count", n, "remaining", len(s.sessions))
	}
	return n
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return now.Sub(sess.LastUsed()) > s.ttl
}

// Run calls Cleanup every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup(ctx)
		}
	}
}
