// Package session keeps interactive demo sessions in memory.
//
// A session owns one [step.Stepper]: the tree being built, the pending
// values and the insertion cursor. The HTTP API creates a session per demo,
// steps it one request at a time, and forgets it after a period of
// inactivity. Nothing is persisted.
//
// # Concurrency
//
// The [Store] is safe for concurrent use. Each [Session] serializes access
// to its stepper with its own mutex, so at most one mutation is in flight
// per tree even when requests race:
//
//	sess, err := store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	err = sess.Do(func(s *step.Stepper) error {
//	    ev := s.Next()
//	    ...
//	})
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/core/step"
	"github.com/matzehuels/bstviz/pkg/observability"
)

// DefaultTTL is how long an untouched session survives.
const DefaultTTL = 30 * time.Minute

// Session is one demo: a stepper plus bookkeeping.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	stepper  *step.Stepper
	radius   float64
	lastUsed atomic.Int64 // unix nanos
}

func newSession(s *step.Stepper, now time.Time) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		stepper:   s,
	}
	sess.lastUsed.Store(now.UnixNano())
	return sess
}

// Category returns the category the session's tree is keyed by.
func (s *Session) Category() bst.Category { return s.stepper.Category() }

// Radius returns the node radius the session is drawn with.
func (s *Session) Radius() float64 { return s.radius }

// LastUsed returns the time of the last Do call.
func (s *Session) LastUsed() time.Time { return time.Unix(0, s.lastUsed.Load()) }

func (s *Session) touch(now time.Time) { s.lastUsed.Store(now.UnixNano()) }

// Do runs fn with exclusive access to the session's stepper.
func (s *Session) Do(fn func(*step.Stepper) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.stepper)
}

// Step advances the insertion by one event.
func (s *Session) Step(ctx context.Context) step.Event {
	var ev step.Event
	_ = s.Do(func(st *step.Stepper) error {
		ev = st.Next()
		return nil
	})
	observability.Session().OnStep(ctx, ev.Kind.String())
	return ev
}

// Finish inserts every remaining value and returns the events in order.
func (s *Session) Finish(ctx context.Context) []step.Event {
	var events []step.Event
	_ = s.Do(func(st *step.Stepper) error {
		events = st.Finish()
		return nil
	})
	hooks := observability.Session()
	for _, ev := range events {
		hooks.OnStep(ctx, ev.Kind.String())
	}
	return events
}

// Delete removes v from the session's tree.
func (s *Session) Delete(ctx context.Context, v bst.Value) (step.Event, error) {
	var ev step.Event
	err := s.Do(func(st *step.Stepper) error {
		var err error
		ev, err = st.Delete(v)
		return err
	})
	if err != nil {
		return ev, err
	}
	shape := "absent"
	if ev.Delete != nil {
		shape = ev.Delete.Case.String()
	}
	observability.Session().OnDelete(ctx, shape)
	return ev, nil
}
