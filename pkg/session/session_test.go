package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/core/layout"
	"github.com/matzehuels/bstviz/pkg/core/step"
	"github.com/matzehuels/bstviz/pkg/errors"
	"github.com/matzehuels/bstviz/pkg/observability"
)

type countingHooks struct {
	observability.NoopSessionHooks
	mu      sync.Mutex
	created int
	steps   map[string]int
	deletes map[string]int
	evicted int
}

func newCountingHooks() *countingHooks {
	return &countingHooks{steps: map[string]int{}, deletes: map[string]int{}}
}

func (h *countingHooks) OnSessionCreated(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.created++
}

func (h *countingHooks) OnStep(_ context.Context, kind string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.steps[kind]++
}

func (h *countingHooks) OnDelete(_ context.Context, shape string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deletes[shape]++
}

func (h *countingHooks) OnSessionEvicted(context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.evicted++
}

func ints(vs ...string) []bst.Value {
	out := make([]bst.Value, len(vs))
	for i, v := range vs {
		out[i] = bst.Integer.MustParse(v)
	}
	return out
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T, opts ...StoreOption) (*Store, *clock, *countingHooks) {
	t.Helper()
	hooks := newCountingHooks()
	observability.SetSessionHooks(hooks)
	t.Cleanup(observability.Reset)

	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(opts...)
	s.now = c.now
	return s, c, hooks
}

func TestStore_CreateGet(t *testing.T) {
	ctx := context.Background()
	s, _, hooks := newTestStore(t)

	sess, err := s.Create(ctx, bst.Integer, ints("50", "30", "70"), layout.DefaultBounds(800, 600, 20), 20)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	require.Equal(t, bst.Integer, sess.Category())
	require.Equal(t, 1, hooks.created)

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.Same(t, sess, got)

	_, err = s.Get(ctx, "nope")
	require.True(t, errors.Is(err, errors.ErrCodeSessionNotFound), "got %v", err)
}

func TestStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s, c, hooks := newTestStore(t, WithTTL(time.Minute))

	a, err := s.Create(ctx, bst.Integer, ints("1"), layout.DefaultBounds(800, 600, 20), 20)
	require.NoError(t, err)
	b, err := s.Create(ctx, bst.Integer, ints("2"), layout.DefaultBounds(800, 600, 20), 20)
	require.NoError(t, err)

	c.advance(40 * time.Second)
	_, err = s.Get(ctx, b.ID) // keeps b alive
	require.NoError(t, err)

	c.advance(40 * time.Second)
	require.Equal(t, 1, s.Cleanup(ctx))
	require.Equal(t, 1, s.Len())
	require.Equal(t, 1, hooks.evicted)

	_, err = s.Get(ctx, a.ID)
	require.True(t, errors.Is(err, errors.ErrCodeSessionNotFound))
	_, err = s.Get(ctx, b.ID)
	require.NoError(t, err)
}

func TestStore_MaxSessions(t *testing.T) {
	ctx := context.Background()
	s, c, _ := newTestStore(t, WithMaxSessions(2), WithTTL(time.Minute))
	b := layout.DefaultBounds(800, 600, 20)

	for range 2 {
		_, err := s.Create(ctx, bst.Integer, ints("1"), b, 20)
		require.NoError(t, err)
	}
	_, err := s.Create(ctx, bst.Integer, ints("1"), b, 20)
	require.True(t, errors.Is(err, errors.ErrCodeLimit), "got %v", err)

	// Idle sessions make room.
	c.advance(2 * time.Minute)
	_, err = s.Create(ctx, bst.Integer, ints("1"), b, 20)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	sess, err := s.Create(ctx, bst.Word, nil, layout.DefaultBounds(800, 600, 20), 20)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, sess.ID))
	require.NoError(t, s.Delete(ctx, sess.ID))
	require.Zero(t, s.Len())
}

func TestSession_StepFinishDelete(t *testing.T) {
	ctx := context.Background()
	s, _, hooks := newTestStore(t)
	sess, err := s.Create(ctx, bst.Integer, ints("50", "30", "70", "20", "40"), layout.DefaultBounds(800, 600, 20), 20)
	require.NoError(t, err)

	ev := sess.Step(ctx)
	require.Equal(t, step.PlaceRoot, ev.Kind)
	require.Equal(t, "Root node placed: 50", ev.Message)

	events := sess.Finish(ctx)
	require.True(t, events[len(events)-1].Kind.Mutates())
	require.Equal(t, step.Done, sess.Step(ctx).Kind)
	require.Equal(t, 1, hooks.steps["place-root"])
	require.Equal(t, 2, hooks.steps["place-left"])
	require.Equal(t, 1, hooks.steps["done"])

	ev, err = sess.Delete(ctx, bst.Integer.MustParse("30"))
	require.NoError(t, err)
	require.Equal(t, step.Deleted, ev.Kind)
	require.Equal(t, 1, hooks.deletes["two-children"])

	ev, err = sess.Delete(ctx, bst.Integer.MustParse("99"))
	require.NoError(t, err)
	require.Equal(t, step.NotFound, ev.Kind)
	require.Equal(t, 1, hooks.deletes["absent"])

	require.NoError(t, sess.Do(func(st *step.Stepper) error {
		require.Equal(t, "[20 40 50 70]", st.Tree().String())
		return st.Tree().Check()
	}))
}

func TestSession_ConcurrentSteps(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	values := ints("8", "4", "12", "2", "6", "10", "14", "1", "3", "5", "7")
	sess, err := s.Create(ctx, bst.Integer, values, layout.DefaultBounds(800, 600, 20), 20)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				sess.Step(ctx)
			}
		}()
	}
	wg.Wait()

	require.NoError(t, sess.Do(func(st *step.Stepper) error {
		require.True(t, st.Done())
		require.Equal(t, len(values), st.Tree().Len())
		return st.Tree().Check()
	}))
}

func TestStore_Run(t *testing.T) {
	s := NewStore(WithTTL(time.Nanosecond))
	_, err := s.Create(context.Background(), bst.Integer, ints("1"), layout.DefaultBounds(800, 600, 20), 20)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()
	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	<-done
}
