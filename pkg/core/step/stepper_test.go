package step

import (
	"fmt"
	"testing"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/core/layout"
	"github.com/matzehuels/bstviz/pkg/errors"
)

func ints(vals ...int64) []bst.Value {
	out := make([]bst.Value, len(vals))
	for i, v := range vals {
		out[i] = bst.Int(v)
	}
	return out
}

func newStepper(vals ...int64) *Stepper {
	return New(bst.Integer, ints(vals...), layout.DefaultBounds(800, 600, 20))
}

func TestStepper_Transcript(t *testing.T) {
	s := newStepper(50, 30, 70, 20, 40)

	want := []struct {
		kind Kind
		msg  string
	}{
		{PlaceRoot, "Root node placed: 50"},
		{Compare, "Comparing: 30 with 50"},
		{PlaceLeft, "Inserted 30 to the left of 50"},
		{Compare, "Comparing: 70 with 50"},
		{PlaceRight, "Inserted 70 to the right of 50"},
		{Compare, "Comparing: 20 with 50"},
		{MoveLeft, "Moving left to compare with 30"},
		{PlaceLeft, "Inserted 20 to the left of 30"},
		{Compare, "Comparing: 40 with 50"},
		{MoveLeft, "Moving left to compare with 30"},
		{PlaceRight, "Inserted 40 to the right of 30"},
		{Done, "All values have been inserted."},
	}
	for i, w := range want {
		e := s.Next()
		if e.Kind != w.kind || e.Message != w.msg {
			t.Fatalf("step %d = %v %q, want %v %q", i, e.Kind, e.Message, w.kind, w.msg)
		}
	}
	if !s.Done() {
		t.Error("Done() = false after final step")
	}
	if got := s.Next(); got.Kind != Done {
		t.Errorf("Next() after done = %v, want %v", got.Kind, Done)
	}
	if got := s.Tree().String(); got != "[20 30 40 50 70]" {
		t.Errorf("tree = %s, want [20 30 40 50 70]", got)
	}
}

func TestStepper_Duplicate(t *testing.T) {
	s := newStepper(5, 3, 5)
	var mutations int
	s.OnMutation = func(Event) { mutations++ }

	events := s.Finish()
	last := events[len(events)-1]
	if last.Kind != Duplicate || last.Message != "Duplicate value 5 ignored." {
		t.Errorf("last event = %v %q, want duplicate", last.Kind, last.Message)
	}
	if last.Node != s.Tree().Root() {
		t.Error("duplicate event should point at the equal node")
	}
	if mutations != 2 {
		t.Errorf("mutations = %d, want 2", mutations)
	}
	if s.Tree().Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Tree().Len())
	}
}

func TestStepper_PlacesAtPlannedPosition(t *testing.T) {
	s := newStepper(50, 30, 70, 20, 40)
	plan := s.Plan()

	for !s.Done() {
		e := s.Next()
		if !e.Kind.Mutates() {
			continue
		}
		p, ok := plan.Lookup(e.Value)
		if !ok {
			t.Fatalf("no plan for %s", e.Value)
		}
		if e.Node.X != p.X || e.Node.Y != p.Y {
			t.Errorf("%s placed at (%v, %v), want (%v, %v)", e.Value, e.Node.X, e.Node.Y, p.X, p.Y)
		}
	}

	// earlier nodes never move while later values arrive
	for n := range s.Tree().Walk(bst.PreOrder) {
		p, _ := plan.Lookup(n.Value)
		if n.X != p.X || n.Y != p.Y {
			t.Errorf("%s moved to (%v, %v), planned (%v, %v)", n, n.X, n.Y, p.X, p.Y)
		}
	}
}

func TestStepper_Delete(t *testing.T) {
	tests := []struct {
		name     string
		del      int64
		wantCase Case
		wantNode string
		wantTree string
	}{
		{"leaf", 20, Leaf, "", "[30 40 50 70]"},
		{"one child", 70, OneChild, "80", "[20 30 40 50 80]"},
		{"two children", 30, TwoChildren, "40", "[20 40 50 70 80]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStepper(50, 30, 70, 20, 40, 80)
			s.Finish()

			var acked []Event
			s.OnMutation = func(e Event) { acked = append(acked, e) }

			e, err := s.Delete(bst.Int(tt.del))
			if err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if e.Kind != Deleted || e.Delete.Case != tt.wantCase {
				t.Errorf("event = %v/%v, want deleted/%v", e.Kind, e.Delete.Case, tt.wantCase)
			}
			if got := e.Value.String(); got != (bst.Int(tt.del)).String() {
				t.Errorf("event value = %s, want %d", got, tt.del)
			}
			gotNode := ""
			if e.Node != nil {
				gotNode = e.Node.String()
			}
			if gotNode != tt.wantNode {
				t.Errorf("event node = %q, want %q", gotNode, tt.wantNode)
			}
			if got := s.Tree().String(); got != tt.wantTree {
				t.Errorf("tree = %s, want %s", got, tt.wantTree)
			}
			if len(acked) != 1 {
				t.Errorf("acknowledged %d events, want 1", len(acked))
			}
			for _, v := range s.Values() {
				if v.Key() == bst.Int(tt.del).Key() {
					t.Errorf("%d still pending", tt.del)
				}
			}
			if err := s.Tree().Check(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestStepper_DeleteRelayout(t *testing.T) {
	s := newStepper(50, 30, 70, 20, 40)
	s.Finish()

	if _, err := s.Delete(bst.Int(30)); err != nil {
		t.Fatal(err)
	}
	want := map[int64]layout.Point{
		50: {X: 400, Y: 50},
		40: {X: 215, Y: 300},
		70: {X: 585, Y: 300},
		20: {X: 122.5, Y: 550},
	}
	for v, p := range want {
		n := s.Tree().Find(bst.Int(v))
		if n.X != p.X || n.Y != p.Y {
			t.Errorf("node %d at (%v, %v), want (%v, %v)", v, n.X, n.Y, p.X, p.Y)
		}
	}
	if _, ok := s.Plan().Lookup(bst.Int(30)); ok {
		t.Error("deleted value still has a planned position")
	}
}

func TestStepper_DeleteNotFound(t *testing.T) {
	s := newStepper(1, 2)
	s.Finish()

	e, err := s.Delete(bst.Int(9))
	if err != nil {
		t.Fatal(err)
	}
	if e.Kind != NotFound || e.Message != "Value 9 not found." {
		t.Errorf("event = %v %q", e.Kind, e.Message)
	}
	if s.Tree().Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Tree().Len())
	}
}

func TestStepper_DeleteWhileBusy(t *testing.T) {
	s := newStepper(5, 3)
	s.Next()
	s.Next() // comparing 3 with 5
	if !s.Busy() {
		t.Fatal("Busy() = false mid-insertion")
	}
	_, err := s.Delete(bst.Int(5))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Delete() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if s.Tree().Len() != 1 {
		t.Error("tree changed after refused delete")
	}
}

func TestStepper_DeleteAdjustsIndex(t *testing.T) {
	s := newStepper(50, 30, 70)
	s.Next()
	s.Next()
	s.Next() // 30 placed
	if s.Index() != 2 {
		t.Fatalf("Index() = %d, want 2", s.Index())
	}

	e, err := s.Delete(bst.Int(50))
	if err != nil {
		t.Fatal(err)
	}
	if e.Delete.Case != OneChild || e.Index != 0 {
		t.Errorf("event case=%v index=%d, want one-child at 0", e.Delete.Case, e.Index)
	}
	if s.Index() != 1 {
		t.Errorf("Index() = %d, want 1", s.Index())
	}
	if e := s.Next(); e.Message != "Comparing: 70 with 30" {
		t.Errorf("next message = %q", e.Message)
	}
}

func TestStepper_AddAndResize(t *testing.T) {
	s := newStepper(50, 30, 70)
	s.Finish()

	if n := s.Add(bst.Int(20), bst.Int(50), bst.Int(20)); n != 1 {
		t.Errorf("Add() = %d, want 1", n)
	}
	if s.Done() {
		t.Fatal("Done() = true with a pending value")
	}
	// the tree deepened in the plan so placed nodes moved up a level
	if n := s.Tree().Find(bst.Int(30)); n.Y != 300 {
		t.Errorf("30 at y=%v, want 300", n.Y)
	}
	if e := s.Next(); e.Message != "Comparing: 20 with 50" {
		t.Errorf("next message = %q", e.Message)
	}
	s.Finish()

	s.Resize(layout.DefaultBounds(400, 600, 20))
	if r := s.Tree().Root(); r.X != 200 {
		t.Errorf("root x = %v after resize, want 200", r.X)
	}
}

func TestStepper_Reset(t *testing.T) {
	s := newStepper(2, 1, 3)
	s.Finish()
	s.Reset()
	if s.Tree().Len() != 0 || s.Index() != 0 || s.Done() {
		t.Errorf("after Reset: len=%d index=%d done=%v", s.Tree().Len(), s.Index(), s.Done())
	}
	if got := len(s.Finish()); got != 5 {
		t.Errorf("Finish() after Reset produced %d events, want 5", got)
	}
}

// checkLayout fails unless every live node sits where a fresh layout of the
// live shape, plus the values still pending, would put it.
func checkLayout(t *testing.T, s *Stepper, when string) {
	t.Helper()
	fresh := bst.New(s.Category())
	for _, v := range s.Tree().Values(bst.PreOrder) {
		fresh.Insert(v)
	}
	for _, v := range s.Values()[s.Index():] {
		fresh.Insert(v)
	}
	layout.AssignPosition(fresh, s.Bounds())

	for n := range s.Tree().Walk(bst.PreOrder) {
		f := fresh.Find(n.Value)
		if f == nil {
			t.Fatalf("%s: %s missing from the fresh layout", when, n.Value)
		}
		if n.X != f.X || n.Y != f.Y {
			t.Errorf("%s: %s at (%v, %v), want (%v, %v)", when, n.Value, n.X, n.Y, f.X, f.Y)
		}
		if p := n.Parent(); p != nil && (f.Parent() == nil || f.Parent().Value.Key() != p.Value.Key()) {
			t.Errorf("%s: %s hangs under a different parent in the plan", when, n.Value)
		}
	}
}

func TestStepper_LayoutFollowsShapeAfterDelete(t *testing.T) {
	tests := []struct {
		name   string
		delete int64
	}{
		{"root", 50},
		{"two children", 30},
		{"one child", 70},
		{"leaf", 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStepper(50, 30, 70, 20, 40, 80)
			s.Finish()

			if _, err := s.Delete(bst.Int(tt.delete)); err != nil {
				t.Fatal(err)
			}
			checkLayout(t, s, "after delete")

			s.Resize(s.Bounds())
			checkLayout(t, s, "after same-size resize")

			s.Resize(layout.DefaultBounds(400, 500, 20))
			checkLayout(t, s, "after resize")

			if n := s.Add(bst.Int(10), bst.Int(45)); n != 2 {
				t.Fatalf("Add() = %d, want 2", n)
			}
			checkLayout(t, s, "after add")

			for !s.Done() {
				s.Next()
				checkLayout(t, s, "after step")
			}
			if err := s.Tree().Check(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestStepper_DeleteRootThenResize(t *testing.T) {
	s := newStepper(50, 30, 70, 20, 40)
	s.Finish()
	if _, err := s.Delete(bst.Int(50)); err != nil {
		t.Fatal(err)
	}
	s.Resize(s.Bounds())

	root := s.Tree().Root()
	if root.Value.String() != "70" || root.X != 400 || root.Y != 50 {
		t.Errorf("root %s at (%v, %v), want 70 at (400, 50)", root.Value, root.X, root.Y)
	}
	if got, want := fmtValues(s.Values()), "[70 30 20 40]"; got != want {
		t.Errorf("Values() = %s, want %s", got, want)
	}
	if s.Index() != 4 || !s.Done() {
		t.Errorf("Index() = %d, Done() = %v, want 4 and done", s.Index(), s.Done())
	}
}

func TestStepper_DeleteWithPendingValues(t *testing.T) {
	s := newStepper(50, 30, 70, 20, 40, 60)
	for s.Index() < 3 {
		s.Next()
	}
	// 50, 30, 70 placed; 20, 40, 60 pending
	if _, err := s.Delete(bst.Int(50)); err != nil {
		t.Fatal(err)
	}
	if got, want := fmtValues(s.Values()), "[70 30 20 40 60]"; got != want {
		t.Errorf("Values() = %s, want %s", got, want)
	}
	if s.Index() != 2 {
		t.Errorf("Index() = %d, want 2", s.Index())
	}
	checkLayout(t, s, "after delete")

	s.Finish()
	checkLayout(t, s, "after finish")
	if got := fmtValues(s.Tree().Values(bst.InOrder)); got != "[20 30 40 60 70]" {
		t.Errorf("in-order = %s", got)
	}
}

func fmtValues(vs []bst.Value) string {
	return fmt.Sprint(vs)
}
