package step

import (
	"fmt"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/core/layout"
	"github.com/matzehuels/bstviz/pkg/errors"
)

// Stepper inserts a list of values into a live tree one step at a time.
type Stepper struct {
	// OnMutation, if set, is called after every event that changed the tree.
	OnMutation func(Event)

	cat    bst.Category
	values []bst.Value
	bounds layout.Bounds

	tree   *bst.Tree
	plan   layout.Positions
	index  int
	cursor *bst.Node // node the current value is compared with; nil between values
}

// New returns a stepper over values, which should already be validated and
// de-duplicated for c.
func New(c bst.Category, values []bst.Value, b layout.Bounds) *Stepper {
	s := &Stepper{
		cat:    c,
		values: append([]bst.Value(nil), values...),
		bounds: b,
	}
	s.Reset()
	return s
}

// Reset discards the live tree and starts over with the same values.
func (s *Stepper) Reset() {
	s.tree = bst.New(s.cat)
	s.index = 0
	s.cursor = nil
	s.replan()
}

func (s *Stepper) replan() {
	s.plan = layout.Plan(s.cat, s.values, s.bounds)
}

// Tree returns the live tree.
func (s *Stepper) Tree() *bst.Tree { return s.tree }

// Category returns the category of the stepper's values.
func (s *Stepper) Category() bst.Category { return s.cat }

// Values returns the value list, including values already inserted. After a
// delete it restarts from the live tree in pre-order.
func (s *Stepper) Values() []bst.Value { return s.values }

// Index returns the position of the value being or about to be inserted.
func (s *Stepper) Index() int { return s.index }

// Cursor returns the node the current value is being compared with.
func (s *Stepper) Cursor() *bst.Node { return s.cursor }

// Bounds returns the drawing rectangle positions are planned for.
func (s *Stepper) Bounds() layout.Bounds { return s.bounds }

// Plan returns the planned final position of every pending value.
func (s *Stepper) Plan() layout.Positions { return s.plan }

// Done reports whether every value has been handled.
func (s *Stepper) Done() bool {
	return s.index >= len(s.values) && s.cursor == nil
}

// Busy reports whether a value is part-way down the tree.
func (s *Stepper) Busy() bool { return s.cursor != nil }

// Next performs one step and describes it.
func (s *Stepper) Next() Event {
	if s.Done() {
		return Event{Kind: Done, Index: -1, Message: "All values have been inserted."}
	}

	v := s.values[s.index]

	if s.cursor == nil {
		root := s.tree.Root()
		if root == nil {
			n, _ := s.tree.Insert(v)
			s.plan.Place(n)
			return s.mutated(Event{
				Kind: PlaceRoot, Value: v, Node: n, Index: s.advance(),
				Message: fmt.Sprintf("Root node placed: %s", v),
			})
		}
		s.cursor = root
		return Event{
			Kind: Compare, Value: v, Node: root, Index: s.index,
			Message: fmt.Sprintf("Comparing: %s with %s", v, root.Value),
		}
	}

	cur := s.cursor
	c := s.tree.Compare(v, cur.Value)
	switch {
	case c < 0 && cur.Left() == nil:
		return s.place(v, cur, PlaceLeft, "left")
	case c < 0:
		s.cursor = cur.Left()
		return Event{
			Kind: MoveLeft, Value: v, Node: s.cursor, Index: s.index,
			Message: fmt.Sprintf("Moving left to compare with %s", s.cursor.Value),
		}
	case c > 0 && cur.Right() == nil:
		return s.place(v, cur, PlaceRight, "right")
	case c > 0:
		s.cursor = cur.Right()
		return Event{
			Kind: MoveRight, Value: v, Node: s.cursor, Index: s.index,
			Message: fmt.Sprintf("Moving right to compare with %s", s.cursor.Value),
		}
	default:
		s.cursor = nil
		return Event{
			Kind: Duplicate, Value: v, Node: cur, Index: s.advance(),
			Message: fmt.Sprintf("Duplicate value %s ignored.", v),
		}
	}
}

func (s *Stepper) place(v bst.Value, parent *bst.Node, kind Kind, side string) Event {
	n, ok := s.tree.Insert(v)
	if !ok || n.Parent() != parent {
		panic(errors.New(errors.ErrCodeInvariant, "insert of %s did not land under %s", v, parent.Value))
	}
	s.plan.Place(n)
	s.cursor = nil
	return s.mutated(Event{
		Kind: kind, Value: v, Node: n, Parent: parent, Index: s.advance(),
		Message: fmt.Sprintf("Inserted %s to the %s of %s", v, side, parent.Value),
	})
}

func (s *Stepper) advance() int {
	i := s.index
	s.index++
	return i
}

func (s *Stepper) mutated(e Event) Event {
	if s.OnMutation != nil {
		s.OnMutation(e)
	}
	return e
}

// Finish runs Next until every value is handled and returns the events.
func (s *Stepper) Finish() []Event {
	var events []Event
	for !s.Done() {
		events = append(events, s.Next())
	}
	return events
}

// Add appends values to the pending list, skipping keys already present, and
// re-plans. Already placed nodes move to their new planned positions. It
// returns the number of values added.
func (s *Stepper) Add(values ...bst.Value) int {
	seen := make(map[string]bool, len(s.values))
	for _, v := range s.values {
		seen[v.Key()] = true
	}
	added := 0
	for _, v := range values {
		if v.Category() != s.cat {
			panic(errors.New(errors.ErrCodeInvariant, "value %s is %s, stepper is %s", v, v.Category(), s.cat))
		}
		if seen[v.Key()] {
			continue
		}
		seen[v.Key()] = true
		s.values = append(s.values, v)
		added++
	}
	if added > 0 {
		s.replan()
		s.plan.Apply(s.tree)
	}
	return added
}

// Resize changes the drawing rectangle, re-plans and moves placed nodes.
func (s *Stepper) Resize(b layout.Bounds) {
	s.bounds = b
	s.replan()
	s.plan.Apply(s.tree)
}

// Delete removes v from the live tree and from the value list, then
// re-plans from the surviving shape and moves the remaining nodes. Deleting
// while a value is part-way down the tree is refused.
func (s *Stepper) Delete(v bst.Value) (Event, error) {
	if s.cursor != nil {
		return Event{}, errors.New(errors.ErrCodeInvalidInput,
			"cannot delete %s while %s is being inserted", v, s.values[s.index])
	}

	p := PlanDelete(s.tree, v)
	if p == nil {
		return Event{Kind: NotFound, Value: v, Index: -1,
			Message: fmt.Sprintf("Value %s not found.", v)}, nil
	}

	e := Event{Kind: Deleted, Value: p.Target.Value, Index: -1, Delete: p}
	switch p.Case {
	case TwoChildren:
		e.Node = p.Target
	case OneChild:
		e.Node = p.Child
	}
	s.tree.Delete(v)

	for i, pv := range s.values {
		if pv.Key() == e.Value.Key() {
			e.Index = i
			break
		}
	}
	s.rebase()

	e.Message = fmt.Sprintf("Node %s deleted.", e.Value)
	return s.mutated(e), nil
}

// rebase rewrites the value list as the live tree in pre-order followed by
// the values not yet inserted, then re-plans. Replaying pre-order rebuilds
// the live shape exactly, so planned positions stay a function of it.
func (s *Stepper) rebase() {
	pending := s.values[s.index:]
	values := make([]bst.Value, 0, s.tree.Len()+len(pending))
	values = append(values, s.tree.Values(bst.PreOrder)...)
	values = append(values, pending...)
	s.values = values
	s.index = s.tree.Len()
	s.replan()
	s.plan.Apply(s.tree)
}
