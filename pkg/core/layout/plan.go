package layout

import (
	"math"

	"github.com/matzehuels/bstviz/pkg/core/bst"
)

// Positions maps a value key to its coordinate.
type Positions map[string]Point

// Plan inserts every value into a disposable tree, lays it out inside b and
// returns the resulting positions. Values rejected as duplicates have no
// entry.
func Plan(c bst.Category, values []bst.Value, b Bounds) Positions {
	sim := bst.New(c)
	for _, v := range values {
		sim.Insert(v)
	}
	AssignPosition(sim, b)
	return Snapshot(sim)
}

// Lookup returns the planned position of v.
func (p Positions) Lookup(v bst.Value) (Point, bool) {
	pt, ok := p[v.Key()]
	return pt, ok
}

// Place copies the planned position of n's value onto n and reports whether
// a plan existed for it.
func (p Positions) Place(n *bst.Node) bool {
	pt, ok := p.Lookup(n.Value)
	if ok {
		n.X, n.Y = pt.X, pt.Y
	}
	return ok
}

// Apply places every node of t that has a planned position and returns the
// number of nodes without one.
func (p Positions) Apply(t *bst.Tree) int {
	missing := 0
	for n := range t.Walk(bst.PreOrder) {
		if !p.Place(n) {
			missing++
		}
	}
	return missing
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// BoundingBox returns the smallest rectangle holding every node centre, with
// the minimum corner clamped at the origin. It reports false for an empty
// tree.
func BoundingBox(t *bst.Tree) (Rect, bool) {
	if t.Root() == nil {
		return Rect{}, false
	}
	r := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for n := range t.Walk(bst.PreOrder) {
		r.MinX = min(r.MinX, n.X)
		r.MaxX = max(r.MaxX, n.X)
		r.MinY = min(r.MinY, n.Y)
		r.MaxY = max(r.MaxY, n.Y)
	}
	r.MinX = max(0, r.MinX)
	r.MinY = max(0, r.MinY)
	return r, true
}
