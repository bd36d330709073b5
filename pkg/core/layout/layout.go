package layout

import (
	"github.com/matzehuels/bstviz/pkg/core/bst"
)

// Default layout constants.
const (
	// DefaultRadius is the node radius used when none is configured.
	DefaultRadius = 20.0

	// DefaultMarginX is the horizontal inset of the root's range.
	DefaultMarginX = 50.0

	// DefaultGap is the minimum spacing between a node and its children's ranges.
	DefaultGap = 20.0

	// basePadding is added to the node radius above and below the tree.
	basePadding = 30.0
)

// Bounds is the drawing rectangle a layout pass fills.
type Bounds struct {
	Width         float64 `json:"width" toml:"width"`
	Height        float64 `json:"height" toml:"height"`
	MarginX       float64 `json:"margin_x" toml:"margin_x"`
	PaddingTop    float64 `json:"padding_top" toml:"padding_top"`
	PaddingBottom float64 `json:"padding_bottom" toml:"padding_bottom"`
	Gap           float64 `json:"gap" toml:"gap"`
}

// DefaultBounds returns bounds for a width x height viewport with nodes of
// the given radius: 30 + radius of padding above and below, a 50px horizontal
// margin, and a 20px gap.
func DefaultBounds(width, height, radius float64) Bounds {
	pad := basePadding + radius
	return Bounds{
		Width:         width,
		Height:        height,
		MarginX:       DefaultMarginX,
		PaddingTop:    pad,
		PaddingBottom: pad,
		Gap:           DefaultGap,
	}
}

// AvailableHeight is the vertical span between the two padding lines.
func (b Bounds) AvailableHeight() float64 {
	return b.Height - b.PaddingTop - b.PaddingBottom
}

// Spacing returns the distance between consecutive levels of a tree with the
// given depth. A one-level tree uses the whole available height as its
// denominator floor is 1.
func (b Bounds) Spacing(maxDepth int) float64 {
	return b.AvailableHeight() / float64(max(maxDepth-1, 1))
}

// Point is a layout coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AssignPosition lays out the whole tree inside b, starting from the root at
// depth 1 over [MarginX, Width-MarginX]. It overwrites every node's X and Y.
func AssignPosition(t *bst.Tree, b Bounds) {
	root := t.Root()
	if root == nil {
		return
	}
	p := pass{bounds: b, spacing: b.Spacing(t.MaxDepth())}
	p.assign(root, b.MarginX, b.Width-b.MarginX, 1)
}

type pass struct {
	bounds  Bounds
	spacing float64
}

func (p pass) assign(n *bst.Node, minX, maxX float64, depth int) {
	if n == nil {
		return
	}
	n.Y = p.bounds.PaddingTop + float64(depth-1)*p.spacing
	n.X = (minX + maxX) / 2

	p.assign(n.Left(), minX, n.X-p.bounds.Gap, depth+1)
	p.assign(n.Right(), n.X+p.bounds.Gap, maxX, depth+1)
}

// Snapshot records the current coordinates of every node, keyed by value.
func Snapshot(t *bst.Tree) Positions {
	pos := make(Positions, t.Len())
	for n := range t.Walk(bst.PreOrder) {
		pos[n.Value.Key()] = Point{X: n.X, Y: n.Y}
	}
	return pos
}
