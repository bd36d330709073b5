package svg

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/core/layout"
	"github.com/matzehuels/bstviz/pkg/graph"
)

// Option configures [Render].
type Option func(*renderer)

type renderer struct {
	style     Style
	order     *bst.Order
	highlight map[string]bool
	crop      bool
}

// WithStyle sets the visual style. The default is [Simple].
func WithStyle(s Style) Option { return func(r *renderer) { r.style = s } }

// WithTraversal numbers every node by its position in the given order.
func WithTraversal(o bst.Order) Option { return func(r *renderer) { r.order = &o } }

// WithCrop fits the view box to the drawn nodes instead of the full frame.
func WithCrop() Option { return func(r *renderer) { r.crop = true } }

// WithHighlight emphasises the nodes with the given IDs.
func WithHighlight(ids ...string) Option {
	return func(r *renderer) {
		if r.highlight == nil {
			r.highlight = make(map[string]bool, len(ids))
		}
		for _, id := range ids {
			r.highlight[id] = true
		}
	}
}

// Render draws l as SVG.
func Render(l graph.Layout, opts ...Option) []byte {
	r := renderer{style: Simple{}}
	for _, opt := range opts {
		opt(&r)
	}

	radius := l.Radius
	if radius <= 0 {
		radius = layout.DefaultRadius
	}
	circles := buildCircles(l, &r, radius)
	edges := buildEdges(l)
	x, y, w, h := frame(l, circles, radius, r.crop)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		x, y, w, h, w, h)
	r.style.RenderDefs(&buf)

	buf.WriteString(`  <g class="edges">` + "\n")
	for _, e := range edges {
		r.style.RenderEdge(&buf, e)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="nodes">` + "\n")
	for _, c := range circles {
		r.style.RenderNode(&buf, c)
	}
	for _, c := range circles {
		r.style.RenderText(&buf, c)
	}
	for _, c := range circles {
		r.style.RenderBadge(&buf, c)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func buildCircles(l graph.Layout, r *renderer, radius float64) []Circle {
	var badges map[string]int
	if r.order != nil {
		ids := l.Traversals[r.order.String()]
		badges = make(map[string]int, len(ids))
		for i, id := range ids {
			badges[id] = i + 1
		}
	}
	circles := make([]Circle, 0, len(l.Nodes))
	for _, n := range l.Nodes {
		circles = append(circles, Circle{
			ID:        n.ID,
			Label:     n.DisplayLabel(),
			CX:        n.X,
			CY:        n.Y,
			R:         radius,
			Highlight: r.highlight[n.ID],
			Badge:     badges[n.ID],
		})
	}
	return circles
}

func buildEdges(l graph.Layout) []Edge {
	pos := make(map[string]graph.Node, len(l.Nodes))
	for _, n := range l.Nodes {
		pos[n.ID] = n
	}
	edges := make([]Edge, 0, len(l.Edges))
	for _, e := range l.Edges {
		src, okS := pos[e.From]
		dst, okD := pos[e.To]
		if !okS || !okD {
			continue
		}
		edges = append(edges, Edge{
			FromID: e.From, ToID: e.To,
			X1: src.X, Y1: src.Y,
			X2: dst.X, Y2: dst.Y,
		})
	}
	return edges
}

// frame returns the view box. A cropped frame spans the node centres padded
// by the radius plus the stroke, with the origin clamped at zero.
func frame(l graph.Layout, circles []Circle, radius float64, crop bool) (x, y, w, h float64) {
	if !crop || len(circles) == 0 {
		return 0, 0, l.Width, l.Height
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range circles {
		minX, maxX = min(minX, c.CX), max(maxX, c.CX)
		minY, maxY = min(minY, c.CY), max(maxY, c.CY)
	}
	pad := radius + 2
	x = max(0, minX-pad)
	y = max(0, minY-pad)
	return x, y, maxX + pad - x, maxY + pad - y
}
