package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/bstviz/pkg/errors"
	"github.com/matzehuels/bstviz/pkg/graph"
)

// Style defines the visual appearance of a rendered tree.
type Style interface {
	// RenderDefs writes SVG <defs> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderEdge writes the line from a parent to a child.
	RenderEdge(buf *bytes.Buffer, e Edge)
	// RenderNode writes the node's circle.
	RenderNode(buf *bytes.Buffer, c Circle)
	// RenderText writes the node's label.
	RenderText(buf *bytes.Buffer, c Circle)
	// RenderBadge writes the traversal position next to a node.
	RenderBadge(buf *bytes.Buffer, c Circle)
}

// Circle is a node ready to draw.
type Circle struct {
	ID        string
	Label     string
	CX, CY, R float64
	Highlight bool
	Badge     int // 1-based traversal position, 0 for none
}

// Edge is a parent-child line ready to draw.
type Edge struct {
	FromID, ToID   string
	X1, Y1, X2, Y2 float64
}

// StyleFor returns the style registered under name.
func StyleFor(name string) (Style, error) {
	switch name {
	case "", graph.StyleSimple:
		return Simple{}, nil
	case graph.StyleOutlined:
		return Outlined{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "no SVG style %q (must be %s or %s)", name, graph.StyleSimple, graph.StyleOutlined)
}

type palette struct {
	fill, stroke, text   string
	hiFill, hiText, edge string
	badgeColor           string
}

func (p palette) defs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>\n")
	fmt.Fprintf(buf, "    .node-text { font-family: Helvetica, Arial, sans-serif; text-anchor: middle; dominant-baseline: central; }\n")
	fmt.Fprintf(buf, "    .badge { font-family: Helvetica, Arial, sans-serif; font-size: 11px; fill: %s; }\n", p.badgeColor)
	fmt.Fprintf(buf, "  </style>\n")
}

func (p palette) edgeLine(buf *bytes.Buffer, e Edge) {
	fmt.Fprintf(buf, `  <line class="edge" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2" data-parent="%s" data-child="%s"/>`+"\n",
		e.X1, e.Y1, e.X2, e.Y2, p.edge, EscapeXML(e.FromID), EscapeXML(e.ToID))
}

func (p palette) circle(buf *bytes.Buffer, c Circle) {
	fill, class := p.fill, "node"
	if c.Highlight {
		fill, class = p.hiFill, "node highlight"
	}
	stroke := ""
	if p.stroke != "" {
		stroke = fmt.Sprintf(` stroke="%s" stroke-width="2"`, p.stroke)
	}
	fmt.Fprintf(buf, `  <circle id="node-%s" class="%s" cx="%.2f" cy="%.2f" r="%.2f" fill="%s"%s/>`+"\n",
		EscapeXML(c.ID), class, c.CX, c.CY, c.R, fill, stroke)
}

func (p palette) label(buf *bytes.Buffer, c Circle) {
	color := p.text
	if c.Highlight {
		color = p.hiText
	}
	fmt.Fprintf(buf, `  <text class="node-text" x="%.2f" y="%.2f" font-size="%.1f" fill="%s" data-node="%s">%s</text>`+"\n",
		c.CX, c.CY, FontSize(c), color, EscapeXML(c.ID), EscapeXML(c.Label))
}

func (p palette) badge(buf *bytes.Buffer, c Circle) {
	if c.Badge == 0 {
		return
	}
	fmt.Fprintf(buf, `  <text class="badge" x="%.2f" y="%.2f">%d</text>`+"\n",
		c.CX+c.R*0.8, c.CY-c.R*0.8, c.Badge)
}

// Simple draws filled circles with white labels.
type Simple struct{}

var simplePalette = palette{
	fill: "#2b6cb0", text: "#ffffff",
	hiFill: "#f6e05e", hiText: "#1a202c",
	edge: "#4a5568", badgeColor: "#c53030",
}

func (Simple) RenderDefs(buf *bytes.Buffer)            { simplePalette.defs(buf) }
func (Simple) RenderEdge(buf *bytes.Buffer, e Edge)    { simplePalette.edgeLine(buf, e) }
func (Simple) RenderNode(buf *bytes.Buffer, c Circle)  { simplePalette.circle(buf, c) }
func (Simple) RenderText(buf *bytes.Buffer, c Circle)  { simplePalette.label(buf, c) }
func (Simple) RenderBadge(buf *bytes.Buffer, c Circle) { simplePalette.badge(buf, c) }

// Outlined draws white circles with black outlines and labels, suited to
// printing.
type Outlined struct{}

var outlinedPalette = palette{
	fill: "#ffffff", stroke: "#000000", text: "#000000",
	hiFill: "#fefcbf", hiText: "#000000",
	edge: "#000000", badgeColor: "#000000",
}

func (Outlined) RenderDefs(buf *bytes.Buffer)            { outlinedPalette.defs(buf) }
func (Outlined) RenderEdge(buf *bytes.Buffer, e Edge)    { outlinedPalette.edgeLine(buf, e) }
func (Outlined) RenderNode(buf *bytes.Buffer, c Circle)  { outlinedPalette.circle(buf, c) }
func (Outlined) RenderText(buf *bytes.Buffer, c Circle)  { outlinedPalette.label(buf, c) }
func (Outlined) RenderBadge(buf *bytes.Buffer, c Circle) { outlinedPalette.badge(buf, c) }
