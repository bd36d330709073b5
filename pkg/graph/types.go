package graph

import "slices"

// Visual styles for rendering.
const (
	StyleSimple   = "simple"
	StyleOutlined = "outlined"
	StyleGraphviz = "graphviz"
)

// Child sides.
const (
	SideLeft  = "left"
	SideRight = "right"
)

// Styles lists the accepted style names.
var Styles = []string{StyleSimple, StyleOutlined, StyleGraphviz}

// ValidStyle reports whether s names a known style.
func ValidStyle(s string) bool {
	return slices.Contains(Styles, s)
}

// Layout is the serialization format for a laid-out tree.
type Layout struct {
	Category string  `json:"category" yaml:"category"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Radius   float64 `json:"radius" yaml:"radius"`
	Style    string  `json:"style,omitempty" yaml:"style,omitempty"`

	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`

	// Traversals maps an order name ("in-order", "pre-order", "post-order")
	// to node IDs in visiting order.
	Traversals map[string][]string `json:"traversals,omitempty" yaml:"traversals,omitempty"`
}

// Node is a positioned tree node.
type Node struct {
	ID     string  `json:"id" yaml:"id"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"` // Display label (defaults to ID)
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Depth  int     `json:"depth" yaml:"depth"` // 1 for the root
	Parent string  `json:"parent,omitempty" yaml:"parent,omitempty"`
	Side   string  `json:"side,omitempty" yaml:"side,omitempty"` // "left" or "right" of Parent
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge links a parent to a child.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// NodeByID returns the node with the given ID.
func (l *Layout) NodeByID(id string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
