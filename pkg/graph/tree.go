package graph

import (
	"fmt"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/errors"
)

// FromTree converts a laid-out tree to its serialization format. Node
// coordinates are copied as they are; run a layout pass first.
func FromTree(t *bst.Tree, width, height, radius float64) Layout {
	l := Layout{
		Category:   t.Category().String(),
		Width:      width,
		Height:     height,
		Radius:     radius,
		Nodes:      make([]Node, 0, t.Len()),
		Edges:      make([]Edge, 0, max(t.Len()-1, 0)),
		Traversals: make(map[string][]string, len(bst.Orders)),
	}

	depth := map[*bst.Node]int{}
	for n := range t.Walk(bst.PreOrder) {
		node := Node{
			ID:    n.Value.Key(),
			Label: n.Value.String(),
			X:     n.X,
			Y:     n.Y,
			Depth: 1,
		}
		if p := n.Parent(); p != nil {
			node.Depth = depth[p] + 1
			node.Parent = p.Value.Key()
			node.Side = SideRight
			if p.Left() == n {
				node.Side = SideLeft
			}
			l.Edges = append(l.Edges, Edge{From: node.Parent, To: node.ID})
		}
		depth[n] = node.Depth
		l.Nodes = append(l.Nodes, node)
	}

	for _, o := range bst.Orders {
		ids := make([]string, 0, t.Len())
		for n := range t.Walk(o) {
			ids = append(ids, n.Value.Key())
		}
		l.Traversals[o.String()] = ids
	}
	return l
}

// ToTree rebuilds a tree from its serialization format, restoring node
// coordinates. It fails if the nodes do not describe a valid search tree
// listed in pre-order.
func ToTree(l Layout) (*bst.Tree, error) {
	c, err := bst.ParseCategory(l.Category)
	if err != nil {
		return nil, err
	}
	t := bst.New(c)
	for _, nd := range l.Nodes {
		v, err := c.Parse(nd.DisplayLabel())
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", nd.ID, err)
		}
		n, ok := t.Insert(v)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate node %s", nd.ID)
		}
		if err := checkPlacement(n, nd); err != nil {
			return nil, err
		}
		n.X, n.Y = nd.X, nd.Y
	}
	return t, nil
}

func checkPlacement(n *bst.Node, nd Node) error {
	p := n.Parent()
	switch {
	case p == nil && nd.Parent != "":
		return errors.New(errors.ErrCodeInvalidInput, "node %s: listed under %s but landed at the root", nd.ID, nd.Parent)
	case p != nil && p.Value.Key() != nd.Parent:
		return errors.New(errors.ErrCodeInvalidInput, "node %s: listed under %q but belongs under %s", nd.ID, nd.Parent, p.Value.Key())
	case p != nil && nd.Side != "":
		side := SideRight
		if p.Left() == n {
			side = SideLeft
		}
		if side != nd.Side {
			return errors.New(errors.ErrCodeInvalidInput, "node %s: listed as %s child but belongs on the %s", nd.ID, nd.Side, side)
		}
	}
	return nil
}
