package step

import (
	"github.com/matzehuels/bstviz/pkg/core/bst"
)

// Case is the shape of a deletion.
type Case uint8

const (
	// Leaf nodes are detached.
	Leaf Case = iota
	// OneChild nodes are replaced by their only child.
	OneChild
	// TwoChildren nodes take their in-order successor's value.
	TwoChildren
)

func (c Case) String() string {
	switch c {
	case Leaf:
		return "leaf"
	case OneChild:
		return "one-child"
	default:
		return "two-children"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Case) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// DeletePlan describes how deleting a value will reshape the tree, computed
// before the tree is touched.
type DeletePlan struct {
	Case   Case
	Target *bst.Node

	// Child is the promoted node of a OneChild deletion.
	Child *bst.Node

	// Successor is the node whose value replaces Target's in a TwoChildren
	// deletion: the minimum of Target's right subtree.
	Successor *bst.Node
}

// PlanDelete classifies the deletion of v. It returns nil if v is absent.
func PlanDelete(t *bst.Tree, v bst.Value) *DeletePlan {
	n := t.Find(v)
	if n == nil {
		return nil
	}
	switch {
	case n.IsLeaf():
		return &DeletePlan{Case: Leaf, Target: n}
	case n.Left() == nil:
		return &DeletePlan{Case: OneChild, Target: n, Child: n.Right()}
	case n.Right() == nil:
		return &DeletePlan{Case: OneChild, Target: n, Child: n.Left()}
	default:
		return &DeletePlan{Case: TwoChildren, Target: n, Successor: bst.MinValueNode(n.Right())}
	}
}
