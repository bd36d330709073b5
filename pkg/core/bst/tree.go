package bst

import (
	"fmt"

	"github.com/matzehuels/bstviz/pkg/errors"
)

// Node holds one key. Child links are owning, the parent link is a
// back-reference kept in sync by every structural change. X and Y are layout
// coordinates and carry no structural meaning.
type Node struct {
	Value Value
	X, Y  float64

	left, right, parent *Node
}

// Left returns the left child, or nil.
func (n *Node) Left() *Node { return n.left }

// Right returns the right child, or nil.
func (n *Node) Right() *Node { return n.right }

// Parent returns the parent, or nil for the root and for removed nodes.
func (n *Node) Parent() *Node { return n.parent }

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return n.left == nil && n.right == nil }

// String returns the node's value for display.
func (n *Node) String() string { return n.Value.String() }

func (n *Node) setLeft(c *Node) {
	n.left = c
	if c != nil {
		c.parent = n
	}
}

func (n *Node) setRight(c *Node) {
	n.right = c
	if c != nil {
		c.parent = n
	}
}

// sever drops every link of a node that has left the tree.
func (n *Node) sever() {
	n.left, n.right, n.parent = nil, nil, nil
}

// Tree is an unbalanced binary search tree over a single [Category].
// A Tree is created per demo session and replaced, not cleared.
type Tree struct {
	root *Node
	cat  Category
	size int
}

// New returns an empty tree ordered by c's comparator.
func New(c Category) *Tree {
	if !c.Valid() {
		panic(errors.New(errors.ErrCodeInvalidCategory, "invalid category %d", uint8(c)))
	}
	return &Tree{cat: c}
}

// Category returns the tree's key category.
func (t *Tree) Category() Category { return t.cat }

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node { return t.root }

// Len returns the number of values in the tree.
func (t *Tree) Len() int { return t.size }

// Compare orders two values with the tree's comparator.
func (t *Tree) Compare(a, b Value) int { return t.cat.Compare(a, b) }

// Insert places v in the first empty slot on its search path and returns the
// new node. If a node already holds an equal value the tree is left untouched
// and Insert returns nil, false.
func (t *Tree) Insert(v Value) (*Node, bool) {
	if t.root == nil {
		t.root = &Node{Value: v}
		t.size++
		return t.root, true
	}

	cur := t.root
	for {
		c := t.cat.Compare(v, cur.Value)
		switch {
		case c < 0:
			if cur.left == nil {
				n := &Node{Value: v}
				cur.setLeft(n)
				t.size++
				return n, true
			}
			cur = cur.left
		case c > 0:
			if cur.right == nil {
				n := &Node{Value: v}
				cur.setRight(n)
				t.size++
				return n, true
			}
			cur = cur.right
		default:
			return nil, false
		}
	}
}

// Find returns the node holding a value equal to v, or nil.
func (t *Tree) Find(v Value) *Node {
	cur := t.root
	for cur != nil {
		c := t.cat.Compare(v, cur.Value)
		switch {
		case c < 0:
			cur = cur.left
		case c > 0:
			cur = cur.right
		default:
			return cur
		}
	}
	return nil
}

// Contains reports whether a value equal to v is in the tree.
func (t *Tree) Contains(v Value) bool { return t.Find(v) != nil }

// Delete removes v and reports whether it was present. Deleting an absent
// value is a no-op.
//
// A node with two children is not unlinked: it takes the value of its in-order
// successor (the minimum of its right subtree) and the successor's original
// node is removed instead. The retained node keeps its identity and
// coordinates.
func (t *Tree) Delete(v Value) bool {
	var removed bool
	t.root = t.deleteFrom(t.root, v, &removed)
	if t.root != nil {
		t.root.parent = nil
	}
	if removed {
		t.size--
	}
	return removed
}

func (t *Tree) deleteFrom(n *Node, v Value, removed *bool) *Node {
	if n == nil {
		return nil
	}

	c := t.cat.Compare(v, n.Value)
	switch {
	case c < 0:
		n.setLeft(t.deleteFrom(n.left, v, removed))
		return n
	case c > 0:
		n.setRight(t.deleteFrom(n.right, v, removed))
		return n
	}

	*removed = true
	switch {
	case n.left == nil && n.right == nil:
		n.sever()
		return nil
	case n.left == nil:
		child := n.right
		child.parent = n.parent
		n.sever()
		return child
	case n.right == nil:
		child := n.left
		child.parent = n.parent
		n.sever()
		return child
	}

	succ := MinValueNode(n.right)
	n.Value = succ.Value
	n.setRight(t.deleteFrom(n.right, succ.Value, removed))
	return n
}

// MinValueNode follows left links from n until there are none and returns
// the last node reached: the minimum of the subtree rooted at n.
func MinValueNode(n *Node) *Node {
	if n == nil {
		return nil
	}
	cur := n
	for cur.left != nil {
		cur = cur.left
	}
	return cur
}

// MaxDepth returns the number of levels in the tree; 0 when empty.
func (t *Tree) MaxDepth() int { return Depth(t.root) }

// Depth returns 0 for nil, otherwise 1 + the deeper of n's two subtrees.
func Depth(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + max(Depth(n.left), Depth(n.right))
}

// Level returns the 1-based depth of n counted from the root via parent links.
func Level(n *Node) int {
	level := 0
	for cur := n; cur != nil; cur = cur.parent {
		level++
	}
	return level
}

// Min returns the node with the smallest value, or nil for an empty tree.
func (t *Tree) Min() *Node { return MinValueNode(t.root) }

// String renders the tree's in-order values, e.g. "[20 30 40 50 70]".
func (t *Tree) String() string {
	return fmt.Sprint(t.Values(InOrder))
}
