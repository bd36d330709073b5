package bst

import (
	"iter"
	"strings"

	"github.com/matzehuels/bstviz/pkg/errors"
)

// Order selects a depth-first traversal.
type Order uint8

const (
	// InOrder visits left, self, right. Over a valid tree it yields values in
	// strictly ascending order.
	InOrder Order = iota
	// PreOrder visits self, left, right.
	PreOrder
	// PostOrder visits left, right, self.
	PostOrder
)

// Orders lists the traversals in the order the visualiser presents them.
var Orders = []Order{InOrder, PostOrder, PreOrder}

var orderNames = [...]string{
	InOrder:   "in-order",
	PreOrder:  "pre-order",
	PostOrder: "post-order",
}

func (o Order) String() string {
	if int(o) < len(orderNames) {
		return orderNames[o]
	}
	return "unknown"
}

// ParseOrder resolves a traversal by name. "in-order", "inorder" and
// "in_order" are all accepted.
func ParseOrder(name string) (Order, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(name))
	for i, n := range orderNames {
		if strings.ReplaceAll(n, "-", "") == norm {
			return Order(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidOrder,
		"unknown traversal %q (must be in-order, pre-order or post-order)", name)
}

// MarshalText implements encoding.TextMarshaler.
func (o Order) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Order) UnmarshalText(b []byte) error {
	parsed, err := ParseOrder(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Walk returns a lazy sequence of the tree's nodes in the given order. The
// sequence can be ranged over any number of times; each range starts from the
// current root. Breaking out early leaves the tree untouched. The tree must
// not be mutated while a range is in progress.
func (t *Tree) Walk(o Order) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		walk(t.root, o, yield)
	}
}

func walk(n *Node, o Order, yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	switch o {
	case PreOrder:
		return yield(n) && walk(n.left, o, yield) && walk(n.right, o, yield)
	case PostOrder:
		return walk(n.left, o, yield) && walk(n.right, o, yield) && yield(n)
	default:
		return walk(n.left, o, yield) && yield(n) && walk(n.right, o, yield)
	}
}

// Values collects the values of Walk(o).
func (t *Tree) Values(o Order) []Value {
	out := make([]Value, 0, t.size)
	for n := range t.Walk(o) {
		out = append(out, n.Value)
	}
	return out
}

// Strings collects the display form of Walk(o).
func (t *Tree) Strings(o Order) []string {
	out := make([]string, 0, t.size)
	for n := range t.Walk(o) {
		out = append(out, n.Value.String())
	}
	return out
}
