// Package bst implements the binary search tree behind the visualiser.
//
// The tree is deliberately unbalanced: its shape is purely a function of
// insertion order, which is what a learner is supposed to watch. Keys belong
// to one of five categories (see [Category]) and are ordered by the
// category's comparator.
//
// # Operations
//
//   - [Tree.Insert]: walk from the root, place the value in the first empty
//     slot; duplicates are rejected without touching the tree
//   - [Tree.Delete]: leaf detach, single-child promotion, or two-children
//     replacement by the in-order successor ([MinValueNode] of the right
//     subtree). The two-children case keeps the node and swaps its payload.
//   - [Tree.MaxDepth]: 0 for an empty tree, 1 + max(left, right) otherwise
//   - [Tree.Walk]: lazy in-order, pre-order and post-order sequences
//   - [Tree.Check]: verifies ordering, parent links and size
//
// # Example
//
//	t := bst.New(bst.Integer)
//	for _, v := range []int64{50, 30, 70, 20, 40} {
//	    t.Insert(bst.Int(v))
//	}
//	for n := range t.Walk(bst.InOrder) {
//	    fmt.Println(n.Value) // 20 30 40 50 70
//	}
//
// # Concurrency
//
// A Tree is not safe for concurrent use. One logical actor mutates it at a
// time and every operation runs to completion before returning.
package bst
