package bst

import "github.com/matzehuels/bstviz/pkg/errors"

// Check verifies the structural invariants: strict ordering of every subtree,
// parent links matching child links, a parentless root and a size equal to
// the node count. It returns an INVARIANT_VIOLATION error describing the
// first problem found.
func (t *Tree) Check() error {
	if t.root != nil && t.root.parent != nil {
		return errors.New(errors.ErrCodeInvariant, "root %s has parent %s", t.root, t.root.parent)
	}
	count, err := t.check(t.root, nil, nil)
	if err != nil {
		return err
	}
	if count != t.size {
		return errors.New(errors.ErrCodeInvariant, "size %d but %d nodes reachable", t.size, count)
	}
	return nil
}

func (t *Tree) check(n *Node, lo, hi *Value) (int, error) {
	if n == nil {
		return 0, nil
	}
	if n.Value.cat != t.cat {
		return 0, errors.New(errors.ErrCodeInvariant, "node %s is %s in a %s tree", n, n.Value.cat, t.cat)
	}
	if lo != nil && t.cat.Compare(n.Value, *lo) <= 0 {
		return 0, errors.New(errors.ErrCodeInvariant, "node %s not greater than ancestor %s", n, *lo)
	}
	if hi != nil && t.cat.Compare(n.Value, *hi) >= 0 {
		return 0, errors.New(errors.ErrCodeInvariant, "node %s not less than ancestor %s", n, *hi)
	}
	if n.left != nil && n.left.parent != n {
		return 0, errors.New(errors.ErrCodeInvariant, "left child %s of %s has wrong parent", n.left, n)
	}
	if n.right != nil && n.right.parent != n {
		return 0, errors.New(errors.ErrCodeInvariant, "right child %s of %s has wrong parent", n.right, n)
	}

	l, err := t.check(n.left, lo, &n.Value)
	if err != nil {
		return 0, err
	}
	r, err := t.check(n.right, &n.Value, hi)
	if err != nil {
		return 0, err
	}
	return l + r + 1, nil
}
