package bst

import (
	"slices"
	"testing"
)

func ints(vs ...int64) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Int(v)
	}
	return out
}

func build(t *testing.T, c Category, vals []Value) *Tree {
	t.Helper()
	tr := New(c)
	for _, v := range vals {
		tr.Insert(v)
	}
	if err := tr.Check(); err != nil {
		t.Fatalf("Check() after build: %v", err)
	}
	return tr
}

func strs(vals []Value) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.String()
	}
	return out
}

func TestInsert_ExampleTree(t *testing.T) {
	tr := build(t, Integer, ints(50, 30, 70, 20, 40))

	if got, want := strs(tr.Values(InOrder)), []string{"20", "30", "40", "50", "70"}; !slices.Equal(got, want) {
		t.Errorf("in-order = %v, want %v", got, want)
	}
	if tr.Root().Value.String() != "50" {
		t.Errorf("root = %s, want 50", tr.Root())
	}
	if tr.MaxDepth() != 3 {
		t.Errorf("MaxDepth() = %d, want 3", tr.MaxDepth())
	}
	if tr.Len() != 5 {
		t.Errorf("Len() = %d, want 5", tr.Len())
	}
}

func TestInsert_ReturnsLinkedNode(t *testing.T) {
	tr := New(Integer)
	root, ok := tr.Insert(Int(50))
	if !ok || root != tr.Root() || root.Parent() != nil {
		t.Fatalf("first insert should become the parentless root")
	}

	n, ok := tr.Insert(Int(30))
	if !ok {
		t.Fatal("Insert(30) rejected")
	}
	if n.Parent() != root || root.Left() != n {
		t.Errorf("Insert(30) not linked as left child of root")
	}
}

func TestInsert_DuplicateLeavesTreeIdentical(t *testing.T) {
	tr := build(t, Integer, ints(50, 30, 70))
	before := slices.Collect(tr.Walk(PreOrder))

	n, ok := tr.Insert(Int(30))
	if ok || n != nil {
		t.Fatalf("Insert(duplicate) = %v, %v; want nil, false", n, ok)
	}

	after := slices.Collect(tr.Walk(PreOrder))
	if !slices.Equal(before, after) {
		t.Errorf("node identities changed after duplicate insert")
	}
	if tr.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tr.Len())
	}
}

func TestDelete_TwoChildrenKeepsNodeIdentity(t *testing.T) {
	tr := build(t, Integer, ints(50, 30, 70, 20, 40))
	target := tr.Find(Int(30))
	target.X, target.Y = 11, 22
	succ := MinValueNode(target.Right())

	if !tr.Delete(Int(30)) {
		t.Fatal("Delete(30) = false")
	}
	if err := tr.Check(); err != nil {
		t.Fatal(err)
	}

	if target.Value.String() != succ.Value.String() || target.Value.String() != "40" {
		t.Errorf("retained node value = %s, want successor 40", target.Value)
	}
	if tr.Root().Left() != target {
		t.Errorf("retained node is no longer the root's left child")
	}
	if target.X != 11 || target.Y != 22 {
		t.Errorf("retained node coordinates = (%v, %v), want (11, 22)", target.X, target.Y)
	}
	if got, want := strs(tr.Values(InOrder)), []string{"20", "40", "50", "70"}; !slices.Equal(got, want) {
		t.Errorf("in-order = %v, want %v", got, want)
	}
	if succ.Parent() != nil || succ.Left() != nil || succ.Right() != nil {
		t.Errorf("removed successor node still linked")
	}
}

func TestDelete_Leaf(t *testing.T) {
	tr := build(t, Integer, ints(50, 30, 70, 20, 40))
	n30 := tr.Find(Int(30))

	tr.Delete(Int(20))

	if got, want := strs(tr.Values(InOrder)), []string{"30", "40", "50", "70"}; !slices.Equal(got, want) {
		t.Errorf("in-order = %v, want %v", got, want)
	}
	if n30.Left() != nil {
		t.Errorf("node 30 left = %v, want nil", n30.Left())
	}
}

func TestDelete_SingleChildPromotion(t *testing.T) {
	tests := []struct {
		name    string
		vals    []Value
		del     int64
		promote int64
	}{
		{"left only", ints(50, 30, 20), 30, 20},
		{"right only", ints(50, 30, 40), 30, 40},
		{"root with right child", ints(50, 70, 60), 50, 70},
		{"root with left child", ints(50, 30), 50, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := build(t, Integer, tt.vals)
			target := tr.Find(Int(tt.del))
			oldParent := target.Parent()
			child := tr.Find(Int(tt.promote))

			tr.Delete(Int(tt.del))
			if err := tr.Check(); err != nil {
				t.Fatal(err)
			}
			if child.Parent() != oldParent {
				t.Errorf("promoted %d parent = %v, want %v", tt.promote, child.Parent(), oldParent)
			}
			if oldParent == nil && tr.Root() != child {
				t.Errorf("root = %v, want promoted %d", tr.Root(), tt.promote)
			}
		})
	}
}

func TestDelete_AbsentIsNoop(t *testing.T) {
	tr := build(t, Integer, ints(50, 30, 70))
	before := slices.Collect(tr.Walk(PreOrder))

	if tr.Delete(Int(99)) {
		t.Error("Delete(absent) = true")
	}
	if !slices.Equal(before, slices.Collect(tr.Walk(PreOrder))) || tr.Len() != 3 {
		t.Error("Delete(absent) changed the tree")
	}

	empty := New(Word)
	if empty.Delete(Text("x")) {
		t.Error("Delete on empty tree = true")
	}
}

func TestDelete_EveryValue(t *testing.T) {
	vals := ints(50, 30, 70, 20, 40, 60, 80, 35, 45, 65)
	for _, v := range vals {
		t.Run(v.String(), func(t *testing.T) {
			tr := build(t, Integer, vals)
			tr.Delete(v)
			if err := tr.Check(); err != nil {
				t.Fatal(err)
			}
			if tr.Len() != len(vals)-1 {
				t.Errorf("Len() = %d, want %d", tr.Len(), len(vals)-1)
			}
			for _, o := range Orders {
				for n := range tr.Walk(o) {
					if n.Value.Key() == v.Key() {
						t.Errorf("%s still contains %s", o, v)
					}
				}
			}
		})
	}
}

func TestMinValueNode(t *testing.T) {
	tr := build(t, Integer, ints(50, 30, 70, 20, 40, 60))
	if got := MinValueNode(tr.Find(Int(70))); got.Value.String() != "60" {
		t.Errorf("MinValueNode(70) = %s, want 60", got)
	}
	if got := MinValueNode(tr.Find(Int(40))); got.Value.String() != "40" {
		t.Errorf("MinValueNode(leaf) = %s, want itself", got)
	}
	if MinValueNode(nil) != nil {
		t.Error("MinValueNode(nil) != nil")
	}
	if tr.Min().Value.String() != "20" {
		t.Errorf("Min() = %s, want 20", tr.Min())
	}
}

func TestMaxDepth(t *testing.T) {
	tests := []struct {
		name string
		vals []Value
		want int
	}{
		{"empty", nil, 0},
		{"single", ints(1), 1},
		{"skewed", ints(1, 2, 3, 4), 4},
		{"balanced", ints(2, 1, 3), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := build(t, Integer, tt.vals).MaxDepth(); got != tt.want {
				t.Errorf("MaxDepth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	tr := build(t, Integer, ints(50, 30, 20))
	if got := Level(tr.Find(Int(20))); got != 3 {
		t.Errorf("Level(20) = %d, want 3", got)
	}
	if Level(nil) != 0 {
		t.Error("Level(nil) != 0")
	}
}

func TestCheck_DetectsCorruption(t *testing.T) {
	t.Run("parent mismatch", func(t *testing.T) {
		tr := build(t, Integer, ints(50, 30))
		tr.root.left.parent = nil
		if err := tr.Check(); err == nil {
			t.Error("Check() = nil for broken parent link")
		}
	})
	t.Run("ordering", func(t *testing.T) {
		tr := build(t, Integer, ints(50, 30))
		tr.root.left.Value = Int(60)
		if err := tr.Check(); err == nil {
			t.Error("Check() = nil for misplaced value")
		}
	})
	t.Run("size", func(t *testing.T) {
		tr := build(t, Integer, ints(50, 30))
		tr.size = 7
		if err := tr.Check(); err == nil {
			t.Error("Check() = nil for wrong size")
		}
	})
}

func TestString(t *testing.T) {
	tr := build(t, Integer, ints(2, 1, 3))
	if got := tr.String(); got != "[1 2 3]" {
		t.Errorf("String() = %q, want %q", got, "[1 2 3]")
	}
}
