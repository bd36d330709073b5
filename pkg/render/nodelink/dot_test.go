package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/bstviz/pkg/core/bst"
)

func tree(vals ...int64) *bst.Tree {
	t := bst.New(bst.Integer)
	for _, v := range vals {
		t.Insert(bst.Int(v))
	}
	return t
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(tree(50, 30, 70, 20, 40), Options{})

	for _, want := range []string{
		"graph T {",
		`"50" [label="50"];`,
		`"50" -- "30";`,
		`"50" -- "70";`,
		`"30" -- "20";`,
		`"30" -- "40";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "invis") {
		t.Error("full tree should not need placeholders")
	}
	// left edge is declared before right so Graphviz keeps the order
	if strings.Index(dot, `"50" -- "30"`) > strings.Index(dot, `"50" -- "70"`) {
		t.Error("right child declared before left child")
	}
}

func TestToDOT_SingleChildPlaceholder(t *testing.T) {
	tests := []struct {
		name  string
		vals  []int64
		ghost string
		real  string
	}{
		{"RightOnly", []int64{1, 2}, `"1" -- "1#0" [style=invis];`, `"1" -- "2";`},
		{"LeftOnly", []int64{2, 1}, `"2" -- "2#1" [style=invis];`, `"2" -- "1";`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(tree(tt.vals...), Options{})
			if !strings.Contains(dot, tt.ghost) || !strings.Contains(dot, tt.real) {
				t.Errorf("DOT missing %q or %q\n%s", tt.ghost, tt.real, dot)
			}
		})
	}
}

func TestToDOT_Options(t *testing.T) {
	dot := ToDOT(tree(5, 3), Options{Detailed: true, Highlight: []string{"3"}})
	if !strings.Contains(dot, `label="3\ndepth 2"`) {
		t.Errorf("detailed label missing\n%s", dot)
	}
	if !strings.Contains(dot, `"3" [label="3\ndepth 2", fillcolor="#f6e05e"`) {
		t.Errorf("highlight missing\n%s", dot)
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(bst.New(bst.Word), Options{})
	if strings.Contains(dot, "--") {
		t.Errorf("empty tree produced edges\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %s, want %s", out, want)
	}

	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("normalizeViewBox without viewBox = %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz render in short mode")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(tree(2, 1, 3), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}
