package svg

import (
	"strings"
	"testing"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/core/layout"
	"github.com/matzehuels/bstviz/pkg/errors"
	"github.com/matzehuels/bstviz/pkg/graph"
)

func exampleLayout() graph.Layout {
	t := bst.New(bst.Integer)
	for _, v := range []int64{50, 30, 70, 20, 40} {
		t.Insert(bst.Int(v))
	}
	layout.AssignPosition(t, layout.DefaultBounds(800, 600, 20))
	return graph.FromTree(t, 800, 600, 20)
}

func TestRender(t *testing.T) {
	out := string(Render(exampleLayout()))

	checks := []struct {
		substr string
		count  int
	}{
		{"<circle ", 5},
		{"<line ", 4},
		{`class="node-text"`, 5},
		{`class="badge"`, 0},
		{"highlight", 0},
	}
	for _, c := range checks {
		if got := strings.Count(out, c.substr); got != c.count {
			t.Errorf("count(%q) = %d, want %d", c.substr, got, c.count)
		}
	}
	for _, want := range []string{
		`viewBox="0.0 0.0 800.0 600.0" width="800" height="600"`,
		`<circle id="node-50" class="node" cx="400.00" cy="50.00" r="20.00"`,
		`x1="215.00" y1="300.00" x2="307.50" y2="550.00"`,
		`data-parent="30" data-child="40"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("output not closed")
	}
}

func TestRender_Options(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want []string
	}{
		{
			name: "Traversal",
			opts: []Option{WithTraversal(bst.PostOrder)},
			want: []string{`y="534.00">1</text>`, `y="284.00">3</text>`, `y="34.00">5</text>`},
		},
		{
			name: "Highlight",
			opts: []Option{WithHighlight("30", "70")},
			want: []string{`id="node-30" class="node highlight"`, `id="node-70" class="node highlight"`, `id="node-50" class="node"`},
		},
		{
			name: "Crop",
			opts: []Option{WithCrop()},
			want: []string{`viewBox="100.5 28.0 506.5 544.0"`},
		},
		{
			name: "Outlined",
			opts: []Option{WithStyle(Outlined{})},
			want: []string{`fill="#ffffff" stroke="#000000"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := string(Render(exampleLayout(), tt.opts...))
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q", w)
				}
			}
		})
	}
}

func TestRender_Empty(t *testing.T) {
	l := graph.FromTree(bst.New(bst.Letter), 300, 200, 0)
	out := string(Render(l, WithCrop()))
	if strings.Contains(out, "<circle") {
		t.Error("empty layout drew a node")
	}
	if !strings.Contains(out, `viewBox="0.0 0.0 300.0 200.0"`) {
		t.Errorf("empty layout should keep its frame:\n%s", out)
	}
}

func TestStyleFor(t *testing.T) {
	tests := []struct {
		name    string
		want    Style
		wantErr bool
	}{
		{"", Simple{}, false},
		{"simple", Simple{}, false},
		{"outlined", Outlined{}, false},
		{"graphviz", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StyleFor(tt.name)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidStyle) {
					t.Errorf("StyleFor(%q) error = %v, want %s", tt.name, err, errors.ErrCodeInvalidStyle)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("StyleFor(%q) = %T, %v", tt.name, got, err)
			}
		})
	}
}

func TestFontSize(t *testing.T) {
	short := FontSize(Circle{Label: "7", R: 20})
	long := FontSize(Circle{Label: "12345.67", R: 20})
	if short != fontSizeMax {
		t.Errorf("FontSize(short) = %v, want %v", short, fontSizeMax)
	}
	if long >= short || long < fontSizeMin {
		t.Errorf("FontSize(long) = %v, want within [%v, %v)", long, fontSizeMin, short)
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`a<b & "c"`); got != "a&lt;b &amp; &#34;c&#34;" {
		t.Errorf("EscapeXML() = %q", got)
	}
}
