package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bstviz/pkg/core/bst"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds each node's depth to its label.
	Detailed bool

	// Highlight names node IDs (value keys) to fill in a contrasting colour.
	Highlight []string
}

// ToDOT converts a tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(t *bst.Tree, opts Options) string {
	hi := make(map[string]bool, len(opts.Highlight))
	for _, id := range opts.Highlight {
		hi[id] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph T {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=\"#2b6cb0\", fontcolor=white, fontsize=14, fixedsize=true, width=0.6];\n")
	buf.WriteString("  edge [color=\"#4a5568\", penwidth=2];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for n := range t.Walk(bst.PreOrder) {
		id := n.Value.Key()
		attrs := fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))
		if hi[id] {
			attrs += ", fillcolor=\"#f6e05e\", fontcolor=black"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, attrs)
	}

	buf.WriteString("\n")
	for n := range t.Walk(bst.PreOrder) {
		if n.IsLeaf() {
			continue
		}
		id := n.Value.Key()
		for i, c := range []*bst.Node{n.Left(), n.Right()} {
			if c == nil {
				ghost := fmt.Sprintf("%s#%d", id, i)
				fmt.Fprintf(&buf, "  %q [style=invis, label=\"\"];\n", ghost)
				fmt.Fprintf(&buf, "  %q -- %q [style=invis];\n", id, ghost)
				continue
			}
			fmt.Fprintf(&buf, "  %q -- %q;\n", id, c.Value.Key())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *bst.Node, detailed bool) string {
	if !detailed {
		return n.Value.String()
	}
	return fmt.Sprintf("%s\ndepth %d", n.Value, bst.Level(n))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based <svg> tag with one sized
// in pixels from the view box.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
