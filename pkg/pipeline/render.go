package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/graph"
	"github.com/matzehuels/bstviz/pkg/render/nodelink"
	"github.com/matzehuels/bstviz/pkg/render/svg"
)

// Render generates output artifacts in the requested formats. The tree is
// needed for Graphviz output; everything else draws from the layout.
func Render(ctx context.Context, t *bst.Tree, l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string
	dotFor := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(t, nodelink.Options{Highlight: opts.Highlight})
		}
		return dot
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			if opts.IsGraphviz() {
				data, err = nodelink.RenderSVG(ctx, dotFor())
			} else {
				data = svg.Render(l, buildSVGOptions(opts)...)
			}
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dotFor())
		case FormatDOT:
			data = []byte(dotFor())
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		case FormatYAML:
			data, err = graph.MarshalLayoutYAML(l)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []svg.Option {
	style, _ := svg.StyleFor(opts.Style)
	svgOpts := []svg.Option{svg.WithStyle(style)}
	if opts.order != nil {
		svgOpts = append(svgOpts, svg.WithTraversal(*opts.order))
	}
	if len(opts.Highlight) > 0 {
		svgOpts = append(svgOpts, svg.WithHighlight(opts.Highlight...))
	}
	if opts.Crop {
		svgOpts = append(svgOpts, svg.WithCrop())
	}
	return svgOpts
}
