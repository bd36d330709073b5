// Package render turns laid-out search trees into images.
//
// # Overview
//
// Two renderers are provided:
//
//   - [svg]: draws a [graph.Layout] as-is, so the picture matches the
//     coordinates the layout engine computed
//   - [nodelink]: hands the tree to Graphviz, which picks its own
//     positions and can also produce PNG
//
//	l := graph.FromTree(tree, 800, 600, 20)
//	out := svg.Render(l, svg.WithTraversal(bst.InOrder))
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{})
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// [svg]: github.com/matzehuels/bstviz/pkg/render/svg
// [nodelink]: github.com/matzehuels/bstviz/pkg/render/nodelink
// [graph.Layout]: github.com/matzehuels/bstviz/pkg/graph.Layout
package render
