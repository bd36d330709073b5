// Package nodelink renders search trees as Graphviz node-link diagrams.
//
// # Overview
//
// This package hands tree drawing to Graphviz instead of the built-in
// layout. Nodes appear as circles connected by lines, ranked top to bottom
// by depth.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG or PNG:
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Child Sides
//
// Graphviz orders the children of a node but does not know "left" from
// "right", so a node with a single child gets an invisible sibling on the
// empty side. That keeps a lone right child to the right of its parent.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
