// Package svg renders a serialized tree layout as a standalone SVG image.
//
// [Render] draws one circle per node at its laid-out centre, a line from
// every parent to each child, and the node's label inside the circle. The
// frame is the layout's width and height unless [WithCrop] shrinks the
// view box to the nodes actually drawn.
//
//	svg := svg.Render(layout,
//	    svg.WithStyle(svg.Outlined{}),
//	    svg.WithTraversal(bst.InOrder),
//	    svg.WithHighlight("30"),
//	)
//
// # Options
//
//   - [WithStyle]: visual style ([Simple] or [Outlined])
//   - [WithTraversal]: number each node by its position in a traversal
//   - [WithHighlight]: emphasise the given node IDs
//   - [WithCrop]: fit the view box to the nodes
package svg
