// Package layout assigns 2D coordinates to the nodes of a [bst.Tree].
//
// The algorithm is a pure top-down bisection. Each node sits at the midpoint
// of the horizontal range it was given and at a height fixed by its depth;
// its children split the range on either side of it, keeping a minimum gap.
// There is no collision resolution: under heavy skew, distant subtrees may
// overlap. That is accepted.
//
// Vertical spacing is sized so the deepest level lands exactly on the bottom
// padding line:
//
//	spacing = (Height - PaddingTop - PaddingBottom) / max(maxDepth-1, 1)
//	y       = PaddingTop + (depth-1) * spacing
//
// Coordinates are a function of tree shape and [Bounds] only. Re-run
// [AssignPosition] after every structural change and whenever the drawing
// rectangle changes.
//
// # Planned positions
//
// A step-by-step demo wants every node to appear at its final resting place
// the moment it is inserted. [Plan] builds a throwaway tree from the complete
// pending input list, lays it out, and returns the coordinates keyed by value
// so a live tree can be positioned as it grows ([Positions.Apply]).
package layout
