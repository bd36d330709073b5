package pipeline

import (
	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/core/layout"
	"github.com/matzehuels/bstviz/pkg/graph"
)

// Layout positions every node of t inside the bounds of opts and returns
// the serialized layout.
func Layout(t *bst.Tree, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	layout.AssignPosition(t, opts.Bounds())

	l := graph.FromTree(t, opts.Width, opts.Height, opts.Radius)
	l.Style = opts.Style
	return l, nil
}
