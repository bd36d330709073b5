package graph_test

import (
	"fmt"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/core/layout"
	"github.com/matzehuels/bstviz/pkg/graph"
)

func ExampleMarshalLayout() {
	t := bst.New(bst.Integer)
	t.Insert(bst.Int(50))
	t.Insert(bst.Int(30))
	layout.AssignPosition(t, layout.DefaultBounds(800, 600, 20))

	data, err := graph.MarshalLayout(graph.FromTree(t, 800, 600, 20))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(string(data))
	// Output:
	// {
	//   "category": "integer",
	//   "width": 800,
	//   "height": 600,
	//   "radius": 20,
	//   "nodes": [
	//     {
	//       "id": "50",
	//       "label": "50",
	//       "x": 400,
	//       "y": 50,
	//       "depth": 1
	//     },
	//     {
	//       "id": "30",
	//       "label": "30",
	//       "x": 215,
	//       "y": 550,
	//       "depth": 2,
	//       "parent": "50",
	//       "side": "left"
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": "50",
	//       "to": "30"
	//     }
	//   ],
	//   "traversals": {
	//     "in-order": [
	//       "30",
	//       "50"
	//     ],
	//     "post-order": [
	//       "30",
	//       "50"
	//     ],
	//     "pre-order": [
	//       "50",
	//       "30"
	//     ]
	//   }
	// }
}

func ExampleToTree() {
	data := []byte(`{
		"category": "letter",
		"width": 400,
		"height": 300,
		"nodes": [
			{"id": "m", "x": 200, "y": 40},
			{"id": "c", "x": 100, "y": 260, "parent": "m", "side": "left"},
			{"id": "x", "x": 300, "y": 260, "parent": "m", "side": "right"}
		]
	}`)

	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	t, err := graph.ToTree(l)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(t, t.Root().Left().X)
	// Output:
	// [c m x] 100
}
