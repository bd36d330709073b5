// Package graph provides serialization types for laid-out search trees.
//
// This package defines the wire format for bstviz's tree data, used for JSON
// and YAML files, API responses, and the render cache.
//
// # Architecture
//
// The package sits at the serialization boundary between the live tree and
// external formats:
//
//   - [Layout], [Node], [Edge]: serialization types (this package)
//   - pkg/core/bst.Tree: internal tree with node coordinates
//
// Use [FromTree] and [ToTree] to convert between them.
//
// # Layout Serialization
//
// Nodes are listed in pre-order, so a parent always precedes its children and
// re-inserting the labels in order rebuilds the exact shape:
//
//	{
//	  "category": "integer",
//	  "width": 800,
//	  "height": 600,
//	  "radius": 20,
//	  "nodes": [
//	    {"id": "50", "label": "50", "x": 400, "y": 50, "depth": 1},
//	    {"id": "30", "label": "30", "x": 215, "y": 300, "depth": 2, "parent": "50", "side": "left"}
//	  ],
//	  "edges": [{"from": "50", "to": "30"}],
//	  "traversals": {"in-order": ["30", "50"], ...}
//	}
//
// Common operations:
//
//	l := graph.FromTree(tree, 800, 600, 20)
//	data, _ := graph.MarshalLayout(l)          // Layout → JSON
//	data, _ = graph.MarshalLayoutYAML(l)       // Layout → YAML
//	l, _ = graph.UnmarshalLayout(data)         // JSON → Layout
//	tree, _ := graph.ToTree(l)                 // Layout → Tree
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
