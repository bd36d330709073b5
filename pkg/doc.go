// Package pkg holds the libraries behind bstviz, a binary search tree
// visualiser.
//
// # Overview
//
// bstviz inserts values into a binary search tree, assigns every node a
// position in a drawing frame, and renders the result. Insertions can also be
// replayed one comparison at a time. The pkg directory is organized as:
//
//  1. [core] - Domain logic (values, trees, layout, stepping)
//  2. [graph] - Serializable layout snapshots
//  3. [render] - SVG, DOT and PNG output
//  4. [pipeline] - Orchestration (parse → build → layout → render)
//  5. Infrastructure: [cache], [session], [observability], [httputil]
//
// # Architecture
//
//	comma-separated input
//	         ↓
//	    [core/input] (tokenize, validate, dedupe)
//	         ↓
//	    [core/bst] (insert, delete, traverse)
//	         ↓
//	    [core/layout] (x/y positions per node)
//	         ↓
//	    [graph] → [render/svg] or [render/nodelink]
//	         ↓
//	    SVG/PNG/JSON/YAML/DOT output
//
// [core/step] drives the same tree one event at a time for the terminal
// stepper and the HTTP session API.
//
// # Quick Start
//
//	opts := pipeline.Options{Category: "integer", Input: "50, 30, 70, 20, 40"}
//	t, _, _, _ := pipeline.Build(opts)
//	l, _ := pipeline.Layout(t, opts)
//	out, _ := pipeline.Render(ctx, t, l, opts)
//	os.WriteFile("tree.svg", out["svg"], 0o644)
//
// # Error Handling
//
// Errors carry a code from [errors] (INVALID_INPUT, INVALID_CATEGORY,
// SESSION_NOT_FOUND, ...) that the HTTP layer maps to status codes.
package pkg
