// Package input turns user text into tree values and generates random
// demo inputs.
//
// Text is a comma-separated list. Each token is trimmed and parsed with
// [bst.Category.Parse]; tokens that do not belong to the category, and
// repeats of a key already seen, are dropped and counted so callers can tell
// the user something was ignored:
//
//	res := input.Parse(bst.Letter, "b, A, 7, b")
//	res.Values  // [b A]
//	res.Dropped // 2
//
// [Random] produces the same kind of list the demo's randomize button does:
// between 6 and 12 distinct values drawn per category.
package input
