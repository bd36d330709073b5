package input

import (
	"strings"

	"github.com/matzehuels/bstviz/pkg/core/bst"
)

// Separator joins values in their text form.
const Separator = ", "

// Result is the outcome of [Parse].
type Result struct {
	Values  []bst.Value
	Dropped int // invalid or repeated tokens
}

// Status returns the one-line summary shown after parsing.
func (r Result) Status() string {
	if r.Dropped > 0 {
		return "Some inputs were invalid or duplicates and have been ignored."
	}
	return "All inputs are valid and have been added."
}

// Parse splits text on commas and keeps every token that is a valid,
// not yet seen value of c, in input order. Blank input yields no values and
// nothing dropped.
func Parse(c bst.Category, text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}
	return ParseTokens(c, strings.Split(text, ","))
}

// ParseTokens is Parse for input that is already split.
func ParseTokens(c bst.Category, tokens []string) Result {
	var res Result
	seen := make(map[string]bool)
	for _, tok := range tokens {
		v, err := c.Parse(tok)
		if err != nil || seen[v.Key()] {
			res.Dropped++
			continue
		}
		seen[v.Key()] = true
		res.Values = append(res.Values, v)
	}
	return res
}

// Join renders values in the form Parse accepts.
func Join(values []bst.Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, Separator)
}
