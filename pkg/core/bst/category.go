package bst

import (
	"fmt"
	"strings"

	"github.com/matzehuels/bstviz/pkg/errors"
)

// Category is the declared data type of a tree's keys. It selects both how
// raw tokens are read and how keys are ordered.
type Category uint8

const (
	// Integer keys are base-10 whole numbers.
	Integer Category = iota
	// Double keys are decimal numbers.
	Double
	// Letter keys are a single ASCII letter.
	Letter
	// Word keys are one or more ASCII letters.
	Word
	// Mixed keys are numeric tokens that keep their original spelling.
	Mixed
)

// Categories lists every supported category in display order.
var Categories = []Category{Integer, Double, Letter, Word, Mixed}

var categoryNames = [...]string{
	Integer: "integer",
	Double:  "double",
	Letter:  "letter",
	Word:    "word",
	Mixed:   "mixed",
}

// String returns the category's canonical name.
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Numeric reports whether keys of this category are ordered numerically.
func (c Category) Numeric() bool {
	return c == Integer || c == Double || c == Mixed
}

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	return int(c) < len(categoryNames)
}

// ParseCategory resolves a category by name (case-insensitive).
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidCategory,
		"unknown category %q (must be one of %s)", name, strings.Join(categoryNames[:], ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidCategory, "invalid category %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Compare orders a and b: negative if a < b, zero if they are equal (a
// duplicate), positive if a > b. Numeric categories use the sign of a - b,
// lexical categories compare bytes, so "B" sorts before "a".
//
// Both values must belong to c. A mismatch is a programming error and panics.
func (c Category) Compare(a, b Value) int {
	if a.cat != c || b.cat != c {
		panic(errors.New(errors.ErrCodeInvariant,
			"compare %s with %s under %s comparator", a.cat, b.cat, c))
	}
	if c.Numeric() {
		switch d := a.num - b.num; {
		case d < 0:
			return -1
		case d > 0:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.text, b.text)
}
