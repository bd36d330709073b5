package input

import (
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/matzehuels/bstviz/pkg/core/bst"
)

const (
	minRandom = 6
	maxRandom = 12
)

// words is the pool for random Word inputs.
var words = []string{
	"ace", "ant", "bat", "bag", "bed", "can", "cat", "cow", "dog", "ear",
	"egg", "eat", "fox", "fun", "hat", "jam", "kid", "leg", "man", "net",
	"owl", "pig", "rat", "toy", "zip",
}

// Random returns between 6 and 12 distinct values of c:
//
//   - Integer: whole numbers in [-100, 100]
//   - Double: numbers in [-100, 100) rounded to two decimals
//   - Letter: upper-case A to Z
//   - Word: short lower-case words
//   - Mixed: an integer or a two-decimal number in [0, 100], equally likely
//
// Mixed draws stay non-negative so the list survives a round trip through
// Join and Parse.
func Random(c bst.Category, rng *rand.Rand) []bst.Value {
	n := minRandom + rng.IntN(maxRandom-minRandom+1)
	seen := make(map[string]bool, n)
	out := make([]bst.Value, 0, n)
	for len(out) < n {
		v := draw(c, rng)
		if seen[v.Key()] {
			continue
		}
		seen[v.Key()] = true
		out = append(out, v)
	}
	return out
}

func draw(c bst.Category, rng *rand.Rand) bst.Value {
	switch c {
	case bst.Integer:
		return bst.Int(int64(rng.IntN(201) - 100))
	case bst.Double:
		return bst.Float(cents(rng.Float64()*200 - 100))
	case bst.Letter:
		return bst.Char(string(rune('A' + rng.IntN(26))))
	case bst.Word:
		return bst.Text(words[rng.IntN(len(words))])
	case bst.Mixed:
		if rng.IntN(2) == 0 {
			return bst.Numeral(strconv.Itoa(rng.IntN(101)))
		}
		return bst.Numeral(strconv.FormatFloat(cents(rng.Float64()*100), 'f', -1, 64))
	}
	panic("input: invalid category " + c.String())
}

// cents rounds to two decimals. Adding zero turns -0 into 0.
func cents(f float64) float64 {
	return math.Round(f*100)/100 + 0
}
