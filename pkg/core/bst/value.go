package bst

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/bstviz/pkg/errors"
)

// Value is one key of a given category. Build values with the constructors
// or [Category.Parse]; the zero Value has no display text.
type Value struct {
	cat  Category
	num  float64
	text string
}

// Int returns an Integer value.
func Int(v int64) Value {
	return Value{cat: Integer, num: float64(v), text: strconv.FormatInt(v, 10)}
}

// Float returns a Double value. NaN and ±Inf have no place in the ordering
// and panic with an INVARIANT_VIOLATION error; [Category.Parse] rejects them
// as input.
func Float(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(errors.New(errors.ErrCodeInvariant, "double value must be finite, got %v", v))
	}
	return Value{cat: Double, num: v, text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// Char returns a Letter value. s is expected to be a single ASCII letter.
func Char(s string) Value {
	return Value{cat: Letter, text: s}
}

// Text returns a Word value.
func Text(s string) Value {
	return Value{cat: Word, text: s}
}

// Numeral returns a Mixed value for an already validated numeric token.
// The token is kept verbatim for display, so "7.50" stays "7.50".
func Numeral(token string) Value {
	f, _ := strconv.ParseFloat(token, 64)
	return Value{cat: Mixed, num: f, text: token}
}

var (
	letterRe  = regexp.MustCompile(`^[A-Za-z]$`)
	wordRe    = regexp.MustCompile(`^[A-Za-z]+$`)
	numeralRe = regexp.MustCompile(`^[0-9]*\.?[0-9]+$`)
)

// Parse reads a single trimmed token as a value of c.
func (c Category) Parse(token string) (Value, error) {
	token = strings.TrimSpace(token)
	switch c {
	case Integer:
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return Value{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "not an integer: %q", token)
		}
		return Int(n), nil
	case Double:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, errors.New(errors.ErrCodeInvalidInput, "not a decimal number: %q", token)
		}
		return Float(f), nil
	case Letter:
		if !letterRe.MatchString(token) {
			return Value{}, errors.New(errors.ErrCodeInvalidInput, "not a single letter: %q", token)
		}
		return Char(token), nil
	case Word:
		if !wordRe.MatchString(token) {
			return Value{}, errors.New(errors.ErrCodeInvalidInput, "not a word: %q", token)
		}
		return Text(token), nil
	case Mixed:
		if !numeralRe.MatchString(token) {
			return Value{}, errors.New(errors.ErrCodeInvalidInput, "not a numeric token: %q", token)
		}
		return Numeral(token), nil
	}
	return Value{}, errors.New(errors.ErrCodeInvalidCategory, "invalid category %d", uint8(c))
}

// MustParse is like Parse but panics on error. Intended for tests and
// literals.
func (c Category) MustParse(token string) Value {
	v, err := c.Parse(token)
	if err != nil {
		panic(err)
	}
	return v
}

// Category returns the category the value belongs to.
func (v Value) Category() Category { return v.cat }

// Float64 returns the numeric magnitude of a numeric value, 0 otherwise.
func (v Value) Float64() float64 { return v.num }

// String returns the display form of the value.
func (v Value) String() string { return v.text }

// Key identifies a value for position lookups and input de-duplication.
// Two values with the same key compare equal; the converse does not hold for
// Mixed values ("7" and "07" are distinct keys but duplicates in a tree).
func (v Value) Key() string { return v.text }

// MarshalText implements encoding.TextMarshaler.
func (v Value) MarshalText() ([]byte, error) { return []byte(v.text), nil }
