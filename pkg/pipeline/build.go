package pipeline

import (
	"math/rand/v2"
	"time"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/core/input"
	"github.com/matzehuels/bstviz/pkg/errors"
)

// Build parses the input described by opts and inserts the accepted values
// in order. It returns the tree, the accepted values, and the number of
// dropped tokens.
func Build(opts Options) (*bst.Tree, []bst.Value, int, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, nil, 0, err
	}
	values, dropped, err := Values(opts)
	if err != nil {
		return nil, nil, 0, err
	}

	t := bst.New(opts.category)
	for _, v := range values {
		t.Insert(v)
	}
	return t, values, dropped, nil
}

// Values resolves the input of opts to a value list without building a
// tree.
func Values(opts Options) ([]bst.Value, int, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, 0, err
	}
	c := opts.category

	if opts.Random {
		seed := opts.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		return input.Random(c, rand.New(rand.NewPCG(seed, seed>>1|1))), 0, nil
	}

	var res input.Result
	if len(opts.Values) > 0 {
		res = input.ParseTokens(c, opts.Values)
	} else {
		res = input.Parse(c, opts.Input)
	}
	if len(res.Values) == 0 {
		return nil, res.Dropped, errors.New(errors.ErrCodeInvalidInput, "no valid %s values in input", c)
	}
	if len(res.Values) > errors.MaxValues {
		return nil, res.Dropped, errors.New(errors.ErrCodeInvalidInput, "too many values (max %d)", errors.MaxValues)
	}
	return res.Values, res.Dropped, nil
}
