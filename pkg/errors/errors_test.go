package errors_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/core/layout"
	"github.com/matzehuels/bstviz/pkg/core/step"
	"github.com/matzehuels/bstviz/pkg/errors"
	"github.com/matzehuels/bstviz/pkg/session"
)

// Each case produces an error the way the CLI or the server would meet it.
func TestCodesFromCallers(t *testing.T) {
	ctx := context.Background()
	bounds := layout.DefaultBounds(800, 600, 20)

	tests := []struct {
		name    string
		produce func() error
		code    errors.Code
		message string
	}{
		{
			name: "unknown category",
			produce: func() error {
				_, err := bst.ParseCategory("Tree")
				return err
			},
			code:    errors.ErrCodeInvalidCategory,
			message: `unknown category "tree" (must be one of `,
		},
		{
			name: "unknown traversal",
			produce: func() error {
				_, err := bst.ParseOrder("sideways")
				return err
			},
			code:    errors.ErrCodeInvalidOrder,
			message: `unknown traversal "sideways"`,
		},
		{
			name: "bad integer token",
			produce: func() error {
				_, err := bst.Integer.Parse(" 12x ")
				return err
			},
			code:    errors.ErrCodeInvalidInput,
			message: `not an integer: "12x"`,
		},
		{
			name:    "drawing too short for the radius",
			produce: func() error { return errors.ValidateDimensions(800, 90, 20) },
			code:    errors.ErrCodeInvalidDimension,
		},
		{
			name: "delete mid-insert",
			produce: func() error {
				s := step.New(bst.Integer, []bst.Value{bst.Int(50), bst.Int(70)}, bounds)
				s.Next() // root 50
				s.Next() // 70 compared with 50
				_, err := s.Delete(bst.Int(50))
				return err
			},
			code:    errors.ErrCodeInvalidInput,
			message: "cannot delete 50 while 70 is being inserted",
		},
		{
			name: "session cap",
			produce: func() error {
				st := session.NewStore(session.WithMaxSessions(1))
				if _, err := st.Create(ctx, bst.Letter, nil, bounds, 20); err != nil {
					return err
				}
				_, err := st.Create(ctx, bst.Letter, nil, bounds, 20)
				return err
			},
			code:    errors.ErrCodeLimit,
			message: "too many active sessions (max 1)",
		},
		{
			name: "unknown session",
			produce: func() error {
				_, err := session.NewStore().Get(ctx, "gone")
				return err
			},
			code:    errors.ErrCodeSessionNotFound,
			message: `session "gone" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.produce()
			require.Error(t, err)
			require.Equal(t, tt.code, errors.GetCode(err))
			require.True(t, strings.HasPrefix(err.Error(), string(tt.code)+": "), err.Error())
			if tt.message != "" {
				require.True(t, strings.HasPrefix(errors.UserMessage(err), tt.message),
					"UserMessage = %q", errors.UserMessage(err))
			}

			// Handlers wrap with %w before the error reaches the response writer.
			wrapped := fmt.Errorf("handle request: %w", err)
			require.True(t, errors.Is(wrapped, tt.code))
			require.Equal(t, errors.UserMessage(err), errors.UserMessage(wrapped))
		})
	}
}

func TestParseKeepsCause(t *testing.T) {
	_, err := bst.Integer.Parse("99999999999999999999")
	require.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	var numErr *strconv.NumError
	require.True(t, stderrors.As(err, &numErr))
	require.Equal(t, strconv.ErrRange, numErr.Err)
	require.Contains(t, err.Error(), "value out of range")
}

func TestInvariantPanicCarriesCode(t *testing.T) {
	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		require.Equal(t, errors.ErrCodeInvariant, errors.GetCode(err))
		require.Equal(t, "double value must be finite, got +Inf", errors.UserMessage(err))
	}()
	bst.Float(1 / zero())
}

func zero() float64 { return 0 }

func TestUncodedErrors(t *testing.T) {
	plain := stderrors.New("connection reset")
	require.Equal(t, errors.Code(""), errors.GetCode(plain))
	require.False(t, errors.Is(plain, errors.ErrCodeInternal))
	require.False(t, errors.Is(nil, errors.ErrCodeInternal))
	require.Equal(t, "connection reset", errors.UserMessage(plain))

	// A coded wrapper keeps the outer code and still reaches the cause.
	err := errors.Wrap(errors.ErrCodeInternal, plain, "render %s", "png")
	require.Equal(t, "INTERNAL_ERROR: render png: connection reset", err.Error())
	require.ErrorIs(t, err, plain)
	require.False(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}
