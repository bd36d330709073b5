package httputil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/bstviz/pkg/errors"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 64 << 10

// DecodeJSON decodes the request body into v. An empty body leaves v
// untouched.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body")
	}
	return nil
}
