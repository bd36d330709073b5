package httputil

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bstviz/pkg/errors"
)

// ErrorBody is the JSON envelope of an error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the code and message of a failed request.
type ErrorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// StatusFor returns the HTTP status for an error code.
func StatusFor(code errors.Code) int {
	switch {
	case strings.HasPrefix(string(code), "INVALID_"):
		return http.StatusBadRequest
	case code == errors.ErrCodeNotFound, code == errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case code == errors.ErrCodeLimit:
		return http.StatusTooManyRequests
	case code == errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes v as the JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("failed to encode JSON response", "error", err)
	}
}

// WriteError writes err as an error envelope. Errors without a code are
// treated as internal.
func WriteError(w http.ResponseWriter, logger *log.Logger, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := StatusFor(code)

	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed", "code", code, "error", err)
		}
		msg = http.StatusText(status)
	}
	WriteJSON(w, status, ErrorBody{Error: ErrorDetail{Code: code, Message: msg}})
}
