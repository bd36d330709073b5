// Package errors provides structured error types for bstviz.
//
// Error codes let the CLI and the HTTP API handle failures the same way:
// the server maps codes to status codes, the CLI prints [UserMessage].
//
// # Error Codes
//
//   - INVALID_*: input validation failures
//   - NOT_FOUND, SESSION_NOT_FOUND: missing resources
//   - INVARIANT_VIOLATION: a tree failed its structural checks
//   - LIMIT_EXCEEDED: too many live sessions
//   - INTERNAL_ERROR: anything unexpected
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidCategory, "unknown category: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidCategory) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "render %s", format)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidCategory  Code = "INVALID_CATEGORY"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle     Code = "INVALID_STYLE"
	ErrCodeInvalidOrder     Code = "INVALID_ORDER"
	ErrCodeInvalidDimension Code = "INVALID_DIMENSION"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	// Tree structure errors
	ErrCodeInvariant Code = "INVARIANT_VIOLATION"

	// Capacity errors
	ErrCodeLimit Code = "LIMIT_EXCEEDED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
