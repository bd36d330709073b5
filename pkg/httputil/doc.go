// Package httputil provides the JSON plumbing shared by bstviz HTTP handlers.
//
// # Overview
//
//   - [WriteJSON]: encode a response body with a status code
//   - [WriteError]: map a coded error from pkg/errors to a status and body
//   - [DecodeJSON]: decode a bounded request body, rejecting unknown fields
//
// # Errors
//
// Every error response has the same shape:
//
//	{"error": {"code": "INVALID_INPUT", "message": "input cannot be empty"}}
//
// [StatusFor] decides the status code:
//
//   - INVALID_*: 400 Bad Request
//   - NOT_FOUND, SESSION_NOT_FOUND: 404 Not Found
//   - LIMIT_EXCEEDED: 429 Too Many Requests
//   - UNSUPPORTED: 501 Not Implemented
//   - anything else: 500 Internal Server Error
//
// Internal errors are logged and their message is replaced so that causes
// never leak to clients.
package httputil
