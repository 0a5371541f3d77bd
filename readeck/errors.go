package readeck

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel error kinds. Every error returned by the client wraps exactly one
// of these (or none, for an unclassified non-2xx response), so callers can
// match with errors.Is.
var (
	// ErrInvalidConfig indicates invalid client construction input. Never
	// network-caused.
	ErrInvalidConfig = errors.New("invalid readeck configuration")
	// ErrAuth indicates an authentication or authorization failure (401/403).
	ErrAuth = errors.New("authentication failed")
	// ErrNotFound indicates the requested resource does not exist (404).
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates the request was rejected as invalid (400/422),
	// or failed client-side validation before any request was sent.
	ErrValidation = errors.New("validation failed")
	// ErrServer indicates a server-side failure (5xx).
	ErrServer = errors.New("readeck server error")
	// ErrParse indicates a success response whose body or headers could not
	// be interpreted.
	ErrParse = errors.New("unparseable readeck response")
)

// APIError is the error type returned for failed API calls. It carries the
// originating HTTP status (zero for purely local failures) and the server
// message when one was provided.
type APIError struct {
	StatusCode int
	Message    string
	Body       string

	kind error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("readeck API error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("readeck API error: %s", e.Message)
}

// Unwrap exposes the sentinel kind for errors.Is matching.
func (e *APIError) Unwrap() error { return e.kind }

// IsAuth reports whether the error is an authentication/authorization failure.
func (e *APIError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether the error indicates a missing resource.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsValidation reports whether the error indicates rejected input.
func (e *APIError) IsValidation() bool {
	return e.StatusCode == http.StatusBadRequest ||
		e.StatusCode == http.StatusUnprocessableEntity ||
		(e.StatusCode == 0 && errors.Is(e.kind, ErrValidation))
}

// IsServer reports whether the error indicates a server-side failure.
func (e *APIError) IsServer() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// newStatusError classifies a non-2xx response into exactly one error kind.
// Responses that fit no known class stay unclassified, the catch-all for
// callers that only match on *APIError.
func newStatusError(statusCode int, body string) *APIError {
	e := &APIError{StatusCode: statusCode, Body: body}
	switch {
	case statusCode == http.StatusUnauthorized:
		e.kind = ErrAuth
		e.Message = "authentication failed, check your token"
	case statusCode == http.StatusForbidden:
		e.kind = ErrAuth
		e.Message = "access forbidden"
	case statusCode == http.StatusNotFound:
		e.kind = ErrNotFound
		e.Message = "resource not found"
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		e.kind = ErrValidation
		e.Message = "validation error"
		if msg := strings.TrimSpace(body); msg != "" {
			e.Message = "validation error: " + msg
		}
	case statusCode >= 500 && statusCode < 600:
		e.kind = ErrServer
		e.Message = "server error"
	default:
		e.Message = fmt.Sprintf("HTTP %d", statusCode)
	}
	return e
}

// newParseError wraps a decoding failure on an otherwise successful response.
func newParseError(statusCode int, msg string, err error) *APIError {
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &APIError{StatusCode: statusCode, Message: msg, kind: ErrParse}
}

// newValidationError reports client-side input validation failures that are
// detected before any request is sent.
func newValidationError(msg string) *APIError {
	return &APIError{Message: msg, kind: ErrValidation}
}
