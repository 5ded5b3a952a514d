package siesta

import (
	"errors"
	"fmt"
	"time"
)

// Error type constants used in RequestError.Type.
const (
	// ErrorTypeTransport marks a network/connection failure surfaced by the
	// transport before any HTTP response existed.
	ErrorTypeTransport = "Transport"

	// ErrorTypeHTTPStatus marks a response with status >= 400.
	ErrorTypeHTTPStatus = "HTTPStatus"

	// ErrorTypeMissingCache marks a 304 Not Modified received when no
	// previously cached entity exists to reuse.
	ErrorTypeMissingCache = "MissingCache"

	// ErrorTypeEmptyResponse marks a response with no error and no body.
	ErrorTypeEmptyResponse = "EmptyResponse"

	// ErrorTypeTransformer marks a transformer explicitly rejecting the
	// response content.
	ErrorTypeTransformer = "Transformer"

	// ErrorTypeTypeMismatch marks transformed content whose runtime type
	// disagrees with the request's declared type.
	ErrorTypeTypeMismatch = "TypeMismatch"

	// ErrorTypeCancelled marks the terminal state induced by Cancel.
	ErrorTypeCancelled = "Cancelled"
)

// Sentinel errors for common failure scenarios
var (
	// ErrCancelled is matched by errors.Is against any cancellation failure.
	ErrCancelled = errors.New("siesta: request cancelled")

	// ErrNoCachedEntity is matched against a 304-without-cache failure.
	ErrNoCachedEntity = errors.New("siesta: no cached entity for 304 response")
)

// RequestError is the failure half of a Response. Message is short and
// user-facing; Debug carries the longer diagnostic detail. Content retains
// the (possibly mistyped) entity involved in the failure, when one exists.
type RequestError struct {
	Type       string
	Message    string
	Debug      string
	Cause      error
	StatusCode int
	Content    *Entity[any]
	Cancelled  bool
	Timestamp  time.Time
}

// Error implements error interface.
func (e *RequestError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is. ErrCancelled matches any
// cancellation failure regardless of how it was constructed.
func (e *RequestError) Is(target error) bool {
	if e == nil {
		return false
	}
	if target == ErrCancelled {
		return e.Cancelled
	}
	if target == ErrNoCachedEntity {
		return e.Type == ErrorTypeMissingCache
	}
	if targetErr, ok := target.(*RequestError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// IsCancellation reports whether err represents a user-initiated abort.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *RequestError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Error Type: %s\n", e.Type)
	info += fmt.Sprintf("Message: %s\n", e.Message)
	if e.Debug != "" {
		info += fmt.Sprintf("Debug: %s\n", e.Debug)
	}
	if e.StatusCode > 0 {
		info += fmt.Sprintf("Status Code: %d\n", e.StatusCode)
	}
	if e.Cancelled {
		info += "Cancelled: true\n"
	}
	if !e.Timestamp.IsZero() {
		info += fmt.Sprintf("Timestamp: %s\n", e.Timestamp.Format(time.RFC3339))
	}
	if e.Cause != nil {
		info += fmt.Sprintf("Cause: %v\n", e.Cause)
	}
	return info
}

func newRequestError(errType, message string) *RequestError {
	return &RequestError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func newCancellationError() *RequestError {
	err := newRequestError(ErrorTypeCancelled, "request cancelled")
	err.Cancelled = true
	return err
}
