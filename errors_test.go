package siesta

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRequestErrorMessage(t *testing.T) {
	err := &RequestError{
		Type:    ErrorTypeTransport,
		Message: "connection timeout",
	}

	expectedMsg := "Transport: connection timeout"
	if err.Error() != expectedMsg {
		t.Errorf("Expected '%s', got '%s'", expectedMsg, err.Error())
	}

	cause := errors.New("underlying error")
	errWithCause := &RequestError{
		Type:    ErrorTypeTransport,
		Message: "request failed",
		Cause:   cause,
	}

	expectedMsgWithCause := "Transport: request failed (underlying error)"
	if errWithCause.Error() != expectedMsgWithCause {
		t.Errorf("Expected '%s', got '%s'", expectedMsgWithCause, errWithCause.Error())
	}
}

func TestRequestErrorMessageWithStatus(t *testing.T) {
	err := &RequestError{
		Type:       ErrorTypeHTTPStatus,
		Message:    "Internal Server Error",
		StatusCode: 500,
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("status missing from message: %q", err.Error())
	}
}

func TestRequestErrorUnwrap(t *testing.T) {
	cause := errors.New("original error")
	err := &RequestError{
		Type:    ErrorTypeTransformer,
		Message: "test message",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Expected unwrapped error to be %v, got %v", cause, unwrapped)
	}

	var nilErr *RequestError
	if nilErr.Unwrap() != nil {
		t.Error("nil error should unwrap to nil")
	}
}

func TestRequestErrorIsByType(t *testing.T) {
	err := &RequestError{Type: ErrorTypeHTTPStatus, Message: "bad gateway", StatusCode: 502}
	target := &RequestError{Type: ErrorTypeHTTPStatus}

	if !errors.Is(err, target) {
		t.Error("errors with the same Type should match")
	}
	if errors.Is(err, &RequestError{Type: ErrorTypeTransport}) {
		t.Error("errors with different Types should not match")
	}
}

func TestCancellationSentinel(t *testing.T) {
	cancelled := newCancellationError()
	if !errors.Is(cancelled, ErrCancelled) {
		t.Error("cancellation error does not match ErrCancelled")
	}
	if !IsCancellation(cancelled) {
		t.Error("IsCancellation(cancellation) = false")
	}
	if IsCancellation(newRequestError(ErrorTypeTransport, "net down")) {
		t.Error("IsCancellation matched a non-cancellation failure")
	}
	if IsCancellation(nil) {
		t.Error("IsCancellation(nil) = true")
	}
}

func TestMissingCacheSentinel(t *testing.T) {
	err := newRequestError(ErrorTypeMissingCache, "no data available")
	if !errors.Is(err, ErrNoCachedEntity) {
		t.Error("MissingCache failure does not match ErrNoCachedEntity")
	}
}

func TestRequestErrorDebugInfo(t *testing.T) {
	err := &RequestError{
		Type:       ErrorTypeHTTPStatus,
		Message:    "Service Unavailable",
		Debug:      "retry-after 120",
		StatusCode: 503,
		Cancelled:  false,
		Timestamp:  time.Now(),
		Cause:      errors.New("upstream down"),
	}

	info := err.DebugInfo()
	for _, want := range []string{"HTTPStatus", "Service Unavailable", "retry-after 120", "503", "upstream down"} {
		if !strings.Contains(info, want) {
			t.Errorf("DebugInfo missing %q:\n%s", want, info)
		}
	}

	var nilErr *RequestError
	if nilErr.DebugInfo() != "Error: <nil>" {
		t.Errorf("nil DebugInfo = %q", nilErr.DebugInfo())
	}
}

func TestNilRequestErrorMessage(t *testing.T) {
	var err *RequestError
	if err.Error() != "<nil>" {
		t.Errorf("nil Error() = %q", err.Error())
	}
}
