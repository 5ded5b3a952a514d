package siesta

import (
	"github.com/rs/zerolog"
)

// DiscardReason explains why a terminal outcome arriving after completion
// was dropped.
type DiscardReason string

const (
	// DiscardDuplicate: a second outcome arrived after a real completion.
	// The transport broke its at-most-once contract; worth investigating.
	DiscardDuplicate DiscardReason = "duplicate"

	// DiscardAfterCancel: an outcome arrived after the request was
	// cancelled. Expected race, benign.
	DiscardAfterCancel DiscardReason = "post_cancel"
)

// Diagnostics receives fire-and-forget events at defined points in the
// request lifecycle. Implementations must be safe for concurrent use and
// must not block.
type Diagnostics interface {
	RequestStarted(requestID string, method Method, url string)
	ResponseReceived(requestID string, statusCode, bodySize int)
	ResponseDiscarded(requestID string, reason DiscardReason)
	RequestCancelled(requestID string)
}

// NopDiagnostics discards all events. It is the default sink.
type NopDiagnostics struct{}

func (NopDiagnostics) RequestStarted(string, Method, string)   {}
func (NopDiagnostics) ResponseReceived(string, int, int)       {}
func (NopDiagnostics) ResponseDiscarded(string, DiscardReason) {}
func (NopDiagnostics) RequestCancelled(string)                 {}

type zerologDiagnostics struct {
	log zerolog.Logger
}

// NewZerologDiagnostics adapts a zerolog logger into a Diagnostics sink.
// Duplicate discards log at warn level; everything else at debug.
func NewZerologDiagnostics(logger *zerolog.Logger) Diagnostics {
	log := logger.With().Str("component", "siesta").Logger()
	return &zerologDiagnostics{log: log}
}

func (d *zerologDiagnostics) RequestStarted(requestID string, method Method, url string) {
	d.log.Debug().
		Str("request_id", requestID).
		Str("method", string(method)).
		Str("url", url).
		Msg("request started")
}

func (d *zerologDiagnostics) ResponseReceived(requestID string, statusCode, bodySize int) {
	d.log.Debug().
		Str("request_id", requestID).
		Int("status", statusCode).
		Int("body_size", bodySize).
		Msg("response received")
}

func (d *zerologDiagnostics) ResponseDiscarded(requestID string, reason DiscardReason) {
	event := d.log.Debug()
	if reason == DiscardDuplicate {
		event = d.log.Warn()
	}
	event.
		Str("request_id", requestID).
		Str("reason", string(reason)).
		Msg("response discarded")
}

func (d *zerologDiagnostics) RequestCancelled(requestID string) {
	d.log.Debug().
		Str("request_id", requestID).
		Msg("request cancelled")
}
