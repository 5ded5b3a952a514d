package siesta

import (
	"net/http"
	"time"
)

// Method is an HTTP request method supported by the request core.
type Method string

const (
	GET    Method = "GET"
	POST   Method = "POST"
	PUT    Method = "PUT"
	PATCH  Method = "PATCH"
	DELETE Method = "DELETE"
)

// RequestDescriptor describes one outgoing network call. URL and header
// construction happen upstream; the core passes the descriptor to the
// Transport unchanged.
type RequestDescriptor struct {
	Method Method
	URL    string
	Header http.Header
	Body   []byte
}

// Entity is a typed payload plus the response metadata captured when the
// payload was produced.
type Entity[T any] struct {
	Content   T
	Header    http.Header
	Timestamp time.Time
}

// TransportResult is the raw outcome of one transport completion signal.
// StatusCode is zero and Err non-nil on a transport-level failure. A nil
// Body means the transport produced no body at all; an empty non-nil Body
// is a present, empty payload.
type TransportResult struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Err        error
}

// CancelFunc requests a best-effort abort of an in-flight transport call.
type CancelFunc func()

// Transport performs the actual network I/O for a request. Send returns
// immediately with a cancel handle and later invokes completion with the
// result, on an arbitrary goroutine. The core tolerates transports that
// invoke completion more than once, or never.
type Transport interface {
	Send(desc RequestDescriptor, completion func(TransportResult)) CancelFunc
}

// Transformer converts response content one step along the configured
// chain. A returned error aborts the chain and fails the request.
type Transformer func(Entity[any]) (Entity[any], error)

// CachedEntityFunc is a non-mutating snapshot read of the latest cached
// entity for a logical resource. It is consulted only when the transport
// reports 304 Not Modified.
type CachedEntityFunc[T any] func() (Entity[T], bool)

// Queue is a serialized executor: functions submitted via Async run one at
// a time, in submission order. All listener callbacks are invoked on the
// service's delivery Queue.
type Queue interface {
	Async(fn func())
}

// Pool is a concurrent executor for CPU-bound work; the transformer chain
// runs on the service's Pool so it never blocks the delivery Queue.
type Pool interface {
	Submit(fn func())
}

// Option represents a configuration option for a Service.
type Option func(*Service)
