package siesta

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service binds the collaborators a request needs: the transport, the
// transformer chain, the delivery queue, the worker pool, diagnostics and
// metrics. One Service is shared by any number of requests and is safe for
// concurrent use.
type Service struct {
	transport    Transport
	transformers []Transformer
	delivery     Queue
	workers      Pool
	diag         Diagnostics
	metrics      *MetricsCollector
	requestIDGen func() string

	ownsDelivery bool
	ownsWorkers  bool

	validationError error
}

// New constructs a Service using the provided functional options. A best
// effort validation is performed; call IsValid / ValidationError for
// errors.
func New(options ...Option) *Service {
	s := &Service{
		transport:    NewHTTPTransport(&http.Client{Timeout: 30 * time.Second}),
		diag:         NopDiagnostics{},
		requestIDGen: uuid.NewString,
		ownsDelivery: true,
		ownsWorkers:  true,
	}

	for _, option := range options {
		option(s)
	}

	// Defaults are created only when no option supplied them, so an
	// injected queue never leaves an orphaned default goroutine behind.
	if s.ownsDelivery {
		s.delivery = NewSerialQueue()
	}
	if s.ownsWorkers {
		s.workers = NewWorkerPool(0)
	}

	if err := s.ValidateConfiguration(); err != nil {
		s.validationError = err
	}

	return s
}

// NewRequest creates a live request bound to one transport call. cached
// supplies the latest known entity for the logical resource and is
// consulted only on a 304 Not Modified; it may be nil when no cache
// exists. The request does nothing until Start is called.
func NewRequest[T any](s *Service, desc RequestDescriptor, cached CachedEntityFunc[T]) Request[T] {
	return &networkRequest[T]{
		svc:    s,
		desc:   desc,
		cached: cached,
		id:     s.requestIDGen(),
	}
}

// NewFailedRequest creates a request that is already terminally failed
// with err, for calls rejected before they could reach the transport.
func NewFailedRequest[T any](s *Service, err *RequestError) Request[T] {
	if err == nil {
		err = newRequestError(ErrorTypeTransport, "request could not be created")
	}
	return &failedRequest[T]{svc: s, err: err}
}

// ValidateConfiguration checks the service configuration for mistakes that
// would otherwise surface as confusing runtime behavior.
func (s *Service) ValidateConfiguration() error {
	var problems []string

	if s.transport == nil {
		problems = append(problems, "transport must not be nil")
	}
	if s.delivery == nil {
		problems = append(problems, "delivery queue must not be nil")
	}
	if s.workers == nil {
		problems = append(problems, "worker pool must not be nil")
	}
	if s.diag == nil {
		problems = append(problems, "diagnostics must not be nil (use NopDiagnostics)")
	}
	if s.requestIDGen == nil {
		problems = append(problems, "request ID generator must not be nil")
	}
	for i, transform := range s.transformers {
		if transform == nil {
			problems = append(problems, fmt.Sprintf("transformer %d is nil", i))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid service configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// IsValid reports whether configuration validation passed at construction.
func (s *Service) IsValid() bool {
	return s.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (s *Service) ValidationError() error {
	return s.validationError
}

// Close releases the delivery queue and worker pool if the Service created
// them. Queues and pools supplied via options are left to their owners.
func (s *Service) Close() {
	if s.ownsDelivery {
		if q, ok := s.delivery.(*SerialQueue); ok {
			q.Close()
		}
	}
	if s.ownsWorkers {
		if p, ok := s.workers.(*WorkerPool); ok {
			p.Close()
		}
	}
}
