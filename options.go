package siesta

import (
	"net/http"
)

// WithTransport sets the transport that performs network I/O.
func WithTransport(t Transport) Option {
	return func(s *Service) {
		s.transport = t
	}
}

// WithHTTPClient routes requests through the default HTTP transport backed
// by the given client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.transport = NewHTTPTransport(client)
	}
}

// WithTransformers replaces the transformer chain. Transformers run in the
// given order against newly received content; the first error wins.
func WithTransformers(chain ...Transformer) Option {
	return func(s *Service) {
		s.transformers = chain
	}
}

// WithTransformer appends one transformer to the chain.
func WithTransformer(transform Transformer) Option {
	return func(s *Service) {
		s.transformers = append(s.transformers, transform)
	}
}

// WithDeliveryQueue sets the serialized queue all callbacks run on. Tests
// substitute a deterministic queue here.
func WithDeliveryQueue(q Queue) Option {
	return func(s *Service) {
		s.delivery = q
		s.ownsDelivery = false
	}
}

// WithWorkerPool sets the pool the transformer chain runs on.
func WithWorkerPool(p Pool) Option {
	return func(s *Service) {
		s.workers = p
		s.ownsWorkers = false
	}
}

// WithDiagnostics sets the diagnostics sink for lifecycle events.
func WithDiagnostics(d Diagnostics) Option {
	return func(s *Service) {
		s.diag = d
	}
}

// WithMetrics enables Prometheus metrics collection on the default
// registerer.
func WithMetrics() Option {
	return func(s *Service) {
		s.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(s *Service) {
		s.metrics = collector
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs
// used in diagnostics.
func WithRequestIDGenerator(gen func() string) Option {
	return func(s *Service) {
		s.requestIDGen = gen
	}
}
