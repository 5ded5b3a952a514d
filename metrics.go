package siesta

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the request lifecycle.
// It is safe for concurrent use.
type MetricsCollector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec

	duplicateResponses *prometheus.CounterVec
	cancellationsTotal prometheus.Counter
	cacheReuseTotal    *prometheus.CounterVec

	transformDuration prometheus.Histogram
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using supplied registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "siesta_requests_total",
				Help: "Total number of completed requests by terminal result",
			},
			[]string{"method", "result"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "siesta_request_duration_seconds",
				Help:    "Duration from start to terminal outcome in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "result"},
		),
		requestsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "siesta_requests_in_flight",
				Help: "Number of requests currently awaiting a terminal outcome",
			},
			[]string{"method"},
		),
		duplicateResponses: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "siesta_duplicate_responses_total",
				Help: "Total number of transport signals discarded after completion",
			},
			[]string{"reason"},
		),
		cancellationsTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "siesta_cancellations_total",
				Help: "Total number of Cancel calls that took effect",
			},
		),
		cacheReuseTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "siesta_cache_reuse_total",
				Help: "Total number of 304 responses answered from the cached entity",
			},
			[]string{"method"},
		),
		transformDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "siesta_transform_duration_seconds",
				Help:    "Duration of the transformer chain in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordRequestStart marks a request as in flight.
func (mc *MetricsCollector) RecordRequestStart(method string) {
	mc.requestsInFlight.WithLabelValues(method).Inc()
}

// RecordRequestEnd marks a request as no longer in flight.
func (mc *MetricsCollector) RecordRequestEnd(method string) {
	mc.requestsInFlight.WithLabelValues(method).Dec()
}

// RecordCompletion records a terminal outcome and its duration. result is
// one of success, failure, cancelled.
func (mc *MetricsCollector) RecordCompletion(method, result string, duration time.Duration) {
	mc.requestsTotal.WithLabelValues(method, result).Inc()
	mc.requestDuration.WithLabelValues(method, result).Observe(duration.Seconds())
}

// RecordDuplicate records a discarded post-completion signal.
func (mc *MetricsCollector) RecordDuplicate(reason string) {
	mc.duplicateResponses.WithLabelValues(reason).Inc()
}

// RecordCancellation records an effective Cancel call.
func (mc *MetricsCollector) RecordCancellation() {
	mc.cancellationsTotal.Inc()
}

// RecordCacheReuse records a 304 answered from the cached entity.
func (mc *MetricsCollector) RecordCacheReuse(method string) {
	mc.cacheReuseTotal.WithLabelValues(method).Inc()
}

// RecordTransformDuration records one transformer-chain run.
func (mc *MetricsCollector) RecordTransformDuration(duration time.Duration) {
	mc.transformDuration.Observe(duration.Seconds())
}
