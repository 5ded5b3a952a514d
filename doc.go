// Package siesta is the request/response lifecycle core of a resource-caching
// HTTP client: it turns one outgoing network call into a single terminal
// outcome, delivered exactly once to any number of listeners registered
// before or after the outcome is known.
//
//   - Request state machine (created / started / completed) with a
//     write-once terminal outcome
//   - Response classification: failure, 304 cache reuse, or new content
//   - Transformer pipeline run off the delivery queue on a worker pool
//   - Callback broadcast: OnCompletion / OnSuccess / OnNewData /
//     OnNotModified / OnFailure, exactly one family fires per registration
//   - Idempotent cancellation; late or duplicate transport signals are
//     discarded with a diagnostic
//   - Prometheus metrics and zerolog-backed structured diagnostics
//
// Design goals:
//   - Small surface area – functional options configure everything
//   - Safe concurrent use of a single *Service instance
//   - Injected delivery queue and worker pool so tests run deterministically
//   - Extensibility via user supplied Transport, Transformer chain and
//     Diagnostics sink
//
// Typical usage:
//
//	svc := siesta.New(
//	    siesta.WithTransformers(siesta.JSONTransformer[User]()),
//	    siesta.WithMetrics(),
//	)
//	defer svc.Close()
//
//	req := siesta.NewRequest[User](svc, siesta.RequestDescriptor{
//	    Method: siesta.GET,
//	    URL:    "https://api.example.com/user/1",
//	}, store.Provider("/user/1"))
//
//	req.OnSuccess(func(e siesta.Entity[User]) { ... }).
//	    OnFailure(func(err *siesta.RequestError) { ... }).
//	    Start()
//
// Retries, request coalescing and connection pooling are deliberately not
// here: they belong to the Transport implementation.
package siesta
