package siesta

import (
	"sync"
	"time"
)

// Request is the public contract for one in-flight or completed network
// call. Registration methods return the same instance to allow chaining,
// may be called at any point in the request's lifetime, and each callback
// fires at most once with the single stored outcome. Exactly one of the
// typed callback families fires per registration:
//
//   - OnCompletion: always, success or failure, cancelled or not
//   - OnSuccess: success, whether fresh or reused
//   - OnNewData: success with freshly transformed content
//   - OnNotModified: success reusing cached content after a 304
//   - OnFailure: any failure, including cancellation
//
// Callbacks registered after completion still fire, asynchronously on the
// delivery queue, never within the registering call frame.
type Request[T any] interface {
	// Start hands the request to the transport. Calling Start twice on the
	// same instance is a programmer error and panics.
	Start() Request[T]

	OnCompletion(func(ResponseInfo[T])) Request[T]
	OnSuccess(func(Entity[T])) Request[T]
	OnNewData(func(Entity[T])) Request[T]
	OnNotModified(func()) Request[T]
	OnFailure(func(*RequestError)) Request[T]

	// IsCompleted reports whether a terminal outcome exists, including
	// cancellation. It has no side effects.
	IsCompleted() bool

	// Cancel is idempotent and has no effect once completed. While in
	// flight it transitions immediately to a cancellation failure and
	// guarantees any later transport signal is discarded; it does not
	// guarantee the server-side call is aborted.
	Cancel()
}

type requestState int

const (
	stateCreated requestState = iota
	stateStarted
	stateCompleted
)

// networkRequest is the live variant of Request: it owns the state machine
// for one transport call and broadcasts the single terminal outcome to
// every listener exactly once.
type networkRequest[T any] struct {
	svc    *Service
	desc   RequestDescriptor
	cached CachedEntityFunc[T]
	id     string

	mu                 sync.Mutex
	state              requestState
	started            bool
	startedAt          time.Time
	info               *ResponseInfo[T]
	listeners          []func(ResponseInfo[T])
	cancelTransport    CancelFunc
	transportCompleted bool
}

func (r *networkRequest[T]) Start() Request[T] {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		panic("siesta: Start called twice on the same request")
	}
	r.started = true
	if r.state == stateCompleted {
		// Cancelled before Start ran: skip the transport entirely but
		// still mark transport completion for synchronization.
		r.transportCompleted = true
		r.mu.Unlock()
		return r
	}
	r.state = stateStarted
	r.startedAt = time.Now()
	r.mu.Unlock()

	r.svc.diag.RequestStarted(r.id, r.desc.Method, r.desc.URL)
	if m := r.svc.metrics; m != nil {
		m.RecordRequestStart(string(r.desc.Method))
	}

	cancel := r.svc.transport.Send(r.desc, func(res TransportResult) {
		// First action on any transport signal: hop onto the delivery
		// queue before touching request state.
		r.svc.delivery.Async(func() { r.handleTransportResult(res) })
	})

	r.mu.Lock()
	r.cancelTransport = cancel
	abort := r.state == stateCompleted && cancel != nil
	r.mu.Unlock()
	if abort {
		// Cancelled while Send was being issued.
		cancel()
	}
	return r
}

func (r *networkRequest[T]) handleTransportResult(res TransportResult) {
	r.mu.Lock()
	r.transportCompleted = true
	completed := r.state == stateCompleted
	storedCancelled := completed && r.info.Response.IsCancellation()
	r.mu.Unlock()

	r.svc.diag.ResponseReceived(r.id, res.StatusCode, len(res.Body))

	if completed {
		// The transport signalled again after a terminal outcome existed.
		reason := DiscardDuplicate
		if storedCancelled {
			reason = DiscardAfterCancel
		}
		r.svc.diag.ResponseDiscarded(r.id, reason)
		if m := r.svc.metrics; m != nil {
			m.RecordDuplicate(string(reason))
		}
		return
	}

	newRaw, reused := classify(res, r.cached)
	switch {
	case reused != nil:
		if m := r.svc.metrics; m != nil {
			m.RecordCacheReuse(string(r.desc.Method))
		}
		r.deliver(ResponseInfo[T]{Response: *reused, IsNew: false})
	case newRaw.Error != nil:
		r.deliver(ResponseInfo[T]{Response: failureResponse[T](newRaw.Error), IsNew: true})
	default:
		r.transform(*newRaw.Entity)
	}
}

// transform runs the transformer chain on the worker pool and hands the
// typed result back through deliver.
func (r *networkRequest[T]) transform(raw Entity[any]) {
	if r.IsCompleted() {
		// Completed (e.g. cancelled) while the response was in flight.
		return
	}
	r.svc.workers.Submit(func() {
		begin := time.Now()
		response := applyTransformers[T](raw, r.svc.transformers)
		if m := r.svc.metrics; m != nil {
			m.RecordTransformDuration(time.Since(begin))
		}
		r.deliver(ResponseInfo[T]{Response: response, IsNew: true})
	})
}

// deliver stores the terminal outcome and fans it out. The outcome is
// write-once: anything arriving after completion is discarded with a
// diagnostic and never reaches a listener.
func (r *networkRequest[T]) deliver(info ResponseInfo[T]) {
	r.mu.Lock()
	if r.state == stateCompleted {
		stored := *r.info
		r.mu.Unlock()
		r.discard(stored, info)
		return
	}
	wasInFlight := r.state == stateStarted
	startedAt := r.startedAt
	r.state = stateCompleted
	r.info = &info
	pending := r.listeners
	r.listeners = nil
	r.mu.Unlock()

	if m := r.svc.metrics; m != nil {
		if wasInFlight {
			m.RecordRequestEnd(string(r.desc.Method))
			m.RecordCompletion(string(r.desc.Method), resultLabel(info.Response), time.Since(startedAt))
		}
	}

	if len(pending) > 0 {
		r.svc.delivery.Async(func() {
			for _, fn := range pending {
				fn(info)
			}
		})
	}
}

func (r *networkRequest[T]) discard(stored, incoming ResponseInfo[T]) {
	switch {
	case incoming.Response.IsCancellation():
		// Cancel raced with a completion; Cancel after completion is a
		// no-op, nothing to report.
	case stored.Response.IsCancellation():
		r.svc.diag.ResponseDiscarded(r.id, DiscardAfterCancel)
		if m := r.svc.metrics; m != nil {
			m.RecordDuplicate(string(DiscardAfterCancel))
		}
	default:
		// Second terminal outcome after a real completion: the transport
		// broke its at-most-once contract.
		r.svc.diag.ResponseDiscarded(r.id, DiscardDuplicate)
		if m := r.svc.metrics; m != nil {
			m.RecordDuplicate(string(DiscardDuplicate))
		}
	}
}

func (r *networkRequest[T]) Cancel() {
	r.mu.Lock()
	if r.state == stateCompleted {
		r.mu.Unlock()
		return
	}
	cancel := r.cancelTransport
	r.mu.Unlock()

	r.svc.diag.RequestCancelled(r.id)
	if m := r.svc.metrics; m != nil {
		m.RecordCancellation()
	}
	if cancel != nil {
		cancel()
	}
	r.deliver(ResponseInfo[T]{Response: failureResponse[T](newCancellationError()), IsNew: true})
}

func (r *networkRequest[T]) IsCompleted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == stateCompleted
}

// underlyingTransportCompleted reports whether the transport signalled (or
// was skipped after a pre-start cancellation). Used for test
// synchronization only.
func (r *networkRequest[T]) underlyingTransportCompleted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transportCompleted
}

// addListener registers one wrapped callback. If the outcome is already
// stored it is delivered asynchronously on the delivery queue, never
// reentrantly within this call.
func (r *networkRequest[T]) addListener(fn func(ResponseInfo[T])) {
	r.mu.Lock()
	if r.state == stateCompleted {
		info := *r.info
		r.mu.Unlock()
		r.svc.delivery.Async(func() { fn(info) })
		return
	}
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

func (r *networkRequest[T]) OnCompletion(cb func(ResponseInfo[T])) Request[T] {
	r.addListener(cb)
	return r
}

func (r *networkRequest[T]) OnSuccess(cb func(Entity[T])) Request[T] {
	r.addListener(func(info ResponseInfo[T]) {
		if info.Response.Entity != nil {
			cb(*info.Response.Entity)
		}
	})
	return r
}

func (r *networkRequest[T]) OnNewData(cb func(Entity[T])) Request[T] {
	r.addListener(func(info ResponseInfo[T]) {
		if info.Response.Entity != nil && info.IsNew {
			cb(*info.Response.Entity)
		}
	})
	return r
}

func (r *networkRequest[T]) OnNotModified(cb func()) Request[T] {
	r.addListener(func(info ResponseInfo[T]) {
		if info.Response.Entity != nil && !info.IsNew {
			cb()
		}
	})
	return r
}

func (r *networkRequest[T]) OnFailure(cb func(*RequestError)) Request[T] {
	r.addListener(func(info ResponseInfo[T]) {
		if info.Response.Error != nil {
			cb(info.Response.Error)
		}
	})
	return r
}

func resultLabel[T any](response Response[T]) string {
	switch {
	case response.IsCancellation():
		return "cancelled"
	case response.Error != nil:
		return "failure"
	default:
		return "success"
	}
}
