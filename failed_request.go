package siesta

// failedRequest is the degenerate Request variant for calls that never
// reach the transport, e.g. a precondition failed before send. Its state
// is terminal at construction: completion and failure callbacks deliver
// the stored error asynchronously, the success-family callbacks never
// fire, and Cancel is a no-op. It exists so callers use one uniform
// contract whether or not a request ever touched the network.
type failedRequest[T any] struct {
	svc *Service
	err *RequestError
}

func (r *failedRequest[T]) Start() Request[T] {
	return r
}

func (r *failedRequest[T]) OnCompletion(cb func(ResponseInfo[T])) Request[T] {
	r.svc.delivery.Async(func() {
		cb(ResponseInfo[T]{Response: failureResponse[T](r.err), IsNew: true})
	})
	return r
}

func (r *failedRequest[T]) OnSuccess(func(Entity[T])) Request[T] {
	return r
}

func (r *failedRequest[T]) OnNewData(func(Entity[T])) Request[T] {
	return r
}

func (r *failedRequest[T]) OnNotModified(func()) Request[T] {
	return r
}

func (r *failedRequest[T]) OnFailure(cb func(*RequestError)) Request[T] {
	r.svc.delivery.Async(func() {
		cb(r.err)
	})
	return r
}

func (r *failedRequest[T]) IsCompleted() bool {
	return true
}

func (r *failedRequest[T]) Cancel() {}
