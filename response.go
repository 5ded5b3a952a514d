package siesta

// Response is the terminal outcome of a request: exactly one of Entity or
// Error is non-nil.
type Response[T any] struct {
	Entity *Entity[T]
	Error  *RequestError
}

// IsSuccess reports whether the response carries an entity.
func (r Response[T]) IsSuccess() bool {
	return r.Entity != nil
}

// IsCancellation reports whether the response is a cancellation failure.
func (r Response[T]) IsCancellation() bool {
	return r.Error != nil && r.Error.Cancelled
}

// ResponseInfo pairs a Response with its freshness. IsNew is true iff the
// content was just produced by the transformer pipeline (or is a newly
// received failure); it is false only when a previously cached entity was
// reused because the transport reported 304 Not Modified.
type ResponseInfo[T any] struct {
	Response Response[T]
	IsNew    bool
}

func successResponse[T any](entity Entity[T]) Response[T] {
	return Response[T]{Entity: &entity}
}

func failureResponse[T any](err *RequestError) Response[T] {
	return Response[T]{Error: err}
}
