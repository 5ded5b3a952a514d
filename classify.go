package siesta

import (
	"fmt"
	"net/http"
	"time"
)

// classify inspects one raw transport result and produces at most one of:
// a new untyped outcome that still needs the transformer pipeline, or a
// reused typed outcome built from the previously cached entity. It is pure
// and synchronous; first matching rule wins.
func classify[T any](res TransportResult, cached CachedEntityFunc[T]) (newRaw *Response[any], reused *Response[T]) {
	switch {
	case res.Err != nil:
		err := newRequestError(ErrorTypeTransport, "request failed")
		err.Cause = res.Err
		err.Debug = res.Err.Error()
		f := failureResponse[any](err)
		return &f, nil

	case res.StatusCode >= 400:
		err := newRequestError(ErrorTypeHTTPStatus, http.StatusText(res.StatusCode))
		if err.Message == "" {
			err.Message = fmt.Sprintf("server error %d", res.StatusCode)
		}
		err.StatusCode = res.StatusCode
		if res.Body != nil {
			err.Content = &Entity[any]{Content: res.Body, Header: res.Header, Timestamp: time.Now()}
		}
		f := failureResponse[any](err)
		return &f, nil

	case res.StatusCode == http.StatusNotModified:
		if cached != nil {
			if entity, ok := cached(); ok {
				s := successResponse(entity)
				return nil, &s
			}
		}
		err := newRequestError(ErrorTypeMissingCache, "no data available")
		err.Debug = "received 304 Not Modified but no existing content to reuse"
		f := failureResponse[any](err)
		return &f, nil

	case res.Body != nil:
		s := successResponse(Entity[any]{
			Content:   res.Body,
			Header:    res.Header,
			Timestamp: time.Now(),
		})
		return &s, nil

	default:
		f := failureResponse[any](newRequestError(ErrorTypeEmptyResponse, "empty response"))
		return &f, nil
	}
}
