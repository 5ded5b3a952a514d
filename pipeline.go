package siesta

import (
	"encoding/json"
	"errors"
	"fmt"
)

// applyTransformers runs the configured chain against newly received
// untyped content and narrows the result to the request's declared type.
// The first transformer error short-circuits the rest of the chain; a
// final content value that is not a T becomes a TypeMismatch failure
// retaining the mistyped entity for diagnostics.
func applyTransformers[T any](raw Entity[any], chain []Transformer) Response[T] {
	current := raw
	for _, transform := range chain {
		next, err := transform(current)
		if err != nil {
			return failureResponse[T](asTransformerError(err, current))
		}
		current = next
	}

	content, ok := current.Content.(T)
	if !ok {
		var want T
		mismatch := newRequestError(ErrorTypeTypeMismatch, "unable to parse response")
		mismatch.Debug = fmt.Sprintf("expected content of type %T, transformer chain produced %T", want, current.Content)
		mismatch.Content = &current
		return failureResponse[T](mismatch)
	}

	return successResponse(Entity[T]{
		Content:   content,
		Header:    current.Header,
		Timestamp: current.Timestamp,
	})
}

// asTransformerError normalizes a transformer's error into a RequestError,
// preserving one the transformer built itself.
func asTransformerError(err error, entity Entity[any]) *RequestError {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}
	wrapped := newRequestError(ErrorTypeTransformer, "cannot process response")
	wrapped.Cause = err
	wrapped.Debug = err.Error()
	wrapped.Content = &entity
	return wrapped
}

// JSONTransformer decodes raw body bytes into a value of type T.
func JSONTransformer[T any]() Transformer {
	return func(entity Entity[any]) (Entity[any], error) {
		body, ok := entity.Content.([]byte)
		if !ok {
			return entity, fmt.Errorf("json transformer expects raw bytes, got %T", entity.Content)
		}
		var decoded T
		if err := json.Unmarshal(body, &decoded); err != nil {
			return entity, fmt.Errorf("invalid JSON: %w", err)
		}
		entity.Content = decoded
		return entity, nil
	}
}

// TextTransformer converts raw body bytes into a string.
func TextTransformer() Transformer {
	return func(entity Entity[any]) (Entity[any], error) {
		body, ok := entity.Content.([]byte)
		if !ok {
			return entity, fmt.Errorf("text transformer expects raw bytes, got %T", entity.Content)
		}
		entity.Content = string(body)
		return entity, nil
	}
}
