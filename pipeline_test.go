package siesta

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
)

func rawEntity(body string) Entity[any] {
	return Entity[any]{
		Content:   []byte(body),
		Header:    http.Header{"Content-Type": []string{"application/json"}},
		Timestamp: time.Now(),
	}
}

func TestApplyTransformersEmptyChain(t *testing.T) {
	// With no transformers the declared type must be the raw bytes.
	response := applyTransformers[[]byte](rawEntity("raw"), nil)
	if response.Entity == nil {
		t.Fatalf("got failure %v, want success", response.Error)
	}
	if string(response.Entity.Content) != "raw" {
		t.Errorf("content = %q, want %q", response.Entity.Content, "raw")
	}
}

func TestApplyTransformersChainOrder(t *testing.T) {
	upper := func(e Entity[any]) (Entity[any], error) {
		e.Content = strings.ToUpper(e.Content.(string))
		return e, nil
	}
	response := applyTransformers[string](rawEntity("hello"), []Transformer{TextTransformer(), upper})
	if response.Entity == nil {
		t.Fatalf("got failure %v, want success", response.Error)
	}
	if response.Entity.Content != "HELLO" {
		t.Errorf("content = %q, want %q", response.Entity.Content, "HELLO")
	}
}

func TestApplyTransformersShortCircuitsOnError(t *testing.T) {
	boom := errors.New("bad content")
	secondRan := false
	chain := []Transformer{
		func(e Entity[any]) (Entity[any], error) { return e, boom },
		func(e Entity[any]) (Entity[any], error) {
			secondRan = true
			return e, nil
		},
	}

	response := applyTransformers[string](rawEntity("x"), chain)
	if secondRan {
		t.Error("transformer after a failure was still invoked")
	}
	if response.Error == nil || response.Error.Type != ErrorTypeTransformer {
		t.Fatalf("got %+v, want Transformer failure", response)
	}
	if !errors.Is(response.Error, boom) {
		t.Error("transformer error not wrapped as cause")
	}
}

func TestApplyTransformersKeepsTransformerBuiltError(t *testing.T) {
	custom := newRequestError(ErrorTypeTransformer, "schema validation failed")
	chain := []Transformer{
		func(e Entity[any]) (Entity[any], error) { return e, custom },
	}

	response := applyTransformers[string](rawEntity("x"), chain)
	if response.Error != custom {
		t.Errorf("transformer-built RequestError was re-wrapped: %v", response.Error)
	}
}

func TestApplyTransformersTypeMismatch(t *testing.T) {
	// Chain leaves raw bytes but the declared type is string.
	response := applyTransformers[string](rawEntity("raw"), nil)
	if response.Error == nil || response.Error.Type != ErrorTypeTypeMismatch {
		t.Fatalf("got %+v, want TypeMismatch failure", response)
	}
	if response.Error.Content == nil {
		t.Error("mistyped entity not retained for diagnostics")
	}
	if !strings.Contains(response.Error.Debug, "[]uint8") {
		t.Errorf("debug message does not name the actual type: %q", response.Error.Debug)
	}
}

type pipelineUser struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestJSONTransformer(t *testing.T) {
	response := applyTransformers[pipelineUser](
		rawEntity(`{"id":7,"name":"Ada"}`),
		[]Transformer{JSONTransformer[pipelineUser]()},
	)
	if response.Entity == nil {
		t.Fatalf("got failure %v, want success", response.Error)
	}
	if response.Entity.Content.ID != 7 || response.Entity.Content.Name != "Ada" {
		t.Errorf("decoded = %+v", response.Entity.Content)
	}
}

func TestJSONTransformerInvalidJSON(t *testing.T) {
	response := applyTransformers[pipelineUser](
		rawEntity(`{"id":`),
		[]Transformer{JSONTransformer[pipelineUser]()},
	)
	if response.Error == nil || response.Error.Type != ErrorTypeTransformer {
		t.Fatalf("got %+v, want Transformer failure", response)
	}
}

func TestJSONTransformerRequiresBytes(t *testing.T) {
	entity := rawEntity("{}")
	entity.Content = 42
	response := applyTransformers[pipelineUser](entity, []Transformer{JSONTransformer[pipelineUser]()})
	if response.Error == nil {
		t.Fatal("non-byte content accepted by JSON transformer")
	}
}

func TestTextTransformer(t *testing.T) {
	response := applyTransformers[string](rawEntity("plain text"), []Transformer{TextTransformer()})
	if response.Entity == nil {
		t.Fatalf("got failure %v, want success", response.Error)
	}
	if response.Entity.Content != "plain text" {
		t.Errorf("content = %q", response.Entity.Content)
	}
}

func TestTransformersPreserveMetadata(t *testing.T) {
	raw := rawEntity("meta")
	response := applyTransformers[string](raw, []Transformer{TextTransformer()})
	if response.Entity == nil {
		t.Fatalf("got failure %v, want success", response.Error)
	}
	if response.Entity.Header.Get("Content-Type") != "application/json" {
		t.Error("header lost through the chain")
	}
	if !response.Entity.Timestamp.Equal(raw.Timestamp) {
		t.Error("timestamp lost through the chain")
	}
}
