package siesta

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// HTTPTransport is the default Transport, backed by a *http.Client. Each
// Send runs on its own goroutine and invokes completion exactly once; the
// returned CancelFunc aborts the underlying call via context cancellation.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport wraps client as a Transport. A nil client uses
// http.DefaultClient.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{client: client}
}

func (t *HTTPTransport) Send(desc RequestDescriptor, completion func(TransportResult)) CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		var bodyReader io.Reader
		if desc.Body != nil {
			bodyReader = bytes.NewReader(desc.Body)
		}

		req, err := http.NewRequestWithContext(ctx, string(desc.Method), desc.URL, bodyReader)
		if err != nil {
			completion(TransportResult{Err: err})
			return
		}
		if desc.Header != nil {
			req.Header = desc.Header.Clone()
		}

		resp, err := t.client.Do(req)
		if err != nil {
			completion(TransportResult{Err: err})
			return
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			completion(TransportResult{Err: err})
			return
		}

		completion(TransportResult{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       body,
		})
	}()

	return CancelFunc(cancel)
}
