package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

// TestGetJSON_CanceledContextWhileWaiting tests that a full semaphore respects cancellation.
func TestGetJSON_CanceledContextWhileWaiting(t *testing.T) {
	// Arrange
	client := NewBaseClient("https://example.test", "", &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			t.Fatal("request must not be sent")
			return nil, nil
		},
	})
	for i := 0; i < MaxConcurrentRequests; i++ {
		client.Semaphore <- struct{}{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	var out map[string]any
	err := client.GetJSON(ctx, "https://example.test/x", nil, &out)

	// Assert
	assert.ErrorIs(t, err, context.Canceled)
}

// TestGetJSON_HeadersAndDecode tests header hooks and JSON decoding.
func TestGetJSON_HeadersAndDecode(t *testing.T) {
	// Arrange
	client := NewBaseClient("https://example.test", "", &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "yes", req.Header.Get("X-Test"))
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(`{"status":"ok"}`)),
			}, nil
		},
	})

	// Act
	var out struct {
		Status string `json:"status"`
	}
	err := client.GetJSON(context.Background(), "https://example.test/x", func(h http.Header) {
		h.Set("X-Test", "yes")
	}, &out)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Status)
	assert.Empty(t, client.Semaphore, "semaphore slot must be released")
}
