package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

const (
	// MaxConcurrentRequests limits concurrent API requests to avoid overwhelming the API
	MaxConcurrentRequests = 5
	// maxErrorBody caps how much of an error response is kept for the error message
	maxErrorBody = 512
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HTTPClient interface for HTTP operations (allows mocking in tests).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError is returned when the request never got an HTTP response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// BaseClient contains common fields and functionality for all API clients.
type BaseClient struct {
	BaseURL    string
	Token      string
	HTTPClient HTTPClient
	Semaphore  chan struct{} // Limits concurrent requests
}

// NewBaseClient creates a new base client with rate limiting.
func NewBaseClient(baseURL, token string, httpClient HTTPClient) *BaseClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BaseClient{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: httpClient,
		Semaphore:  make(chan struct{}, MaxConcurrentRequests),
	}
}

// GetJSON performs a rate-limited GET and decodes the JSON body into result.
// setHeaders may add platform-specific headers; it can be nil.
func (c *BaseClient) GetJSON(ctx context.Context, url string, setHeaders func(h http.Header), result any) error {
	select {
	case c.Semaphore <- struct{}{}:
		defer func() { <-c.Semaphore }()
	case <-ctx.Done():
		return ctx.Err()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if setHeaders != nil {
		setHeaders(req.Header)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
