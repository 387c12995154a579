package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultMaxBodyBytes caps the response body read by HTTP.
const DefaultMaxBodyBytes = 1 << 20

// ErrBodyTooLarge is returned when a response exceeds the body limit.
var ErrBodyTooLarge = errors.New("response body too large")

// HTTPStatusError reports a response with a non-2xx status.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("get %s: status %d", e.URL, e.StatusCode)
}

// HTTP fetches a URL with GET and returns the response body.
//
// Only http and https URLs are accepted. A non-2xx status is an
// *HTTPStatusError; there is no absent result. Transient failures are
// retried according to Retry.
type HTTP struct {
	// Client replaces a client with a 10 second timeout when set.
	Client *http.Client
	// MaxBodyBytes limits the body size. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
	// Header is added to every request.
	Header http.Header
	// TrimSpace trims surrounding whitespace from the body.
	TrimSpace bool
	// Retry controls retries of transient failures. The zero value does
	// not retry.
	Retry RetryConfig
}

var defaultHTTPClient = &http.Client{Timeout: 10 * time.Second}

// Resolve implements interpolate.Resolver.
func (h HTTP) Resolve(ctx context.Context, rawURL string) (string, bool, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "", false, fmt.Errorf("url %q: only http and https are supported", rawURL)
	}

	body, err := withRetry(ctx, h.Retry, func(ctx context.Context) (string, error) {
		return h.get(ctx, rawURL)
	})
	if err != nil {
		return "", false, err
	}
	if h.TrimSpace {
		body = strings.TrimSpace(body)
	}
	return body, true, nil
}

func (h HTTP) get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	for k, vs := range h.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	client := h.Client
	if client == nil {
		client = defaultHTTPClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPStatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	limit := h.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > limit {
		return "", fmt.Errorf("get %s: %w", rawURL, ErrBodyTooLarge)
	}

	return string(body), nil
}
