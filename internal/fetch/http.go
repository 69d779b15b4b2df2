package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FetchError reports a failed document retrieval. It is collaborator
// territory: the harvest engine records it and moves on.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// Client retrieves raw feed text over HTTP.
type Client struct {
	http *http.Client
}

// NewClient builds a fetcher with a per-request timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Fetch retrieves one feed document. A slow or failed source must not take
// the run down, so every failure comes back as a FetchError for the caller
// to collect.
func (c *Client) Fetch(ctx context.Context, src Source) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return "", &FetchError{URL: src.URL, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", &FetchError{URL: src.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: src.URL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: src.URL, Err: err}
	}
	return string(body), nil
}
