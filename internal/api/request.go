package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// APIError represents a non-success HTTP status from the Boundless API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("boundless api error %d: %s", e.StatusCode, e.Message)
}

// TransportError wraps any failure to fetch a URL, including API errors.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("get %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// GetBytes performs a GET request and returns the response body. Failures
// are returned as *TransportError.
func (c *Client) GetBytes(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	start := time.Now()
	body, status, err := c.doRequest(ctx, rawURL, header)
	c.observe(rawURL, status, time.Since(start))
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}

	c.logger.Debug("request complete",
		"url", rawURL,
		"bytes", len(body),
		"duration", time.Since(start),
	)
	return body, nil
}

// doRequest performs a single GET. status is 0 if no response was received.
func (c *Client) doRequest(ctx context.Context, rawURL string, header http.Header) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, resp.StatusCode, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	return body, resp.StatusCode, nil
}

func (c *Client) observe(rawURL string, status int, d time.Duration) {
	if c.observer == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	c.observer.ObserveRequest(endpointOf(rawURL), label, d)
}

// endpointOf classifies a URL for metrics so item IDs and world hosts do not
// explode label cardinality.
func endpointOf(rawURL string) string {
	switch {
	case strings.HasSuffix(rawURL, "/list-gameservers"):
		return "list-gameservers"
	case strings.Contains(rawURL, "/shopping/"):
		return "shopping"
	default:
		return "other"
	}
}
