package api

import (
	"log/slog"
	"net/http"
	"time"
)

// RequestObserver receives one call per completed HTTP request.
type RequestObserver interface {
	ObserveRequest(endpoint, status string, duration time.Duration)
}

// Client performs GET requests against the Boundless API and returns raw
// response bodies.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
	observer   RequestObserver
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new HTTP transport.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: "boundless-data",
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout. Zero means no timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithObserver sets a request observer (e.g., metrics).
func WithObserver(o RequestObserver) ClientOption {
	return func(c *Client) {
		c.observer = o
	}
}
