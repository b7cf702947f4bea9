package market

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rickgao/boundless-data/internal/api"
	"github.com/rickgao/boundless-data/internal/auth"
	"github.com/rickgao/boundless-data/internal/model"
	"github.com/rickgao/boundless-data/internal/throttle"
)

// ErrNotInitialized is returned by queries made before Initialize succeeds.
var ErrNotInitialized = errors.New("market client has not been initialized")

// Transport performs GET requests and returns raw response bodies.
type Transport interface {
	GetBytes(ctx context.Context, rawURL string, header http.Header) ([]byte, error)
}

// Observer receives client-level measurements.
type Observer interface {
	AddListings(worldID int, side string, n int)
	IncDecodeErrors()
	SetWorlds(n int)
}

// Client discovers worlds and fetches shop listings from them.
type Client struct {
	transport Transport
	throttle  *throttle.Throttle
	logger    *slog.Logger
	observer  Observer

	discovery singleflight.Group

	mu      sync.RWMutex
	ready   bool
	baseURI string
	creds   *auth.Credentials
	worlds  []model.World
}

// Option configures a Client.
type Option func(*Client)

// WithThrottle shares an existing throttle with the client.
func WithThrottle(t *throttle.Throttle) Option {
	return func(c *Client) {
		c.throttle = t
	}
}

// WithRequestDelay sets the minimum spacing between requests.
func WithRequestDelay(d time.Duration) Option {
	return func(c *Client) {
		c.throttle = throttle.New(d)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithObserver sets a measurement sink (e.g., metrics).
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient creates a client using transport for all requests. The client is
// unusable until Initialize succeeds.
func NewClient(transport Transport, opts ...Option) *Client {
	c := &Client{
		transport: transport,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.throttle == nil {
		c.throttle = throttle.New(throttle.DefaultInterval)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Initialize stores the API location and key, then discovers worlds from
// baseURI + "list-gameservers". On failure the client is left uninitialized.
// Concurrent calls with the same arguments share one discovery request.
func (c *Client) Initialize(ctx context.Context, baseURI, apiKey string) error {
	key := baseURI + "\x00" + apiKey
	_, err, _ := c.discovery.Do(key, func() (any, error) {
		return nil, c.initialize(ctx, baseURI, apiKey)
	})
	return err
}

func (c *Client) initialize(ctx context.Context, baseURI, apiKey string) error {
	creds := &auth.Credentials{APIKey: apiKey}
	url := api.GameServersURL(baseURI)

	c.logger.Info("discovering worlds", "url", url)
	start := time.Now()

	worlds, err := c.discoverWorlds(ctx, url, creds)
	if err != nil {
		c.mu.Lock()
		c.ready = false
		c.worlds = nil
		c.mu.Unlock()
		c.setWorldsGauge(0)
		return err
	}

	c.mu.Lock()
	c.baseURI = baseURI
	c.creds = creds
	c.worlds = worlds
	c.ready = true
	c.mu.Unlock()
	c.setWorldsGauge(len(worlds))

	c.logger.Info("world discovery complete",
		"worlds", len(worlds),
		"duration", time.Since(start),
	)
	return nil
}

func (c *Client) discoverWorlds(ctx context.Context, url string, creds *auth.Credentials) ([]model.World, error) {
	data, err := c.get(ctx, url, creds.Header())
	if err != nil {
		return nil, &api.WorldDiscoveryError{URL: url, Err: err}
	}

	worlds, err := api.ParseWorlds(data, c.logger)
	if err != nil {
		return nil, &api.WorldDiscoveryError{URL: url, Err: err}
	}
	return worlds, nil
}

// get performs one throttled GET.
func (c *Client) get(ctx context.Context, url string, header http.Header) ([]byte, error) {
	var body []byte
	err := c.throttle.Do(ctx, func(ctx context.Context) error {
		var err error
		body, err = c.transport.GetBytes(ctx, url, header)
		return err
	})
	return body, err
}

func (c *Client) setWorldsGauge(n int) {
	if c.observer != nil {
		c.observer.SetWorlds(n)
	}
}

// Ready reports whether Initialize has succeeded.
func (c *Client) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// BaseURI returns the URI passed to the last successful Initialize.
func (c *Client) BaseURI() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURI
}

// Worlds returns a copy of the cached worlds in discovery order. It is empty
// until Initialize succeeds.
func (c *Client) Worlds() []model.World {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.World, len(c.worlds))
	copy(out, c.worlds)
	return out
}

// World looks up a cached world by ID.
func (c *Client) World(id int) (model.World, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, w := range c.worlds {
		if w.ID == id {
			return w, true
		}
	}
	return model.World{}, false
}

// WorldByName looks up a cached world by display name, ignoring case.
func (c *Client) WorldByName(name string) (model.World, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, w := range c.worlds {
		if strings.EqualFold(w.DisplayName, name) {
			return w, true
		}
	}
	return model.World{}, false
}

// RequestDelay returns the throttle's minimum interval.
func (c *Client) RequestDelay() time.Duration {
	return c.throttle.Interval()
}

// SetRequestDelay changes the throttle's minimum interval.
func (c *Client) SetRequestDelay(d time.Duration) {
	c.throttle.SetInterval(d)
}
