package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rickgao/boundless-data/internal/model"
)

// ListingSource fetches shop listings and resolves cached worlds.
// *market.Client satisfies it.
type ListingSource interface {
	FetchListings(ctx context.Context, item model.ItemID, side model.ListingSide, world *model.World) ([]model.ShopListing, error)
	World(id int) (model.World, bool)
}

// Batch is the result of one FetchListings call.
type Batch struct {
	Item      model.ItemID
	Side      model.ListingSide
	World     *model.World // nil when every world was queried
	Listings  []model.ShopListing
	FetchedAt time.Time
}

// ListingHandler receives fetched batches.
type ListingHandler interface {
	HandleListings(batch Batch) error
}

// ListingHandlerFunc is a function adapter for ListingHandler.
type ListingHandlerFunc func(Batch) error

func (f ListingHandlerFunc) HandleListings(b Batch) error {
	return f(b)
}

// Config holds poller configuration.
type Config struct {
	Interval time.Duration       // Sweep interval (default: 15m)
	Items    []model.ItemID      // Items to watch
	Sides    []model.ListingSide // Sides to fetch per item (default: sell)
	Worlds   []int               // World IDs to query; empty means all worlds in one call
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: 15 * time.Minute,
		Sides:    []model.ListingSide{model.Sell},
	}
}

// Poller periodically fetches listings for a watch list of items.
type Poller struct {
	cfg     Config
	source  ListingSource
	handler ListingHandler
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Poller.
func New(cfg Config, source ListingSource, handler ListingHandler, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if len(cfg.Sides) == 0 {
		cfg.Sides = DefaultConfig().Sides
	}
	return &Poller{
		cfg:     cfg,
		source:  source,
		handler: handler,
		logger:  logger,
	}
}

// Start begins the polling loop.
func (p *Poller) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run()

	p.logger.Info("listing poller started",
		"interval", p.cfg.Interval,
		"items", len(p.cfg.Items),
		"sides", len(p.cfg.Sides),
		"worlds", len(p.cfg.Worlds),
	)

	return nil
}

// Stop gracefully shuts down the poller.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("listing poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main polling loop.
func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	// Sweep immediately on start.
	p.sweep()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.sweep()
		}
	}
}

type sweepStats struct {
	fetched  int
	failed   int
	listings int
}

// sweep fetches every (item, side, world) target in order.
func (p *Poller) sweep() sweepStats {
	start := time.Now()
	var stats sweepStats

	if len(p.cfg.Items) == 0 {
		p.logger.Debug("no items to poll")
		return stats
	}

	for _, item := range p.cfg.Items {
		for _, side := range p.cfg.Sides {
			for _, world := range p.targets() {
				if p.ctx.Err() != nil {
					return stats
				}

				n, err := p.pollOne(item, side, world)
				if err != nil {
					p.logger.Warn("failed to poll item",
						"item", int(item),
						"side", side.String(),
						"world", worldLabel(world),
						"err", err,
					)
					stats.failed++
					continue
				}
				stats.fetched++
				stats.listings += n
			}
		}
	}

	p.logger.Info("poll sweep complete",
		"items", len(p.cfg.Items),
		"fetched", stats.fetched,
		"errors", stats.failed,
		"listings", stats.listings,
		"duration", time.Since(start),
	)

	return stats
}

// targets resolves the configured world IDs against the source's cache.
// A nil entry means "every world".
func (p *Poller) targets() []*model.World {
	if len(p.cfg.Worlds) == 0 {
		return []*model.World{nil}
	}

	out := make([]*model.World, 0, len(p.cfg.Worlds))
	for _, id := range p.cfg.Worlds {
		w, ok := p.source.World(id)
		if !ok {
			p.logger.Warn("unknown world in watch list", "world", id)
			continue
		}
		out = append(out, &w)
	}
	return out
}

// pollOne fetches and handles a single batch.
func (p *Poller) pollOne(item model.ItemID, side model.ListingSide, world *model.World) (int, error) {
	listings, err := p.source.FetchListings(p.ctx, item, side, world)
	if err != nil {
		return 0, err
	}

	if p.handler != nil {
		batch := Batch{
			Item:      item,
			Side:      side,
			World:     world,
			Listings:  listings,
			FetchedAt: time.Now(),
		}
		if err := p.handler.HandleListings(batch); err != nil {
			return 0, err
		}
	}

	return len(listings), nil
}

func worldLabel(w *model.World) string {
	if w == nil {
		return "all"
	}
	return w.DisplayName
}
