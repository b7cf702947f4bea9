package market

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rickgao/boundless-data/internal/api"
	"github.com/rickgao/boundless-data/internal/auth"
	"github.com/rickgao/boundless-data/internal/listing"
	"github.com/rickgao/boundless-data/internal/model"
)

// FetchListings fetches listings for item on one side of the market. With a
// nil world every cached world is queried in discovery order and the results
// are concatenated; otherwise only the given world is queried. The first
// failing world aborts the query and no listings are returned.
func (c *Client) FetchListings(ctx context.Context, item model.ItemID, side model.ListingSide, world *model.World) ([]model.ShopListing, error) {
	c.mu.RLock()
	ready := c.ready
	creds := c.creds
	targets := c.worlds
	c.mu.RUnlock()

	if !ready {
		return nil, ErrNotInitialized
	}
	if world != nil {
		targets = []model.World{*world}
	}

	logger := c.logger.With(
		"query_id", uuid.NewString(),
		"item", int(item),
		"side", side.String(),
	)
	logger.Debug("fetching listings", "worlds", len(targets))

	results := make([]model.ShopListing, 0)
	for _, w := range targets {
		listings, err := c.fetchWorld(ctx, w, item, side, creds)
		if err != nil {
			logger.Warn("listing query aborted", "world_id", w.ID, "error", err)
			return nil, fmt.Errorf("fetch %s listings for item %d on world %d: %w", side, item, w.ID, err)
		}
		logger.Debug("fetched world listings",
			"world_id", w.ID,
			"world", w.DisplayName,
			"listings", len(listings),
		)
		results = append(results, listings...)
	}

	return results, nil
}

// fetchWorld performs one throttled fetch and decode against a world.
func (c *Client) fetchWorld(ctx context.Context, w model.World, item model.ItemID, side model.ListingSide, creds *auth.Credentials) ([]model.ShopListing, error) {
	data, err := c.get(ctx, api.ShoppingURL(w, side, item), creds.Header())
	if err != nil {
		return nil, err
	}

	listings, err := listing.Decode(data, item, w.ID)
	if err != nil {
		if c.observer != nil {
			c.observer.IncDecodeErrors()
		}
		return nil, fmt.Errorf("decode shop data: %w", err)
	}

	if c.observer != nil {
		c.observer.AddListings(w.ID, side.String(), len(listings))
	}
	return listings, nil
}

// SellListings returns every world's shops selling item.
func (c *Client) SellListings(ctx context.Context, item model.ItemID) ([]model.ShopListing, error) {
	return c.FetchListings(ctx, item, model.Sell, nil)
}

// BuyListings returns every world's shops buying item.
func (c *Client) BuyListings(ctx context.Context, item model.ItemID) ([]model.ShopListing, error) {
	return c.FetchListings(ctx, item, model.Buy, nil)
}

// SellListingsInWorld returns shops in w selling item.
func (c *Client) SellListingsInWorld(ctx context.Context, w model.World, item model.ItemID) ([]model.ShopListing, error) {
	return c.FetchListings(ctx, item, model.Sell, &w)
}

// BuyListingsInWorld returns shops in w buying item.
func (c *Client) BuyListingsInWorld(ctx context.Context, w model.World, item model.ItemID) ([]model.ShopListing, error) {
	return c.FetchListings(ctx, item, model.Buy, &w)
}
