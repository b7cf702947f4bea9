package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/rickgao/boundless-data/internal/model"
	"github.com/rickgao/boundless-data/internal/poller"
	"github.com/rickgao/boundless-data/internal/version"
)

// worldCache is the part of the market client the HTTP handlers read.
type worldCache interface {
	Ready() bool
	Worlds() []model.World
}

// newServerHandler serves metrics, health and world debugging endpoints.
func newServerHandler(cache worldCache, gatherer prometheus.Gatherer, metricsPath string) http.Handler {
	mux := http.NewServeMux()

	mux.Handle(metricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		health := struct {
			Status     string         `json:"status"`
			Version    string         `json:"version"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Version:    version.Version,
			Components: make(map[string]any),
		}

		worlds := cache.Worlds()
		health.Components["world_cache"] = map[string]any{
			"ready":  cache.Ready(),
			"worlds": len(worlds),
		}
		switch {
		case !cache.Ready():
			health.Status = "unhealthy"
		case len(worlds) == 0:
			health.Status = "degraded"
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	mux.HandleFunc("/debug/worlds", func(w http.ResponseWriter, r *http.Request) {
		worlds := cache.Worlds()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"count":  len(worlds),
			"worlds": worlds,
		})
	})

	return mux
}

// batchLogger logs a one-line summary of every polled batch.
func batchLogger(catalog *model.Catalog, logger *slog.Logger) poller.ListingHandler {
	return poller.ListingHandlerFunc(func(b poller.Batch) error {
		world := "all"
		if b.World != nil {
			world = b.World.DisplayName
		}

		attrs := []any{
			"item", catalog.Name(b.Item),
			"side", b.Side.String(),
			"world", world,
			"listings", len(b.Listings),
		}
		if best, ok := bestPrice(b.Side, b.Listings); ok {
			attrs = append(attrs, "best_price", best.StringFixed(2))
		}
		logger.Info("listings polled", attrs...)
		return nil
	})
}

// bestPrice returns the lowest asking price for sell listings and the
// highest bid for buy listings.
func bestPrice(side model.ListingSide, listings []model.ShopListing) (decimal.Decimal, bool) {
	if len(listings) == 0 {
		return decimal.Zero, false
	}

	best := listings[0].PriceDecimal()
	for _, l := range listings[1:] {
		p := l.PriceDecimal()
		if side == model.Sell && p.LessThan(best) {
			best = p
		}
		if side == model.Buy && p.GreaterThan(best) {
			best = p
		}
	}
	return best, true
}
