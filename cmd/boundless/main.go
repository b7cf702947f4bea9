package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rickgao/boundless-data/internal/api"
	"github.com/rickgao/boundless-data/internal/auth"
	"github.com/rickgao/boundless-data/internal/config"
	"github.com/rickgao/boundless-data/internal/market"
	"github.com/rickgao/boundless-data/internal/metrics"
	"github.com/rickgao/boundless-data/internal/model"
	"github.com/rickgao/boundless-data/internal/poller"
	"github.com/rickgao/boundless-data/internal/throttle"
	"github.com/rickgao/boundless-data/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/boundless.yaml", "path to config file")
	envPath := flag.String("env", ".env", "optional env file loaded before the config")
	listWorlds := flag.Bool("worlds", false, "list discovered worlds and exit")
	itemArg := flag.String("item", "", "item name or id to query")
	sideArg := flag.String("side", "sell", "listing side: sell or buy")
	worldID := flag.Int("world", -1, "world id to query (-1 queries every world)")
	watch := flag.Bool("watch", false, "poll the configured watch list and serve metrics")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if err := config.LoadEnvFile(*envPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load env file: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Set up structured logging. Stdout is reserved for query output.
	level, _ := config.ParseLogLevel(cfg.Log.Level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting boundless client",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
		"instance_id", cfg.Instance.ID,
	)

	creds, err := auth.LoadCredentials(cfg.API.APIKey, cfg.API.APIKeyPath)
	if err != nil {
		logger.Error("failed to load credentials", "error", err)
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	apiClient := api.NewClient(
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithUserAgent(version.UserAgent()),
		api.WithObserver(m),
	)

	client := market.NewClient(apiClient,
		market.WithThrottle(throttle.New(cfg.API.Delay(), throttle.WithObserver(m.ObserveThrottleWait))),
		market.WithLogger(logger),
		market.WithObserver(m),
	)

	if err := client.Initialize(ctx, cfg.API.BaseURL, creds.APIKey); err != nil {
		logger.Error("failed to discover worlds", "error", err)
		os.Exit(1)
	}

	catalog := model.NewCatalog(cfg.Catalog)

	switch {
	case *watch:
		err = runWatch(ctx, cfg, client, catalog, reg, logger)
	case *listWorlds:
		err = printWorlds(client)
	case *itemArg != "":
		err = printListings(ctx, client, catalog, *itemArg, *sideArg, *worldID)
	default:
		err = errors.New("nothing to do: pass -worlds, -item or -watch")
	}
	if err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func printWorlds(client *market.Client) error {
	for _, w := range client.Worlds() {
		if _, err := fmt.Fprintln(os.Stdout, w); err != nil {
			return err
		}
	}
	return nil
}

func printListings(ctx context.Context, client *market.Client, catalog *model.Catalog, itemArg, sideArg string, worldID int) error {
	item, err := catalog.Resolve(itemArg)
	if err != nil {
		return err
	}
	side, err := model.ParseListingSide(sideArg)
	if err != nil {
		return err
	}

	var world *model.World
	if worldID >= 0 {
		w, ok := client.World(worldID)
		if !ok {
			return fmt.Errorf("unknown world %d", worldID)
		}
		world = &w
	}

	listings, err := client.FetchListings(ctx, item, side, world)
	if err != nil {
		return err
	}
	for _, l := range listings {
		if _, err := fmt.Fprintln(os.Stdout, l); err != nil {
			return err
		}
	}
	return nil
}

func runWatch(ctx context.Context, cfg *config.ClientConfig, client *market.Client, catalog *model.Catalog, gatherer prometheus.Gatherer, logger *slog.Logger) error {
	pollerCfg, err := pollerConfig(cfg, catalog)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:           newServerHandler(client, gatherer, cfg.Metrics.Path),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", "port", cfg.Metrics.Port, "path", cfg.Metrics.Path)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	p := poller.New(pollerCfg, client, batchLogger(catalog, logger), logger)
	if err := p.Start(ctx); err != nil {
		return err
	}

	logger.Info("boundless client watching",
		"instance_id", cfg.Instance.ID,
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Metrics.Port),
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := p.Stop(shutdownCtx); err != nil {
		logger.Warn("poller did not stop cleanly", "error", err)
	}
	server.Shutdown(shutdownCtx)

	logger.Info("boundless client stopped")
	return nil
}

// pollerConfig builds the poller watch list from the config.
func pollerConfig(cfg *config.ClientConfig, catalog *model.Catalog) (poller.Config, error) {
	sides, err := parseSides(cfg.Poller.Side)
	if err != nil {
		return poller.Config{}, err
	}

	items := make([]model.ItemID, 0, len(cfg.Poller.Items))
	for _, name := range cfg.Poller.Items {
		id, err := catalog.Resolve(name)
		if err != nil {
			return poller.Config{}, fmt.Errorf("poller.items: %w", err)
		}
		items = append(items, id)
	}

	return poller.Config{
		Interval: cfg.Poller.Interval,
		Items:    items,
		Sides:    sides,
		Worlds:   cfg.Poller.Worlds,
	}, nil
}

// parseSides accepts "sell", "buy" or "both".
func parseSides(s string) ([]model.ListingSide, error) {
	if strings.EqualFold(s, "both") {
		return []model.ListingSide{model.Sell, model.Buy}, nil
	}
	side, err := model.ParseListingSide(s)
	if err != nil {
		return nil, err
	}
	return []model.ListingSide{side}, nil
}
