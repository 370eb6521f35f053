package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/use-agent/prodscrape/config"
	"github.com/use-agent/prodscrape/observability"
	"github.com/use-agent/prodscrape/scraper"
	"github.com/use-agent/prodscrape/sites/amazon"
	"github.com/use-agent/prodscrape/store"
	"github.com/use-agent/prodscrape/webhook"
)

// pipeline bundles a ready Scraper with whatever must be released on exit.
type pipeline struct {
	scraper *scraper.Scraper
	metrics *observability.Metrics
	close   func()
}

func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline, error) {
	st, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics()
	opts := []scraper.Option{
		scraper.WithConcurrency(cfg.Run.Concurrency),
		scraper.WithMetrics(metrics),
	}
	if cfg.Webhook.URL != "" {
		opts = append(opts, scraper.WithNotifier(webhook.NewNotifier(cfg.Webhook.URL, cfg.Webhook.Secret)))
		slog.Info("webhook notifications enabled", "url", cfg.Webhook.URL)
	}

	site := amazon.New(cfg.Fetch.BaseURL, scraper.NewFetcher(cfg.Fetch))
	return &pipeline{
		scraper: scraper.New(site, st, opts...),
		metrics: metrics,
		close:   closeStore,
	}, nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (scraper.Store, func(), error) {
	switch cfg.Kind {
	case "", "fs":
		fs, err := store.NewFS(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using filesystem store", "dir", fs.Dir())
		return fs, func() {}, nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
		pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using postgres store")
		return pg, pg.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q (want fs or postgres)", cfg.Kind)
	}
}
