package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"fitment-crawler/internal/config"
	"fitment-crawler/internal/crawler"
	"fitment-crawler/internal/crawler/engine"
	"fitment-crawler/internal/storage"
	"fitment-crawler/pkg/models"
)

// ScrapeOptions are per-invocation overrides on top of Config.
type ScrapeOptions struct {
	// Extra sinks run after the JSON catalog is written.
	Sinks []engine.Sink[models.ProductRecord]
}

// Scrape discovers product pages, extracts each one and writes the catalog to
// cfg.OutputPath. Discovery and output errors are fatal; per-page errors are not.
func Scrape(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ScrapeOptions) ([]models.ProductRecord, engine.Stats, error) {
	sel, err := crawler.LoadSelectors(cfg.SelectorsFile)
	if err != nil {
		return nil, engine.Stats{}, err
	}

	fetcher, closeFetcher := newFetcher(cfg, logger)
	defer closeFetcher()

	discoverer := crawler.NewDiscoverer(fetcher, cfg.CategoryURL(), cfg.BaseURL, sel, cfg.FallbackLinkLimit, logger)
	urls, err := discoverer.Discover(ctx)
	if err != nil {
		return nil, engine.Stats{}, fmt.Errorf("discover products: %w", err)
	}

	var extractOpts []crawler.ExtractorOption
	if cfg.ListMode == config.ListModeStrict {
		extractOpts = append(extractOpts, crawler.WithStrictLists())
	}
	extractor := crawler.NewExtractor(fetcher, sel, cfg.PricePlaceholder, extractOpts...)

	sinks := append([]engine.Sink[models.ProductRecord]{storage.NewCatalogFile(cfg.OutputPath)}, opts.Sinks...)
	records, stats, err := engine.NewEngine[models.ProductRecord](extractor, logger, sinks...).Run(ctx, urls)
	if err != nil {
		return nil, stats, err
	}

	logger.Info("scrape finished",
		zap.Int("candidates", stats.Candidates),
		zap.Int("extracted", stats.Extracted),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
		zap.String("output", cfg.OutputPath),
	)
	return records, stats, nil
}

func newFetcher(cfg *config.Config, logger *zap.Logger) (crawler.Fetcher, func()) {
	client := &http.Client{Timeout: cfg.RequestTimeout}
	gate := crawler.NewDomainManager(client, cfg.UserAgent, cfg.RequestDelay, cfg.RespectRobots, logger)

	if cfg.FetchMode == config.FetchModeBrowser {
		f := crawler.NewBrowserFetcher(cfg.UserAgent, cfg.RequestTimeout, gate)
		return f, f.Close
	}
	return crawler.NewHTTPFetcher(client, cfg.UserAgent, gate), func() {}
}

// Import loads the catalog at path into Postgres and returns the number of
// products inserted.
func Import(ctx context.Context, cfg *config.Config, logger *zap.Logger, path string) (int, error) {
	records, err := storage.NewCatalogFile(path).Load()
	if err != nil {
		return 0, err
	}

	store, closeDB, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return 0, err
	}
	defer closeDB()

	return store.Import(ctx, records)
}

// OpenStore connects to cfg.DatabaseURL and applies pending migrations.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*storage.PostgresStore, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DB_URL is not set")
	}
	db, err := storage.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return storage.NewPostgresStore(db, logger), func() { db.Close() }, nil
}
