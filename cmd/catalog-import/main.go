package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/xenking/shop-catalog/internal/domain/catalog"
	"github.com/xenking/shop-catalog/internal/importer"
	"github.com/xenking/shop-catalog/internal/storage/filestore"
	"github.com/xenking/shop-catalog/internal/storage/postgres"
)

func main() {
	var (
		databaseURL string
		feed        string
		cfg         importer.Config
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&feed, "feed", "", "product feed, one JSON object per line (.jsonl or .jsonl.gz)")
	flag.IntVar(&cfg.Workers, "workers", 4, "concurrent inserts")
	flag.UintVar(&cfg.BloomCapacity, "expected-records", 1_000_000, "expected number of feed records")
	flag.Float64Var(&cfg.BloomFPR, "bloom-fpr", 0.001, "duplicate pre-filter false positive rate")
	flag.Parse()

	lg, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" || feed == "" {
		lg.Fatal("Both --feed and --database-url (or DATABASE_URL) are required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, lg, databaseURL, feed, cfg); err != nil {
		lg.Fatal("Catalog import failed", zap.Error(err))
	}
}

func run(ctx context.Context, lg *zap.Logger, databaseURL, feed string, cfg importer.Config) error {
	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	images, err := filestore.New(otel.Meter("catalog-import"))
	if err != nil {
		return errors.Wrap(err, "create image store")
	}
	svc := catalog.NewService(catalog.Config{},
		postgres.NewCategoryRepository(pool),
		postgres.NewProductRepository(pool),
		images,
	)

	stats, err := importer.New(cfg, svc, lg).Import(ctx, feed)
	lg.Info("Import finished",
		zap.String("feed", feed),
		zap.Int64("read", stats.Read),
		zap.Int64("repeated", stats.Repeated),
		zap.Int64("imported", stats.Imported),
		zap.Int64("skipped", stats.Skipped),
		zap.Int64("rejected", stats.Rejected),
	)
	return err
}
