package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/xenking/shop-catalog/internal/domain/catalog"
	"github.com/xenking/shop-catalog/internal/storage/filestore"
	"github.com/xenking/shop-catalog/internal/storage/postgres"
)

type seedCategory struct {
	CategoryName string               `json:"categoryName"`
	Products     []catalog.ProductDTO `json:"products"`
}

func main() {
	var (
		databaseURL string
		seedFile    string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&seedFile, "seed-file", "db/seed/catalog.json", "path to the catalog seed JSON file")
	flag.Parse()

	lg, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		lg.Fatal("Database URL is required: set --database-url or DATABASE_URL")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, lg, databaseURL, seedFile); err != nil {
		lg.Fatal("Seed failed", zap.Error(err))
	}
	lg.Info("Seed completed")
}

func run(ctx context.Context, lg *zap.Logger, databaseURL, seedFile string) error {
	data, err := os.ReadFile(seedFile)
	if err != nil {
		return errors.Wrap(err, "read seed file")
	}
	var seed []seedCategory
	if err := json.Unmarshal(data, &seed); err != nil {
		return errors.Wrap(err, "parse seed file")
	}

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	images, err := filestore.New(otel.Meter("seed-db"))
	if err != nil {
		return errors.Wrap(err, "create image store")
	}
	svc := catalog.NewService(catalog.Config{},
		postgres.NewCategoryRepository(pool),
		postgres.NewProductRepository(pool),
		images,
	)

	existing, err := svc.GetAllCategories(ctx)
	if err != nil {
		return errors.Wrap(err, "list categories")
	}
	byName := make(map[string]int64, len(existing.Content))
	for _, c := range existing.Content {
		byName[c.CategoryName] = c.CategoryID
	}

	for _, sc := range seed {
		id, ok := byName[sc.CategoryName]
		if !ok {
			created, err := svc.CreateCategory(ctx, catalog.CategoryDTO{CategoryName: sc.CategoryName})
			if err != nil {
				return errors.Wrapf(err, "create category %q", sc.CategoryName)
			}
			id = created.CategoryID
			lg.Info("Created category", zap.Int64("id", id), zap.String("name", sc.CategoryName))
		}

		for _, p := range sc.Products {
			added, err := svc.AddProduct(ctx, id, p)
			if err != nil {
				var dupErr *catalog.DuplicateError
				if errors.As(err, &dupErr) {
					lg.Info("Product exists, skipping", zap.String("name", p.ProductName))
					continue
				}
				return errors.Wrapf(err, "add product %q", p.ProductName)
			}
			lg.Info("Added product",
				zap.Int64("id", added.ProductID),
				zap.String("name", added.ProductName),
				zap.Float64("special_price", added.SpecialPrice),
			)
		}
	}
	return nil
}
