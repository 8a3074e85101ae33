// Package app loads configuration and wires the catalog API server.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/shop-catalog/internal/domain/catalog"
	"github.com/xenking/shop-catalog/internal/handler"
	"github.com/xenking/shop-catalog/internal/storage/filestore"
	"github.com/xenking/shop-catalog/internal/storage/postgres"
	"github.com/xenking/shop-catalog/pkg/health"
	"github.com/xenking/shop-catalog/pkg/httpmiddleware"
)

const serviceName = "catalog-api"

// Run creates all dependencies, serves HTTP until ctx is cancelled, then
// drains and shuts down. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("addr", cfg.Addr),
		zap.String("images", cfg.Images.Dir),
	)
	gin.SetMode(gin.ReleaseMode)

	// PostgreSQL pool + migrations.
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	healthSvc := health.New()
	healthSvc.Register(health.Check{
		Name:    "postgres",
		Kind:    health.Readiness,
		Timeout: 5 * time.Second,
		Func:    health.PingCheck(pool),
	})
	healthSvc.Register(health.Check{
		Name: "images",
		Kind: health.Readiness,
		Func: health.DirCheck(cfg.Images.Dir),
	})
	healthSvc.Register(health.Check{
		Name: "goroutines",
		Kind: health.Liveness,
		Func: health.GoroutineCountCheck(10000),
	})
	healthSvc.Start(ctx, 10*time.Second)

	images, err := filestore.New(m.MeterProvider().Meter(serviceName))
	if err != nil {
		return errors.Wrap(err, "create image store")
	}

	svc := catalog.NewService(
		catalog.Config{
			ImageDir:    cfg.Images.Dir,
			MaxPageSize: cfg.Pagination.MaxPageSize,
		},
		postgres.NewCategoryRepository(pool),
		postgres.NewProductRepository(pool),
		images,
	)

	h := handler.NewHandler(handler.Config{
		Pagination: handler.PaginationDefaults{
			PageNumber: cfg.Pagination.PageNumber,
			PageSize:   cfg.Pagination.PageSize,
			SortBy:     cfg.Pagination.SortBy,
			SortDir:    cfg.Pagination.SortDir,
		},
		ImageDir:      cfg.Images.Dir,
		MaxUploadSize: cfg.Images.MaxUploadSize,
	}, svc)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", handler.NewRouter(h))

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument(serviceName, m),
			httpmiddleware.LogRequests(),
		),
	}

	healthSvc.SetReady(true)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		if ctx.Err() != nil {
			time.Sleep(cfg.Graceful.ReadinessDelay)
		}

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		defer healthSvc.Stop()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return nil
	})
	return g.Wait()
}
