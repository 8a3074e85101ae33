package importer

import (
	"context"
	"sync/atomic"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/shop-catalog/internal/domain/catalog"
)

// Adder creates products. *catalog.Service implements it.
type Adder interface {
	AddProduct(ctx context.Context, categoryID int64, dto catalog.ProductDTO) (*catalog.ProductDTO, error)
}

// Config tunes an Importer.
type Config struct {
	// Workers is the number of concurrent AddProduct calls. Defaults to 4.
	Workers int
	// BloomCapacity is the expected number of feed records. Defaults to 1e6.
	BloomCapacity uint
	// BloomFPR is the bloom filter false positive rate. Defaults to 0.001.
	BloomFPR float64
}

// Stats summarizes one import.
type Stats struct {
	Read int64
	// Repeated counts records dropped because an earlier line of the same
	// feed had the same category and name.
	Repeated int64
	Imported int64
	// Skipped counts records the catalog already held.
	Skipped int64
	// Rejected counts records the catalog refused (unknown category,
	// invalid values).
	Rejected int64
}

// Importer loads a product feed through an Adder.
type Importer struct {
	cfg   Config
	adder Adder
	lg    *zap.Logger
}

// New creates an Importer.
func New(cfg Config, adder Adder, lg *zap.Logger) *Importer {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.BloomCapacity == 0 {
		cfg.BloomCapacity = 1_000_000
	}
	if cfg.BloomFPR <= 0 || cfg.BloomFPR >= 1 {
		cfg.BloomFPR = 0.001
	}
	return &Importer{cfg: cfg, adder: adder, lg: lg}
}

type job struct {
	line int
	rec  Record
}

// Import reads the feed twice. The first pass finds keys that may repeat,
// the second sends every first occurrence to the worker pool. Records the
// catalog rejects are counted and logged; any other error stops the import.
func (i *Importer) Import(ctx context.Context, path string) (Stats, error) {
	dedup := NewDedup(i.cfg.BloomCapacity, i.cfg.BloomFPR)

	var read int64
	if err := Stream(ctx, path, func(_ int, rec Record) error {
		read++
		dedup.Observe(rec.Key())
		return nil
	}); err != nil {
		return Stats{}, errors.Wrap(err, "pass 1")
	}
	i.lg.Info("Pass 1 complete",
		zap.Int64("records", read),
		zap.Int("suspects", dedup.Suspects()),
	)

	var (
		repeated, imported, skipped, rejected atomic.Int64
		jobs                                  = make(chan job, i.cfg.Workers)
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		return Stream(ctx, path, func(line int, rec Record) error {
			if !dedup.Accept(rec.Key()) {
				repeated.Add(1)
				i.lg.Debug("Dropping repeated record", zap.Int("line", line), zap.String("name", rec.Name))
				return nil
			}
			select {
			case jobs <- job{line: line, rec: rec}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	})

	for range i.cfg.Workers {
		g.Go(func() error {
			for j := range jobs {
				_, err := i.adder.AddProduct(ctx, j.rec.CategoryID, j.rec.DTO())
				if err == nil {
					imported.Add(1)
					continue
				}

				var (
					dupErr *catalog.DuplicateError
					nfErr  *catalog.NotFoundError
					vErr   *catalog.ValidationError
				)
				switch {
				case errors.As(err, &dupErr):
					skipped.Add(1)
				case errors.As(err, &nfErr), errors.As(err, &vErr):
					rejected.Add(1)
					i.lg.Warn("Record rejected", zap.Int("line", j.line), zap.Error(err))
				default:
					return errors.Wrapf(err, "line %d", j.line)
				}
			}
			return nil
		})
	}

	err := g.Wait()
	stats := Stats{
		Read:     read,
		Repeated: repeated.Load(),
		Imported: imported.Load(),
		Skipped:  skipped.Load(),
		Rejected: rejected.Load(),
	}
	if err != nil {
		return stats, errors.Wrap(err, "pass 2")
	}
	return stats, nil
}
