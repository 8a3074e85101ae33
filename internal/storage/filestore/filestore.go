// Package filestore stores uploaded product images on the local filesystem.
package filestore

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/xenking/shop-catalog/internal/domain/catalog"
)

var _ catalog.ImageStore = (*Store)(nil)

// Store writes images under freshly generated, collision-free names.
type Store struct {
	stored metric.Int64Counter
	bytes  metric.Int64Counter
}

// New creates a Store reporting to meter.
func New(meter metric.Meter) (*Store, error) {
	stored, err := meter.Int64Counter("catalog.images.stored",
		metric.WithDescription("Number of product images written to disk"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create stored counter")
	}
	written, err := meter.Int64Counter("catalog.images.bytes",
		metric.WithDescription("Bytes of product images written to disk"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create bytes counter")
	}
	return &Store{stored: stored, bytes: written}, nil
}

// SaveImage copies content to dir/<uuid><ext>, where ext is the extension of
// originalName including the dot, and returns the generated file name. The
// directory is created (one level only) when it does not exist. An existing
// file is never overwritten.
func (s *Store) SaveImage(ctx context.Context, dir, originalName string, content io.Reader) (string, error) {
	ext := filepath.Ext(filepath.Base(originalName))
	if ext == "" || ext == "." {
		return "", errors.Wrapf(catalog.ErrNoExtension, "file %q", originalName)
	}

	if err := os.Mkdir(dir, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
		return "", errors.Wrapf(err, "create image dir %q", dir)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", errors.Wrapf(err, "create %q", path)
	}

	n, err := io.Copy(f, content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", errors.Wrapf(err, "write %q", path)
	}

	attrs := metric.WithAttributes(attribute.String("ext", ext))
	s.stored.Add(ctx, 1, attrs)
	s.bytes.Add(ctx, n, attrs)

	zctx.From(ctx).Debug("Stored image",
		zap.String("name", name),
		zap.String("original", originalName),
		zap.Int64("bytes", n),
	)
	return name, nil
}

// Open returns the stored image name inside dir. Names that would escape dir
// are rejected with fs.ErrNotExist.
func Open(dir, name string) (*os.File, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	return f, nil
}
