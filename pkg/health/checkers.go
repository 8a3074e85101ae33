package health

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck fails when more than threshold goroutines are running,
// which usually means a leak.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(_ context.Context) error {
		if n := runtime.NumGoroutine(); n > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", n, threshold)
		}
		return nil
	}
}

// Pinger is implemented by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingCheck fails when p cannot be reached.
func PingCheck(p Pinger) CheckFunc {
	return func(ctx context.Context) error {
		return p.Ping(ctx)
	}
}

// DirCheck fails when dir exists but is not a directory, or cannot be
// listed. A missing dir is healthy: it is created on first upload.
func DirCheck(dir string) CheckFunc {
	return func(_ context.Context) error {
		st, err := os.Stat(dir)
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil
		case err != nil:
			return errors.Wrapf(err, "stat %q", dir)
		case !st.IsDir():
			return errors.Errorf("%q is not a directory", dir)
		}
		f, err := os.Open(dir)
		if err != nil {
			return errors.Wrapf(err, "open %q", dir)
		}
		defer func() { _ = f.Close() }()
		if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrapf(err, "list %q", dir)
		}
		return nil
	}
}
