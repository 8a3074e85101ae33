package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

// Config holds the complete application configuration, loadable from a .env
// file, environment variables (CATALOG_ prefix), flags, or YAML config files.
type Config struct {
	Addr        string `default:"0.0.0.0:8080" usage:"API server listen address"`
	DatabaseURL string `usage:"PostgreSQL connection URL (CATALOG_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	Images      ImagesConfig
	Pagination  PaginationConfig
	Graceful    GracefulConfig
}

// ImagesConfig controls product image uploads.
type ImagesConfig struct {
	Dir           string `default:"images" usage:"Directory uploaded product images are stored in and served from"`
	MaxUploadSize int64  `default:"10485760" usage:"Maximum image upload size in bytes" flag:"max-upload-size"`
}

// PaginationConfig holds the defaults for paged product listings.
type PaginationConfig struct {
	PageNumber  int    `default:"0" usage:"Default page number"`
	PageSize    int    `default:"50" usage:"Default page size"`
	MaxPageSize int    `default:"100" usage:"Largest page size a client may request" flag:"max-page-size"`
	SortBy      string `default:"productId" usage:"Default product sort field"`
	SortDir     string `default:"asc" usage:"Default sort direction (asc or desc)"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads .env (when present) into the environment, then reads
// environment variables, YAML config files and flags, and applies platform
// defaults.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "CATALOG",
		Files:     []string{"config.yaml", "/etc/catalog/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.DatabaseURL == "":
		return errors.New("database URL is required: set CATALOG_DATABASE_URL or DATABASE_URL")
	case c.Images.Dir == "":
		return errors.New("image directory must not be empty")
	case c.Images.MaxUploadSize <= 0:
		return errors.New("max upload size must be positive")
	case c.Pagination.MaxPageSize < 1:
		return errors.New("max page size must be positive")
	case c.Pagination.PageSize < 1 || c.Pagination.PageSize > c.Pagination.MaxPageSize:
		return errors.Errorf("default page size %d is outside 1..%d", c.Pagination.PageSize, c.Pagination.MaxPageSize)
	}
	return nil
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) that use standard names like DATABASE_URL and PORT to the
// application's CATALOG_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
