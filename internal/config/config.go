// Package config handles runtime settings shared by the board web server and
// the terminal client: defaults, an optional JSON overlay, then command-line
// flags. Later sources take precedence over earlier ones.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/adboard/internal/common"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Image strategies.
const (
	ImagePlaceholder = "placeholder"
	ImageEmbedded    = "embedded"
	ImageS3          = "s3"
)

// Config holds runtime settings.
//
// Fields:
//   - HTTPAddr: bind address of the board web server.
//   - StorageBackend: one of memory, sqlite, postgres, redis.
//   - DatabaseDSN: sqlite file name or PostgreSQL DSN (pgx).
//   - Redis*: connection settings and key prefix for the redis backend.
//   - ImageStrategy: placeholder, embedded (data URL) or s3.
//   - PlaceholderImageURL: image shown for ads without one.
//   - MaxImageSize: upper bound for uploaded images, bytes.
//   - S3*: object storage settings for the s3 image strategy. When
//     S3PublicURL is set images are referenced through it; otherwise a
//     presigned GET URL valid for S3URLExpiry is stored.
//   - LogoutReopenDelay: delay before the sign-in dialog re-opens after logout.
//   - FocusDelay: delay before a freshly opened dialog focuses its first field.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	HTTPAddr            string
	StorageBackend      string
	DatabaseDSN         string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	RedisPrefix         string
	ImageStrategy       string
	PlaceholderImageURL string
	MaxImageSize        int64
	S3BaseEndpoint      string
	S3Region            string
	S3Bucket            string
	S3RootUser          string
	S3RootPassword      string
	S3PublicURL         string
	S3URLExpiry         time.Duration
	LogoutReopenDelay   time.Duration
	FocusDelay          time.Duration
	LogLevel            string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = "127.0.0.1:8080"
	c.StorageBackend = StorageSQLite
	c.DatabaseDSN = "adboard.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPassword = ""
	c.RedisDB = 0
	c.RedisPrefix = "adboard"
	c.ImageStrategy = ImageEmbedded
	c.PlaceholderImageURL = common.DefaultPlaceholderImageURL
	c.MaxImageSize = 5 << 20
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.S3Region = "us-east-1"
	c.S3Bucket = "adboard"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3PublicURL = ""
	c.S3URLExpiry = 7 * 24 * time.Hour
	c.LogoutReopenDelay = 100 * time.Millisecond
	c.FocusDelay = 100 * time.Millisecond
	c.LogLevel = "info"
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageMemory, StorageSQLite, StoragePostgres, StorageRedis:
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	switch c.ImageStrategy {
	case ImagePlaceholder, ImageEmbedded, ImageS3:
	default:
		return fmt.Errorf("unknown image strategy %q", c.ImageStrategy)
	}
	if c.MaxImageSize <= 0 {
		return fmt.Errorf("max image size must be positive, got %d", c.MaxImageSize)
	}
	return nil
}

// Load builds a Config from defaults, the JSON file named by -c/-config in
// args (if any) and the flags in args.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args. It panics on invalid configuration.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
