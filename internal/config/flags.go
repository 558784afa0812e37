package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/adboard/internal/flagx"
)

var knownFlags = []string{
	"-a", "-storage", "-d", "-redis-addr", "-redis-password", "-redis-db", "-redis-prefix",
	"-image", "-placeholder", "-max-image", "-s3-endpoint", "-s3-region", "-s3-bucket",
	"-s3-user", "-s3-password", "-s3-public-url", "-s3-expiry", "-reopen-delay", "-focus-delay",
	"-log-level",
}

// parseFlags populates config fields from command-line flags.
//
// Supported flags:
//
//	-a string              HTTP bind address (default "127.0.0.1:8080")
//	-storage string        memory | sqlite | postgres | redis
//	-d string              sqlite file or PostgreSQL DSN
//	-redis-addr string     redis host:port
//	-redis-password string redis password
//	-redis-db int          redis database number
//	-redis-prefix string   redis key prefix
//	-image string          placeholder | embedded | s3
//	-placeholder string    placeholder image URL
//	-max-image int         max uploaded image size, bytes
//	-s3-endpoint string    S3 base endpoint (e.g. "http://127.0.0.1:9000/")
//	-s3-region string      S3 region
//	-s3-bucket string      S3 bucket
//	-s3-user string        S3 access key
//	-s3-password string    S3 secret key
//	-s3-public-url string  public URL prefix for stored images
//	-s3-expiry int         presigned GET validity, minutes
//	-reopen-delay dur      sign-in re-open delay after logout
//	-focus-delay dur       deferred focus delay
//	-log-level string      debug | info | warn | error
//
// Arguments not in the list above (including -c/-config) are filtered out
// before parsing.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("adboard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.StorageBackend, "storage", config.StorageBackend, "storage backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "redis-addr", config.RedisAddr, "redis address")
	fs.StringVar(&config.RedisPassword, "redis-password", config.RedisPassword, "redis password")
	fs.IntVar(&config.RedisDB, "redis-db", config.RedisDB, "redis db")
	fs.StringVar(&config.RedisPrefix, "redis-prefix", config.RedisPrefix, "redis key prefix")
	fs.StringVar(&config.ImageStrategy, "image", config.ImageStrategy, "image strategy")
	fs.StringVar(&config.PlaceholderImageURL, "placeholder", config.PlaceholderImageURL, "placeholder image URL")
	fs.Int64Var(&config.MaxImageSize, "max-image", config.MaxImageSize, "max image size in bytes")
	fs.StringVar(&config.S3BaseEndpoint, "s3-endpoint", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3Region, "s3-region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3Bucket, "s3-bucket", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3RootUser, "s3-user", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "s3-password", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3PublicURL, "s3-public-url", config.S3PublicURL, "S3 public URL prefix")

	s3Expiry := fs.Int("s3-expiry", int(config.S3URLExpiry.Minutes()), "presigned GET validity (in minutes)")

	fs.DurationVar(&config.LogoutReopenDelay, "reopen-delay", config.LogoutReopenDelay, "sign-in re-open delay after logout")
	fs.DurationVar(&config.FocusDelay, "focus-delay", config.FocusDelay, "deferred focus delay")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}

	config.S3URLExpiry = time.Duration(*s3Expiry) * time.Minute
	return nil
}
