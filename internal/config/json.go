package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/adboard/internal/flagx"
	"github.com/dmitrijs2005/adboard/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept both
// "100ms"-style strings and integer nanoseconds.
type JsonConfig struct {
	HTTPAddr            string         `json:"http_addr"`
	StorageBackend      string         `json:"storage_backend"`
	DatabaseDSN         string         `json:"database_dsn"`
	RedisAddr           string         `json:"redis_addr"`
	RedisPassword       string         `json:"redis_password"`
	RedisDB             int            `json:"redis_db"`
	RedisPrefix         string         `json:"redis_prefix"`
	ImageStrategy       string         `json:"image_strategy"`
	PlaceholderImageURL string         `json:"placeholder_image_url"`
	MaxImageSize        int64          `json:"max_image_size"`
	S3BaseEndpoint      string         `json:"s3_base_endpoint"`
	S3Region            string         `json:"s3_region"`
	S3Bucket            string         `json:"s3_bucket"`
	S3RootUser          string         `json:"s3_root_user"`
	S3RootPassword      string         `json:"s3_root_password"`
	S3PublicURL         string         `json:"s3_public_url"`
	S3URLExpiry         timex.Duration `json:"s3_url_expiry"`
	LogoutReopenDelay   timex.Duration `json:"logout_reopen_delay"`
	FocusDelay          timex.Duration `json:"focus_delay"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays the file named by -c/-config onto config. Keys missing
// from the file keep their current values.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := fromConfig(config)
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	c.apply(config)
	return nil
}

func fromConfig(config *Config) *JsonConfig {
	return &JsonConfig{
		HTTPAddr:            config.HTTPAddr,
		StorageBackend:      config.StorageBackend,
		DatabaseDSN:         config.DatabaseDSN,
		RedisAddr:           config.RedisAddr,
		RedisPassword:       config.RedisPassword,
		RedisDB:             config.RedisDB,
		RedisPrefix:         config.RedisPrefix,
		ImageStrategy:       config.ImageStrategy,
		PlaceholderImageURL: config.PlaceholderImageURL,
		MaxImageSize:        config.MaxImageSize,
		S3BaseEndpoint:      config.S3BaseEndpoint,
		S3Region:            config.S3Region,
		S3Bucket:            config.S3Bucket,
		S3RootUser:          config.S3RootUser,
		S3RootPassword:      config.S3RootPassword,
		S3PublicURL:         config.S3PublicURL,
		S3URLExpiry:         timex.Duration{Duration: config.S3URLExpiry},
		LogoutReopenDelay:   timex.Duration{Duration: config.LogoutReopenDelay},
		FocusDelay:          timex.Duration{Duration: config.FocusDelay},
		LogLevel:            config.LogLevel,
	}
}

func (c *JsonConfig) apply(config *Config) {
	config.HTTPAddr = c.HTTPAddr
	config.StorageBackend = c.StorageBackend
	config.DatabaseDSN = c.DatabaseDSN
	config.RedisAddr = c.RedisAddr
	config.RedisPassword = c.RedisPassword
	config.RedisDB = c.RedisDB
	config.RedisPrefix = c.RedisPrefix
	config.ImageStrategy = c.ImageStrategy
	config.PlaceholderImageURL = c.PlaceholderImageURL
	config.MaxImageSize = c.MaxImageSize
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.S3Region = c.S3Region
	config.S3Bucket = c.S3Bucket
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3PublicURL = c.S3PublicURL
	config.S3URLExpiry = c.S3URLExpiry.Duration
	config.LogoutReopenDelay = c.LogoutReopenDelay.Duration
	config.FocusDelay = c.FocusDelay.Duration
	config.LogLevel = c.LogLevel
}
