package config

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/adboard/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:8080", c.HTTPAddr)
	assert.Equal(t, StorageSQLite, c.StorageBackend)
	assert.Equal(t, "adboard.db", c.DatabaseDSN)
	assert.Equal(t, "127.0.0.1:6379", c.RedisAddr)
	assert.Equal(t, "adboard", c.RedisPrefix)
	assert.Equal(t, ImageEmbedded, c.ImageStrategy)
	assert.Equal(t, common.DefaultPlaceholderImageURL, c.PlaceholderImageURL)
	assert.Equal(t, int64(5<<20), c.MaxImageSize)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, 7*24*time.Hour, c.S3URLExpiry)
	assert.Equal(t, 100*time.Millisecond, c.LogoutReopenDelay)
	assert.Equal(t, 100*time.Millisecond, c.FocusDelay)
	assert.Equal(t, "info", c.LogLevel)
	assert.NoError(t, c.Validate())
}

func TestLoad_NoArgsGivesDefaults(t *testing.T) {
	c, err := Load(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, c)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "redis backend", mutate: func(c *Config) { c.StorageBackend = StorageRedis }},
		{name: "unknown backend", mutate: func(c *Config) { c.StorageBackend = "localStorage" }, wantErr: true},
		{name: "s3 images", mutate: func(c *Config) { c.ImageStrategy = ImageS3 }},
		{name: "blob images", mutate: func(c *Config) { c.ImageStrategy = "blob" }, wantErr: true},
		{name: "zero image size", mutate: func(c *Config) { c.MaxImageSize = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			if tt.wantErr {
				assert.Error(t, c.Validate())
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}

func TestLoad_InvalidBackendFails(t *testing.T) {
	_, err := Load([]string{"-storage", "cookies"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cookies")
}
