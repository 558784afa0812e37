package images

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/adboard/internal/common"
	"github.com/dmitrijs2005/adboard/internal/config"
	"github.com/dmitrijs2005/adboard/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG.
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestReadUpload(t *testing.T) {
	t.Run("sniffs content type", func(t *testing.T) {
		up, err := ReadUpload(bytes.NewReader(pngPixel), "pixel.png", "application/octet-stream", 1024)
		require.NoError(t, err)
		require.NotNil(t, up)
		assert.Equal(t, "image/png", up.ContentType)
		assert.Equal(t, "pixel.png", up.Filename)
		assert.Equal(t, pngPixel, up.Data)
	})

	t.Run("keeps declared type", func(t *testing.T) {
		up, err := ReadUpload(bytes.NewReader(pngPixel), "p", "image/x-custom", 1024)
		require.NoError(t, err)
		assert.Equal(t, "image/x-custom", up.ContentType)
	})

	t.Run("empty means no image", func(t *testing.T) {
		up, err := ReadUpload(strings.NewReader(""), "", "", 1024)
		require.NoError(t, err)
		assert.Nil(t, up)
	})

	t.Run("exactly at limit", func(t *testing.T) {
		up, err := ReadUpload(bytes.NewReader(pngPixel), "p.png", "", int64(len(pngPixel)))
		require.NoError(t, err)
		assert.NotNil(t, up)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := ReadUpload(bytes.NewReader(pngPixel), "p.png", "", int64(len(pngPixel)-1))
		require.ErrorIs(t, err, ErrTooLarge)
		require.ErrorIs(t, err, common.ErrorValidation)
	})

	t.Run("read error", func(t *testing.T) {
		_, err := ReadUpload(errReader{}, "p.png", "", 1024)
		require.Error(t, err)
		assert.False(t, errors.Is(err, common.ErrorValidation))
	})
}

func TestPlaceholder(t *testing.T) {
	p := NewPlaceholder("https://img.example/none.png")

	url, err := p.Resolve(context.Background(), &Upload{ContentType: "image/png", Data: pngPixel})
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/none.png", url)

	url, err = p.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/none.png", url)
}

func TestEmbedded(t *testing.T) {
	e := NewEmbedded("ph", 1024)
	ctx := context.Background()

	url, err := e.Resolve(ctx, &Upload{ContentType: "image/png", Data: pngPixel})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,iVBORw0KGgo"), url)

	url, err = e.Resolve(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "ph", url)

	_, err = e.Resolve(ctx, &Upload{ContentType: "text/plain", Data: []byte("hello")})
	require.ErrorIs(t, err, ErrNotImage)

	_, err = NewEmbedded("ph", 10).Resolve(ctx, &Upload{ContentType: "image/png", Data: pngPixel})
	require.ErrorIs(t, err, ErrTooLarge)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = e.Resolve(canceled, &Upload{ContentType: "image/png", Data: pngPixel})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDataURL(t *testing.T) {
	assert.Equal(t, "data:image/gif;base64,R0lG", DataURL("image/gif", []byte("GIF")))
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	base := func(strategy string) *config.Config {
		cfg := &config.Config{}
		cfg.LoadDefaults()
		cfg.ImageStrategy = strategy
		return cfg
	}

	s, err := New(ctx, base(config.ImagePlaceholder), logging.Discard())
	require.NoError(t, err)
	assert.IsType(t, &Placeholder{}, s)

	s, err = New(ctx, base(config.ImageEmbedded), logging.Discard())
	require.NoError(t, err)
	assert.IsType(t, &Embedded{}, s)

	s, err = New(ctx, base(config.ImageS3), logging.Discard())
	require.NoError(t, err)
	assert.IsType(t, &S3{}, s)

	_, err = New(ctx, base("gif-of-the-day"), logging.Discard())
	require.Error(t, err)
}
