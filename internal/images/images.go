// Package images turns an uploaded picture into the URL stored on an ad.
//
// Three strategies are available: a fixed placeholder URL, an embedded data
// URL, and an object uploaded to S3-compatible storage. New picks one from
// configuration.
package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/adboard/internal/common"
	"github.com/dmitrijs2005/adboard/internal/config"
	"github.com/dmitrijs2005/adboard/internal/logging"
)

// ErrTooLarge is returned for uploads above the configured size limit. It
// matches common.ErrorValidation.
var ErrTooLarge = fmt.Errorf("%w: image too large", common.ErrorValidation)

// ErrNotImage is returned when the upload does not look like an image.
var ErrNotImage = fmt.Errorf("%w: file is not an image", common.ErrorValidation)

// Upload is an image file received with an ad form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Strategy resolves an upload to an image URL.
type Strategy interface {
	Resolve(ctx context.Context, up *Upload) (string, error)
}

// ReadUpload reads at most maxSize bytes from r. An empty body yields a nil
// Upload, which callers treat as "no image". The content type is sniffed when
// the declared one is empty or generic.
func ReadUpload(r io.Reader, filename, contentType string, maxSize int64) (*Upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, nil
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return &Upload{Filename: filename, ContentType: contentType, Data: data}, nil
}

// New returns the strategy named by cfg.ImageStrategy.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (Strategy, error) {
	switch cfg.ImageStrategy {
	case config.ImagePlaceholder:
		return NewPlaceholder(cfg.PlaceholderImageURL), nil
	case config.ImageEmbedded:
		return NewEmbedded(cfg.PlaceholderImageURL, cfg.MaxImageSize), nil
	case config.ImageS3:
		return NewS3(ctx, S3Config{
			Endpoint:    cfg.S3BaseEndpoint,
			Region:      cfg.S3Region,
			Bucket:      cfg.S3Bucket,
			AccessKey:   cfg.S3RootUser,
			SecretKey:   cfg.S3RootPassword,
			PublicURL:   cfg.S3PublicURL,
			URLExpiry:   cfg.S3URLExpiry,
			MaxSize:     cfg.MaxImageSize,
			Placeholder: cfg.PlaceholderImageURL,
		}, logger)
	default:
		return nil, errors.New("unknown image strategy " + cfg.ImageStrategy)
	}
}
