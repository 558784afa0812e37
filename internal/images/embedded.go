package images

import (
	"context"
	"encoding/base64"
	"strings"
)

// Embedded encodes the image into a data URL, so the ad record carries the
// picture itself.
type Embedded struct {
	placeholder string
	maxSize     int64
}

func NewEmbedded(placeholder string, maxSize int64) *Embedded {
	return &Embedded{placeholder: placeholder, maxSize: maxSize}
}

func (e *Embedded) Resolve(ctx context.Context, up *Upload) (string, error) {
	if up == nil || len(up.Data) == 0 {
		return e.placeholder, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if int64(len(up.Data)) > e.maxSize {
		return "", ErrTooLarge
	}
	if !strings.HasPrefix(up.ContentType, "image/") {
		return "", ErrNotImage
	}
	return DataURL(up.ContentType, up.Data), nil
}

// DataURL returns data as a base64 data URL of the given media type.
func DataURL(contentType string, data []byte) string {
	var b strings.Builder
	b.Grow(len("data:;base64,") + len(contentType) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(contentType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}
