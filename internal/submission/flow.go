// Package submission is the ad posting path used by the post form: session
// guard, field validation, image resolution, then the catalog.
package submission

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/adboard/internal/ads"
	"github.com/dmitrijs2005/adboard/internal/common"
	"github.com/dmitrijs2005/adboard/internal/images"
	"github.com/dmitrijs2005/adboard/internal/logging"
	"github.com/dmitrijs2005/adboard/internal/models"
)

// Form is a submitted post form. Image is nil when no file was chosen.
type Form struct {
	Category    string
	Title       string
	Description string
	Price       string
	Image       *images.Upload
}

// Adder creates ads. *ads.Catalog implements it.
type Adder interface {
	Add(ctx context.Context, d ads.Draft) (*models.Ad, error)
}

type Flow struct {
	session ads.SessionSource
	catalog Adder
	images  images.Strategy
	logger  logging.Logger
}

func NewFlow(session ads.SessionSource, catalog Adder, strategy images.Strategy, logger logging.Logger) *Flow {
	return &Flow{
		session: session,
		catalog: catalog,
		images:  strategy,
		logger:  logger.With("component", "submission"),
	}
}

// Submit posts the form as an ad owned by the signed-in user. Without a
// session nothing is resolved or written.
func (f *Flow) Submit(ctx context.Context, form Form) (*models.Ad, error) {
	if f.session.Current() == nil {
		f.logger.Info(ctx, "submission rejected: not signed in")
		return nil, common.ErrorUnauthorized
	}

	draft := ads.Draft{
		Category:    strings.TrimSpace(form.Category),
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Price:       strings.TrimSpace(form.Price),
	}
	if err := ads.ValidateDraft(draft); err != nil {
		return nil, err
	}
	if _, err := models.FormatPrice(draft.Price); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}

	url, err := f.images.Resolve(ctx, form.Image)
	if err != nil {
		if common.IsDomainError(err) {
			return nil, err
		}
		f.logger.Error(ctx, "image resolution failed", "error", err.Error())
		return nil, fmt.Errorf("resolve image: %w", err)
	}
	draft.ImageURL = url

	return f.catalog.Add(ctx, draft)
}
