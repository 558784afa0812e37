// Package ads implements the ad catalog: creating listings for the signed-in
// user and listing them newest first.
package ads

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/adboard/internal/common"
	"github.com/dmitrijs2005/adboard/internal/kvstore"
	"github.com/dmitrijs2005/adboard/internal/logging"
	"github.com/dmitrijs2005/adboard/internal/models"
	"github.com/google/uuid"
)

// Draft holds the user-entered fields of a new ad.
type Draft struct {
	Category    string
	Title       string
	Description string
	Price       string
	ImageURL    string
}

// SessionSource reports the signed-in user. users.Directory implements it.
type SessionSource interface {
	Current() *models.User
}

type Catalog struct {
	store       kvstore.Store
	session     SessionSource
	logger      logging.Logger
	placeholder string
	now         func() time.Time
	newID       func() (string, error)

	mu  sync.RWMutex
	ads []models.Ad
}

type Option func(*Catalog)

// WithPlaceholder sets the image URL stored for ads posted without an image.
func WithPlaceholder(url string) Option {
	return func(c *Catalog) { c.placeholder = url }
}

func WithClock(now func() time.Time) Option {
	return func(c *Catalog) { c.now = now }
}

func WithIDGenerator(gen func() (string, error)) Option {
	return func(c *Catalog) { c.newID = gen }
}

func newV7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// NewCatalog loads the "ads" collection from store.
func NewCatalog(ctx context.Context, store kvstore.Store, session SessionSource, logger logging.Logger, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		store:       store,
		session:     session,
		logger:      logger.With("component", "ads"),
		placeholder: common.DefaultPlaceholderImageURL,
		now:         time.Now,
		newID:       newV7,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the collection from the store.
func (c *Catalog) Reload(ctx context.Context) error {
	var list []models.Ad
	if _, err := kvstore.LoadJSON(ctx, c.store, common.AdsKey, &list); err != nil {
		return fmt.Errorf("load ads: %w", err)
	}

	c.mu.Lock()
	c.ads = list
	c.mu.Unlock()
	return nil
}

// Add creates an ad owned by the signed-in user.
func (c *Catalog) Add(ctx context.Context, d Draft) (*models.Ad, error) {
	user := c.session.Current()
	if user == nil {
		c.logger.Info(ctx, "ad rejected: not signed in")
		return nil, common.ErrorUnauthorized
	}

	d.Category = strings.TrimSpace(d.Category)
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.ImageURL = strings.TrimSpace(d.ImageURL)

	if err := ValidateDraft(d); err != nil {
		return nil, err
	}

	price, err := models.FormatPrice(d.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}

	id, err := c.newID()
	if err != nil {
		return nil, fmt.Errorf("generate ad id: %w", err)
	}

	imageURL := d.ImageURL
	if imageURL == "" {
		imageURL = c.placeholder
	}

	ad := models.Ad{
		ID:          id,
		Category:    d.Category,
		Title:       d.Title,
		Description: d.Description,
		Price:       price,
		ImageURL:    imageURL,
		UserEmail:   user.Email,
		CreatedAt:   c.now().UTC(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	list, err := kvstore.UpdateJSON(ctx, c.store, common.AdsKey, func(list *[]models.Ad) error {
		*list = append(*list, ad)
		return nil
	})
	if err != nil {
		c.logger.Error(ctx, "ad save failed", "error", err.Error())
		return nil, fmt.Errorf("save ads: %w", err)
	}

	c.ads = list
	c.logger.Info(ctx, "ad created", "id", ad.ID, "user", ad.UserEmail)
	return &ad, nil
}

// ValidateDraft checks that the required fields are not blank. The first
// missing field is reported.
func ValidateDraft(d Draft) error {
	fields := []struct{ name, value string }{
		{"category", d.Category},
		{"title", d.Title},
		{"description", d.Description},
		{"price", d.Price},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return common.NewFieldError(f.name)
		}
	}
	return nil
}

// All returns every ad, newest first.
func (c *Catalog) All(ctx context.Context) []models.Ad {
	c.mu.RLock()
	out := make([]models.Ad, len(c.ads))
	copy(out, c.ads)
	c.mu.RUnlock()

	models.SortNewestFirst(out)
	return out
}

// ByUser returns the ads owned by email, newest first.
func (c *Catalog) ByUser(ctx context.Context, email string) []models.Ad {
	c.mu.RLock()
	out := make([]models.Ad, 0, len(c.ads))
	for _, a := range c.ads {
		if a.UserEmail == email {
			out = append(out, a)
		}
	}
	c.mu.RUnlock()

	models.SortNewestFirst(out)
	return out
}
