// Package board wires the board's services over one store: the user
// directory, the ad catalog, the image strategy, the submission flow and the
// page controller. The web server and the terminal client both start here.
package board

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/adboard/internal/ads"
	"github.com/dmitrijs2005/adboard/internal/config"
	"github.com/dmitrijs2005/adboard/internal/images"
	"github.com/dmitrijs2005/adboard/internal/kvstore"
	"github.com/dmitrijs2005/adboard/internal/logging"
	"github.com/dmitrijs2005/adboard/internal/submission"
	"github.com/dmitrijs2005/adboard/internal/ui"
	"github.com/dmitrijs2005/adboard/internal/users"
)

type Board struct {
	Store      kvstore.Store
	Users      *users.Directory
	Catalog    *ads.Catalog
	Images     images.Strategy
	Flow       *submission.Flow
	Page       *ui.Page
	Controller *ui.Controller
}

// openStore is replaced in tests.
var openStore = kvstore.Open

// New opens the configured store and builds the services on it.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Board, error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StorageBackend, err)
	}

	b, err := NewWithStore(ctx, cfg, store, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return b, nil
}

// NewWithStore builds the services on an already opened store.
func NewWithStore(ctx context.Context, cfg *config.Config, store kvstore.Store, logger logging.Logger) (*Board, error) {
	dir, err := users.NewDirectory(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	catalog, err := ads.NewCatalog(ctx, store, dir, logger, ads.WithPlaceholder(cfg.PlaceholderImageURL))
	if err != nil {
		return nil, err
	}

	strategy, err := images.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("image strategy: %w", err)
	}

	flow := submission.NewFlow(dir, catalog, strategy, logger)
	page := ui.NewPage(ui.WithFocusDelay(cfg.FocusDelay))
	ctrl := ui.NewController(dir, catalog, flow, page, logger,
		ui.WithReopenDelay(cfg.LogoutReopenDelay),
		ui.WithPlaceholderImage(cfg.PlaceholderImageURL),
	)
	ctrl.Load(ctx)

	logger.Info(ctx, "board ready",
		"storage", cfg.StorageBackend,
		"images", cfg.ImageStrategy,
		"users", len(dir.Users()),
		"ads", len(catalog.All(ctx)),
	)

	return &Board{
		Store:      store,
		Users:      dir,
		Catalog:    catalog,
		Images:     strategy,
		Flow:       flow,
		Page:       page,
		Controller: ctrl,
	}, nil
}

func (b *Board) Close() error {
	return b.Store.Close()
}
