package ui

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/adboard/internal/common"
	"github.com/dmitrijs2005/adboard/internal/logging"
	"github.com/dmitrijs2005/adboard/internal/models"
	"github.com/dmitrijs2005/adboard/internal/submission"
)

// Accounts is the part of users.Directory the controller drives.
type Accounts interface {
	Signup(ctx context.Context, firstName, lastName, email, password string) (*models.User, error)
	Signin(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Current() *models.User
}

// Listings is the part of ads.Catalog the controller reads.
type Listings interface {
	All(ctx context.Context) []models.Ad
}

// reloader is implemented by services that mirror the store in memory.
type reloader interface {
	Reload(ctx context.Context) error
}

// Submitter posts ad forms. *submission.Flow implements it.
type Submitter interface {
	Submit(ctx context.Context, form submission.Form) (*models.Ad, error)
}

// Controller runs user actions against the services and applies their page
// side effects. Every action returns the notice to show.
type Controller struct {
	accounts    Accounts
	listings    Listings
	submitter   Submitter
	page        *Page
	logger      logging.Logger
	placeholder string
	reopenDelay time.Duration
	afterFunc   func(d time.Duration, f func())
}

type ControllerOption func(*Controller)

// WithReopenDelay sets how long after logout the sign-in dialog re-opens.
func WithReopenDelay(d time.Duration) ControllerOption {
	return func(c *Controller) { c.reopenDelay = d }
}

func WithPlaceholderImage(url string) ControllerOption {
	return func(c *Controller) { c.placeholder = url }
}

// WithTimer replaces time.AfterFunc for the logout re-open.
func WithTimer(fn func(d time.Duration, f func())) ControllerOption {
	return func(c *Controller) { c.afterFunc = fn }
}

func NewController(accounts Accounts, listings Listings, submitter Submitter, page *Page, logger logging.Logger, opts ...ControllerOption) *Controller {
	c := &Controller{
		accounts:    accounts,
		listings:    listings,
		submitter:   submitter,
		page:        page,
		logger:      logger.With("component", "ui"),
		placeholder: common.DefaultPlaceholderImageURL,
		reopenDelay: 100 * time.Millisecond,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Page() *Page { return c.page }

// Load reflects the stored session and renders the ads, as on page load.
func (c *Controller) Load(ctx context.Context) {
	c.Sync(ctx)
	c.Refresh(ctx)
}

// Sync re-reads the users, session and ads from the store, so changes made
// by another process sharing it become visible, and updates the page for the
// session found. A failed reload keeps the previous copy.
func (c *Controller) Sync(ctx context.Context) {
	for _, svc := range []any{c.accounts, c.listings} {
		if r, ok := svc.(reloader); ok {
			if err := r.Reload(ctx); err != nil {
				c.logger.Warn(ctx, "reload failed", "error", err.Error())
			}
		}
	}
	if u := c.accounts.Current(); u != nil {
		c.page.UpdateUser(u.FullName)
	} else {
		c.page.UpdateUser("")
	}
}

// Refresh re-renders the ad grid.
func (c *Controller) Refresh(ctx context.Context) {
	if !c.page.Has(AdsContainer) {
		c.logger.Debug(ctx, "ads container not found")
		return
	}
	html, err := RenderAdsHTML(c.listings.All(ctx), c.placeholder)
	if err != nil {
		c.logger.Error(ctx, "render ads failed", "error", err.Error())
		return
	}
	c.page.SetHTML(AdsContainer, html)
}

// Signup registers a user. On success the sign-up dialog gives way to the
// sign-in dialog and the sign-up form is cleared.
func (c *Controller) Signup(ctx context.Context, firstName, lastName, email, password string) (Notice, error) {
	if _, err := c.accounts.Signup(ctx, firstName, lastName, email, password); err != nil {
		c.page.Open(SignupModal)
		return c.failure(ctx, err), err
	}
	c.page.Switch(SignupModal, SigninModal)
	c.page.ClearForm(SignupForm)
	return NoticeSignedUp, nil
}

// Signin starts a session and refreshes the page for the signed-in user.
func (c *Controller) Signin(ctx context.Context, email, password string) (Notice, error) {
	u, err := c.accounts.Signin(ctx, email, password)
	if err != nil {
		c.page.Open(SigninModal)
		return c.failure(ctx, err), err
	}
	c.page.UpdateUser(u.FullName)
	c.page.ClearForm(SigninForm)
	c.page.Close(SigninModal)
	c.Refresh(ctx)
	return NoticeSignedIn(u.FullName), nil
}

// Logout ends the session. The sign-in dialog re-opens shortly after.
func (c *Controller) Logout(ctx context.Context) (Notice, error) {
	if err := c.accounts.Logout(ctx); err != nil {
		return c.failure(ctx, err), err
	}
	c.page.UpdateUser("")
	c.page.ClearForm(SigninForm)
	c.page.ClearForm(PostAdForm)
	c.Refresh(ctx)
	c.afterFunc(c.reopenDelay, func() { c.page.Open(SigninModal) })
	return NoticeLoggedOut, nil
}

// RequireSession is the check made before showing the post form. Signed out,
// it opens the sign-in dialog.
func (c *Controller) RequireSession(ctx context.Context) (Notice, bool) {
	if c.accounts.Current() == nil {
		c.page.Open(SigninModal)
		return NoticeAuthNeeded, false
	}
	return Notice{}, true
}

// PostAd submits the post form.
func (c *Controller) PostAd(ctx context.Context, form submission.Form) (*models.Ad, Notice, error) {
	ad, err := c.submitter.Submit(ctx, form)
	if err != nil {
		return nil, c.failure(ctx, err), err
	}
	c.page.Close(PostAdModal)
	c.page.ClearForm(PostAdForm)
	c.Refresh(ctx)
	return ad, NoticeAdPublished, nil
}

func (c *Controller) failure(ctx context.Context, err error) Notice {
	if errors.Is(err, common.ErrorUnauthorized) {
		c.page.Open(SigninModal)
	}
	if !common.IsDomainError(err) {
		c.logger.Error(ctx, "operation failed", "error", err.Error())
	}
	return NoticeFor(err)
}
