// Package users implements the user directory: sign-up, sign-in, logout and
// the persisted session reference.
//
// The directory keeps an in-memory copy of the "users" collection and the
// signed-in user, and mirrors both to the key-value store on every change.
package users

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/adboard/internal/common"
	"github.com/dmitrijs2005/adboard/internal/kvstore"
	"github.com/dmitrijs2005/adboard/internal/logging"
	"github.com/dmitrijs2005/adboard/internal/models"
)

type Directory struct {
	store  kvstore.Store
	logger logging.Logger

	mu      sync.RWMutex
	users   []models.User
	current *models.User
}

// NewDirectory loads the users collection and the session reference from store.
func NewDirectory(ctx context.Context, store kvstore.Store, logger logging.Logger) (*Directory, error) {
	d := &Directory{store: store, logger: logger.With("component", "users")}
	if err := d.Reload(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload re-reads both keys from the store, replacing the in-memory copies.
func (d *Directory) Reload(ctx context.Context) error {
	var list []models.User
	if _, err := kvstore.LoadJSON(ctx, d.store, common.UsersKey, &list); err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	var session models.User
	found, err := kvstore.LoadJSON(ctx, d.store, common.LoggedInUserKey, &session)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.users = list
	d.current = nil
	if found {
		d.current = &session
	}
	return nil
}

// Signup registers a new user. All fields are required; the email must not
// be registered yet. The email is stored trimmed and compared exactly.
func (d *Directory) Signup(ctx context.Context, firstName, lastName, email, password string) (*models.User, error) {
	fields := []struct{ name, value string }{
		{"firstName", firstName},
		{"lastName", lastName},
		{"email", email},
		{"password", password},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return nil, common.NewFieldError(f.name)
		}
	}

	email = strings.TrimSpace(email)
	user := models.NewUser(firstName, lastName, email, password)

	d.mu.Lock()
	defer d.mu.Unlock()

	list, err := kvstore.UpdateJSON(ctx, d.store, common.UsersKey, func(list *[]models.User) error {
		for _, u := range *list {
			if u.Email == email {
				return common.ErrorAlreadyExists
			}
		}
		*list = append(*list, user)
		return nil
	})
	if err != nil {
		if common.IsDomainError(err) {
			d.logger.Info(ctx, "signup rejected", "email", email, "reason", err.Error())
			return nil, err
		}
		d.logger.Error(ctx, "signup failed", "email", email, "error", err.Error())
		return nil, fmt.Errorf("save users: %w", err)
	}

	d.users = list
	d.logger.Info(ctx, "user signed up", "email", email)
	return &user, nil
}

// Signin makes the first user whose email and password both match exactly
// the signed-in user. The error does not say which of the two was wrong.
// Users are matched against the stored collection, not the in-memory copy.
func (d *Directory) Signin(ctx context.Context, email, password string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var list []models.User
	if _, err := kvstore.LoadJSON(ctx, d.store, common.UsersKey, &list); err != nil {
		d.logger.Error(ctx, "signin failed", "email", email, "error", err.Error())
		return nil, fmt.Errorf("load users: %w", err)
	}
	d.users = list

	var match *models.User
	for i := range d.users {
		if d.users[i].Email == email && d.users[i].Password == password {
			u := d.users[i]
			match = &u
			break
		}
	}
	if match == nil {
		d.logger.Info(ctx, "signin rejected", "email", email)
		return nil, common.ErrorInvalidCredentials
	}

	if err := kvstore.SaveJSON(ctx, d.store, common.LoggedInUserKey, match); err != nil {
		d.logger.Error(ctx, "signin failed", "email", email, "error", err.Error())
		return nil, fmt.Errorf("save session: %w", err)
	}

	d.current = match
	d.logger.Info(ctx, "user signed in", "email", email)

	u := *match
	return &u, nil
}

// Logout clears the session reference. Logging out while signed out is not
// an error.
func (d *Directory) Logout(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.store.Remove(ctx, common.LoggedInUserKey); err != nil {
		d.logger.Error(ctx, "logout failed", "error", err.Error())
		return fmt.Errorf("remove session: %w", err)
	}

	if d.current != nil {
		d.logger.Info(ctx, "user logged out", "email", d.current.Email)
	}
	d.current = nil
	return nil
}

// Current returns a copy of the signed-in user, or nil.
func (d *Directory) Current() *models.User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.current == nil {
		return nil
	}
	u := *d.current
	return &u
}

// Users returns a copy of the collection in registration order.
func (d *Directory) Users() []models.User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]models.User, len(d.users))
	copy(out, d.users)
	return out
}

// FindByEmail returns the user registered with email.
func (d *Directory) FindByEmail(email string) (*models.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}
