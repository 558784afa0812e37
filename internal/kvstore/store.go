// Package kvstore is the storage adapter of the board: a key-value store of
// JSON documents addressed by fixed names ("users", "ads", "loggedInUser").
//
// Backends: an in-process map, SQLite, PostgreSQL and Redis. All of them
// implement Store; Open picks one from configuration.
package kvstore

import (
	"context"
	"errors"
)

// ErrConflict is returned by Update when a concurrent writer kept changing
// the key and the retry budget ran out.
var ErrConflict = errors.New("kvstore: concurrent update conflict")

// UpdateFunc receives the current value of a key (nil when absent) and
// returns the value to store. Returning an error aborts the update and
// leaves the key untouched.
type UpdateFunc func(current []byte) ([]byte, error)

// Store is a key-value store.
//
// Get returns (nil, nil) for a missing key. Remove of a missing key is not an
// error. Update performs an atomic read-modify-write of one key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}
