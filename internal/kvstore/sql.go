package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/adboard/internal/dbx"
)

type sqlQueries struct {
	get       string
	getLocked string
	upsert    string
	remove    string
}

// sqlStore is the dialect-independent part of the SQLite and PostgreSQL stores.
type sqlStore struct {
	db *sql.DB
	q  sqlQueries
}

func get(ctx context.Context, db dbx.DBTX, query, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func set(ctx context.Context, db dbx.DBTX, query, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (s *sqlStore) Get(ctx context.Context, key string) ([]byte, error) {
	return get(ctx, s.db, s.q.get, key)
}

func (s *sqlStore) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, s.db, s.q.upsert, key, value)
}

func (s *sqlStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.q.remove, key); err != nil {
		return fmt.Errorf("failed to remove kv[%s]: %w", key, err)
	}
	return nil
}

func (s *sqlStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := get(ctx, tx, s.q.getLocked, key)
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		return set(ctx, tx, s.q.upsert, key, next)
	})
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
