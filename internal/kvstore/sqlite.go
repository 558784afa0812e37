package kvstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/adboard/internal/filex"
	"github.com/dmitrijs2005/adboard/internal/migrations"

	_ "modernc.org/sqlite"
)

var sqliteQueries = sqlQueries{
	get:       `SELECT value FROM kv WHERE key = ?`,
	getLocked: `SELECT value FROM kv WHERE key = ?`,
	upsert: `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`,
	remove: `DELETE FROM kv WHERE key = ?`,
}

// SQLiteStore keeps the board state in one SQLite table.
type SQLiteStore struct {
	sqlStore
}

// NewSQLiteStore wraps an already migrated database. SQLite allows one writer
// at a time, so the pool is limited to a single connection; Update
// transactions then never contend for the write lock.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	db.SetMaxOpenConns(1)
	return &SQLiteStore{sqlStore{db: db, q: sqliteQueries}}
}

// OpenSQLite opens (creating if needed) the database file at dsn and applies
// migrations.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, fmt.Errorf("sqlite open error: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite open error: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db, "sqlite3", migrations.SQLiteDir); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite migration error: %w", err)
	}

	return NewSQLiteStore(db), nil
}
