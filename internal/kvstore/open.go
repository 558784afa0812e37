package kvstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/adboard/internal/config"
)

// Open builds the Store selected by cfg.StorageBackend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		s   Store
		err error
	)

	switch cfg.StorageBackend {
	case config.StorageMemory:
		s = NewMemoryStore()
	case config.StorageSQLite:
		var st *SQLiteStore
		if st, err = OpenSQLite(ctx, cfg.DatabaseDSN); err == nil {
			s = st
		}
	case config.StoragePostgres:
		var st *PostgresStore
		if st, err = OpenPostgres(ctx, cfg.DatabaseDSN); err == nil {
			s = st
		}
	case config.StorageRedis:
		var st *RedisStore
		if st, err = OpenRedis(ctx, RedisConfig{
			Address:  cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		}); err == nil {
			s = st
		}
	default:
		err = fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	if err != nil {
		return nil, err
	}
	return s, nil
}
