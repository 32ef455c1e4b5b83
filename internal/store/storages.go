// Package store implements persistence for the task manager: PostgreSQL
// repositories for users, tasks and session tokens, and an optional Redis
// cache in front of session lookups.
package store

import (
	"context"
	"errors"
	"io"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
)

// Storages aggregates every repository the service layer depends on.
type Storages struct {
	UserRepository  UserRepository
	TaskRepository  TaskRepository
	TokenRepository TokenRepository
	SessionCache    SessionCache

	closers []io.Closer
}

// NewStorages connects to Postgres, applies migrations and, when a Redis
// address is configured, connects the session cache.
func NewStorages(ctx context.Context, cfg config.Storage, tokenSignKey string, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	storages := &Storages{
		UserRepository:  NewUserRepository(db, log),
		TaskRepository:  NewTaskRepository(db, log),
		TokenRepository: NewTokenRepository(db, log),
		SessionCache:    NewNopSessionCache(),
		closers:         []io.Closer{db},
	}

	if cfg.Cache.RedisAddress != "" {
		cache, cacheErr := NewRedisSessionCache(ctx, cfg.Cache, tokenSignKey, log)
		if cacheErr != nil {
			_ = db.Close()
			return nil, cacheErr
		}
		storages.SessionCache = cache
		if closer, ok := cache.(io.Closer); ok {
			storages.closers = append(storages.closers, closer)
		}
	}

	return storages, nil
}

// Close releases every underlying connection pool.
func (s *Storages) Close() error {
	var errs []error
	for _, closer := range s.closers {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}
