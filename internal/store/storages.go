package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-progress-tracker/internal/cache"
	"github.com/MKhiriev/go-progress-tracker/internal/config"
	"github.com/MKhiriev/go-progress-tracker/internal/logger"
)

// Storages groups the server-side persistence components handed to the
// service layer.
type Storages struct {
	UserRepository  UserRepository
	ProgressStorage ProgressStorage

	closers []func() error
}

// NewStorages connects to PostgreSQL, applies migrations and, when a Redis
// address is configured, attaches the progress list cache.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	storages := &Storages{closers: []func() error{db.Close}}

	var progressCache Cache
	if cfg.Cache.RedisAddress != "" {
		redisCache := cache.NewFromConfig(cfg.Cache)
		if pingErr := redisCache.Ping(ctx); pingErr != nil {
			log.Warn().Err(pingErr).Msg("redis is unavailable, progress cache will behave as a miss")
		}
		progressCache = redisCache
		storages.closers = append(storages.closers, redisCache.Close)
	}

	storages.UserRepository = NewUserRepository(db, log)
	storages.ProgressStorage = NewProgressStorage(
		NewProgressRepository(db, log),
		progressCache,
		cfg.Cache,
		db.errorClassificator,
		log,
	)

	return storages, nil
}

// Close releases the database pool and the cache client.
func (s *Storages) Close() error {
	var firstErr error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
