package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-progress-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts in the "users" table.
type UserRepository interface {
	// CreateUser inserts user and returns the stored row.
	// Returns [ErrUserAlreadyExists] when username or email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail returns [ErrNoUserWasFound] when no account matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID returns [ErrNoUserWasFound] when no account matches.
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	// UpdatePasswordHash replaces the stored bcrypt digest.
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error
}

// ProgressRepository executes progress SQL against the "progress" table.
type ProgressRepository interface {
	// UpsertProgress inserts the record or, when (user_id, platform)
	// exists, overwrites its counts in one atomic statement keeping the
	// existing id.
	UpsertProgress(ctx context.Context, progress models.Progress) (models.Progress, error)
	// UpdateProgress overwrites the counts of an existing
	// (user_id, platform) record.
	UpdateProgress(ctx context.Context, progress models.Progress) (models.Progress, error)
	// ListProgress returns the user's records, most recently updated first.
	ListProgress(ctx context.Context, userID string) ([]models.Progress, error)
	// DeleteProgress removes the record only if it belongs to userID.
	DeleteProgress(ctx context.Context, userID, progressID string) error
}

// ProgressStorage is what the service layer talks to. It adds caching and
// retry on top of a [ProgressRepository].
type ProgressStorage interface {
	Upsert(ctx context.Context, progress models.Progress) (models.Progress, error)
	List(ctx context.Context, userID string) ([]models.Progress, error)
	Delete(ctx context.Context, userID, progressID string) error
}

// Cache is a best-effort byte cache. Implementations report misses and
// backend outages alike as (nil, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Incr atomically increments the integer stored at key, starting from 0.
	Incr(ctx context.Context, key string) (int64, error)
}

// ErrorClassificator tells transient database failures from permanent ones.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
