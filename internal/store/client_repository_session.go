package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/models"
)

const (
	saveSession = `INSERT INTO session (id, token, user_id, username, expires_at, saved_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			token = excluded.token,
			user_id = excluded.user_id,
			username = excluded.username,
			expires_at = excluded.expires_at,
			saved_at = excluded.saved_at;`

	loadSession = `SELECT token, user_id, username, expires_at, saved_at FROM session WHERE id = 1;`

	clearSession = `DELETE FROM session;`
)

type localSessionRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewLocalSessionRepository constructs a SQLite-backed [LocalSessionRepository].
func NewLocalSessionRepository(db *DB, logger *logger.Logger) LocalSessionRepository {
	return &localSessionRepository{db: db, logger: logger}
}

func (r *localSessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	var expiresAt any
	if !session.ExpiresAt.IsZero() {
		expiresAt = session.ExpiresAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, saveSession,
		session.Token, session.UserID, session.Username, expiresAt, session.SavedAt.UTC())
	if err != nil {
		r.logger.Err(err).Str("func", "localSessionRepository.SaveSession").Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *localSessionRepository) LoadSession(ctx context.Context) (models.Session, error) {
	var session models.Session
	var expiresAt sql.NullTime
	var savedAt time.Time

	err := r.db.QueryRowContext(ctx, loadSession).
		Scan(&session.Token, &session.UserID, &session.Username, &expiresAt, &savedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrLocalSessionNotFound
		}
		r.logger.Err(err).Str("func", "localSessionRepository.LoadSession").Msg("failed to load session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if expiresAt.Valid {
		session.ExpiresAt = expiresAt.Time.UTC()
	}
	session.SavedAt = savedAt.UTC()

	return session, nil
}

func (r *localSessionRepository) ClearSession(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, clearSession); err != nil {
		r.logger.Err(err).Str("func", "localSessionRepository.ClearSession").Msg("failed to clear session")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
