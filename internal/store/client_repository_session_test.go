package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-progress-tracker/internal/config"
	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClientStorages(t *testing.T) *ClientStorages {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "nested", "client.db")

	storages, err := NewClientStorages(context.Background(), config.ClientStorage{DB: config.ClientDB{DSN: dsn}}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	return storages
}

func TestLocalSessionRepository_Lifecycle(t *testing.T) {
	repo := newTestClientStorages(t).SessionRepository
	ctx := context.Background()

	_, err := repo.LoadSession(ctx)
	require.True(t, errors.Is(err, ErrLocalSessionNotFound), "got %v", err)

	saved := models.Session{
		Token:     "header.payload.sig",
		UserID:    testUserID,
		Username:  "alice",
		ExpiresAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		SavedAt:   time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.SaveSession(ctx, saved))

	loaded, err := repo.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.Token, loaded.Token)
	assert.Equal(t, saved.UserID, loaded.UserID)
	assert.Equal(t, saved.Username, loaded.Username)
	assert.True(t, saved.ExpiresAt.Equal(loaded.ExpiresAt))

	// a second save replaces the first
	saved.Username = "alice2"
	require.NoError(t, repo.SaveSession(ctx, saved))
	loaded, err = repo.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice2", loaded.Username)

	require.NoError(t, repo.ClearSession(ctx))
	_, err = repo.LoadSession(ctx)
	assert.ErrorIs(t, err, ErrLocalSessionNotFound)

	// clearing twice is fine
	assert.NoError(t, repo.ClearSession(ctx))
}

func TestLocalSessionRepository_NoExpiry(t *testing.T) {
	repo := newTestClientStorages(t).SessionRepository
	ctx := context.Background()

	require.NoError(t, repo.SaveSession(ctx, models.Session{Token: "t", UserID: "u", Username: "n", SavedAt: time.Now()}))

	loaded, err := repo.LoadSession(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.ExpiresAt.IsZero())
}
