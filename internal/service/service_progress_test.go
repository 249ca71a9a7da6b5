// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/internal/mock"
	"github.com/MKhiriev/go-progress-tracker/internal/service"
	"github.com/MKhiriev/go-progress-tracker/internal/store"
	"github.com/MKhiriev/go-progress-tracker/internal/utils"
	"github.com/MKhiriev/go-progress-tracker/internal/validators"
	"github.com/MKhiriev/go-progress-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	aliceID    = "0190d6e6-7a4e-7c4d-9d8e-2f1b3c4d5e6f"
	progressID = "0190d6e6-8b5f-7d5e-8e9f-3a2c4d5e6f70"
)

// newProgressService returns the validated service exactly as NewServices
// composes it.
func newProgressService(t *testing.T) (service.ProgressService, *mock.MockProgressStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	storage := mock.NewMockProgressStorage(ctrl)
	svc := service.NewProgressValidationService().Wrap(service.NewProgressService(storage, logger.Nop()))
	return svc, storage
}

func upsert(platform string, solved, total int) models.UpsertProgressRequest {
	return models.UpsertProgressRequest{
		Platform:       platform,
		ProblemsSolved: models.IntPtr(solved),
		TotalProblems:  models.IntPtr(total),
	}
}

// ─────────────────────────────────────────────
// Upsert
// ─────────────────────────────────────────────

func TestUpsert_BuildsRecord(t *testing.T) {
	svc, storage := newProgressService(t)
	before := time.Now().UTC()

	storage.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p models.Progress) (models.Progress, error) {
			assert.True(t, utils.IsUUID(p.ID))
			assert.Equal(t, aliceID, p.UserID)
			assert.Equal(t, "LeetCode", p.Platform)
			assert.Equal(t, 10, p.ProblemsSolved)
			assert.Equal(t, 50, p.TotalProblems)
			assert.False(t, p.LastUpdated.Before(before))
			return p, nil
		})

	saved, err := svc.Upsert(context.Background(), aliceID, upsert("  LeetCode  ", 10, 50))

	require.NoError(t, err)
	assert.Equal(t, "LeetCode", saved.Platform)
}

func TestUpsert_InvalidInputNeverReachesStorage(t *testing.T) {
	tests := []struct {
		name      string
		request   models.UpsertProgressRequest
		wantErr   error
		wantCause error
	}{
		{"solved exceeds total", upsert("LeetCode", 5, 3), service.ErrInvalidInput, validators.ErrSolvedExceedsTotal},
		{"negative solved", upsert("LeetCode", -1, 3), service.ErrInvalidInput, validators.ErrNegativeProblems},
		{"blank platform", upsert("   ", 1, 3), service.ErrMissingField, validators.ErrMissingProgressFields},
		{"missing counts", models.UpsertProgressRequest{Platform: "LeetCode"}, service.ErrMissingField, validators.ErrMissingProgressFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// no storage expectations: gomock fails the test on any call
			svc, _ := newProgressService(t)

			_, err := svc.Upsert(context.Background(), aliceID, tt.request)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.wantCause)
		})
	}
}

func TestUpsert_ConstraintViolationIsInvalidInput(t *testing.T) {
	svc, storage := newProgressService(t)
	storage.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(models.Progress{}, store.ErrProgressConstraint)

	_, err := svc.Upsert(context.Background(), aliceID, upsert("LeetCode", 1, 2))

	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestUpsert_StorageFailure(t *testing.T) {
	svc, storage := newProgressService(t)
	storage.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(models.Progress{}, store.ErrExecutingQuery)

	_, err := svc.Upsert(context.Background(), aliceID, upsert("LeetCode", 1, 2))

	assert.ErrorIs(t, err, store.ErrExecutingQuery)
	assert.False(t, errors.Is(err, service.ErrInvalidInput))
}

func TestUpsert_NoUser(t *testing.T) {
	svc, _ := newProgressService(t)

	_, err := svc.Upsert(context.Background(), "", upsert("LeetCode", 1, 2))

	assert.ErrorIs(t, err, service.ErrNoUserIDInContext)
}

// ─────────────────────────────────────────────
// List
// ─────────────────────────────────────────────

func TestList_ReturnsStorageOrder(t *testing.T) {
	svc, storage := newProgressService(t)
	records := []models.Progress{
		{ID: "b", UserID: aliceID, Platform: "Codeforces"},
		{ID: "a", UserID: aliceID, Platform: "LeetCode"},
	}
	storage.EXPECT().List(gomock.Any(), aliceID).Return(records, nil)

	got, err := svc.List(context.Background(), aliceID)

	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	svc, storage := newProgressService(t)
	storage.EXPECT().List(gomock.Any(), aliceID).Return(nil, nil)

	got, err := svc.List(context.Background(), aliceID)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_StorageFailure(t *testing.T) {
	svc, storage := newProgressService(t)
	storage.EXPECT().List(gomock.Any(), aliceID).Return(nil, store.ErrExecutingQuery)

	_, err := svc.List(context.Background(), aliceID)

	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}

// ─────────────────────────────────────────────
// Delete
// ─────────────────────────────────────────────

func TestDelete_Success(t *testing.T) {
	svc, storage := newProgressService(t)
	storage.EXPECT().Delete(gomock.Any(), aliceID, progressID).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), aliceID, progressID))
}

func TestDelete_ForeignOrUnknownIsNotFound(t *testing.T) {
	svc, storage := newProgressService(t)
	storage.EXPECT().Delete(gomock.Any(), aliceID, progressID).Return(store.ErrProgressNotFound)

	err := svc.Delete(context.Background(), aliceID, progressID)

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDelete_MalformedIDIsNotFound(t *testing.T) {
	svc, _ := newProgressService(t)

	err := svc.Delete(context.Background(), aliceID, "not-a-uuid")

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDelete_StorageFailure(t *testing.T) {
	svc, storage := newProgressService(t)
	storage.EXPECT().Delete(gomock.Any(), aliceID, progressID).Return(store.ErrExecutingQuery)

	err := svc.Delete(context.Background(), aliceID, progressID)

	assert.ErrorIs(t, err, store.ErrExecutingQuery)
	assert.False(t, errors.Is(err, service.ErrNotFound))
}

// ─────────────────────────────────────────────
// Validation wrapper
// ─────────────────────────────────────────────

func TestProgressValidationService_DelegatesToInner(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mock.NewMockProgressService(ctrl)
	svc := service.NewProgressValidationService().Wrap(inner)

	inner.EXPECT().Upsert(gomock.Any(), aliceID, gomock.Any()).Return(models.Progress{ID: progressID}, nil)
	inner.EXPECT().List(gomock.Any(), aliceID).Return([]models.Progress{}, nil)
	inner.EXPECT().Delete(gomock.Any(), aliceID, progressID).Return(nil)

	saved, err := svc.Upsert(context.Background(), aliceID, upsert("LeetCode", 1, 1))
	require.NoError(t, err)
	assert.Equal(t, progressID, saved.ID)

	_, err = svc.List(context.Background(), aliceID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), aliceID, progressID))
}
