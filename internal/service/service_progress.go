// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/internal/store"
	"github.com/MKhiriev/go-progress-tracker/internal/utils"
	"github.com/MKhiriev/go-progress-tracker/models"
)

// progressService is the storage-facing implementation of ProgressService.
// Input is expected to be validated by a ProgressServiceWrapper in front of it.
type progressService struct {
	storage     store.ProgressStorage
	idGenerator *utils.UUIDGenerator
	now         func() time.Time
	logger      *logger.Logger
}

// NewProgressService constructs a ProgressService backed by storage.
func NewProgressService(storage store.ProgressStorage, logger *logger.Logger) ProgressService {
	return &progressService{
		storage:     storage,
		idGenerator: utils.NewUUIDGenerator(),
		now:         time.Now,
		logger:      logger,
	}
}

// Upsert creates or overwrites the user's record for the trimmed platform.
// A freshly generated id is only kept when no record existed.
func (s *progressService) Upsert(ctx context.Context, userID string, request models.UpsertProgressRequest) (models.Progress, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return models.Progress{}, ErrNoUserIDInContext
	}
	if request.ProblemsSolved == nil || request.TotalProblems == nil {
		return models.Progress{}, ErrMissingField
	}

	progress := models.Progress{
		ID:             s.idGenerator.Generate(),
		UserID:         userID,
		Platform:       strings.TrimSpace(request.Platform),
		ProblemsSolved: *request.ProblemsSolved,
		TotalProblems:  *request.TotalProblems,
		LastUpdated:    s.now().UTC(),
	}

	saved, err := s.storage.Upsert(ctx, progress)
	if err != nil {
		if errors.Is(err, store.ErrProgressConstraint) {
			return models.Progress{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		log.Err(err).Str("user_id", userID).Str("platform", progress.Platform).Msg("progress upsert failed")
		return models.Progress{}, fmt.Errorf("progress upsert failed: %w", err)
	}

	log.Debug().Str("id", saved.ID).Str("platform", saved.Platform).Msg("progress saved")
	return saved, nil
}

// List returns every record of userID, most recently updated first.
func (s *progressService) List(ctx context.Context, userID string) ([]models.Progress, error) {
	if userID == "" {
		return nil, ErrNoUserIDInContext
	}

	progress, err := s.storage.List(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("progress list failed")
		return nil, fmt.Errorf("progress list failed: %w", err)
	}

	if progress == nil {
		progress = []models.Progress{}
	}

	return progress, nil
}

// Delete removes progressID if it belongs to userID. Unknown, foreign and
// malformed ids all return ErrNotFound.
func (s *progressService) Delete(ctx context.Context, userID, progressID string) error {
	if userID == "" {
		return ErrNoUserIDInContext
	}
	if !utils.IsUUID(progressID) {
		return ErrNotFound
	}

	if err := s.storage.Delete(ctx, userID, progressID); err != nil {
		if errors.Is(err, store.ErrProgressNotFound) {
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}

		logger.FromContext(ctx).Err(err).Str("user_id", userID).Str("id", progressID).Msg("progress delete failed")
		return fmt.Errorf("progress delete failed: %w", err)
	}

	return nil
}
