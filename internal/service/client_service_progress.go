// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-progress-tracker/internal/adapter"
	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/internal/validators"
	"github.com/MKhiriev/go-progress-tracker/models"
)

type clientProgressService struct {
	sessions  SessionHolder
	adapter   adapter.ServerAdapter
	validator validators.Validator
	logger    *logger.Logger
}

func NewClientProgressService(sessions SessionHolder, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientProgressService {
	return &clientProgressService{
		sessions:  sessions,
		adapter:   serverAdapter,
		validator: validators.NewProgressValidator(),
		logger:    logger,
	}
}

func (p *clientProgressService) List(ctx context.Context) ([]models.Progress, error) {
	if err := p.requireSession(); err != nil {
		return nil, err
	}

	progress, err := p.adapter.ListProgress(ctx)
	if err != nil {
		return nil, p.handleAdapterError(ctx, "list progress", err)
	}

	return progress, nil
}

func (p *clientProgressService) Upsert(ctx context.Context, platform string, solved, total int) (models.Progress, error) {
	if err := p.requireSession(); err != nil {
		return models.Progress{}, err
	}

	request := models.UpsertProgressRequest{
		Platform:       strings.TrimSpace(platform),
		ProblemsSolved: models.IntPtr(solved),
		TotalProblems:  models.IntPtr(total),
	}
	if err := p.validator.Validate(ctx, request); err != nil {
		return models.Progress{}, classifyValidationError(err)
	}

	saved, err := p.adapter.UpsertProgress(ctx, request)
	if err != nil {
		return models.Progress{}, p.handleAdapterError(ctx, "upsert progress", err)
	}

	return saved, nil
}

func (p *clientProgressService) Delete(ctx context.Context, progressID string) error {
	if err := p.requireSession(); err != nil {
		return err
	}

	if err := p.adapter.DeleteProgress(ctx, progressID); err != nil {
		return p.handleAdapterError(ctx, "delete progress", err)
	}

	return nil
}

func (p *clientProgressService) requireSession() error {
	if _, ok := p.sessions.Current(); !ok {
		return ErrNotLoggedIn
	}
	return nil
}

// handleAdapterError drops the local session when the server no longer
// accepts the token so the next screen is the login flow.
func (p *clientProgressService) handleAdapterError(ctx context.Context, op string, err error) error {
	mapped := mapAdapterError(err)

	if errors.Is(mapped, ErrTokenIsExpiredOrInvalid) {
		if clearErr := p.sessions.Clear(ctx); clearErr != nil {
			p.logger.Err(clearErr).Msg("failed to clear rejected session")
		}
		p.logger.Warn().Str("op", op).Msg("server rejected session token")
		return fmt.Errorf("%s: %w: %w", op, ErrSessionExpired, mapped)
	}

	p.logger.Err(err).Str("op", op).Msg("server call failed")
	return fmt.Errorf("%s: %w", op, mapped)
}
