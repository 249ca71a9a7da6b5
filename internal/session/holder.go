// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session keeps the client's authenticated identity.
//
// A [Holder] is created once per client process and shared by the HTTP
// adapter (as its token source) and the terminal views. Its lifecycle is
// Load on startup, Set after login or registration, and Clear on logout or
// when the server rejects the token.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/internal/store"
	"github.com/MKhiriev/go-progress-tracker/internal/utils"
	"github.com/MKhiriev/go-progress-tracker/models"
)

var ErrEmptyToken = errors.New("session token is empty")

// Holder is the in-memory view of the persisted session. It is safe for
// concurrent use.
type Holder struct {
	mu      sync.RWMutex
	current *models.Session

	repo   store.LocalSessionRepository
	now    func() time.Time
	logger *logger.Logger
}

// NewHolder returns an empty holder persisting through repo.
func NewHolder(repo store.LocalSessionRepository, logger *logger.Logger) *Holder {
	return &Holder{
		repo:   repo,
		now:    time.Now,
		logger: logger,
	}
}

// Load restores the stored session. It reports false when nothing usable is
// stored; an expired session is removed from storage.
func (h *Holder) Load(ctx context.Context) (models.Session, bool, error) {
	stored, err := h.repo.LoadSession(ctx)
	if err != nil {
		if errors.Is(err, store.ErrLocalSessionNotFound) {
			return models.Session{}, false, nil
		}
		return models.Session{}, false, fmt.Errorf("load session: %w", err)
	}

	if stored.Token == "" || stored.Expired(h.now()) {
		h.logger.Info().Str("user_id", stored.UserID).Msg("stored session is expired, discarding")
		if err = h.repo.ClearSession(ctx); err != nil {
			return models.Session{}, false, fmt.Errorf("clear expired session: %w", err)
		}
		return models.Session{}, false, nil
	}

	h.mu.Lock()
	h.current = &stored
	h.mu.Unlock()

	return stored, true, nil
}

// Set stores a freshly issued token. The expiry is read from the token's
// own claims; a token whose claims cannot be read is kept without a local
// expiry and left for the server to judge.
func (h *Holder) Set(ctx context.Context, authResponse models.AuthResponse) (models.Session, error) {
	token := strings.TrimSpace(authResponse.Token)
	if token == "" {
		return models.Session{}, ErrEmptyToken
	}

	s := models.Session{
		Token:    token,
		UserID:   authResponse.UserID,
		Username: authResponse.Username,
		SavedAt:  h.now().UTC(),
	}

	if claims, err := utils.ParseUnverifiedClaims(token); err == nil {
		s.ExpiresAt = claims.ExpiresAtTime()
		if s.UserID == "" {
			s.UserID = claims.UserID
		}
	} else {
		h.logger.Warn().Err(err).Msg("could not read token claims")
	}

	if err := h.repo.SaveSession(ctx, s); err != nil {
		return models.Session{}, fmt.Errorf("save session: %w", err)
	}

	h.mu.Lock()
	h.current = &s
	h.mu.Unlock()

	return s, nil
}

// Clear forgets the session in memory and in storage.
func (h *Holder) Clear(ctx context.Context) error {
	h.mu.Lock()
	h.current = nil
	h.mu.Unlock()

	if err := h.repo.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the active session, if any.
func (h *Holder) Current() (models.Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.current == nil {
		return models.Session{}, false
	}
	return *h.current, true
}

// Token returns the bearer token of the active session or "".
func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.current == nil {
		return ""
	}
	return h.current.Token
}
