package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-progress-tracker/internal/adapter"
	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/internal/validators"
	"github.com/MKhiriev/go-progress-tracker/models"
)

type clientAuthService struct {
	sessions  SessionHolder
	adapter   adapter.ServerAdapter
	validator validators.Validator
	logger    *logger.Logger
}

func NewClientAuthService(sessions SessionHolder, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		sessions:  sessions,
		adapter:   serverAdapter,
		validator: validators.NewUserValidator(),
		logger:    logger,
	}
}

// Register validates locally with the same rules the server applies, so an
// obviously bad form never costs a round trip.
func (a *clientAuthService) Register(ctx context.Context, request models.RegisterRequest) (models.Session, error) {
	request.Username = strings.TrimSpace(request.Username)
	request.Email = normalizeEmail(request.Email)

	if err := a.validator.Validate(ctx, request); err != nil {
		return models.Session{}, classifyValidationError(err)
	}

	authResponse, err := a.adapter.Register(ctx, request)
	if err != nil {
		a.logger.Err(err).Str("username", request.Username).Msg("registration on server failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}

	return a.store(ctx, authResponse, request.Username)
}

func (a *clientAuthService) Login(ctx context.Context, request models.LoginRequest) (models.Session, error) {
	request.Email = normalizeEmail(request.Email)

	if err := a.validator.Validate(ctx, request); err != nil {
		return models.Session{}, classifyValidationError(err)
	}

	authResponse, err := a.adapter.Login(ctx, request)
	if err != nil {
		a.logger.Err(err).Msg("login on server failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	return a.store(ctx, authResponse, "")
}

func (a *clientAuthService) RestoreSession(ctx context.Context) (models.Session, bool, error) {
	s, ok, err := a.sessions.Load(ctx)
	if err != nil {
		return models.Session{}, false, fmt.Errorf("restore session: %w", err)
	}
	if ok {
		a.logger.Info().Str("user_id", s.UserID).Msg("session restored")
	}
	return s, ok, nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	a.logger.Info().Msg("logged out")
	return nil
}

func (a *clientAuthService) store(ctx context.Context, authResponse models.AuthResponse, fallbackUsername string) (models.Session, error) {
	if authResponse.Username == "" {
		authResponse.Username = fallbackUsername
	}

	s, err := a.sessions.Set(ctx, authResponse)
	if err != nil {
		return models.Session{}, fmt.Errorf("store session: %w", err)
	}

	a.logger.Info().Str("user_id", s.UserID).Msg("logged in")
	return s, nil
}
