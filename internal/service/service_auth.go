package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-progress-tracker/internal/config"
	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/internal/store"
	"github.com/MKhiriev/go-progress-tracker/internal/utils"
	"github.com/MKhiriev/go-progress-tracker/internal/validators"
	"github.com/MKhiriev/go-progress-tracker/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// validator checks registration and login input before any storage call.
	validator validators.Validator

	// idGenerator produces time-ordered user ids.
	idGenerator *utils.UUIDGenerator

	// hashCost is the bcrypt work factor applied to new password digests.
	hashCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// now returns the current time; replaced in tests.
	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		validator:      validators.NewUserValidator(),
		idGenerator:    utils.NewUUIDGenerator(),
		hashCost:       cfg.PasswordHashCost,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		now:            time.Now,
		logger:         logger,
	}
}

// RegisterUser creates a new account.
//
// Username and email are trimmed and the email is lower-cased before
// validation. The password is hashed with bcrypt and only the digest is
// persisted.
//
// Returns the persisted user or:
//   - ErrMissingField if any field is blank.
//   - ErrInvalidInput if a field is present but malformed.
//   - ErrDuplicateIdentity if the username or email is taken.
func (a *authService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	request.Username = strings.TrimSpace(request.Username)
	request.Email = normalizeEmail(request.Email)

	if err := a.validator.Validate(ctx, request); err != nil {
		log.Debug().Err(err).Str("username", request.Username).Msg("invalid registration data provided")
		return models.User{}, classifyValidationError(err)
	}

	passwordHash, err := utils.HashPassword(request.Password, a.hashCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		UserID:       a.idGenerator.Generate(),
		Username:     request.Username,
		Email:        request.Email,
		PasswordHash: passwordHash,
		CreatedAt:    a.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, store.ErrUserAlreadyExists) {
			log.Debug().Str("username", request.Username).Msg("username or email already registered")
			return models.User{}, fmt.Errorf("%w: %w", ErrDuplicateIdentity, err)
		}

		log.Err(err).Str("username", request.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user by email and password.
//
// An unknown email and a wrong password both return ErrInvalidCredentials.
// For an unknown email a bcrypt comparison still runs so the response time
// does not reveal whether the account exists.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	request.Email = normalizeEmail(request.Email)

	if err := a.validator.Validate(ctx, request); err != nil {
		log.Debug().Err(err).Msg("invalid login data provided")
		return models.User{}, classifyValidationError(err)
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			utils.BurnPasswordCheck(request.Password)
			log.Debug().Msg("login attempt for unknown email")
			return models.User{}, ErrInvalidCredentials
		}

		log.Err(err).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.VerifyPassword(foundUser.PasswordHash, request.Password) {
		log.Debug().Str("user_id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTTokenAt(a.tokenIssuer, user.UserID, a.now(), a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, wrong algorithm, malformed,
// bad signature) is normalised to ErrTokenIsExpiredOrInvalid. Expiry is told
// apart from tampering only in the logs.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTTokenAt(tokenString, a.tokenSignKey, a.tokenIssuer, a.now())
	if err != nil {
		if utils.IsTokenExpired(err) {
			log.Debug().Msg("token is expired")
		} else {
			log.Warn().Err(err).Msg("token is invalid")
		}
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	if _, err = token.GetUserID(); err != nil {
		log.Warn().Err(err).Msg("token has no subject")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// UpdatePassword re-hashes the password of userID after verifying the old
// one. The new password is subject to the registration length rule.
func (a *authService) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	if oldPassword == "" || newPassword == "" {
		return ErrMissingField
	}

	if err := a.validator.Validate(ctx, models.RegisterRequest{Password: newPassword}, validators.FieldPassword); err != nil {
		return classifyValidationError(err)
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			utils.BurnPasswordCheck(oldPassword)
			return ErrInvalidCredentials
		}
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if !utils.VerifyPassword(user.PasswordHash, oldPassword) {
		log.Debug().Str("user_id", userID).Msg("wrong old password on password change")
		return ErrInvalidCredentials
	}

	passwordHash, err := utils.HashPassword(newPassword, a.hashCost)
	if err != nil {
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err = a.userRepository.UpdatePasswordHash(ctx, userID, passwordHash); err != nil {
		log.Err(err).Str("user_id", userID).Msg("password hash update failed")
		return fmt.Errorf("password hash update failed: %w", err)
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// classifyValidationError wraps a validator error with the matching service
// category so callers can use errors.Is on either.
func classifyValidationError(err error) error {
	if validators.IsMissingField(err) {
		return fmt.Errorf("%w: %w", ErrMissingField, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
