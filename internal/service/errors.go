package service

import "errors"

var (
	ErrMissingField            = errors.New("missing required field")
	ErrInvalidInput            = errors.New("invalid input")
	ErrDuplicateIdentity       = errors.New("user with this email or username already exists")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrNotFound                = errors.New("progress entry not found")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")

	ErrNoUserIDInContext = errors.New("no user ID in context")

	ErrNotLoggedIn      = errors.New("not logged in")
	ErrSessionExpired   = errors.New("session expired, please log in again")
	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")
)
