package service

import (
	"context"

	"github.com/MKhiriev/go-progress-tracker/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// SessionHolder is the client's in-memory session, persisted locally.
// [session.Holder] is the production implementation.
type SessionHolder interface {
	Load(ctx context.Context) (models.Session, bool, error)
	Set(ctx context.Context, authResponse models.AuthResponse) (models.Session, error)
	Clear(ctx context.Context) error
	Current() (models.Session, bool)
	Token() string
}

// ClientAuthService defines the client-side contract for registration,
// login and the session lifecycle.
type ClientAuthService interface {
	// Register creates the account on the server and stores the issued
	// session locally.
	Register(ctx context.Context, request models.RegisterRequest) (models.Session, error)

	// Login authenticates against the server and stores the issued session
	// locally.
	Login(ctx context.Context, request models.LoginRequest) (models.Session, error)

	// RestoreSession loads a still-valid session saved by a previous run.
	// It reports false when the user has to log in.
	RestoreSession(ctx context.Context) (models.Session, bool, error)

	// Logout forgets the session locally. The server keeps no session state.
	Logout(ctx context.Context) error
}

// ClientProgressService defines the client-side contract for the dashboard.
// Every method requires an active session and clears it when the server
// rejects the token.
type ClientProgressService interface {
	List(ctx context.Context) ([]models.Progress, error)
	Upsert(ctx context.Context, platform string, solved, total int) (models.Progress, error)
	Delete(ctx context.Context, progressID string) error
}
