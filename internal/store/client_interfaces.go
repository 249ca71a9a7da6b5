package store

import (
	"context"

	"github.com/MKhiriev/go-progress-tracker/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalSessionRepository persists the single client session.
type LocalSessionRepository interface {
	// SaveSession replaces whatever session was stored.
	SaveSession(ctx context.Context, session models.Session) error
	// LoadSession returns [ErrLocalSessionNotFound] when nothing is stored.
	LoadSession(ctx context.Context) (models.Session, error)
	// ClearSession removes the stored session; clearing an empty store is
	// not an error.
	ClearSession(ctx context.Context) error
}
