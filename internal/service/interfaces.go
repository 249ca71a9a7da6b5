package service

import (
	"context"

	"github.com/MKhiriev/go-progress-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type AuthService interface {
	RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, request models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

type ProgressService interface {
	Upsert(ctx context.Context, userID string, request models.UpsertProgressRequest) (models.Progress, error)
	List(ctx context.Context, userID string) ([]models.Progress, error)
	Delete(ctx context.Context, userID, progressID string) error
}

// ProgressServiceWrapper defines middleware composition for ProgressService.
// Implementations wrap an existing ProgressService to add behavior such as
// validating.
type ProgressServiceWrapper interface {
	Wrap(ProgressService) ProgressService // returns a decorated ProgressService applying additional behavior
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
