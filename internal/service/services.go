package service

import (
	"fmt"

	"github.com/MKhiriev/go-progress-tracker/internal/config"
	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/internal/store"
)

type Services struct {
	AuthService     AuthService
	ProgressService ProgressService
	AppInfoService  AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	progressService := NewProgressValidationService().Wrap(
		NewProgressService(storages.ProgressStorage, logger),
	)

	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, cfg.App, logger),
		ProgressService: progressService,
		AppInfoService:  appInfoService,
	}, nil
}
