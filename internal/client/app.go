package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/internal/service"
	"github.com/MKhiriev/go-progress-tracker/internal/tui"
	"github.com/MKhiriev/go-progress-tracker/models"
)

type App struct {
	services *service.ClientServices
	ui       UI
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client app: services and ui are required")
	}

	return &App{services: services, ui: ui, logger: logger}, nil
}

func (a *App) Run(ctx context.Context) error {
	for {
		session, err := a.authenticate(ctx)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		logout, err := a.ui.Dashboard(ctx, session)
		if err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		if !logout {
			return nil
		}

		if err = a.services.AuthService.Logout(ctx); err != nil {
			return err
		}
	}
}

// authenticate reuses a saved session when it is still valid and falls
// back to the interactive login flow otherwise.
func (a *App) authenticate(ctx context.Context) (models.Session, error) {
	session, ok, err := a.services.AuthService.RestoreSession(ctx)
	if err != nil {
		a.logger.Err(err).Msg("saved session is unreadable, asking to log in")
	}
	if ok {
		return session, nil
	}

	return a.ui.LoginFlow(ctx)
}
