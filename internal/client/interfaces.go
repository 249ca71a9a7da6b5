// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-progress-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/client_ui_mock.go -package=mock

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the interactive front end driven by [App]. [tui.TUI] is the
// terminal implementation.
type UI interface {
	// LoginFlow blocks until the user is logged in or quits.
	LoginFlow(ctx context.Context) (models.Session, error)
	// Dashboard blocks until the user quits or logs out.
	Dashboard(ctx context.Context, session models.Session) (logout bool, err error)
}
