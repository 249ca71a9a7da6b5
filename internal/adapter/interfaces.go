// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the progress tracker server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// services from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401). The
// server's own "message" text is kept on [*ResponseError].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-progress-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// TokenSource supplies the bearer token attached to authenticated requests.
// An empty token means the request is sent without an Authorization header.
type TokenSource interface {
	Token() string
}

// ServerAdapter defines transport-agnostic communication with the progress
// tracker server.
type ServerAdapter interface {
	// Register creates an account and returns the issued token together with
	// the user's id and name.
	Register(ctx context.Context, request models.RegisterRequest) (models.AuthResponse, error)

	// Login exchanges email and password for a token.
	Login(ctx context.Context, request models.LoginRequest) (models.AuthResponse, error)

	// ListProgress returns the caller's records, most recently updated first.
	ListProgress(ctx context.Context) ([]models.Progress, error)

	// UpsertProgress creates or overwrites the caller's record for the
	// request's platform and returns the stored record.
	UpsertProgress(ctx context.Context, request models.UpsertProgressRequest) (models.Progress, error)

	// DeleteProgress removes one of the caller's records. Returns
	// [ErrNotFound] (wrapped) when the id is unknown or foreign.
	DeleteProgress(ctx context.Context, progressID string) error

	// Health returns the message of the server's root endpoint.
	Health(ctx context.Context) (string, error)
}
