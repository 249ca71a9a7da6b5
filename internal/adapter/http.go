package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-progress-tracker/internal/config"
	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/internal/utils"
	"github.com/MKhiriev/go-progress-tracker/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	tokens TokenSource

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout. tokens is consulted on every authenticated request; it may be nil
// for an adapter that only registers and logs in.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, tokens TokenSource, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(adapterCfg.RequestTimeout)
	client.SetBaseURL(baseURL)

	return &httpServerAdapter{client: client, tokens: tokens, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Register implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/register and decodes the token, user id and username.
func (h *httpServerAdapter) Register(ctx context.Context, request models.RegisterRequest) (models.AuthResponse, error) {
	var authResponse models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&authResponse).
		Post("/api/auth/register")
	if err != nil {
		return models.AuthResponse{}, mapTransportError("register request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	return authResponse, nil
}

// Login implements [ServerAdapter]. It POSTs email and password to
// POST /api/auth/login.
func (h *httpServerAdapter) Login(ctx context.Context, request models.LoginRequest) (models.AuthResponse, error) {
	var authResponse models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&authResponse).
		Post("/api/auth/login")
	if err != nil {
		return models.AuthResponse{}, mapTransportError("login request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	return authResponse, nil
}

// ListProgress implements [ServerAdapter]. GET /api/progress.
func (h *httpServerAdapter) ListProgress(ctx context.Context) ([]models.Progress, error) {
	var progress []models.Progress

	resp, err := h.authedRequest(ctx).
		SetResult(&progress).
		Get("/api/progress")
	if err != nil {
		return nil, mapTransportError("list progress request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if progress == nil {
		progress = []models.Progress{}
	}
	return progress, nil
}

// UpsertProgress implements [ServerAdapter]. POST /api/progress.
func (h *httpServerAdapter) UpsertProgress(ctx context.Context, request models.UpsertProgressRequest) (models.Progress, error) {
	var progressResponse models.ProgressResponse

	resp, err := h.authedRequest(ctx).
		SetBody(request).
		SetResult(&progressResponse).
		Post("/api/progress")
	if err != nil {
		return models.Progress{}, mapTransportError("upsert progress request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Progress{}, err
	}

	return progressResponse.Progress, nil
}

// DeleteProgress implements [ServerAdapter]. DELETE /api/progress/{id}.
func (h *httpServerAdapter) DeleteProgress(ctx context.Context, progressID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", progressID).
		Delete("/api/progress/{id}")
	if err != nil {
		return mapTransportError("delete progress request", err)
	}

	return mapHTTPError(resp)
}

// Health implements [ServerAdapter]. GET /.
func (h *httpServerAdapter) Health(ctx context.Context) (string, error) {
	var message models.MessageResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&message).
		Get("/")
	if err != nil {
		return "", mapTransportError("health request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return message.Message, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.tokens == nil {
		return req
	}
	if token := strings.TrimSpace(h.tokens.Token()); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
