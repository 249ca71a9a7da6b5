package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-progress-tracker/internal/app"
	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/internal/mock"
	"github.com/MKhiriev/go-progress-tracker/internal/service"
	"github.com/MKhiriev/go-progress-tracker/models"
)

const (
	aliceID    = "0195b5f2-0000-7000-8000-000000000001"
	aliceToken = "alice-token"
	progressID = "0195b5f2-0000-7000-8000-0000000000aa"
)

type handlerMocks struct {
	auth     *mock.MockAuthService
	progress *mock.MockProgressService
	appInfo  *mock.MockAppInfoService
}

func newTestHandler(t *testing.T) (*Handler, handlerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := handlerMocks{
		auth:     mock.NewMockAuthService(ctrl),
		progress: mock.NewMockProgressService(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
	}

	h := NewHandler(&service.Services{
		AuthService:     m.auth,
		ProgressService: m.progress,
		AppInfoService:  m.appInfo,
	}, logger.Nop())

	return h, m
}

// expectAlice makes the auth middleware accept aliceToken.
func (m handlerMocks) expectAlice() {
	m.auth.EXPECT().ParseToken(gomock.Any(), aliceToken).Return(models.Token{UserID: aliceID}, nil)
}

func serve(h http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var body models.MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body.Message
}

func TestNewHandler_StoresDependencies(t *testing.T) {
	svc := &service.Services{}
	log := logger.Nop()

	h := NewHandler(svc, log)

	require.NotNil(t, h)
	assert.Same(t, svc, h.services)
	assert.Same(t, log, h.logger)
}

func TestInit_Health(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := serve(h.Init(), http.MethodGet, "/", "", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, app.MsgAPIRunning, decodeMessage(t, rr))
}

func TestInit_Version(t *testing.T) {
	h, m := newTestHandler(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v1.2.3")

	rr := serve(h.Init(), http.MethodGet, "/api/version", "", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"version":"v1.2.3"}`, rr.Body.String())
}

func TestInit_UnknownRoutesReturnJSON404(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
	}{
		{name: "unknown path", method: http.MethodGet, target: "/api/unknown"},
		{name: "unknown nested path", method: http.MethodPost, target: "/api/auth/logout"},
		{name: "wrong method on known path", method: http.MethodPut, target: "/api/progress"},
		{name: "wrong method on auth route", method: http.MethodGet, target: "/api/auth/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)

			rr := serve(h.Init(), tt.method, tt.target, "", "")

			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.Equal(t, app.MsgRouteNotFound, decodeMessage(t, rr))
		})
	}
}

func TestInit_TraceIDHeader(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	generated := serve(router, http.MethodGet, "/", "", "")
	assert.NotEmpty(t, generated.Header().Get(traceIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceIDHeader, "client-trace")
	echoed := httptest.NewRecorder()
	router.ServeHTTP(echoed, req)
	assert.Equal(t, "client-trace", echoed.Header().Get(traceIDHeader))
}
