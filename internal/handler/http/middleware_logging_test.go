package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-progress-tracker/internal/logger"
)

func requestWithLogger(method, target string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	l := zerolog.New(buf)
	return req.WithContext(l.WithContext(req.Context()))
}

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		target       string
		status       int
		body         string
		wantInLogRow []string
	}{
		{
			name:   "list progress",
			method: http.MethodGet,
			target: "/api/progress",
			status: http.StatusOK,
			body:   "[]",
			wantInLogRow: []string{
				`"method":"GET"`,
				`"uri":"/api/progress"`,
				`"status":200`,
				`"size":2`,
				`"duration":`,
			},
		},
		{
			name:   "register created",
			method: http.MethodPost,
			target: "/api/auth/register",
			status: http.StatusCreated,
			body:   "{}",
			wantInLogRow: []string{
				`"method":"POST"`,
				`"status":201`,
			},
		},
		{
			name:   "delete not found",
			method: http.MethodDelete,
			target: "/api/progress/missing",
			status: http.StatusNotFound,
			wantInLogRow: []string{
				`"uri":"/api/progress/missing"`,
				`"status":404`,
				`"size":0`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: logger.Nop()}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})

			rr := httptest.NewRecorder()
			h.withLogging(next).ServeHTTP(rr, requestWithLogger(tt.method, tt.target, &buf))

			assert.Equal(t, tt.status, rr.Code)
			for _, want := range tt.wantInLogRow {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestWithLogging_WithoutLoggerInContext(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.withLogging(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusOK, rr.Code)
}
