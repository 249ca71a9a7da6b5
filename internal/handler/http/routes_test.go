package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-progress-tracker/internal/app"
	"github.com/MKhiriev/go-progress-tracker/internal/config"
	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/internal/service"
	"github.com/MKhiriev/go-progress-tracker/internal/store"
	"github.com/MKhiriev/go-progress-tracker/models"
)

// memoryUsers is an in-memory store.UserRepository.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func (m *memoryUsers) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email || u.Username == user.Username {
			return models.User{}, store.ErrUserAlreadyExists
		}
	}
	m.users[user.UserID] = user
	return user, nil
}

func (m *memoryUsers) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *memoryUsers) FindUserByID(_ context.Context, userID string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return models.User{}, store.ErrNoUserWasFound
	}
	return u, nil
}

func (m *memoryUsers) UpdatePasswordHash(_ context.Context, userID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return store.ErrNoUserWasFound
	}
	u.PasswordHash = passwordHash
	m.users[userID] = u
	return nil
}

// memoryProgress is an in-memory store.ProgressStorage keyed by id.
type memoryProgress struct {
	mu      sync.Mutex
	records map[string]models.Progress
}

func (m *memoryProgress) Upsert(_ context.Context, progress models.Progress) (models.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, p := range m.records {
		if p.UserID == progress.UserID && p.Platform == progress.Platform {
			progress.ID = id
			break
		}
	}
	m.records[progress.ID] = progress
	return progress, nil
}

func (m *memoryProgress) List(_ context.Context, userID string) ([]models.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Progress
	for _, p := range m.records {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated.After(out[j].LastUpdated) })
	return out, nil
}

func (m *memoryProgress) Delete(_ context.Context, userID, progressID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.records[progressID]
	if !ok || p.UserID != userID {
		return store.ErrProgressNotFound
	}
	delete(m.records, progressID)
	return nil
}

func newMemoryRouter(t *testing.T) http.Handler {
	t.Helper()

	storages := &store.Storages{
		UserRepository:  &memoryUsers{users: map[string]models.User{}},
		ProgressStorage: &memoryProgress{records: map[string]models.Progress{}},
	}
	cfg := config.StructuredConfig{
		App: config.App{
			TokenSignKey:     "routes-test-key",
			TokenIssuer:      "progress-tracker",
			TokenDuration:    time.Hour,
			PasswordHashCost: bcrypt.MinCost,
			Version:          "test",
		},
	}

	services, err := service.NewServices(storages, cfg, logger.Nop())
	require.NoError(t, err)

	return NewHandler(services, logger.Nop()).Init()
}

func registerUser(t *testing.T, router http.Handler, username, email string) models.AuthResponse {
	t.Helper()

	body := `{"username":"` + username + `","email":"` + email + `","password":"secret1"}`
	rr := serve(router, http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	return decodeAuthResponse(t, rr.Body.Bytes())
}

func listFor(t *testing.T, router http.Handler, token string) []models.Progress {
	t.Helper()

	rr := serve(router, http.MethodGet, "/api/progress", "", token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var out []models.Progress
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestRoutes_AliceScenario(t *testing.T) {
	router := newMemoryRouter(t)

	registered := registerUser(t, router, "alice", "a@x.io")
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "alice", registered.Username)

	rr := serve(router, http.MethodPost, "/api/auth/login", `{"email":"A@X.io ","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	token := decodeAuthResponse(t, rr.Body.Bytes()).Token
	require.NotEmpty(t, token)

	assert.Empty(t, listFor(t, router, token))

	rr = serve(router, http.MethodPost, "/api/progress",
		`{"platform":"LeetCode","problemsSolved":150,"totalProblems":300}`, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var first models.ProgressResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &first))
	assert.Equal(t, app.MsgProgressUpdated, first.Message)
	assert.Equal(t, registered.UserID, first.Progress.UserID)

	rr = serve(router, http.MethodPost, "/api/progress",
		`{"platform":"LeetCode","problemsSolved":160,"totalProblems":300}`, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var second models.ProgressResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &second))
	assert.Equal(t, first.Progress.ID, second.Progress.ID)
	assert.Equal(t, 160, second.Progress.ProblemsSolved)

	records := listFor(t, router, token)
	require.Len(t, records, 1)
	assert.Equal(t, 160, records[0].ProblemsSolved)

	rr = serve(router, http.MethodPost, "/api/progress",
		`{"platform":"LeetCode","problemsSolved":301,"totalProblems":300}`, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, app.MsgSolvedExceedsTotal, decodeMessage(t, rr))

	rr = serve(router, http.MethodDelete, "/api/progress/"+first.Progress.ID, "", token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, app.MsgProgressDeleted, decodeMessage(t, rr))

	assert.Empty(t, listFor(t, router, token))
}

func TestRoutes_DuplicateRegistration(t *testing.T) {
	router := newMemoryRouter(t)
	registerUser(t, router, "alice", "a@x.io")

	rr := serve(router, http.MethodPost, "/api/auth/register",
		`{"username":"alice2","email":"a@x.io","password":"secret1"}`, "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, app.MsgUserAlreadyExists, decodeMessage(t, rr))
}

func TestRoutes_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	router := newMemoryRouter(t)
	registerUser(t, router, "alice", "a@x.io")

	wrongPassword := serve(router, http.MethodPost, "/api/auth/login", `{"email":"a@x.io","password":"nope!!"}`, "")
	unknownEmail := serve(router, http.MethodPost, "/api/auth/login", `{"email":"z@x.io","password":"secret1"}`, "")

	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, wrongPassword.Code, unknownEmail.Code)
	assert.Equal(t, app.MsgInvalidCredentials, decodeMessage(t, wrongPassword))
	assert.Equal(t, app.MsgInvalidCredentials, decodeMessage(t, unknownEmail))
}

func TestRoutes_UnauthenticatedRequestsLeaveDataIntact(t *testing.T) {
	router := newMemoryRouter(t)
	alice := registerUser(t, router, "alice", "a@x.io")

	rr := serve(router, http.MethodPost, "/api/progress",
		`{"platform":"Codeforces","problemsSolved":10,"totalProblems":20}`, alice.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	var saved models.ProgressResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &saved))

	noHeader := serve(router, http.MethodDelete, "/api/progress/"+saved.Progress.ID, "", "")
	assert.Equal(t, http.StatusUnauthorized, noHeader.Code)
	assert.Equal(t, app.MsgNoToken, decodeMessage(t, noHeader))

	garbled := serve(router, http.MethodDelete, "/api/progress/"+saved.Progress.ID, "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, garbled.Code)
	assert.Equal(t, app.MsgTokenIsExpiredOrInvalid, decodeMessage(t, garbled))

	assert.Len(t, listFor(t, router, alice.Token), 1)
}

func TestRoutes_CrossUserDeleteIsNotFound(t *testing.T) {
	router := newMemoryRouter(t)
	alice := registerUser(t, router, "alice", "a@x.io")
	bob := registerUser(t, router, "bob", "b@x.io")

	rr := serve(router, http.MethodPost, "/api/progress",
		`{"platform":"LeetCode","problemsSolved":1,"totalProblems":2}`, alice.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	var saved models.ProgressResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &saved))

	rr = serve(router, http.MethodDelete, "/api/progress/"+saved.Progress.ID, "", bob.Token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, app.MsgProgressNotFound, decodeMessage(t, rr))

	rr = serve(router, http.MethodDelete, "/api/progress/not-a-uuid", "", bob.Token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	assert.Len(t, listFor(t, router, alice.Token), 1)
	assert.Empty(t, listFor(t, router, bob.Token))
}

func TestRoutes_OversizedInputIsRejected(t *testing.T) {
	router := newMemoryRouter(t)

	registerTests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "username over 64 characters",
			body:    `{"username":"` + strings.Repeat("u", 65) + `","email":"a@x.io","password":"secret1"}`,
			message: app.MsgUsernameTooLong,
		},
		{
			name:    "email over 255 characters",
			body:    `{"username":"alice","email":"` + strings.Repeat("e", 250) + `@x.io.io","password":"secret1"}`,
			message: app.MsgEmailTooLong,
		},
		{
			name:    "password over 72 bytes",
			body:    `{"username":"alice","email":"a@x.io","password":"` + strings.Repeat("p", 73) + `"}`,
			message: app.MsgPasswordTooLong,
		},
	}
	for _, tt := range registerTests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(router, http.MethodPost, "/api/auth/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.message, decodeMessage(t, rr))
		})
	}

	alice := registerUser(t, router, "alice", "a@x.io")

	progressTests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "platform over 128 characters",
			body:    `{"platform":"` + strings.Repeat("p", 129) + `","problemsSolved":1,"totalProblems":2}`,
			message: app.MsgPlatformTooLong,
		},
		{
			name:    "counts beyond the integer column",
			body:    `{"platform":"LeetCode","problemsSolved":3000000000,"totalProblems":3000000000}`,
			message: app.MsgTooManyProblems,
		},
	}
	for _, tt := range progressTests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(router, http.MethodPost, "/api/progress", tt.body, alice.Token)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.message, decodeMessage(t, rr))
		})
	}

	rr := serve(router, http.MethodPost, "/api/progress",
		`{"platform":"`+strings.Repeat("p", 128)+`","problemsSolved":2147483647,"totalProblems":2147483647}`, alice.Token)
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	list := listFor(t, router, alice.Token)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Platform, 128)
}
