package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pontetech/mission-control/internal/api"
	apimiddleware "github.com/pontetech/mission-control/internal/api/middleware"
	"github.com/pontetech/mission-control/internal/config"
	"github.com/pontetech/mission-control/internal/mocks"
	"github.com/pontetech/mission-control/internal/service"
	"github.com/pontetech/mission-control/internal/service/auth"
	"github.com/stretchr/testify/require"
)

const testPassword = "Secure123"

type testServer struct {
	handler http.Handler
	users   *mocks.MockUserStore
	tasks   *mocks.MockTaskStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := mocks.NewMockUserStore()
	tasks := mocks.NewMockTaskStore()
	users.OnDelete = tasks.DeleteByOwner
	transactor := &mocks.MockTransactor{}

	tokens, err := auth.NewTokenService(config.AuthConfig{
		JWTSecret:            "thisisaverylongsecretkeyforjwttokens",
		JWTAlgorithm:         "HS256",
		TokenLifetimeMinutes: 60,
		BcryptCost:           4,
	})
	require.NoError(t, err)

	userService, err := service.NewUserService(users, transactor, &mocks.MockPasswordHasher{}, log)
	require.NoError(t, err)
	authService, err := service.NewAuthService(userService, tokens, transactor, log)
	require.NoError(t, err)
	taskService, err := service.NewTaskService(tasks, transactor, log)
	require.NoError(t, err)

	handler := api.NewRouter(api.Handlers{
		Auth:      api.NewAuthHandler(authService, log),
		Tasks:     api.NewTaskHandler(taskService, log),
		Dashboard: api.NewDashboardHandler(taskService, log),
		Health:    api.NewHealthHandler("test"),
		AuthMW:    apimiddleware.NewAuthMiddleware(authService),
		Logger:    log,
	})

	return &testServer{handler: handler, users: users, tasks: tasks}
}

// do sends body as JSON unless it is a string, which is sent verbatim.
func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		encoded, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(t *testing.T, email string) api.UserRead {
	t.Helper()
	w := s.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":     email,
		"full_name": "Crew Member",
		"password":  testPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[api.UserRead](t, w)
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[api.LoginResponse](t, w).AccessToken
}

func (s *testServer) registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	s.register(t, email)
	return s.login(t, email)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errorBody struct {
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	TraceID string `json:"trace_id"`
}
