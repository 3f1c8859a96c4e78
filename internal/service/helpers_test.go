package service_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/pontetech/mission-control/internal/config"
	"github.com/pontetech/mission-control/internal/mocks"
	"github.com/pontetech/mission-control/internal/service"
	"github.com/pontetech/mission-control/internal/service/auth"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	users      *mocks.MockUserStore
	tasks      *mocks.MockTaskStore
	transactor *mocks.MockTransactor
	hasher     *mocks.MockPasswordHasher
	tokens     auth.TokenService

	userService service.UserService
	authService service.AuthService
	taskService service.TaskService
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:      mocks.NewMockUserStore(),
		tasks:      mocks.NewMockTaskStore(),
		transactor: &mocks.MockTransactor{},
		hasher:     &mocks.MockPasswordHasher{},
	}
	env.users.OnDelete = env.tasks.DeleteByOwner

	tokens, err := auth.NewTokenService(config.AuthConfig{
		JWTSecret:            "thisisaverylongsecretkeyforjwttokens",
		JWTAlgorithm:         "HS256",
		TokenLifetimeMinutes: 60,
		BcryptCost:           4,
	})
	require.NoError(t, err)
	env.tokens = tokens

	env.userService, err = service.NewUserService(env.users, env.transactor, env.hasher, discardLogger())
	require.NoError(t, err)
	env.authService, err = service.NewAuthService(env.userService, env.tokens, env.transactor, discardLogger())
	require.NoError(t, err)
	env.taskService, err = service.NewTaskService(env.tasks, env.transactor, discardLogger())
	require.NoError(t, err)

	return env
}
