package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pontetech/mission-control/internal/config"
	"github.com/pontetech/mission-control/internal/platform/postgres"
	"github.com/pontetech/mission-control/internal/service"
	"github.com/pontetech/mission-control/internal/service/auth"
	"github.com/pontetech/mission-control/internal/store"
)

// application holds the shared dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore  store.UserStore
	taskStore  store.TaskStore
	transactor store.Transactor

	tokenService auth.TokenService
	userService  service.UserService
	authService  service.AuthService
	taskService  service.TaskService
}

// newApplication wires stores and services on top of an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("token service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes),
		slog.String("algorithm", cfg.Auth.JWTAlgorithm))

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.transactor = store.NewDBTransactor(db)

	app.userService, err = service.NewUserService(
		app.userStore,
		app.transactor,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.authService, err = service.NewAuthService(app.userService, app.tokenService, app.transactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	app.taskService, err = service.NewTaskService(app.taskStore, app.transactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
