package main

import (
	"net/http"

	"github.com/pontetech/mission-control/internal/api"
	apimiddleware "github.com/pontetech/mission-control/internal/api/middleware"
)

// setupRouter creates the handlers and mounts them on the router.
func (app *application) setupRouter() http.Handler {
	return api.NewRouter(api.Handlers{
		Auth:      api.NewAuthHandler(app.authService, app.logger),
		Tasks:     api.NewTaskHandler(app.taskService, app.logger),
		Dashboard: api.NewDashboardHandler(app.taskService, app.logger),
		Health:    api.NewHealthHandler(app.config.App.Environment),
		AuthMW:    apimiddleware.NewAuthMiddleware(app.authService),
		Logger:    app.logger,
	})
}
