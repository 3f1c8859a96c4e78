package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	apimiddleware "github.com/pontetech/mission-control/internal/api/middleware"
)

// Handlers groups everything NewRouter mounts.
type Handlers struct {
	Auth      *AuthHandler
	Tasks     *TaskHandler
	Dashboard *DashboardHandler
	Health    *HealthHandler
	AuthMW    *apimiddleware.AuthMiddleware
	Logger    *slog.Logger
}

// NewRouter builds the HTTP routing tree.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(apimiddleware.NewTraceMiddleware(h.Logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", h.Health.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.AuthMW.Authenticate)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.Tasks.ListTasks)
			r.Post("/", h.Tasks.CreateTask)
			r.Get("/{id}", h.Tasks.GetTask)
			r.Put("/{id}", h.Tasks.UpdateTask)
			r.Delete("/{id}", h.Tasks.DeleteTask)
		})

		r.Get("/dashboard/summary", h.Dashboard.Summary)
	})

	return r
}
