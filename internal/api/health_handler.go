package api

import (
	"net/http"

	"github.com/pontetech/mission-control/internal/api/shared"
)

// HealthHandler reports liveness and the deployment environment.
type HealthHandler struct {
	environment string
}

// NewHealthHandler creates a HealthHandler for the named environment.
func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{environment: environment}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:      "ok",
		Environment: h.environment,
	})
}
