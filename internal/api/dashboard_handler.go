package api

import (
	"log/slog"
	"net/http"

	"github.com/pontetech/mission-control/internal/api/shared"
	"github.com/pontetech/mission-control/internal/platform/logger"
	"github.com/pontetech/mission-control/internal/service"
)

// DashboardHandler serves the per-user task summary.
type DashboardHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(taskService service.TaskService, logger *slog.Logger) *DashboardHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for DashboardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "dashboard_handler")),
	}
}

// Summary handles GET /dashboard/summary.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	user, ok := currentUser(w, r, log)
	if !ok {
		return
	}

	summary, err := h.taskService.GenerateDashboardSummary(r.Context(), user)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}
