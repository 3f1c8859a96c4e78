package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	apimiddleware "github.com/pontetech/mission-control/internal/api/middleware"
	"github.com/pontetech/mission-control/internal/api/shared"
	"github.com/pontetech/mission-control/internal/domain"
	"github.com/pontetech/mission-control/internal/platform/logger"
	"github.com/pontetech/mission-control/internal/redact"
)

// decodeAndValidate decodes the JSON body into req and validates it. It
// writes a 422 response and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}, log *slog.Logger) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		log.Debug("invalid request body", slog.String("error", redact.Error(err)))
		respondRequestError(w, r, err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		log.Debug("request validation failed", slog.String("error", redact.Error(err)))
		respondRequestError(w, r, err)
		return false
	}
	return true
}

// currentUser returns the user placed in the context by the auth
// middleware. It writes a 401 response and returns false when absent.
func currentUser(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*domain.User, bool) {
	user, ok := apimiddleware.GetUser(r)
	if !ok {
		log.Warn("authenticated user not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, shared.KindUnauthorized, "Missing credentials")
		return nil, false
	}
	return user, true
}

// getPathID parses a positive integer path parameter.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, &requestError{Field: paramName, Message: "is required"}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &requestError{Field: paramName, Message: "must be a positive integer"}
	}
	return id, nil
}

// handleUserAndPathID extracts the current user and an ID path parameter,
// writing an error response when either is missing or invalid.
func handleUserAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (*domain.User, int64, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	user, ok := currentUser(w, r, log)
	if !ok {
		return nil, 0, false
	}

	id, err := getPathID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		respondRequestError(w, r, err)
		return nil, 0, false
	}
	return user, id, true
}
