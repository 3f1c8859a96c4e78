package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pontetech/mission-control/internal/api/shared"
	"github.com/pontetech/mission-control/internal/domain"
	"github.com/pontetech/mission-control/internal/service"
)

const msgMissingCredentials = "Missing credentials"

// AuthMiddleware resolves bearer tokens to active users.
type AuthMiddleware struct {
	authService service.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(authService service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Authenticate validates the bearer token in the Authorization header and
// adds the resolved user to the request context. Missing or bad tokens and
// unknown users are answered with 401, inactive users with 403.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, shared.KindUnauthorized,
				msgMissingCredentials)
			return
		}

		user, err := m.authService.ResolveUser(r.Context(), token)
		if err != nil {
			respondAuthError(w, r, err)
			return
		}

		ctx := shared.WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUser returns the authenticated user from the request context.
func GetUser(r *http.Request) (*domain.User, bool) {
	return shared.UserFromContext(r.Context())
}

// bearerToken extracts the credentials of a "Bearer <token>" header. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

func respondAuthError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, shared.KindInternal,
			"Authentication error", err)
		return
	}

	switch {
	case errors.Is(domainErr.Kind, domain.ErrForbidden):
		shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, shared.KindForbidden,
			domainErr.Message, err, shared.WithElevatedLogLevel())
	case errors.Is(domainErr.Kind, domain.ErrUnauthorized):
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, shared.KindUnauthorized,
			domainErr.Message, err)
	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, shared.KindInternal,
			"Authentication error", err)
	}
}
