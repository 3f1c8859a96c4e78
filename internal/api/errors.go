package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pontetech/mission-control/internal/api/shared"
	"github.com/pontetech/mission-control/internal/domain"
)

const msgUnexpected = "An unexpected error occurred"

// MapErrorToStatusCode maps categorized errors to HTTP status codes.
// Uncategorized errors are internal server errors.
func MapErrorToStatusCode(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrValidation),
		domain.IsKind(err, domain.ErrConflict):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case domain.IsKind(err, domain.ErrForbidden):
		return http.StatusForbidden
	case domain.IsKind(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorKind returns the machine-readable kind of err.
func ErrorKind(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrValidation):
		return shared.KindValidation
	case domain.IsKind(err, domain.ErrConflict):
		return shared.KindConflict
	case domain.IsKind(err, domain.ErrUnauthorized):
		return shared.KindUnauthorized
	case domain.IsKind(err, domain.ErrForbidden):
		return shared.KindForbidden
	case domain.IsKind(err, domain.ErrNotFound):
		return shared.KindNotFound
	default:
		return shared.KindInternal
	}
}

// GetSafeErrorMessage returns the client-facing message for err. Only the
// message of a categorized *domain.Error is ever exposed; the wrapped cause
// never is.
func GetSafeErrorMessage(err error) string {
	var domainErr *domain.Error
	if err == nil || !errors.As(err, &domainErr) || domainErr.Kind == nil {
		return msgUnexpected
	}
	return domainErr.Message
}

// HandleAPIError writes the error response for an error returned by a
// service.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r,
		MapErrorToStatusCode(err), ErrorKind(err), GetSafeErrorMessage(err), err)
}

// requestError is a request shape violation. It is answered with 422.
type requestError struct {
	Field   string
	Message string
}

func (e *requestError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// respondRequestError writes a 422 response for a decoding or request
// validation failure.
func respondRequestError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r,
		http.StatusUnprocessableEntity, shared.KindValidation, SanitizeValidationError(err), err)
}

// SanitizeValidationError turns a request validation failure into a client
// message naming the first offending field.
func SanitizeValidationError(err error) string {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return reqErr.Error()
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fieldErr := validationErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fieldErr.Field(), getValidationTagMessage(fieldErr.Tag()))
	}

	return "Invalid request format"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
