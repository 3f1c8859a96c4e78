package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/pontetech/mission-control/internal/api"
	"github.com/pontetech/mission-control/internal/domain"
	"github.com/pontetech/mission-control/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		kind    string
		message string
	}{
		{
			name:    "validation",
			err:     domain.NewValidationError("title", "Title must be between 3 and 255 characters"),
			status:  http.StatusBadRequest,
			kind:    "validation_error",
			message: "Title must be between 3 and 255 characters",
		},
		{
			name:    "conflict",
			err:     domain.WrapError(domain.ErrConflict, "Email already registered", store.ErrEmailExists),
			status:  http.StatusBadRequest,
			kind:    "conflict",
			message: "Email already registered",
		},
		{
			name:    "unauthorized",
			err:     domain.NewError(domain.ErrUnauthorized, "Invalid credentials"),
			status:  http.StatusUnauthorized,
			kind:    "unauthorized",
			message: "Invalid credentials",
		},
		{
			name:    "forbidden",
			err:     domain.NewError(domain.ErrForbidden, "Inactive user"),
			status:  http.StatusForbidden,
			kind:    "forbidden",
			message: "Inactive user",
		},
		{
			name:    "not found wrapped by caller",
			err:     fmt.Errorf("loading: %w", domain.WrapError(domain.ErrNotFound, "Task not found", store.ErrTaskNotFound)),
			status:  http.StatusNotFound,
			kind:    "not_found",
			message: "Task not found",
		},
		{
			name:    "raw store error",
			err:     store.ErrTaskNotFound,
			status:  http.StatusInternalServerError,
			kind:    "internal_error",
			message: "An unexpected error occurred",
		},
		{
			name:    "uncategorized",
			err:     errors.New("pq: SELECT * FROM users WHERE email = 'a@b.co'"),
			status:  http.StatusInternalServerError,
			kind:    "internal_error",
			message: "An unexpected error occurred",
		},
		{
			name:    "nil",
			err:     nil,
			status:  http.StatusInternalServerError,
			kind:    "internal_error",
			message: "An unexpected error occurred",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, api.MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.kind, api.ErrorKind(tc.err))
			assert.Equal(t, tc.message, api.GetSafeErrorMessage(tc.err))
		})
	}
}

func TestGetSafeErrorMessage_HidesCause(t *testing.T) {
	err := domain.WrapError(domain.ErrNotFound, "User not found",
		errors.New("postgres://admin:hunter2@db/mission unreachable"))

	message := api.GetSafeErrorMessage(err)

	assert.Equal(t, "User not found", message)
	assert.NotContains(t, message, "hunter2")
}

func TestSanitizeValidationError(t *testing.T) {
	assert.Equal(t, "Invalid request format", api.SanitizeValidationError(errors.New("unexpected EOF")))
}
