package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/pontetech/mission-control/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user := domain.NewUser("  Crew@PonteTech.com ", "Crew Member", "hash")

	assert.Equal(t, "crew@pontetech.com", user.Email)
	assert.Equal(t, "Crew Member", user.FullName)
	assert.Equal(t, "hash", user.HashedPassword)
	assert.True(t, user.IsActive)
	assert.Nil(t, user.LastLogin)
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
		message  string
	}{
		{name: "valid", password: "Secure123"},
		{name: "exactly eight", password: "Abcdefg1"},
		{name: "too short", password: "short1A", wantErr: true, message: "at least 8"},
		{name: "no upper case", password: "alllowercase1", wantErr: true, message: domain.PasswordPolicyMessage},
		{name: "no lower case", password: "ALLUPPER123", wantErr: true, message: domain.PasswordPolicyMessage},
		{name: "no digit", password: "NoDigitsHere", wantErr: true, message: domain.PasswordPolicyMessage},
		{name: "non-ASCII upper case", password: "Ébcdefg1", wantErr: true, message: domain.PasswordPolicyMessage},
		{name: "non-ASCII letters only", password: "ÀÉÎÕÜÇÑ1x", wantErr: true, message: domain.PasswordPolicyMessage},
		{name: "over bcrypt limit", password: "Aa1" + strings.Repeat("x", 70), wantErr: true, message: "72 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidatePassword(tt.password)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)

			var domainErr *domain.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, "password", domainErr.Field)
			assert.Contains(t, domainErr.Message, tt.message)
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("driver failure")
	err := domain.WrapError(domain.ErrConflict, "Email already registered", cause)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Email already registered: driver failure", err.Error())

	assert.True(t, domain.IsKind(err, domain.ErrConflict))
	assert.False(t, domain.IsKind(cause, domain.ErrConflict))
	assert.Equal(t, "Task not found", domain.NewError(domain.ErrNotFound, "Task not found").Error())
}
