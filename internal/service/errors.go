package service

import "github.com/pontetech/mission-control/internal/domain"

// Client-facing messages shared by the services.
const (
	msgEmailRegistered     = "Email already registered"
	msgInvalidCredentials  = "Invalid credentials"
	msgInvalidTokenPayload = "Invalid token payload"
	msgUserNotFound        = "User not found"
	msgInactiveUser        = "Inactive user"
	msgTaskNotFound        = "Task not found"
)

// ErrMissingUser is returned when a task operation is called without an
// authenticated user.
var ErrMissingUser = domain.NewError(domain.ErrUnauthorized, "Missing credentials")

func requireUser(user *domain.User) error {
	if user == nil {
		return ErrMissingUser
	}
	return nil
}

