package domain

import "errors"

// Error kinds used across the application. Every error returned by the
// service layer that is meant for the caller wraps exactly one of these.
var (
	// ErrValidation is returned when input violates a business rule.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when an operation collides with existing state,
	// such as registering an email that is already taken.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized is returned when credentials or tokens are missing or invalid.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when an authenticated user may not proceed.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when a resource is absent or not visible to the caller.
	ErrNotFound = errors.New("not found")
)

// Error is a categorized error carrying a message that is safe to show to
// API clients. Kind is one of the sentinel errors above; Err optionally holds
// the underlying cause, which is never exposed to clients.
type Error struct {
	Kind    error
	Message string
	Field   string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause so errors.Is matches either.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewError creates an Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError creates an Error of the given kind that wraps cause.
func WrapError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// NewValidationError creates a validation Error for a single field.
func NewValidationError(field, message string) *Error {
	return &Error{Kind: ErrValidation, Message: message, Field: field}
}

// IsKind reports whether err is a categorized error of the given kind.
func IsKind(err, kind error) bool {
	var domainErr *Error
	if !errors.As(err, &domainErr) {
		return false
	}
	return errors.Is(domainErr.Kind, kind)
}
