package domain

import (
	"strings"
	"time"
	"unicode"
)

// Password length limits. The upper bound is bcrypt's input limit in bytes.
const (
	PasswordMinLength = 8
	PasswordMaxBytes  = 72
)

// PasswordPolicyMessage is reported when a password lacks a required character class.
const PasswordPolicyMessage = "Password must contain upper, lower case letters and numbers"

// User represents a registered account. Email is always stored lowercased.
type User struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	HashedPassword string     `json:"-"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
}

// NewUser creates an active user with a normalized email. The password must
// already be hashed.
func NewUser(email, fullName, hashedPassword string) *User {
	now := time.Now().UTC()
	return &User{
		Email:          NormalizeEmail(email),
		FullName:       fullName,
		HashedPassword: hashedPassword,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// NormalizeEmail returns the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword checks a plaintext password against the password policy:
// at least PasswordMinLength characters, at most PasswordMaxBytes bytes, and
// at least one ASCII upper case letter, one ASCII lower case letter and one
// digit.
func ValidatePassword(password string) error {
	if len([]rune(password)) < PasswordMinLength {
		return NewValidationError("password", "Password must be at least 8 characters long")
	}
	if len(password) > PasswordMaxBytes {
		return NewValidationError("password", "Password must be at most 72 bytes long")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case 'a' <= r && r <= 'z':
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return NewValidationError("password", PasswordPolicyMessage)
	}

	return nil
}
