package auth

import "github.com/pontetech/mission-control/internal/domain"

// Token errors. Both are of kind domain.ErrUnauthorized.
var (
	// ErrInvalidToken indicates a malformed token, a bad signature or an
	// unexpected signing algorithm.
	ErrInvalidToken = domain.NewError(domain.ErrUnauthorized, "Invalid token")

	// ErrExpiredToken indicates the token's exp claim is in the past.
	ErrExpiredToken = domain.NewError(domain.ErrUnauthorized, "Token has expired")
)
