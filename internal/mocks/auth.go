package mocks

import (
	"context"
	"time"

	"github.com/pontetech/mission-control/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher. Without function
// fields it "hashes" by prefixing the password, which keeps tests fast.
type MockPasswordHasher struct {
	HashFn   func(password string) (string, error)
	VerifyFn func(password, hash string) bool

	// VerifyCalls counts Verify invocations.
	VerifyCalls int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Verify implements auth.PasswordHasher.
func (m *MockPasswordHasher) Verify(password, hash string) bool {
	m.VerifyCalls++
	if m.VerifyFn != nil {
		return m.VerifyFn(password, hash)
	}
	return hash == "hashed:"+password
}

// MockTokenService implements auth.TokenService with function fields.
type MockTokenService struct {
	CreateAccessTokenFn func(ctx context.Context, subject string, opts ...auth.TokenOption) (string, error)
	DecodeAccessTokenFn func(ctx context.Context, token string) (*auth.Claims, error)
	Lifetime            time.Duration
}

var _ auth.TokenService = (*MockTokenService)(nil)

// CreateAccessToken implements auth.TokenService.
func (m *MockTokenService) CreateAccessToken(
	ctx context.Context,
	subject string,
	opts ...auth.TokenOption,
) (string, error) {
	if m.CreateAccessTokenFn != nil {
		return m.CreateAccessTokenFn(ctx, subject, opts...)
	}
	return "token-" + subject, nil
}

// DecodeAccessToken implements auth.TokenService.
func (m *MockTokenService) DecodeAccessToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.DecodeAccessTokenFn != nil {
		return m.DecodeAccessTokenFn(ctx, token)
	}
	return nil, auth.ErrInvalidToken
}

// TokenLifetime implements auth.TokenService.
func (m *MockTokenService) TokenLifetime() time.Duration {
	return m.Lifetime
}
