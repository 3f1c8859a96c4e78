package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pontetech/mission-control/internal/config"
	"github.com/pontetech/mission-control/internal/platform/logger"
)

// registeredClaims are set by the service and cannot be overridden by extra claims.
var registeredClaims = map[string]struct{}{
	"sub": {},
	"iat": {},
	"exp": {},
	"jti": {},
}

// TokenService issues and validates signed access tokens.
type TokenService interface {
	// CreateAccessToken signs a token for subject. The token expires after
	// the configured lifetime unless WithTTL says otherwise.
	CreateAccessToken(ctx context.Context, subject string, opts ...TokenOption) (string, error)

	// DecodeAccessToken verifies signature, algorithm and expiry and returns
	// the token's claims. Failures are ErrInvalidToken or ErrExpiredToken.
	DecodeAccessToken(ctx context.Context, token string) (*Claims, error)

	// TokenLifetime is the default lifetime of issued tokens.
	TokenLifetime() time.Duration
}

// Claims are the decoded contents of an access token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
	// Extra holds every claim that is not one of sub, iat, exp or jti.
	Extra map[string]any
}

// TokenOption customizes a single CreateAccessToken call.
type TokenOption func(*tokenOptions)

type tokenOptions struct {
	ttl    time.Duration
	extras map[string]any
}

// WithTTL overrides the token lifetime.
func WithTTL(ttl time.Duration) TokenOption {
	return func(o *tokenOptions) {
		o.ttl = ttl
	}
}

// WithExtraClaims adds custom claims to the token. Keys colliding with the
// registered claims are ignored.
func WithExtraClaims(extras map[string]any) TokenOption {
	return func(o *tokenOptions) {
		if o.extras == nil {
			o.extras = make(map[string]any, len(extras))
		}
		for k, v := range extras {
			o.extras[k] = v
		}
	}
}

type hmacTokenService struct {
	signingKey    []byte
	method        jwt.SigningMethod
	tokenLifetime time.Duration
	timeFunc      func() time.Time
}

var _ TokenService = (*hmacTokenService)(nil)

// NewTokenService creates a TokenService signing with the configured HMAC
// algorithm and secret.
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}
	if cfg.TokenLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive")
	}

	method, ok := jwt.GetSigningMethod(cfg.JWTAlgorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", cfg.JWTAlgorithm)
	}

	return &hmacTokenService{
		signingKey:    []byte(cfg.JWTSecret),
		method:        method,
		tokenLifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		timeFunc:      time.Now,
	}, nil
}

func (s *hmacTokenService) TokenLifetime() time.Duration {
	return s.tokenLifetime
}

func (s *hmacTokenService) CreateAccessToken(
	ctx context.Context,
	subject string,
	opts ...TokenOption,
) (string, error) {
	log := logger.FromContext(ctx)

	options := tokenOptions{ttl: s.tokenLifetime}
	for _, opt := range opts {
		opt(&options)
	}

	now := s.timeFunc()
	claims := jwt.MapClaims{}
	for k, v := range options.extras {
		if _, reserved := registeredClaims[k]; reserved {
			continue
		}
		claims[k] = v
	}
	claims["sub"] = subject
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(options.ttl))
	claims["jti"] = uuid.New().String()

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign access token",
			slog.String("error", err.Error()),
			slog.String("signing_method", s.method.Alg()))
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *hmacTokenService) DecodeAccessToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	token, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (interface{}, error) {
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.timeFunc),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug("access token expired")
			return nil, ErrExpiredToken
		}
		log.Debug("access token rejected", slog.String("error", err.Error()))
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims := &Claims{Extra: make(map[string]any)}
	if claims.Subject, err = mapClaims.GetSubject(); err != nil {
		return nil, ErrInvalidToken
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time.UTC()
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time.UTC()
	}
	if jti, ok := mapClaims["jti"].(string); ok {
		claims.ID = jti
	}
	for k, v := range mapClaims {
		if _, reserved := registeredClaims[k]; !reserved {
			claims.Extra[k] = v
		}
	}

	return claims, nil
}
