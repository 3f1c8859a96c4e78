package service

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"

	"github.com/pontetech/mission-control/internal/domain"
	"github.com/pontetech/mission-control/internal/platform/logger"
	"github.com/pontetech/mission-control/internal/service/auth"
	"github.com/pontetech/mission-control/internal/store"
)

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token string
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64
	User      *domain.User
}

// AuthService handles registration, login and bearer token resolution.
type AuthService interface {
	// Register creates an account. Duplicate emails yield a Conflict error
	// and weak passwords a Validation error.
	Register(ctx context.Context, email, fullName, password string) (*domain.User, error)

	// Login verifies credentials, issues an access token and records the
	// login time. Unknown emails and wrong passwords fail identically.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// ResolveUser maps a bearer token to an active user. Token problems and
	// unknown subjects are Unauthorized; inactive users are Forbidden.
	ResolveUser(ctx context.Context, token string) (*domain.User, error)
}

type authServiceImpl struct {
	users      UserService
	tokens     auth.TokenService
	transactor store.Transactor
	logger     *slog.Logger
}

// NewAuthService creates an AuthService.
// It returns an error if any of the required dependencies are nil.
func NewAuthService(
	users UserService,
	tokens auth.TokenService,
	transactor store.Transactor,
	logger *slog.Logger,
) (AuthService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil")
	}
	if tokens == nil {
		return nil, domain.NewValidationError("tokens", "cannot be nil")
	}
	if transactor == nil {
		return nil, domain.NewValidationError("transactor", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &authServiceImpl{
		users:      users,
		tokens:     tokens,
		transactor: transactor,
		logger:     logger.With(slog.String("component", "auth_service")),
	}, nil
}

func (s *authServiceImpl) Register(
	ctx context.Context,
	email, fullName, password string,
) (*domain.User, error) {
	if err := s.users.EnsureUniqueEmail(ctx, email); err != nil {
		return nil, err
	}
	return s.users.CreateUser(ctx, email, fullName, password)
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.AuthenticateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		log.Debug("login rejected")
		return nil, domain.NewError(domain.ErrUnauthorized, msgInvalidCredentials)
	}

	var token string
	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		token, err = s.tokens.CreateAccessToken(ctx,
			strconv.FormatInt(user.ID, 10),
			auth.WithExtraClaims(map[string]any{"email": user.Email}))
		if err != nil {
			return err
		}
		return s.users.TouchLastLogin(ctx, tx, user)
	})
	if err != nil {
		log.Error("failed to complete login",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return nil, err
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(s.tokens.TokenLifetime().Seconds()),
		User:      user,
	}, nil
}

func (s *authServiceImpl) ResolveUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.DecodeAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.WrapError(domain.ErrUnauthorized, msgInvalidTokenPayload, err)
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if domain.IsKind(err, domain.ErrNotFound) {
			return nil, domain.WrapError(domain.ErrUnauthorized, msgUserNotFound, err)
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.NewError(domain.ErrForbidden, msgInactiveUser)
	}
	return user, nil
}
