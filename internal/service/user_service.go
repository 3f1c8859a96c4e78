package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pontetech/mission-control/internal/domain"
	"github.com/pontetech/mission-control/internal/platform/logger"
	"github.com/pontetech/mission-control/internal/service/auth"
	"github.com/pontetech/mission-control/internal/store"
)

// dummyPassword is hashed once and compared against when a login names an
// unknown email, so both failure paths cost one hash comparison.
const dummyPassword = "Dummy-Password-For-Timing-1"

// UserService provides user account operations.
type UserService interface {
	// GetUser retrieves a user by ID. Returns a NotFound error when absent.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// GetUserByEmail performs a case-insensitive lookup. Returns a NotFound
	// error when absent.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// EnsureUniqueEmail returns a Conflict error when the email is taken.
	EnsureUniqueEmail(ctx context.Context, email string) error

	// CreateUser validates the password policy, hashes the password and
	// inserts the user. The uniqueness check and insert share a transaction.
	CreateUser(ctx context.Context, email, fullName, password string) (*domain.User, error)

	// AuthenticateUser returns the user when the password verifies, and
	// nil with a nil error otherwise.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// TouchLastLogin records a login at the current time using the given
	// transaction.
	TouchLastLogin(ctx context.Context, tx *sql.Tx, user *domain.User) error
}

type userServiceImpl struct {
	userStore  store.UserStore
	transactor store.Transactor
	hasher     auth.PasswordHasher
	logger     *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService creates a UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	userStore store.UserStore,
	transactor store.Transactor,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil")
	}
	if transactor == nil {
		return nil, domain.NewValidationError("transactor", "cannot be nil")
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore:  userStore,
		transactor: transactor,
		hasher:     hasher,
		logger:     logger.With(slog.String("component", "user_service")),
	}, nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.WrapError(domain.ErrNotFound, msgUserNotFound, err)
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getByEmail(ctx, s.userStore, email)
}

func (s *userServiceImpl) EnsureUniqueEmail(ctx context.Context, email string) error {
	return s.ensureUniqueEmail(ctx, s.userStore, email)
}

func (s *userServiceImpl) CreateUser(
	ctx context.Context,
	email, fullName, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user := domain.NewUser(email, fullName, hashed)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		users := s.userStore.WithTx(tx)
		if err := s.ensureUniqueEmail(ctx, users, user.Email); err != nil {
			return err
		}
		if err := users.Create(ctx, user); err != nil {
			if store.IsDuplicateError(err) {
				return domain.WrapError(domain.ErrConflict, msgEmailRegistered, err)
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		if domain.IsKind(err, domain.ErrConflict) {
			log.Debug("attempted to register an existing email")
		} else {
			log.Error("failed to create user", slog.String("error", err.Error()))
		}
		return nil, err
	}

	log.Info("user created", slog.Int64("user_id", user.ID))
	return user, nil
}

func (s *userServiceImpl) AuthenticateUser(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	user, err := s.getByEmail(ctx, s.userStore, email)
	if err != nil {
		if domain.IsKind(err, domain.ErrNotFound) {
			s.hasher.Verify(password, s.dummyPasswordHash())
			return nil, nil
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		logger.FromContextOrDefault(ctx, s.logger).Debug("password mismatch",
			slog.Int64("user_id", user.ID))
		return nil, nil
	}
	return user, nil
}

func (s *userServiceImpl) TouchLastLogin(ctx context.Context, tx *sql.Tx, user *domain.User) error {
	now := time.Now().UTC()
	if err := s.userStore.WithTx(tx).UpdateLastLogin(ctx, user.ID, now); err != nil {
		if store.IsNotFoundError(err) {
			return domain.WrapError(domain.ErrNotFound, msgUserNotFound, err)
		}
		return fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLogin = &now
	user.UpdatedAt = now
	return nil
}

func (s *userServiceImpl) getByEmail(
	ctx context.Context,
	users store.UserStore,
	email string,
) (*domain.User, error) {
	user, err := users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.WrapError(domain.ErrNotFound, msgUserNotFound, err)
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user by email",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) ensureUniqueEmail(
	ctx context.Context,
	users store.UserStore,
	email string,
) error {
	_, err := s.getByEmail(ctx, users, email)
	switch {
	case err == nil:
		return domain.NewError(domain.ErrConflict, msgEmailRegistered)
	case domain.IsKind(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *userServiceImpl) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.logger.Warn("failed to prepare dummy password hash", slog.String("error", err.Error()))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
