package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pontetech/mission-control/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create inserts the user and fills in its ID and timestamps.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by email. The email is expected to be
	// normalized already.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update writes the mutable user fields and refreshes UpdatedAt.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// UpdateLastLogin sets last_login for the user.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error

	// Delete removes the user and, through the foreign key, all of its tasks.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a UserStore bound to the given transaction.
	WithTx(tx *sql.Tx) UserStore
}
