package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pontetech/mission-control/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create inserts the task and fills in its ID and timestamps.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID regardless of owner. Ownership checks
	// belong to the caller.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// ListByOwner returns the owner's tasks, newest first. The result is
	// never nil.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error)

	// Update writes all mutable task fields and refreshes UpdatedAt.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// Summarize aggregates the owner's tasks in a single query. Upcoming
	// counts unfinished tasks whose due date is set and not after
	// upcomingBefore.
	Summarize(ctx context.Context, ownerID int64, upcomingBefore time.Time) (domain.TaskCounts, error)

	// WithTx returns a TaskStore bound to the given transaction.
	WithTx(tx *sql.Tx) TaskStore
}
