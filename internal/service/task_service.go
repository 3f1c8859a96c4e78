package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/pontetech/mission-control/internal/domain"
	"github.com/pontetech/mission-control/internal/platform/logger"
	"github.com/pontetech/mission-control/internal/store"
)

// TaskService manages tasks on behalf of their owner. A task owned by
// someone else is reported exactly like a missing one.
type TaskService interface {
	ListTasks(ctx context.Context, user *domain.User) ([]*domain.Task, error)
	CreateTask(ctx context.Context, user *domain.User, draft domain.TaskDraft) (*domain.Task, error)
	GetOwnedTask(ctx context.Context, user *domain.User, id int64) (*domain.Task, error)
	UpdateTask(ctx context.Context, user *domain.User, id int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, user *domain.User, id int64) error
	GenerateDashboardSummary(ctx context.Context, user *domain.User) (domain.DashboardSummary, error)
}

type taskServiceImpl struct {
	taskStore  store.TaskStore
	transactor store.Transactor
	logger     *slog.Logger
	now        func() time.Time
}

// NewTaskService creates a TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskStore store.TaskStore,
	transactor store.Transactor,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil")
	}
	if transactor == nil {
		return nil, domain.NewValidationError("transactor", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore:  taskStore,
		transactor: transactor,
		logger:     logger.With(slog.String("component", "task_service")),
		now:        time.Now,
	}, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, user *domain.User) ([]*domain.Task, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}

	tasks, err := s.taskStore.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	user *domain.User,
	draft domain.TaskDraft,
) (*domain.Task, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}

	task, err := draft.NewTask(user.ID)
	if err != nil {
		return nil, err
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

func (s *taskServiceImpl) GetOwnedTask(
	ctx context.Context,
	user *domain.User,
	id int64,
) (*domain.Task, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	return s.ownedTask(ctx, s.taskStore, user, id)
}

func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	user *domain.User,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}

	var updated *domain.Task
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.taskStore.WithTx(tx)
		task, err := s.ownedTask(ctx, tasks, user, id)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			updated = task
			return nil
		}
		if err := task.Apply(patch); err != nil {
			return err
		}
		if err := tasks.Update(ctx, task); err != nil {
			return s.storeFailure(err, "update")
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, user *domain.User, id int64) error {
	if err := requireUser(user); err != nil {
		return err
	}

	return s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.taskStore.WithTx(tx)
		if _, err := s.ownedTask(ctx, tasks, user, id); err != nil {
			return err
		}
		if err := tasks.Delete(ctx, id); err != nil {
			return s.storeFailure(err, "delete")
		}
		logger.FromContextOrDefault(ctx, s.logger).Info("task deleted",
			slog.Int64("task_id", id),
			slog.Int64("user_id", user.ID))
		return nil
	})
}

func (s *taskServiceImpl) GenerateDashboardSummary(
	ctx context.Context,
	user *domain.User,
) (domain.DashboardSummary, error) {
	if err := requireUser(user); err != nil {
		return domain.DashboardSummary{}, err
	}

	threshold := s.now().UTC().Add(domain.UpcomingWindow)
	counts, err := s.taskStore.Summarize(ctx, user.ID, threshold)
	if err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("failed to summarize tasks: %w", err)
	}
	return domain.NewDashboardSummary(counts), nil
}

// ownedTask loads a task and hides it unless user owns it.
func (s *taskServiceImpl) ownedTask(
	ctx context.Context,
	tasks store.TaskStore,
	user *domain.User,
	id int64,
) (*domain.Task, error) {
	task, err := tasks.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.WrapError(domain.ErrNotFound, msgTaskNotFound, err)
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	if !task.IsOwnedBy(user.ID) {
		logger.FromContextOrDefault(ctx, s.logger).Debug("task requested by non-owner",
			slog.Int64("task_id", id),
			slog.Int64("user_id", user.ID))
		return nil, domain.NewError(domain.ErrNotFound, msgTaskNotFound)
	}
	return task, nil
}

// storeFailure translates a write failure after the ownership check. A
// missing row here means the task vanished concurrently.
func (s *taskServiceImpl) storeFailure(err error, operation string) error {
	if store.IsNotFoundError(err) {
		return domain.WrapError(domain.ErrNotFound, msgTaskNotFound, err)
	}
	return fmt.Errorf("failed to %s task: %w", operation, err)
}
