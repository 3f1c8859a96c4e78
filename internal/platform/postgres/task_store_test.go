package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pontetech/mission-control/internal/domain"
	"github.com/pontetech/mission-control/internal/platform/postgres"
	"github.com/pontetech/mission-control/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskColumns = []string{
	"id", "title", "description", "status", "priority", "due_date", "owner_id", "created_at", "updated_at",
}

func TestPostgresTaskStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns generated id", func(t *testing.T) {
		db, mock := newMockDB(t)
		taskStore := postgres.NewPostgresTaskStore(db, nil)
		task, err := domain.TaskDraft{Title: "Initiative"}.NewTask(3)
		require.NoError(t, err)

		mock.ExpectQuery("INSERT INTO tasks").
			WithArgs("Initiative", nil, "backlog", "medium", nil, int64(3), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

		require.NoError(t, taskStore.Create(ctx, task))
		assert.Equal(t, int64(11), task.ID)
	})

	t.Run("unknown owner", func(t *testing.T) {
		db, mock := newMockDB(t)
		taskStore := postgres.NewPostgresTaskStore(db, nil)
		task, err := domain.TaskDraft{Title: "Initiative"}.NewTask(999)
		require.NoError(t, err)

		mock.ExpectQuery("INSERT INTO tasks").
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "tasks_owner_id_fkey"})

		assert.ErrorIs(t, taskStore.Create(ctx, task), store.ErrInvalidEntity)
	})
}

func TestPostgresTaskStore_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	due := now.Add(24 * time.Hour)

	t.Run("maps nullable columns", func(t *testing.T) {
		db, mock := newMockDB(t)
		taskStore := postgres.NewPostgresTaskStore(db, nil)

		mock.ExpectQuery("FROM tasks WHERE id = \\$1").
			WithArgs(int64(11)).
			WillReturnRows(sqlmock.NewRows(taskColumns).
				AddRow(int64(11), "Initiative", "notes", "in_progress", "high", due, int64(3), now, now))

		task, err := taskStore.GetByID(ctx, 11)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusInProgress, task.Status)
		require.NotNil(t, task.Description)
		assert.Equal(t, "notes", *task.Description)
		require.NotNil(t, task.DueDate)
		assert.True(t, due.Equal(*task.DueDate))
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		taskStore := postgres.NewPostgresTaskStore(db, nil)

		mock.ExpectQuery("FROM tasks WHERE id = \\$1").WillReturnError(sql.ErrNoRows)

		_, err := taskStore.GetByID(ctx, 11)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_ListByOwner(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("returns rows in query order", func(t *testing.T) {
		db, mock := newMockDB(t)
		taskStore := postgres.NewPostgresTaskStore(db, nil)

		mock.ExpectQuery("FROM tasks WHERE owner_id = \\$1 ORDER BY created_at DESC, id DESC").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(taskColumns).
				AddRow(int64(2), "Second", nil, "done", "low", nil, int64(3), now, now).
				AddRow(int64(1), "First", nil, "backlog", "medium", nil, int64(3), now, now))

		tasks, err := taskStore.ListByOwner(ctx, 3)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, int64(2), tasks[0].ID)
		assert.Nil(t, tasks[0].Description)
		assert.Nil(t, tasks[0].DueDate)
	})

	t.Run("empty result is not nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		taskStore := postgres.NewPostgresTaskStore(db, nil)

		mock.ExpectQuery("FROM tasks WHERE owner_id").
			WillReturnRows(sqlmock.NewRows(taskColumns))

		tasks, err := taskStore.ListByOwner(ctx, 3)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})
}

func TestPostgresTaskStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	taskStore := postgres.NewPostgresTaskStore(db, nil)

	task, err := domain.TaskDraft{Title: "Initiative", Priority: "high"}.NewTask(3)
	require.NoError(t, err)
	task.ID = 11

	mock.ExpectExec("UPDATE tasks").
		WithArgs("Initiative", nil, "backlog", "high", nil, sqlmock.AnyArg(), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM tasks WHERE id = \\$1").
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.ErrorIs(t, taskStore.Update(ctx, task), store.ErrTaskNotFound)
	assert.NoError(t, taskStore.Delete(ctx, 11))
}

func TestPostgresTaskStore_Summarize(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	taskStore := postgres.NewPostgresTaskStore(db, nil)
	threshold := time.Now().UTC().Add(domain.UpcomingWindow)

	mock.ExpectQuery("COUNT\\(DISTINCT priority\\)").
		WithArgs(int64(3), threshold).
		WillReturnRows(sqlmock.NewRows([]string{"total", "completed", "upcoming", "priorities"}).
			AddRow(int64(4), int64(1), int64(2), int64(3)))

	counts, err := taskStore.Summarize(ctx, 3, threshold)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCounts{Total: 4, Completed: 1, Upcoming: 2, DistinctPriorities: 3}, counts)
}
