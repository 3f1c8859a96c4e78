package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/pontetech/mission-control/internal/domain"
	"github.com/pontetech/mission-control/internal/store"
)

// MockTaskStore is an in-memory store.TaskStore.
type MockTaskStore struct {
	CreateFn      func(ctx context.Context, task *domain.Task) error
	GetByIDFn     func(ctx context.Context, id int64) (*domain.Task, error)
	ListByOwnerFn func(ctx context.Context, ownerID int64) ([]*domain.Task, error)
	UpdateFn      func(ctx context.Context, task *domain.Task) error
	DeleteFn      func(ctx context.Context, id int64) error
	SummarizeFn   func(ctx context.Context, ownerID int64, upcomingBefore time.Time) (domain.TaskCounts, error)

	mu     sync.Mutex
	tasks  map[int64]*domain.Task
	nextID int64
}

// NewMockTaskStore creates an empty in-memory task store.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{tasks: make(map[int64]*domain.Task)}
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements store.TaskStore.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	task.ID = m.nextID
	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

// GetByID implements store.TaskStore.
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	found := *task
	return &found, nil
}

// ListByOwner implements store.TaskStore, ordering like the SQL store:
// newest first, ties broken by descending ID.
func (m *MockTaskStore) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]*domain.Task, 0)
	for _, task := range m.tasks {
		if task.OwnerID == ownerID {
			found := *task
			tasks = append(tasks, &found)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

// Update implements store.TaskStore.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now().UTC()
	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

// Delete implements store.TaskStore.
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// Summarize implements store.TaskStore with the same rules as the SQL aggregate.
func (m *MockTaskStore) Summarize(
	ctx context.Context,
	ownerID int64,
	upcomingBefore time.Time,
) (domain.TaskCounts, error) {
	if m.SummarizeFn != nil {
		return m.SummarizeFn(ctx, ownerID, upcomingBefore)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var counts domain.TaskCounts
	priorities := make(map[string]struct{})
	for _, task := range m.tasks {
		if task.OwnerID != ownerID {
			continue
		}
		counts.Total++
		priorities[task.Priority] = struct{}{}
		if task.Status == domain.TaskStatusDone {
			counts.Completed++
			continue
		}
		if task.DueDate != nil && !task.DueDate.After(upcomingBefore) {
			counts.Upcoming++
		}
	}
	counts.DistinctPriorities = int64(len(priorities))
	return counts, nil
}

// WithTx implements store.TaskStore by returning the same store.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// DeleteByOwner removes every task of ownerID. Wire it to
// MockUserStore.OnDelete to emulate ON DELETE CASCADE.
func (m *MockTaskStore) DeleteByOwner(ownerID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, task := range m.tasks {
		if task.OwnerID == ownerID {
			delete(m.tasks, id)
		}
	}
}
