package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/pontetech/mission-control/internal/domain"
	"github.com/pontetech/mission-control/internal/store"
)

// MockUserStore is an in-memory store.UserStore.
type MockUserStore struct {
	CreateFn          func(ctx context.Context, user *domain.User) error
	GetByIDFn         func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFn      func(ctx context.Context, email string) (*domain.User, error)
	UpdateFn          func(ctx context.Context, user *domain.User) error
	UpdateLastLoginFn func(ctx context.Context, id int64, at time.Time) error
	DeleteFn          func(ctx context.Context, id int64) error

	// OnDelete is called after a user is removed, letting a task store
	// emulate the cascading foreign key.
	OnDelete func(id int64)

	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64
}

// NewMockUserStore creates an empty in-memory user store.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[int64]*domain.User)}
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements store.UserStore.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

// GetByID implements store.UserStore.
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	found := *user
	return &found, nil
}

// GetByEmail implements store.UserStore.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			found := *user
			return &found, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Update implements store.UserStore.
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	for id, existing := range m.users {
		if id != user.ID && existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	user.UpdatedAt = time.Now().UTC()
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

// UpdateLastLogin implements store.UserStore.
func (m *MockUserStore) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	if m.UpdateLastLoginFn != nil {
		return m.UpdateLastLoginFn(ctx, id, at)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	lastLogin := at.UTC()
	user.LastLogin = &lastLogin
	user.UpdatedAt = lastLogin
	return nil
}

// Delete implements store.UserStore.
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	if _, ok := m.users[id]; !ok {
		m.mu.Unlock()
		return store.ErrUserNotFound
	}
	delete(m.users, id)
	m.mu.Unlock()

	if m.OnDelete != nil {
		m.OnDelete(id)
	}
	return nil
}

// WithTx implements store.UserStore by returning the same store.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// SetActive flips a stored user's active flag.
func (m *MockUserStore) SetActive(id int64, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user, ok := m.users[id]; ok {
		user.IsActive = active
	}
}

// Count returns the number of stored users.
func (m *MockUserStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}
