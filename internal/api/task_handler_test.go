package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/pontetech/mission-control/internal/api"
	"github.com/pontetech/mission-control/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTask(t *testing.T, s *testServer, token string, body map[string]interface{}) api.TaskRead {
	t.Helper()
	w := s.do(t, http.MethodPost, "/tasks/", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[api.TaskRead](t, w)
}

func TestCreateTask(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "pilot@pontetech.com")

	t.Run("defaults", func(t *testing.T) {
		task := createTask(t, s, token, map[string]interface{}{"title": "Sync"})

		assert.Equal(t, domain.TaskStatusBacklog, task.Status)
		assert.Equal(t, "medium", task.Priority)
		assert.Nil(t, task.Description)
		assert.Nil(t, task.DueDate)
	})

	t.Run("naive due date is UTC", func(t *testing.T) {
		task := createTask(t, s, token, map[string]interface{}{
			"title":    "Launch",
			"due_date": "2030-05-01T12:30:00",
		})

		require.NotNil(t, task.DueDate)
		assert.True(t, task.DueDate.Equal(time.Date(2030, 5, 1, 12, 30, 0, 0, time.UTC)))
	})

	t.Run("offset due date is converted", func(t *testing.T) {
		task := createTask(t, s, token, map[string]interface{}{
			"title":    "Launch",
			"due_date": "2030-05-01T09:30:00-03:00",
		})

		require.NotNil(t, task.DueDate)
		assert.True(t, task.DueDate.Equal(time.Date(2030, 5, 1, 12, 30, 0, 0, time.UTC)))
	})

	shapeCases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing title", map[string]interface{}{"priority": "high"}},
		{"short title", map[string]interface{}{"title": "ab"}},
		{"unknown status", map[string]interface{}{"title": "Sync", "status": "archived"}},
		{"long priority", map[string]interface{}{"title": "Sync", "priority": fmt.Sprintf("%051d", 0)}},
		{"empty priority", map[string]interface{}{"title": "Sync", "priority": ""}},
		{"empty status", map[string]interface{}{"title": "Sync", "status": ""}},
		{"bad due date", map[string]interface{}{"title": "Sync", "due_date": "tomorrow"}},
		{"wrong type", map[string]interface{}{"title": 42}},
	}
	for _, tc := range shapeCases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/tasks/", token, tc.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			assert.Equal(t, "validation_error", decode[errorBody](t, w).Kind)
		})
	}
}

func TestGetTask(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "pilot@pontetech.com")
	task := createTask(t, s, token, map[string]interface{}{"title": "Sync"})

	w := s.do(t, http.MethodGet, fmt.Sprintf("/tasks/%d", task.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, task.ID, decode[api.TaskRead](t, w).ID)

	w = s.do(t, http.MethodGet, "/tasks/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, "Task not found", body.Error)
	assert.Equal(t, "not_found", body.Kind)

	w = s.do(t, http.MethodGet, "/tasks/abc", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTasksAreScopedToOwner(t *testing.T) {
	s := newTestServer(t)
	alice := s.registerAndLogin(t, "alice@pontetech.com")
	bob := s.registerAndLogin(t, "bob@pontetech.com")

	task := createTask(t, s, alice, map[string]interface{}{"title": "Alice's plan"})
	path := fmt.Sprintf("/tasks/%d", task.ID)

	w := s.do(t, http.MethodGet, "/tasks/", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, path, bob, nil).Code)
	assert.Equal(t, http.StatusNotFound,
		s.do(t, http.MethodPut, path, bob, map[string]string{"title": "Bob's now"}).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, path, bob, nil).Code)

	w = s.do(t, http.MethodGet, path, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alice's plan", decode[api.TaskRead](t, w).Title)
}

func TestUpdateTask(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "pilot@pontetech.com")
	task := createTask(t, s, token, map[string]interface{}{
		"title":       "Calibrate",
		"description": "Bay 3",
		"priority":    "low",
		"due_date":    "2030-01-01T00:00:00Z",
	})
	path := fmt.Sprintf("/tasks/%d", task.ID)

	t.Run("empty body changes nothing", func(t *testing.T) {
		w := s.do(t, http.MethodPut, path, token, map[string]string{})
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[api.TaskRead](t, w)
		assert.Equal(t, "Calibrate", got.Title)
		assert.Equal(t, "low", got.Priority)
		assert.True(t, got.UpdatedAt.Equal(task.UpdatedAt))
	})

	t.Run("null clears nullable fields", func(t *testing.T) {
		w := s.do(t, http.MethodPut, path, token, `{"description": null, "due_date": null}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got := decode[api.TaskRead](t, w)
		assert.Nil(t, got.Description)
		assert.Nil(t, got.DueDate)
		assert.Equal(t, "Calibrate", got.Title)
	})

	t.Run("null title is rejected", func(t *testing.T) {
		w := s.do(t, http.MethodPut, path, token, `{"title": null}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation_error", decode[errorBody](t, w).Kind)
	})

	t.Run("empty priority is rejected", func(t *testing.T) {
		w := s.do(t, http.MethodPut, path, token, map[string]string{"priority": ""})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		assert.Equal(t, "validation_error", decode[errorBody](t, w).Kind)

		w = s.do(t, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "low", decode[api.TaskRead](t, w).Priority)
	})

	t.Run("invalid status", func(t *testing.T) {
		w := s.do(t, http.MethodPut, path, token, map[string]string{"status": "archived"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("sets due date", func(t *testing.T) {
		w := s.do(t, http.MethodPut, path, token, map[string]string{"due_date": "2031-02-03T04:05:06"})
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[api.TaskRead](t, w)
		require.NotNil(t, got.DueDate)
		assert.True(t, got.DueDate.Equal(time.Date(2031, 2, 3, 4, 5, 6, 0, time.UTC)))
	})
}

func TestDeleteTask(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "pilot@pontetech.com")
	task := createTask(t, s, token, map[string]interface{}{"title": "Disposable"})
	path := fmt.Sprintf("/tasks/%d", task.ID)

	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, path, token, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, path, token, nil).Code)
}

func TestProtectedRoutes(t *testing.T) {
	s := newTestServer(t)
	user := s.register(t, "pilot@pontetech.com")
	token := s.login(t, "pilot@pontetech.com")

	for _, path := range []string{"/tasks/", "/dashboard/summary"} {
		w := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "Missing credentials", decode[errorBody](t, w).Error, path)
	}

	w := s.do(t, http.MethodGet, "/tasks/", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decode[errorBody](t, w).Error)

	s.users.SetActive(user.ID, false)
	w = s.do(t, http.MethodGet, "/tasks/", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, "Inactive user", body.Error)
	assert.Equal(t, "forbidden", body.Kind)
}

func TestTraceHeaderMatchesErrorBody(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/tasks/", "", nil)

	traceID := w.Header().Get("X-Trace-Id")
	require.NotEmpty(t, traceID)
	assert.Equal(t, traceID, decode[errorBody](t, w).TraceID)
}
