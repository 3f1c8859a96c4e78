//go:build integration

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pontetech/mission-control/internal/api"
	"github.com/pontetech/mission-control/internal/domain"
	"github.com/pontetech/mission-control/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerEndToEnd(t *testing.T) {
	db := testdb.OpenTestDB(t)

	app, err := newApplication(testConfig(), discardLogger(), db)
	require.NoError(t, err)
	server := httptest.NewServer(app.setupRouter())
	defer server.Close()

	email := fmt.Sprintf("e2e-%d@pontetech.com", time.Now().UnixNano())
	t.Cleanup(func() {
		_, _ = db.Exec("DELETE FROM users WHERE email = $1", email)
	})

	call := func(method, path, token string, body interface{}) *http.Response {
		t.Helper()
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req, err := http.NewRequest(method, server.URL+path, &buf)
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		return resp
	}

	resp := call(http.MethodPost, "/auth/register", "", map[string]string{
		"email": email, "full_name": "E2E Pilot", "password": "Secure123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(http.MethodPost, "/auth/register", "", map[string]string{
		"email": email, "full_name": "E2E Pilot", "password": "Secure123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(http.MethodPost, "/auth/login", "", map[string]string{
		"email": email, "password": "Secure123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login api.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))

	resp = call(http.MethodPost, "/tasks/", login.AccessToken, map[string]string{
		"title": "Deploy API", "priority": "high",
		"due_date": time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var task api.TaskRead
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&task))

	resp = call(http.MethodPut, fmt.Sprintf("/tasks/%d", task.ID), login.AccessToken,
		map[string]string{"status": "done"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(http.MethodGet, "/dashboard/summary", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary domain.DashboardSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, int64(1), summary.TotalTasks)
	assert.Equal(t, 100.0, summary.CompletionRate)
	assert.Equal(t, int64(0), summary.UpcomingTasks)

	resp = call(http.MethodDelete, fmt.Sprintf("/tasks/%d", task.ID), login.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(http.MethodGet, "/tasks/", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tasks []api.TaskRead
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tasks))
	assert.Empty(t, tasks)
}
