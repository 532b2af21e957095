package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aihub/hubadmin/pkg/models"
)

func TestClient_AuthorizesRequests(t *testing.T) {
	t.Parallel()

	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.PlatformConfig{LogLevel: "info"})
	}))
	defer server.Close()

	c := New(server.URL, "operator-token")

	config, err := c.GetConfig(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "Bearer operator-token", gotAuth)
}

func TestClient_NoTokenLeavesHeaderEmpty(t *testing.T) {
	t.Parallel()

	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(models.PlatformConfig{})
	}))
	defer server.Close()

	c := New(server.URL, "")

	_, err := c.GetConfig(t.Context())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_TrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	c := New("http://localhost:9091/", "")
	assert.Equal(t, "http://localhost:9091", c.BaseURL())
}

func TestClient_DecodesProblemResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": 404,
			"type":   "not_found",
			"title":  "Not Found",
			"detail": "Provider not found",
		})
	}))
	defer server.Close()

	c := New(server.URL, "")

	_, err := c.GetExecution(t.Context(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError

	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "not_found", apiErr.Type)
	assert.Equal(t, "Provider not found", apiErr.Detail)
	assert.Contains(t, apiErr.Error(), "404")
	assert.Contains(t, apiErr.Error(), "Provider not found")
}

func TestClient_NonProblemBodyFallsBackToStatusText(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream error</html>"))
	}))
	defer server.Close()

	c := New(server.URL, "")

	err := c.CancelExecution(t.Context(), "exec-1")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))

	var apiErr *APIError

	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Title)
}

func TestClient_ListExecutionsBuildsQuery(t *testing.T) {
	t.Parallel()

	var gotQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(ExecutionsPage{
			Executions: []*models.WorkflowExecution{
				{ID: "exec-1", Status: models.ExecutionStatusRunning, StartedAt: time.Now().UTC()},
			},
			TotalCount:  41,
			HasNextPage: true,
		})
	}))
	defer server.Close()

	c := New(server.URL, "")

	page, err := c.ListExecutions(t.Context(), ListExecutionsOptions{
		WorkflowID: "wf-1",
		Status:     "running",
		Limit:      20,
		Offset:     20,
	})
	require.NoError(t, err)

	assert.Equal(t, "limit=20&offset=20&status=running&workflow_id=wf-1", gotQuery)
	assert.Equal(t, int64(41), page.TotalCount)
	assert.True(t, page.HasNextPage)
	require.Len(t, page.Executions, 1)
	assert.Equal(t, "exec-1", page.Executions[0].ID)
}

func TestClient_DebugStreamURL(t *testing.T) {
	t.Parallel()

	c := New("http://localhost:9091", "")

	assert.Equal(t, "http://localhost:9091/admin/auth/debug/stream", c.DebugStreamURL(""))
	assert.Equal(t, "http://localhost:9091/admin/auth/debug/stream?provider=azure+ad", c.DebugStreamURL("azure ad"))
}
