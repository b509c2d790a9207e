package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowgrid/internal/engine"
	"github.com/vk/flowgrid/internal/store"
)

func newTestServer() *Server {
	return New(Config{
		Store:    store.NewMemory(),
		Registry: engine.Builtins(),
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.App().Test(req)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func workflowBody(id string) map[string]any {
	return map[string]any{
		"metadata": map[string]any{"id": id, "name": "demo"},
		"nodes": []any{
			map[string]any{"id": "a", "type": "text", "attrs": map[string]any{"label": "A", "text": "hello"}},
			map[string]any{"id": "b", "type": "text", "attrs": map[string]any{"label": "B"}},
		},
		"edges": []any{
			map[string]any{"id": "e1", "source": "a", "target": "b"},
		},
		"ports": []any{},
	}
}

func TestHealth(t *testing.T) {
	resp, body := doJSON(t, newTestServer(), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestWorkflowCRUD(t *testing.T) {
	s := newTestServer()

	resp, body := doJSON(t, s, http.MethodPost, "/api/workflows", workflowBody("wf-1"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = doJSON(t, s, http.MethodGet, "/api/workflows/wf-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "wf-1", data["metadata"].(map[string]any)["id"])

	resp, _ = doJSON(t, s, http.MethodGet, "/api/workflows/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, s, http.MethodDelete, "/api/workflows/wf-1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, s, http.MethodGet, "/api/workflows/wf-1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateWorkflowRejectsMissingCollections(t *testing.T) {
	s := newTestServer()

	// Normalize backfills collections, so shape errors can only come from a
	// body that isn't a workflow at all.
	req := httptest.NewRequest(http.MethodPost, "/api/workflows", bytes.NewReader([]byte(`"not an object"`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateWorkflowRequiresCompleteBody(t *testing.T) {
	s := newTestServer()

	resp, _ := doJSON(t, s, http.MethodPost, "/api/workflows", workflowBody("wf-1"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// An empty object must not silently replace a stored workflow.
	resp, body := doJSON(t, s, http.MethodPut, "/api/workflows/wf-1", map[string]any{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_WORKFLOW", body["error"].(map[string]any)["code"])

	// A complete body updates in place under the path id.
	updated := workflowBody("ignored")
	updated["metadata"].(map[string]any)["name"] = "renamed"
	resp, body = doJSON(t, s, http.MethodPut, "/api/workflows/wf-1", updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	meta := body["data"].(map[string]any)["metadata"].(map[string]any)
	assert.Equal(t, "wf-1", meta["id"])
	assert.Equal(t, "renamed", meta["name"])
}

func TestExecuteStoredWorkflow(t *testing.T) {
	s := newTestServer()

	resp, _ := doJSON(t, s, http.MethodPost, "/api/workflows", workflowBody("wf-1"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, s, http.MethodPost, "/api/workflows/wf-1/execute", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Equal(t, "wf-1", data["workflowId"])
	assert.Equal(t, "success", data["status"])
	results := data["results"].([]any)
	require.Len(t, results, 2)

	// The report is retrievable afterwards.
	execID := data["executionId"].(string)
	resp, body = doJSON(t, s, http.MethodGet, "/api/executions/"+execID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["data"].(map[string]any)["status"])
}

func TestExecuteInlineCyclicWorkflowReportsError(t *testing.T) {
	s := newTestServer()

	body := workflowBody("wf-cycle")
	body["edges"] = []any{
		map[string]any{"id": "e1", "source": "a", "target": "b"},
		map[string]any{"id": "e2", "source": "b", "target": "a"},
	}

	// Planning failures are still a complete report, not a transport error.
	resp, decoded := doJSON(t, s, http.MethodPost, "/api/executions", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decoded["data"].(map[string]any)
	assert.Equal(t, "error", data["status"])
	results := data["results"].([]any)
	require.NotEmpty(t, results)
	first := results[0].(map[string]any)
	assert.Equal(t, "plan", first["nodeId"])
	assert.Equal(t, "PLAN_ERROR", first["error"].(map[string]any)["code"])
}

func TestExecuteMissingWorkflow(t *testing.T) {
	resp, _ := doJSON(t, newTestServer(), http.MethodPost, "/api/workflows/nope/execute", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	s := New(Config{
		Store:        store.NewMemory(),
		Registry:     engine.Builtins(),
		RateLimitMax: 2,
	})

	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, s, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, _ := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
