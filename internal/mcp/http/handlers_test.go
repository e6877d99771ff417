package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bugjanitor/go-janitor-backend/internal/docstore/memory"
	"github.com/bugjanitor/go-janitor-backend/internal/mcp/prompts"
	"github.com/bugjanitor/go-janitor-backend/internal/mcp/resources"
	"github.com/bugjanitor/go-janitor-backend/internal/mcp/tools"
	persons "github.com/bugjanitor/go-janitor-backend/internal/persons/service"
	projects "github.com/bugjanitor/go-janitor-backend/internal/projects/service"
	tasks "github.com/bugjanitor/go-janitor-backend/internal/tasks/service"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	store := memory.New()

	projectRepo, err := projects.NewProjectRepository(ctx, store)
	require.NoError(t, err)
	taskRepo, err := tasks.NewTaskRepository(ctx, store)
	require.NoError(t, err)
	personRepo, err := persons.NewPersonRepository(ctx, store)
	require.NoError(t, err)

	projectSvc := projects.NewProjectService(projectRepo)
	taskSvc := tasks.NewTaskService(taskRepo)
	personSvc := persons.NewPersonService(personRepo)

	catalog, err := prompts.Default()
	require.NoError(t, err)

	router := gin.New()
	New(
		tools.NewRegistry(projectSvc, taskSvc, personSvc),
		resources.NewProvider(projectSvc, taskSvc, personSvc, "test"),
		catalog,
	).Register(router.Group("/mcp"))
	return router
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestToolRoutes(t *testing.T) {
	router := setupRouter(t)

	rr := do(t, router, http.MethodGet, "/mcp/tools", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 24, decodeBody(t, rr)["total"])

	t.Run("call creates and finds", func(t *testing.T) {
		rr := do(t, router, http.MethodPost, "/mcp/tools/create-project", `{"projectName":"Janitor","projectCode":"JAN"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		id := decodeBody(t, rr)["id"].(string)

		rr = do(t, router, http.MethodPost, "/mcp/tools/find-project-by-id", `{"id":"`+id+`"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "JAN", decodeBody(t, rr)["projectCode"])
	})

	t.Run("empty body means no arguments", func(t *testing.T) {
		rr := do(t, router, http.MethodPost, "/mcp/tools/find-overdue-tasks", "")
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("errors map to status codes", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodPost, "/mcp/tools/nope", "{}").Code)
		assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/mcp/tools/create-task", "[1,2]").Code)
		assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/mcp/tools/create-task", `{"status":"TODO"}`).Code)
		assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodPost, "/mcp/tools/delete-task", `{"id":"ghost"}`).Code)
		assert.Equal(t, http.StatusConflict,
			do(t, router, http.MethodPost, "/mcp/tools/create-project", `{"projectName":"Again","projectCode":"JAN"}`).Code)
	})
}

func TestResourceRoutes(t *testing.T) {
	router := setupRouter(t)

	rr := do(t, router, http.MethodGet, "/mcp/resources?uri=server/info", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, resources.ServerName, decodeBody(t, rr)["name"])

	rr = do(t, router, http.MethodGet, "/mcp/resources?uri=metrics/tasks/count", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 0, decodeBody(t, rr)["count"])

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/mcp/resources", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/mcp/resources?uri=users", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/mcp/resources?uri=tasks/ghost", "").Code)

	rr = do(t, router, http.MethodGet, "/mcp/resources/list", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 17, decodeBody(t, rr)["total"])
}

func TestPromptRoutes(t *testing.T) {
	router := setupRouter(t)

	rr := do(t, router, http.MethodGet, "/mcp/prompts", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 9, decodeBody(t, rr)["total"])

	rr = do(t, router, http.MethodGet, "/mcp/prompts/bug-triage", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "workflows", decodeBody(t, rr)["category"])

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/mcp/prompts/ghost", "").Code)

	rr = do(t, router, http.MethodGet, "/mcp/prompts/categories", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 4, decodeBody(t, rr)["total"])

	rr = do(t, router, http.MethodGet, "/mcp/prompts/categories/roles", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 3, decodeBody(t, rr)["total"])

	rr = do(t, router, http.MethodGet, "/mcp/prompts/roles/dev", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "developer", body["prompt"])
	assert.Equal(t, false, body["fallback"])

	rr = do(t, router, http.MethodGet, "/mcp/prompts/workflows/retro", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body = decodeBody(t, rr)
	assert.Equal(t, "system-orchestrator", body["prompt"])
	assert.Equal(t, true, body["fallback"])

	rr = do(t, router, http.MethodGet, "/mcp/prompts/help", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, decodeBody(t, rr), "endpoints")
}
