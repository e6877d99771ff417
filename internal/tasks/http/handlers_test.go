package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bugjanitor/go-janitor-backend/internal/docstore/memory"
	"github.com/bugjanitor/go-janitor-backend/internal/query"
	"github.com/bugjanitor/go-janitor-backend/internal/tasks/domain"
	"github.com/bugjanitor/go-janitor-backend/internal/tasks/service"
)

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := service.NewTaskRepository(context.Background(), memory.New())
	require.NoError(t, err)
	svc := service.NewTaskService(repo, service.WithClock(func() time.Time { return fixedNow }))

	router := gin.New()
	New(svc).Register(router.Group("/task"))
	return router
}

func do(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestTaskHandlers_CRUD(t *testing.T) {
	router := setupRouter(t)

	rr := do(t, router, http.MethodPost, "/task", map[string]any{
		"title":       "Fix login",
		"description": "users cannot log in",
		"status":      "TODO",
		"projectCode": "WEB",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var created domain.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, fixedNow, created.CreationDate)

	t.Run("get", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/task/"+created.ID, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"title":"Fix login"`)
	})

	t.Run("partial update ignores the body id", func(t *testing.T) {
		rr := do(t, router, http.MethodPut, "/task/"+created.ID, map[string]any{
			"id":     "hijack",
			"status": "IN_PROGRESS",
			"title":  nil,
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var got domain.Task
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "IN_PROGRESS", got.Status)
		assert.Equal(t, "Fix login", got.Title)
		assert.Equal(t, "users cannot log in", got.Description)
	})

	t.Run("update unknown id", func(t *testing.T) {
		rr := do(t, router, http.MethodPut, "/task/missing", map[string]any{"title": "x"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "task not found with id: missing")
	})

	t.Run("delete then get", func(t *testing.T) {
		rr := do(t, router, http.MethodDelete, "/task/"+created.ID, nil)
		assert.Equal(t, http.StatusNoContent, rr.Code)

		rr = do(t, router, http.MethodGet, "/task/"+created.ID, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestTaskHandlers_List(t *testing.T) {
	router := setupRouter(t)

	for _, body := range []map[string]any{
		{"title": "Login bug", "status": "TODO"},
		{"title": "Docs", "status": "DONE", "description": "a BUG in the docs"},
		{"title": "Deploy", "status": "DONE"},
	} {
		require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/task", body).Code)
	}

	t.Run("search and filter", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/task?search=bug&filter=status:DONE", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var page query.Page[domain.Task]
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
		require.Len(t, page.Content, 1)
		assert.Equal(t, "Docs", page.Content[0].Title)
	})

	t.Run("page size is capped", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/task?page=-1&size=500", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var page query.Page[domain.Task]
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
		assert.Equal(t, query.MaxPageSize, page.Size)
		assert.Equal(t, 0, page.CurrentPage)
		assert.Equal(t, int64(3), page.TotalElements)
	})

	t.Run("sorted", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/task?sort=title,desc", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var page query.Page[domain.Task]
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
		require.Len(t, page.Content, 3)
		assert.Equal(t, "Login bug", page.Content[0].Title)
		assert.Equal(t, "Deploy", page.Content[2].Title)
	})

	t.Run("by status", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/task/status/DONE", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var tasks []domain.Task
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tasks))
		assert.Len(t, tasks, 2)
	})
}

func TestTaskHandlers_Deadlines(t *testing.T) {
	router := setupRouter(t)

	yesterday := fixedNow.Add(-24 * time.Hour)
	tomorrow := fixedNow.Add(24 * time.Hour)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/task", map[string]any{"title": "late", "deadLine": yesterday}).Code)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/task", map[string]any{"title": "soon", "deadLine": tomorrow}).Code)

	rr := do(t, router, http.MethodGet, "/task/overdue", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var overdue []domain.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &overdue))
	require.Len(t, overdue, 1)
	assert.Equal(t, "late", overdue[0].Title)

	rr = do(t, router, http.MethodGet, "/task/upcoming", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var upcoming []domain.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &upcoming))
	require.Len(t, upcoming, 1)
	assert.Equal(t, "soon", upcoming[0].Title)
}

func TestTaskHandlers_TrackingReference(t *testing.T) {
	router := setupRouter(t)

	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/task", map[string]any{"title": "a", "trackingReference": "JIRA-1"}).Code)

	rr := do(t, router, http.MethodPost, "/task", map[string]any{"title": "b", "trackingReference": "JIRA-1"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, router, http.MethodGet, "/task/tracking/JIRA-1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, router, http.MethodGet, "/task/tracking/JIRA-2", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
