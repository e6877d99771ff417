package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/bugjanitor/go-janitor-backend/internal/api/http"
	"github.com/bugjanitor/go-janitor-backend/internal/tasks/domain"
	"github.com/bugjanitor/go-janitor-backend/internal/tasks/service"
)

type Handler struct {
	svc *service.TaskService
}

func New(svc *service.TaskService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreateTask(c *gin.Context) {
	var t domain.Task
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &t)
	if err != nil {
		httpapi.RespondError(c, "create_task", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetTask(c *gin.Context) {
	t, err := h.svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, "get_task", err)
		return
	}
	if t == nil {
		httpapi.NotFound(c, "task")
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateTask merges the non-null body fields into the stored task
func (h *Handler) UpdateTask(c *gin.Context) {
	var patch domain.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	t, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		httpapi.RespondError(c, "update_task", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpapi.RespondError(c, "delete_task", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListTasks(c *gin.Context) {
	page, err := h.svc.FindAll(c.Request.Context(), httpapi.PageRequest(c), c.Query("search"), c.Query("filter"))
	if err != nil {
		httpapi.RespondError(c, "list_tasks", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) ListOverdueTasks(c *gin.Context) {
	tasks, err := h.svc.FindOverdueTasks(c.Request.Context())
	if err != nil {
		httpapi.RespondError(c, "list_overdue_tasks", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) ListUpcomingTasks(c *gin.Context) {
	tasks, err := h.svc.FindUpcomingTasks(c.Request.Context())
	if err != nil {
		httpapi.RespondError(c, "list_upcoming_tasks", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) ListTasksByStatus(c *gin.Context) {
	tasks, err := h.svc.FindByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		httpapi.RespondError(c, "list_tasks_by_status", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) ListTasksByProject(c *gin.Context) {
	tasks, err := h.svc.FindByProjectCode(c.Request.Context(), c.Param("projectCode"))
	if err != nil {
		httpapi.RespondError(c, "list_tasks_by_project", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) GetTaskByTrackingReference(c *gin.Context) {
	t, err := h.svc.FindByTrackingReference(c.Request.Context(), c.Param("trackingReference"))
	if err != nil {
		httpapi.RespondError(c, "get_task_by_tracking_reference", err)
		return
	}
	if t == nil {
		httpapi.NotFound(c, "task")
		return
	}
	c.JSON(http.StatusOK, t)
}
