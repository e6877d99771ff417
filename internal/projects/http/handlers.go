package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/bugjanitor/go-janitor-backend/internal/api/http"
	"github.com/bugjanitor/go-janitor-backend/internal/projects/domain"
	"github.com/bugjanitor/go-janitor-backend/internal/projects/service"
)

type Handler struct {
	svc *service.ProjectService
}

func New(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

// CreateProject stores the request body as a new project
func (h *Handler) CreateProject(c *gin.Context) {
	var p domain.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &p)
	if err != nil {
		httpapi.RespondError(c, "create_project", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetProject(c *gin.Context) {
	p, err := h.svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, "get_project", err)
		return
	}
	if p == nil {
		httpapi.NotFound(c, "project")
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProject merges the non-null body fields into the stored project
func (h *Handler) UpdateProject(c *gin.Context) {
	var patch domain.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		httpapi.RespondError(c, "update_project", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpapi.RespondError(c, "delete_project", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListProjects returns one page, narrowed by the search and filter params
func (h *Handler) ListProjects(c *gin.Context) {
	page, err := h.svc.FindAll(c.Request.Context(), httpapi.PageRequest(c), c.Query("search"), c.Query("filter"))
	if err != nil {
		httpapi.RespondError(c, "list_projects", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetProjectByCode(c *gin.Context) {
	p, err := h.svc.FindByProjectCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		httpapi.RespondError(c, "get_project_by_code", err)
		return
	}
	if p == nil {
		httpapi.NotFound(c, "project")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) GetProjectByName(c *gin.Context) {
	p, err := h.svc.FindByProjectName(c.Request.Context(), c.Param("name"))
	if err != nil {
		httpapi.RespondError(c, "get_project_by_name", err)
		return
	}
	if p == nil {
		httpapi.NotFound(c, "project")
		return
	}
	c.JSON(http.StatusOK, p)
}
