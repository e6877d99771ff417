package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/bugjanitor/go-janitor-backend/internal/api/http"
	"github.com/bugjanitor/go-janitor-backend/internal/persons/domain"
	"github.com/bugjanitor/go-janitor-backend/internal/persons/service"
)

type Handler struct {
	svc *service.PersonService
}

func New(svc *service.PersonService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreatePerson(c *gin.Context) {
	var p domain.Person
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &p)
	if err != nil {
		httpapi.RespondError(c, "create_person", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetPerson(c *gin.Context) {
	p, err := h.svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, "get_person", err)
		return
	}
	if p == nil {
		httpapi.NotFound(c, "person")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePerson(c *gin.Context) {
	var patch domain.PersonPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		httpapi.RespondError(c, "update_person", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePerson(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpapi.RespondError(c, "delete_person", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListPersons(c *gin.Context) {
	page, err := h.svc.FindAll(c.Request.Context(), httpapi.PageRequest(c), c.Query("search"), c.Query("filter"))
	if err != nil {
		httpapi.RespondError(c, "list_persons", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetPersonByEmail(c *gin.Context) {
	p, err := h.svc.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		httpapi.RespondError(c, "get_person_by_email", err)
		return
	}
	if p == nil {
		httpapi.NotFound(c, "person")
		return
	}
	c.JSON(http.StatusOK, p)
}
