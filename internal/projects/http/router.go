package http

import "github.com/gin-gonic/gin"

// Register registers the project routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.CreateProject)
	rg.GET("", h.ListProjects)
	rg.GET("/:id", h.GetProject)
	rg.PUT("/:id", h.UpdateProject)
	rg.DELETE("/:id", h.DeleteProject)
	rg.GET("/code/:code", h.GetProjectByCode)
	rg.GET("/name/:name", h.GetProjectByName)
}
