package http

import "github.com/gin-gonic/gin"

// Register registers the person routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.CreatePerson)
	rg.GET("", h.ListPersons)
	rg.GET("/email/:email", h.GetPersonByEmail)
	rg.GET("/:id", h.GetPerson)
	rg.PUT("/:id", h.UpdatePerson)
	rg.DELETE("/:id", h.DeletePerson)
}
