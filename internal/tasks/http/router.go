package http

import "github.com/gin-gonic/gin"

// Register registers the task routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.CreateTask)
	rg.GET("", h.ListTasks)
	rg.GET("/overdue", h.ListOverdueTasks)
	rg.GET("/upcoming", h.ListUpcomingTasks)
	rg.GET("/status/:status", h.ListTasksByStatus)
	rg.GET("/project/:projectCode", h.ListTasksByProject)
	rg.GET("/tracking/:trackingReference", h.GetTaskByTrackingReference)
	rg.GET("/:id", h.GetTask)
	rg.PUT("/:id", h.UpdateTask)
	rg.DELETE("/:id", h.DeleteTask)
}
