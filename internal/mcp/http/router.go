package http

import "github.com/gin-gonic/gin"

// Register registers the tool, resource and prompt routes under rg.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/tools", h.ListTools)
	rg.POST("/tools/:name", h.CallTool)

	rg.GET("/resources", h.GetResource)
	rg.GET("/resources/list", h.ListResources)

	p := rg.Group("/prompts")
	p.GET("", h.ListPrompts)
	p.GET("/help", h.PromptHelp)
	p.GET("/categories", h.ListCategories)
	p.GET("/categories/:category", h.PromptsByCategory)
	p.GET("/roles/:role", h.PromptForRole)
	p.GET("/workflows/:workflow", h.PromptForWorkflow)
	p.GET("/:name", h.GetPrompt)
}
