package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	httpapi "github.com/bugjanitor/go-janitor-backend/internal/api/http"
	"github.com/bugjanitor/go-janitor-backend/internal/logging"
	"github.com/bugjanitor/go-janitor-backend/internal/mcp/prompts"
	"github.com/bugjanitor/go-janitor-backend/internal/mcp/resources"
	"github.com/bugjanitor/go-janitor-backend/internal/mcp/tools"
)

type Handler struct {
	tools     *tools.Registry
	resources *resources.Provider
	prompts   *prompts.Catalog
}

func New(registry *tools.Registry, provider *resources.Provider, catalog *prompts.Catalog) *Handler {
	return &Handler{tools: registry, resources: provider, prompts: catalog}
}

func (h *Handler) ListTools(c *gin.Context) {
	defs := h.tools.ListTools()
	c.JSON(http.StatusOK, gin.H{"tools": defs, "total": len(defs)})
}

// CallTool runs a tool with the JSON object in the request body as its
// arguments. An empty body means no arguments.
func (h *Handler) CallTool(c *gin.Context) {
	name := c.Param("name")
	if !h.tools.HasTool(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown tool: " + name})
		return
	}

	var args map[string]any
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&args); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "arguments must be a JSON object"})
			return
		}
	}

	ctx := c.Request.Context()
	logging.Op(ctx, "call_tool").Debug("calling tool", "tool", name)

	result, err := h.tools.CallTool(ctx, name, args)
	if err != nil {
		httpapi.RespondError(c, "call_tool", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetResource(c *gin.Context) {
	uri := c.Query("uri")
	if strings.TrimSpace(uri) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uri query parameter is required"})
		return
	}

	res, err := h.resources.Get(c.Request.Context(), uri)
	if err != nil {
		httpapi.RespondError(c, "get_resource", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListResources(c *gin.Context) {
	list := h.resources.List()
	c.JSON(http.StatusOK, gin.H{"resources": list, "total": len(list)})
}

type promptSummary struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Arguments   []string `json:"arguments"`
}

func summarize(ps []prompts.Prompt) []promptSummary {
	out := make([]promptSummary, 0, len(ps))
	for _, p := range ps {
		out = append(out, promptSummary{
			Name:        p.Name,
			Category:    p.Category,
			Description: p.Description,
			Arguments:   p.Arguments,
		})
	}
	return out
}

func (h *Handler) ListPrompts(c *gin.Context) {
	list := summarize(h.prompts.All())
	c.JSON(http.StatusOK, gin.H{"prompts": list, "total": len(list)})
}

func (h *Handler) GetPrompt(c *gin.Context) {
	p, ok := h.prompts.Get(c.Param("name"))
	if !ok {
		httpapi.NotFound(c, "prompt")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) ListCategories(c *gin.Context) {
	cats := h.prompts.Categories()
	c.JSON(http.StatusOK, gin.H{"categories": cats, "total": len(cats)})
}

func (h *Handler) PromptsByCategory(c *gin.Context) {
	category := c.Param("category")
	list := summarize(h.prompts.ByCategory(category))
	c.JSON(http.StatusOK, gin.H{"category": category, "prompts": list, "total": len(list)})
}

func (h *Handler) PromptForRole(c *gin.Context) {
	sel := h.prompts.ForRole(c.Param("role"))
	c.JSON(http.StatusOK, gin.H{
		"role":             sel.Key,
		"prompt":           sel.Prompt.Name,
		"description":      sel.Prompt.Description,
		"content":          sel.Prompt.Content,
		"recommendedTools": sel.RecommendedTools,
		"fallback":         sel.Fallback,
	})
}

func (h *Handler) PromptForWorkflow(c *gin.Context) {
	sel := h.prompts.ForWorkflow(c.Param("workflow"))
	c.JSON(http.StatusOK, gin.H{
		"workflow":         sel.Key,
		"prompt":           sel.Prompt.Name,
		"description":      sel.Prompt.Description,
		"content":          sel.Prompt.Content,
		"recommendedTools": sel.RecommendedTools,
		"fallback":         sel.Fallback,
	})
}

func (h *Handler) PromptHelp(c *gin.Context) {
	roles := gin.H{}
	for _, p := range h.prompts.ByCategory(prompts.CategoryRoles) {
		roles[p.Name] = p.Description
	}
	workflows := gin.H{}
	for _, cat := range []string{prompts.CategoryWorkflows, prompts.CategoryTechnical} {
		for _, p := range h.prompts.ByCategory(cat) {
			workflows[p.Name] = p.Description
		}
	}
	categories := gin.H{}
	for _, cat := range h.prompts.Categories() {
		categories[cat.Name] = cat.Description
	}

	c.JSON(http.StatusOK, gin.H{
		"endpoints": gin.H{
			"GET /mcp/prompts":                       "List all available prompts",
			"GET /mcp/prompts/{name}":                "Get specific prompt by name",
			"GET /mcp/prompts/categories":            "List all prompt categories",
			"GET /mcp/prompts/categories/{category}": "Get prompts by category",
			"GET /mcp/prompts/roles/{role}":          "Get prompt optimized for role",
			"GET /mcp/prompts/workflows/{workflow}":  "Get prompt optimized for workflow",
		},
		"availableRoles":     roles,
		"availableWorkflows": workflows,
		"promptCategories":   categories,
		"usageExamples": gin.H{
			"getDeveloperPrompt": "GET /mcp/prompts/roles/developer",
			"getSprintWorkflow":  "GET /mcp/prompts/workflows/sprint-planning",
			"listRolePrompts":    "GET /mcp/prompts/categories/roles",
			"getSystemPrompt":    "GET /mcp/prompts/system-orchestrator",
		},
	})
}
