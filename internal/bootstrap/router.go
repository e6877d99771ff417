package bootstrap

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bugjanitor/go-janitor-backend/config"
	httpapi "github.com/bugjanitor/go-janitor-backend/internal/api/http"
	"github.com/bugjanitor/go-janitor-backend/internal/api/http/middleware"
	"github.com/bugjanitor/go-janitor-backend/internal/docstore"
	mcphttp "github.com/bugjanitor/go-janitor-backend/internal/mcp/http"
	"github.com/bugjanitor/go-janitor-backend/internal/mcp/prompts"
	"github.com/bugjanitor/go-janitor-backend/internal/mcp/resources"
	"github.com/bugjanitor/go-janitor-backend/internal/mcp/tools"
	personhttp "github.com/bugjanitor/go-janitor-backend/internal/persons/http"
	projecthttp "github.com/bugjanitor/go-janitor-backend/internal/projects/http"
	taskhttp "github.com/bugjanitor/go-janitor-backend/internal/tasks/http"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Server      config.ServerConfig
	Store       docstore.Store
	Services    *Services
	Prompts     *prompts.Catalog
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(dep.Server.AllowedOrigins))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RateLimitMiddleware(dep.Server.RateLimitRPS, dep.Server.RateLimitBurst))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store)
	healthHandler.RegisterRoutes(r)

	api := r.Group("")
	api.Use(middleware.APIKeyMiddleware(dep.Server.APIKey, "/"))

	api.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello, World!")
	})

	svc := dep.Services
	projecthttp.New(svc.Projects).Register(api.Group("/project"))
	taskhttp.New(svc.Tasks).Register(api.Group("/task"))
	personhttp.New(svc.Persons).Register(api.Group("/person"))

	mcp := mcphttp.New(
		tools.NewRegistry(svc.Projects, svc.Tasks, svc.Persons),
		resources.NewProvider(svc.Projects, svc.Tasks, svc.Persons, dep.Version),
		dep.Prompts,
	)
	mcp.Register(api.Group("/mcp"))

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.APIKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
