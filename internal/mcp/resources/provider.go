// Package resources serves read-only views of projects, tasks and persons
// addressed by short URIs such as "projects/{id}" or "tasks/overdue".
package resources

import (
	"context"
	"strings"
	"time"

	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	persons "github.com/bugjanitor/go-janitor-backend/internal/persons/service"
	projects "github.com/bugjanitor/go-janitor-backend/internal/projects/service"
	"github.com/bugjanitor/go-janitor-backend/internal/query"
	tasks "github.com/bugjanitor/go-janitor-backend/internal/tasks/service"
)

const ServerName = "Bug Tracking Janitor MCP Server"

// Descriptor documents one addressable resource.
type Descriptor struct {
	URI         string `json:"uri"`
	Group       string `json:"group"`
	Description string `json:"description"`
}

var catalog = []Descriptor{
	{"projects", "project", "List all projects"},
	{"projects/{id}", "project", "Get specific project by ID"},
	{"projects/{projectCode}/tasks", "project", "Get tasks for a specific project"},
	{"tasks", "task", "List all tasks"},
	{"tasks/{id}", "task", "Get specific task by ID"},
	{"tasks/by-tracking-ref/{trackingRef}", "task", "Get task by tracking reference"},
	{"tasks/by-status/{status}", "task", "Get tasks by status"},
	{"tasks/overdue", "task", "Get overdue tasks"},
	{"tasks/upcoming", "task", "Get upcoming tasks (next 7 days)"},
	{"schemas/project", "schema", "Project JSON schema"},
	{"schemas/task", "schema", "Task JSON schema"},
	{"schemas/person", "schema", "Person JSON schema"},
	{"server/health", "server", "Server health status"},
	{"server/info", "server", "Server information and capabilities"},
	{"metrics/projects/count", "metrics", "Total project count"},
	{"metrics/tasks/count", "metrics", "Total task count"},
	{"metrics/persons/count", "metrics", "Total person count"},
}

type Provider struct {
	projects *projects.ProjectService
	tasks    *tasks.TaskService
	persons  *persons.PersonService
	version  string
	now      func() time.Time
}

func NewProvider(p *projects.ProjectService, t *tasks.TaskService, ps *persons.PersonService, version string) *Provider {
	if version == "" {
		version = "1.0.0"
	}
	return &Provider{projects: p, tasks: t, persons: ps, version: version, now: time.Now}
}

// List returns every resource URI template the provider understands.
func (p *Provider) List() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Get resolves uri. Unknown or malformed URIs are validation errors, a
// missing entity is a not-found error.
func (p *Provider) Get(ctx context.Context, uri string) (map[string]any, error) {
	uri = strings.Trim(strings.TrimSpace(uri), "/")
	if uri == "" {
		return nil, errortypes.Validation("resource uri is required")
	}
	parts := strings.Split(uri, "/")

	switch parts[0] {
	case "projects":
		return p.project(ctx, uri, parts)
	case "tasks":
		return p.task(ctx, uri, parts)
	case "schemas":
		return p.schema(uri, parts)
	case "server":
		return p.server(uri, parts)
	case "metrics":
		return p.metrics(ctx, uri, parts)
	default:
		return nil, errortypes.Validation("unknown resource: %s", uri)
	}
}

func (p *Provider) project(ctx context.Context, uri string, parts []string) (map[string]any, error) {
	switch {
	case len(parts) == 1:
		page, err := p.projects.FindAll(ctx, query.Unpaged(), "", "")
		if err != nil {
			return nil, err
		}
		return map[string]any{"projects": page.Content, "totalElements": page.TotalElements}, nil
	case len(parts) == 2:
		project, err := p.projects.FindByID(ctx, parts[1])
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, errortypes.NotFound("project not found: %s", parts[1])
		}
		return map[string]any{"project": project}, nil
	case len(parts) == 3 && parts[2] == "tasks":
		list, err := p.tasks.FindByProjectCode(ctx, parts[1])
		if err != nil {
			return nil, err
		}
		return map[string]any{"tasks": list, "projectCode": parts[1]}, nil
	}
	return nil, errortypes.Validation("invalid project resource: %s", uri)
}

func (p *Provider) task(ctx context.Context, uri string, parts []string) (map[string]any, error) {
	switch {
	case len(parts) == 1:
		page, err := p.tasks.FindAll(ctx, query.Unpaged(), "", "")
		if err != nil {
			return nil, err
		}
		return map[string]any{"tasks": page.Content, "totalElements": page.TotalElements}, nil
	case len(parts) == 2 && parts[1] == "overdue":
		list, err := p.tasks.FindOverdueTasks(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"tasks": list, "count": len(list)}, nil
	case len(parts) == 2 && parts[1] == "upcoming":
		list, err := p.tasks.FindUpcomingTasks(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"tasks": list, "count": len(list)}, nil
	case len(parts) == 2:
		task, err := p.tasks.FindByID(ctx, parts[1])
		if err != nil {
			return nil, err
		}
		if task == nil {
			return nil, errortypes.NotFound("task not found: %s", parts[1])
		}
		return map[string]any{"task": task}, nil
	case len(parts) == 3 && parts[1] == "by-tracking-ref":
		task, err := p.tasks.FindByTrackingReference(ctx, parts[2])
		if err != nil {
			return nil, err
		}
		if task == nil {
			return nil, errortypes.NotFound("task not found with tracking reference: %s", parts[2])
		}
		return map[string]any{"task": task}, nil
	case len(parts) == 3 && parts[1] == "by-status":
		list, err := p.tasks.FindByStatus(ctx, parts[2])
		if err != nil {
			return nil, err
		}
		return map[string]any{"tasks": list, "status": parts[2]}, nil
	}
	return nil, errortypes.Validation("invalid task resource: %s", uri)
}

func (p *Provider) schema(uri string, parts []string) (map[string]any, error) {
	if len(parts) == 2 {
		if s, ok := schemas[parts[1]]; ok {
			return s(), nil
		}
	}
	return nil, errortypes.Validation("invalid schema resource: %s", uri)
}

func (p *Provider) server(uri string, parts []string) (map[string]any, error) {
	if len(parts) == 2 {
		switch parts[1] {
		case "health":
			return map[string]any{"status": "healthy", "timestamp": p.now().UTC()}, nil
		case "info":
			return map[string]any{
				"name":         ServerName,
				"version":      p.version,
				"capabilities": []string{"projects", "tasks", "persons", "schemas", "metrics"},
			}, nil
		}
	}
	return nil, errortypes.Validation("invalid server resource: %s", uri)
}

func (p *Provider) metrics(ctx context.Context, uri string, parts []string) (map[string]any, error) {
	if len(parts) != 3 || parts[2] != "count" {
		return nil, errortypes.Validation("invalid metrics resource: %s", uri)
	}

	var (
		n   int64
		err error
	)
	switch parts[1] {
	case "projects":
		n, err = p.projects.Count(ctx)
	case "tasks":
		n, err = p.tasks.Count(ctx)
	case "persons":
		n, err = p.persons.Count(ctx)
	default:
		return nil, errortypes.Validation("invalid metrics resource: %s", uri)
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{"count": n}, nil
}
