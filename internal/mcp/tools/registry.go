// Package tools exposes the entity services as named tools an AI agent can
// call with a JSON object of arguments.
package tools

import (
	"context"

	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	persons "github.com/bugjanitor/go-janitor-backend/internal/persons/service"
	projects "github.com/bugjanitor/go-janitor-backend/internal/projects/service"
	tasks "github.com/bugjanitor/go-janitor-backend/internal/tasks/service"
)

// Definition describes a tool and the arguments it accepts.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// HandlerFunc is the signature every tool implementation must match.
type HandlerFunc func(ctx context.Context, args map[string]any) (any, error)

// Message is the result of tools that report an outcome rather than data.
type Message struct {
	Message string `json:"message"`
}

type registeredTool struct {
	def    Definition
	invoke HandlerFunc
}

// Registry holds tool definitions and their implementations.
type Registry struct {
	projects *projects.ProjectService
	tasks    *tasks.TaskService
	persons  *persons.PersonService

	tools map[string]registeredTool
	order []string
}

func NewRegistry(p *projects.ProjectService, t *tasks.TaskService, ps *persons.PersonService) *Registry {
	r := &Registry{
		projects: p,
		tasks:    t,
		persons:  ps,
		tools:    make(map[string]registeredTool),
	}
	r.registerProjectTools()
	r.registerTaskTools()
	r.registerPersonTools()
	return r
}

func (r *Registry) register(def Definition, fn HandlerFunc) {
	if _, exists := r.tools[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.tools[def.Name] = registeredTool{def: def, invoke: fn}
}

// ListTools returns the definitions in registration order.
func (r *Registry) ListTools() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].def)
	}
	return defs
}

func (r *Registry) HasTool(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// CallTool runs the named tool. A nil args map is treated as empty.
func (r *Registry) CallTool(ctx context.Context, name string, args map[string]any) (any, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, errortypes.NotFound("unknown tool: %s", name)
	}
	if args == nil {
		args = map[string]any{}
	}
	return tool.invoke(ctx, args)
}
