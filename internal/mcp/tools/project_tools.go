package tools

import (
	"context"

	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	"github.com/bugjanitor/go-janitor-backend/internal/projects/domain"
)

func (r *Registry) registerProjectTools() {
	r.register(Definition{
		Name:        "create-project",
		Description: "Creates a new project. Fields: projectName (required, display name), projectCode (unique short code), description. Returns the created project with its generated id.",
		InputSchema: objectSchema(map[string]any{
			"projectName": prop("string", "Display name"),
			"projectCode": prop("string", "Unique project code"),
			"description": prop("string", "Project details"),
		}, "projectName"),
	}, r.createProject)

	r.register(Definition{
		Name:        "find-project-by-id",
		Description: "Retrieves a project by its id.",
		InputSchema: objectSchema(map[string]any{"id": prop("string", "Project id")}, "id"),
	}, r.findProjectByID)

	r.register(Definition{
		Name:        "update-project",
		Description: "Updates an existing project. id is required; projectName, projectCode and description are changed only when given.",
		InputSchema: objectSchema(map[string]any{
			"id":          prop("string", "Project id"),
			"projectName": prop("string", "Display name"),
			"projectCode": prop("string", "Unique project code"),
			"description": prop("string", "Project details"),
		}, "id"),
	}, r.updateProject)

	r.register(Definition{
		Name:        "delete-project",
		Description: "Permanently removes a project. Fails when no project has the id.",
		InputSchema: objectSchema(map[string]any{"id": prop("string", "Project id")}, "id"),
	}, r.deleteProject)

	r.register(Definition{
		Name:        "find-projects",
		Description: "Lists projects one page at a time with optional search and filter. Returns content, totalElements, totalPages, currentPage, size, hasNext and hasPrevious.",
		InputSchema: objectSchema(pageProps("projectName, projectCode and description")),
	}, r.findProjects)

	r.register(Definition{
		Name:        "find-project-by-code",
		Description: "Retrieves a project by its project code.",
		InputSchema: objectSchema(map[string]any{"projectCode": prop("string", "Project code")}, "projectCode"),
	}, r.findProjectByCode)

	r.register(Definition{
		Name:        "find-project-by-name",
		Description: "Retrieves a project by its exact project name.",
		InputSchema: objectSchema(map[string]any{"projectName": prop("string", "Project name")}, "projectName"),
	}, r.findProjectByName)
}

func (r *Registry) createProject(ctx context.Context, args map[string]any) (any, error) {
	var p domain.Project
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	return r.projects.Create(ctx, &p)
}

func (r *Registry) findProjectByID(ctx context.Context, args map[string]any) (any, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	p, err := r.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return Message{Message: "Project not found with id: " + id}, nil
	}
	return p, nil
}

func (r *Registry) updateProject(ctx context.Context, args map[string]any) (any, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	var patch domain.ProjectPatch
	if err := decode(args, &patch); err != nil {
		return nil, err
	}
	return r.projects.Update(ctx, id, patch)
}

func (r *Registry) deleteProject(ctx context.Context, args map[string]any) (any, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	p, err := r.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errortypes.NotFound("project not found with id: %s", id)
	}
	if err := r.projects.Delete(ctx, id); err != nil {
		return nil, err
	}
	return Message{Message: "Project deleted successfully: " + id}, nil
}

func (r *Registry) findProjects(ctx context.Context, args map[string]any) (any, error) {
	a, req, err := decodePage(args)
	if err != nil {
		return nil, err
	}
	return r.projects.FindAll(ctx, req, a.Search, a.Filter)
}

func (r *Registry) findProjectByCode(ctx context.Context, args map[string]any) (any, error) {
	code, err := requireString(args, "projectCode")
	if err != nil {
		return nil, err
	}
	p, err := r.projects.FindByProjectCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return Message{Message: "Project not found with code: " + code}, nil
	}
	return p, nil
}

func (r *Registry) findProjectByName(ctx context.Context, args map[string]any) (any, error) {
	name, err := requireString(args, "projectName")
	if err != nil {
		return nil, err
	}
	p, err := r.projects.FindByProjectName(ctx, name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return Message{Message: "Project not found with name: " + name}, nil
	}
	return p, nil
}
