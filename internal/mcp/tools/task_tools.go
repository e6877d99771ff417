package tools

import (
	"context"
	"strings"

	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	"github.com/bugjanitor/go-janitor-backend/internal/tasks/domain"
)

func taskProps() map[string]any {
	return map[string]any{
		"title":             prop("string", "Short title"),
		"description":       prop("string", "Details"),
		"projectCode":       prop("string", "Code of the owning project"),
		"status":            prop("string", "Free-form status, e.g. TODO, IN_PROGRESS, DONE"),
		"plannedStart":      prop("string", "Planned start, RFC 3339"),
		"deadLine":          prop("string", "Deadline, RFC 3339"),
		"doneDate":          prop("string", "Completion date, RFC 3339"),
		"estimate":          prop("string", "Free-form estimate, e.g. 2d"),
		"trackingReference": prop("string", "Unique external reference"),
	}
}

func (r *Registry) registerTaskTools() {
	r.register(Definition{
		Name:        "create-task",
		Description: "Creates a task. title is required; dates are RFC 3339 strings.",
		InputSchema: objectSchema(taskProps(), "title"),
	}, r.createTask)

	r.register(Definition{
		Name:        "find-task-by-id",
		Description: "Retrieves a task by its id.",
		InputSchema: objectSchema(map[string]any{"id": prop("string", "Task id")}, "id"),
	}, r.findTaskByID)

	r.register(Definition{
		Name:        "find-task-by-tracking-reference",
		Description: "Retrieves a task by its tracking reference.",
		InputSchema: objectSchema(map[string]any{"trackingReference": prop("string", "Tracking reference")}, "trackingReference"),
	}, r.findTaskByTrackingReference)

	updateProps := taskProps()
	updateProps["id"] = prop("string", "Task id")
	r.register(Definition{
		Name:        "update-task",
		Description: "Updates an existing task. id is required; every other field is changed only when given.",
		InputSchema: objectSchema(updateProps, "id"),
	}, r.updateTask)

	r.register(Definition{
		Name:        "delete-task",
		Description: "Permanently removes a task. Fails when no task has the id.",
		InputSchema: objectSchema(map[string]any{"id": prop("string", "Task id")}, "id"),
	}, r.deleteTask)

	r.register(Definition{
		Name:        "find-tasks",
		Description: "Lists tasks one page at a time with optional search and filter.",
		InputSchema: objectSchema(pageProps("title, projectCode and description")),
	}, r.findTasks)

	r.register(Definition{
		Name:        "find-overdue-tasks",
		Description: "Lists open tasks whose deadline has passed.",
		InputSchema: objectSchema(map[string]any{}),
	}, r.findOverdueTasks)

	r.register(Definition{
		Name:        "find-upcoming-tasks",
		Description: "Lists open tasks due within the next 7 days.",
		InputSchema: objectSchema(map[string]any{}),
	}, r.findUpcomingTasks)

	r.register(Definition{
		Name:        "find-tasks-by-status",
		Description: "Lists tasks with the given status.",
		InputSchema: objectSchema(map[string]any{"status": prop("string", "Status")}, "status"),
	}, r.findTasksByStatus)

	r.register(Definition{
		Name:        "find-tasks-by-project",
		Description: "Lists tasks of the project with the given code.",
		InputSchema: objectSchema(map[string]any{"projectCode": prop("string", "Project code")}, "projectCode"),
	}, r.findTasksByProject)
}

func (r *Registry) createTask(ctx context.Context, args map[string]any) (any, error) {
	var t domain.Task
	if err := decode(args, &t); err != nil {
		return nil, err
	}
	if strings.TrimSpace(t.Title) == "" {
		return nil, errortypes.Validation("task title is required")
	}
	return r.tasks.Create(ctx, &t)
}

func (r *Registry) findTaskByID(ctx context.Context, args map[string]any) (any, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	t, err := r.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return Message{Message: "Task not found with id: " + id}, nil
	}
	return t, nil
}

func (r *Registry) findTaskByTrackingReference(ctx context.Context, args map[string]any) (any, error) {
	ref, err := requireString(args, "trackingReference")
	if err != nil {
		return nil, err
	}
	t, err := r.tasks.FindByTrackingReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return Message{Message: "Task not found with tracking reference: " + ref}, nil
	}
	return t, nil
}

func (r *Registry) updateTask(ctx context.Context, args map[string]any) (any, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	var patch domain.TaskPatch
	if err := decode(args, &patch); err != nil {
		return nil, err
	}
	return r.tasks.Update(ctx, id, patch)
}

func (r *Registry) deleteTask(ctx context.Context, args map[string]any) (any, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	t, err := r.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errortypes.NotFound("task not found with id: %s", id)
	}
	if err := r.tasks.Delete(ctx, id); err != nil {
		return nil, err
	}
	return Message{Message: "Task deleted successfully: " + id}, nil
}

func (r *Registry) findTasks(ctx context.Context, args map[string]any) (any, error) {
	a, req, err := decodePage(args)
	if err != nil {
		return nil, err
	}
	return r.tasks.FindAll(ctx, req, a.Search, a.Filter)
}

func (r *Registry) findOverdueTasks(ctx context.Context, _ map[string]any) (any, error) {
	return r.tasks.FindOverdueTasks(ctx)
}

func (r *Registry) findUpcomingTasks(ctx context.Context, _ map[string]any) (any, error) {
	return r.tasks.FindUpcomingTasks(ctx)
}

func (r *Registry) findTasksByStatus(ctx context.Context, args map[string]any) (any, error) {
	status, err := requireString(args, "status")
	if err != nil {
		return nil, err
	}
	return r.tasks.FindByStatus(ctx, status)
}

func (r *Registry) findTasksByProject(ctx context.Context, args map[string]any) (any, error) {
	code, err := requireString(args, "projectCode")
	if err != nil {
		return nil, err
	}
	return r.tasks.FindByProjectCode(ctx, code)
}
