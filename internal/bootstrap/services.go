package bootstrap

import (
	"context"
	"fmt"

	"github.com/bugjanitor/go-janitor-backend/internal/docstore"
	persons "github.com/bugjanitor/go-janitor-backend/internal/persons/service"
	projects "github.com/bugjanitor/go-janitor-backend/internal/projects/service"
	tasks "github.com/bugjanitor/go-janitor-backend/internal/tasks/service"
)

type Services struct {
	Projects *projects.ProjectService
	Tasks    *tasks.TaskService
	Persons  *persons.PersonService
}

// NewServices opens the entity collections on store and builds the services.
func NewServices(ctx context.Context, store docstore.Store) (*Services, error) {
	projectRepo, err := projects.NewProjectRepository(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("project collection: %w", err)
	}
	taskRepo, err := tasks.NewTaskRepository(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("task collection: %w", err)
	}
	personRepo, err := persons.NewPersonRepository(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("person collection: %w", err)
	}

	return &Services{
		Projects: projects.NewProjectService(projectRepo),
		Tasks:    tasks.NewTaskService(taskRepo),
		Persons:  persons.NewPersonService(personRepo),
	}, nil
}
