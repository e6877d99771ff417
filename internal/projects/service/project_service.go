package service

import (
	"context"
	"strings"

	"github.com/bugjanitor/go-janitor-backend/internal/docstore"
	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	"github.com/bugjanitor/go-janitor-backend/internal/projects/domain"
	"github.com/bugjanitor/go-janitor-backend/internal/query"
)

type ProjectRepository = docstore.Repository[domain.Project, *domain.Project]

// NewProjectRepository opens the project collection with projectCode unique.
func NewProjectRepository(ctx context.Context, store docstore.Store) (*ProjectRepository, error) {
	coll, err := store.Collection(ctx, domain.Collection, docstore.WithUniqueFields(domain.FieldProjectCode))
	if err != nil {
		return nil, err
	}
	return docstore.NewRepository[domain.Project](coll), nil
}

// ProjectService handles project-related business logic
type ProjectService struct {
	repo *ProjectRepository
}

// NewProjectService creates a new project service
func NewProjectService(repo *ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// Create stores a new project. The store assigns an id when p has none.
func (s *ProjectService) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID returns nil when no project has the id.
func (s *ProjectService) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

// Update merges patch into the stored project. The id never changes.
func (s *ProjectService) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errortypes.NotFound("project not found with id: %s", id)
	}

	p.Apply(patch)
	if err := validate(p); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

// FindAll returns one page of the projects matching search and filter.
func (s *ProjectService) FindAll(ctx context.Context, req query.PageRequest, search, filter string) (query.Page[domain.Project], error) {
	return s.repo.FindPage(ctx, query.BuildCriteria(search, filter, domain.SearchFields...), req)
}

func (s *ProjectService) FindByProjectCode(ctx context.Context, code string) (*domain.Project, error) {
	return s.repo.FindOne(ctx, domain.FieldProjectCode, code)
}

func (s *ProjectService) FindByProjectName(ctx context.Context, name string) (*domain.Project, error) {
	return s.repo.FindOne(ctx, domain.FieldProjectName, name)
}

func (s *ProjectService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, query.All())
}

func validate(p *domain.Project) error {
	if strings.TrimSpace(p.ProjectName) == "" {
		return errortypes.Validation("project name is required")
	}
	return nil
}
