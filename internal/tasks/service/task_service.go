package service

import (
	"context"
	"time"

	"github.com/bugjanitor/go-janitor-backend/internal/docstore"
	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	"github.com/bugjanitor/go-janitor-backend/internal/query"
	"github.com/bugjanitor/go-janitor-backend/internal/tasks/domain"
)

type TaskRepository = docstore.Repository[domain.Task, *domain.Task]

// NewTaskRepository opens the task collection with trackingReference unique.
func NewTaskRepository(ctx context.Context, store docstore.Store) (*TaskRepository, error) {
	coll, err := store.Collection(ctx, domain.Collection, docstore.WithUniqueFields(domain.FieldTrackingReference))
	if err != nil {
		return nil, err
	}
	return docstore.NewRepository[domain.Task](coll), nil
}

type Option func(*TaskService)

// WithClock replaces time.Now for creation dates, update dates and the
// overdue and upcoming windows.
func WithClock(now func() time.Time) Option {
	return func(s *TaskService) { s.now = now }
}

// TaskService handles task-related business logic
type TaskService struct {
	repo *TaskRepository
	now  func() time.Time
}

func NewTaskService(repo *TaskRepository, opts ...Option) *TaskService {
	s := &TaskService{repo: repo, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Create stores a new task, stamping its creation date when unset.
func (s *TaskService) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	if t.CreationDate.IsZero() {
		t.CreationDate = s.now()
	}
	t.Normalize()

	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// FindByID returns nil when no task has the id.
func (s *TaskService) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id)
}

// Update merges patch into the stored task and refreshes its update date.
func (s *TaskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errortypes.NotFound("task not found with id: %s", id)
	}

	t.Apply(patch)
	now := s.now().UTC()
	t.UpdateDate = &now

	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

// FindAll returns one page of the tasks matching search and filter.
func (s *TaskService) FindAll(ctx context.Context, req query.PageRequest, search, filter string) (query.Page[domain.Task], error) {
	return s.repo.FindPage(ctx, query.BuildCriteria(search, filter, domain.SearchFields...), req)
}

func (s *TaskService) FindByProjectCode(ctx context.Context, code string) ([]domain.Task, error) {
	return s.repo.Find(ctx, query.Eq(domain.FieldProjectCode, code), docstore.FindOptions{})
}

func (s *TaskService) FindByStatus(ctx context.Context, status string) ([]domain.Task, error) {
	return s.repo.Find(ctx, query.Eq(domain.FieldStatus, status), docstore.FindOptions{})
}

// FindOverdueTasks returns open tasks whose deadline has passed. Status is
// not consulted.
func (s *TaskService) FindOverdueTasks(ctx context.Context) ([]domain.Task, error) {
	now := s.now()
	return s.repo.Find(ctx, query.And(
		query.Lt(domain.FieldDeadLine, now),
		query.Missing(domain.FieldDoneDate),
	), docstore.FindOptions{})
}

// FindUpcomingTasks returns open tasks due within the next UpcomingWindow.
func (s *TaskService) FindUpcomingTasks(ctx context.Context) ([]domain.Task, error) {
	now := s.now()
	return s.repo.Find(ctx, query.And(
		query.Gte(domain.FieldDeadLine, now),
		query.Lte(domain.FieldDeadLine, now.Add(domain.UpcomingWindow)),
		query.Missing(domain.FieldDoneDate),
	), docstore.FindOptions{})
}

func (s *TaskService) FindByTrackingReference(ctx context.Context, ref string) (*domain.Task, error) {
	return s.repo.FindOne(ctx, domain.FieldTrackingReference, ref)
}

func (s *TaskService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, query.All())
}
