package service

import (
	"context"
	"strings"
	"time"

	"github.com/bugjanitor/go-janitor-backend/internal/docstore"
	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	"github.com/bugjanitor/go-janitor-backend/internal/persons/domain"
	"github.com/bugjanitor/go-janitor-backend/internal/query"
)

type PersonRepository = docstore.Repository[domain.Person, *domain.Person]

// NewPersonRepository opens the person collection with email unique.
func NewPersonRepository(ctx context.Context, store docstore.Store) (*PersonRepository, error) {
	coll, err := store.Collection(ctx, domain.Collection, docstore.WithUniqueFields(domain.FieldEmail))
	if err != nil {
		return nil, err
	}
	return docstore.NewRepository[domain.Person](coll), nil
}

type Option func(*PersonService)

func WithClock(now func() time.Time) Option {
	return func(s *PersonService) { s.now = now }
}

type PersonService struct {
	repo *PersonRepository
	now  func() time.Time
}

func NewPersonService(repo *PersonRepository, opts ...Option) *PersonService {
	s := &PersonService{repo: repo, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *PersonService) Create(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	if p.CreationDate.IsZero() {
		p.CreationDate = s.now()
	}
	p.CreationDate = p.CreationDate.UTC()

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID returns nil when no person has the id.
func (s *PersonService) FindByID(ctx context.Context, id string) (*domain.Person, error) {
	return s.repo.FindByID(ctx, id)
}

// Update merges patch into the stored person and refreshes its update date.
func (s *PersonService) Update(ctx context.Context, id string, patch domain.PersonPatch) (*domain.Person, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errortypes.NotFound("person not found with id: %s", id)
	}

	p.Apply(patch)
	if err := validate(p); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	p.UpdateDate = &now

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PersonService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

// FindAll returns one page of the persons matching search and filter.
func (s *PersonService) FindAll(ctx context.Context, req query.PageRequest, search, filter string) (query.Page[domain.Person], error) {
	return s.repo.FindPage(ctx, query.BuildCriteria(search, filter, domain.SearchFields...), req)
}

// List returns every person in insertion order.
func (s *PersonService) List(ctx context.Context) ([]domain.Person, error) {
	return s.repo.Find(ctx, query.All(), docstore.FindOptions{})
}

func (s *PersonService) FindByEmail(ctx context.Context, email string) (*domain.Person, error) {
	return s.repo.FindOne(ctx, domain.FieldEmail, email)
}

func (s *PersonService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, query.All())
}

func validate(p *domain.Person) error {
	if strings.TrimSpace(p.Email) == "" {
		return errortypes.Validation("email is required")
	}
	return nil
}
