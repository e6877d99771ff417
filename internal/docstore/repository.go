package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	"github.com/bugjanitor/go-janitor-backend/internal/query"
)

// Entity is implemented by the pointer type of every stored document.
type Entity interface {
	GetID() string
	SetID(id string)
}

// Repository maps a Collection onto a typed entity.
type Repository[T any, PT interface {
	*T
	Entity
}] struct {
	coll  Collection
	newID func() string
}

// NewRepository creates a typed repository over coll. Ids are generated with
// uuid when an entity is saved without one.
func NewRepository[T any, PT interface {
	*T
	Entity
}](coll Collection) *Repository[T, PT] {
	return &Repository[T, PT]{
		coll:  coll,
		newID: func() string { return uuid.New().String() },
	}
}

func (r *Repository[T, PT]) Collection() Collection { return r.coll }

// Save inserts or replaces e, assigning an id first if it has none.
func (r *Repository[T, PT]) Save(ctx context.Context, e PT) error {
	if e.GetID() == "" {
		e.SetID(r.newID())
	}
	doc, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal %s document: %w", r.coll.Name(), err)
	}
	return r.coll.Save(ctx, e.GetID(), doc)
}

// FindByID returns nil without an error when no document has the id.
func (r *Repository[T, PT]) FindByID(ctx context.Context, id string) (PT, error) {
	raw, err := r.coll.Get(ctx, id)
	if errors.Is(err, errortypes.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.decode(raw)
}

func (r *Repository[T, PT]) DeleteByID(ctx context.Context, id string) error {
	return r.coll.Delete(ctx, id)
}

func (r *Repository[T, PT]) Find(ctx context.Context, pred query.Predicate, opts FindOptions) ([]T, error) {
	raws, err := r.coll.Find(ctx, pred, opts)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		e, err := r.decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *Repository[T, PT]) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	return r.coll.Count(ctx, pred)
}

// FindOne returns the first document, in insertion order, whose field equals
// value, or nil when there is none.
func (r *Repository[T, PT]) FindOne(ctx context.Context, field, value string) (PT, error) {
	found, err := r.Find(ctx, query.Eq(field, value), FindOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// FindPage fetches one window of the documents matching pred and, as a
// separate store call, counts every match. The two calls are not atomic: a
// concurrent write can shift the window relative to the reported total.
func (r *Repository[T, PT]) FindPage(ctx context.Context, pred query.Predicate, req query.PageRequest) (query.Page[T], error) {
	opts := FindOptions{Sort: req.Sort}
	if req.IsPaged() {
		opts.Skip = req.Offset()
		opts.Limit = req.Size
	}

	content, err := r.Find(ctx, pred, opts)
	if err != nil {
		return query.Page[T]{}, err
	}

	total, err := r.Count(ctx, pred)
	if err != nil {
		return query.Page[T]{}, err
	}

	return query.NewPage(content, req, total), nil
}

func (r *Repository[T, PT]) decode(raw []byte) (PT, error) {
	e := PT(new(T))
	if err := json.Unmarshal(raw, e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s document: %w", r.coll.Name(), err)
	}
	return e, nil
}
