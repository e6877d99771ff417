// Package docstore is the document-store abstraction the entity services run
// on: named collections of JSON documents keyed by id, queried with
// query.Predicate values. Drivers live in the memory, redis and postgres
// subpackages.
package docstore

import (
	"context"

	"github.com/bugjanitor/go-janitor-backend/internal/query"
)

// Store hands out collections and reports connectivity.
type Store interface {
	// Collection returns the named collection, creating its backing
	// structures (tables, indexes) on first use.
	Collection(ctx context.Context, name string, opts ...CollectionOption) (Collection, error)
	Ping(ctx context.Context) error
	Close() error
}

// Collection is the minimal surface every driver implements.
//
// Get reports errortypes.ErrNotFound for an unknown id. Save is an
// insert-or-replace and reports errortypes.ErrConflict when a unique field
// value is already owned by another document. Delete of an unknown id is not
// an error. Find and Count must agree on which documents a predicate selects.
type Collection interface {
	Name() string
	Save(ctx context.Context, id string, doc []byte) error
	Get(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, pred query.Predicate, opts FindOptions) ([][]byte, error)
	Count(ctx context.Context, pred query.Predicate) (int64, error)
}

// FindOptions windows and orders a Find. Limit 0 means no limit. Without
// Sort, documents come back in insertion order.
type FindOptions struct {
	Skip  int
	Limit int
	Sort  []query.SortField
}

// CollectionConfig is the resolved set of collection options.
type CollectionConfig struct {
	UniqueFields []string
}

type CollectionOption func(*CollectionConfig)

// WithUniqueFields declares fields whose non-empty values must be unique
// across the collection.
func WithUniqueFields(fields ...string) CollectionOption {
	return func(c *CollectionConfig) {
		c.UniqueFields = append(c.UniqueFields, fields...)
	}
}

func ApplyOptions(opts []CollectionOption) CollectionConfig {
	var cfg CollectionConfig
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}
