// Package memory is the in-process docstore driver used for development and
// tests.
package memory

import (
	"context"
	"sync"

	"github.com/bugjanitor/go-janitor-backend/internal/docstore"
	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	"github.com/bugjanitor/go-janitor-backend/internal/query"
)

type Store struct {
	mu          sync.Mutex
	collections map[string]*Collection
}

func New() *Store {
	return &Store{collections: make(map[string]*Collection)}
}

func (s *Store) Collection(_ context.Context, name string, opts ...docstore.CollectionOption) (docstore.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.collections[name]; ok {
		return c, nil
	}
	cfg := docstore.ApplyOptions(opts)
	c := &Collection{
		name:   name,
		unique: cfg.UniqueFields,
		docs:   make(map[string][]byte),
	}
	s.collections[name] = c
	return c, nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// Collection keeps documents in a map with a separate insertion order.
type Collection struct {
	name   string
	unique []string

	mu    sync.RWMutex
	docs  map[string][]byte
	order []string
}

func (c *Collection) Name() string { return c.name }

func (c *Collection) Save(_ context.Context, id string, doc []byte) error {
	values, err := docstore.UniqueValues(doc, c.unique)
	if err != nil {
		return errortypes.Store("save "+c.name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for field, value := range values {
		if owner, ok := c.ownerOf(field, value); ok && owner != id {
			return errortypes.Conflict("%s %s %q already exists", c.name, field, value)
		}
	}

	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	stored := make([]byte, len(doc))
	copy(stored, doc)
	c.docs[id] = stored
	return nil
}

func (c *Collection) Get(_ context.Context, id string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.docs[id]
	if !ok {
		return nil, errortypes.NotFound("%s %s not found", c.name, id)
	}
	return doc, nil
}

func (c *Collection) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return nil
	}
	delete(c.docs, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *Collection) Find(_ context.Context, pred query.Predicate, opts docstore.FindOptions) ([][]byte, error) {
	docs, err := docstore.Scan(c.snapshot(), pred, opts)
	if err != nil {
		return nil, errortypes.Store("find "+c.name, err)
	}
	return docs, nil
}

func (c *Collection) Count(_ context.Context, pred query.Predicate) (int64, error) {
	n, err := docstore.CountMatching(c.snapshot(), pred)
	if err != nil {
		return 0, errortypes.Store("count "+c.name, err)
	}
	return n, nil
}

func (c *Collection) snapshot() [][]byte {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([][]byte, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.docs[id])
	}
	return out
}

// ownerOf must be called with c.mu held.
func (c *Collection) ownerOf(field, value string) (string, bool) {
	for _, id := range c.order {
		values, err := docstore.UniqueValues(c.docs[id], []string{field})
		if err != nil {
			continue
		}
		if values[field] == value {
			return id, true
		}
	}
	return "", false
}
