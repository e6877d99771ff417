// Package redis stores documents as JSON strings in Redis. Each collection
// keeps an insertion-ordered id index in a sorted set and one claim key per
// unique field value. Predicates are evaluated in process.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/bugjanitor/go-janitor-backend/internal/docstore"
	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	"github.com/bugjanitor/go-janitor-backend/internal/query"
)

const mgetBatch = 500

type Store struct {
	client *redis.Client
	prefix string

	mu          sync.Mutex
	collections map[string]*Collection
}

// New wraps client. Every key the store writes starts with prefix.
func New(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "janitor"
	}
	return &Store{
		client:      client,
		prefix:      prefix,
		collections: make(map[string]*Collection),
	}
}

func (s *Store) Collection(_ context.Context, name string, opts ...docstore.CollectionOption) (docstore.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.collections[name]; ok {
		return c, nil
	}
	cfg := docstore.ApplyOptions(opts)
	c := &Collection{
		client: s.client,
		name:   name,
		base:   s.prefix + ":" + name,
		unique: cfg.UniqueFields,
	}
	s.collections[name] = c
	return c, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

type Collection struct {
	client *redis.Client
	name   string
	base   string
	unique []string
}

func (c *Collection) Name() string { return c.name }

func (c *Collection) docKey(id string) string { return c.base + ":doc:" + id }
func (c *Collection) idsKey() string          { return c.base + ":ids" }
func (c *Collection) seqKey() string          { return c.base + ":seq" }
func (c *Collection) uniqueKey(field, value string) string {
	return c.base + ":uniq:" + field + ":" + value
}

func (c *Collection) Save(ctx context.Context, id string, doc []byte) error {
	values, err := docstore.UniqueValues(doc, c.unique)
	if err != nil {
		return errortypes.Store("save "+c.name, err)
	}

	previous, err := c.Get(ctx, id)
	isNew := errors.Is(err, errortypes.ErrNotFound)
	if err != nil && !isNew {
		return err
	}

	claimed, err := c.claim(ctx, id, values)
	if err != nil {
		return err
	}

	var stale []string
	if !isNew {
		old, err := docstore.UniqueValues(previous, c.unique)
		if err != nil {
			return errortypes.Store("save "+c.name, err)
		}
		for field, value := range old {
			if values[field] != value {
				stale = append(stale, c.uniqueKey(field, value))
			}
		}
	}

	var seq int64
	if isNew {
		seq, err = c.client.Incr(ctx, c.seqKey()).Result()
		if err != nil {
			c.release(ctx, claimed)
			return errortypes.Store("save "+c.name, err)
		}
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.docKey(id), doc, 0)
		if isNew {
			pipe.ZAddNX(ctx, c.idsKey(), redis.Z{Score: float64(seq), Member: id})
		}
		if len(stale) > 0 {
			pipe.Del(ctx, stale...)
		}
		return nil
	})
	if err != nil {
		c.release(ctx, claimed)
		return errortypes.Store("save "+c.name, fmt.Errorf("failed to write document: %w", err))
	}
	return nil
}

// claim takes the unique keys for values on behalf of id. Keys newly taken
// are returned so a failed save can give them back.
func (c *Collection) claim(ctx context.Context, id string, values map[string]string) ([]string, error) {
	var claimed []string
	for field, value := range values {
		key := c.uniqueKey(field, value)
		ok, err := c.client.SetNX(ctx, key, id, 0).Result()
		if err != nil {
			c.release(ctx, claimed)
			return nil, errortypes.Store("save "+c.name, err)
		}
		if ok {
			claimed = append(claimed, key)
			continue
		}
		owner, err := c.client.Get(ctx, key).Result()
		if err != nil && err != redis.Nil {
			c.release(ctx, claimed)
			return nil, errortypes.Store("save "+c.name, err)
		}
		if owner != id {
			c.release(ctx, claimed)
			return nil, errortypes.Conflict("%s %s %q already exists", c.name, field, value)
		}
	}
	return claimed, nil
}

func (c *Collection) release(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	c.client.Del(ctx, keys...)
}

func (c *Collection) Get(ctx context.Context, id string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.docKey(id)).Bytes()
	if err == redis.Nil {
		return nil, errortypes.NotFound("%s %s not found", c.name, id)
	}
	if err != nil {
		return nil, errortypes.Store("get "+c.name, err)
	}
	return data, nil
}

func (c *Collection) Delete(ctx context.Context, id string) error {
	doc, err := c.Get(ctx, id)
	if errors.Is(err, errortypes.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	values, err := docstore.UniqueValues(doc, c.unique)
	if err != nil {
		return errortypes.Store("delete "+c.name, err)
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, c.docKey(id))
	pipe.ZRem(ctx, c.idsKey(), id)
	for field, value := range values {
		pipe.Del(ctx, c.uniqueKey(field, value))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errortypes.Store("delete "+c.name, err)
	}
	return nil
}

func (c *Collection) Find(ctx context.Context, pred query.Predicate, opts docstore.FindOptions) ([][]byte, error) {
	docs, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	out, err := docstore.Scan(docs, pred, opts)
	if err != nil {
		return nil, errortypes.Store("find "+c.name, err)
	}
	return out, nil
}

func (c *Collection) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	docs, err := c.all(ctx)
	if err != nil {
		return 0, err
	}
	n, err := docstore.CountMatching(docs, pred)
	if err != nil {
		return 0, errortypes.Store("count "+c.name, err)
	}
	return n, nil
}

// all loads every document in insertion order. Ids whose document vanished
// between the index read and the fetch are skipped.
func (c *Collection) all(ctx context.Context) ([][]byte, error) {
	ids, err := c.client.ZRange(ctx, c.idsKey(), 0, -1).Result()
	if err != nil {
		return nil, errortypes.Store("scan "+c.name, err)
	}

	out := make([][]byte, 0, len(ids))
	for start := 0; start < len(ids); start += mgetBatch {
		end := min(start+mgetBatch, len(ids))
		keys := make([]string, 0, end-start)
		for _, id := range ids[start:end] {
			keys = append(keys, c.docKey(id))
		}
		vals, err := c.client.MGet(ctx, keys...).Result()
		if err != nil {
			return nil, errortypes.Store("scan "+c.name, err)
		}
		for _, v := range vals {
			if s, ok := v.(string); ok {
				out = append(out, []byte(s))
			}
		}
	}
	return out, nil
}
