// Package postgres stores each collection as a table of jsonb documents and
// translates predicates to SQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/bugjanitor/go-janitor-backend/internal/docstore"
	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	"github.com/bugjanitor/go-janitor-backend/internal/query"
)

const uniqueViolation = "23505"

var tableName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

type Store struct {
	db      *sql.DB
	onClose func()

	mu          sync.Mutex
	collections map[string]*Collection
}

// New wraps an open database. onClose, when set, runs after the database is
// closed (the pgx pool behind an OpenDBFromPool handle, for instance).
func New(db *sql.DB, onClose func()) *Store {
	return &Store{
		db:          db,
		onClose:     onClose,
		collections: make(map[string]*Collection),
	}
}

// Collection creates the collection table and its unique indexes when they
// do not exist yet.
func (s *Store) Collection(ctx context.Context, name string, opts ...docstore.CollectionOption) (docstore.Collection, error) {
	if !tableName.MatchString(name) {
		return nil, fmt.Errorf("invalid collection name %q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.collections[name]; ok {
		return c, nil
	}

	cfg := docstore.ApplyOptions(opts)
	table := pq.QuoteIdentifier(name)

	ddl := []string{fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  id  text PRIMARY KEY,
  seq bigserial NOT NULL,
  doc jsonb NOT NULL
)`, table)}
	for _, f := range cfg.UniqueFields {
		ddl = append(ddl, fmt.Sprintf(
			`CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s ((doc->>%s)) WHERE coalesce(doc->>%s, '') <> ''`,
			pq.QuoteIdentifier(name+"_"+f+"_key"), table, pq.QuoteLiteral(f), pq.QuoteLiteral(f),
		))
	}
	for _, stmt := range ddl {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return nil, errortypes.Store("migrate "+name, err)
		}
	}

	c := &Collection{db: s.db, name: name, table: table}
	s.collections[name] = c
	return c, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	err := s.db.Close()
	if s.onClose != nil {
		s.onClose()
	}
	return err
}

type Collection struct {
	db    *sql.DB
	name  string
	table string
}

func (c *Collection) Name() string { return c.name }

func (c *Collection) Save(ctx context.Context, id string, doc []byte) error {
	stmt := fmt.Sprintf(`
INSERT INTO %s (id, doc) VALUES ($1, $2::jsonb)
ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc`, c.table)

	if _, err := c.db.ExecContext(ctx, stmt, id, string(doc)); err != nil {
		if isUniqueViolation(err) {
			return errortypes.Conflict("%s with the same unique value already exists", c.name)
		}
		return errortypes.Store("save "+c.name, err)
	}
	return nil
}

func (c *Collection) Get(ctx context.Context, id string) ([]byte, error) {
	var doc string
	err := c.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT doc::text FROM %s WHERE id = $1`, c.table), id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errortypes.NotFound("%s %s not found", c.name, id)
	}
	if err != nil {
		return nil, errortypes.Store("get "+c.name, err)
	}
	return []byte(doc), nil
}

func (c *Collection) Delete(ctx context.Context, id string) error {
	if _, err := c.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, c.table), id); err != nil {
		return errortypes.Store("delete "+c.name, err)
	}
	return nil
}

func (c *Collection) Find(ctx context.Context, pred query.Predicate, opts docstore.FindOptions) ([][]byte, error) {
	var b builder
	where, err := b.where(pred)
	if err != nil {
		return nil, errortypes.Store("find "+c.name, err)
	}
	stmt := fmt.Sprintf(`SELECT doc::text FROM %s WHERE %s ORDER BY %s%s`,
		c.table, where, b.orderBy(opts.Sort), b.window(opts))

	rows, err := c.db.QueryContext(ctx, stmt, b.args...)
	if err != nil {
		return nil, errortypes.Store("find "+c.name, err)
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, errortypes.Store("find "+c.name, err)
		}
		out = append(out, []byte(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, errortypes.Store("find "+c.name, err)
	}
	return out, nil
}

func (c *Collection) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	var b builder
	where, err := b.where(pred)
	if err != nil {
		return 0, errortypes.Store("count "+c.name, err)
	}

	var n int64
	stmt := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, c.table, where)
	if err := c.db.QueryRowContext(ctx, stmt, b.args...).Scan(&n); err != nil {
		return 0, errortypes.Store("count "+c.name, err)
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
