package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bugjanitor/go-janitor-backend/config"
	"github.com/bugjanitor/go-janitor-backend/internal/docstore"
	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	"github.com/bugjanitor/go-janitor-backend/internal/query"
)

func setupCollection(t *testing.T) (docstore.Collection, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "task"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE UNIQUE INDEX IF NOT EXISTS "task_trackingReference_key"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := New(db, nil)
	coll, err := store.Collection(context.Background(), "task", docstore.WithUniqueFields("trackingReference"))
	require.NoError(t, err)
	return coll, mock, db
}

func TestBuilder_Where(t *testing.T) {
	t.Run("match all", func(t *testing.T) {
		var b builder
		got, err := b.where(query.All())
		require.NoError(t, err)
		assert.Equal(t, "TRUE", got)
		assert.Empty(t, b.args)
	})

	t.Run("search and filter", func(t *testing.T) {
		var b builder
		got, err := b.where(query.BuildCriteria("bug", "status:DONE", "title", "description"))
		require.NoError(t, err)
		assert.Equal(t, "((doc->>$1::text ~* $2) OR (doc->>$3::text ~* $4)) AND (doc->>$5::text = $6)", got)
		assert.Equal(t, []any{"title", "bug", "description", "bug", "status", "DONE"}, b.args)
	})

	t.Run("overdue", func(t *testing.T) {
		now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		var b builder
		got, err := b.where(query.And(query.Lt("deadLine", now), query.Missing("doneDate")))
		require.NoError(t, err)
		assert.Equal(t, "((doc->>$1::text)::timestamptz < $2::timestamptz) AND (doc->>$3::text IS NULL)", got)
		assert.Equal(t, []any{"deadLine", now, "doneDate"}, b.args)
	})

	t.Run("empty or matches nothing", func(t *testing.T) {
		var b builder
		got, err := b.where(query.Or())
		require.NoError(t, err)
		assert.Equal(t, "FALSE", got)
	})

	t.Run("unsupported op", func(t *testing.T) {
		var b builder
		_, err := b.where(query.Predicate{Op: "near"})
		assert.Error(t, err)
	})
}

func TestBuilder_OrderAndWindow(t *testing.T) {
	var b builder
	order := b.orderBy([]query.SortField{{Field: "title"}, {Field: "deadLine", Desc: true}})
	assert.Equal(t, `(doc->>$1::text) COLLATE "C" ASC NULLS FIRST, (doc->>$2::text) COLLATE "C" DESC NULLS LAST, seq`, order)
	assert.Equal(t, " LIMIT $3 OFFSET $4", b.window(docstore.FindOptions{Skip: 20, Limit: 10}))
	assert.Equal(t, []any{"title", "deadLine", 10, 20}, b.args)

	var plain builder
	assert.Equal(t, "seq", plain.orderBy(nil))
	assert.Equal(t, "", plain.window(docstore.FindOptions{}))
}

func TestCollection_Save(t *testing.T) {
	coll, mock, db := setupCollection(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("upserts the document", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO "task"`).
			WithArgs("t1", `{"id":"t1"}`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, coll.Save(ctx, "t1", []byte(`{"id":"t1"}`)))
	})

	t.Run("unique violation from pgx is a conflict", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO "task"`).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := coll.Save(ctx, "t2", []byte(`{"id":"t2","trackingReference":"JIRA-1"}`))
		assert.True(t, errors.Is(err, errortypes.ErrConflict))
	})

	t.Run("unique violation from lib/pq is a conflict", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO "task"`).
			WillReturnError(&pq.Error{Code: "23505"})

		err := coll.Save(ctx, "t3", []byte(`{"id":"t3","trackingReference":"JIRA-1"}`))
		assert.True(t, errors.Is(err, errortypes.ErrConflict))
	})

	t.Run("other failures are store errors", func(t *testing.T) {
		boom := errors.New("connection reset")
		mock.ExpectExec(`INSERT INTO "task"`).WillReturnError(boom)

		err := coll.Save(ctx, "t4", []byte(`{"id":"t4"}`))
		assert.True(t, errors.Is(err, errortypes.ErrStore))
		assert.True(t, errors.Is(err, boom))
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollection_Get(t *testing.T) {
	coll, mock, db := setupCollection(t)
	defer db.Close()
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc::text FROM "task" WHERE id = $1`)).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow(`{"id":"t1"}`))

	doc, err := coll.Get(ctx, "t1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"t1"}`, string(doc))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc::text FROM "task" WHERE id = $1`)).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err = coll.Get(ctx, "nope")
	assert.True(t, errors.Is(err, errortypes.ErrNotFound))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollection_FindAndCount(t *testing.T) {
	coll, mock, db := setupCollection(t)
	defer db.Close()
	ctx := context.Background()

	pred := query.BuildCriteria("", "status:DONE")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc::text FROM "task" WHERE doc->>$1::text = $2 ORDER BY seq LIMIT $3 OFFSET $4`)).
		WithArgs("status", "DONE", 2, 2).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).
			AddRow(`{"id":"c","status":"DONE"}`).
			AddRow(`{"id":"d","status":"DONE"}`))

	docs, err := coll.Find(ctx, pred, docstore.FindOptions{Skip: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "task" WHERE doc->>$1::text = $2`)).
		WithArgs("status", "DONE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	n, err := coll.Count(ctx, pred)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollection_Delete(t *testing.T) {
	coll, mock, db := setupCollection(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "task" WHERE id = $1`)).
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, coll.Delete(context.Background(), "t1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RejectsBadCollectionName(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = New(db, nil).Collection(context.Background(), `task"; drop table x`)
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "n"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=disable", DSN(cfg))

	cfg.DSN = "postgres://u:p@db/n"
	assert.Equal(t, "postgres://u:p@db/n", DSN(cfg))
}
