package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bugjanitor/go-janitor-backend/internal/docstore/memory"
	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	"github.com/bugjanitor/go-janitor-backend/internal/persons/domain"
	"github.com/bugjanitor/go-janitor-backend/internal/query"
)

var fixedNow = time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC)

func setupService(t *testing.T) *PersonService {
	t.Helper()
	repo, err := NewPersonRepository(context.Background(), memory.New())
	require.NoError(t, err)
	return NewPersonService(repo, WithClock(func() time.Time { return fixedNow }))
}

func TestPersonService_Create(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	t.Run("email is required", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.Person{FirstName: "Ada"})
		assert.True(t, errors.Is(err, errortypes.ErrValidation))
	})

	t.Run("stamps creation date", func(t *testing.T) {
		p, err := svc.Create(ctx, &domain.Person{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, fixedNow, p.CreationDate)
		assert.Nil(t, p.UpdateDate)
	})

	t.Run("email is unique", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.Person{FirstName: "Other", Email: "ada@example.com"})
		assert.True(t, errors.Is(err, errortypes.ErrConflict))
	})
}

func TestPersonService_Update(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	p, err := svc.Create(ctx, &domain.Person{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"})
	require.NoError(t, err)

	last := "Murray Hopper"
	got, err := svc.Update(ctx, p.ID, domain.PersonPatch{LastName: &last})
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.FirstName)
	assert.Equal(t, "Murray Hopper", got.LastName)
	assert.Equal(t, "grace@example.com", got.Email)
	require.NotNil(t, got.UpdateDate)
	assert.Equal(t, fixedNow, *got.UpdateDate)

	blank := " "
	_, err = svc.Update(ctx, p.ID, domain.PersonPatch{Email: &blank})
	assert.True(t, errors.Is(err, errortypes.ErrValidation))

	_, err = svc.Update(ctx, "missing", domain.PersonPatch{LastName: &last})
	assert.True(t, errors.Is(err, errortypes.ErrNotFound))
}

func TestPersonService_ListAndSearch(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	for _, p := range []*domain.Person{
		{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		{FirstName: "Alan", LastName: "Turing", Email: "alan@example.org"},
		{FirstName: "Edsger", LastName: "Dijkstra", Email: "ewd@example.org"},
	} {
		_, err := svc.Create(ctx, p)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ada", all[0].FirstName)

	page, err := svc.FindAll(ctx, query.NewPageRequest(0, 10), "EXAMPLE.ORG", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)

	filtered, err := svc.FindAll(ctx, query.NewPageRequest(0, 10), "", "lastName:Turing")
	require.NoError(t, err)
	require.Len(t, filtered.Content, 1)
	assert.Equal(t, "Alan", filtered.Content[0].FirstName)

	byEmail, err := svc.FindByEmail(ctx, "ewd@example.org")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "Dijkstra", byEmail.LastName)
}
