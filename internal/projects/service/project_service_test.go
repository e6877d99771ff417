package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bugjanitor/go-janitor-backend/internal/docstore/memory"
	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	"github.com/bugjanitor/go-janitor-backend/internal/projects/domain"
	"github.com/bugjanitor/go-janitor-backend/internal/query"
)

func setupService(t *testing.T) *ProjectService {
	t.Helper()
	repo, err := NewProjectRepository(context.Background(), memory.New())
	require.NoError(t, err)
	return NewProjectService(repo)
}

func TestProjectService_CreateRequiresName(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	_, err := svc.Create(ctx, &domain.Project{ProjectCode: "X", ProjectName: "   "})
	assert.True(t, errors.Is(err, errortypes.ErrValidation))

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProjectService_UniqueCode(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	_, err := svc.Create(ctx, &domain.Project{ProjectName: "Apollo", ProjectCode: "AP"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.Project{ProjectName: "Artemis", ProjectCode: "AP"})
	assert.True(t, errors.Is(err, errortypes.ErrConflict))
	assert.Equal(t, 409, errortypes.HTTPStatus(err))
}

func TestProjectService_Update(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	p, err := svc.Create(ctx, &domain.Project{ProjectName: "Apollo", ProjectCode: "AP", Description: "moon"})
	require.NoError(t, err)

	t.Run("merges only supplied fields", func(t *testing.T) {
		desc := "moon and back"
		got, err := svc.Update(ctx, p.ID, domain.ProjectPatch{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, "Apollo", got.ProjectName)
		assert.Equal(t, "AP", got.ProjectCode)
		assert.Equal(t, "moon and back", got.Description)
	})

	t.Run("blank name is rejected and nothing is written", func(t *testing.T) {
		blank := ""
		_, err := svc.Update(ctx, p.ID, domain.ProjectPatch{ProjectName: &blank})
		assert.True(t, errors.Is(err, errortypes.ErrValidation))

		stored, err := svc.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Apollo", stored.ProjectName)
	})

	t.Run("unknown id", func(t *testing.T) {
		name := "x"
		_, err := svc.Update(ctx, "nope", domain.ProjectPatch{ProjectName: &name})
		assert.True(t, errors.Is(err, errortypes.ErrNotFound))
	})
}

func TestProjectService_Lookups(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	_, err := svc.Create(ctx, &domain.Project{ProjectName: "Apollo", ProjectCode: "AP"})
	require.NoError(t, err)

	byCode, err := svc.FindByProjectCode(ctx, "AP")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, "Apollo", byCode.ProjectName)

	byName, err := svc.FindByProjectName(ctx, "Apollo")
	require.NoError(t, err)
	require.NotNil(t, byName)

	missing, err := svc.FindByProjectCode(ctx, "ZZ")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProjectService_FindAllPages(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	for i := 0; i < 12; i++ {
		_, err := svc.Create(ctx, &domain.Project{ProjectName: fmt.Sprintf("Project %d", i), ProjectCode: fmt.Sprintf("P%d", i)})
		require.NoError(t, err)
	}

	first, err := svc.FindAll(ctx, query.NewPageRequest(0, 5), "", "")
	require.NoError(t, err)
	assert.Len(t, first.Content, 5)
	assert.Equal(t, int64(12), first.TotalElements)
	assert.Equal(t, 3, first.TotalPages)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)

	last, err := svc.FindAll(ctx, query.NewPageRequest(2, 5), "", "")
	require.NoError(t, err)
	assert.Len(t, last.Content, 2)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrevious)

	search, err := svc.FindAll(ctx, query.NewPageRequest(0, 5), "project 1", "")
	require.NoError(t, err)
	// "Project 1", "Project 10", "Project 11"
	assert.Equal(t, int64(3), search.TotalElements)
}
