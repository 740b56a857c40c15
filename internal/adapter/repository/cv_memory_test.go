package repository

import (
	"context"
	"testing"
	"time"

	"cv-builder/internal/domain"
	"cv-builder/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(owner, name string, created time.Time) domain.CVRecord {
	doc := model.NewDocument()
	doc.PersonalInfo.Name = name
	doc.Skills.Backend = []string{"Go"}
	return domain.CVRecord{
		ID:        uuid.New(),
		OwnerID:   owner,
		Name:      name,
		Data:      doc,
		Template:  domain.DefaultTemplate,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestMemoryRepo_ListOrderAndOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	older := sampleRecord("u1", "older", base)
	newer := sampleRecord("u1", "newer", base.Add(time.Hour))
	tie := sampleRecord("u1", "tie", base.Add(time.Hour))
	other := sampleRecord("u2", "other", base)
	for _, rec := range []domain.CVRecord{older, newer, tie, other} {
		_, err := repo.Insert(ctx, rec)
		require.NoError(t, err)
	}

	list, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "tie", list[0].Name)
	assert.Equal(t, "newer", list[1].Name)
	assert.Equal(t, "older", list[2].Name)

	none, err := repo.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryRepo_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	rec := sampleRecord("u1", "cv", time.Now().UTC())
	_, err := repo.Insert(ctx, rec)
	require.NoError(t, err)

	got, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	got.Data.Skills.Backend[0] = "Rust"

	again, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, again.Data.Skills.Backend)
}

func TestMemoryRepo_ReplaceKeepsTemplateWhenBlank(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	rec := sampleRecord("u1", "cv", time.Now().UTC())
	rec.Template = "custom"
	_, err := repo.Insert(ctx, rec)
	require.NoError(t, err)

	saved, err := repo.Replace(ctx, domain.CVPatch{ID: rec.ID, Name: "renamed", Data: &rec.Data})
	require.NoError(t, err)
	assert.Equal(t, "renamed", saved.Name)
	assert.Equal(t, "custom", saved.Template)
	assert.Equal(t, rec.CreatedAt, saved.CreatedAt)
}

func TestMemoryRepo_ReplaceKeepsDataWhenNil(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	rec := sampleRecord("u1", "cv", time.Now().UTC())
	_, err := repo.Insert(ctx, rec)
	require.NoError(t, err)

	saved, err := repo.Replace(ctx, domain.CVPatch{ID: rec.ID, Name: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", saved.Name)
	assert.Equal(t, rec.Data, saved.Data)
}

func TestMemoryRepo_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	missing := uuid.New()

	_, err := repo.Get(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.Replace(ctx, domain.CVPatch{ID: missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, missing), domain.ErrNotFound)
}

func TestMemoryRepo_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	rec := sampleRecord("u1", "cv", time.Now().UTC())
	_, err := repo.Insert(ctx, rec)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, rec.ID))
	_, err = repo.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
