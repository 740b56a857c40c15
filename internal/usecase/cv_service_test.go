package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cv-builder/internal/adapter/repository"
	"cv-builder/internal/domain"
	"cv-builder/internal/model"
	"cv-builder/internal/usecase"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledDocument() model.Document {
	d := model.NewDocument()
	d.PersonalInfo.Name = "Jane Doe"
	d.PersonalInfo.Email = "jane@x.com"
	d.Summary = "Backend engineer"
	d.Skills.Backend = []string{"Go", "Postgres"}
	d.Experience = []model.Experience{{
		Title: "Engineer", Company: "Acme", Duration: "2020-2024",
		Bullets: []string{"Led team of 5", ""},
	}}
	d.Projects = []model.Project{{Name: "cvctl", TechStack: "Go", Bullets: []string{""}}}
	d.Education = model.Education{Degree: "BSc", University: "Uni", Duration: "2016-2020"}
	d.Awards = []string{"Hackathon winner"}
	return d
}

func TestCVService_CreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := usecase.NewCVService(repository.NewMemoryRepo())
	doc := filledDocument()

	rec, err := svc.Create(ctx, usecase.CreateInput{Name: "My CV", Data: doc})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, domain.AnonymousOwner, rec.OwnerID)
	assert.Equal(t, domain.DefaultTemplate, rec.Template)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(doc, got.Data); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCVService_CreateRequiresName(t *testing.T) {
	svc := usecase.NewCVService(repository.NewMemoryRepo())
	_, err := svc.Create(context.Background(), usecase.CreateInput{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCVService_Update(t *testing.T) {
	ctx := context.Background()
	svc := usecase.NewCVService(repository.NewMemoryRepo())
	rec, err := svc.Create(ctx, usecase.CreateInput{OwnerID: "u1", Name: "v1", Data: model.NewDocument()})
	require.NoError(t, err)

	doc := filledDocument()
	updated, err := svc.Update(ctx, rec.ID, usecase.UpdateInput{Name: "v2", Data: &doc})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Name)
	assert.Equal(t, "u1", updated.OwnerID)
	assert.Equal(t, domain.DefaultTemplate, updated.Template)
	assert.Empty(t, cmp.Diff(doc, updated.Data))
	assert.False(t, updated.UpdatedAt.Before(rec.UpdatedAt))

	_, err = svc.Update(ctx, uuid.New(), usecase.UpdateInput{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCVService_UpdateWithoutDataKeepsDocument(t *testing.T) {
	ctx := context.Background()
	svc := usecase.NewCVService(repository.NewMemoryRepo())
	doc := filledDocument()
	rec, err := svc.Create(ctx, usecase.CreateInput{Name: "v1", Data: doc})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, rec.ID, usecase.UpdateInput{Name: "v2"})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Name)
	assert.Empty(t, cmp.Diff(doc, updated.Data))
}

func TestCVService_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc := usecase.NewCVService(repository.NewMemoryRepo())
	src, err := svc.Create(ctx, usecase.CreateInput{OwnerID: "u1", Name: "Main", Template: "modern", Data: filledDocument()})
	require.NoError(t, err)

	dup, err := svc.Duplicate(ctx, src.ID)
	require.NoError(t, err)
	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, "Main (Copy)", dup.Name)
	assert.Equal(t, src.OwnerID, dup.OwnerID)
	assert.Equal(t, src.Template, dup.Template)
	assert.Empty(t, cmp.Diff(src.Data, dup.Data))

	_, err = svc.Duplicate(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCVService_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := usecase.NewCVService(repository.NewMemoryRepo())
	for _, name := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, usecase.CreateInput{Name: name, Data: model.NewDocument()})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	list, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"third", "second", "first"}, []string{list[0].Name, list[1].Name, list[2].Name})
}

func TestCVService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := usecase.NewCVService(repository.NewMemoryRepo())
	rec, err := svc.Create(ctx, usecase.CreateInput{Name: "gone", Data: model.NewDocument()})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, rec.ID))
	_, err = svc.Get(ctx, rec.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.ErrorIs(t, svc.Delete(ctx, rec.ID), domain.ErrNotFound)
}
