package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cv-builder/internal/adapter/repository"
	"cv-builder/internal/domain"
	"cv-builder/internal/editor"
	"cv-builder/internal/model"
	"cv-builder/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingRepo rejects writes and delegates reads.
type failingRepo struct {
	*repository.MemoryRepo
}

var errStore = errors.New("store unavailable")

func (failingRepo) Insert(context.Context, domain.CVRecord) (domain.CVRecord, error) {
	return domain.CVRecord{}, errStore
}

func (failingRepo) Replace(context.Context, domain.CVPatch) (domain.CVRecord, error) {
	return domain.CVRecord{}, errStore
}

func newSessions(repo usecase.CVRepo, r usecase.Renderer) (*usecase.Sessions, *usecase.CVService) {
	cvs := usecase.NewCVService(repo)
	return usecase.NewSessions(cvs, usecase.NewExporter(r, nil, 1, 0), time.Hour), cvs
}

func TestSessions_EditAndSave(t *testing.T) {
	ctx := context.Background()
	m, cvs := newSessions(repository.NewMemoryRepo(), &stubRenderer{})

	view, err := m.Open(ctx, "u1", nil)
	require.NoError(t, err)
	assert.True(t, view.Layout.Empty)
	sid := view.Session.ID

	view, err = m.Apply(sid, editor.Op{Kind: editor.OpUpdatePersonalInfo, Field: "name", Value: "Jane Doe"})
	require.NoError(t, err)
	assert.True(t, view.Session.Dirty)
	assert.False(t, view.Layout.Empty)
	assert.Equal(t, "Jane Doe", view.Layout.Header.Name)

	first, err := m.Save(ctx, sid, "My CV")
	require.NoError(t, err)
	assert.Equal(t, "u1", first.OwnerID)

	view, err = m.View(sid)
	require.NoError(t, err)
	assert.False(t, view.Session.Dirty)
	require.NotNil(t, view.Session.RecordID)
	assert.Equal(t, first.ID, *view.Session.RecordID)

	_, err = m.Apply(sid, editor.Op{Kind: editor.OpUpdateSummary, Value: "Go developer"})
	require.NoError(t, err)
	second, err := m.Save(ctx, sid, "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "My CV", second.Name)

	list, err := cvs.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	stored, err := cvs.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go developer", stored.Data.Summary)
}

func TestSessions_OpenExisting(t *testing.T) {
	ctx := context.Background()
	m, cvs := newSessions(repository.NewMemoryRepo(), &stubRenderer{})
	rec, err := cvs.Create(ctx, usecase.CreateInput{OwnerID: "u1", Name: "Main", Data: filledDocument()})
	require.NoError(t, err)

	view, err := m.Open(ctx, "", &rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main", view.Session.Name)
	assert.Equal(t, "u1", view.Session.OwnerID)
	assert.Equal(t, "Jane Doe", view.Document.PersonalInfo.Name)

	missing := uuid.New()
	_, err = m.Open(ctx, "", &missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessions_FailedSaveKeepsDocument(t *testing.T) {
	ctx := context.Background()
	m, _ := newSessions(failingRepo{repository.NewMemoryRepo()}, &stubRenderer{})

	view, err := m.Open(ctx, "", nil)
	require.NoError(t, err)
	sid := view.Session.ID
	_, err = m.Apply(sid, editor.Op{Kind: editor.OpAddSkill, Category: model.CategoryBackend, Value: "Go"})
	require.NoError(t, err)

	_, err = m.Save(ctx, sid, "My CV")
	assert.ErrorIs(t, err, errStore)

	view, err = m.View(sid)
	require.NoError(t, err)
	assert.True(t, view.Session.Dirty)
	assert.Nil(t, view.Session.RecordID)
	assert.Equal(t, []string{"Go"}, view.Document.Skills.Backend)
}

func TestSessions_FailedExportKeepsDocument(t *testing.T) {
	ctx := context.Background()
	r := &stubRenderer{results: []stubResult{{err: errors.New("boom")}}}
	m, _ := newSessions(repository.NewMemoryRepo(), r)

	view, err := m.Open(ctx, "", nil)
	require.NoError(t, err)
	sid := view.Session.ID
	_, err = m.Apply(sid, editor.Op{Kind: editor.OpUpdateSummary, Value: "hello"})
	require.NoError(t, err)

	_, err = m.Export(ctx, sid)
	assert.ErrorIs(t, err, domain.ErrConversion)

	res, err := m.Export(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, fakePDF, res.PDF)

	view, err = m.View(sid)
	require.NoError(t, err)
	assert.Equal(t, "hello", view.Document.Summary)
}

func TestSessions_UnknownOpIsValidationError(t *testing.T) {
	m, _ := newSessions(repository.NewMemoryRepo(), &stubRenderer{})
	view, err := m.Open(context.Background(), "", nil)
	require.NoError(t, err)

	_, err = m.Apply(view.Session.ID, editor.Op{Kind: "explode"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSessions_DiscardAndEvict(t *testing.T) {
	ctx := context.Background()
	m, _ := newSessions(repository.NewMemoryRepo(), &stubRenderer{})

	a, err := m.Open(ctx, "", nil)
	require.NoError(t, err)
	b, err := m.Open(ctx, "", nil)
	require.NoError(t, err)

	require.NoError(t, m.Discard(a.Session.ID))
	_, err = m.View(a.Session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, m.Discard(a.Session.ID), domain.ErrNotFound)

	assert.Equal(t, 0, m.EvictIdle(time.Now()))
	assert.Equal(t, 1, m.EvictIdle(time.Now().Add(2*time.Hour)))
	_, err = m.View(b.Session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
