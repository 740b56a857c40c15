package repository

import (
	"context"
	"testing"
	"time"

	"cv-builder/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCached(t *testing.T) (*CachedRepo, *MemoryRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	mem := NewMemoryRepo()
	return NewCachedRepo(mem, rdb, time.Minute), mem, mr
}

func TestCachedRepo_InsertPopulatesCache(t *testing.T) {
	ctx := context.Background()
	repo, _, mr := newCached(t)
	rec := sampleRecord("u1", "cv", time.Now().UTC().Truncate(time.Second))

	_, err := repo.Insert(ctx, rec)
	require.NoError(t, err)

	assert.True(t, mr.Exists(cacheKey(rec.ID)))
	assert.Equal(t, time.Minute, mr.TTL(cacheKey(rec.ID)))
}

func TestCachedRepo_GetReadsThrough(t *testing.T) {
	ctx := context.Background()
	repo, mem, mr := newCached(t)
	rec := sampleRecord("u1", "cv", time.Now().UTC().Truncate(time.Second))
	_, err := mem.Insert(ctx, rec)
	require.NoError(t, err)
	require.False(t, mr.Exists(cacheKey(rec.ID)))

	got, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Name, got.Name)
	assert.True(t, mr.Exists(cacheKey(rec.ID)))

	// Served from cache once the backing row is gone.
	require.NoError(t, mem.Delete(ctx, rec.ID))
	cached, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, cached.Data.Skills.Backend)
}

func TestCachedRepo_DeleteEvicts(t *testing.T) {
	ctx := context.Background()
	repo, _, mr := newCached(t)
	rec := sampleRecord("u1", "cv", time.Now().UTC())
	_, err := repo.Insert(ctx, rec)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, rec.ID))
	assert.False(t, mr.Exists(cacheKey(rec.ID)))
	_, err = repo.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCachedRepo_ReplaceRefreshesCache(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newCached(t)
	rec := sampleRecord("u1", "cv", time.Now().UTC())
	_, err := repo.Insert(ctx, rec)
	require.NoError(t, err)

	_, err = repo.Replace(ctx, domain.CVPatch{ID: rec.ID, Name: "renamed"})
	require.NoError(t, err)

	got, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, "cv", got.Data.PersonalInfo.Name)
	assert.Equal(t, []string{"Go"}, got.Data.Skills.Backend)
}

func TestCachedRepo_FallsThroughWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	repo, _, mr := newCached(t)
	mr.Close()

	rec := sampleRecord("u1", "cv", time.Now().UTC())
	_, err := repo.Insert(ctx, rec)
	require.NoError(t, err)

	got, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
}
