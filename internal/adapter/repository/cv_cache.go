package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cv-builder/internal/domain"
	"cv-builder/internal/logger"
	"cv-builder/internal/usecase"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "cv:"

// CachedRepo puts a Redis read-through cache in front of another CVRepo.
// Cache failures are logged and fall through to the wrapped repo.
type CachedRepo struct {
	next usecase.CVRepo
	rdb  *redis.Client
	ttl  time.Duration
}

func NewCachedRepo(next usecase.CVRepo, rdb *redis.Client, ttl time.Duration) *CachedRepo {
	return &CachedRepo{next: next, rdb: rdb, ttl: ttl}
}

func cacheKey(id uuid.UUID) string { return cacheKeyPrefix + id.String() }

func (r *CachedRepo) List(ctx context.Context, ownerID string) ([]domain.CVSummary, error) {
	return r.next.List(ctx, ownerID)
}

func (r *CachedRepo) Get(ctx context.Context, id uuid.UUID) (domain.CVRecord, error) {
	b, err := r.rdb.Get(ctx, cacheKey(id)).Bytes()
	if err == nil {
		var rec domain.CVRecord
		if err := json.Unmarshal(b, &rec); err == nil {
			rec.Data = rec.Data.Normalize()
			return rec, nil
		}
		logger.Warn().Str("cv_id", id.String()).Msg("discarding undecodable cache entry")
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn().Err(err).Str("cv_id", id.String()).Msg("cache read failed")
	}

	rec, err := r.next.Get(ctx, id)
	if err != nil {
		return domain.CVRecord{}, err
	}
	r.store(ctx, rec)
	return rec, nil
}

func (r *CachedRepo) Insert(ctx context.Context, rec domain.CVRecord) (domain.CVRecord, error) {
	saved, err := r.next.Insert(ctx, rec)
	if err != nil {
		return domain.CVRecord{}, err
	}
	r.store(ctx, saved)
	return saved, nil
}

func (r *CachedRepo) Replace(ctx context.Context, p domain.CVPatch) (domain.CVRecord, error) {
	r.evict(ctx, p.ID)
	saved, err := r.next.Replace(ctx, p)
	if err != nil {
		return domain.CVRecord{}, err
	}
	r.store(ctx, saved)
	return saved, nil
}

func (r *CachedRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.evict(ctx, id)
	return r.next.Delete(ctx, id)
}

func (r *CachedRepo) store(ctx context.Context, rec domain.CVRecord) {
	b, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, cacheKey(rec.ID), b, r.ttl).Err(); err != nil {
		logger.Warn().Err(err).Str("cv_id", rec.ID.String()).Msg("cache write failed")
	}
}

func (r *CachedRepo) evict(ctx context.Context, id uuid.UUID) {
	if err := r.rdb.Del(ctx, cacheKey(id)).Err(); err != nil {
		logger.Warn().Err(err).Str("cv_id", id.String()).Msg("cache evict failed")
	}
}
