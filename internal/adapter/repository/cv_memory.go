package repository

import (
	"context"
	"sort"
	"sync"

	"cv-builder/internal/domain"

	"github.com/google/uuid"
)

// MemoryRepo keeps records in process memory. It backs the service when no
// database is configured and is used in tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	records map[uuid.UUID]memoryRow
	seq     int64
}

type memoryRow struct {
	rec domain.CVRecord
	seq int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{records: map[uuid.UUID]memoryRow{}}
}

func (r *MemoryRepo) List(_ context.Context, ownerID string) ([]domain.CVSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]memoryRow, 0, len(r.records))
	for _, row := range r.records {
		if row.rec.OwnerID == ownerID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].rec.CreatedAt, rows[j].rec.CreatedAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]domain.CVSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.rec.Summary())
	}
	return out, nil
}

func (r *MemoryRepo) Get(_ context.Context, id uuid.UUID) (domain.CVRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.records[id]
	if !ok {
		return domain.CVRecord{}, domain.ErrNotFound
	}
	return copyRecord(row.rec), nil
}

func (r *MemoryRepo) Insert(_ context.Context, rec domain.CVRecord) (domain.CVRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.records[rec.ID] = memoryRow{rec: copyRecord(rec), seq: r.seq}
	return copyRecord(rec), nil
}

func (r *MemoryRepo) Replace(_ context.Context, p domain.CVPatch) (domain.CVRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.records[p.ID]
	if !ok {
		return domain.CVRecord{}, domain.ErrNotFound
	}
	row.rec.Name = p.Name
	if p.Data != nil {
		row.rec.Data = p.Data.Clone()
	}
	if p.Template != "" {
		row.rec.Template = p.Template
	}
	row.rec.UpdatedAt = p.UpdatedAt
	r.records[p.ID] = row
	return copyRecord(row.rec), nil
}

func (r *MemoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func copyRecord(rec domain.CVRecord) domain.CVRecord {
	rec.Data = rec.Data.Clone()
	return rec
}
