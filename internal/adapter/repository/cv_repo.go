package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cv-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PostgresRepo stores records in the cvs table; the document lives in a JSONB column.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

const cvColumns = `id::text, owner_id, name, data, template, created_at, updated_at`

func scanRecord(row pgx.Row) (domain.CVRecord, error) {
	var (
		rec  domain.CVRecord
		id   string
		data []byte
	)
	if err := row.Scan(&id, &rec.OwnerID, &rec.Name, &data, &rec.Template, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CVRecord{}, domain.ErrNotFound
		}
		return domain.CVRecord{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.CVRecord{}, fmt.Errorf("stored id %q: %w", id, err)
	}
	rec.ID = parsed
	if err := json.Unmarshal(data, &rec.Data); err != nil {
		return domain.CVRecord{}, fmt.Errorf("decode cv %s: %w", id, err)
	}
	rec.Data = rec.Data.Normalize()
	return rec, nil
}

func (r *PostgresRepo) List(ctx context.Context, ownerID string) ([]domain.CVSummary, error) {
	rows, err := r.pool.Query(ctx, `SELECT id::text, owner_id, name, template, created_at, updated_at
		FROM cvs WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.CVSummary, 0, 16)
	for rows.Next() {
		var (
			s  domain.CVSummary
			id string
		)
		if err := rows.Scan(&id, &s.OwnerID, &s.Name, &s.Template, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if s.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, id uuid.UUID) (domain.CVRecord, error) {
	return scanRecord(r.pool.QueryRow(ctx, `SELECT `+cvColumns+` FROM cvs WHERE id = $1`, id.String()))
}

func (r *PostgresRepo) Insert(ctx context.Context, rec domain.CVRecord) (domain.CVRecord, error) {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return domain.CVRecord{}, err
	}
	return scanRecord(r.pool.QueryRow(ctx, `INSERT INTO cvs (id, owner_id, name, data, template, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING `+cvColumns,
		rec.ID.String(), rec.OwnerID, rec.Name, data, rec.Template, rec.CreatedAt, rec.UpdatedAt))
}

func (r *PostgresRepo) Replace(ctx context.Context, p domain.CVPatch) (domain.CVRecord, error) {
	// nil binds as SQL NULL, which keeps the stored document.
	var data []byte
	if p.Data != nil {
		var err error
		if data, err = json.Marshal(p.Data); err != nil {
			return domain.CVRecord{}, err
		}
	}
	updated := p.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	return scanRecord(r.pool.QueryRow(ctx, `UPDATE cvs
		SET name = $2, data = COALESCE($3, data), template = COALESCE(NULLIF($4, ''), template), updated_at = $5
		WHERE id = $1
		RETURNING `+cvColumns,
		p.ID.String(), p.Name, data, p.Template, updated))
}

func (r *PostgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cvs WHERE id = $1`, id.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
