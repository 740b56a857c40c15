package usecase

import (
	"context"

	"cv-builder/internal/domain"

	"github.com/google/uuid"
)

// CVRepo stores CV records. Implementations return domain.ErrNotFound for
// unknown ids and replace a record atomically; there is no other
// transactional guarantee, so concurrent saves are last-write-wins.
type CVRepo interface {
	// List returns the owner's records, most recently created first.
	List(ctx context.Context, ownerID string) ([]domain.CVSummary, error)
	Get(ctx context.Context, id uuid.UUID) (domain.CVRecord, error)
	Insert(ctx context.Context, rec domain.CVRecord) (domain.CVRecord, error)
	// Replace applies p to the record p.ID and returns the stored result.
	Replace(ctx context.Context, p domain.CVPatch) (domain.CVRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Renderer converts a printable HTML page into a PDF document.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// Archive keeps a copy of exported PDFs. It is optional.
type Archive interface {
	Put(ctx context.Context, key string, pdf []byte) (string, error)
}
