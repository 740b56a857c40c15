package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cv-builder/internal/domain"
	"cv-builder/internal/logger"
	"cv-builder/internal/model"

	"github.com/google/uuid"
)

// CVService is the persistence boundary for CV records.
type CVService struct {
	repo CVRepo
	now  func() time.Time
}

func NewCVService(repo CVRepo) *CVService {
	return &CVService{repo: repo, now: time.Now}
}

type CreateInput struct {
	OwnerID  string         `json:"ownerId"`
	Name     string         `json:"name"`
	Template string         `json:"template"`
	Data     model.Document `json:"data"`
}

// UpdateInput leaves the stored document untouched when Data is nil.
type UpdateInput struct {
	Name     string          `json:"name"`
	Template string          `json:"template"`
	Data     *model.Document `json:"data,omitempty"`
}

func (s *CVService) List(ctx context.Context, ownerID string) ([]domain.CVSummary, error) {
	return s.repo.List(ctx, domain.OwnerOrAnonymous(ownerID))
}

func (s *CVService) Get(ctx context.Context, id uuid.UUID) (domain.CVRecord, error) {
	return s.repo.Get(ctx, id)
}

func (s *CVService) Create(ctx context.Context, in CreateInput) (domain.CVRecord, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.CVRecord{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	now := s.now().UTC()
	rec := domain.CVRecord{
		ID:        uuid.New(),
		OwnerID:   domain.OwnerOrAnonymous(in.OwnerID),
		Name:      in.Name,
		Data:      in.Data.Normalize(),
		Template:  in.Template,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if rec.Template == "" {
		rec.Template = domain.DefaultTemplate
	}
	saved, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return domain.CVRecord{}, err
	}
	logger.Info().Str("cv_id", saved.ID.String()).Str("owner_id", saved.OwnerID).Msg("cv created")
	return saved, nil
}

func (s *CVService) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (domain.CVRecord, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.CVRecord{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	p := domain.CVPatch{
		ID:        id,
		Name:      in.Name,
		Template:  in.Template,
		UpdatedAt: s.now().UTC(),
	}
	if in.Data != nil {
		doc := in.Data.Normalize()
		p.Data = &doc
	}
	return s.repo.Replace(ctx, p)
}

func (s *CVService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Str("cv_id", id.String()).Msg("cv deleted")
	return nil
}

// Duplicate stores a copy of id under the same owner with " (Copy)" appended to its name.
func (s *CVService) Duplicate(ctx context.Context, id uuid.UUID) (domain.CVRecord, error) {
	src, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.CVRecord{}, err
	}
	return s.Create(ctx, CreateInput{
		OwnerID:  src.OwnerID,
		Name:     src.Name + domain.CopySuffix,
		Template: src.Template,
		Data:     src.Data.Clone(),
	})
}
