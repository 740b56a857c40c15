package domain

import (
	"errors"
	"fmt"
	"time"

	"cv-builder/internal/model"

	"github.com/google/uuid"
)

const (
	// AnonymousOwner is used when a request carries no owner.
	AnonymousOwner = "anonymous"
	// DefaultTemplate is the only print layout; unknown names fall back to it.
	DefaultTemplate = "modern"
	// CopySuffix is appended to the name of a duplicated record.
	CopySuffix = " (Copy)"
)

var (
	ErrNotFound   = errors.New("CV not found")
	ErrValidation = errors.New("validation failed")
	ErrConversion = errors.New("failed to generate PDF")
	ErrNetwork    = errors.New("network request failed")

	// ErrSessionNotFound is an ErrNotFound for editing sessions.
	ErrSessionNotFound = fmt.Errorf("session not found: %w", ErrNotFound)
)

// CVRecord is the durable copy of a Document.
type CVRecord struct {
	ID        uuid.UUID      `json:"id"`
	OwnerID   string         `json:"ownerId"`
	Name      string         `json:"name"`
	Data      model.Document `json:"data"`
	Template  string         `json:"template"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// CVPatch changes an existing record. A nil Data or an empty Template keeps
// the stored value.
type CVPatch struct {
	ID        uuid.UUID
	Name      string
	Template  string
	Data      *model.Document
	UpdatedAt time.Time
}

// Summary drops the document body for list views.
func (r CVRecord) Summary() CVSummary {
	return CVSummary{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Name:      r.Name,
		Template:  r.Template,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type CVSummary struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	Template  string    `json:"template"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerOrAnonymous returns id, or AnonymousOwner when id is blank.
func OwnerOrAnonymous(id string) string {
	if id == "" {
		return AnonymousOwner
	}
	return id
}

// TemplateOrDefault returns name when it is a known template, DefaultTemplate otherwise.
func TemplateOrDefault(name string) string {
	if name == DefaultTemplate {
		return name
	}
	return DefaultTemplate
}
