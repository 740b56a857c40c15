package editor

import (
	"sync"
	"time"

	"cv-builder/internal/domain"
	"cv-builder/internal/model"

	"github.com/google/uuid"
)

// Session owns one live-edited document. Unsaved changes live only here and
// are lost when the session is dropped.
type Session struct {
	mu sync.Mutex

	id       uuid.UUID
	ownerID  string
	recordID *uuid.UUID
	name     string
	template string
	doc      model.Document
	dirty    bool
	touched  time.Time
}

// NewSession starts editing a new, empty CV.
func NewSession(ownerID string) *Session {
	return &Session{
		id:       uuid.New(),
		ownerID:  domain.OwnerOrAnonymous(ownerID),
		template: domain.DefaultTemplate,
		doc:      model.NewDocument(),
		touched:  time.Now(),
	}
}

// LoadSession starts editing a copy of a stored record.
func LoadSession(rec domain.CVRecord) *Session {
	id := rec.ID
	return &Session{
		id:       uuid.New(),
		ownerID:  domain.OwnerOrAnonymous(rec.OwnerID),
		recordID: &id,
		name:     rec.Name,
		template: rec.Template,
		doc:      rec.Data.Normalize(),
		touched:  time.Now(),
	}
}

// SessionInfo describes a session without its document.
type SessionInfo struct {
	ID       uuid.UUID  `json:"id"`
	OwnerID  string     `json:"ownerId"`
	RecordID *uuid.UUID `json:"recordId,omitempty"`
	Name     string     `json:"name"`
	Template string     `json:"template"`
	Dirty    bool       `json:"dirty"`
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) Info() SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := SessionInfo{ID: s.id, OwnerID: s.ownerID, Name: s.name, Template: s.template, Dirty: s.dirty}
	if s.recordID != nil {
		id := *s.recordID
		info.RecordID = &id
	}
	return info
}

// Snapshot returns a deep copy of the current document.
func (s *Session) Snapshot() model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Apply runs op and returns the new snapshot. An unknown op leaves the
// document unchanged.
func (s *Session) Apply(op Op) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := Apply(s.doc, op)
	if err != nil {
		return s.doc.Clone(), err
	}
	s.doc = next
	s.dirty = true
	s.touched = time.Now()
	return s.doc.Clone(), nil
}

// MarkSaved binds the session to the stored record it was persisted as.
func (s *Session) MarkSaved(rec domain.CVRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := rec.ID
	s.recordID = &id
	s.name = rec.Name
	s.template = rec.Template
	s.dirty = false
}

// IdleSince reports when the document was last changed or loaded.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}
