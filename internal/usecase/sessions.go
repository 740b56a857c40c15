package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cv-builder/internal/domain"
	"cv-builder/internal/editor"
	"cv-builder/internal/logger"
	"cv-builder/internal/model"
	"cv-builder/internal/render"

	"github.com/google/uuid"
)

// SessionView is what a client needs to redraw after every change.
type SessionView struct {
	Session  editor.SessionInfo `json:"session"`
	Document model.Document     `json:"document"`
	Layout   render.Layout      `json:"layout"`
}

// Sessions owns the editing sessions of this process and wires them to
// persistence and export. Each session is edited by one client at a time.
type Sessions struct {
	cvs      *CVService
	exporter *Exporter
	idleTTL  time.Duration

	mu       sync.Mutex
	sessions map[uuid.UUID]*editor.Session
}

func NewSessions(cvs *CVService, exporter *Exporter, idleTTL time.Duration) *Sessions {
	return &Sessions{
		cvs:      cvs,
		exporter: exporter,
		idleTTL:  idleTTL,
		sessions: map[uuid.UUID]*editor.Session{},
	}
}

func viewOf(s *editor.Session) SessionView {
	doc := s.Snapshot()
	return SessionView{Session: s.Info(), Document: doc, Layout: render.Build(doc)}
}

// Open starts a session on a new document, or on a copy of cvID when it is set.
func (m *Sessions) Open(ctx context.Context, ownerID string, cvID *uuid.UUID) (SessionView, error) {
	var s *editor.Session
	if cvID != nil {
		rec, err := m.cvs.Get(ctx, *cvID)
		if err != nil {
			return SessionView{}, err
		}
		s = editor.LoadSession(rec)
	} else {
		s = editor.NewSession(ownerID)
	}

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	logger.Debug().Str("session_id", s.ID().String()).Msg("editing session opened")
	return viewOf(s), nil
}

func (m *Sessions) lookup(id uuid.UUID) (*editor.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return s, nil
}

func (m *Sessions) View(id uuid.UUID) (SessionView, error) {
	s, err := m.lookup(id)
	if err != nil {
		return SessionView{}, err
	}
	return viewOf(s), nil
}

// Apply runs one named operation and returns the re-derived view.
func (m *Sessions) Apply(id uuid.UUID, op editor.Op) (SessionView, error) {
	s, err := m.lookup(id)
	if err != nil {
		return SessionView{}, err
	}
	if _, err := s.Apply(op); err != nil {
		return SessionView{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return viewOf(s), nil
}

// Save creates the record on first save and replaces it afterwards. A blank
// name reuses the name from the previous save. The session document is left
// untouched when saving fails.
func (m *Sessions) Save(ctx context.Context, id uuid.UUID, name string) (domain.CVRecord, error) {
	s, err := m.lookup(id)
	if err != nil {
		return domain.CVRecord{}, err
	}
	info := s.Info()
	if name == "" {
		name = info.Name
	}
	doc := s.Snapshot()

	var rec domain.CVRecord
	if info.RecordID == nil {
		rec, err = m.cvs.Create(ctx, CreateInput{OwnerID: info.OwnerID, Name: name, Template: info.Template, Data: doc})
	} else {
		rec, err = m.cvs.Update(ctx, *info.RecordID, UpdateInput{Name: name, Template: info.Template, Data: &doc})
	}
	if err != nil {
		return domain.CVRecord{}, err
	}
	s.MarkSaved(rec)
	return rec, nil
}

// Export renders the current snapshot of a session to PDF.
func (m *Sessions) Export(ctx context.Context, id uuid.UUID) (ExportResult, error) {
	s, err := m.lookup(id)
	if err != nil {
		return ExportResult{}, err
	}
	info := s.Info()
	return m.exporter.Export(ctx, info.OwnerID, s.Snapshot(), info.Template)
}

// Discard drops a session and its unsaved changes.
func (m *Sessions) Discard(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	delete(m.sessions, id)
	return nil
}

// EvictIdle discards sessions untouched since before now-idleTTL and returns how many were dropped.
func (m *Sessions) EvictIdle(now time.Time) int {
	if m.idleTTL <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if now.Sub(s.IdleSince()) > m.idleTTL {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Run evicts idle sessions every interval until ctx is done.
func (m *Sessions) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := m.EvictIdle(now); n > 0 {
				logger.Info().Int("count", n).Msg("discarded idle editing sessions")
			}
		}
	}
}
