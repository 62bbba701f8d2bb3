package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/service"
)

// MemoryStorage keeps sessions in process memory. Values are copied on the
// way in and out so callers never share state with the store.
type MemoryStorage struct {
	sessions        map[string]model.Session
	recommendations map[string][]model.Recommendation
	mu              sync.RWMutex
}

var _ service.SessionStore = (*MemoryStorage)(nil)

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		sessions:        make(map[string]model.Session),
		recommendations: make(map[string][]model.Recommendation),
	}
}

// GetSession implements service.SessionStore.
func (m *MemoryStorage) GetSession(ctx context.Context, id string) (*model.Session, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, common.ErrNotFound)
	}
	out := cloneSession(session)
	return &out, nil
}

// SaveSession implements service.SessionStore.
func (m *MemoryStorage) SaveSession(ctx context.Context, session *model.Session) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSession(session); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := m.sessions[session.ID]; ok {
		session.CreatedAt = existing.CreatedAt
	} else if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	stored := cloneSession(*session)
	for i := range stored.Messages {
		if stored.Messages[i].Timestamp.IsZero() {
			stored.Messages[i].Timestamp = now
		}
	}
	m.sessions[session.ID] = stored
	return nil
}

// ListSessions implements service.SessionStore.
func (m *MemoryStorage) ListSessions(ctx context.Context, filter service.SessionFilter) ([]model.Session, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]model.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		if filter.Since != nil && s.UpdatedAt.Before(*filter.Since) {
			continue
		}
		sessions = append(sessions, cloneSession(s))
	}

	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].UpdatedAt.Equal(sessions[j].UpdatedAt) {
			return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
		}
		return sessions[i].ID < sessions[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(sessions) {
			return []model.Session{}, nil
		}
		sessions = sessions[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(sessions) {
		sessions = sessions[:filter.Limit]
	}
	return sessions, nil
}

// DeleteSession implements service.SessionStore.
func (m *MemoryStorage) DeleteSession(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, common.ErrNotFound)
	}
	delete(m.sessions, id)
	delete(m.recommendations, id)
	return nil
}

// RecordRecommendations implements service.SessionStore.
func (m *MemoryStorage) RecordRecommendations(ctx context.Context, recs []model.Recommendation) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecommendations(recs); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range recs {
		if _, ok := m.sessions[r.SessionID]; !ok {
			return fmt.Errorf("session %s: %w", r.SessionID, common.ErrNotFound)
		}
	}

	now := time.Now().UTC()
	for _, r := range recs {
		if r.ShownAt.IsZero() {
			r.ShownAt = now
		}
		m.recommendations[r.SessionID] = append(m.recommendations[r.SessionID], r)
	}
	return nil
}

// GetRecommendations implements service.SessionStore.
func (m *MemoryStorage) GetRecommendations(ctx context.Context, sessionID string) ([]model.Recommendation, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(sessionID, "sessionID"); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := m.recommendations[sessionID]
	if len(recs) == 0 {
		return nil, nil
	}
	return append([]model.Recommendation(nil), recs...), nil
}

// Migrate is a no-op for the in-memory store.
func (m *MemoryStorage) Migrate(ctx context.Context) error {
	return validateContext(ctx)
}

// Close is a no-op for the in-memory store.
func (m *MemoryStorage) Close() error {
	return nil
}

func cloneSession(s model.Session) model.Session {
	out := s
	out.Context = s.Context.Clone()
	if s.Messages != nil {
		out.Messages = make([]model.Message, len(s.Messages))
		for i, msg := range s.Messages {
			out.Messages[i] = msg
			if msg.BundleIDs != nil {
				out.Messages[i].BundleIDs = append([]string(nil), msg.BundleIDs...)
			}
		}
	}
	return out
}
