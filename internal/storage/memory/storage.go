package memory

import (
	"context"
	"sync"

	"github.com/mcoot/octiline/internal/model"
	"github.com/mcoot/octiline/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Sessions are cloned on the way in and out so callers never share a Game.
type Storage struct {
	mu sync.RWMutex

	sessions  map[model.SessionID]*model.Session
	summaries []*model.GameSummary
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions: make(map[model.SessionID]*model.Session),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Summary operations

func (s *Storage) SaveSummary(ctx context.Context, summary *model.GameSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *summary
	s.summaries = append(s.summaries, &c)
	return nil
}

func (s *Storage) ListSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.summaries)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]*model.GameSummary, 0, n)
	for i := len(s.summaries) - 1; i >= 0 && len(result) < n; i-- {
		c := *s.summaries[i]
		result = append(result, &c)
	}
	return result, nil
}
