package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/octiline/internal/dependencies/ids"
	"github.com/mcoot/octiline/internal/model"
)

// MockIDs is a mock implementation of ids.Generator for testing
type MockIDs struct {
	mu sync.Mutex

	// SessionIDs is a queue of IDs to return from NewSessionID
	SessionIDs []model.SessionID
	next       int
	issued     int
}

// Ensure MockIDs implements Generator
var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a MockIDs that returns the given IDs in order
func NewMockIDs(sessionIDs ...model.SessionID) *MockIDs {
	return &MockIDs{SessionIDs: sessionIDs}
}

// NewSessionID returns the next queued ID, or "session-N" once the queue is exhausted
func (m *MockIDs) NewSessionID() model.SessionID {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued++
	if m.next < len(m.SessionIDs) {
		id := m.SessionIDs[m.next]
		m.next++
		return id
	}
	return model.SessionID(fmt.Sprintf("session-%d", m.issued))
}
