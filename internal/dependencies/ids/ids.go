package ids

import (
	"github.com/google/uuid"

	"github.com/mcoot/octiline/internal/model"
)

// Generator creates identifiers and can be mocked for testing
type Generator interface {
	NewSessionID() model.SessionID
}

// UUIDGenerator issues random (version 4) UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewSessionID returns a fresh random session ID
func (g *UUIDGenerator) NewSessionID() model.SessionID {
	return model.SessionID(uuid.NewString())
}
