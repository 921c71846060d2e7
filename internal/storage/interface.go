package storage

import (
	"context"

	"github.com/mcoot/octiline/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.SessionID) error

	// Summary operations.
	// ListSummaries returns the most recently completed games first; limit <= 0 returns all.
	SaveSummary(ctx context.Context, summary *model.GameSummary) error
	ListSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error)
}
