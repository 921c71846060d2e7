package model

import "time"

// SessionID uniquely identifies a session
type SessionID string

// Session is one independent game and its lifetime.
// Resetting a session replaces its game; the ID stays the same.
type Session struct {
	ID        SessionID `json:"id"`
	Game      *Game     `json:"game"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	c := *s
	if s.Game != nil {
		c.Game = s.Game.Clone()
	}
	return &c
}

// GameSummary is a lightweight record of a completed game
type GameSummary struct {
	SessionID   SessionID `json:"session_id"`
	GridSize    int       `json:"grid_size"`
	Winner      int       `json:"winner"`
	Turns       int       `json:"turns"`
	PathLength  int       `json:"path_length"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewGameSummary summarizes a finished game
func NewGameSummary(id SessionID, game *Game, completedAt time.Time) *GameSummary {
	return &GameSummary{
		SessionID:   id,
		GridSize:    game.GridSize(),
		Winner:      game.Winner(),
		Turns:       game.Turns(),
		PathLength:  game.path.Len(),
		CompletedAt: completedAt,
	}
}
