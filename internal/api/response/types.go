package response

import (
	"time"

	"github.com/mcoot/octiline/internal/model"
	"github.com/mcoot/octiline/internal/services/bot"
)

// Health is the response for the health endpoint
type Health struct {
	Status string `json:"status"`
}

// Message is the human-readable status shown to players
type Message struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Session is the client-facing view of a session and its game
type Session struct {
	ID           string        `json:"id"`
	State        model.State   `json:"state"`
	Player       int           `json:"player"`
	Winner       int           `json:"winner,omitempty"`
	GridSize     int           `json:"grid_size"`
	Turns        int           `json:"turns"`
	Path         []model.Point `json:"path"`
	PendingStart *model.Point  `json:"pending_start,omitempty"`
	NewLine      *model.Line   `json:"new_line"`
	Error        string        `json:"error,omitempty"`
	Message      Message       `json:"message"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// SessionFromModel converts a model.Session
func SessionFromModel(s *model.Session) Session {
	g := s.Game
	resp := Session{
		ID:        string(s.ID),
		State:     g.State(),
		Player:    g.Player(),
		Winner:    g.Winner(),
		GridSize:  g.GridSize(),
		Turns:     g.Turns(),
		Path:      g.Path().Nodes(),
		Error:     g.ErrorMessage(),
		Message:   MessageFor(g),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if resp.Path == nil {
		resp.Path = []model.Point{}
	}
	if start, ok := g.PendingStart(); ok {
		resp.PendingStart = &start
	}
	if line, ok := g.NewLine(); ok {
		resp.NewLine = &line
	}
	return resp
}

// Move is a single legal move
type Move struct {
	Start model.Point `json:"start"`
	End   model.Point `json:"end"`
}

// MoveSet lists what the current player may do
type MoveSet struct {
	Player      int           `json:"player"`
	StartNodes  []model.Point `json:"start_nodes"`
	PendingFrom *model.Point  `json:"pending_from,omitempty"`
	Moves       []Move        `json:"moves"`
}

// MoveSetFromService converts a bot.MoveSet
func MoveSetFromService(m *bot.MoveSet) MoveSet {
	resp := MoveSet{
		Player:      m.Player,
		StartNodes:  m.StartNodes,
		PendingFrom: m.PendingFrom,
		Moves:       make([]Move, len(m.Moves)),
	}
	if resp.StartNodes == nil {
		resp.StartNodes = []model.Point{}
	}
	for i, mv := range m.Moves {
		resp.Moves[i] = Move{Start: mv.Start, End: mv.End}
	}
	return resp
}

// GameSummary is a completed game
type GameSummary struct {
	SessionID   string    `json:"session_id"`
	GridSize    int       `json:"grid_size"`
	Winner      int       `json:"winner"`
	Turns       int       `json:"turns"`
	PathLength  int       `json:"path_length"`
	CompletedAt time.Time `json:"completed_at"`
}

// History is the response for the history endpoint
type History struct {
	Games []GameSummary `json:"games"`
}

// HistoryFromModel converts completed game summaries
func HistoryFromModel(summaries []*model.GameSummary) History {
	games := make([]GameSummary, len(summaries))
	for i, s := range summaries {
		games[i] = GameSummary{
			SessionID:   string(s.SessionID),
			GridSize:    s.GridSize,
			Winner:      s.Winner,
			Turns:       s.Turns,
			PathLength:  s.PathLength,
			CompletedAt: s.CompletedAt,
		}
	}
	return History{Games: games}
}

// Event is a session change as delivered to streaming clients
type Event struct {
	Type      model.EventType `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	SessionID string          `json:"session_id"`
	Session   *Session        `json:"session,omitempty"`
	Payload   any             `json:"payload,omitempty"`
}

// EventFromModel converts a model.Event
func EventFromModel(e model.Event) Event {
	resp := Event{
		Type:      e.Type,
		Timestamp: e.Timestamp,
		SessionID: string(e.SessionID),
		Payload:   e.Payload,
	}
	if e.Session != nil {
		s := SessionFromModel(e.Session)
		resp.Session = &s
	}
	return resp
}
