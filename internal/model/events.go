package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventSessionCreated EventType = "session_created"
	EventSessionReset   EventType = "session_reset"
	EventSessionDeleted EventType = "session_deleted"
	EventNodeSelected   EventType = "node_selected"
	EventLineDrawn      EventType = "line_drawn"
	EventGameOver       EventType = "game_over"
	EventGameFailed     EventType = "game_failed"
)

// Event is published whenever a session changes
type Event struct {
	Type      EventType
	Timestamp time.Time
	SessionID SessionID
	Session   *Session // Snapshot after the change, nil once deleted
	Payload   any      // Type-specific data
}

// EventForState returns the event a submission resulting in state produces
func EventForState(state State) EventType {
	switch state {
	case StateValidEndNode:
		return EventLineDrawn
	case StateGameOver:
		return EventGameOver
	case StateError:
		return EventGameFailed
	default:
		return EventNodeSelected
	}
}

// LineDrawnPayload contains data for line drawn events
type LineDrawnPayload struct {
	Player int  `json:"player"`
	Line   Line `json:"line"`
}

// GameOverPayload contains data for game over events
type GameOverPayload struct {
	Winner int `json:"winner"`
	Turns  int `json:"turns"`
}

// GameFailedPayload contains data for game failed events
type GameFailedPayload struct {
	Message string `json:"message"`
}
