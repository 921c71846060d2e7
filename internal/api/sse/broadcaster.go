package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/octiline/internal/api/response"
	"github.com/mcoot/octiline/internal/model"
	"github.com/mcoot/octiline/internal/services/game"
)

// Broadcaster forwards session events to the session's connected clients
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

var _ game.Publisher = (*Broadcaster)(nil)

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish sends the event to every client watching its session.
// Deleting a session disconnects its clients after the event is delivered.
func (b *Broadcaster) Publish(event model.Event) {
	hub := b.hubManager.GetHub(event.SessionID)
	if hub == nil {
		return
	}

	msg, err := EventMessage(event)
	if err != nil {
		b.logger.Error("sse failed to render event",
			slog.String("session_id", string(event.SessionID)),
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return
	}
	hub.Broadcast(msg)

	if event.Type == model.EventSessionDeleted {
		b.hubManager.RemoveHub(event.SessionID)
	}
}

// EventMessage renders an event as a hub message named after its type
func EventMessage(event model.Event) (Message, error) {
	data, err := json.Marshal(response.EventFromModel(event))
	if err != nil {
		return Message{}, err
	}
	return Message{Event: string(event.Type), Data: string(data)}, nil
}

// SnapshotMessage renders the current state of a session as a "state" message
func SnapshotMessage(session *model.Session) (Message, error) {
	data, err := json.Marshal(response.SessionFromModel(session))
	if err != nil {
		return Message{}, err
	}
	return Message{Event: "state", Data: string(data)}, nil
}
