package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/octiline/internal/api/sse"
	"github.com/mcoot/octiline/internal/services/game"
)

// EventsHandler streams session events over SSE
type EventsHandler struct {
	controller game.ControllerInterface
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(controller game.ControllerInterface, hubManager *sse.HubManager, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		controller: controller,
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "events-handler")),
	}
}

// Stream handles GET /api/v1/sessions/{id}/events
//
// The current state is sent first, followed by every event for the session.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	session, err := h.controller.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	snapshot, err := sse.SnapshotMessage(session)
	if err != nil {
		h.logger.Error("failed to render session snapshot",
			slog.String("session_id", string(id)),
			slog.Any("error", err))
		WriteError(w, err)
		return
	}

	sse.ServeSSE(w, r, h.hubManager.GetOrCreateHub(id), &snapshot)
}
