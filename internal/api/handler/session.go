package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/octiline/internal/api/request"
	"github.com/mcoot/octiline/internal/api/response"
	"github.com/mcoot/octiline/internal/model"
	"github.com/mcoot/octiline/internal/services/bot"
	"github.com/mcoot/octiline/internal/services/game"
)

// SessionHandler handles session and gameplay endpoints
type SessionHandler struct {
	controller game.ControllerInterface
	botService *bot.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(controller game.ControllerInterface, botService *bot.Service) *SessionHandler {
	return &SessionHandler{
		controller: controller,
		botService: botService,
	}
}

func sessionID(r *http.Request) model.SessionID {
	return model.SessionID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.controller.CreateSession(r.Context(), req.GridSize)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(session))
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.controller.GetSession(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Click handles POST /api/v1/sessions/{id}/clicks
//
// Rejected selections still return 200; the session's state and message
// describe the rejection.
func (h *SessionHandler) Click(w http.ResponseWriter, r *http.Request) {
	var req request.ClickRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	p, err := req.Point()
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	session, err := h.controller.Submit(r.Context(), sessionID(r), p)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Reset handles POST /api/v1/sessions/{id}/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, err := h.controller.Reset(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// ReportError handles POST /api/v1/sessions/{id}/error
func (h *SessionHandler) ReportError(w http.ResponseWriter, r *http.Request) {
	var req request.ReportErrorRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Error == "" {
		WriteError(w, NewInvalidRequestError("error is required"))
		return
	}

	session, err := h.controller.ReportError(r.Context(), sessionID(r), req.Error)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Delete handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.DeleteSession(r.Context(), sessionID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Moves handles GET /api/v1/sessions/{id}/moves
func (h *SessionHandler) Moves(w http.ResponseWriter, r *http.Request) {
	set, err := h.botService.Moves(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveSetFromService(set))
}

// Bot handles POST /api/v1/sessions/{id}/bot
func (h *SessionHandler) Bot(w http.ResponseWriter, r *http.Request) {
	var req request.BotTurnRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.botService.PlayBotTurn(r.Context(), sessionID(r), req.Strategy)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// History handles GET /api/v1/history
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	summaries, err := h.controller.ListSummaries(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HistoryFromModel(summaries))
}
