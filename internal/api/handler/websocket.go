package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/octiline/internal/api/apierr"
	"github.com/mcoot/octiline/internal/api/sse"
	"github.com/mcoot/octiline/internal/model"
	"github.com/mcoot/octiline/internal/services/bot"
	"github.com/mcoot/octiline/internal/services/game"
)

const wsWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
	CheckOrigin:       func(r *http.Request) bool { return true },
}

// Inbound websocket command types
const (
	wsCommandClick = "click"
	wsCommandReset = "reset"
	wsCommandBot   = "bot"
)

// wsCommand is a message sent by a websocket client
type wsCommand struct {
	Type     string `json:"type"`
	X        *int   `json:"x,omitempty"`
	Y        *int   `json:"y,omitempty"`
	Strategy string `json:"strategy,omitempty"`
}

// wsMessage is a message sent to a websocket client
type wsMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error *APIError       `json:"error,omitempty"`
}

// WebSocketHandler plays a session over a websocket. Commands are applied
// through the controller; results arrive as the same events SSE clients see.
type WebSocketHandler struct {
	controller game.ControllerInterface
	botService *bot.Service
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(controller game.ControllerInterface, botService *bot.Service, hubManager *sse.HubManager, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		controller: controller,
		botService: botService,
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "websocket-handler")),
	}
}

// wsConn serializes writes to a websocket connection
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) send(msg wsMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return c.conn.WriteJSON(msg)
}

// Handle handles GET /api/v1/sessions/{id}/ws
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	session, err := h.controller.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response
		h.logger.Warn("websocket upgrade failed",
			slog.String("session_id", string(id)),
			slog.Any("error", err))
		return
	}
	defer func() { _ = conn.Close() }()

	ws := &wsConn{conn: conn}
	snapshot, err := sse.SnapshotMessage(session)
	if err != nil {
		h.logger.Error("failed to render session snapshot", slog.Any("error", err))
		return
	}
	if err := ws.send(wsMessage{Event: snapshot.Event, Data: json.RawMessage(snapshot.Data)}); err != nil {
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	client := sse.NewClient()
	if !hub.Register(client) {
		return
	}
	defer hub.Unregister(client)

	h.logger.Info("websocket connected",
		slog.String("session_id", string(id)),
		slog.String("client_id", client.ID()))

	go h.forward(ws, client)
	h.readCommands(r, ws, id)

	h.logger.Info("websocket disconnected",
		slog.String("session_id", string(id)),
		slog.String("client_id", client.ID()))
}

// forward relays hub messages to the connection until the client is unregistered
func (h *WebSocketHandler) forward(ws *wsConn, client *sse.Client) {
	for msg := range client.Messages() {
		if err := ws.send(wsMessage{Event: msg.Event, Data: json.RawMessage(msg.Data)}); err != nil {
			_ = ws.conn.Close()
			return
		}
		if msg.Event == string(model.EventSessionDeleted) {
			_ = ws.conn.Close()
			return
		}
	}
	_ = ws.conn.Close()
}

// readCommands applies client commands until the connection fails
func (h *WebSocketHandler) readCommands(r *http.Request, ws *wsConn, id model.SessionID) {
	for {
		var cmd wsCommand
		if err := ws.conn.ReadJSON(&cmd); err != nil {
			if !isDecodeError(err) {
				return
			}
			_ = ws.send(errorMessage(NewInvalidRequestError("Invalid message")))
			continue
		}

		if err := h.apply(r, id, cmd); err != nil {
			if sendErr := ws.send(errorMessage(err)); sendErr != nil {
				return
			}
		}
	}
}

func (h *WebSocketHandler) apply(r *http.Request, id model.SessionID, cmd wsCommand) error {
	ctx := r.Context()
	var err error
	switch cmd.Type {
	case wsCommandClick:
		if cmd.X == nil || cmd.Y == nil {
			return NewInvalidRequestError("x and y are required")
		}
		_, err = h.controller.Submit(ctx, id, model.P(*cmd.X, *cmd.Y))
	case wsCommandReset:
		_, err = h.controller.Reset(ctx, id)
	case wsCommandBot:
		_, err = h.botService.PlayBotTurn(ctx, id, cmd.Strategy)
	default:
		return NewInvalidRequestError("Unknown message type: " + cmd.Type)
	}
	return err
}

func errorMessage(err error) wsMessage {
	body := apierr.Body(err)
	return wsMessage{Event: "error", Error: &body.Error}
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
