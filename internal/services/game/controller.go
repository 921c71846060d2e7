package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/octiline/internal/dependencies/clock"
	"github.com/mcoot/octiline/internal/dependencies/ids"
	"github.com/mcoot/octiline/internal/model"
	"github.com/mcoot/octiline/internal/storage"
)

// History limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Config holds controller settings
type Config struct {
	// DefaultGridSize is used when a session is created without a size
	DefaultGridSize int
}

// DefaultConfig returns sensible defaults for the controller
func DefaultConfig() Config {
	return Config{
		DefaultGridSize: model.DefaultGridSize,
	}
}

// Publisher is notified after every change to a session
type Publisher interface {
	Publish(event model.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.Event) {}

// MoveChooser picks the next move for the player whose turn it is
type MoveChooser interface {
	ChooseMove(game *model.Game) (model.Move, bool)
}

// Controller owns session lifetime and feeds clicks to each session's game
type Controller struct {
	storage   storage.Storage
	clock     clock.Clock
	ids       ids.Generator
	publisher Publisher
	cfg       Config
	logger    *slog.Logger
	locks     *sessionLocks
}

// NewController creates a new session Controller. publisher may be nil.
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	ids ids.Generator,
	publisher Publisher,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if cfg.DefaultGridSize == 0 {
		cfg.DefaultGridSize = model.DefaultGridSize
	}
	return &Controller{
		storage:   storage,
		clock:     clock,
		ids:       ids,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "game-controller")),
		locks:     newSessionLocks(),
	}
}

// CreateSession starts a new session. A gridSize of 0 selects the default size.
func (c *Controller) CreateSession(ctx context.Context, gridSize int) (*model.Session, error) {
	if gridSize == 0 {
		gridSize = c.cfg.DefaultGridSize
	}
	if gridSize < model.MinGridSize || gridSize > model.MaxGridSize {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", model.ErrInvalidGridSize, gridSize, model.MinGridSize, model.MaxGridSize)
	}

	now := c.clock.Now()
	session := &model.Session{
		ID:        c.ids.NewSessionID(),
		Game:      model.NewGame(gridSize),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("session created",
		slog.String("session_id", string(session.ID)),
		slog.Int("grid_size", gridSize),
	)
	c.publish(model.EventSessionCreated, session, nil)

	return session, nil
}

// GetSession retrieves a session by ID
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return c.storage.GetSession(ctx, id)
}

// Submit feeds one clicked node to the session's game.
//
// Rejected selections are not errors: they are reported through the game's
// INVALID_* states. Internal game failures are persisted as StateError.
// Submitting to a finished game returns ErrGameOver or ErrGameFailed.
func (c *Controller) Submit(ctx context.Context, id model.SessionID, p model.Point) (*model.Session, error) {
	unlock := c.locks.lock(id)
	defer unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.apply(session, p); err != nil {
		return nil, err
	}
	if err := c.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// PlayTurn plays one complete turn chosen by chooser. If the current player has
// already selected a start node, the chooser is expected to continue from it.
func (c *Controller) PlayTurn(ctx context.Context, id model.SessionID, chooser MoveChooser) (*model.Session, error) {
	unlock := c.locks.lock(id)
	defer unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	game := session.Game
	switch game.State() {
	case model.StateGameOver:
		return nil, model.ErrGameOver
	case model.StateError:
		return nil, model.ErrGameFailed
	}

	move, ok := chooser.ChooseMove(game)
	if !ok {
		return nil, model.ErrNoLegalMoves
	}

	clicks := []model.Point{move.Start, move.End}
	if start, pending := game.PendingStart(); pending && start == move.Start {
		clicks = clicks[1:]
	}
	for _, p := range clicks {
		if err := c.apply(session, p); err != nil {
			return nil, err
		}
		if game.State() != model.StateValidStartNode {
			break
		}
	}

	if err := c.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// apply submits p to the session's game and logs and publishes the outcome
func (c *Controller) apply(session *model.Session, p model.Point) error {
	game := session.Game
	player := game.Player()

	err := game.Submit(p)
	switch {
	case errors.Is(err, model.ErrGameOver), errors.Is(err, model.ErrGameFailed):
		return err
	case model.IsPlayerError(err):
		c.logger.Debug("selection rejected",
			slog.String("session_id", string(session.ID)),
			slog.Int("player", player),
			slog.String("error", err.Error()),
		)
	case err != nil:
		c.logger.Error("game failed",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
	}

	session.UpdatedAt = c.clock.Now()

	if line, ok := game.NewLine(); ok {
		c.logger.Info("line drawn",
			slog.String("session_id", string(session.ID)),
			slog.Int("player", player),
			slog.String("line", line.String()),
		)
	}

	var payload any
	switch game.State() {
	case model.StateValidEndNode:
		line, _ := game.NewLine()
		payload = model.LineDrawnPayload{Player: player, Line: line}
	case model.StateGameOver:
		payload = model.GameOverPayload{Winner: game.Winner(), Turns: game.Turns()}
	case model.StateError:
		payload = model.GameFailedPayload{Message: game.ErrorMessage()}
	}

	c.publish(model.EventForState(game.State()), session, payload)
	return nil
}

// save persists the session, recording a summary if its game just finished
func (c *Controller) save(ctx context.Context, session *model.Session) error {
	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}

	game := session.Game
	if game.State() != model.StateGameOver {
		return nil
	}
	// Only the submission that completed the game carries its final line
	if _, ok := game.NewLine(); !ok {
		return nil
	}

	summary := model.NewGameSummary(session.ID, game, session.UpdatedAt)
	if err := c.storage.SaveSummary(ctx, summary); err != nil {
		c.logger.Error("failed to save game summary",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.logger.Info("game over",
		slog.String("session_id", string(session.ID)),
		slog.Int("winner", summary.Winner),
		slog.Int("turns", summary.Turns),
	)
	return nil
}

// Reset replaces the session's game with a fresh one of the same grid size
func (c *Controller) Reset(ctx context.Context, id model.SessionID) (*model.Session, error) {
	unlock := c.locks.lock(id)
	defer unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Game = model.NewGame(session.Game.GridSize())
	session.UpdatedAt = c.clock.Now()
	if err := c.save(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session reset", slog.String("session_id", string(id)))
	c.publish(model.EventSessionReset, session, nil)
	return session, nil
}

// ReportError moves the session's game to StateError with a client-supplied message
func (c *Controller) ReportError(ctx context.Context, id model.SessionID, message string) (*model.Session, error) {
	unlock := c.locks.lock(id)
	defer unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Game.Fail(message)
	session.UpdatedAt = c.clock.Now()
	if err := c.save(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Warn("client reported error",
		slog.String("session_id", string(id)),
		slog.String("message", message),
	)
	c.publish(model.EventGameFailed, session, model.GameFailedPayload{Message: message})
	return session, nil
}

// DeleteSession removes a session
func (c *Controller) DeleteSession(ctx context.Context, id model.SessionID) error {
	unlock := c.locks.lock(id)
	defer unlock()

	if _, err := c.storage.GetSession(ctx, id); err != nil {
		return err
	}
	if err := c.storage.DeleteSession(ctx, id); err != nil {
		return err
	}

	c.logger.Info("session deleted", slog.String("session_id", string(id)))
	c.publisher.Publish(model.Event{
		Type:      model.EventSessionDeleted,
		Timestamp: c.clock.Now(),
		SessionID: id,
	})
	return nil
}

// ListSummaries returns recently completed games, newest first.
// limit is clamped to [1, MaxHistoryLimit]; 0 selects DefaultHistoryLimit.
func (c *Controller) ListSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return c.storage.ListSummaries(ctx, limit)
}

func (c *Controller) publish(eventType model.EventType, session *model.Session, payload any) {
	c.publisher.Publish(model.Event{
		Type:      eventType,
		Timestamp: session.UpdatedAt,
		SessionID: session.ID,
		Session:   session.Clone(),
		Payload:   payload,
	})
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateSession(ctx context.Context, gridSize int) (*model.Session, error)
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	Submit(ctx context.Context, id model.SessionID, p model.Point) (*model.Session, error)
	PlayTurn(ctx context.Context, id model.SessionID, chooser MoveChooser) (*model.Session, error)
	Reset(ctx context.Context, id model.SessionID) (*model.Session, error)
	ReportError(ctx context.Context, id model.SessionID, message string) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	ListSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error)
}

var _ ControllerInterface = (*Controller)(nil)
