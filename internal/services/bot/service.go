package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/octiline/internal/dependencies/random"
	"github.com/mcoot/octiline/internal/model"
	"github.com/mcoot/octiline/internal/services/game"
)

// DefaultStrategy is used when a bot turn is requested without naming a strategy
const DefaultStrategy = model.BotStrategyRandom

// MoveSet describes what the current player may do next
type MoveSet struct {
	Player      int
	StartNodes  []model.Point
	PendingFrom *model.Point
	Moves       []model.Move
}

// Service plays bot turns and answers legal-move queries
type Service struct {
	controller game.ControllerInterface
	strategies map[string]Strategy
	logger     *slog.Logger
}

// DefaultStrategies returns every built-in strategy keyed by name
func DefaultStrategies(rnd random.Random) map[string]Strategy {
	return map[string]Strategy{
		model.BotStrategyRandom: NewRandomStrategy(rnd),
		model.BotStrategyGreedy: NewGreedyStrategy(rnd),
	}
}

// NewService creates a new bot Service
func NewService(controller game.ControllerInterface, strategies map[string]Strategy, logger *slog.Logger) *Service {
	return &Service{
		controller: controller,
		strategies: strategies,
		logger:     logger.With(slog.String("component", "bot-service")),
	}
}

// Moves returns the legal moves for the session's current player
func (s *Service) Moves(ctx context.Context, id model.SessionID) (*MoveSet, error) {
	session, err := s.controller.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	g := session.Game
	set := &MoveSet{
		Player: g.Player(),
		Moves:  LegalMoves(g),
	}
	if g.IsTerminal() {
		return set, nil
	}
	if start, ok := g.PendingStart(); ok {
		set.PendingFrom = &start
	} else {
		set.StartNodes = g.ValidStartNodes().Sorted()
	}
	return set, nil
}

// PlayBotTurn plays one turn for the current player using the named strategy.
// An empty name selects DefaultStrategy.
func (s *Service) PlayBotTurn(ctx context.Context, id model.SessionID, strategy string) (*model.Session, error) {
	if strategy == "" {
		strategy = DefaultStrategy
	}
	chooser, ok := s.strategies[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, strategy)
	}

	session, err := s.controller.PlayTurn(ctx, id, chooser)
	if err != nil {
		return nil, err
	}

	s.logger.Info("bot turn played",
		slog.String("session_id", string(id)),
		slog.String("strategy", strategy),
		slog.String("bot", model.BotStrategyDisplayName(strategy)),
		slog.String("state", session.Game.State().String()),
	)
	return session, nil
}
