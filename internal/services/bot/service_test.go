package bot_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/octiline/internal/dependencies/mocks"
	"github.com/mcoot/octiline/internal/model"
	"github.com/mcoot/octiline/internal/services/bot"
	"github.com/mcoot/octiline/internal/services/game"
	"github.com/mcoot/octiline/internal/storage/memory"
	"github.com/mcoot/octiline/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	store      *memory.Storage
	mockRandom *mocks.MockRandom

	gameController *game.Controller
	botService     *bot.Service

	ctx context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.New()
	s.mockRandom = mocks.NewMockRandom()
	logger := testutil.NopLogger()
	s.ctx = context.Background()

	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.gameController = game.NewController(s.store, clk, mocks.NewMockIDs("session-1"), nil, game.DefaultConfig(), logger)
	s.botService = bot.NewService(s.gameController, bot.DefaultStrategies(s.mockRandom), logger)
}

func (s *ServiceSuite) createSession(size int) model.SessionID {
	session, err := s.gameController.CreateSession(s.ctx, size)
	s.Require().NoError(err)
	return session.ID
}

func (s *ServiceSuite) TestPlayBotTurn_DrawsLine() {
	id := s.createSession(4)

	session, err := s.botService.PlayBotTurn(s.ctx, id, "")
	s.Require().NoError(err)
	s.Equal(model.StateValidEndNode, session.Game.State())
	s.Equal(1, session.Game.Turns())
	s.Equal(model.PlayerTwo, session.Game.Player())
}

func (s *ServiceSuite) TestPlayBotTurn_UnknownStrategy() {
	id := s.createSession(4)

	_, err := s.botService.PlayBotTurn(s.ctx, id, "minimax")
	s.ErrorIs(err, model.ErrUnknownStrategy)
}

func (s *ServiceSuite) TestPlayBotTurn_LogsStrategy() {
	logger, logs := testutil.NewLogRecorder()
	service := bot.NewService(s.gameController, bot.DefaultStrategies(s.mockRandom), logger)
	id := s.createSession(4)

	_, err := service.PlayBotTurn(s.ctx, id, "")
	s.Require().NoError(err)

	entry, ok := logs.Find("bot turn played")
	s.Require().True(ok)
	s.Equal(model.BotStrategyRandom, entry.Attrs["strategy"])
	s.Equal("Random", entry.Attrs["bot"])
	s.Equal(string(id), entry.Attrs["session_id"])
}

func (s *ServiceSuite) TestPlayBotTurn_PlaysGameToCompletion() {
	id := s.createSession(4)

	var session *model.Session
	for i := 0; i < 16; i++ {
		var err error
		session, err = s.botService.PlayBotTurn(s.ctx, id, model.BotStrategyGreedy)
		s.Require().NoError(err)
		if session.Game.State() == model.StateGameOver {
			break
		}
	}
	s.Require().Equal(model.StateGameOver, session.Game.State())
	s.NotZero(session.Game.Winner())

	_, err := s.botService.PlayBotTurn(s.ctx, id, model.BotStrategyGreedy)
	s.ErrorIs(err, model.ErrGameOver)

	summaries, err := s.gameController.ListSummaries(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(summaries, 1)
}

func (s *ServiceSuite) TestMoves() {
	id := s.createSession(2)

	set, err := s.botService.Moves(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(model.PlayerOne, set.Player)
	s.Len(set.StartNodes, 4)
	s.Nil(set.PendingFrom)
	s.Len(set.Moves, 12)

	_, err = s.gameController.Submit(s.ctx, id, model.P(0, 0))
	s.Require().NoError(err)

	set, err = s.botService.Moves(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(set.PendingFrom)
	s.Equal(model.P(0, 0), *set.PendingFrom)
	s.Empty(set.StartNodes)
	s.Len(set.Moves, 3)
}

func (s *ServiceSuite) TestMoves_NotFound() {
	_, err := s.botService.Moves(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}
