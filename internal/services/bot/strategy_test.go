package bot_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/octiline/internal/dependencies/mocks"
	"github.com/mcoot/octiline/internal/model"
	"github.com/mcoot/octiline/internal/services/bot"
	"github.com/mcoot/octiline/internal/testutil"
)

var p = model.P

type StrategySuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
	random     *bot.RandomStrategy
	greedy     *bot.GreedyStrategy
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
	s.random = bot.NewRandomStrategy(s.mockRandom)
	s.greedy = bot.NewGreedyStrategy(s.mockRandom)
}

// LegalMoves tests

func (s *StrategySuite) TestLegalMoves_NewGame() {
	g := model.NewGame(2)

	moves := bot.LegalMoves(g)
	// Every node reaches the other three on a 2x2 grid
	s.Len(moves, 12)
	s.Equal(model.Move{Start: p(0, 0), End: p(1, 0)}, moves[0])
}

func (s *StrategySuite) TestLegalMoves_FromPathEnds() {
	g := model.NewGame(4)
	s.Require().NoError(testutil.PlayClicks(g, testutil.SampleGameClicks[:2]))

	for _, m := range bot.LegalMoves(g) {
		s.Contains([]model.Point{p(0, 0), p(0, 2)}, m.Start)
		line, err := model.NewLine(m.Start, m.End)
		s.Require().NoError(err)
		s.False(g.Path().Intersects(line))
	}
}

func (s *StrategySuite) TestLegalMoves_PendingStart() {
	g := model.NewGame(4)
	s.Require().NoError(testutil.PlayClicks(g, testutil.SampleGameClicks[:3]))

	moves := bot.LegalMoves(g)
	s.NotEmpty(moves)
	for _, m := range moves {
		s.Equal(p(0, 0), m.Start)
	}
}

func (s *StrategySuite) TestLegalMoves_FinishedGame() {
	g := model.NewGame(4)
	s.Require().NoError(testutil.PlayClicks(g, testutil.SampleGameClicks))

	s.Empty(bot.LegalMoves(g))
}

// RandomStrategy tests

func (s *StrategySuite) TestRandom_PicksIndexedMove() {
	g := model.NewGame(2)
	s.mockRandom.QueueIntn(3)

	move, ok := s.random.ChooseMove(g)
	s.Require().True(ok)
	s.Equal(bot.LegalMoves(g)[3], move)
}

func (s *StrategySuite) TestRandom_NoMoves() {
	g := model.NewGame(4)
	s.Require().NoError(testutil.PlayClicks(g, testutil.SampleGameClicks))

	_, ok := s.random.ChooseMove(g)
	s.False(ok)
}

// GreedyStrategy tests

func (s *StrategySuite) TestGreedy_TakesWinningMove() {
	g := model.NewGame(4)
	s.Require().NoError(testutil.PlayClicks(g, testutil.SampleGameClicks[:16]))

	// (3, 0) -> (2, 0) is the only legal move and it ends the game
	move, ok := s.greedy.ChooseMove(g)
	s.Require().True(ok)

	next := g.Clone()
	s.Require().NoError(next.Submit(move.Start))
	s.Require().NoError(next.Submit(move.End))
	s.Empty(bot.LegalMoves(next), "greedy should leave no replies when it can")
}

func (s *StrategySuite) TestGreedy_LeavesFewestReplies() {
	g := model.NewGame(2)

	move, ok := s.greedy.ChooseMove(g)
	s.Require().True(ok)

	next := g.Clone()
	s.Require().NoError(next.Submit(move.Start))
	s.Require().NoError(next.Submit(move.End))
	replies := len(bot.LegalMoves(next))

	for _, other := range bot.LegalMoves(g) {
		alt := g.Clone()
		s.Require().NoError(alt.Submit(other.Start))
		s.Require().NoError(alt.Submit(other.End))
		s.LessOrEqual(replies, len(bot.LegalMoves(alt)), other.String())
	}
}
