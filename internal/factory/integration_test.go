package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/octiline/internal/api/sse"
	"github.com/mcoot/octiline/internal/model"
	"github.com/mcoot/octiline/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) subscribe(id model.SessionID) *sse.Client {
	hub := s.app.HubManager.GetOrCreateHub(id)
	client := sse.NewClient()
	s.Require().True(hub.Register(client))
	return client
}

func (s *IntegrationSuite) nextMessage(client *sse.Client) (sse.Message, bool) {
	select {
	case msg, ok := <-client.Messages():
		return msg, ok
	case <-time.After(time.Second):
		s.FailNow("timed out waiting for message")
		return sse.Message{}, false
	}
}

// Test: Complete game flow from session creation to game completion
func (s *IntegrationSuite) TestCompleteGameFlow() {
	session, err := s.app.GameController.CreateSession(s.ctx, 4)
	s.Require().NoError(err)
	s.Equal(model.SessionID("session-1"), session.ID)

	for _, p := range testutil.SampleGameClicks {
		_, err := s.app.GameController.Submit(s.ctx, session.ID, p)
		s.Require().NoError(err)
	}

	stored, err := s.app.Storage.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.StateGameOver, stored.Game.State())
	s.Equal(testutil.SampleGameWinner, stored.Game.Winner())
	s.Equal(testutil.SampleGamePath, stored.Game.Path().Nodes())

	summaries, err := s.app.GameController.ListSummaries(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(summaries, 1)
	s.Equal(session.ID, summaries[0].SessionID)
	s.Equal(9, summaries[0].Turns)
	s.Equal(len(testutil.SampleGamePath), summaries[0].PathLength)
}

// Test: Events published by the controller reach subscribed hub clients
func (s *IntegrationSuite) TestEventsReachSubscribers() {
	session, err := s.app.GameController.CreateSession(s.ctx, 3)
	s.Require().NoError(err)
	client := s.subscribe(session.ID)

	_, err = s.app.GameController.Submit(s.ctx, session.ID, model.P(0, 0))
	s.Require().NoError(err)
	msg, ok := s.nextMessage(client)
	s.Require().True(ok)
	s.Equal(string(model.EventNodeSelected), msg.Event)
	s.Contains(msg.Data, `"state":"VALID_START_NODE"`)

	_, err = s.app.GameController.Submit(s.ctx, session.ID, model.P(1, 1))
	s.Require().NoError(err)
	msg, ok = s.nextMessage(client)
	s.Require().True(ok)
	s.Equal(string(model.EventLineDrawn), msg.Event)
	s.Contains(msg.Data, `"state":"VALID_END_NODE"`)
	s.Contains(msg.Data, `"player":1`)
}

// Test: Deleting a session delivers the event and then disconnects subscribers
func (s *IntegrationSuite) TestDeleteDisconnectsSubscribers() {
	session, err := s.app.GameController.CreateSession(s.ctx, 3)
	s.Require().NoError(err)
	client := s.subscribe(session.ID)

	s.Require().NoError(s.app.GameController.DeleteSession(s.ctx, session.ID))

	msg, ok := s.nextMessage(client)
	s.Require().True(ok)
	s.Equal(string(model.EventSessionDeleted), msg.Event)

	_, ok = s.nextMessage(client)
	s.False(ok, "client channel should be closed")
	s.Nil(s.app.HubManager.GetHub(session.ID))
}

// Test: Bots can play a whole game against each other
func (s *IntegrationSuite) TestBotsPlayToCompletion() {
	session, err := s.app.GameController.CreateSession(s.ctx, 3)
	s.Require().NoError(err)

	strategies := []string{model.BotStrategyRandom, model.BotStrategyGreedy}
	var current *model.Session
	for i := 0; i < 100; i++ {
		current, err = s.app.BotService.PlayBotTurn(s.ctx, session.ID, strategies[i%2])
		s.Require().NoError(err)
		if current.Game.IsTerminal() {
			break
		}
	}

	s.Require().NotNil(current)
	s.Equal(model.StateGameOver, current.Game.State())
	s.Contains([]int{model.PlayerOne, model.PlayerTwo}, current.Game.Winner())

	_, err = s.app.BotService.PlayBotTurn(s.ctx, session.ID, "")
	s.ErrorIs(err, model.ErrGameOver)

	summaries, err := s.app.GameController.ListSummaries(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(summaries, 1)
}

// Test: Reset keeps the session but starts a new game
func (s *IntegrationSuite) TestResetAfterGameOver() {
	session, err := s.app.GameController.CreateSession(s.ctx, 4)
	s.Require().NoError(err)
	for _, p := range testutil.SampleGameClicks {
		_, err := s.app.GameController.Submit(s.ctx, session.ID, p)
		s.Require().NoError(err)
	}

	s.app.MockClock.Advance(time.Minute)
	reset, err := s.app.GameController.Reset(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(session.ID, reset.ID)
	s.Equal(model.StateInitialize, reset.Game.State())
	s.Equal(4, reset.Game.GridSize())
	s.True(reset.UpdatedAt.After(reset.CreatedAt))

	_, err = s.app.GameController.Submit(s.ctx, session.ID, model.P(0, 0))
	s.NoError(err)
}
