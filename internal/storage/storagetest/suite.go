// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/octiline/internal/model"
	"github.com/mcoot/octiline/internal/storage"
	"github.com/mcoot/octiline/internal/testutil"
)

// Suite runs the common storage tests against the backend returned by NewStorage.
// Backend test files embed it and set NewStorage in SetupTest.
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

var baseTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func newSession(id model.SessionID) *model.Session {
	return &model.Session{
		ID:        id,
		Game:      model.NewGame(model.DefaultGridSize),
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
}

// Session tests

func (s *Suite) TestSaveAndGetSession() {
	session := newSession("session-1")
	s.Require().NoError(testutil.PlayClicks(session.Game, testutil.SampleGameClicks[:5]))

	s.Require().NoError(s.Storage.SaveSession(s.Ctx, session))

	retrieved, err := s.Storage.GetSession(s.Ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.True(session.CreatedAt.Equal(retrieved.CreatedAt))
	s.Equal(model.StateValidStartNode, retrieved.Game.State())
	s.Equal(session.Game.Path().Nodes(), retrieved.Game.Path().Nodes())
	s.Equal(session.Game.Player(), retrieved.Game.Player())
	s.Equal(2, retrieved.Game.Turns())

	start, ok := retrieved.Game.PendingStart()
	s.Require().True(ok)
	s.Equal(model.P(1, 0), start)
}

func (s *Suite) TestSaveSessionOverwrites() {
	session := newSession("session-1")
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, session))

	s.Require().NoError(testutil.PlayClicks(session.Game, testutil.SampleGameClicks))
	session.UpdatedAt = baseTime.Add(time.Minute)
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, session))

	retrieved, err := s.Storage.GetSession(s.Ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(model.StateGameOver, retrieved.Game.State())
	s.Equal(testutil.SampleGameWinner, retrieved.Game.Winner())
	s.True(session.UpdatedAt.Equal(retrieved.UpdatedAt))
}

func (s *Suite) TestSavedSessionIsIsolated() {
	session := newSession("session-1")
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, session))

	// Mutating the caller's copy must not change what is stored
	s.Require().NoError(session.Game.Submit(model.P(0, 0)))

	retrieved, err := s.Storage.GetSession(s.Ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(model.StateInitialize, retrieved.Game.State())
}

func (s *Suite) TestGetSessionNotFound() {
	_, err := s.Storage.GetSession(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *Suite) TestDeleteSession() {
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, newSession("session-1")))

	s.Require().NoError(s.Storage.DeleteSession(s.Ctx, "session-1"))

	_, err := s.Storage.GetSession(s.Ctx, "session-1")
	s.ErrorIs(err, model.ErrSessionNotFound)

	// Deleting again is not an error
	s.NoError(s.Storage.DeleteSession(s.Ctx, "session-1"))
}

func (s *Suite) TestFailedSessionKeepsMessage() {
	session := newSession("session-1")
	session.Game.Fail("renderer crashed")
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, session))

	retrieved, err := s.Storage.GetSession(s.Ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(model.StateError, retrieved.Game.State())
	s.Equal("renderer crashed", retrieved.Game.ErrorMessage())
}

// Summary tests

func (s *Suite) TestListSummariesNewestFirst() {
	for i := 1; i <= 3; i++ {
		summary := &model.GameSummary{
			SessionID:   model.SessionID("session-" + string(rune('0'+i))),
			GridSize:    4,
			Winner:      model.PlayerOne,
			Turns:       9 + i,
			PathLength:  15,
			CompletedAt: baseTime.Add(time.Duration(i) * time.Minute),
		}
		s.Require().NoError(s.Storage.SaveSummary(s.Ctx, summary))
	}

	all, err := s.Storage.ListSummaries(s.Ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(model.SessionID("session-3"), all[0].SessionID)
	s.Equal(model.SessionID("session-1"), all[2].SessionID)
	s.Equal(12, all[0].Turns)
	s.True(baseTime.Add(3 * time.Minute).Equal(all[0].CompletedAt))

	limited, err := s.Storage.ListSummaries(s.Ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(limited, 2)
	s.Equal(model.SessionID("session-3"), limited[0].SessionID)
	s.Equal(model.SessionID("session-2"), limited[1].SessionID)
}

func (s *Suite) TestListSummariesEmpty() {
	summaries, err := s.Storage.ListSummaries(s.Ctx, 10)
	s.Require().NoError(err)
	s.Empty(summaries)
}
