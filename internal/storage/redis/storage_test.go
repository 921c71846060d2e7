package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/octiline/internal/model"
	"github.com/mcoot/octiline/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini    *miniredis.Miniredis
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour
	cfg.MaxSummaries = 5

	s.storage = NewWithClient(client, cfg)
	s.Storage = s.storage
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Redis-specific tests

func (s *StorageSuite) TestSessionTTL() {
	session := &model.Session{ID: "session-1", Game: model.NewGame(4)}
	s.Require().NoError(s.storage.SaveSession(s.Ctx, session))

	s.Equal(time.Hour, s.mini.TTL(sessionKey("session-1")))

	s.mini.FastForward(2 * time.Hour)
	_, err := s.storage.GetSession(s.Ctx, "session-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSummariesCapped() {
	for i := 0; i < 8; i++ {
		summary := &model.GameSummary{SessionID: "session", Turns: i}
		s.Require().NoError(s.storage.SaveSummary(s.Ctx, summary))
	}

	summaries, err := s.storage.ListSummaries(s.Ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(summaries, 5)
	s.Equal(7, summaries[0].Turns)
	s.Equal(3, summaries[4].Turns)
}

func (s *StorageSuite) TestKeysArePrefixed() {
	session := &model.Session{ID: "session-1", Game: model.NewGame(4)}
	s.Require().NoError(s.storage.SaveSession(s.Ctx, session))

	s.True(s.mini.Exists("octiline:session:session-1"))
}
