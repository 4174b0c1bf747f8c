package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/litfish/litgame-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
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
	cfg.GuestPlayerTTL = time.Hour
	cfg.RoomTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Asha",
		IsGuest:     false,
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGuestPlayerExpires() {
	player := &model.Player{ID: "guest-1", DisplayName: "Asha", IsGuest: true}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	s.mini.FastForward(2 * time.Hour)

	_, err = s.storage.GetPlayer(s.ctx, "guest-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestRegisteredPlayerDoesNotExpire() {
	player := &model.Player{ID: "player-1", DisplayName: "Asha", IsGuest: false}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	s.mini.FastForward(2 * time.Hour)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.NoError(err)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Asha"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Registered player tests

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "asha",
		PasswordHash: "hash",
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	byID, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("asha", byID.Username)

	byUsername, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "asha")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), byUsername.PlayerID)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Room tests

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := &model.Room{
		Name:     "r1",
		Status:   model.RoomStatusPlaying,
		Capacity: model.DefaultCapacity,
		Players: []model.RoomPlayer{
			{
				ID:     "player-1",
				Name:   "Asha",
				Team:   model.TeamRed,
				IsHost: true,
				Hand: []model.Card{
					{Suit: model.SuitHearts, Rank: model.RankAce, SetType: model.SetLower},
				},
			},
		},
		CurrentTurn: "player-1",
		CapturedSets: []model.CapturedSet{
			{Team: model.TeamRed, Suit: model.SuitSpades, SetType: model.SetUpper},
		},
		LastAction: "Asha started the game",
	}

	err := s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "r1")
	s.Require().NoError(err)
	s.Equal(room.Name, retrieved.Name)
	s.Equal(model.RoomStatusPlaying, retrieved.Status)
	s.Require().Len(retrieved.Players, 1)
	s.Equal(room.Players[0].Hand, retrieved.Players[0].Hand)
	s.Equal(room.CapturedSets, retrieved.CapturedSets)
	s.Equal(model.PlayerID("player-1"), retrieved.CurrentTurn)
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestRoomExists() {
	exists, err := s.storage.RoomExists(s.ctx, "r1")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveRoom(s.ctx, &model.Room{Name: "r1"})

	exists, err = s.storage.RoomExists(s.ctx, "r1")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestDeleteRoom() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{Name: "r1"})

	err := s.storage.DeleteRoom(s.ctx, "r1")
	s.Require().NoError(err)

	_, err = s.storage.GetRoom(s.ctx, "r1")
	s.ErrorIs(err, model.ErrRoomNotFound)
}
