package room

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/litfish/litgame-go/internal/dependencies/keylock"
	"github.com/litfish/litgame-go/internal/dependencies/mocks"
	"github.com/litfish/litgame-go/internal/model"
	"github.com/litfish/litgame-go/internal/storage/memory"
	"github.com/litfish/litgame-go/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.controller = NewController(s.storage, s.clock, keylock.New(), testutil.NopLogger())
	s.ctx = context.Background()
}

func player(id model.PlayerID, name string) model.Player {
	return model.Player{ID: id, DisplayName: name, IsGuest: true}
}

// CreateRoom tests

func (s *ControllerSuite) TestCreateRoomSucceeds() {
	room, err := s.controller.CreateRoom(s.ctx, player("p1", "Asha"), "r1", 8)
	s.Require().NoError(err)

	s.Equal(model.RoomName("r1"), room.Name)
	s.Equal(model.RoomStatusWaiting, room.Status)
	s.Equal(model.DefaultCapacity, room.Capacity)
	s.Require().Len(room.Players, 1)
	s.True(room.Players[0].IsHost)
	s.Equal(model.TeamUnassigned, room.Players[0].Team)
	s.Empty(room.Players[0].Hand)
	s.Equal(s.clock.Now(), room.CreatedAt)
}

func (s *ControllerSuite) TestCreateRoomDefaultsCapacity() {
	room, err := s.controller.CreateRoom(s.ctx, player("p1", "Asha"), "r1", 0)
	s.Require().NoError(err)
	s.Equal(model.DefaultCapacity, room.Capacity)
}

func (s *ControllerSuite) TestCreateRoomRejectsOtherCapacities() {
	// Six cards each times anything but eight seats cannot consume a
	// 48-card deck exactly.
	_, err := s.controller.CreateRoom(s.ctx, player("p1", "Asha"), "r1", 6)
	s.ErrorIs(err, model.ErrInvalidCapacity)
}

func (s *ControllerSuite) TestCreateRoomFailsOnDuplicateName() {
	_, err := s.controller.CreateRoom(s.ctx, player("p1", "Asha"), "r1", 8)
	s.Require().NoError(err)

	_, err = s.controller.CreateRoom(s.ctx, player("p2", "Bram"), "r1", 8)
	s.ErrorIs(err, model.ErrRoomExists)
}

func (s *ControllerSuite) TestCreateRoomFailsOnEmptyInput() {
	_, err := s.controller.CreateRoom(s.ctx, player("p1", "Asha"), "", 8)
	s.ErrorIs(err, model.ErrInvalidInput)

	_, err = s.controller.CreateRoom(s.ctx, player("p1", ""), "r1", 8)
	s.ErrorIs(err, model.ErrInvalidInput)
}

// JoinRoom tests

func (s *ControllerSuite) TestJoinRoomAppendsInJoinOrder() {
	_, err := s.controller.CreateRoom(s.ctx, player("p1", "Asha"), "r1", 8)
	s.Require().NoError(err)

	room, err := s.controller.JoinRoom(s.ctx, "r1", player("p2", "Bram"))
	s.Require().NoError(err)

	s.Require().Len(room.Players, 2)
	s.Equal(model.PlayerID("p2"), room.Players[1].ID)
	s.Equal(model.TeamUnassigned, room.Players[1].Team)
	s.False(room.Players[1].IsHost)
}

func (s *ControllerSuite) TestJoinRoomFailsWhenMissing() {
	_, err := s.controller.JoinRoom(s.ctx, "nope", player("p2", "Bram"))
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *ControllerSuite) TestJoinRoomFailsWhenFull() {
	_, err := s.controller.CreateRoom(s.ctx, player("p0", "Host"), "r1", 8)
	s.Require().NoError(err)
	for i := 1; i < model.DefaultCapacity; i++ {
		id := model.PlayerID(fmt.Sprintf("p%d", i))
		_, err = s.controller.JoinRoom(s.ctx, "r1", player(id, fmt.Sprintf("Guest%d", i)))
		s.Require().NoError(err)
	}

	_, err = s.controller.JoinRoom(s.ctx, "r1", player("p9", "Late"))
	s.ErrorIs(err, model.ErrRoomFull)
}

func (s *ControllerSuite) TestJoinRoomFailsWhenAlreadySeated() {
	_, err := s.controller.CreateRoom(s.ctx, player("p1", "Asha"), "r1", 8)
	s.Require().NoError(err)

	_, err = s.controller.JoinRoom(s.ctx, "r1", player("p1", "Asha"))
	s.ErrorIs(err, model.ErrAlreadyInRoom)
}

func (s *ControllerSuite) TestJoinRoomFailsOncePlaying() {
	room, err := s.controller.CreateRoom(s.ctx, player("p1", "Asha"), "r1", 8)
	s.Require().NoError(err)
	room.Status = model.RoomStatusPlaying
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	_, err = s.controller.JoinRoom(s.ctx, "r1", player("p2", "Bram"))
	s.ErrorIs(err, model.ErrGameInProgress)
}

// JoinTeam tests

func (s *ControllerSuite) TestJoinTeamAssignsTeam() {
	_, err := s.controller.CreateRoom(s.ctx, player("p1", "Asha"), "r1", 8)
	s.Require().NoError(err)

	room, err := s.controller.JoinTeam(s.ctx, "r1", "p1", model.TeamRed)
	s.Require().NoError(err)
	s.Equal(model.TeamRed, room.Players[0].Team)

	// Switching teams before the game starts is allowed.
	room, err = s.controller.JoinTeam(s.ctx, "r1", "p1", model.TeamBlue)
	s.Require().NoError(err)
	s.Equal(model.TeamBlue, room.Players[0].Team)
}

func (s *ControllerSuite) TestJoinTeamRejectsUnknownTeam() {
	_, err := s.controller.CreateRoom(s.ctx, player("p1", "Asha"), "r1", 8)
	s.Require().NoError(err)

	_, err = s.controller.JoinTeam(s.ctx, "r1", "p1", model.Team("green"))
	s.ErrorIs(err, model.ErrInvalidInput)
}

func (s *ControllerSuite) TestJoinTeamFailsWhenNotSeated() {
	_, err := s.controller.CreateRoom(s.ctx, player("p1", "Asha"), "r1", 8)
	s.Require().NoError(err)

	_, err = s.controller.JoinTeam(s.ctx, "r1", "p2", model.TeamRed)
	s.ErrorIs(err, model.ErrNotInRoom)
}

// LeaveRoom tests

func (s *ControllerSuite) TestLeaveRoomReassignsHost() {
	_, err := s.controller.CreateRoom(s.ctx, player("p1", "Asha"), "r1", 8)
	s.Require().NoError(err)
	_, err = s.controller.JoinRoom(s.ctx, "r1", player("p2", "Bram"))
	s.Require().NoError(err)

	room, err := s.controller.LeaveRoom(s.ctx, "r1", "p1")
	s.Require().NoError(err)

	s.Require().Len(room.Players, 1)
	s.Equal(model.PlayerID("p2"), room.Players[0].ID)
	s.True(room.Players[0].IsHost)
}

func (s *ControllerSuite) TestLeaveRoomDeletesEmptyRoom() {
	_, err := s.controller.CreateRoom(s.ctx, player("p1", "Asha"), "r1", 8)
	s.Require().NoError(err)

	room, err := s.controller.LeaveRoom(s.ctx, "r1", "p1")
	s.Require().NoError(err)
	s.Nil(room)

	_, err = s.controller.GetRoom(s.ctx, "r1")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *ControllerSuite) TestLeaveRoomFailsMidGame() {
	room, err := s.controller.CreateRoom(s.ctx, player("p1", "Asha"), "r1", 8)
	s.Require().NoError(err)
	room.Status = model.RoomStatusPlaying
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	_, err = s.controller.LeaveRoom(s.ctx, "r1", "p1")
	s.ErrorIs(err, model.ErrGameInProgress)
}
