package room

import (
	"context"
	"log/slog"

	"github.com/litfish/litgame-go/internal/dependencies/clock"
	"github.com/litfish/litgame-go/internal/dependencies/keylock"
	"github.com/litfish/litgame-go/internal/model"
	"github.com/litfish/litgame-go/internal/storage"
)

// Controller manages the room registry: creation, membership and team
// assignment. Play actions live in the game controller.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	locks   *keylock.KeyLock
	logger  *slog.Logger
}

// NewController creates a new room Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	locks *keylock.KeyLock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		locks:   locks,
		logger:  logger,
	}
}

// CreateRoom registers a new room with the given player as host.
// The room name is the registry key and must be unused. Capacity is
// fixed at 8: six cards each consumes the 48-card deck exactly.
func (c *Controller) CreateRoom(ctx context.Context, host model.Player, name model.RoomName, capacity int) (*model.Room, error) {
	if name == "" || host.DisplayName == "" {
		return nil, model.ErrInvalidInput
	}
	if capacity == 0 {
		capacity = model.DefaultCapacity
	}
	if capacity != model.DefaultCapacity {
		return nil, model.ErrInvalidCapacity
	}

	c.locks.Lock(string(name))
	defer c.locks.Unlock(string(name))

	exists, err := c.storage.RoomExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrRoomExists
	}

	now := c.clock.Now()
	room := &model.Room{
		Name:     name,
		Status:   model.RoomStatusWaiting,
		Capacity: capacity,
		Players: []model.RoomPlayer{
			{
				ID:       host.ID,
				Name:     host.DisplayName,
				Team:     model.TeamUnassigned,
				Hand:     []model.Card{},
				IsHost:   true,
				JoinedAt: now,
			},
		},
		CapturedSets: []model.CapturedSet{},
		LastAction:   host.DisplayName + " created the room",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("room", string(name)),
		slog.String("host", string(host.ID)),
	)

	return room, nil
}

// GetRoom retrieves a room by name
func (c *Controller) GetRoom(ctx context.Context, name model.RoomName) (*model.Room, error) {
	return c.storage.GetRoom(ctx, name)
}

// JoinRoom appends a player to a waiting room in join order. The new
// seat starts with no team and an empty hand.
func (c *Controller) JoinRoom(ctx context.Context, name model.RoomName, player model.Player) (*model.Room, error) {
	if player.DisplayName == "" {
		return nil, model.ErrInvalidInput
	}

	c.locks.Lock(string(name))
	defer c.locks.Unlock(string(name))

	room, err := c.storage.GetRoom(ctx, name)
	if err != nil {
		return nil, err
	}

	switch room.Status {
	case model.RoomStatusPlaying:
		return nil, model.ErrGameInProgress
	case model.RoomStatusFinished:
		return nil, model.ErrGameFinished
	}

	if room.GetPlayer(player.ID) != nil {
		return nil, model.ErrAlreadyInRoom
	}
	if room.IsFull() {
		return nil, model.ErrRoomFull
	}

	room.Players = append(room.Players, model.RoomPlayer{
		ID:       player.ID,
		Name:     player.DisplayName,
		Team:     model.TeamUnassigned,
		Hand:     []model.Card{},
		JoinedAt: c.clock.Now(),
	})
	room.LastAction = player.DisplayName + " joined the room"
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// JoinTeam assigns the player to a team. It succeeds whenever the player
// is seated in the room; team balance is only enforced at game start.
func (c *Controller) JoinTeam(ctx context.Context, name model.RoomName, playerID model.PlayerID, team model.Team) (*model.Room, error) {
	if !model.ValidTeam(team) {
		return nil, model.ErrInvalidInput
	}

	c.locks.Lock(string(name))
	defer c.locks.Unlock(string(name))

	room, err := c.storage.GetRoom(ctx, name)
	if err != nil {
		return nil, err
	}

	if room.Status == model.RoomStatusFinished {
		return nil, model.ErrGameFinished
	}

	player := room.GetPlayer(playerID)
	if player == nil {
		return nil, model.ErrNotInRoom
	}

	player.Team = team
	room.LastAction = player.Name + " joined team " + string(team)
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// LeaveRoom removes a player from a waiting room. Once cards are dealt a
// seat cannot be vacated without breaking card conservation, so leaving
// a playing room is rejected. The room is deleted when its last player
// leaves; the host role passes to the oldest remaining seat otherwise.
func (c *Controller) LeaveRoom(ctx context.Context, name model.RoomName, playerID model.PlayerID) (*model.Room, error) {
	c.locks.Lock(string(name))
	defer c.locks.Unlock(string(name))

	room, err := c.storage.GetRoom(ctx, name)
	if err != nil {
		return nil, err
	}

	switch room.Status {
	case model.RoomStatusPlaying:
		return nil, model.ErrGameInProgress
	case model.RoomStatusFinished:
		return nil, model.ErrGameFinished
	}

	idx := room.PlayerIndex(playerID)
	if idx < 0 {
		return nil, model.ErrNotInRoom
	}

	leaving := room.Players[idx]
	room.Players = append(room.Players[:idx], room.Players[idx+1:]...)

	if len(room.Players) == 0 {
		if err := c.storage.DeleteRoom(ctx, name); err != nil {
			return nil, err
		}
		c.logger.Info("room deleted", slog.String("room", string(name)))
		return nil, nil
	}

	if leaving.IsHost {
		room.Players[0].IsHost = true
	}
	room.LastAction = leaving.Name + " left the room"
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// Disconnect records a dropped connection for a seated player. It
// deliberately mutates nothing: eviction and forfeit policy belong to
// the surrounding service, and a mid-game removal would strand cards.
func (c *Controller) Disconnect(ctx context.Context, name model.RoomName, playerID model.PlayerID) {
	room, err := c.storage.GetRoom(ctx, name)
	if err != nil {
		return
	}
	if room.GetPlayer(playerID) == nil {
		return
	}

	c.logger.Info("player disconnected",
		slog.String("room", string(name)),
		slog.String("player", string(playerID)),
	)
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateRoom(ctx context.Context, host model.Player, name model.RoomName, capacity int) (*model.Room, error)
	GetRoom(ctx context.Context, name model.RoomName) (*model.Room, error)
	JoinRoom(ctx context.Context, name model.RoomName, player model.Player) (*model.Room, error)
	JoinTeam(ctx context.Context, name model.RoomName, playerID model.PlayerID, team model.Team) (*model.Room, error)
	LeaveRoom(ctx context.Context, name model.RoomName, playerID model.PlayerID) (*model.Room, error)
	Disconnect(ctx context.Context, name model.RoomName, playerID model.PlayerID)
}

var _ ControllerInterface = (*Controller)(nil)
