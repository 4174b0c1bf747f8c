package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/litfish/litgame-go/internal/api/response"
	"github.com/litfish/litgame-go/internal/model"
)

// Broadcaster pushes authoritative room snapshots to SSE subscribers.
// Every successful action ends with one of these calls; failures are
// reported to the acting session only and never broadcast.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// BroadcastRoomUpdate sends the room snapshot after a registry or team
// change while the room is still gathering players.
func (b *Broadcaster) BroadcastRoomUpdate(room *model.Room) {
	b.send(room, "room-update")
}

// BroadcastGameStarted announces the transition to playing with the
// freshly dealt snapshot.
func (b *Broadcaster) BroadcastGameStarted(room *model.Room) {
	b.send(room, "game-started")
}

// BroadcastGameUpdate sends the snapshot after an in-game action
func (b *Broadcaster) BroadcastGameUpdate(room *model.Room) {
	b.send(room, "game-update")
}

// BroadcastGameFinished announces the terminal snapshot with the winner set
func (b *Broadcaster) BroadcastGameFinished(room *model.Room) {
	b.send(room, "game-finished")
}

func (b *Broadcaster) send(room *model.Room, event string) {
	hub := b.hubManager.GetHub(room.Name)
	if hub == nil {
		// Nobody subscribed to this room yet.
		return
	}

	data, err := json.Marshal(response.RoomFromModel(room))
	if err != nil {
		b.logger.Error("sse failed to encode room snapshot",
			slog.String("room", string(room.Name)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(event, string(data))
}
