package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/litfish/litgame-go/internal/api/middleware"
	"github.com/litfish/litgame-go/internal/api/request"
	"github.com/litfish/litgame-go/internal/api/response"
	"github.com/litfish/litgame-go/internal/api/sse"
	"github.com/litfish/litgame-go/internal/model"
	"github.com/litfish/litgame-go/internal/services/room"
)

// RoomHandler handles room registry endpoints
type RoomHandler struct {
	roomController *room.Controller
	hubManager     *sse.HubManager
	broadcaster    *sse.Broadcaster
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomController *room.Controller, hubManager *sse.HubManager, logger *slog.Logger) *RoomHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &RoomHandler{
		roomController: roomController,
		hubManager:     hubManager,
		broadcaster:    broadcaster,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	created, err := h.roomController.CreateRoom(r.Context(), *player, model.RoomName(req.Name), req.Capacity)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(created))
}

// Get handles GET /api/v1/rooms/{name}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := model.RoomName(mux.Vars(r)["name"])

	found, err := h.roomController.GetRoom(r.Context(), name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(found))
}

// Join handles POST /api/v1/rooms/{name}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	name := model.RoomName(mux.Vars(r)["name"])

	joined, err := h.roomController.JoinRoom(r.Context(), name, *player)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastRoomUpdate(joined)
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(joined))
}

// Leave handles POST /api/v1/rooms/{name}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	name := model.RoomName(mux.Vars(r)["name"])

	left, err := h.roomController.LeaveRoom(r.Context(), name, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if left == nil {
		// Last player out; the room is gone.
		if h.hubManager != nil {
			h.hubManager.RemoveHub(name)
		}
		response.NoContent(w)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastRoomUpdate(left)
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(left))
}

// JoinTeam handles POST /api/v1/rooms/{name}/team
func (h *RoomHandler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	name := model.RoomName(mux.Vars(r)["name"])

	var req request.JoinTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Team == "" {
		WriteError(w, NewInvalidRequestError("team is required"))
		return
	}

	updated, err := h.roomController.JoinTeam(r.Context(), name, player.ID, model.Team(req.Team))
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastRoomUpdate(updated)
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(updated))
}

// Events handles GET /api/v1/rooms/{name}/events, the SSE subscription
// for room snapshots. Blocks for the lifetime of the connection.
func (h *RoomHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	name := model.RoomName(mux.Vars(r)["name"])

	found, err := h.roomController.GetRoom(r.Context(), name)
	if err != nil {
		WriteError(w, err)
		return
	}
	if found.GetPlayer(player.ID) == nil {
		WriteError(w, model.ErrNotInRoom)
		return
	}

	hub := h.hubManager.GetOrCreateHub(name)
	sse.ServeSSE(w, r, hub, player.ID)

	// The request context is already done once ServeSSE returns.
	h.roomController.Disconnect(context.Background(), name, player.ID)
}
