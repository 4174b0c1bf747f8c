package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/litfish/litgame-go/internal/api/middleware"
	"github.com/litfish/litgame-go/internal/api/request"
	"github.com/litfish/litgame-go/internal/api/response"
	"github.com/litfish/litgame-go/internal/api/sse"
	"github.com/litfish/litgame-go/internal/model"
	"github.com/litfish/litgame-go/internal/services/game"
)

// GameHandler handles play-phase endpoints
type GameHandler struct {
	gameController *game.Controller
	broadcaster    *sse.Broadcaster
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &GameHandler{
		gameController: gameController,
		broadcaster:    broadcaster,
	}
}

// Start handles POST /api/v1/rooms/{name}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	name := model.RoomName(mux.Vars(r)["name"])

	started, err := h.gameController.StartGame(r.Context(), name, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastGameStarted(started)
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(started))
}

// RequestCard handles POST /api/v1/rooms/{name}/request-card
func (h *GameHandler) RequestCard(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	name := model.RoomName(mux.Vars(r)["name"])

	var req request.RequestCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.TargetPlayerID == "" {
		WriteError(w, NewInvalidRequestError("target_player_id is required"))
		return
	}

	card := model.Card{
		Suit:    model.Suit(req.Suit),
		Rank:    model.Rank(req.Rank),
		SetType: model.SetType(req.SetType),
	}

	updated, err := h.gameController.RequestCard(r.Context(), name, player.ID, model.PlayerID(req.TargetPlayerID), card)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastUpdate(updated)
	response.JSON(w, http.StatusOK, response.RoomFromModel(updated))
}

// DeclareSet handles POST /api/v1/rooms/{name}/declare-set
func (h *GameHandler) DeclareSet(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	name := model.RoomName(mux.Vars(r)["name"])

	var req request.DeclareSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	updated, err := h.gameController.DeclareSet(r.Context(), name, player.ID, model.Suit(req.Suit), model.SetType(req.SetType))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastUpdate(updated)
	response.JSON(w, http.StatusOK, response.RoomFromModel(updated))
}

// ClaimTurn handles POST /api/v1/rooms/{name}/claim-turn
func (h *GameHandler) ClaimTurn(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	name := model.RoomName(mux.Vars(r)["name"])

	updated, err := h.gameController.ClaimTurn(r.Context(), name, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastUpdate(updated)
	response.JSON(w, http.StatusOK, response.RoomFromModel(updated))
}

// GrantClaim handles POST /api/v1/rooms/{name}/grant-claim
func (h *GameHandler) GrantClaim(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	name := model.RoomName(mux.Vars(r)["name"])

	var req request.GrantClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	updated, err := h.gameController.GrantClaim(r.Context(), name, player.ID, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastUpdate(updated)
	response.JSON(w, http.StatusOK, response.RoomFromModel(updated))
}

func (h *GameHandler) broadcastUpdate(room *model.Room) {
	if h.broadcaster == nil {
		return
	}
	if room.Status == model.RoomStatusFinished {
		h.broadcaster.BroadcastGameFinished(room)
		return
	}
	h.broadcaster.BroadcastGameUpdate(room)
}
