package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/litfish/litgame-go/internal/api/handler"
	"github.com/litfish/litgame-go/internal/api/middleware"
	"github.com/litfish/litgame-go/internal/api/sse"
	"github.com/litfish/litgame-go/internal/services/auth"
	"github.com/litfish/litgame-go/internal/services/game"
	"github.com/litfish/litgame-go/internal/services/room"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	RoomController *room.Controller
	GameController *game.Controller
	HubManager     *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	roomHandler := handler.NewRoomHandler(cfg.RoomController, cfg.HubManager, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.HubManager, cfg.Logger)

	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Room routes (all require auth)
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(authMiddleware)
	rooms.HandleFunc("", roomHandler.Create).Methods(http.MethodPost)
	rooms.HandleFunc("/{name}", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{name}/join", roomHandler.Join).Methods(http.MethodPost)
	rooms.HandleFunc("/{name}/leave", roomHandler.Leave).Methods(http.MethodPost)
	rooms.HandleFunc("/{name}/team", roomHandler.JoinTeam).Methods(http.MethodPost)
	rooms.HandleFunc("/{name}/events", roomHandler.Events).Methods(http.MethodGet)

	// Play routes (all require auth)
	rooms.HandleFunc("/{name}/start", gameHandler.Start).Methods(http.MethodPost)
	rooms.HandleFunc("/{name}/request-card", gameHandler.RequestCard).Methods(http.MethodPost)
	rooms.HandleFunc("/{name}/declare-set", gameHandler.DeclareSet).Methods(http.MethodPost)
	rooms.HandleFunc("/{name}/claim-turn", gameHandler.ClaimTurn).Methods(http.MethodPost)
	rooms.HandleFunc("/{name}/grant-claim", gameHandler.GrantClaim).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
