package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/litfish/litgame-go/internal/api/sse"
	"github.com/litfish/litgame-go/internal/dependencies/clock"
	"github.com/litfish/litgame-go/internal/dependencies/keylock"
	"github.com/litfish/litgame-go/internal/dependencies/random"
	"github.com/litfish/litgame-go/internal/services/auth"
	"github.com/litfish/litgame-go/internal/services/deck"
	"github.com/litfish/litgame-go/internal/services/game"
	"github.com/litfish/litgame-go/internal/services/room"
	"github.com/litfish/litgame-go/internal/services/scoring"
	"github.com/litfish/litgame-go/internal/storage"
	"github.com/litfish/litgame-go/internal/storage/memory"
	redisstorage "github.com/litfish/litgame-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DeckService    *deck.Service
	ScoringService *scoring.Service
	RoomController *room.Controller
	GameController *game.Controller
	AuthService    *auth.Service
	HubManager     *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	// Room and game controllers share one lock table so registry and
	// play actions against the same room serialize with each other.
	locks := keylock.New()

	deckService := deck.New(rnd)
	scoringService := scoring.New()
	roomController := room.NewController(store, clk, locks, logger)
	gameController := game.NewController(store, deckService, scoringService, clk, locks, logger)
	authService := auth.New(store, clk, rnd, authCfg)
	hubManager := sse.NewHubManager(logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		DeckService:    deckService,
		ScoringService: scoringService,
		RoomController: roomController,
		GameController: gameController,
		AuthService:    authService,
		HubManager:     hubManager,
	}
}
