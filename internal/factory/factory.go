package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/coup-go/internal/config"
	"github.com/mcoot/coup-go/internal/dependencies/clock"
	"github.com/mcoot/coup-go/internal/dependencies/random"
	"github.com/mcoot/coup-go/internal/engine"
	"github.com/mcoot/coup-go/internal/events"
	"github.com/mcoot/coup-go/internal/services/auth"
	"github.com/mcoot/coup-go/internal/services/game"
	"github.com/mcoot/coup-go/internal/services/room"
	"github.com/mcoot/coup-go/internal/sse"
	"github.com/mcoot/coup-go/internal/storage"
	"github.com/mcoot/coup-go/internal/storage/memory"
	redisstorage "github.com/mcoot/coup-go/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Engine         *engine.Engine
	AuthService    *auth.Service
	RoomController *room.Controller
	GameController *game.Controller

	// Event delivery
	HubManager *sse.HubManager
	Publisher  events.Publisher
	// Relay is nil unless events travel through Redis
	Relay *events.Relay

	closeStorage func() error
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

// FromServerConfig builds a factory Config from environment configuration
func FromServerConfig(cfg config.Config, logger *slog.Logger) Config {
	redisCfg := cfg.Redis
	return Config{
		AuthConfig:  cfg.Auth,
		Logger:      logger,
		StorageType: cfg.StorageType,
		RedisConfig: &redisCfg,
	}
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	clk := clock.New()
	rnd := random.New()
	hubs := sse.NewHubManager(logger)

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageTypeMemory
	}

	switch storageType {
	case config.StorageTypeMemory:
		publisher := events.NewHubPublisher(hubs, logger)
		return newWithDependencies(memory.New(), clk, rnd, hubs, publisher, authCfg, logger), nil

	case config.StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		publisher := events.NewRedisPublisher(redisStore.Client(), logger)
		app := newWithDependencies(redisStore, clk, rnd, hubs, publisher, authCfg, logger)
		app.Relay = events.NewRelay(redisStore.Client(), hubs, logger)
		app.closeStorage = redisStore.Close
		return app, nil

	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory' or 'redis'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	hubs *sse.HubManager,
	publisher events.Publisher,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	eng := engine.New(rnd, logger)
	authService := auth.New(store, clk, logger, authCfg)
	roomController := room.NewController(store, eng, publisher, clk, rnd, logger)
	gameController := game.NewController(store, eng, roomController, publisher, clk, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Engine:         eng,
		AuthService:    authService,
		RoomController: roomController,
		GameController: gameController,
		HubManager:     hubs,
		Publisher:      publisher,
	}
}

// Close disconnects event streams and releases storage connections
func (a *App) Close() error {
	a.HubManager.Close()
	if a.closeStorage != nil {
		return a.closeStorage()
	}
	return nil
}
