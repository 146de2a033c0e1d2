package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/statline-game/statline/internal/dependencies/clock"
	"github.com/statline-game/statline/internal/dependencies/random"
	"github.com/statline-game/statline/internal/services/game"
	"github.com/statline-game/statline/internal/services/selector"
	"github.com/statline-game/statline/internal/services/session"
	"github.com/statline-game/statline/internal/services/stats"
	"github.com/statline-game/statline/internal/storage"
	"github.com/statline-game/statline/internal/storage/memory"
	"github.com/statline-game/statline/internal/storage/postgres"
	redisstorage "github.com/statline-game/statline/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypePostgres = "postgres"

	SessionStoreRedis = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Players  storage.PlayerStore
	Sessions storage.SessionStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	StatsService    *stats.Service
	SelectorService *selector.Service
	SessionService  *session.Service
	GameController  *game.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the player/session backend
	// If empty, defaults to "memory"
	StorageType string
	// PostgresConfig holds database settings (required if StorageType is "postgres")
	PostgresConfig *postgres.Config
	// SessionStoreType overrides where sessions live (optional)
	// Set to "redis" to keep sessions in Redis regardless of StorageType
	SessionStoreType string
	// RedisConfig holds Redis connection settings (required if SessionStoreType is "redis")
	RedisConfig *redisstorage.Config
	// SessionConfig holds session lifetime settings (optional)
	// If zero value, defaults to session.DefaultConfig()
	SessionConfig session.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var players storage.PlayerStore
	var sessions storage.SessionStore

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store := memory.New()
		players = store
		sessions = store
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		store, err := postgres.New(*cfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		players = store
		sessions = store
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'postgres'")
	}

	// Optionally keep sessions in Redis instead of the primary store
	if cfg.SessionStoreType == SessionStoreRedis {
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when SessionStoreType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		sessions = redisStore
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default session config if not provided
	sessionCfg := cfg.SessionConfig
	if sessionCfg.StaleTTL == 0 {
		sessionCfg = session.DefaultConfig()
	}

	return newWithDependencies(players, sessions, clk, rnd, sessionCfg, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	players storage.PlayerStore,
	sessions storage.SessionStore,
	clk clock.Clock,
	rnd random.Random,
	sessionCfg session.Config,
	logger *slog.Logger,
) (*App, error) {
	// Create services
	statsService := stats.New(players)
	selectorService, err := selector.New(clk, rnd, logger)
	if err != nil {
		return nil, err
	}
	sessionService := session.New(sessions, clk, sessionCfg, logger)
	gameController := game.NewController(players, sessionService, selectorService, statsService, logger)

	return &App{
		Players:         players,
		Sessions:        sessions,
		Clock:           clk,
		Random:          rnd,
		StatsService:    statsService,
		SelectorService: selectorService,
		SessionService:  sessionService,
		GameController:  gameController,
	}, nil
}
