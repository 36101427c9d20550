package factory

import (
	"crypto/rand"
	"errors"
	"io"
	"log/slog"

	"github.com/quizdash/quizdash-go/internal/dependencies/clock"
	"github.com/quizdash/quizdash-go/internal/dependencies/random"
	"github.com/quizdash/quizdash-go/internal/services/auth"
	"github.com/quizdash/quizdash-go/internal/services/powerup"
	"github.com/quizdash/quizdash-go/internal/services/questions"
	"github.com/quizdash/quizdash-go/internal/services/recovery"
	"github.com/quizdash/quizdash-go/internal/services/scoring"
	"github.com/quizdash/quizdash-go/internal/services/sequencer"
	"github.com/quizdash/quizdash-go/internal/services/session"
	"github.com/quizdash/quizdash-go/internal/storage"
	"github.com/quizdash/quizdash-go/internal/storage/memory"
	redisstorage "github.com/quizdash/quizdash-go/internal/storage/redis"
	"github.com/quizdash/quizdash-go/internal/web/sse"
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
	AuthService       *auth.Service
	QuestionService   *questions.Service
	ScoringService    *scoring.Service
	SequencerService  *sequencer.Service
	PowerUpService    *powerup.Service
	RecoveryService   *recovery.Service
	SessionController *session.Controller
	HubManager        *sse.HubManager
	Broadcaster       *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// A missing signing key is replaced by a random one, invalidating
	// issued tokens across restarts
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
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
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

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	authCfg := cfg.AuthConfig
	if len(authCfg.SigningKey) == 0 {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		authCfg.SigningKey = key
	}

	return newWithDependencies(store, clk, rnd, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	// Create services
	authService := auth.New(store, clk, authCfg)
	questionService := questions.New(store, rnd)
	scoringService := scoring.New()
	sequencerService := sequencer.New()
	powerUpService := powerup.New(store, sequencerService, rnd)
	recoveryService := recovery.New(store, sequencerService, clk)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	sessionController := session.NewController(store, questionService, scoringService,
		sequencerService, powerUpService, broadcaster, clk, rnd, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		AuthService:       authService,
		QuestionService:   questionService,
		ScoringService:    scoringService,
		SequencerService:  sequencerService,
		PowerUpService:    powerUpService,
		RecoveryService:   recoveryService,
		SessionController: sessionController,
		HubManager:        hubManager,
		Broadcaster:       broadcaster,
	}
}
