// Package config loads server configuration from the environment.
// A .env file in the working directory is read first so local
// development does not need exported variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Server holds all server process configuration
type Server struct {
	Host string `env:"HOST"`
	Port int    `env:"PORT" envDefault:"8080"`

	// Storage selects the backend, "memory" or "redis"
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`

	// QuestionBank is the path to the JSON question bank loaded at startup
	QuestionBank string `env:"QUESTION_BANK" envDefault:"data/questions.json"`

	// AuthSigningKey signs session tokens. If empty a random key is
	// generated, which invalidates issued tokens across restarts.
	AuthSigningKey string        `env:"AUTH_SIGNING_KEY"`
	TokenDuration  time.Duration `env:"TOKEN_DURATION" envDefault:"24h"`

	// SweepInterval controls how often idle members are swept from rooms
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"30s"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from .env (if present) and the environment
func Load() (*Server, error) {
	// Missing .env is not an error
	_ = godotenv.Load()

	cfg := &Server{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.StorageType == "redis" && cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL required when STORAGE_TYPE=redis")
	}

	return cfg, nil
}
