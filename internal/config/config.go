// Package config loads process-level settings for the simchain CLI from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	env "github.com/caarlos0/env/v11"

	"github.com/aretw0/simchain/internal/logging"
)

// Config holds the complete CLI configuration.
type Config struct {
	LogLevel string        `env:"LOG_LEVEL" envDefault:"info"`
	// Seed is nil unless set, keeping the seed declared in the definition.
	Seed     *int64        `env:"SEED"`
	Until    float64       `env:"UNTIL"     envDefault:"0"` // 0 runs until the queue drains
	HTTP     HTTPConfig    `envPrefix:"HTTP_"`
	Redis    RedisConfig   `envPrefix:"REDIS_"`
	Timeout  time.Duration `env:"TIMEOUT"   envDefault:"30s"`
	Workers  int           `env:"WORKERS"   envDefault:"4"` // concurrent replications
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr string `env:"ADDR" envDefault:":8080"`
}

// RedisConfig configures the optional Redis monitor store.
// An empty Addr keeps records in memory.
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"       envDefault:"0"`
	Prefix   string `env:"PREFIX"   envDefault:"simchain:"`
	Attempts uint   `env:"ATTEMPTS" envDefault:"3"` // connection checks before giving up
}

// Prefix is prepended to every variable name.
const Prefix = "SIMCHAIN_"

// Load reads the configuration from SIMCHAIN_* variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level returns the parsed log level.
func (c *Config) Level() (slog.Level, error) {
	return logging.ParseLevel(c.LogLevel)
}
