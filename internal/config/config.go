// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the server.
type Config struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	DBPath          string        `envconfig:"DB_PATH" default:"./data/apacheta.db"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// RateLimit is the number of RPC calls allowed per client IP per minute.
	RateLimit  int    `envconfig:"RATE_LIMIT" default:"120"`
	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"*"`

	// LogLevel and LogFormat also accept the unprefixed LOG_LEVEL and LOG_FORMAT.
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
}

// Load reads an optional .env file and then APACHETA_* environment variables.
func Load(envFiles ...string) (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process("apacheta", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return errors.New("APACHETA_ADDR must not be empty")
	}
	if c.DBPath == "" {
		return errors.New("APACHETA_DB_PATH must not be empty")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("APACHETA_RATE_LIMIT must be positive, got %d", c.RateLimit)
	}
	switch strings.ToLower(c.LogFormat) {
	case "pretty", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be pretty or json, got %q", c.LogFormat)
	}
	return nil
}
