// Package config loads the scraper's settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	DBPath string `env:"CRATEDIG_DB_PATH" envDefault:"cratedig.db"`

	PerPage   int `env:"CRATEDIG_PER_PAGE" envDefault:"100"`
	BatchSize int `env:"CRATEDIG_BATCH_SIZE" envDefault:"10"`

	RateLimit  int           `env:"CRATEDIG_RATE_LIMIT" envDefault:"60"`
	RateWindow time.Duration `env:"CRATEDIG_RATE_WINDOW" envDefault:"60s"`

	// Token is the development-only fallback for the settings-stored token.
	Token string `env:"DISCOGS_TOKEN"`
}

func (c *Config) Validate() error {
	if c.PerPage < 1 || c.PerPage > 100 {
		return fmt.Errorf("CRATEDIG_PER_PAGE must be between 1 and 100")
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("CRATEDIG_BATCH_SIZE must be at least 1")
	}
	if c.RateLimit < 1 {
		return fmt.Errorf("CRATEDIG_RATE_LIMIT must be at least 1")
	}
	if c.RateWindow <= 0 {
		return fmt.Errorf("CRATEDIG_RATE_WINDOW must be positive")
	}
	return nil
}

// Load parses the environment into a Config. A missing .env file is fine.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
