// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls the API endpoint and the view tuning knobs. Every field
// has a working default; only GITHUB_TOKEN is worth setting in practice,
// to escape the anonymous rate limit.
type Config struct {
	APIURL      string        `env:"HUBVIEW_API_URL"      envDefault:"https://api.github.com"`
	Token       string        `env:"GITHUB_TOKEN"`
	PageSize    int           `env:"HUBVIEW_PAGE_SIZE"    envDefault:"30"`
	RepoLimit   int           `env:"HUBVIEW_REPO_LIMIT"   envDefault:"30"`
	Debounce    time.Duration `env:"HUBVIEW_DEBOUNCE"     envDefault:"500ms"`
	HTTPTimeout time.Duration `env:"HUBVIEW_HTTP_TIMEOUT" envDefault:"10s"`
	LogFile     string        `env:"HUBVIEW_LOG"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the controllers cannot work with.
func (c Config) Validate() error {
	if c.PageSize < 1 || c.PageSize > 100 {
		return fmt.Errorf("page size %d out of range 1..100", c.PageSize)
	}
	if c.RepoLimit < 1 || c.RepoLimit > 100 {
		return fmt.Errorf("repo limit %d out of range 1..100", c.RepoLimit)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce %s is negative", c.Debounce)
	}
	return nil
}
