package config

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const mixEpsilon = 1e-9

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if MATCHDAY_CONFIG is set
//  3. env (prefix MATCHDAY_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("MATCHDAY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: MATCHDAY_ADDR, MATCHDAY_CACHE_SIZE, ...
	// Map env keys like MATCHDAY_CACHE_SIZE -> cache_size (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("MATCHDAY_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "matchday_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations that would silently corrupt scoring.
// These are startup failures, never per-request conditions.
func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.CompatWeight < 0 || c.ActivityWeight < 0 {
		return fmt.Errorf("%w: mix weights must be non-negative", ErrInvalidConfig)
	}
	if math.Abs(c.CompatWeight+c.ActivityWeight-1) > mixEpsilon {
		return fmt.Errorf("%w: mix weights sum to %v, want 1", ErrInvalidConfig, c.CompatWeight+c.ActivityWeight)
	}
	if c.MaxResultsCap <= 0 {
		return fmt.Errorf("%w: max_results_cap must be positive", ErrInvalidConfig)
	}
	if c.EvalConcurrency <= 0 {
		return fmt.Errorf("%w: eval_concurrency must be positive", ErrInvalidConfig)
	}
	if c.CacheSize <= 0 || c.CacheTTLSeconds <= 0 {
		return fmt.Errorf("%w: cache_size and cache_ttl_seconds must be positive", ErrInvalidConfig)
	}
	if c.LookupTimeoutMS <= 0 {
		return fmt.Errorf("%w: lookup_timeout_ms must be positive", ErrInvalidConfig)
	}
	return nil
}
