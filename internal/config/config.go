// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"

	"github.com/okian/matchday/internal/domain/compat"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Weights is the compatibility sub-score weight vector. It must be
	// non-negative and sum to 1; startup fails otherwise.
	Weights compat.Weights `koanf:"weights"`

	// BonusLanguage and BonusMultiplier boost the language sub-score
	// when both profiles share the given minority language. A
	// multiplier <= 1 disables the bonus.
	BonusLanguage   string  `koanf:"bonus_language"`
	BonusMultiplier float64 `koanf:"bonus_multiplier"`

	// CompatWeight and ActivityWeight mix compatibility and activity
	// into the final score. They must sum to 1.
	CompatWeight   float64 `koanf:"compat_weight"`
	ActivityWeight float64 `koanf:"activity_weight"`

	// MaxResultsCap caps how many matches one request may ask for.
	MaxResultsCap int `koanf:"max_results_cap"`

	// EvalConcurrency bounds concurrent candidate evaluation.
	EvalConcurrency int `koanf:"eval_concurrency"`

	// CacheSize and CacheTTLSeconds bound the external lookup cache.
	CacheSize       int `koanf:"cache_size"`
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// LookupTimeoutMS bounds each external lookup call.
	LookupTimeoutMS int `koanf:"lookup_timeout_ms"`

	// GithubBaseURL and GithubToken configure repository lookups.
	GithubBaseURL string `koanf:"github_base_url"`
	GithubToken   string `koanf:"github_token"`

	// GenAIAPIKey, GenAIBaseURL and GenAIModels configure the text
	// generation fallback chain for match reasons. An empty key
	// disables generation.
	GenAIAPIKey  string   `koanf:"genai_api_key"`
	GenAIBaseURL string   `koanf:"genai_base_url"`
	GenAIModels  []string `koanf:"genai_models"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use
// (e.g., loading from env/files) and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8080",
		Weights:         compat.DefaultWeights(),
		CompatWeight:    0.8,
		ActivityWeight:  0.2,
		MaxResultsCap:   50,
		EvalConcurrency: runtime.NumCPU() * 2,
		CacheSize:       4096,
		CacheTTLSeconds: 300,
		LookupTimeoutMS: 10_000,
		GenAIModels: []string{
			"gemini-1.5-flash",
			"gemini-1.5-flash-8b",
			"gemini-1.5-pro",
		},
	}
}
