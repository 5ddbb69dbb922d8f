// Package genai defines the text-generation capability the service
// depends on and an ordered fallback chain over concrete providers. The
// client is explicitly constructed and injected; there is no package
// level singleton.
package genai

import (
	"context"
	"errors"
	"fmt"
)

// Default generation parameters, matching the original mentor bot.
const (
	defaultTemperature     = 0.7
	defaultTopP            = 0.9
	defaultTopK            = 40
	defaultMaxOutputTokens = 1024
)

// Config controls a single generation call.
type Config struct {
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
}

// DefaultConfig returns the standard generation parameters.
func DefaultConfig() Config {
	return Config{
		Temperature:     defaultTemperature,
		TopP:            defaultTopP,
		TopK:            defaultTopK,
		MaxOutputTokens: defaultMaxOutputTokens,
	}
}

// Generator produces free text for a prompt.
type Generator interface {
	// Generate returns the model's answer, honoring ctx for
	// cancellation.
	Generate(ctx context.Context, prompt string, cfg Config) (string, error)

	// Name identifies the provider for logging.
	Name() string
}

// Chain tries each generator in order until one succeeds. It is itself
// a Generator, so chains compose.
type Chain struct {
	generators []Generator
}

// NewChain builds a fallback chain over the given providers, tried in
// argument order.
func NewChain(generators ...Generator) *Chain {
	return &Chain{generators: generators}
}

// Name lists the chained provider names.
func (c *Chain) Name() string {
	names := make([]string, len(c.generators))
	for i, g := range c.generators {
		names[i] = g.Name()
	}
	return fmt.Sprintf("chain%v", names)
}

// Generate returns the first successful answer. When every provider
// fails, the aggregate error wraps each provider's failure.
func (c *Chain) Generate(ctx context.Context, prompt string, cfg Config) (string, error) {
	if len(c.generators) == 0 {
		return "", ErrNoProviders
	}
	var errs []error
	for _, g := range c.generators {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		text, err := g.Generate(ctx, prompt, cfg)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", g.Name(), err))
			continue
		}
		if text == "" {
			errs = append(errs, fmt.Errorf("%s: %w", g.Name(), ErrEmptyResponse))
			continue
		}
		return text, nil
	}
	return "", fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(errs...))
}
