package genai

import "errors"

// Sentinel kinds for generation errors.
var (
	ErrNoProviders        = errors.New("no text generation providers configured")
	ErrAllProvidersFailed = errors.New("all text generation providers failed")
	ErrEmptyResponse      = errors.New("empty model response")
	ErrMissingAPIKey      = errors.New("missing API key")
)
