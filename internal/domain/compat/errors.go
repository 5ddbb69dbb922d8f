package compat

import "errors"

// Sentinel kinds for compatibility scoring errors.
var (
	ErrInvalidWeights = errors.New("invalid compatibility weights")
)
