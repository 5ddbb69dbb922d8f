package matching

import (
	"github.com/okian/matchday/internal/domain/compat"
	"github.com/okian/matchday/pkg/logger"
)

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithScorer sets the compatibility scorer.
func WithScorer(s *compat.Scorer) Option {
	return func(r *Ranker) {
		if s != nil {
			r.scorer = s
		}
	}
}

// WithActivitySource sets the external reputation-activity lookup.
// Without one, every activity score is 0.
func WithActivitySource(src ActivitySource) Option {
	return func(r *Ranker) {
		r.activity = src
	}
}

// WithMixWeights sets how compatibility and activity combine into the
// final ranking score. The caller is expected to have validated that
// they sum to 1.
func WithMixWeights(compatWeight, activityWeight float64) Option {
	return func(r *Ranker) {
		if compatWeight >= 0 && activityWeight >= 0 {
			r.compatWeight = compatWeight
			r.activityWeight = activityWeight
		}
	}
}

// WithConcurrency bounds how many candidates are evaluated in parallel.
func WithConcurrency(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithReasonWriter sets an optional generator that rephrases the match
// reason. Failures fall back to the built-in template.
func WithReasonWriter(w ReasonWriter) Option {
	return func(r *Ranker) {
		r.reasons = w
	}
}

// WithLogger sets a custom logger for the ranker.
func WithLogger(l logger.Logger) Option {
	return func(r *Ranker) {
		if l != nil {
			r.logger = l
		}
	}
}
