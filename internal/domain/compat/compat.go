// Package compat computes the weighted compatibility score between two
// builder profiles.
package compat

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/matchday/internal/domain/feature"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/similarity"
	"github.com/okian/matchday/internal/domain/types"
)

// Normalization constants.
const (
	// experienceSpread is the expected reputation spread used to
	// normalize the builder-score gap.
	experienceSpread = 500.0

	// timezoneSpread is the maximum meaningful offset gap in hours.
	timezoneSpread = 12.0

	// weightEpsilon is the tolerance when checking that weights sum to 1.
	weightEpsilon = 1e-9
)

// Availability sub-scores for asymmetric combinations.
const (
	availabilityExact    = 1.0
	availabilityFullSkew = 0.7 // one side full-time, the other not
	availabilitySoftSkew = 0.9 // part-time vs weekend
)

// Language sub-scores.
const (
	languageExact = 1.0
	languageOther = 0.5
)

// Weights is the compatibility weight vector. Weights must be
// non-negative and sum to 1; Validate enforces this at startup.
type Weights struct {
	Complementary float64 `koanf:"complementary"`
	Role          float64 `koanf:"role"`
	Experience    float64 `koanf:"experience"`
	Timezone      float64 `koanf:"timezone"`
	Language      float64 `koanf:"language"`
	Availability  float64 `koanf:"availability"`
}

// DefaultWeights is the six-factor weighting. Setting Language and
// Availability to zero recovers the original four-factor scheme
// (0.4/0.3/0.2/0.1).
func DefaultWeights() Weights {
	return Weights{
		Complementary: 0.30,
		Role:          0.20,
		Experience:    0.15,
		Timezone:      0.10,
		Language:      0.15,
		Availability:  0.10,
	}
}

// Validate checks the weight vector invariant. A failure here is a
// configuration error and should abort startup, never a per-request
// condition.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"complementary": w.Complementary,
		"role":          w.Role,
		"experience":    w.Experience,
		"timezone":      w.Timezone,
		"language":      w.Language,
		"availability":  w.Availability,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s weight is negative", ErrInvalidWeights, name)
		}
	}
	sum := w.Complementary + w.Role + w.Experience + w.Timezone + w.Language + w.Availability
	if math.Abs(sum-1) > weightEpsilon {
		return fmt.Errorf("%w: weights sum to %v, want 1", ErrInvalidWeights, sum)
	}
	return nil
}

// Breakdown holds the six sub-scores and the clamped weighted final.
// All sub-scores are in [0,1] except Language, which the bonus
// multiplier may push above 1 before the final clamp.
type Breakdown struct {
	Complementary float64 `json:"complementary"`
	Role          float64 `json:"role"`
	Experience    float64 `json:"experience"`
	Timezone      float64 `json:"timezone"`
	Language      float64 `json:"language"`
	Availability  float64 `json:"availability"`
	Final         float64 `json:"final"`
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWeights sets the weight vector. The caller is expected to have
// validated it.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w
	}
}

// WithLanguageBonus applies a bonus multiplier when both profiles share
// the given language. Multipliers <= 1 are ignored.
func WithLanguageBonus(language string, multiplier float64) Option {
	return func(s *Scorer) {
		if language != "" && multiplier > 1 {
			s.bonusLanguage = strings.ToLower(language)
			s.bonusMultiplier = multiplier
		}
	}
}

// Scorer combines the six sub-scores into one weighted value in [0,1].
type Scorer struct {
	weights         Weights
	bonusLanguage   string
	bonusMultiplier float64
}

// NewScorer creates a scorer with configuration options.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		weights: DefaultWeights(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the compatibility breakdown for a subject/candidate
// pair. Pure: identical inputs always produce an identical breakdown.
func (s *Scorer) Score(subject, candidate model.BuilderProfile) Breakdown {
	b := Breakdown{
		Complementary: complementaryScore(subject.Skills, candidate.Skills),
		Experience:    experienceScore(subject.BuilderScore, candidate.BuilderScore),
		Timezone:      timezoneScore(subject.Timezone, candidate.Timezone),
		Language:      s.languageScore(subject.Language, candidate.Language),
		Availability:  availabilityScore(subject.Availability, candidate.Availability),
	}
	if subject.WantsRole(candidate.PreferredRole) {
		b.Role = 1.0
	}

	w := s.weights
	final := b.Complementary*w.Complementary +
		b.Role*w.Role +
		b.Experience*w.Experience +
		b.Timezone*w.Timezone +
		b.Language*w.Language +
		b.Availability*w.Availability

	// The language bonus can push the sum past 1.
	b.Final = math.Max(0, math.Min(1, final))
	return b
}

// complementaryScore treats low skill overlap as a positive signal:
// one minus the cosine similarity of the two category vectors.
func complementaryScore(subject, candidate []string) float64 {
	return 1 - similarity.Cosine(feature.SkillVector(subject), feature.SkillVector(candidate))
}

func experienceScore(subject, candidate int) float64 {
	diff := math.Abs(float64(subject - candidate))
	return math.Max(0, 1-diff/experienceSpread)
}

func timezoneScore(subject, candidate string) float64 {
	diff := math.Abs(float64(ParseUTCOffset(subject) - ParseUTCOffset(candidate)))
	return math.Max(0, 1-diff/timezoneSpread)
}

func (s *Scorer) languageScore(subject, candidate string) float64 {
	a := strings.ToLower(strings.TrimSpace(subject))
	b := strings.ToLower(strings.TrimSpace(candidate))
	if a != b {
		return languageOther
	}
	score := languageExact
	if s.bonusMultiplier > 1 && a == s.bonusLanguage {
		score *= s.bonusMultiplier
	}
	return score
}

func availabilityScore(subject, candidate types.Availability) float64 {
	if subject == candidate {
		return availabilityExact
	}
	if subject == types.AvailabilityFullTime || candidate == types.AvailabilityFullTime {
		return availabilityFullSkew
	}
	return availabilitySoftSkew
}

// ParseUTCOffset extracts the signed hour offset from strings like
// "UTC+5", "UTC-3:30" or "utc+0". Unparsable or absent offsets default
// to 0; this function never fails.
func ParseUTCOffset(tz string) int {
	upper := strings.ToUpper(tz)
	idx := strings.Index(upper, "UTC")
	if idx < 0 {
		return 0
	}
	rest := upper[idx+len("UTC"):]
	if cut := strings.Index(rest, ":"); cut >= 0 {
		rest = rest[:cut]
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(rest, "+"))
	if err != nil {
		return 0
	}
	return n
}
