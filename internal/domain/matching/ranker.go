// Package matching ranks a candidate pool against a subject profile by
// merging compatibility scores with an external activity signal.
package matching

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/okian/matchday/internal/domain/compat"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/pkg/logger"
	"github.com/okian/matchday/pkg/metrics"
)

// Default ranking configuration constants.
const (
	defaultMaxResults     = 5
	defaultCompatWeight   = 0.8
	defaultActivityWeight = 0.2
	activityDivisor       = 100.0
	reasonSkillLimit      = 3
)

// Activity is what the external reputation lookup returns for a
// builder's repository link.
type Activity struct {
	PublicRepos int
	Followers   int
}

// Score maps the raw counters to [0,1]: min((repos + 2*followers)/100, 1).
func (a Activity) Score() float64 {
	return math.Min((float64(a.PublicRepos)+2*float64(a.Followers))/activityDivisor, 1.0)
}

// ActivitySource looks up activity counters for a repository link. It
// may block on the network; failures degrade to a zero activity score.
type ActivitySource interface {
	Activity(ctx context.Context, repoLink string) (Activity, error)
}

// ReasonWriter produces a human-readable reason for a suggested match.
// Any error falls back to the templated reason; a ReasonWriter can never
// fail a ranking request.
type ReasonWriter interface {
	Reason(ctx context.Context, subject, candidate model.BuilderProfile, breakdown compat.Breakdown) (string, error)
}

// Ranker evaluates candidates concurrently and produces a stable,
// descending ranking truncated to the result limit.
type Ranker struct {
	scorer         *compat.Scorer
	activity       ActivitySource
	reasons        ReasonWriter
	compatWeight   float64
	activityWeight float64
	concurrency    int
	logger         logger.Logger
}

// NewRanker creates a ranker with configuration options.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{
		scorer:         compat.NewScorer(),
		compatWeight:   defaultCompatWeight,
		activityWeight: defaultActivityWeight,
		concurrency:    runtime.NumCPU() * 2,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every candidate against the subject and returns up to
// maxResults of them, best first. The subject is excluded from its own
// pool by id; ties keep the pool's relative order; an empty pool yields
// an empty result. Rank always completes, even when every external
// lookup fails.
func (r *Ranker) Rank(ctx context.Context, subject model.BuilderProfile, pool []model.BuilderProfile, maxResults int) []model.MatchResult {
	start := time.Now()
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	candidates := make([]model.BuilderProfile, 0, len(pool))
	for _, c := range pool {
		if c.UserID == subject.UserID {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return []model.MatchResult{}
	}

	// Fan out per-candidate evaluation with bounded concurrency; the
	// sort below is the barrier that waits on every slot.
	results := make([]model.MatchResult, len(candidates))
	sem := make(chan struct{}, r.concurrency)
	var wg sync.WaitGroup
	for i, c := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, c model.BuilderProfile) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = r.evaluate(ctx, subject, c)
		}(i, c)
	}
	wg.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	metrics.RecordMatchRequest(len(candidates))
	metrics.ObserveRankDuration(float64(time.Since(start).Milliseconds()))
	return results
}

func (r *Ranker) evaluate(ctx context.Context, subject, candidate model.BuilderProfile) model.MatchResult {
	breakdown := r.scorer.Score(subject, candidate)
	activity := r.activityScore(ctx, candidate)
	final := breakdown.Final*r.compatWeight + activity*r.activityWeight

	return model.MatchResult{
		UserID:        candidate.UserID,
		WalletAddress: candidate.WalletAddress,
		BuilderScore:  candidate.BuilderScore,
		Skills:        candidate.Skills,
		PreferredRole: candidate.PreferredRole,
		Compatibility: roundPercent(breakdown.Final),
		Activity:      roundPercent(activity),
		FinalScore:    roundPercent(final),
		Reason:        r.reason(ctx, subject, candidate, breakdown),
	}
}

// activityScore degrades to 0 on a missing link or failed lookup; a
// ranking request never aborts because the activity source is down.
func (r *Ranker) activityScore(ctx context.Context, candidate model.BuilderProfile) float64 {
	if candidate.GithubURL == "" || r.activity == nil {
		return 0
	}
	a, err := r.activity.Activity(ctx, candidate.GithubURL)
	if err != nil {
		if r.logger != nil {
			r.logger.Debug(ctx, "activity lookup failed",
				logger.String("userID", candidate.UserID),
				logger.Error(err),
			)
		}
		metrics.RecordLookupError("activity")
		return 0
	}
	return a.Score()
}

func (r *Ranker) reason(ctx context.Context, subject, candidate model.BuilderProfile, breakdown compat.Breakdown) string {
	if r.reasons != nil {
		if text, err := r.reasons.Reason(ctx, subject, candidate, breakdown); err == nil && text != "" {
			return text
		} else if err != nil && r.logger != nil {
			r.logger.Debug(ctx, "reason generation failed, using template", logger.Error(err))
		}
	}
	return templateReason(candidate)
}

// templateReason references the candidate's role and up to three skills.
func templateReason(candidate model.BuilderProfile) string {
	skills := candidate.Skills
	if len(skills) > reasonSkillLimit {
		skills = skills[:reasonSkillLimit]
	}
	return fmt.Sprintf("Strong %s match with complementary %s skills",
		candidate.PreferredRole, strings.Join(skills, ", "))
}

// roundPercent converts a [0,1] score to a percentage rounded to two
// decimals, mirroring the wire format of the original service.
func roundPercent(score float64) float64 {
	return math.Round(score*100*100) / 100
}
