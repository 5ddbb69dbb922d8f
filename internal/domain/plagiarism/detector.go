// Package plagiarism combines repository-metadata flags and
// text-similarity matches into a bounded confidence score and a boolean
// originality verdict.
package plagiarism

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/okian/matchday/internal/domain/feature"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/similarity"
	"github.com/okian/matchday/internal/domain/types"
	"github.com/okian/matchday/pkg/logger"
	"github.com/okian/matchday/pkg/metrics"
)

// Detection thresholds and bounds.
const (
	minExpectedCommits  = 3   // fewer commits raises a medium flag
	maxPriorComparisons = 10  // cap on compare-against ids per request
	searchQueryTokens   = 10  // normalized tokens used to seed search
	priorThreshold      = 80  // description matches above this are recorded
	publicThreshold     = 70  // public repo matches above this are recorded
	highFlagPenalty     = 20  // confidence added per high-severity flag
	maxConfidence       = 100 // confidence ceiling
	verdictThreshold    = 75  // confidence above this means plagiarized
	reviewThreshold     = 50  // confidence above this asks for manual review
)

// Flag kinds.
const (
	flagFork       = "fork"
	flagLowCommits = "low_commits"
)

// Recommendation strings surfaced in the report.
const (
	recommendReview   = "Manual review required"
	recommendOriginal = "Appears original"
)

// MetadataSource fetches repository metadata for a repository reference.
type MetadataSource interface {
	RepoMetadata(ctx context.Context, repoRef string) (model.RepoMetadata, error)
}

// SearchResult is one public project returned by the search lookup.
type SearchResult struct {
	Name        string
	Description string
	URL         string
	Stars       int
}

// SearchSource finds public projects matching a keyword query. Failures
// degrade to an empty result list.
type SearchSource interface {
	SearchRepos(ctx context.Context, query string) ([]SearchResult, error)
}

// DescriptionStore resolves prior-project identifiers to their stored
// descriptions.
type DescriptionStore interface {
	Description(ctx context.Context, projectID string) (string, error)
}

// Detector runs the plagiarism pipeline. All external lookups degrade on
// failure; Check always produces a structurally valid verdict.
type Detector struct {
	metadata MetadataSource
	search   SearchSource
	store    DescriptionStore
	logger   logger.Logger
}

// NewDetector creates a detector with configuration options.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Check inspects a submission and returns the originality verdict.
func (d *Detector) Check(ctx context.Context, description, repoRef string, compareAgainst []string) model.PlagiarismVerdict {
	start := time.Now()

	var flags []model.PlagiarismFlag
	var matches []model.SimilarityMatch
	report := model.PlagiarismReport{}

	meta, err := d.fetchMetadata(ctx, repoRef)
	switch {
	case err != nil:
		// The lookup failure is recorded in the report; the verdict is
		// still produced from whatever evidence remains.
		report.RepoCheckError = err.Error()
		metrics.RecordLookupError("metadata")
	default:
		report.RepoCheck = &meta
		flags = append(flags, metadataFlags(meta)...)
	}

	matches = append(matches, d.priorMatches(ctx, description, compareAgainst)...)

	similar := d.searchSimilar(ctx, description)
	report.SimilarProjects = len(similar)
	matches = append(matches, publicMatches(description, similar)...)

	confidence := confidenceScore(matches, flags)
	verdict := model.PlagiarismVerdict{
		IsPlagiarized: confidence > verdictThreshold || countHigh(flags) > 0,
		Confidence:    confidence,
		Matches:       matches,
		Report:        report,
	}
	verdict.Report.Flags = flags
	if verdict.Report.Flags == nil {
		verdict.Report.Flags = []model.PlagiarismFlag{}
	}
	if verdict.Matches == nil {
		verdict.Matches = []model.SimilarityMatch{}
	}
	verdict.Report.Recommendation = recommendOriginal
	if confidence > reviewThreshold {
		verdict.Report.Recommendation = recommendReview
	}

	metrics.RecordPlagiarismCheck(verdict.IsPlagiarized)
	metrics.ObserveCheckDuration(float64(time.Since(start).Milliseconds()))
	return verdict
}

func (d *Detector) fetchMetadata(ctx context.Context, repoRef string) (model.RepoMetadata, error) {
	if d.metadata == nil {
		return model.RepoMetadata{}, ErrNoMetadataSource
	}
	return d.metadata.RepoMetadata(ctx, repoRef)
}

// metadataFlags derives risk flags from repository metadata: a fork is a
// high-severity signal naming the parent, a near-empty history a medium
// one.
func metadataFlags(meta model.RepoMetadata) []model.PlagiarismFlag {
	var flags []model.PlagiarismFlag
	if meta.IsFork {
		flags = append(flags, model.PlagiarismFlag{
			Kind:     flagFork,
			Severity: types.SeverityHigh,
			Message:  fmt.Sprintf("Repository is forked from %s", meta.ParentRepo),
		})
	}
	if meta.CommitCount < minExpectedCommits {
		flags = append(flags, model.PlagiarismFlag{
			Kind:     flagLowCommits,
			Severity: types.SeverityMedium,
			Message:  fmt.Sprintf("Only %d commits found", meta.CommitCount),
		})
	}
	return flags
}

// priorMatches compares the description against stored prior projects,
// bounded to maxPriorComparisons ids. A missing store or a failed lookup
// contributes nothing.
func (d *Detector) priorMatches(ctx context.Context, description string, ids []string) []model.SimilarityMatch {
	if d.store == nil || len(ids) == 0 {
		return nil
	}
	if len(ids) > maxPriorComparisons {
		ids = ids[:maxPriorComparisons]
	}
	var matches []model.SimilarityMatch
	for _, id := range ids {
		prior, err := d.store.Description(ctx, id)
		if err != nil {
			if d.logger != nil {
				d.logger.Debug(ctx, "prior description lookup failed",
					logger.String("projectID", id),
					logger.Error(err),
				)
			}
			continue
		}
		sim := similarity.Ratio(description, prior)
		if sim > priorThreshold {
			matches = append(matches, model.SimilarityMatch{
				ProjectID:  id,
				Similarity: round2(sim),
				Type:       types.MatchDescription,
			})
		}
	}
	return matches
}

// searchSimilar queries the search lookup with the first ten normalized
// tokens of the description. Failure degrades to no results.
func (d *Detector) searchSimilar(ctx context.Context, description string) []SearchResult {
	if d.search == nil {
		return nil
	}
	query := feature.QueryTokens(description, searchQueryTokens)
	if query == "" {
		return nil
	}
	results, err := d.search.SearchRepos(ctx, query)
	if err != nil {
		if d.logger != nil {
			d.logger.Debug(ctx, "project search failed", logger.Error(err))
		}
		metrics.RecordLookupError("search")
		return nil
	}
	return results
}

func publicMatches(description string, similar []SearchResult) []model.SimilarityMatch {
	var matches []model.SimilarityMatch
	for _, proj := range similar {
		sim := similarity.Ratio(description, proj.Description)
		if sim > publicThreshold {
			matches = append(matches, model.SimilarityMatch{
				Name:       proj.Name,
				URL:        proj.URL,
				Similarity: round2(sim),
				Type:       types.MatchPublicRepo,
			})
		}
	}
	return matches
}

// confidenceScore is min(maxMatchSimilarity + 20*highFlags, 100). A
// request with no matches and no flags yields 0. The formula can
// saturate from high-severity flags alone, which is intended: a fork is
// damning independent of any textual overlap.
func confidenceScore(matches []model.SimilarityMatch, flags []model.PlagiarismFlag) float64 {
	var maxSim float64
	for _, m := range matches {
		if m.Similarity > maxSim {
			maxSim = m.Similarity
		}
	}
	confidence := maxSim + float64(highFlagPenalty*countHigh(flags))
	return round2(math.Min(confidence, maxConfidence))
}

func countHigh(flags []model.PlagiarismFlag) int {
	n := 0
	for _, f := range flags {
		if f.Severity == types.SeverityHigh {
			n++
		}
	}
	return n
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
