// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/okian/matchday/internal/adapters/cache"
	"github.com/okian/matchday/internal/adapters/genai"
	"github.com/okian/matchday/internal/adapters/github"
	"github.com/okian/matchday/internal/domain/compat"
	"github.com/okian/matchday/internal/domain/matching"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/plagiarism"
	"github.com/okian/matchday/pkg/logger"
)

// Service wires the matching and plagiarism pipelines behind the API
// dependency bundle.
type Service struct {
	mu sync.RWMutex

	// Core components
	ranker      *matching.Ranker
	detector    *plagiarism.Detector
	githubAPI   *github.Client
	lookupCache *cache.Store
	priors      *descStore

	// Configuration
	weights         compat.Weights
	bonusLanguage   string
	bonusMultiplier float64
	compatWeight    float64
	activityWeight  float64
	concurrency     int
	maxResultsCap   int
	cacheSize       int
	cacheTTL        time.Duration
	lookupTimeout   time.Duration
	githubBaseURL   string
	githubToken     string
	genaiAPIKey     string
	genaiBaseURL    string
	genaiModels     []string

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWeights sets the compatibility sub-score weights.
func WithWeights(w compat.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithLanguageBonus boosts the language sub-score for a shared minority
// language.
func WithLanguageBonus(language string, multiplier float64) Option {
	return func(s *Service) {
		s.bonusLanguage = language
		s.bonusMultiplier = multiplier
	}
}

// WithMixWeights sets how compatibility and activity combine into the
// final score.
func WithMixWeights(compatWeight, activityWeight float64) Option {
	return func(s *Service) {
		s.compatWeight = compatWeight
		s.activityWeight = activityWeight
	}
}

// WithConcurrency bounds how many candidates are evaluated at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithMaxResultsCap caps the per-request result limit.
func WithMaxResultsCap(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxResultsCap = n
		}
	}
}

// WithCacheSize sets the size of the external lookup cache.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// WithCacheTTL sets how long cached lookups stay fresh.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithLookupTimeout bounds each external lookup call.
func WithLookupTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.lookupTimeout = d
		}
	}
}

// WithGithubBaseURL points the repository client at a different API
// host, mainly for tests.
func WithGithubBaseURL(base string) Option {
	return func(s *Service) {
		if base != "" {
			s.githubBaseURL = base
		}
	}
}

// WithGithubToken sets the token used for repository lookups.
func WithGithubToken(token string) Option {
	return func(s *Service) {
		s.githubToken = token
	}
}

// WithTextGeneration configures the text generation fallback chain used
// for match reasons. An empty key or model list disables generation and
// every reason comes from the template.
func WithTextGeneration(apiKey, baseURL string, models []string) Option {
	return func(s *Service) {
		s.genaiAPIKey = apiKey
		s.genaiBaseURL = baseURL
		s.genaiModels = models
	}
}

// Default service configuration.
const (
	defaultConcurrency   = 8
	defaultMaxResultsCap = 50
	defaultCacheSize     = 4096
	defaultCacheTTL      = 5 * time.Minute
	defaultLookupTimeout = 10 * time.Second
)

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		weights:        compat.DefaultWeights(),
		compatWeight:   0.8,
		activityWeight: 0.2,
		concurrency:    defaultConcurrency,
		maxResultsCap:  defaultMaxResultsCap,
		cacheSize:      defaultCacheSize,
		cacheTTL:       defaultCacheTTL,
		lookupTimeout:  defaultLookupTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting matchday service...")

	if err := s.weights.Validate(); err != nil {
		return err
	}

	s.lookupCache = cache.New(
		cache.WithMaxSize(s.cacheSize),
		cache.WithTTL(s.cacheTTL),
	)

	githubOpts := []github.Option{
		github.WithCache(s.lookupCache),
		github.WithTimeout(s.lookupTimeout),
		github.WithLogger(s.logger),
	}
	if s.githubBaseURL != "" {
		githubOpts = append(githubOpts, github.WithBaseURL(s.githubBaseURL))
	}
	if s.githubToken != "" {
		githubOpts = append(githubOpts, github.WithToken(s.githubToken))
	}
	s.githubAPI = github.New(githubOpts...)

	scorerOpts := []compat.Option{compat.WithWeights(s.weights)}
	if s.bonusLanguage != "" && s.bonusMultiplier > 1 {
		scorerOpts = append(scorerOpts, compat.WithLanguageBonus(s.bonusLanguage, s.bonusMultiplier))
	}
	scorer := compat.NewScorer(scorerOpts...)

	rankerOpts := []matching.Option{
		matching.WithScorer(scorer),
		matching.WithActivitySource(s.githubAPI),
		matching.WithMixWeights(s.compatWeight, s.activityWeight),
		matching.WithConcurrency(s.concurrency),
		matching.WithLogger(s.logger),
	}
	if reasons := s.buildReasonWriter(ctx); reasons != nil {
		rankerOpts = append(rankerOpts, matching.WithReasonWriter(reasons))
	}
	s.ranker = matching.NewRanker(rankerOpts...)

	s.priors = newDescStore()
	s.detector = plagiarism.NewDetector(
		plagiarism.WithMetadataSource(s.githubAPI),
		plagiarism.WithSearchSource(s.githubAPI),
		plagiarism.WithDescriptionStore(s.priors),
		plagiarism.WithLogger(s.logger),
	)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "matchday service started",
		logger.Int("concurrency", s.concurrency),
		logger.Int("cacheSize", s.cacheSize),
		logger.Int("genaiModels", len(s.genaiModels)),
	)

	return nil
}

// buildReasonWriter assembles the generation fallback chain, or nil
// when text generation is not configured.
func (s *Service) buildReasonWriter(ctx context.Context) matching.ReasonWriter {
	if s.genaiAPIKey == "" || len(s.genaiModels) == 0 {
		return nil
	}

	generators := make([]genai.Generator, 0, len(s.genaiModels))
	for _, m := range s.genaiModels {
		var geminiOpts []genai.GeminiOption
		if s.genaiBaseURL != "" {
			geminiOpts = append(geminiOpts, genai.WithGeminiBaseURL(s.genaiBaseURL))
		}
		g, err := genai.NewGemini(s.genaiAPIKey, m, geminiOpts...)
		if err != nil {
			s.logger.Warn(ctx, "skipping text generation model",
				logger.String("model", m),
				logger.Error(err),
			)
			continue
		}
		generators = append(generators, g)
	}
	if len(generators) == 0 {
		return nil
	}

	return &generatedReasons{
		chain: genai.NewChain(generators...),
		cfg:   genai.DefaultConfig(),
	}
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "matchday service stopped")
}

// Match ranks the candidate pool for the subject profile. The result
// limit is capped so a single request cannot ask for the whole pool.
func (s *Service) Match(ctx context.Context, subject model.BuilderProfile, pool []model.BuilderProfile, maxResults int) []model.MatchResult {
	if maxResults > s.maxResultsCap {
		maxResults = s.maxResultsCap
	}
	return s.ranker.Rank(ctx, subject, pool, maxResults)
}

// CheckPlagiarism produces an originality verdict for a submission and
// records the submission for future prior-project comparisons. The
// recording happens after the check so a submission never matches
// itself.
func (s *Service) CheckPlagiarism(ctx context.Context, projectID, description, repoRef string, compareAgainst []string) model.PlagiarismVerdict {
	verdict := s.detector.Check(ctx, description, repoRef, compareAgainst)
	s.priors.Record(projectID, description)
	return verdict
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"concurrency":   s.concurrency,
		"maxResultsCap": s.maxResultsCap,
	}

	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
		stats["cachedLookups"] = s.lookupCache.Size()
		stats["knownProjects"] = s.priors.Count()
	}

	return stats
}
