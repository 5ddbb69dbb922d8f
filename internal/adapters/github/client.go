// Package github implements the activity, repository-metadata and
// repository-search lookups against the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/okian/matchday/internal/adapters/cache"
	"github.com/okian/matchday/internal/domain/matching"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/plagiarism"
	"github.com/okian/matchday/pkg/logger"
	"github.com/okian/matchday/pkg/metrics"
)

// Client configuration constants.
const (
	defaultBaseURL    = "https://api.github.com"
	defaultTimeout    = 3 * time.Second
	searchResultLimit = 5
	maxBodyBytes      = 1 << 20
	retryAttempts     = 2
	retryDelay        = 200 * time.Millisecond
	retryJitter       = 100 * time.Millisecond
)

// Client calls the GitHub REST API. It implements matching.ActivitySource,
// plagiarism.MetadataSource and plagiarism.SearchSource; callers are
// expected to treat every error as a degraded-lookup signal.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	cache      *cache.Store
	logger     logger.Logger
}

// Interface guards.
var (
	_ matching.ActivitySource   = (*Client)(nil)
	_ plagiarism.MetadataSource = (*Client)(nil)
	_ plagiarism.SearchSource   = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, mainly for tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithToken sets the API token. Without one, requests go out
// unauthenticated at the much lower anonymous rate limit.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout bounds each HTTP call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithCache sets the lookup response cache.
func WithCache(store *cache.Store) Option {
	return func(c *Client) {
		c.cache = store
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a GitHub client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Activity fetches the user behind a repository link and maps the
// response to activity counters.
func (c *Client) Activity(ctx context.Context, repoLink string) (matching.Activity, error) {
	username := extractUsername(repoLink)
	if username == "" {
		return matching.Activity{}, fmt.Errorf("%w: %s", ErrBadRepoRef, repoLink)
	}

	body, err := c.fetch(ctx, c.baseURL+"/users/"+username)
	if err != nil {
		return matching.Activity{}, err
	}
	var payload struct {
		PublicRepos int `json:"public_repos"`
		Followers   int `json:"followers"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return matching.Activity{}, fmt.Errorf("decode user payload: %w", err)
	}
	return matching.Activity{PublicRepos: payload.PublicRepos, Followers: payload.Followers}, nil
}

// RepoMetadata fetches fork status, commit count and language breakdown
// for a repository. The commits and languages calls degrade
// individually; only the repository call itself is fatal to the lookup.
func (c *Client) RepoMetadata(ctx context.Context, repoRef string) (model.RepoMetadata, error) {
	owner, repo, err := splitRepoRef(repoRef)
	if err != nil {
		return model.RepoMetadata{}, err
	}
	repoURL := c.baseURL + "/repos/" + owner + "/" + repo

	body, err := c.fetch(ctx, repoURL)
	if err != nil {
		return model.RepoMetadata{}, err
	}
	var payload struct {
		Fork   bool `json:"fork"`
		Parent struct {
			FullName string `json:"full_name"`
		} `json:"parent"`
		CreatedAt string `json:"created_at"`
		PushedAt  string `json:"pushed_at"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return model.RepoMetadata{}, fmt.Errorf("decode repo payload: %w", err)
	}

	meta := model.RepoMetadata{
		IsFork:    payload.Fork,
		CreatedAt: payload.CreatedAt,
		LastPush:  payload.PushedAt,
	}
	if payload.Fork {
		meta.ParentRepo = payload.Parent.FullName
	}

	if body, err := c.fetch(ctx, repoURL+"/commits"); err == nil {
		var commits []json.RawMessage
		if err := json.Unmarshal(body, &commits); err == nil {
			meta.CommitCount = len(commits)
		}
	} else if c.logger != nil {
		c.logger.Debug(ctx, "commit lookup degraded", logger.Error(err))
	}

	if body, err := c.fetch(ctx, repoURL+"/languages"); err == nil {
		var langs map[string]int
		if err := json.Unmarshal(body, &langs); err == nil {
			meta.Languages = langs
		}
	} else if c.logger != nil {
		c.logger.Debug(ctx, "language lookup degraded", logger.Error(err))
	}

	return meta, nil
}

// SearchRepos queries the repository search endpoint sorted by stars and
// returns at most five results.
func (c *Client) SearchRepos(ctx context.Context, query string) ([]plagiarism.SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("sort", "stars")
	q.Set("order", "desc")
	q.Set("per_page", fmt.Sprint(searchResultLimit))

	body, err := c.fetch(ctx, c.baseURL+"/search/repositories?"+q.Encode())
	if err != nil {
		return nil, err
	}
	var payload struct {
		Items []struct {
			FullName    string `json:"full_name"`
			Description string `json:"description"`
			HTMLURL     string `json:"html_url"`
			Stars       int    `json:"stargazers_count"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode search payload: %w", err)
	}

	results := make([]plagiarism.SearchResult, 0, len(payload.Items))
	for _, item := range payload.Items {
		results = append(results, plagiarism.SearchResult{
			Name:        item.FullName,
			Description: item.Description,
			URL:         item.HTMLURL,
			Stars:       item.Stars,
		})
	}
	return results, nil
}

// fetch performs a GET with caching and a bounded retry on transient
// failures.
func (c *Client) fetch(ctx context.Context, urlStr string) ([]byte, error) {
	if c.cache != nil {
		if data, ok := c.cache.Get(ctx, urlStr); ok {
			return data, nil
		}
	}

	start := time.Now()
	body, err := retry.DoWithData(
		func() ([]byte, error) {
			return c.doGet(ctx, urlStr)
		},
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(retryDelay),
		retry.MaxJitter(retryJitter),
		retry.RetryIf(isRetryableError),
		retry.OnRetry(func(n uint, err error) {
			if c.logger != nil {
				c.logger.Debug(ctx, "retrying lookup",
					logger.Int("attempt", int(n)+1),
					logger.String("url", urlStr),
					logger.Error(err),
				)
			}
		}),
	)
	metrics.ObserveLookupDuration(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(ctx, urlStr, body)
	}
	return body, nil
}

func (c *Client) doGet(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "matchday/1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: urlStr}
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

// isRetryableError returns true for transient failures worth a second
// attempt. 4xx responses (except 429) are permanent.
func isRetryableError(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	return true
}

// extractUsername pulls the username from a github.com link, tolerating
// bare usernames, missing schemes and trailing paths.
func extractUsername(link string) string {
	s := strings.TrimSpace(link)
	if s == "" {
		return ""
	}
	if idx := strings.Index(strings.ToLower(s), "github.com/"); idx >= 0 {
		s = s[idx+len("github.com/"):]
	}
	s = strings.Trim(s, "/")
	if cut := strings.IndexAny(s, "/?#"); cut >= 0 {
		s = s[:cut]
	}
	return s
}

// splitRepoRef resolves "owner/repo" from a repository link or a bare
// slug.
func splitRepoRef(ref string) (owner, repo string, err error) {
	s := strings.TrimSpace(ref)
	if idx := strings.Index(strings.ToLower(s), "github.com/"); idx >= 0 {
		s = s[idx+len("github.com/"):]
	}
	s = strings.Trim(s, "/")
	if cut := strings.IndexAny(s, "?#"); cut >= 0 {
		s = s[:cut]
	}
	parts := strings.Split(s, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %s", ErrBadRepoRef, ref)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}
