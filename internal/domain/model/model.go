// Package model contains domain models passed between layers.
package model

import "github.com/okian/matchday/internal/domain/types"

// BuilderProfile describes a hackathon participant as supplied by the
// caller. Profiles are immutable for the duration of a request.
type BuilderProfile struct {
	UserID        string             // subject/candidate identifier
	WalletAddress string             // on-chain identity, passed through untouched
	BuilderScore  int                // external reputation score
	Skills        []string           // raw skill tags, e.g. "react", "solidity"
	GithubURL     string             // optional code-repository link
	Timezone      string             // "UTC+5" style offset string; empty allowed
	PreferredRole types.Role         // role the builder wants to play
	LookingFor    []types.Role       // roles the builder wants teammates for
	Language      string             // preferred language code, e.g. "en", "es"
	Availability  types.Availability // time commitment category
}

// WantsRole reports whether the profile is looking for the given role.
func (p BuilderProfile) WantsRole(r types.Role) bool {
	for _, want := range p.LookingFor {
		if want == r {
			return true
		}
	}
	return false
}

// MatchResult is one ranked teammate suggestion. All percentages are in
// [0,100], rounded to two decimals. Results are recomputed per request
// and never persisted.
type MatchResult struct {
	UserID        string     `json:"user_id"`
	WalletAddress string     `json:"wallet_address"`
	BuilderScore  int        `json:"builder_score"`
	Skills        []string   `json:"skills"`
	PreferredRole types.Role `json:"preferred_role"`
	Compatibility float64    `json:"compatibility_score"`
	Activity      float64    `json:"activity_score"`
	FinalScore    float64    `json:"final_score"`
	Reason        string     `json:"reason"`
}

// PlagiarismFlag is a discrete risk signal derived from repository
// metadata.
type PlagiarismFlag struct {
	Kind     string         `json:"type"`
	Severity types.Severity `json:"severity"`
	Message  string         `json:"message"`
}

// SimilarityMatch records one text comparison above the reporting
// threshold.
type SimilarityMatch struct {
	ProjectID  string          `json:"project_id,omitempty"`
	Name       string          `json:"name,omitempty"`
	URL        string          `json:"url,omitempty"`
	Similarity float64         `json:"similarity"`
	Type       types.MatchType `json:"type"`
}

// RepoMetadata is what the code-hosting lookup returns for a repository.
type RepoMetadata struct {
	IsFork      bool           `json:"isFork"`
	ParentRepo  string         `json:"parentRepo,omitempty"`
	CommitCount int            `json:"commitCount"`
	Languages   map[string]int `json:"languages,omitempty"`
	CreatedAt   string         `json:"createdAt,omitempty"`
	LastPush    string         `json:"lastPush,omitempty"`
}

// PlagiarismReport carries the supporting evidence behind a verdict.
// RepoCheckError is set instead of RepoCheck when the metadata lookup
// failed; the verdict is still produced.
type PlagiarismReport struct {
	Flags           []PlagiarismFlag `json:"flags"`
	RepoCheck       *RepoMetadata    `json:"githubCheck,omitempty"`
	RepoCheckError  string           `json:"githubCheckError,omitempty"`
	SimilarProjects int              `json:"similarProjects"`
	Recommendation  string           `json:"recommendation"`
}

// PlagiarismVerdict is the originality decision for a submission.
// Confidence is in [0,100].
type PlagiarismVerdict struct {
	IsPlagiarized bool              `json:"isPlagiarized"`
	Confidence    float64           `json:"confidence"`
	Matches       []SimilarityMatch `json:"matches"`
	Report        PlagiarismReport  `json:"report"`
}
