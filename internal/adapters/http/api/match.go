// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/types"
)

// builderPayload mirrors the wire schema for a builder profile.
type builderPayload struct {
	UserID        string   `json:"user_id"`
	WalletAddress string   `json:"wallet_address"`
	BuilderScore  int      `json:"builder_score"`
	Skills        []string `json:"skills"`
	GithubURL     string   `json:"github_url"`
	Timezone      string   `json:"timezone"`
	PreferredRole string   `json:"preferred_role"`
	LookingFor    []string `json:"looking_for_roles"`
	Language      string   `json:"language"`
	Availability  string   `json:"availability"`
}

func (b builderPayload) validate() error {
	if strings.TrimSpace(b.UserID) == "" {
		return errors.New("missing user_id")
	}
	return nil
}

// toDomain maps the payload onto the domain profile, applying the
// documented defaults for malformed enum fields.
func (b builderPayload) toDomain() model.BuilderProfile {
	roles := make([]types.Role, 0, len(b.LookingFor))
	for _, r := range b.LookingFor {
		roles = append(roles, types.ParseRole(r))
	}
	return model.BuilderProfile{
		UserID:        b.UserID,
		WalletAddress: b.WalletAddress,
		BuilderScore:  b.BuilderScore,
		Skills:        b.Skills,
		GithubURL:     b.GithubURL,
		Timezone:      b.Timezone,
		PreferredRole: types.ParseRole(b.PreferredRole),
		LookingFor:    roles,
		Language:      b.Language,
		Availability:  types.ParseAvailability(b.Availability),
	}
}

// matchRequest mirrors the wire schema for POST /match.
type matchRequest struct {
	Builder       builderPayload   `json:"builder"`
	CandidatePool []builderPayload `json:"candidate_pool"`
	MaxResults    int              `json:"max_results"`
}

func (m matchRequest) validate() error {
	if err := m.Builder.validate(); err != nil {
		return err
	}
	if m.MaxResults < 0 {
		return errors.New("max_results must not be negative")
	}
	return nil
}

type matchResponse struct {
	Matches []model.MatchResult `json:"matches"`
}

// MatchHandler handles team-match requests.
type MatchHandler struct {
	deps Dependencies
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps Dependencies) *MatchHandler {
	return &MatchHandler{deps: deps}
}

// HandleMatch handles POST /match requests.
func (h *MatchHandler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.match"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	pool := make([]model.BuilderProfile, 0, len(req.CandidatePool))
	for _, c := range req.CandidatePool {
		pool = append(pool, c.toDomain())
	}

	matches := h.deps.Match(r.Context(), req.Builder.toDomain(), pool, req.MaxResults)
	writeJSON(w, http.StatusOK, matchResponse{Matches: matches})
}
