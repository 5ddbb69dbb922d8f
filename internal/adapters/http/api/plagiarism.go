// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// plagiarismRequest mirrors the wire schema for POST /plagiarism.
type plagiarismRequest struct {
	ProjectID      string   `json:"project_id"`
	Description    string   `json:"description"`
	GithubURL      string   `json:"github_url"`
	CompareAgainst []string `json:"compare_against"`
}

func (p plagiarismRequest) validate() error {
	switch {
	case strings.TrimSpace(p.Description) == "":
		return errors.New("missing description")
	case strings.TrimSpace(p.GithubURL) == "":
		return errors.New("missing github_url")
	}
	return nil
}

// PlagiarismHandler handles originality check requests.
type PlagiarismHandler struct {
	deps Dependencies
}

// NewPlagiarismHandler creates a new plagiarism handler.
func NewPlagiarismHandler(deps Dependencies) *PlagiarismHandler {
	return &PlagiarismHandler{deps: deps}
}

// HandleCheck handles POST /plagiarism requests. External lookup
// failures never fail the request; they show up inside the report.
func (h *PlagiarismHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	const op = "api.plagiarism"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req plagiarismRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	verdict := h.deps.CheckPlagiarism(r.Context(), req.ProjectID, req.Description, req.GithubURL, req.CompareAgainst)
	writeJSON(w, http.StatusOK, verdict)
}
