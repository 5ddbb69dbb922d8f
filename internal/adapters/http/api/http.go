// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/matchday/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to implementations in other
// packages.
type Dependencies interface {
	// Match ranks the candidate pool for the subject profile.
	Match(ctx context.Context, subject model.BuilderProfile, pool []model.BuilderProfile, maxResults int) []model.MatchResult

	// CheckPlagiarism produces an originality verdict for a submission.
	// The project id, when present, records the submission for future
	// prior-project comparisons.
	CheckPlagiarism(ctx context.Context, projectID, description, repoRef string, compareAgainst []string) model.PlagiarismVerdict
}

// StatsProvider exposes service statistics for the stats endpoint.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	matchHandler      *MatchHandler
	plagiarismHandler *PlagiarismHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		matchHandler:      NewMatchHandler(deps),
		plagiarismHandler: NewPlagiarismHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", RequestIDMiddleware(MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")))
	mux.HandleFunc("/stats", RequestIDMiddleware(MetricsMiddleware(s.statsHandler.HandleStats, "stats")))
	mux.HandleFunc("/match", RequestIDMiddleware(MetricsMiddleware(s.matchHandler.HandleMatch, "match")))
	mux.HandleFunc("/plagiarism", RequestIDMiddleware(MetricsMiddleware(s.plagiarismHandler.HandleCheck, "plagiarism")))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
