package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/matchday/internal/adapters/genai"
	"github.com/okian/matchday/internal/domain/compat"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/pkg/metrics"
)

// generatedReasons adapts a text generation chain to the ranker's
// reason port. Generation failures fall back to the ranker's template.
type generatedReasons struct {
	chain genai.Generator
	cfg   genai.Config
}

func (g *generatedReasons) Reason(ctx context.Context, subject, candidate model.BuilderProfile, breakdown compat.Breakdown) (string, error) {
	prompt := fmt.Sprintf(
		"Write one short sentence explaining why builder %q (role %s, skills: %s) "+
			"would be a good hackathon teammate for builder %q (role %s, skills: %s). "+
			"Their compatibility is %.0f%%. Plain text, no markdown.",
		candidate.UserID, candidate.PreferredRole, strings.Join(candidate.Skills, ", "),
		subject.UserID, subject.PreferredRole, strings.Join(subject.Skills, ", "),
		breakdown.Final*100,
	)

	text, err := g.chain.Generate(ctx, prompt, g.cfg)
	if err != nil {
		metrics.RecordReasonFallback()
		return "", fmt.Errorf("generate match reason: %w", err)
	}
	metrics.RecordReasonGenerated()
	return strings.TrimSpace(text), nil
}
