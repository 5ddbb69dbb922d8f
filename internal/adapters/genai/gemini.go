package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Gemini API defaults.
const (
	defaultGeminiBase    = "https://generativelanguage.googleapis.com"
	defaultGeminiTimeout = 15 * time.Second
)

// Gemini calls one googlegenerativelanguage model. Build one per model
// and compose them with NewChain for multi-model fallback.
type Gemini struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// GeminiOption configures a Gemini provider.
type GeminiOption func(*Gemini)

// WithGeminiBaseURL overrides the API base URL, mainly for tests.
func WithGeminiBaseURL(base string) GeminiOption {
	return func(g *Gemini) {
		if base != "" {
			g.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithGeminiTimeout bounds each generation call.
func WithGeminiTimeout(d time.Duration) GeminiOption {
	return func(g *Gemini) {
		if d > 0 {
			g.httpClient.Timeout = d
		}
	}
}

// NewGemini creates a provider for the given model name.
func NewGemini(apiKey, model string, opts ...GeminiOption) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	g := &Gemini{
		httpClient: &http.Client{Timeout: defaultGeminiTimeout},
		baseURL:    defaultGeminiBase,
		apiKey:     apiKey,
		model:      model,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Name identifies the provider by model.
func (g *Gemini) Name() string { return g.model }

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt to the model's generateContent endpoint.
func (g *Gemini) Generate(ctx context.Context, prompt string, cfg Config) (string, error) {
	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:     cfg.Temperature,
			TopP:            cfg.TopP,
			TopK:            cfg.TopK,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	urlStr := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, g.model)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var decoded geminiResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text), nil
}
