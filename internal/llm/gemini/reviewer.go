// Package gemini implements llm.Reviewer on the Google GenAI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"resume-matcher/internal/llm"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.5-flash"
	provider     = "gemini"

	maxLoggedOutput = 500
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Reviewer asks Gemini for a JSON review of a resume.
type Reviewer struct {
	models contentGenerator
	model  string
	logger *zap.Logger
}

// NewReviewer creates a Reviewer for the Gemini API backend.
func NewReviewer(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Reviewer, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newReviewer(client.Models, model, logger), nil
}

func newReviewer(models contentGenerator, model string, logger *zap.Logger) *Reviewer {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reviewer{
		models: models,
		model:  model,
		logger: logger.With(zap.String("ai_provider", provider), zap.String("ai_model", model)),
	}
}

// Model returns the configured model name.
func (r *Reviewer) Model() string {
	return r.model
}

// Review sends one generation request; the caller owns the deadline.
func (r *Reviewer) Review(ctx context.Context, input llm.ReviewInput) (llm.Review, error) {
	if r == nil || r.models == nil {
		return llm.Review{}, errors.New("gemini reviewer is not initialized")
	}

	temperature := float32(0.2)
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  4096,
		ResponseMIMEType: "application/json",
	}

	start := time.Now()
	resp, err := r.models.GenerateContent(ctx, r.model, genai.Text(llm.BuildPrompt(input)), config)
	if err != nil {
		return llm.Review{}, fmt.Errorf("gemini generate content: %w", err)
	}
	output := responseText(resp)
	if output == "" {
		return llm.Review{}, errors.New("gemini api returned empty response")
	}

	review, err := llm.ParseReview(output)
	if err != nil {
		r.logger.Debug("gemini.review.unparseable", zap.String("output", truncateForLog(output, maxLoggedOutput)))
		return llm.Review{}, err
	}
	r.logger.Debug("gemini.review.complete",
		zap.Float64("gemini_score", review.Score),
		zap.Duration("duration", time.Since(start)),
	)
	return review, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
		// Only the first candidate with content is used.
		if builder.Len() > 0 {
			break
		}
	}
	return strings.TrimSpace(builder.String())
}

func truncateForLog(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}

var _ llm.Reviewer = (*Reviewer)(nil)
