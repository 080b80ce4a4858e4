// Package llm defines the resume reviewer contract, its prompt and the
// parsing of reviewer responses.
package llm

import (
	"context"
	"errors"
)

// Improvement priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Reviewer asks a reasoning model for a qualitative critique of a resume.
type Reviewer interface {
	Review(ctx context.Context, input ReviewInput) (Review, error)
}

// CategoryScore is one deterministic sub-score passed as grounding context.
type CategoryScore struct {
	Name  string
	Value float64
}

// ReviewInput captures what the reviewer sees.
type ReviewInput struct {
	ResumeText     string
	JobDescription string
	Breakdown      []CategoryScore
	MLScore        float64
}

// ImprovementArea is a prioritized suggestion.
type ImprovementArea struct {
	Area       string `json:"area"`
	Priority   string `json:"priority"`
	Suggestion string `json:"suggestion"`
}

// Review is a validated reviewer response.
type Review struct {
	Score            float64
	DetailedFeedback string
	Strengths        []string
	Weaknesses       []string
	ImprovementAreas []ImprovementArea
	Suggestions      []string
}

// ErrDisabled is returned by Disabled.
var ErrDisabled = errors.New("llm reviewer disabled")

// Disabled is the reviewer used when no provider is configured.
type Disabled struct{}

// Review returns ErrDisabled.
func (Disabled) Review(context.Context, ReviewInput) (Review, error) {
	return Review{}, ErrDisabled
}
