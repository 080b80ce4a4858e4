package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseReviewFencedJSON(t *testing.T) {
	raw := "```json\n" + `{
  "gemini_score": 82,
  "suggestions": ["Quantify impact"],
  "detailed_feedback": "Solid backend profile.",
  "strengths": ["Go", "Postgres"],
  "weaknesses": ["No Kubernetes"],
  "improvement_areas": [{"area": "Cloud", "priority": "HIGH", "suggestion": "Add Kubernetes work"}]
}` + "\n```"

	review, err := ParseReview(raw)
	if err != nil {
		t.Fatalf("ParseReview: %v", err)
	}
	if review.Score != 82 {
		t.Fatalf("expected score 82, got %v", review.Score)
	}
	if len(review.ImprovementAreas) != 1 || review.ImprovementAreas[0].Priority != PriorityHigh {
		t.Fatalf("unexpected improvement areas: %+v", review.ImprovementAreas)
	}
	if review.DetailedFeedback != "Solid backend profile." {
		t.Fatalf("unexpected feedback: %q", review.DetailedFeedback)
	}
}

func TestParseReviewToleratesProseAndStringScore(t *testing.T) {
	review, err := ParseReview(`Here is my review: {"gemini_score": "64.5", "strengths": ["a", "", 3]} Thanks!`)
	if err != nil {
		t.Fatalf("ParseReview: %v", err)
	}
	if review.Score != 64.5 {
		t.Fatalf("expected 64.5, got %v", review.Score)
	}
	if len(review.Strengths) != 1 || review.Strengths[0] != "a" {
		t.Fatalf("unexpected strengths: %v", review.Strengths)
	}
}

func TestParseReviewCapsLists(t *testing.T) {
	var items []string
	for i := 0; i < 20; i++ {
		items = append(items, fmt.Sprintf("%q", fmt.Sprintf("item %d", i)))
	}
	list := "[" + strings.Join(items, ",") + "]"
	raw := fmt.Sprintf(`{"gemini_score": 50, "suggestions": %s, "strengths": %s, "weaknesses": %s}`, list, list, list)

	review, err := ParseReview(raw)
	if err != nil {
		t.Fatalf("ParseReview: %v", err)
	}
	if len(review.Suggestions) != maxSuggestions || len(review.Strengths) != maxStrengths || len(review.Weaknesses) != maxWeaknesses {
		t.Fatalf("caps not applied: %d %d %d", len(review.Suggestions), len(review.Strengths), len(review.Weaknesses))
	}
}

func TestParseReviewRejectsUnusableOutput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "prose only", raw: "I cannot help with that."},
		{name: "missing score", raw: `{"strengths": ["x"]}`},
		{name: "score too high", raw: `{"gemini_score": 140}`},
		{name: "negative score", raw: `{"gemini_score": -1}`},
		{name: "broken json", raw: `{"gemini_score": 40,`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseReview(tc.raw); !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestNormalizePriority(t *testing.T) {
	cases := map[string]string{"High": PriorityHigh, "critical": PriorityHigh, "Medium": PriorityMedium, "low": PriorityLow, "whenever": PriorityLow}
	for in, want := range cases {
		if got := NormalizePriority(in); got != want {
			t.Fatalf("NormalizePriority(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildPromptTruncatesAndListsBreakdown(t *testing.T) {
	prompt := BuildPrompt(ReviewInput{
		ResumeText:     strings.Repeat("r", maxPromptResumeRunes+500),
		JobDescription: "Go engineer",
		Breakdown:      []CategoryScore{{Name: "keyword_match", Value: 42.5}},
		MLScore:        61.3,
	})
	if strings.Count(prompt, "r") < maxPromptResumeRunes || strings.Contains(prompt, strings.Repeat("r", maxPromptResumeRunes+1)) {
		t.Fatalf("expected resume truncated to %d runes", maxPromptResumeRunes)
	}
	for _, want := range []string{"Keyword Match: 42.5%", "MACHINE LEARNING SCORE: 61.3/100", "Go engineer", `"gemini_score"`} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestDisabledReviewer(t *testing.T) {
	if _, err := (Disabled{}).Review(context.Background(), ReviewInput{}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
