package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	maxSuggestions      = 10
	maxStrengths        = 5
	maxWeaknesses       = 5
	maxImprovementAreas = 8
)

// ErrMalformedResponse marks reviewer output that cannot be used.
var ErrMalformedResponse = errors.New("malformed reviewer response")

// ParseReview decodes a reviewer response. Markdown fences and surrounding
// prose are tolerated; a missing or out-of-range score is not.
func ParseReview(raw string) (Review, error) {
	payload := extractJSON(raw)
	if payload == "" {
		return Review{}, fmt.Errorf("%w: empty output", ErrMalformedResponse)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return Review{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	score := coerceFloat(data["gemini_score"])
	if math.IsNaN(score) {
		return Review{}, fmt.Errorf("%w: gemini_score missing or not numeric", ErrMalformedResponse)
	}
	if score < 0 || score > 100 {
		return Review{}, fmt.Errorf("%w: gemini_score %v out of range", ErrMalformedResponse, score)
	}

	return Review{
		Score:            score,
		DetailedFeedback: coerceString(data["detailed_feedback"]),
		Strengths:        coerceStrings(data["strengths"], maxStrengths),
		Weaknesses:       coerceStrings(data["weaknesses"], maxWeaknesses),
		ImprovementAreas: coerceAreas(data["improvement_areas"], maxImprovementAreas),
		Suggestions:      coerceStrings(data["suggestions"], maxSuggestions),
	}, nil
}

// NormalizePriority maps free-form priorities onto high, medium or low.
func NormalizePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "high", "critical", "urgent":
		return PriorityHigh
	case "medium", "moderate", "med":
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.TrimSpace(strings.Trim(raw, "`"))
	if strings.HasPrefix(raw, "{") {
		return raw
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSuffix(strings.TrimSpace(val), "%")
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func coerceStrings(v any, limit int) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s := coerceString(item)
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}

func coerceAreas(v any, limit int) []ImprovementArea {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]ImprovementArea, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		area := ImprovementArea{
			Area:       coerceString(m["area"]),
			Priority:   NormalizePriority(coerceString(m["priority"])),
			Suggestion: coerceString(m["suggestion"]),
		}
		if area.Area == "" && area.Suggestion == "" {
			continue
		}
		out = append(out, area)
		if len(out) == limit {
			break
		}
	}
	return out
}
