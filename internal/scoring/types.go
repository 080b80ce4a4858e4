// Package scoring is the resume-job match engine. It turns extracted resume
// text and an optional job description into a composite score, a category
// breakdown and recommendations.
package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"resume-matcher/internal/extract"
	"resume-matcher/internal/llm"
)

// Category names a sub-score. The names are part of the output contract.
type Category string

const (
	KeywordMatch        Category = "keyword_match"
	SemanticSimilarity  Category = "semantic_similarity"
	SkillsMatch         Category = "skills_match"
	ExperienceMatch     Category = "experience_match"
	ATSFormatting       Category = "ats_formatting"
	SectionCompleteness Category = "section_completeness"
)

const numCategories = 6

// Categories lists every category in canonical display order.
var Categories = [numCategories]Category{
	KeywordMatch,
	SemanticSimilarity,
	SkillsMatch,
	ExperienceMatch,
	ATSFormatting,
	SectionCompleteness,
}

func categoryIndex(c Category) int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return -1
}

// AnalysisRequest is the input of one analysis.
type AnalysisRequest struct {
	ResumeText     string
	JobDescription string
	Skills         []string
	Years          float64
	Signals        extract.StructuralSignals
}

// ScoreBreakdown holds one value per category. Every category is always
// present; unknown keys are ignored on decode and missing ones read as 0.
type ScoreBreakdown struct {
	values [numCategories]float64
}

// Get returns the value for c, or 0 for an unknown category.
func (b ScoreBreakdown) Get(c Category) float64 {
	if i := categoryIndex(c); i >= 0 {
		return b.values[i]
	}
	return 0
}

func (b *ScoreBreakdown) set(c Category, v float64) {
	if i := categoryIndex(c); i >= 0 {
		b.values[i] = round2(clampPercent(v))
	}
}

// Scores returns the breakdown in canonical order.
func (b ScoreBreakdown) Scores() []llm.CategoryScore {
	out := make([]llm.CategoryScore, numCategories)
	for i, c := range Categories {
		out[i] = llm.CategoryScore{Name: string(c), Value: b.values[i]}
	}
	return out
}

// MarshalJSON writes the categories in canonical order.
func (b ScoreBreakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(string(c))
		val, err := json.Marshal(b.values[i])
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", c, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a stored breakdown.
func (b *ScoreBreakdown) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = ScoreBreakdown{}
	for _, c := range Categories {
		b.set(c, raw[string(c)])
	}
	return nil
}

// AIAnalysis is the optional qualitative review. When Enabled is false all
// other fields are empty and serialize as absent.
type AIAnalysis struct {
	Enabled          bool
	GeminiScore      float64
	DetailedFeedback string
	Strengths        []string
	Weaknesses       []string
	ImprovementAreas []llm.ImprovementArea

	// suggestions feed recommendations only and are never serialized.
	suggestions []string
}

// DisabledAnalysis is the AIAnalysis of a request without a usable review.
func DisabledAnalysis() AIAnalysis {
	return AIAnalysis{}
}

// EnabledAnalysis builds an AIAnalysis from a validated review.
func EnabledAnalysis(r llm.Review) AIAnalysis {
	return AIAnalysis{
		Enabled:          true,
		GeminiScore:      round2(clampPercent(r.Score)),
		DetailedFeedback: r.DetailedFeedback,
		Strengths:        nonNil(r.Strengths),
		Weaknesses:       nonNil(r.Weaknesses),
		ImprovementAreas: nonNilAreas(r.ImprovementAreas),
		suggestions:      append([]string(nil), r.Suggestions...),
	}
}

type aiAnalysisJSON struct {
	Enabled          bool                  `json:"enabled"`
	GeminiScore      *float64              `json:"gemini_score,omitempty"`
	DetailedFeedback *string               `json:"detailed_feedback,omitempty"`
	Strengths        []string              `json:"strengths,omitempty"`
	Weaknesses       []string              `json:"weaknesses,omitempty"`
	ImprovementAreas []llm.ImprovementArea `json:"improvement_areas,omitempty"`
}

// MarshalJSON emits only the enabled flag for a disabled analysis.
func (a AIAnalysis) MarshalJSON() ([]byte, error) {
	if !a.Enabled {
		return json.Marshal(aiAnalysisJSON{Enabled: false})
	}
	score := a.GeminiScore
	feedback := a.DetailedFeedback
	// Empty lists still appear when enabled.
	type enabledJSON struct {
		Enabled          bool                  `json:"enabled"`
		GeminiScore      *float64              `json:"gemini_score"`
		DetailedFeedback *string               `json:"detailed_feedback"`
		Strengths        []string              `json:"strengths"`
		Weaknesses       []string              `json:"weaknesses"`
		ImprovementAreas []llm.ImprovementArea `json:"improvement_areas"`
	}
	return json.Marshal(enabledJSON{
		Enabled:          true,
		GeminiScore:      &score,
		DetailedFeedback: &feedback,
		Strengths:        nonNil(a.Strengths),
		Weaknesses:       nonNil(a.Weaknesses),
		ImprovementAreas: nonNilAreas(a.ImprovementAreas),
	})
}

// UnmarshalJSON reads a stored analysis.
func (a *AIAnalysis) UnmarshalJSON(data []byte) error {
	var raw aiAnalysisJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.Enabled {
		*a = DisabledAnalysis()
		return nil
	}
	*a = AIAnalysis{
		Enabled:          true,
		Strengths:        nonNil(raw.Strengths),
		Weaknesses:       nonNil(raw.Weaknesses),
		ImprovementAreas: nonNilAreas(raw.ImprovementAreas),
	}
	if raw.GeminiScore != nil {
		a.GeminiScore = *raw.GeminiScore
	}
	if raw.DetailedFeedback != nil {
		a.DetailedFeedback = *raw.DetailedFeedback
	}
	return nil
}

// AnalysisResult is the engine's only output.
type AnalysisResult struct {
	OverallScore    float64        `json:"overall_score"`
	MatchLevel      string         `json:"match_level"`
	ScoreBreakdown  ScoreBreakdown `json:"score_breakdown"`
	MLScore         float64        `json:"ml_score"`
	AIAnalysis      AIAnalysis     `json:"ai_analysis"`
	Recommendations []string       `json:"recommendations"`
	MissingKeywords []string       `json:"missing_keywords"`
}

// InputError is a request that cannot be analyzed. It is fatal for the
// request and carries no partial result.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "could not analyze this document: " + e.Reason
}

// ExternalServiceError is a failed optional collaborator call. The engine
// logs it and degrades; it is never returned to callers.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilAreas(s []llm.ImprovementArea) []llm.ImprovementArea {
	if s == nil {
		return []llm.ImprovementArea{}
	}
	return s
}
