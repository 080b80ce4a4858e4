package analyses

import (
	"time"

	"resume-matcher/internal/scoring"
)

// Analysis is one stored scoring run.
type Analysis struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"userId"`
	DocumentKey    string                 `json:"documentKey,omitempty"`
	FileName       string                 `json:"fileName"`
	MimeType       string                 `json:"mimeType"`
	JobDescription string                 `json:"jobDescription"`
	OverallScore   float64                `json:"overallScore"`
	MatchLevel     string                 `json:"matchLevel"`
	AIEnabled      bool                   `json:"aiEnabled"`
	Result         scoring.AnalysisResult `json:"result"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// Summary is the list view of an analysis.
type Summary struct {
	ID           string    `json:"analysisId"`
	FileName     string    `json:"fileName"`
	OverallScore float64   `json:"overallScore"`
	MatchLevel   string    `json:"matchLevel"`
	ScoreColor   string    `json:"scoreColor"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Summarize returns the list view of a.
func (a Analysis) Summarize() Summary {
	return Summary{
		ID:           a.ID,
		FileName:     a.FileName,
		OverallScore: a.OverallScore,
		MatchLevel:   a.MatchLevel,
		ScoreColor:   scoring.ScoreColor(a.OverallScore),
		CreatedAt:    a.CreatedAt,
	}
}
