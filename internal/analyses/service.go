package analyses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resume-matcher/internal/extract"
	"resume-matcher/internal/scoring"
	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/storage/object"
	"resume-matcher/internal/shared/telemetry"
)

// Extractor turns an uploaded file into text and layout signals.
type Extractor interface {
	Extract(ctx context.Context, data []byte, mimeType, fileName string) (extract.Document, error)
}

// Scorer produces an analysis result from a prepared request.
type Scorer interface {
	Analyze(ctx context.Context, req scoring.AnalysisRequest) (scoring.AnalysisResult, error)
	AIConfigured() bool
}

// Upload is one analyze request as received from a client.
type Upload struct {
	UserID         string
	FileName       string
	MimeType       string
	Data           []byte
	JobDescription string
	Skills         []string
	Years          float64
}

// Service contains business logic for analyses.
type Service struct {
	Repo      Repo
	Store     object.Store
	Extractor Extractor
	Scorer    Scorer
	Now       func() time.Time
}

// Analyze extracts, scores and persists one upload. Extraction failures and
// invalid input are returned unwrapped so callers can classify them.
func (s *Service) Analyze(ctx context.Context, up Upload) (Analysis, error) {
	if up.UserID == "" {
		return Analysis{}, errors.New("userID is required")
	}
	if len(up.Data) == 0 {
		metrics.IncAnalysisRejected()
		return Analysis{}, ErrEmptyInput
	}

	start := time.Now()
	metrics.IncAnalysisStarted()
	defer func() {
		metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Milliseconds()))
	}()

	doc, err := s.Extractor.Extract(ctx, up.Data, up.MimeType, up.FileName)
	if err != nil {
		metrics.IncAnalysisRejected()
		telemetry.Warn("analysis.extract_failed", map[string]any{
			"user_id":   up.UserID,
			"file_name": up.FileName,
			"mime_type": up.MimeType,
			"error":     err,
		})
		return Analysis{}, err
	}

	result, err := s.Scorer.Analyze(ctx, scoring.AnalysisRequest{
		ResumeText:     doc.Text,
		JobDescription: up.JobDescription,
		Skills:         up.Skills,
		Years:          up.Years,
		Signals:        doc.Signals,
	})
	if err != nil {
		var inputErr *scoring.InputError
		if errors.As(err, &inputErr) {
			metrics.IncAnalysisRejected()
		} else {
			metrics.IncAnalysisFailed()
		}
		return Analysis{}, err
	}
	if s.Scorer.AIConfigured() && !result.AIAnalysis.Enabled {
		metrics.IncLLMDegraded()
	}

	analysis := Analysis{
		ID:             uuid.NewString(),
		UserID:         up.UserID,
		FileName:       up.FileName,
		MimeType:       doc.MimeType,
		JobDescription: up.JobDescription,
		OverallScore:   result.OverallScore,
		MatchLevel:     result.MatchLevel,
		AIEnabled:      result.AIAnalysis.Enabled,
		Result:         result,
		CreatedAt:      s.now(),
	}

	if s.Store != nil {
		key, err := s.Store.Put(ctx, object.Object{
			UserID:      up.UserID,
			FileName:    up.FileName,
			ContentType: doc.MimeType,
			Body:        up.Data,
		})
		if err != nil {
			metrics.IncAnalysisFailed()
			return Analysis{}, fmt.Errorf("store document: %w", err)
		}
		analysis.DocumentKey = key
	}

	if err := s.Repo.Create(ctx, analysis); err != nil {
		metrics.IncAnalysisFailed()
		if analysis.DocumentKey != "" {
			if delErr := s.Store.Delete(ctx, analysis.DocumentKey); delErr != nil {
				telemetry.Warn("analysis.cleanup_failed", map[string]any{
					"analysis_id":  analysis.ID,
					"document_key": analysis.DocumentKey,
					"error":        delErr,
				})
			}
		}
		return Analysis{}, fmt.Errorf("save analysis: %w", err)
	}

	metrics.IncAnalysisCompleted(result.MatchLevel)
	telemetry.Info("analysis.completed", map[string]any{
		"analysis_id":   analysis.ID,
		"user_id":       up.UserID,
		"overall_score": result.OverallScore,
		"ml_score":      result.MLScore,
		"match_level":   result.MatchLevel,
		"ai_enabled":    result.AIAnalysis.Enabled,
		"duration_ms":   time.Since(start).Milliseconds(),
	})
	return analysis, nil
}

// Get returns an analysis owned by userID.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	return s.Repo.GetByID(ctx, userID, analysisID)
}

// List returns summaries for a user, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Summary, error) {
	items, err := s.Repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(items))
	for _, a := range items {
		out = append(out, a.Summarize())
	}
	return out, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
