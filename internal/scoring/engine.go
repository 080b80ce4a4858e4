package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"resume-matcher/internal/classifier"
	"resume-matcher/internal/embedding"
	"resume-matcher/internal/llm"
)

// DefaultReviewTimeout bounds the AI review when Options leaves it unset.
const DefaultReviewTimeout = 20 * time.Second

// Options configures an Engine.
type Options struct {
	Model         *classifier.Model
	Embedder      embedding.Embedder
	Reviewer      llm.Reviewer
	ReviewTimeout time.Duration
	Logger        *zap.Logger
}

// Engine runs analyses. It is immutable and safe for concurrent use.
type Engine struct {
	model         *classifier.Model
	embedder      embedding.Embedder
	reviewer      llm.Reviewer
	reviewTimeout time.Duration
	logger        *zap.Logger
}

// New validates opts and returns an Engine.
func New(opts Options) (*Engine, error) {
	if opts.Model == nil {
		return nil, errors.New("scoring: model is required")
	}
	e := &Engine{
		model:         opts.Model,
		embedder:      opts.Embedder,
		reviewer:      opts.Reviewer,
		reviewTimeout: opts.ReviewTimeout,
		logger:        opts.Logger,
	}
	if e.embedder == nil {
		e.embedder = embedding.NewHashingEmbedder(embedding.DefaultDimensions)
	}
	if e.reviewer == nil {
		e.reviewer = llm.Disabled{}
	}
	if e.reviewTimeout <= 0 {
		e.reviewTimeout = DefaultReviewTimeout
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e, nil
}

// AIConfigured reports whether a real reviewer is wired.
func (e *Engine) AIConfigured() bool {
	_, disabled := e.reviewer.(llm.Disabled)
	return !disabled
}

// Analyze scores one resume. Only an invalid request returns an error; a
// failed AI review degrades to a disabled analysis.
func (e *Engine) Analyze(ctx context.Context, req AnalysisRequest) (AnalysisResult, error) {
	req, err := validate(req)
	if err != nil {
		return AnalysisResult{}, err
	}

	var (
		kw       KeywordResult
		semantic float64
		exp      ExperienceResult
		format   FormatResult
		sections SectionResult
	)
	var g errgroup.Group
	g.Go(func() error {
		kw = MatchKeywords(req.ResumeText, req.JobDescription, req.Skills)
		return nil
	})
	g.Go(func() error {
		semantic = Similarity(e.embedder, req.ResumeText, req.JobDescription)
		return nil
	})
	g.Go(func() error {
		exp = MatchExperience(req.Years, req.ResumeText, req.JobDescription)
		return nil
	})
	g.Go(func() error {
		format = AnalyzeFormat(req.ResumeText, req.Signals)
		return nil
	})
	g.Go(func() error {
		sections = CheckSections(req.ResumeText)
		return nil
	})
	_ = g.Wait()

	var br ScoreBreakdown
	br.set(KeywordMatch, kw.KeywordScore)
	br.set(SemanticSimilarity, semantic)
	br.set(SkillsMatch, kw.SkillsScore)
	br.set(ExperienceMatch, exp.Score)
	br.set(ATSFormatting, format.Score)
	br.set(SectionCompleteness, sections.Score)

	features := buildFeatures(br, exp.Years, kw.Overlap, req.ResumeText)
	mlScore := round2(e.model.Predict(features))

	ai := e.review(ctx, llm.ReviewInput{
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
		Breakdown:      br.Scores(),
		MLScore:        mlScore,
	})

	overall := Aggregate(mlScore, ai)
	return AnalysisResult{
		OverallScore:    overall,
		MatchLevel:      MatchLevel(overall),
		ScoreBreakdown:  br,
		MLScore:         mlScore,
		AIAnalysis:      ai,
		Recommendations: GenerateRecommendations(br, format, sections, ai),
		MissingKeywords: dedupeFold(kw.Missing),
	}, nil
}

type reviewOutcome struct {
	review llm.Review
	err    error
}

// review calls the reviewer once under the review timeout. Errors, panics,
// timeouts and unusable scores all yield a disabled analysis.
func (e *Engine) review(ctx context.Context, in llm.ReviewInput) AIAnalysis {
	if !e.AIConfigured() {
		return DisabledAnalysis()
	}
	ctx, cancel := context.WithTimeout(ctx, e.reviewTimeout)
	defer cancel()

	done := make(chan reviewOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- reviewOutcome{err: fmt.Errorf("reviewer panic: %v", r)}
			}
		}()
		review, err := e.reviewer.Review(ctx, in)
		done <- reviewOutcome{review: review, err: err}
	}()

	var out reviewOutcome
	select {
	case out = <-done:
	case <-ctx.Done():
		out = reviewOutcome{err: ctx.Err()}
	}
	if out.err == nil && !validReviewScore(out.review.Score) {
		out.err = fmt.Errorf("review score %v out of range", out.review.Score)
	}
	if out.err != nil {
		svcErr := &ExternalServiceError{Service: "llm", Err: out.err}
		e.logger.Warn("analysis.ai_degraded", zap.Error(svcErr))
		return DisabledAnalysis()
	}
	return EnabledAnalysis(out.review)
}

// dedupeFold drops case-insensitive duplicates, keeping the first.
func dedupeFold(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := strings.ToLower(strings.Join(strings.Fields(item), " "))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func validReviewScore(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 && v <= 100
}

func validate(req AnalysisRequest) (AnalysisRequest, error) {
	if strings.TrimSpace(req.ResumeText) == "" {
		return req, &InputError{Reason: "resume text is empty"}
	}
	if math.IsNaN(req.Years) || math.IsInf(req.Years, 0) || req.Years < 0 {
		return req, &InputError{Reason: "years of experience must be a non-negative number"}
	}
	skills := make([]string, 0, len(req.Skills))
	for _, s := range req.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	req.Skills = skills
	return req, nil
}
