package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"resume-matcher/internal/bootstrap"
	"resume-matcher/internal/extract"
	"resume-matcher/internal/scoring"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/telemetry"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume file against a job description",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runScore(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("resume", "r", "", "path to the resume (pdf, docx, txt or md)")
	scoreCmd.Flags().String("jd", "", "path to a job description file, or - for stdin")
	scoreCmd.Flags().String("jd-text", "", "job description text")
	scoreCmd.Flags().StringSlice("skills", nil, "required skills, comma separated")
	scoreCmd.Flags().Float64("years", 0, "declared years of experience")
	scoreCmd.Flags().Bool("ai", false, "ask Gemini for a qualitative review")
	scoreCmd.Flags().Duration("ai-timeout", scoring.DefaultReviewTimeout, "timeout for the AI review")
	scoreCmd.Flags().String("model", "", "path to a classifier model file (defaults to the embedded model)")
	scoreCmd.Flags().BoolP("json", "j", false, "print the full result as JSON")

	for _, name := range []string{"resume", "jd", "jd-text", "skills", "years", "ai", "ai-timeout", "model", "json"} {
		viper.BindPFlag(name, scoreCmd.Flags().Lookup(name))
	}
}

func runScore(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	level := "warn"
	if viper.GetBool("debug") {
		level = "debug"
	}
	if err := telemetry.Init("cli", level); err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer telemetry.Sync()

	resumePath := strings.TrimSpace(viper.GetString("resume"))
	if resumePath == "" {
		return errors.New("--resume is required")
	}
	data, err := os.ReadFile(resumePath)
	if err != nil {
		return fmt.Errorf("reading resume: %w", err)
	}

	jd, err := jobDescription(viper.GetString("jd"), viper.GetString("jd-text"))
	if err != nil {
		return err
	}

	doc, err := extract.New().Extract(ctx, data, "", filepath.Base(resumePath))
	if err != nil {
		return err
	}

	engine, err := bootstrap.BuildEngine(ctx, config.Config{
		ModelPath:    viper.GetString("model"),
		GeminiAPIKey: viper.GetString("gemini-api-key"),
		GeminiModel:  viper.GetString("gemini-model"),
		LLMEnabled:   viper.GetBool("ai"),
		LLMTimeout:   viper.GetDuration("ai-timeout"),
	})
	if err != nil {
		return err
	}
	if viper.GetBool("ai") && !engine.AIConfigured() {
		fmt.Fprintln(os.Stderr, "AI review requested but GEMINI_API_KEY is not set; continuing without it")
	}

	start := time.Now()
	result, err := engine.Analyze(ctx, scoring.AnalysisRequest{
		ResumeText:     doc.Text,
		JobDescription: jd,
		Skills:         viper.GetStringSlice("skills"),
		Years:          viper.GetFloat64("years"),
		Signals:        doc.Signals,
	})
	if err != nil {
		return err
	}
	telemetry.Info("cli.scored", map[string]any{
		"file":        resumePath,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if viper.GetBool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printResult(out, result)
}

func jobDescription(path, text string) (string, error) {
	if strings.TrimSpace(text) != "" {
		return text, nil
	}
	switch strings.TrimSpace(path) {
	case "":
		return "", nil
	case "-":
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading job description from stdin: %w", err)
		}
		return string(raw), nil
	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading job description: %w", err)
		}
		return string(raw), nil
	}
}

func printResult(out io.Writer, r scoring.AnalysisResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Overall score: %.2f (%s)\n", r.OverallScore, r.MatchLevel)
	fmt.Fprintf(&b, "ML score:      %.2f\n", r.MLScore)
	if r.AIAnalysis.Enabled {
		fmt.Fprintf(&b, "AI score:      %.2f\n", r.AIAnalysis.GeminiScore)
	}
	b.WriteString("\nBreakdown:\n")
	for _, c := range scoring.Categories {
		fmt.Fprintf(&b, "  %-22s %6.2f\n", c, r.ScoreBreakdown.Get(c))
	}
	if len(r.MissingKeywords) > 0 {
		fmt.Fprintf(&b, "\nMissing keywords: %s\n", strings.Join(r.MissingKeywords, ", "))
	}
	b.WriteString("\nRecommendations:\n")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, rec)
	}
	_, err := io.WriteString(out, b.String())
	return err
}
