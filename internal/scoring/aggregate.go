package scoring

import (
	"math"
	"strings"

	"resume-matcher/internal/classifier"
)

// Blend weights applied when an AI review is available.
const (
	mlWeight     = 0.6
	geminiWeight = 0.4
)

// Match levels.
const (
	LevelExcellent = "Excellent Match"
	LevelGood      = "Good Match"
	LevelFair      = "Fair Match"
	LevelPoor      = "Poor Match"
)

// buildFeatures assembles the classifier input in FeatureVersion order.
func buildFeatures(br ScoreBreakdown, years float64, overlap int, resumeText string) classifier.Vector {
	var v classifier.Vector
	v[classifier.FeatureKeywordMatch] = br.Get(KeywordMatch)
	v[classifier.FeatureSemanticSimilarity] = br.Get(SemanticSimilarity)
	v[classifier.FeatureSkillsMatch] = br.Get(SkillsMatch)
	v[classifier.FeatureExperienceMatch] = br.Get(ExperienceMatch)
	v[classifier.FeatureATSFormatting] = br.Get(ATSFormatting)
	v[classifier.FeatureSectionCompleteness] = br.Get(SectionCompleteness)
	v[classifier.FeatureYears] = years
	v[classifier.FeatureKeywordOverlap] = float64(overlap)
	v[classifier.FeatureResumeLengthWords] = float64(len(strings.Fields(resumeText)))
	return v
}

// Aggregate combines the ML score with an enabled AI review. A disabled
// review leaves the ML score unchanged.
func Aggregate(mlScore float64, ai AIAnalysis) float64 {
	if !ai.Enabled {
		return mlScore
	}
	return clampPercent(math.Round(mlWeight*mlScore + geminiWeight*ai.GeminiScore))
}

// MatchLevel labels an overall score.
func MatchLevel(score float64) string {
	switch {
	case score >= 80:
		return LevelExcellent
	case score >= 60:
		return LevelGood
	case score >= 40:
		return LevelFair
	default:
		return LevelPoor
	}
}

// ScoreColor maps an overall score to a display color using the match level
// breakpoints.
func ScoreColor(score float64) string {
	switch MatchLevel(score) {
	case LevelExcellent:
		return "green"
	case LevelGood:
		return "blue"
	case LevelFair:
		return "amber"
	default:
		return "red"
	}
}
