package scoring

import (
	"strings"

	"resume-matcher/internal/embedding"
)

// neutralSimilarity is reported when there is no job description to compare
// against. It means insufficient signal, not a poor match.
const neutralSimilarity = 50

// Similarity is the cosine similarity of the two embeddings rescaled from
// [-1,1] to [0,100].
func Similarity(e embedding.Embedder, resumeText, jobDescription string) float64 {
	if strings.TrimSpace(jobDescription) == "" {
		return neutralSimilarity
	}
	cos := embedding.Cosine(e.Embed(resumeText), e.Embed(jobDescription))
	return clampPercent((cos + 1) / 2 * 100)
}
