package llm

import (
	"fmt"
	"strings"
)

const (
	maxPromptResumeRunes = 3000
	maxPromptJDRunes     = 2000
)

var categoryLabels = map[string]string{
	"keyword_match":        "Keyword Match",
	"semantic_similarity":  "Semantic Similarity",
	"skills_match":         "Skills Match",
	"experience_match":     "Experience Match",
	"ats_formatting":       "ATS Formatting",
	"section_completeness": "Section Completeness",
}

const responseSchema = `{
  "gemini_score": <your score 0-100>,
  "suggestions": ["<specific actionable suggestion>", ...],
  "detailed_feedback": "<2-3 paragraph detailed analysis>",
  "strengths": ["<key strength>", ...],
  "weaknesses": ["<key weakness>", ...],
  "improvement_areas": [
    {"area": "<area name>", "priority": "<high|medium|low>", "suggestion": "<specific improvement>"}
  ]
}`

// BuildPrompt renders the review prompt. Resume and job description are
// truncated to bound the request size.
func BuildPrompt(in ReviewInput) string {
	var b strings.Builder
	b.WriteString("You are an expert resume reviewer and career advisor. Analyze this resume against the job description and provide detailed feedback.\n\n")

	fmt.Fprintf(&b, "RESUME (first %d chars):\n%s\n\n", maxPromptResumeRunes, truncateRunes(in.ResumeText, maxPromptResumeRunes))
	jd := strings.TrimSpace(in.JobDescription)
	if jd == "" {
		b.WriteString("JOB DESCRIPTION: not provided. Review the resume on general quality.\n\n")
	} else {
		fmt.Fprintf(&b, "JOB DESCRIPTION (first %d chars):\n%s\n\n", maxPromptJDRunes, truncateRunes(jd, maxPromptJDRunes))
	}

	fmt.Fprintf(&b, "MACHINE LEARNING SCORE: %.1f/100\nScore Breakdown:\n", in.MLScore)
	for _, c := range in.Breakdown {
		label := categoryLabels[c.Name]
		if label == "" {
			label = c.Name
		}
		fmt.Fprintf(&b, "- %s: %.1f%%\n", label, c.Value)
	}

	b.WriteString("\nRespond with JSON in exactly this format:\n")
	b.WriteString(responseSchema)
	b.WriteString(`

Focus on:
1. How well the resume matches the job requirements
2. Specific improvements needed (be actionable)
3. Missing keywords or skills
4. Formatting and ATS compatibility issues
5. Experience level alignment
6. Overall presentation quality

Return ONLY valid JSON, no additional text.`)
	return b.String()
}

func truncateRunes(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
