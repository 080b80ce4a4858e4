package scoring

import (
	"strings"
	"unicode"

	"resume-matcher/internal/llm"
)

// lowScoreThreshold is the category score under which a rule-based
// recommendation is emitted.
const lowScoreThreshold = 60

const wellMatchedMessage = "Great job! Your resume is well-matched to this position. Consider customizing your summary for even better results."

var categoryTemplates = map[Category]string{
	KeywordMatch:        "Add more relevant keywords from the job description. Focus on technical skills and job requirements mentioned.",
	SemanticSimilarity:  "Align your summary and experience descriptions more closely with the job description's language and responsibilities.",
	SkillsMatch:         "Highlight more skills that match the job requirements. Add a dedicated 'Skills' section if missing.",
	ExperienceMatch:     "Emphasize your years of experience more clearly. Include dates in your work history.",
	ATSFormatting:       "Improve ATS compatibility: Use standard section headers, include contact information, and use bullet points.",
	SectionCompleteness: "Add missing sections: Consider including Experience, Education, Skills, and a Summary/Objective.",
}

var issueTemplates = map[FormatIssue]string{
	IssueMultiColumn:    "Use a single-column layout; multi-column text is often read out of order by ATS parsers.",
	IssueImages:         "Replace images or graphics containing text with plain text.",
	IssueTables:         "Move content out of tables into plain text lines.",
	IssueUnusualBullets: "Use standard round or dash bullets instead of decorative symbols.",
	IssueMissingContact: "Add a plain-text contact block with your email and phone number.",
	IssueSpecialChars:   "Remove decorative special characters that ATS parsers may not read.",
	IssueManyFonts:      "Limit the document to one or two fonts.",
}

var formatIssueOrder = []FormatIssue{
	IssueMultiColumn,
	IssueImages,
	IssueTables,
	IssueUnusualBullets,
	IssueMissingContact,
	IssueSpecialChars,
	IssueManyFonts,
}

// GenerateRecommendations merges rule-based advice with the AI review. The
// result is deduplicated and never empty.
func GenerateRecommendations(br ScoreBreakdown, format FormatResult, sections SectionResult, ai AIAnalysis) []string {
	var high, medium, low []llm.ImprovementArea
	if ai.Enabled {
		for _, a := range ai.ImprovementAreas {
			switch llm.NormalizePriority(a.Priority) {
			case llm.PriorityHigh:
				high = append(high, a)
			case llm.PriorityMedium:
				medium = append(medium, a)
			default:
				low = append(low, a)
			}
		}
	}

	var candidates []string
	candidates = append(candidates, areaLines(high)...)
	candidates = append(candidates, ruleBased(br, format, sections)...)
	candidates = append(candidates, areaLines(medium)...)
	candidates = append(candidates, areaLines(low)...)
	if ai.Enabled {
		candidates = append(candidates, ai.suggestions...)
		for _, w := range ai.Weaknesses {
			if w = strings.TrimSpace(w); w != "" {
				candidates = append(candidates, "Address this gap: "+w)
			}
		}
	}

	out := dedupeRecommendations(candidates)
	if len(out) == 0 {
		return []string{wellMatchedMessage}
	}
	return out
}

func ruleBased(br ScoreBreakdown, format FormatResult, sections SectionResult) []string {
	var out []string
	for _, c := range Categories {
		switch {
		case c == SectionCompleteness && len(sections.Missing) > 0:
			// The named sections replace the generic template.
			out = append(out, missingSectionsLine(sections.Missing))
		case br.Get(c) < lowScoreThreshold:
			out = append(out, categoryTemplates[c])
		}
		if c == ATSFormatting {
			for _, issue := range formatIssueOrder {
				if format.Has(issue) {
					out = append(out, issueTemplates[issue])
				}
			}
		}
	}
	return out
}

func missingSectionsLine(missing []Section) string {
	names := make([]string, len(missing))
	for i, s := range missing {
		names[i] = string(s)
	}
	return "Add these missing sections: " + strings.Join(names, ", ") + "."
}

func areaLines(areas []llm.ImprovementArea) []string {
	out := make([]string, 0, len(areas))
	for _, a := range areas {
		area := strings.TrimSpace(a.Area)
		suggestion := strings.TrimSpace(a.Suggestion)
		switch {
		case area != "" && suggestion != "":
			out = append(out, area+": "+suggestion)
		case suggestion != "":
			out = append(out, suggestion)
		case area != "":
			out = append(out, "Improve "+area)
		}
	}
	return out
}

func dedupeRecommendations(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := recommendationKey(item)
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

func recommendationKey(s string) string {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	return strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
}
