package scoring

import (
	"regexp"
	"strings"
	"unicode"

	"resume-matcher/internal/extract"
)

// FormatIssue is one ATS anti-pattern found in a resume.
type FormatIssue string

const (
	IssueMultiColumn    FormatIssue = "multi_column"
	IssueImages         FormatIssue = "images"
	IssueTables         FormatIssue = "tables"
	IssueUnusualBullets FormatIssue = "unusual_bullets"
	IssueMissingContact FormatIssue = "missing_contact"
	IssueSpecialChars   FormatIssue = "special_characters"
	IssueManyFonts      FormatIssue = "many_fonts"
)

var formatDeductions = map[FormatIssue]float64{
	IssueMultiColumn:    20,
	IssueImages:         15,
	IssueTables:         10,
	IssueUnusualBullets: 10,
	IssueMissingContact: 20,
	IssueSpecialChars:   10,
	IssueManyFonts:      5,
}

const (
	unusualBullets      = "➢✓✔◆■★►❖➤⬥●"
	maxSpecialChars     = 20
	maxFonts            = 3
	minHeuristicLines   = 3
	columnLineThreshold = 0.3
)

var (
	emailRe  = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe  = regexp.MustCompile(`(?:\+?\d{1,3}[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)
	columnRe = regexp.MustCompile(`\S\s{4,}\S`)
)

// FormatResult is the output of AnalyzeFormat.
type FormatResult struct {
	Score  float64
	Issues []FormatIssue
}

// Has reports whether issue was detected.
func (r FormatResult) Has(issue FormatIssue) bool {
	for _, i := range r.Issues {
		if i == issue {
			return true
		}
	}
	return false
}

// AnalyzeFormat scores ATS friendliness from the text and extraction signals.
func AnalyzeFormat(text string, sig extract.StructuralSignals) FormatResult {
	lines := nonEmptyLines(text)
	var issues []FormatIssue

	if sig.MultiColumn || looksMultiColumn(lines) {
		issues = append(issues, IssueMultiColumn)
	}
	if sig.Images > 0 {
		issues = append(issues, IssueImages)
	}
	if sig.Tables > 0 || looksTabular(lines) {
		issues = append(issues, IssueTables)
	}
	if strings.ContainsAny(text, unusualBullets) {
		issues = append(issues, IssueUnusualBullets)
	}
	if !hasContact(text) {
		issues = append(issues, IssueMissingContact)
	}
	if countSpecialChars(text) > maxSpecialChars {
		issues = append(issues, IssueSpecialChars)
	}
	if len(sig.Fonts) > maxFonts {
		issues = append(issues, IssueManyFonts)
	}

	score := 100.0
	for _, i := range issues {
		score -= formatDeductions[i]
	}
	if score < 0 {
		score = 0
	}
	return FormatResult{Score: score, Issues: issues}
}

func hasContact(text string) bool {
	return emailRe.MatchString(text) || phoneRe.MatchString(text)
}

// looksMultiColumn flags text where a meaningful share of lines has two
// blocks separated by a wide gap.
func looksMultiColumn(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	hits := 0
	for _, l := range lines {
		if columnRe.MatchString(strings.TrimSpace(l)) {
			hits++
		}
	}
	return hits >= minHeuristicLines && float64(hits) >= columnLineThreshold*float64(len(lines))
}

func looksTabular(lines []string) bool {
	rows := 0
	for _, l := range lines {
		if strings.Count(l, "|")+strings.Count(l, "\t") >= 2 {
			rows++
		}
	}
	return rows >= minHeuristicLines
}

func countSpecialChars(text string) int {
	n := 0
	for _, r := range text {
		if r <= unicode.MaxASCII || unicode.IsLetter(r) || unicode.IsSpace(r) {
			continue
		}
		if strings.ContainsRune(unusualBullets, r) || r == '•' {
			continue
		}
		n++
	}
	return n
}

func nonEmptyLines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			out = append(out, strings.TrimRight(l, "\r"))
		}
	}
	return out
}
