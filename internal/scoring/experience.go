package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	experienceFloor = 20
	maxParsedYears  = 40
)

var (
	yearsRangeRe  = regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d)?)\s*(?:-|–|to)\s*\d{1,2}(?:\.\d)?\s*\+?\s*(?:years?|yrs?)\b`)
	yearsSingleRe = regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d)?)\s*\+?\s*(?:years?|yrs?)\b`)
	yearsLabelRe  = regexp.MustCompile(`(?i)\bexperience\s*:\s*(\d{1,2}(?:\.\d)?)\b`)

	clauseSplitRe = regexp.MustCompile(`[;,!?\n]+|\.\s+|\.$`)
	requirementRe = regexp.MustCompile(`(?i)\b(experience|experienced|required|requirements?|requires?|minimum|min|at least|need|needs|must|proven)\b`)
	companyAgeRe  = regexp.MustCompile(`(?i)\b(ago|founded|established|since|history|old)\b`)
)

// ExperienceResult is the output of MatchExperience.
type ExperienceResult struct {
	Score    float64
	Years    float64
	Required float64
	// HasRequirement is false when the job description states no years.
	HasRequirement bool
}

// MatchExperience compares declared years with the requirement parsed from
// the job description. Declared years of 0 fall back to years detected in
// the resume.
func MatchExperience(declaredYears float64, resumeText, jobDescription string) ExperienceResult {
	years := declaredYears
	if years <= 0 {
		if detected, ok := ParseYears(resumeText); ok {
			years = detected
		}
	}
	res := ExperienceResult{Score: 100, Years: years}

	required, ok := ParseRequiredYears(jobDescription)
	if !ok || required <= 0 {
		return res
	}
	res.Required = required
	res.HasRequirement = true
	res.Score = ExperienceScore(years, required)
	return res
}

// ExperienceScore is 100 at or above the requirement and decays linearly
// below it, never under experienceFloor.
func ExperienceScore(years, required float64) float64 {
	if required <= 0 || years >= required {
		return 100
	}
	score := 100 * years / required
	if score < experienceFloor {
		return experienceFloor
	}
	return score
}

// ParseYears finds the largest years-of-experience figure in text. Ranges
// contribute their lower bound; figures above maxParsedYears are ignored.
func ParseYears(text string) (float64, bool) {
	best, found := 0.0, false
	consider := func(raw string) {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 || v > maxParsedYears {
			return
		}
		if !found || v > best {
			best, found = v, true
		}
	}

	rest := yearsRangeRe.ReplaceAllStringFunc(text, func(m string) string {
		if sub := yearsRangeRe.FindStringSubmatch(m); len(sub) > 1 {
			consider(sub[1])
		}
		return " "
	})
	for _, sub := range yearsSingleRe.FindAllStringSubmatch(rest, -1) {
		consider(sub[1])
	}
	for _, sub := range yearsLabelRe.FindAllStringSubmatch(rest, -1) {
		consider(sub[1])
	}
	return best, found
}

// ParseRequiredYears finds the years requirement in a job description.
// Clauses that talk about experience or requirements win over other figures;
// clauses about company age are ignored.
func ParseRequiredYears(jobDescription string) (float64, bool) {
	var preferred, other []string
	for _, clause := range clauseSplitRe.Split(jobDescription, -1) {
		switch {
		case companyAgeRe.MatchString(clause):
		case requirementRe.MatchString(clause):
			preferred = append(preferred, clause)
		default:
			other = append(other, clause)
		}
	}
	if v, ok := ParseYears(strings.Join(preferred, "\n")); ok {
		return v, true
	}
	return ParseYears(strings.Join(other, "\n"))
}
