package scoring

import (
	"strings"
	"unicode"
)

// Section names a canonical resume section.
type Section string

const (
	SectionContact    Section = "contact"
	SectionSummary    Section = "summary"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
)

// Sections lists the canonical sections in report order.
var Sections = []Section{SectionContact, SectionSummary, SectionExperience, SectionEducation, SectionSkills}

var sectionHeadings = map[Section][]string{
	SectionContact:    {"contact", "personal information", "personal details"},
	SectionSummary:    {"summary", "objective", "profile", "about me"},
	SectionExperience: {"experience", "employment", "work history", "career history"},
	SectionEducation:  {"education", "academic", "qualifications"},
	SectionSkills:     {"skills", "competencies", "technologies", "tech stack"},
}

const (
	maxHeadingWords   = 5
	contactScanLines  = 10
	sectionScoreTotal = 100
)

// SectionResult is the output of CheckSections.
type SectionResult struct {
	Score   float64
	Found   []Section
	Missing []Section
}

// CheckSections detects which canonical sections have a heading.
func CheckSections(text string) SectionResult {
	lines := nonEmptyLines(text)
	found := make(map[Section]bool, len(Sections))
	for _, l := range lines {
		heading, ok := headingText(l)
		if !ok {
			continue
		}
		for _, s := range Sections {
			if found[s] {
				continue
			}
			for _, phrase := range sectionHeadings[s] {
				if strings.Contains(heading, phrase) {
					found[s] = true
					break
				}
			}
		}
	}
	if !found[SectionContact] {
		head := lines
		if len(head) > contactScanLines {
			head = head[:contactScanLines]
		}
		found[SectionContact] = hasContact(strings.Join(head, "\n"))
	}

	var res SectionResult
	for _, s := range Sections {
		if found[s] {
			res.Found = append(res.Found, s)
		} else {
			res.Missing = append(res.Missing, s)
		}
	}
	res.Score = float64(sectionScoreTotal*len(res.Found)) / float64(len(Sections))
	return res
}

// headingText normalizes a line and reports whether it is shaped like a
// section heading: a few words, no digits and no sentence punctuation.
func headingText(line string) (string, bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return r == '#' || r == '-' || r == '*' || r == '•' || unicode.IsDigit(r) || unicode.IsSpace(r) || r == ')' || r == '.'
	})
	s = strings.TrimRight(strings.TrimSpace(s), ":")
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || strings.ContainsAny(s, ".,") {
		return "", false
	}
	if strings.IndexFunc(s, unicode.IsDigit) >= 0 {
		return "", false
	}
	if len(strings.Fields(s)) > maxHeadingWords {
		return "", false
	}
	return strings.Join(strings.Fields(s), " "), true
}
