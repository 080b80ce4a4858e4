package scoring

import (
	"sort"
	"strings"

	"resume-matcher/internal/textnorm"
)

// skillTaxonomy lists common skills recognized in job descriptions even when
// no explicit skill list is given.
var skillTaxonomy = map[string][]string{
	"programming": {"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "php", "swift", "kotlin", "go", "golang", "rust", "scala"},
	"web":         {"react", "angular", "vue", "html", "css", "node.js", "django", "flask", "fastapi", "express", "next.js"},
	"data":        {"sql", "nosql", "mongodb", "postgresql", "mysql", "redis", "kafka", "spark", "pandas", "numpy", "scikit-learn"},
	"ml":          {"machine learning", "deep learning", "tensorflow", "pytorch", "keras", "nlp", "computer vision"},
	"cloud":       {"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins", "ci/cd"},
	"tools":       {"git", "jira", "agile", "scrum", "rest api", "graphql", "grpc", "microservices"},
	"soft":        {"leadership", "communication", "teamwork", "problem solving", "analytical", "project management"},
}

// taxonomySkills is skillTaxonomy flattened in a fixed order.
var taxonomySkills = func() []string {
	groups := make([]string, 0, len(skillTaxonomy))
	for g := range skillTaxonomy {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	var out []string
	for _, g := range groups {
		out = append(out, skillTaxonomy[g]...)
	}
	return out
}()

// KeywordResult is the output of MatchKeywords.
type KeywordResult struct {
	KeywordScore float64
	SkillsScore  float64
	// Overlap is the number of required terms found in the resume.
	Overlap int
	// Missing lists absent required terms and skills, most frequent in the
	// job description first.
	Missing []string
}

type requiredTerm struct {
	display string
	key     string
	freq    int
	order   int
}

type skillPhrase struct {
	display string
	stems   []string
}

func (s skillPhrase) key() string {
	return strings.Join(s.stems, " ")
}

// MatchKeywords compares resume terms with the job description terms and the
// explicit skills.
func MatchKeywords(resumeText, jobDescription string, skills []string) KeywordResult {
	// Single-letter words are kept on the resume side so explicit skills
	// like "C" can match; job description terms still need two runes.
	resumeTerms := textnorm.SkillStemSet(resumeText)

	jdTokens := textnorm.Tokenize(jobDescription)
	jdFreq := make(map[string]int, len(jdTokens))
	var terms []requiredTerm
	termIdx := make(map[string]int)
	for _, tok := range jdTokens {
		jdFreq[tok.Stem]++
		if _, ok := termIdx[tok.Stem]; ok {
			continue
		}
		termIdx[tok.Stem] = len(terms)
		terms = append(terms, requiredTerm{display: tok.Surface, key: tok.Stem, order: len(terms)})
	}

	explicit := skillPhrases(skills)
	for _, sk := range explicit {
		for i, stem := range sk.stems {
			if _, ok := termIdx[stem]; ok {
				continue
			}
			termIdx[stem] = len(terms)
			terms = append(terms, requiredTerm{display: skillSurface(sk.display, i), key: stem, order: len(terms)})
		}
	}

	res := KeywordResult{KeywordScore: 100, SkillsScore: 100}
	if len(terms) > 0 {
		for _, t := range terms {
			if _, ok := resumeTerms[t.key]; ok {
				res.Overlap++
			}
		}
		res.KeywordScore = 100 * float64(res.Overlap) / float64(len(terms))
	}

	required := requiredSkills(explicit, jdFreq)
	var missing []requiredTerm
	seen := make(map[string]bool)
	for _, t := range terms {
		if _, ok := resumeTerms[t.key]; ok {
			continue
		}
		t.freq = jdFreq[t.key]
		missing = append(missing, t)
		seen[t.key] = true
	}

	if len(required) > 0 {
		matched := 0
		for i, sk := range required {
			if containsAll(resumeTerms, sk.stems) {
				matched++
				continue
			}
			if len(sk.stems) < 2 || seen[sk.key()] {
				continue
			}
			seen[sk.key()] = true
			missing = append(missing, requiredTerm{display: sk.display, key: sk.key(), freq: phraseFreq(jdFreq, sk.stems), order: len(terms) + i})
		}
		res.SkillsScore = 100 * float64(matched) / float64(len(required))
	}

	sort.SliceStable(missing, func(i, j int) bool {
		if missing[i].freq != missing[j].freq {
			return missing[i].freq > missing[j].freq
		}
		return missing[i].order < missing[j].order
	})
	res.Missing = make([]string, 0, len(missing))
	for _, m := range missing {
		res.Missing = append(res.Missing, m.display)
	}
	return res
}

// requiredSkills returns the explicit skills followed by taxonomy skills that
// appear in the job description, deduplicated by stem key.
func requiredSkills(explicit []skillPhrase, jdFreq map[string]int) []skillPhrase {
	out := make([]skillPhrase, 0, len(explicit))
	seen := make(map[string]bool)
	for _, sk := range explicit {
		if !seen[sk.key()] {
			seen[sk.key()] = true
			out = append(out, sk)
		}
	}
	if len(jdFreq) == 0 {
		return out
	}
	for _, sk := range skillPhrases(taxonomySkills) {
		if seen[sk.key()] || phraseFreq(jdFreq, sk.stems) == 0 {
			continue
		}
		seen[sk.key()] = true
		out = append(out, sk)
	}
	return out
}

func skillPhrases(skills []string) []skillPhrase {
	out := make([]skillPhrase, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		stems := textnorm.SkillStems(s)
		if len(stems) == 0 {
			continue
		}
		out = append(out, skillPhrase{display: textnorm.Normalize(s), stems: stems})
	}
	return out
}

// skillSurface returns the i-th content word of a skill for display.
func skillSurface(display string, i int) string {
	toks := textnorm.TokenizeSkill(display)
	if i < len(toks) {
		return toks[i].Surface
	}
	return display
}

// phraseFreq is the smallest job description frequency among the stems, so a
// phrase counts only when all its words occur.
func phraseFreq(jdFreq map[string]int, stems []string) int {
	lowest := -1
	for _, s := range stems {
		f := jdFreq[s]
		if lowest == -1 || f < lowest {
			lowest = f
		}
	}
	if lowest < 0 {
		return 0
	}
	return lowest
}

func containsAll(set map[string]struct{}, stems []string) bool {
	for _, s := range stems {
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return len(stems) > 0
}
