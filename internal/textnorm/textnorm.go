// Package textnorm turns free text into normalized, stemmed terms shared by the
// keyword matcher and the embedder.
package textnorm

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Token is one content word: the folded surface form and its stem.
type Token struct {
	Surface string
	Stem    string
}

// Normalize applies NFKC normalization and Unicode case folding.
// A new Caser is built per call because Casers carry state.
func Normalize(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}

// Tokenize splits text into content tokens in document order. Stop-words,
// pure numbers and single runes are dropped.
func Tokenize(text string) []Token {
	return tokenize(text, 2)
}

// TokenizeSkill is Tokenize keeping single-letter words, so skill names such
// as "C" or "R" survive.
func TokenizeSkill(text string) []Token {
	return tokenize(text, 1)
}

func tokenize(text string, minRunes int) []Token {
	words := splitWords(Normalize(text))
	out := make([]Token, 0, len(words))
	for _, w := range words {
		if len([]rune(w)) < minRunes || isNumeric(w) || IsStopWord(w) {
			continue
		}
		out = append(out, Token{Surface: w, Stem: Stem(w)})
	}
	return out
}

// Stems returns the stems of Tokenize in order.
func Stems(text string) []string {
	toks := Tokenize(text)
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Stem
	}
	return out
}

// StemSet returns the distinct stems of text.
func StemSet(text string) map[string]struct{} {
	return stemSet(Tokenize(text))
}

// SkillStems returns the stems of TokenizeSkill in order.
func SkillStems(text string) []string {
	toks := TokenizeSkill(text)
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Stem
	}
	return out
}

// SkillStemSet returns the distinct stems of TokenizeSkill.
func SkillStemSet(text string) map[string]struct{} {
	return stemSet(TokenizeSkill(text))
}

func stemSet(toks []Token) map[string]struct{} {
	set := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		set[t.Stem] = struct{}{}
	}
	return set
}

// Stem reduces a folded word to its Porter2 stem. Technical tokens carrying
// symbols (c++, node.js, ci/cd) are kept as they are.
func Stem(word string) string {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return word
		}
	}
	return english.Stem(word, false)
}

// splitWords extracts word runs. '+' and '#' are kept after a letter, '.', '/'
// and '-' only between two word runes.
func splitWords(s string) []string {
	runes := []rune(s)
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			cur.WriteRune(r)
		case (r == '+' || r == '#') && cur.Len() > 0:
			cur.WriteRune(r)
		case (r == '.' || r == '/' || r == '-') && cur.Len() > 0 && i+1 < len(runes) && isWordRune(runes[i+1]):
			cur.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return words
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isNumeric(w string) bool {
	for _, r := range w {
		if !unicode.IsDigit(r) && r != '.' && r != '+' && r != '-' {
			return false
		}
	}
	return true
}
