// internal/service/lexicon/lexicon.go

// Package lexicon holds the Portuguese word tables and the text folding
// helpers shared by keyword aggregation and question classification.
package lexicon

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// vaderAlpha approximates the max expected value when normalizing a raw score
const vaderAlpha = 15.0

// negationScalar dampens and flips a word preceded by a negation marker
const negationScalar = -0.74

var tokenPattern = regexp.MustCompile(`(?i)[a-zà-ú]{3,}`)

// Default returns a fresh copy of the built-in tables
func Default() *Lexicon {
	return &Lexicon{
		Stopwords:        cloneTermSet(defaultStopwords),
		Positive:         cloneWeightedTerms(defaultPositive),
		NegativeStrong:   cloneWeightedTerms(defaultNegativeStrong),
		NegativeModerate: cloneWeightedTerms(defaultNegativeModerate),
		Neutral:          cloneTermSet(defaultNeutral),
		NegationMarkers:  cloneTermSet(defaultNegationMarkers),
		NegativeHints:    cloneTermSet(defaultNegativeHints),
		ForceNegative:    cloneTermSet(defaultForceNegative),
		ExcludePositive:  cloneTermSet(defaultExcludePositive),
		SentimentWords:   cloneWeightedTerms(defaultSentimentWords),
	}
}

// Normalize lower-cases, trims and strips diacritics so that "Atenção"
// and "atencao" compare equal.
func Normalize(text string) string {
	folded := strings.ToLower(strings.TrimSpace(text))
	if folded == "" {
		return ""
	}

	// transformers keep state, so build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, folded)
	if err != nil {
		return folded
	}
	return out
}

// Tokenize returns the alphabetic runs of at least three letters
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// IsNegativeHint reports whether the text mentions any negative hint word
func (l *Lexicon) IsNegativeHint(text string) bool {
	t := Normalize(text)
	for hint := range l.NegativeHints {
		if strings.Contains(t, hint) {
			return true
		}
	}
	return false
}

// ForcesNegative reports whether any token always reads as a complaint,
// such as "barulho" or "precisa melhorar"
func (l *Lexicon) ForcesNegative(text string) bool {
	for _, tok := range Tokenize(Normalize(text)) {
		if l.ForceNegative.Contains(tok) {
			return true
		}
	}
	return false
}

// Sentiment returns a compound polarity score in [-1, 1]. Single-word terms
// from every weighted table contribute their weight; a term directly after a
// negation marker is flipped and dampened.
func (l *Lexicon) Sentiment(text string) float64 {
	tokens := Tokenize(Normalize(text))
	if len(tokens) == 0 {
		return 0
	}

	sum := 0.0
	for i, tok := range tokens {
		weight, ok := l.tokenWeight(tok)
		if !ok {
			continue
		}
		if l.negatedAt(tokens, i) {
			weight *= negationScalar
		}
		sum += weight
	}

	if sum == 0 {
		return 0
	}
	return sum / math.Sqrt(sum*sum+vaderAlpha)
}

func (l *Lexicon) tokenWeight(tok string) (float64, bool) {
	if w, ok := l.NegativeStrong[tok]; ok {
		return w, true
	}
	if w, ok := l.NegativeModerate[tok]; ok {
		return w, true
	}
	if w, ok := l.Positive[tok]; ok {
		return w, true
	}
	if w, ok := l.SentimentWords[tok]; ok {
		return w, true
	}
	return 0, false
}

// negatedAt looks one and two tokens back so "falta de respeito" counts
func (l *Lexicon) negatedAt(tokens []string, i int) bool {
	for back := 1; back <= 2 && i-back >= 0; back++ {
		if l.NegationMarkers.Contains(tokens[i-back]) {
			return true
		}
	}
	return false
}
