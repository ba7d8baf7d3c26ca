// internal/service/lexicon/types.go

package lexicon

// TermSet is a set of normalized terms
type TermSet map[string]struct{}

// WeightedTerms maps a term to its polarity weight in [-1, 1]
type WeightedTerms map[string]float64

// Lexicon groups the static word tables used by keyword extraction,
// sentiment scoring and question classification. A Lexicon is read-only
// once built and can be shared across goroutines.
type Lexicon struct {
	Stopwords        TermSet
	Positive         WeightedTerms
	NegativeStrong   WeightedTerms
	NegativeModerate WeightedTerms
	Neutral          TermSet
	NegationMarkers  TermSet
	NegativeHints    TermSet
	ForceNegative    TermSet
	ExcludePositive  TermSet
	SentimentWords   WeightedTerms
}

// Contains reports whether term is in the set
func (s TermSet) Contains(term string) bool {
	_, ok := s[term]
	return ok
}

func newTermSet(terms ...string) TermSet {
	set := make(TermSet, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}

func cloneTermSet(src TermSet) TermSet {
	dst := make(TermSet, len(src))
	for k := range src {
		dst[k] = struct{}{}
	}
	return dst
}

func cloneWeightedTerms(src WeightedTerms) WeightedTerms {
	dst := make(WeightedTerms, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
