// internal/service/keywords/candidates.go

package keywords

import (
	"sort"
	"strings"
	"unicode/utf8"

	"talkclass/internal/service/lexicon"
)

// CandidateKeywords ranks the non-stopword tokens of a text by frequency,
// breaking ties by first occurrence. It is the fallback keyword source when
// no lexicon term matches.
func CandidateKeywords(lex *lexicon.Lexicon, text string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(strings.TrimSpace(text)) < 3 {
		return nil
	}

	type candidate struct {
		term  string
		count int
		first int
	}

	byTerm := make(map[string]*candidate)
	var ordered []*candidate
	for i, tok := range lexicon.Tokenize(lexicon.Normalize(text)) {
		if lex.Stopwords.Contains(tok) || lex.Neutral.Contains(tok) {
			continue
		}
		c, ok := byTerm[tok]
		if !ok {
			c = &candidate{term: tok, first: i}
			byTerm[tok] = c
			ordered = append(ordered, c)
		}
		c.count++
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].first < ordered[j].first
	})

	out := make([]string, 0, limit)
	for _, c := range ordered {
		if len(out) == limit {
			break
		}
		out = append(out, c.term)
	}
	return out
}
