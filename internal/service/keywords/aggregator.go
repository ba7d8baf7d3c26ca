// internal/service/keywords/aggregator.go

// Package keywords extracts sentiment-weighted keywords from feedback
// comments and aggregates them per week and category.
package keywords

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"talkclass/internal/domain/feedback"
	"talkclass/internal/service/lexicon"
)

// minWeight is the absolute weight under which a match is treated as noise
const minWeight = 0.05

// Aggregator implements feedback.Aggregator on top of a lexicon
type Aggregator struct {
	lex              *lexicon.Lexicon
	positive         []feedback.Term
	negativeStrong   []feedback.Term
	negativeModerate []feedback.Term
}

// NewAggregator creates an aggregator reading the given lexicon
func NewAggregator(lex *lexicon.Lexicon) *Aggregator {
	return &Aggregator{
		lex:              lex,
		positive:         sortedTerms(lex.Positive),
		negativeStrong:   sortedTerms(lex.NegativeStrong),
		negativeModerate: sortedTerms(lex.NegativeModerate),
	}
}

// Lexicon returns the tables the aggregator matches against
func (a *Aggregator) Lexicon() *lexicon.Lexicon {
	return a.lex
}

// Extract returns the deduplicated keyword matches of a single comment.
// A positive term written as "falta de X" or "sem X" is reported as the
// negative keyword "falta de X" and its plain positive match is dropped.
func (a *Aggregator) Extract(text string) []feedback.Term {
	norm := lexicon.Normalize(text)
	if utf8.RuneCountInString(norm) < 3 {
		return nil
	}
	// every lexicon term has at least one three-letter run
	if len(lexicon.Tokenize(norm)) == 0 {
		return nil
	}

	var found []feedback.Term
	negated := make(map[string]bool)

	for _, p := range a.positive {
		if strings.Contains(norm, "falta de "+p.Term) || strings.Contains(norm, "sem "+p.Term) {
			found = append(found, feedback.Term{
				Term:   "falta de " + p.Term,
				Weight: -math.Max(minWeight, math.Abs(p.Weight)),
			})
			negated[p.Term] = true
		}
	}

	for _, p := range a.positive {
		if a.lex.Neutral.Contains(p.Term) || negated[p.Term] {
			continue
		}
		if strings.Contains(norm, p.Term) {
			found = append(found, feedback.Term{Term: p.Term, Weight: math.Max(minWeight, p.Weight)})
		}
	}

	for _, n := range a.negativeStrong {
		if strings.Contains(norm, n.Term) {
			found = append(found, n)
		}
	}

	for _, n := range a.negativeModerate {
		if strings.Contains(norm, n.Term) {
			found = append(found, n)
		}
	}

	return a.dedupe(found)
}

// dedupe keeps the most intense weight per keyword, preserving first-seen order
func (a *Aggregator) dedupe(found []feedback.Term) []feedback.Term {
	index := make(map[string]int, len(found))
	out := make([]feedback.Term, 0, len(found))
	for _, t := range found {
		if a.lex.Neutral.Contains(t.Term) {
			continue
		}
		if i, ok := index[t.Term]; ok {
			if math.Abs(t.Weight) > math.Abs(out[i].Weight) {
				out[i].Weight = t.Weight
			}
			continue
		}
		index[t.Term] = len(out)
		out = append(out, t)
	}

	kept := out[:0]
	for _, t := range out {
		if math.Abs(t.Weight) >= minWeight {
			kept = append(kept, t)
		}
	}
	return kept
}

// Aggregate scores every comment, accumulates matches per (week, category,
// keyword), drops cells below minFrequency and returns both buckets ranked
// and truncated to topN.
func (a *Aggregator) Aggregate(comments []feedback.Comment, topN, minFrequency int) feedback.KeywordResult {
	result := feedback.KeywordResult{
		Pos: []feedback.KeywordStat{},
		Neg: []feedback.KeywordStat{},
	}
	if minFrequency < 1 {
		minFrequency = 1
	}

	cells := make(map[feedback.AggregationKey]*feedback.AggregationCell)
	for _, c := range comments {
		for _, t := range a.Extract(c.Text) {
			key := feedback.NewAggregationKey(c, t.Term)
			cell, ok := cells[key]
			if !ok {
				cell = &feedback.AggregationCell{}
				cells[key] = cell
			}
			cell.Add(t.Weight)
		}
	}

	for key, cell := range cells {
		if cell.Count < minFrequency {
			continue
		}
		stat := feedback.KeywordStat{
			Week:       key.Week,
			CategoryID: key.Category(),
			Keyword:    key.Keyword,
			Total:      cell.Count,
			Score:      cell.Average(),
		}
		if stat.Bucket() == feedback.BucketPositive {
			result.Pos = append(result.Pos, stat)
		} else {
			result.Neg = append(result.Neg, stat)
		}
	}

	sort.Slice(result.Pos, func(i, j int) bool {
		x, y := result.Pos[i], result.Pos[j]
		if x.Total != y.Total {
			return x.Total > y.Total
		}
		if x.Score != y.Score {
			return x.Score > y.Score
		}
		return lessByName(x, y)
	})
	sort.Slice(result.Neg, func(i, j int) bool {
		x, y := result.Neg[i], result.Neg[j]
		if x.Total != y.Total {
			return x.Total > y.Total
		}
		if x.Score != y.Score {
			return x.Score < y.Score
		}
		return lessByName(x, y)
	})

	result.Pos = truncate(result.Pos, topN)
	result.Neg = truncate(result.Neg, topN)
	return result
}

// lessByName orders by keyword, then week and category so equal stats from
// different cells still sort the same way on every run
func lessByName(x, y feedback.KeywordStat) bool {
	if x.Keyword != y.Keyword {
		return x.Keyword < y.Keyword
	}
	if x.Week != y.Week {
		return x.Week < y.Week
	}
	switch {
	case x.CategoryID == nil:
		return y.CategoryID != nil
	case y.CategoryID == nil:
		return false
	default:
		return *x.CategoryID < *y.CategoryID
	}
}

func truncate(stats []feedback.KeywordStat, n int) []feedback.KeywordStat {
	if n <= 0 {
		return []feedback.KeywordStat{}
	}
	if len(stats) > n {
		return stats[:n]
	}
	return stats
}

func sortedTerms(src lexicon.WeightedTerms) []feedback.Term {
	terms := make([]feedback.Term, 0, len(src))
	for term, weight := range src {
		terms = append(terms, feedback.Term{Term: term, Weight: weight})
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Term < terms[j].Term })
	return terms
}
