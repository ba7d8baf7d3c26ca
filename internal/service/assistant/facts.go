// internal/service/assistant/facts.go

package assistant

import (
	"fmt"
	"sort"
	"strings"

	"talkclass/internal/domain/assistant"
	"talkclass/internal/domain/feedback"
)

// slopeThreshold separates a real trend from noise
const slopeThreshold = 0.01

// TrendDirection classifies the slope of a satisfaction series
type TrendDirection string

const (
	TrendRising       TrendDirection = "rising"
	TrendFalling      TrendDirection = "falling"
	TrendStable       TrendDirection = "stable"
	TrendInsufficient TrendDirection = "insufficient"
)

// Trend is the least-squares reading of a series' averages
type Trend struct {
	Direction TrendDirection
	Slope     float64
	Delta     float64
	Points    int
}

// String renders the trend as a short Portuguese phrase
func (t Trend) String() string {
	switch t.Direction {
	case TrendRising:
		return fmt.Sprintf("tendência de alta (%+.2f no período)", t.Delta)
	case TrendFalling:
		return fmt.Sprintf("tendência de queda (%+.2f no período)", t.Delta)
	case TrendStable:
		return "estabilidade"
	}
	if t.Points < 2 {
		return "sem variação perceptível"
	}
	return "sem dados suficientes"
}

// DescribeTrend fits a line over the non-empty averages of the series
func DescribeTrend(series []assistant.SeriesPoint) Trend {
	t := Trend{Direction: TrendInsufficient, Points: len(series)}
	if len(series) < 2 {
		return t
	}

	values := make([]float64, 0, len(series))
	for _, p := range series {
		if p.Avg != nil {
			values = append(values, *p.Avg)
		}
	}
	if len(values) < 2 {
		return t
	}

	t.Slope = leastSquaresSlope(values)
	t.Delta = values[len(values)-1] - values[0]
	switch {
	case t.Slope > slopeThreshold:
		t.Direction = TrendRising
	case t.Slope < -slopeThreshold:
		t.Direction = TrendFalling
	default:
		t.Direction = TrendStable
	}
	return t
}

// leastSquaresSlope fits y over x = 0..n-1
func leastSquaresSlope(y []float64) float64 {
	n := float64(len(y))
	meanX := (n - 1) / 2
	meanY := 0.0
	for _, v := range y {
		meanY += v
	}
	meanY /= n

	var num, den float64
	for i, v := range y {
		dx := float64(i) - meanX
		num += dx * (v - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// VolumeSpike is the bucket holding the largest feedback volume
type VolumeSpike struct {
	Bucket string
	Total  int
}

// String renders the spike for insight lines
func (v VolumeSpike) String() string {
	return fmt.Sprintf("Maior volume em %s (%d feedbacks)", v.Bucket, v.Total)
}

// FindVolumeSpike returns the first bucket with the maximum total
func FindVolumeSpike(volume []assistant.SeriesPoint) (VolumeSpike, bool) {
	if len(volume) == 0 {
		return VolumeSpike{}, false
	}

	best := 0
	for i := range volume {
		if pointTotal(volume[i]) > pointTotal(volume[best]) {
			best = i
		}
	}
	return VolumeSpike{Bucket: volume[best].Bucket, Total: pointTotal(volume[best])}, true
}

func pointTotal(p assistant.SeriesPoint) int {
	if p.Total == nil {
		return 0
	}
	return *p.Total
}

// KeywordCount is a keyword with its total across all weeks and categories
type KeywordCount struct {
	Keyword string
	Total   int
}

// RankKeywords sums totals per keyword, ordering by total and then by
// first appearance
func RankKeywords(items []feedback.KeywordStat) []KeywordCount {
	index := make(map[string]int)
	var ranked []KeywordCount
	for _, it := range items {
		if i, ok := index[it.Keyword]; ok {
			ranked[i].Total += it.Total
			continue
		}
		index[it.Keyword] = len(ranked)
		ranked = append(ranked, KeywordCount{Keyword: it.Keyword, Total: it.Total})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Total > ranked[j].Total })
	return ranked
}

// TopKeyword returns the keyword with the highest summed total
func TopKeyword(items []feedback.KeywordStat) (KeywordCount, bool) {
	ranked := RankKeywords(items)
	if len(ranked) == 0 {
		return KeywordCount{}, false
	}
	return ranked[0], true
}

// SummarizeKeywords lists up to four keywords with their totals
func SummarizeKeywords(items []feedback.KeywordStat) (string, bool) {
	ranked := RankKeywords(items)
	if len(ranked) == 0 {
		return "", false
	}
	if len(ranked) > 4 {
		ranked = ranked[:4]
	}

	parts := make([]string, len(ranked))
	for i, k := range ranked {
		parts[i] = fmt.Sprintf("%s (%d)", k.Keyword, k.Total)
	}
	return strings.Join(parts, ", "), true
}

// TopTopic returns the topic with the highest negative share, then the
// highest raw negative count; the first one wins remaining ties
func TopTopic(topics []assistant.TopicPolarity) (assistant.TopicPolarity, bool) {
	if len(topics) == 0 {
		return assistant.TopicPolarity{}, false
	}

	best := topics[0]
	for _, t := range topics[1:] {
		if t.PNeg > best.PNeg || (t.PNeg == best.PNeg && t.Neg > best.Neg) {
			best = t
		}
	}
	return best, true
}

// WorstQuestions returns at most three caller-ranked questions
func WorstQuestions(questions []assistant.WorstQuestion) []assistant.WorstQuestion {
	if len(questions) > 3 {
		return questions[:3]
	}
	return questions
}

// dedupeKeepOrder drops repeated and empty lines
func dedupeKeepOrder(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

func capLines(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
