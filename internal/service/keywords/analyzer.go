// internal/service/keywords/analyzer.go

package keywords

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"talkclass/internal/domain/feedback"
	"talkclass/internal/service/lexicon"
)

const (
	// maxKeywordsPerComment caps the keywords reported per analysis
	maxKeywordsPerComment = 4
	// maxSummaryWords caps the local one-line summary
	maxSummaryWords = 12
	// neutralBand is the compound score band labelled neutral
	neutralBand = 0.05
)

// Analyzer implements feedback.Analyzer. It prefers a remote batch model
// when one is configured and falls back to the lexicon otherwise.
type Analyzer struct {
	aggregator *Aggregator
	remote     feedback.BatchGenerator
	logger     *slog.Logger
}

// NewAnalyzer creates an analyzer. remote may be nil.
func NewAnalyzer(aggregator *Aggregator, remote feedback.BatchGenerator, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		aggregator: aggregator,
		remote:     remote,
		logger:     logger,
	}
}

// Analyze returns one analysis per comment, in input order
func (a *Analyzer) Analyze(ctx context.Context, comments []feedback.Comment) []feedback.Analysis {
	out := make([]feedback.Analysis, 0, len(comments))
	if len(comments) == 0 {
		return out
	}

	// Assign IDs up front so remote results can be matched back
	prepared := make([]feedback.Comment, len(comments))
	for i, c := range comments {
		if strings.TrimSpace(c.ID) == "" {
			c.ID = uuid.New().String()
		}
		prepared[i] = c
	}

	remote := a.analyzeRemote(ctx, prepared)
	for _, c := range prepared {
		if r, ok := remote[c.ID]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, a.AnalyzeLocal(c))
	}
	return out
}

func (a *Analyzer) analyzeRemote(ctx context.Context, comments []feedback.Comment) map[string]feedback.Analysis {
	if a.remote == nil {
		return nil
	}

	results, err := a.remote.AnalyzeBatch(ctx, comments)
	if err != nil {
		a.logger.Warn("remote feedback analysis failed, using lexicon", "error", err, "comments", len(comments))
		return nil
	}

	lex := a.aggregator.Lexicon()
	byID := make(map[string]feedback.Analysis, len(results))
	for _, r := range results {
		if r.ID == "" {
			continue
		}
		r.Sentiment = normalizeLabel(r.Sentiment)
		r.Score01 = clamp01(r.Score01)
		r.Keywords = cleanKeywords(lex, r.Sentiment, r.Keywords)
		byID[r.ID] = r
	}
	return byID
}

// AnalyzeLocal scores a single comment with the lexicon only
func (a *Analyzer) AnalyzeLocal(c feedback.Comment) feedback.Analysis {
	lex := a.aggregator.Lexicon()
	compound := lex.Sentiment(c.Text)
	score01 := clamp01((compound + 1) / 2)

	label := feedback.SentimentNeutral
	switch {
	case lex.IsNegativeHint(c.Text) || lex.ForcesNegative(c.Text):
		label = feedback.SentimentNegative
		score01 = math.Min(score01, 0.5)
	case compound >= neutralBand:
		label = feedback.SentimentPositive
	case compound <= -neutralBand:
		label = feedback.SentimentNegative
	}

	analysis := feedback.Analysis{
		ID:        c.ID,
		Sentiment: label,
		Score01:   score01,
		Keywords:  a.localKeywords(c.Text),
	}
	if summary := summarize(c.Text); summary != "" {
		analysis.Summary = &summary
	}
	return analysis
}

// localKeywords orders lexicon matches by intensity and falls back to
// frequency-ranked candidates when nothing matched
func (a *Analyzer) localKeywords(text string) []string {
	terms := a.aggregator.Extract(text)
	if len(terms) == 0 {
		kws := CandidateKeywords(a.aggregator.Lexicon(), text, maxKeywordsPerComment)
		if kws == nil {
			return []string{}
		}
		return kws
	}

	sort.SliceStable(terms, func(i, j int) bool {
		wi, wj := math.Abs(terms[i].Weight), math.Abs(terms[j].Weight)
		if wi != wj {
			return wi > wj
		}
		return terms[i].Term < terms[j].Term
	})

	out := make([]string, 0, maxKeywordsPerComment)
	for _, t := range terms {
		if len(out) == maxKeywordsPerComment {
			break
		}
		out = append(out, t.Term)
	}
	return out
}

// cleanKeywords folds and dedupes remote keywords. Complaint words are
// dropped from positive analyses.
func cleanKeywords(lex *lexicon.Lexicon, sentiment string, raw []string) []string {
	out := make([]string, 0, maxKeywordsPerComment)
	seen := make(map[string]bool)
	for _, k := range raw {
		n := lexicon.Normalize(k)
		if n == "" || lex.Stopwords.Contains(n) || seen[n] {
			continue
		}
		if sentiment == feedback.SentimentPositive && lex.ExcludePositive.Contains(n) {
			continue
		}
		seen[n] = true
		out = append(out, n)
		if len(out) == maxKeywordsPerComment {
			break
		}
	}
	return out
}

func normalizeLabel(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case feedback.SentimentPositive:
		return feedback.SentimentPositive
	case feedback.SentimentNegative:
		return feedback.SentimentNegative
	default:
		return feedback.SentimentNeutral
	}
}

func summarize(text string) string {
	words := strings.Fields(text)
	if len(words) > maxSummaryWords {
		words = words[:maxSummaryWords]
	}
	return strings.Join(words, " ")
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
