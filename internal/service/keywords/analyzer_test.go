package keywords

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talkclass/internal/domain/feedback"
)

type fakeBatch struct {
	results []feedback.Analysis
	err     error
	got     []feedback.Comment
}

func (f *fakeBatch) AnalyzeBatch(ctx context.Context, comments []feedback.Comment) ([]feedback.Analysis, error) {
	f.got = comments
	return f.results, f.err
}

func TestAnalyzeLocal(t *testing.T) {
	a := NewAnalyzer(newTestAggregator(), nil, nil)

	tests := map[string]struct {
		text      string
		sentiment string
		keyword   string
	}{
		"positive":      {text: "Aula excelente, muita clareza", sentiment: feedback.SentimentPositive, keyword: "clareza"},
		"negative hint": {text: "O projetor está quebrado", sentiment: feedback.SentimentNegative, keyword: "projetor"},
		"neutral":       {text: "Biblioteca aberta aos sabados", sentiment: feedback.SentimentNeutral, keyword: "biblioteca"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := a.AnalyzeLocal(feedback.Comment{ID: "c1", Text: tc.text})

			assert.Equal(t, "c1", got.ID)
			assert.Equal(t, tc.sentiment, got.Sentiment)
			assert.Contains(t, got.Keywords, tc.keyword)
			assert.LessOrEqual(t, len(got.Keywords), 4)
			assert.GreaterOrEqual(t, got.Score01, 0.0)
			assert.LessOrEqual(t, got.Score01, 1.0)
			require.NotNil(t, got.Summary)
		})
	}
}

func TestAnalyzeLocalCapsHintedScore(t *testing.T) {
	a := NewAnalyzer(newTestAggregator(), nil, nil)

	got := a.AnalyzeLocal(feedback.Comment{Text: "Excelente professor, mas a sala tem barulho"})

	assert.Equal(t, feedback.SentimentNegative, got.Sentiment)
	assert.LessOrEqual(t, got.Score01, 0.5)
}

func TestAnalyzeLocalForcedNegative(t *testing.T) {
	a := NewAnalyzer(newTestAggregator(), nil, nil)

	got := a.AnalyzeLocal(feedback.Comment{Text: "Gostei, mas a sinalização precisa melhorar"})

	assert.Equal(t, feedback.SentimentNegative, got.Sentiment)
}

func TestAnalyzeDropsComplaintWordsFromPositiveRemote(t *testing.T) {
	remote := &fakeBatch{results: []feedback.Analysis{
		{ID: "1", Sentiment: "pos", Keywords: []string{"melhorar", "clareza"}},
		{ID: "2", Sentiment: "neg", Keywords: []string{"melhorar"}},
	}}
	a := NewAnalyzer(newTestAggregator(), remote, nil)

	got := a.Analyze(context.Background(), []feedback.Comment{
		{ID: "1", Text: "x"},
		{ID: "2", Text: "y"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, []string{"clareza"}, got[0].Keywords)
	assert.Equal(t, []string{"melhorar"}, got[1].Keywords)
}

func TestAnalyzeLocalSummary(t *testing.T) {
	a := NewAnalyzer(newTestAggregator(), nil, nil)

	got := a.AnalyzeLocal(feedback.Comment{Text: "um dois tres quatro cinco seis sete oito nove dez onze doze treze"})

	require.NotNil(t, got.Summary)
	assert.Equal(t, "um dois tres quatro cinco seis sete oito nove dez onze doze", *got.Summary)
}

func TestAnalyzeAssignsMissingIDs(t *testing.T) {
	a := NewAnalyzer(newTestAggregator(), nil, nil)

	got := a.Analyze(context.Background(), []feedback.Comment{
		{ID: "keep", Text: "muita demora"},
		{Text: "muita empatia"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "keep", got[0].ID)
	_, err := uuid.Parse(got[1].ID)
	assert.NoError(t, err)
}

func TestAnalyzeEmpty(t *testing.T) {
	a := NewAnalyzer(newTestAggregator(), &fakeBatch{}, nil)

	got := a.Analyze(context.Background(), nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAnalyzeMergesRemoteResults(t *testing.T) {
	summary := "resumo remoto"
	remote := &fakeBatch{results: []feedback.Analysis{
		{ID: "1", Sentiment: " POS ", Score01: 1.4, Keywords: []string{"A", "de", "Clareza", "clareza"}, Summary: &summary},
		{ID: "", Sentiment: "neg"},
		{ID: "unknown", Sentiment: "neg"},
	}}
	a := NewAnalyzer(newTestAggregator(), remote, nil)

	comments := []feedback.Comment{
		{ID: "1", Text: "muita clareza"},
		{ID: "2", Text: "muita demora"},
	}
	got := a.Analyze(context.Background(), comments)

	require.Len(t, got, 2)
	assert.Equal(t, comments, remote.got)

	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, feedback.SentimentPositive, got[0].Sentiment)
	assert.Equal(t, 1.0, got[0].Score01)
	assert.Equal(t, []string{"clareza"}, got[0].Keywords)
	assert.Equal(t, &summary, got[0].Summary)

	// no remote result for "2", so the lexicon answers
	assert.Equal(t, a.AnalyzeLocal(comments[1]), got[1])
}

func TestAnalyzeFallsBackOnRemoteError(t *testing.T) {
	a := NewAnalyzer(newTestAggregator(), &fakeBatch{err: errors.New("quota exceeded")}, nil)

	comments := []feedback.Comment{{ID: "1", Text: "muita demora"}}
	got := a.Analyze(context.Background(), comments)

	require.Len(t, got, 1)
	assert.Equal(t, a.AnalyzeLocal(comments[0]), got[0])
}
