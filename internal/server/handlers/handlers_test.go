package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talkclass/internal/domain/assistant"
	"talkclass/internal/domain/feedback"
	assistantService "talkclass/internal/service/assistant"
	"talkclass/internal/service/keywords"
	"talkclass/internal/service/lexicon"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type recordingKeywordEvents struct {
	calls [][3]int
}

func (r *recordingKeywordEvents) PublishKeywords(comments, positive, negative int) error {
	r.calls = append(r.calls, [3]int{comments, positive, negative})
	return nil
}

type spyAggregator struct {
	topN, minFreq int
}

func (s *spyAggregator) Aggregate(comments []feedback.Comment, topN, minFrequency int) feedback.KeywordResult {
	s.topN, s.minFreq = topN, minFrequency
	return feedback.KeywordResult{Pos: []feedback.KeywordStat{}, Neg: []feedback.KeywordStat{}}
}

func post(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestKeywordsHandler(t *testing.T) {
	events := &recordingKeywordEvents{}
	h := NewKeywordsHandler(keywords.NewAggregator(lexicon.Default()), events, KeywordDefaults{Top: 40, MinFrequency: 1}, testLogger)

	rec := post(t, h.Aggregate, `{"texts": [
		{"id": "1", "text": "falta de respeito", "week": "2024-W10", "categoryId": "infra"},
		{"id": "2", "text": "muita empatia", "week": "2024-W10"}
	]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res feedback.KeywordResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Pos, 1)
	assert.Equal(t, "empatia", res.Pos[0].Keyword)
	assert.Nil(t, res.Pos[0].CategoryID)

	var found bool
	for _, s := range res.Neg {
		if s.Keyword == "falta de respeito" {
			found = true
			require.NotNil(t, s.CategoryID)
			assert.Equal(t, "infra", *s.CategoryID)
		}
		assert.NotEqual(t, "respeito", s.Keyword)
	}
	assert.True(t, found)

	require.Len(t, events.calls, 1)
	assert.Equal(t, 2, events.calls[0][0])
	assert.Equal(t, 1, events.calls[0][1])
}

func TestKeywordsHandlerDefaults(t *testing.T) {
	spy := &spyAggregator{}
	h := NewKeywordsHandler(spy, nil, KeywordDefaults{Top: 40, MinFrequency: 1}, testLogger)

	rec := post(t, h.Aggregate, `{"texts": []}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 40, spy.topN)
	assert.Equal(t, 1, spy.minFreq)
	assert.JSONEq(t, `{"pos": [], "neg": []}`, rec.Body.String())

	rec = post(t, h.Aggregate, `{"texts": [], "top": 0, "min_freq": 3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, spy.topN)
	assert.Equal(t, 3, spy.minFreq)
}

func TestHandlersRejectMalformedJSON(t *testing.T) {
	keywordsHandler := NewKeywordsHandler(&spyAggregator{}, nil, KeywordDefaults{Top: 40, MinFrequency: 1}, testLogger)
	analyzeHandler := NewAnalyzeHandler(keywords.NewAnalyzer(keywords.NewAggregator(lexicon.Default()), nil, testLogger), testLogger)
	assistantHandler := NewAssistantHandler(assistantService.NewService(nil, nil, nil, nil, testLogger), testLogger)

	tests := map[string]struct {
		handler http.HandlerFunc
		body    string
	}{
		"keywords empty body":     {handler: keywordsHandler.Aggregate, body: ""},
		"keywords truncated":      {handler: keywordsHandler.Aggregate, body: "{"},
		"keywords wrong type":     {handler: keywordsHandler.Aggregate, body: `{"texts": "nope"}`},
		"analyze truncated":       {handler: analyzeHandler.Analyze, body: "{"},
		"analyze wrong type":      {handler: analyzeHandler.Analyze, body: `{"texts": 3}`},
		"assistant empty body":    {handler: assistantHandler.Ask, body: ""},
		"assistant wrong type":    {handler: assistantHandler.Ask, body: `{"question": 1}`},
		"assistant bad kpi value": {handler: assistantHandler.Ask, body: `{"question": "nps", "context": {"kpis": {"nps": "alto"}}}`},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rec := post(t, tc.handler, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var res map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.NotEmpty(t, res["error"])
		})
	}
}

func TestHandlersAcceptNilLogger(t *testing.T) {
	keywordsHandler := NewKeywordsHandler(&spyAggregator{}, nil, KeywordDefaults{Top: 40, MinFrequency: 1}, nil)
	analyzeHandler := NewAnalyzeHandler(keywords.NewAnalyzer(keywords.NewAggregator(lexicon.Default()), nil, nil), nil)
	assistantHandler := NewAssistantHandler(assistantService.NewService(nil, nil, nil, nil, nil), nil)

	for name, handler := range map[string]http.HandlerFunc{
		"keywords":  keywordsHandler.Aggregate,
		"analyze":   analyzeHandler.Analyze,
		"assistant": assistantHandler.Ask,
	} {
		t.Run(name, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			require.NotPanics(t, func() { rec = post(t, handler, "{") })
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAnalyzeHandler(t *testing.T) {
	h := NewAnalyzeHandler(keywords.NewAnalyzer(keywords.NewAggregator(lexicon.Default()), nil, testLogger), testLogger)

	rec := post(t, h.Analyze, `{"texts": [{"id": "a", "text": "Aula excelente, muita clareza"}, {"text": "O projetor está quebrado"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var res []feedback.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res, 2)
	assert.Equal(t, "a", res[0].ID)
	assert.Equal(t, feedback.SentimentPositive, res[0].Sentiment)
	assert.NotEmpty(t, res[1].ID)
	assert.Equal(t, feedback.SentimentNegative, res[1].Sentiment)
}

type stubService struct {
	got assistant.Request
}

func (s *stubService) Answer(ctx context.Context, req assistant.Request) assistant.Answer {
	s.got = req
	return assistant.Answer{Answer: "ok", Highlights: []string{}, Suggestions: []string{}, Filters: req.Context.Filters}
}

func TestAssistantHandler(t *testing.T) {
	svc := &stubService{}
	h := NewAssistantHandler(svc, testLogger)

	rec := post(t, h.Ask, `{
		"question": "como está o nps?",
		"context": {
			"filters": {"curso": "ADS"},
			"kpis": {"nps": 42},
			"series": [{"bucket": "W1", "avg": 2}, {"bucket": "W2", "avg": 4}],
			"topics": [{"topic": "Infra", "neg": 3, "neu": 1, "pos": 1, "pneg": 60}],
			"words_neg": [{"keyword": "demora", "total": 2, "week": "W1", "score": -0.6}]
		}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"answer": "ok", "highlights": [], "suggestions": [], "filters": {"curso": "ADS"}}`, rec.Body.String())

	assert.Equal(t, "como está o nps?", svc.got.Question)
	nps, ok := svc.got.Context.KPI("nps")
	assert.True(t, ok)
	assert.Equal(t, 42.0, nps)
	require.Len(t, svc.got.Context.Series, 2)
	assert.Equal(t, 4.0, *svc.got.Context.Series[1].Avg)
	assert.Equal(t, 60.0, svc.got.Context.Topics[0].PNeg)
	assert.Equal(t, "demora", svc.got.Context.WordsNeg[0].Keyword)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
