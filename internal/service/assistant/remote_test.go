package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talkclass/internal/domain/assistant"
	"talkclass/internal/domain/feedback"
)

type fakeGenerator struct {
	candidates []string
	err        error
	block      bool
	panics     bool

	calls  int
	prompt string
	params assistant.GenerationParams
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, params assistant.GenerationParams) ([]string, error) {
	f.calls++
	f.prompt = prompt
	f.params = params
	if f.panics {
		panic("boom")
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.candidates, f.err
}

func TestRemoteProviderEnabled(t *testing.T) {
	var nilProvider *RemoteProvider

	assert.False(t, nilProvider.Enabled())
	assert.False(t, NewRemoteProvider(nil, time.Second, nil).Enabled())
	assert.True(t, NewRemoteProvider(&fakeGenerator{}, time.Second, nil).Enabled())
}

func TestRemoteProviderAnswer(t *testing.T) {
	gen := &fakeGenerator{candidates: []string{
		"não sei responder",
		"```json\n{\"summary\": \"NPS em 42 e subindo.\", \"insights\": [\"Alta de 2 pontos\"], \"actions\": [{\"what\": \"Manter plantão\", \"where\": \"Secretaria\"}, \"Medir de novo\"]}\n```",
	}}
	p := NewRemoteProvider(gen, time.Second, nil)

	got, ok := p.Answer(context.Background(), "como está o nps?", assistant.IntentNPS, assistant.Context{
		KPIs:    map[string]float64{"nps": 42},
		Filters: map[string]string{"curso": "ADS"},
	})

	require.True(t, ok)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, RemoteParams, gen.params)
	assert.Contains(t, gen.prompt, "Intenção inferida: NPS.")
	assert.Contains(t, gen.prompt, `"nps":42`)

	assert.True(t, strings.HasPrefix(got.Answer, "📊 NPS em 42 e subindo."))
	assert.Contains(t, got.Answer, "• **Alta de 2 pontos**")
	assert.Contains(t, got.Answer, "• Manter plantão (onde: Secretaria)")
	assert.Contains(t, got.Answer, "◦ Medir de novo")
	assert.True(t, strings.HasSuffix(got.Answer, ProvenanceRemote))
	assert.Empty(t, got.Highlights)
	assert.Empty(t, got.Suggestions)
	assert.Equal(t, map[string]string{"curso": "ADS"}, got.Filters)
}

func TestRemoteProviderCapsLists(t *testing.T) {
	var insights, actions []string
	for i := 1; i <= 7; i++ {
		insights = append(insights, fmt.Sprintf("%q", fmt.Sprintf("insight-%d", i)))
		actions = append(actions, fmt.Sprintf("%q", fmt.Sprintf("acao-%d", i)))
	}
	reply := fmt.Sprintf(`{"summary": "s", "insights": [%s], "actions": [%s]}`,
		strings.Join(insights, ","), strings.Join(actions, ","))
	p := NewRemoteProvider(&fakeGenerator{candidates: []string{reply}}, time.Second, nil)

	got, ok := p.Answer(context.Background(), "resumo", assistant.IntentSummary, assistant.Context{})

	require.True(t, ok)
	assert.Contains(t, got.Answer, "insight-5")
	assert.NotContains(t, got.Answer, "insight-6")
	assert.Contains(t, got.Answer, "acao-4")
	assert.NotContains(t, got.Answer, "acao-5")
}

func TestRemoteProviderFailures(t *testing.T) {
	tests := map[string]struct {
		gen     *fakeGenerator
		timeout time.Duration
	}{
		"generator error": {gen: &fakeGenerator{err: errors.New("quota")}, timeout: time.Second},
		"no candidates":   {gen: &fakeGenerator{}, timeout: time.Second},
		"no JSON":         {gen: &fakeGenerator{candidates: []string{"desculpe"}}, timeout: time.Second},
		"timeout":         {gen: &fakeGenerator{block: true}, timeout: 10 * time.Millisecond},
		"panic":           {gen: &fakeGenerator{panics: true}, timeout: time.Second},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			p := NewRemoteProvider(tc.gen, tc.timeout, nil)

			got, ok := p.Answer(context.Background(), "qual o nps?", assistant.IntentNPS, assistant.Context{})

			assert.False(t, ok)
			assert.Equal(t, assistant.Answer{}, got)
		})
	}
}

func TestBuildSnapshotTruncates(t *testing.T) {
	series := make([]float64, 15)
	for i := range series {
		series[i] = float64(i)
	}
	var words []feedback.KeywordStat
	for i := 0; i < 10; i++ {
		words = append(words, feedback.KeywordStat{Keyword: fmt.Sprintf("k%d", i), Total: i, Week: "W1"})
	}
	topics := make([]assistant.TopicPolarity, 7)
	worst := make([]assistant.WorstQuestion, 5)

	snap := BuildSnapshot("q", assistant.IntentTopics, assistant.Context{
		Series:         avgSeries(series...),
		WordsNeg:       words,
		WordsPos:       words,
		Topics:         topics,
		WorstQuestions: worst,
	})

	assert.Equal(t, "TOPICS", snap.Intent)
	assert.NotNil(t, snap.KPIs)
	require.Len(t, snap.Series, 12)
	assert.Equal(t, 3.0, *snap.Series[0].Avg)
	assert.Len(t, snap.WordsNeg, 8)
	assert.Len(t, snap.WordsPos, 6)
	assert.Len(t, snap.Topics, 5)
	assert.Len(t, snap.WorstQuestions, 3)
	assert.Empty(t, snap.Volume)
}

func TestIntentHint(t *testing.T) {
	assert.Equal(t, genericHint, IntentHint(assistant.IntentGeneric))
	assert.Contains(t, IntentHint(assistant.IntentActions), "indicador de sucesso")
}
