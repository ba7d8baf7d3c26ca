package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talkclass/internal/domain/assistant"
	"talkclass/internal/domain/feedback"
)

type stubGenerator struct {
	candidates []string
	err        error
	prompt     string
	params     assistant.GenerationParams
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string, params assistant.GenerationParams) ([]string, error) {
	s.prompt = prompt
	s.params = params
	return s.candidates, s.err
}

func TestAnalyzeBatch(t *testing.T) {
	gen := &stubGenerator{candidates: []string{
		"nada aqui",
		"```json\n[{\"id\": \"1\", \"sentiment\": \"pos\", \"score01\": 0.9, \"keywords\": [\"empatia\"], \"summary\": \"Elogio\"}, {\"id\": 2, \"sentiment\": \"neg\"}]\n```",
	}}
	b := NewBatchAnalyzer(gen, "gemini-2.5-flash-lite")

	got, err := b.AnalyzeBatch(context.Background(), []feedback.Comment{
		{ID: "1", Text: "muita empatia <3"},
		{ID: "2", Text: "demora"},
	})
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash-lite", gen.params.Model)
	assert.Equal(t, float32(0.2), gen.params.Temperature)
	assert.Equal(t, float32(0.9), gen.params.TopP)
	assert.Contains(t, gen.prompt, `{"id":"1","text":"muita empatia <3"}`)

	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, []string{"empatia"}, got[0].Keywords)
	require.NotNil(t, got[0].Summary)
	assert.Equal(t, "Elogio", *got[0].Summary)

	// missing fields take neutral defaults
	assert.Equal(t, "2", got[1].ID)
	assert.Equal(t, 0.5, got[1].Score01)
	assert.Equal(t, []string{}, got[1].Keywords)
	assert.Nil(t, got[1].Summary)
}

func TestAnalyzeBatchErrors(t *testing.T) {
	comments := []feedback.Comment{{ID: "1", Text: "ok"}}

	_, err := NewBatchAnalyzer(&stubGenerator{err: errors.New("quota")}, "m").AnalyzeBatch(context.Background(), comments)
	assert.Error(t, err)

	_, err = NewBatchAnalyzer(&stubGenerator{candidates: []string{"{}"}}, "m").AnalyzeBatch(context.Background(), comments)
	assert.ErrorIs(t, err, ErrNoBatchResult)

	got, err := NewBatchAnalyzer(&stubGenerator{}, "m").AnalyzeBatch(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeBatch(t *testing.T) {
	for name, text := range map[string]string{
		"bare":   `[{"id": "a"}]`,
		"fenced": "```\n[{\"id\": \"a\"}]\n```",
		"prose":  `Aqui está: [{"id": "a"}] pronto`,
	} {
		t.Run(name, func(t *testing.T) {
			items, err := decodeBatch(text)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, "a", rawID(items[0].ID))
		})
	}
}

func TestRawID(t *testing.T) {
	assert.Equal(t, "abc", rawID([]byte(`"abc"`)))
	assert.Equal(t, "7", rawID([]byte(`7`)))
	assert.Equal(t, "", rawID([]byte(`null`)))
	assert.Equal(t, "", rawID(nil))
}
