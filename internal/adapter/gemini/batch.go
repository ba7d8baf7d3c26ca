// internal/adapter/gemini/batch.go

package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"talkclass/internal/domain/assistant"
	"talkclass/internal/domain/feedback"
)

const batchInstructions = "Você é um modelo que processa feedbacks curtos em português.\n" +
	"Receba uma lista JSON de objetos {id,text} e devolva um JSON compacto sem texto extra:\n" +
	"[{id, sentiment:'pos|neu|neg', score01: number between 0 and 1," +
	" keywords:[top palavras-chave sem stopwords, até 4], summary: resumo de até 12 palavras}]\n" +
	"score01 indica positividade (0=negativo, 0.5=neutro, 1=positivo)."

// ErrNoBatchResult is returned when no candidate holds a JSON array
var ErrNoBatchResult = errors.New("gemini batch reply holds no JSON array")

// BatchParams are the sampling parameters for per-comment analysis
var BatchParams = assistant.GenerationParams{
	Preamble:    "Saída apenas JSON válido.",
	Temperature: 0.2,
	TopP:        0.9,
	JSON:        true,
}

// BatchAnalyzer implements feedback.BatchGenerator with a generator
type BatchAnalyzer struct {
	generator assistant.Generator
	model     string
}

// NewBatchAnalyzer creates a batch analyzer bound to the given model
func NewBatchAnalyzer(generator assistant.Generator, model string) *BatchAnalyzer {
	return &BatchAnalyzer{
		generator: generator,
		model:     model,
	}
}

type batchRow struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type batchItem struct {
	ID        json.RawMessage `json:"id"`
	Sentiment string          `json:"sentiment"`
	Score01   *float64        `json:"score01"`
	Keywords  []string        `json:"keywords"`
	Summary   *string         `json:"summary"`
}

// AnalyzeBatch sends every comment in one request
func (b *BatchAnalyzer) AnalyzeBatch(ctx context.Context, comments []feedback.Comment) ([]feedback.Analysis, error) {
	if len(comments) == 0 {
		return []feedback.Analysis{}, nil
	}

	rows := make([]batchRow, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, batchRow{ID: c.ID, Text: c.Text})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rows); err != nil {
		return nil, fmt.Errorf("failed to encode batch rows: %w", err)
	}

	params := BatchParams
	params.Model = b.model
	prompt := batchInstructions + "\n" + buf.String()

	candidates, err := b.generator.Generate(ctx, prompt, params)
	if err != nil {
		return nil, err
	}

	for _, text := range candidates {
		items, err := decodeBatch(text)
		if err != nil {
			continue
		}
		return toAnalyses(items), nil
	}
	return nil, ErrNoBatchResult
}

// decodeBatch accepts a bare array, a fenced array or an array embedded in prose
func decodeBatch(text string) ([]batchItem, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			text = text[nl+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	var items []batchItem
	if err := json.Unmarshal([]byte(text), &items); err == nil {
		return items, nil
	}

	start, end := strings.IndexByte(text, '['), strings.LastIndexByte(text, ']')
	if start < 0 || end <= start {
		return nil, ErrNoBatchResult
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("failed to decode batch reply: %w", err)
	}
	return items, nil
}

func toAnalyses(items []batchItem) []feedback.Analysis {
	out := make([]feedback.Analysis, 0, len(items))
	for _, item := range items {
		score := 0.5
		if item.Score01 != nil {
			score = *item.Score01
		}
		sentiment := item.Sentiment
		if sentiment == "" {
			sentiment = feedback.SentimentNeutral
		}
		keywords := item.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		out = append(out, feedback.Analysis{
			ID:        rawID(item.ID),
			Sentiment: sentiment,
			Score01:   score,
			Keywords:  keywords,
			Summary:   item.Summary,
		})
	}
	return out
}

// rawID accepts string and numeric ids
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
