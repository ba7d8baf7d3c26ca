// internal/service/assistant/remote.go

package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"talkclass/internal/domain/assistant"
	"talkclass/internal/domain/feedback"
)

// Snapshot limits keep the prompt small
const (
	snapshotSeries   = 12
	snapshotTopics   = 5
	snapshotWordsNeg = 8
	snapshotWordsPos = 6
	snapshotWorst    = 3
)

var (
	// ErrDisabled is returned when no generator is configured
	ErrDisabled = errors.New("remote generator not configured")
	// ErrNoCandidates is returned when the model produced no usable text
	ErrNoCandidates = errors.New("remote generator returned no candidates")
)

// RemoteParams are the sampling parameters for assistant answers
var RemoteParams = assistant.GenerationParams{
	Preamble:    "Siga rigorosamente as regras e o formato solicitado.",
	Temperature: 0.35,
	TopP:        0.9,
	JSON:        true,
}

var intentHints = map[assistant.Intent]string{
	assistant.IntentSummary:  "Foque em panorama geral (tendência, NPS se existir, volume, tópicos críticos).",
	assistant.IntentNPS:      "Foque em NPS, evolução e o que puxa para cima/baixo.",
	assistant.IntentKeywords: "Foque em palavras-chave positivas/negativas mais frequentes e o que elas sugerem.",
	assistant.IntentTopics:   "Foque em categorias/tópicos/perguntas com mais negativo e cite percentuais/médias.",
	assistant.IntentActions:  "Foque em recomendações práticas ligadas aos dados enviados: para cada tópico/pergunta/palavra negativa, proponha ações com o que fazer, onde, prazo sugerido e indicador de sucesso.",
}

const genericHint = "Seja conciso e peça foco se faltarem dados."

// RemoteProvider asks a generative model for an answer in the same shape
// as the local synthesizer
type RemoteProvider struct {
	generator assistant.Generator
	timeout   time.Duration
	logger    *slog.Logger
}

// NewRemoteProvider creates a provider. A nil generator disables it.
func NewRemoteProvider(generator assistant.Generator, timeout time.Duration, logger *slog.Logger) *RemoteProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoteProvider{
		generator: generator,
		timeout:   timeout,
		logger:    logger,
	}
}

// Enabled reports whether a generator is configured
func (p *RemoteProvider) Enabled() bool {
	return p != nil && p.generator != nil
}

// Answer returns the remote answer, or false on any failure so the caller
// can fall back to the local synthesizer
func (p *RemoteProvider) Answer(ctx context.Context, question string, in assistant.Intent, c assistant.Context) (answer assistant.Answer, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("remote answer panicked, falling back", "panic", r)
			answer, ok = assistant.Answer{}, false
		}
	}()

	answer, err := p.answer(ctx, question, in, c)
	if err != nil {
		p.logger.Warn("remote answer unavailable, falling back", "intent", in, "error", err)
		return assistant.Answer{}, false
	}
	return answer, true
}

func (p *RemoteProvider) answer(ctx context.Context, question string, in assistant.Intent, c assistant.Context) (assistant.Answer, error) {
	if !p.Enabled() {
		return assistant.Answer{}, ErrDisabled
	}

	prompt, err := BuildPrompt(question, in, c)
	if err != nil {
		return assistant.Answer{}, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	candidates, err := p.generator.Generate(ctx, prompt, RemoteParams)
	if err != nil {
		return assistant.Answer{}, fmt.Errorf("generate: %w", err)
	}
	if len(candidates) == 0 {
		return assistant.Answer{}, ErrNoCandidates
	}

	var reply *remoteReply
	for _, text := range candidates {
		obj, err := ParseTolerant(text)
		if err != nil {
			continue
		}
		reply = decodeReply(obj)
		break
	}
	if reply == nil {
		return assistant.Answer{}, ErrUnparseable
	}

	insights := capLines(dedupeKeepOrder(reply.insights), maxInsights)
	actions := capLines(dedupeKeepOrder(reply.actions), maxRemoteActions)
	body := FormatAnswer(reply.summary, insights, actions, in)

	p.logger.Info("remote answer generated", "intent", in)
	return assistant.Answer{
		Answer:      withProvenance(body, ProvenanceRemote),
		Highlights:  []string{},
		Suggestions: []string{},
		Filters:     echoFilters(c.Filters),
	}, nil
}

type remoteReply struct {
	summary  string
	insights []string
	actions  []string
}

func decodeReply(obj map[string]json.RawMessage) *remoteReply {
	reply := &remoteReply{}
	if raw, ok := obj["summary"]; ok {
		reply.summary = strings.TrimSpace(rawText(raw))
	}

	var insights []json.RawMessage
	if raw, ok := obj["insights"]; ok && json.Unmarshal(raw, &insights) == nil {
		for _, it := range insights {
			if s := strings.TrimSpace(rawText(it)); s != "" {
				reply.insights = append(reply.insights, s)
			}
		}
	}

	var actions []ActionItem
	if raw, ok := obj["actions"]; ok && json.Unmarshal(raw, &actions) == nil {
		for _, a := range actions {
			if s := a.Render(); s != "" {
				reply.actions = append(reply.actions, s)
			}
		}
	}
	return reply
}

type compactPoint struct {
	Bucket string   `json:"bucket"`
	Avg    *float64 `json:"avg"`
	Count  *int     `json:"count"`
	Total  *int     `json:"total,omitempty"`
}

type compactWord struct {
	Keyword string `json:"keyword"`
	Total   int    `json:"total"`
	Week    string `json:"week"`
}

// Snapshot is the size-bounded context sent to the model
type Snapshot struct {
	Intent         string                    `json:"intent"`
	Question       string                    `json:"question"`
	KPIs           map[string]float64        `json:"kpis"`
	Series         []compactPoint            `json:"series"`
	Volume         []compactPoint            `json:"volume"`
	Topics         []assistant.TopicPolarity `json:"topics"`
	WordsNeg       []compactWord             `json:"words_neg"`
	WordsPos       []compactWord             `json:"words_pos"`
	WorstQuestions []assistant.WorstQuestion `json:"worst_questions"`
}

// BuildSnapshot truncates the context to what the prompt carries
func BuildSnapshot(question string, in assistant.Intent, c assistant.Context) Snapshot {
	kpis := c.KPIs
	if kpis == nil {
		kpis = map[string]float64{}
	}
	topics := c.Topics
	if len(topics) > snapshotTopics {
		topics = topics[:snapshotTopics]
	}
	worst := c.WorstQuestions
	if len(worst) > snapshotWorst {
		worst = worst[:snapshotWorst]
	}

	return Snapshot{
		Intent:         strings.ToUpper(string(in)),
		Question:       question,
		KPIs:           kpis,
		Series:         compactSeries(c.Series),
		Volume:         compactSeries(c.Volume),
		Topics:         append([]assistant.TopicPolarity{}, topics...),
		WordsNeg:       compactWords(c.WordsNeg, snapshotWordsNeg),
		WordsPos:       compactWords(c.WordsPos, snapshotWordsPos),
		WorstQuestions: append([]assistant.WorstQuestion{}, worst...),
	}
}

func compactSeries(series []assistant.SeriesPoint) []compactPoint {
	if len(series) > snapshotSeries {
		series = series[len(series)-snapshotSeries:]
	}
	out := make([]compactPoint, 0, len(series))
	for _, s := range series {
		out = append(out, compactPoint{Bucket: s.Bucket, Avg: s.Avg, Count: s.Count, Total: s.Total})
	}
	return out
}

func compactWords(words []feedback.KeywordStat, limit int) []compactWord {
	if len(words) > limit {
		words = words[:limit]
	}
	out := make([]compactWord, 0, len(words))
	for _, w := range words {
		out = append(out, compactWord{Keyword: w.Keyword, Total: w.Total, Week: w.Week})
	}
	return out
}
