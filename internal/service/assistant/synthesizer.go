// internal/service/assistant/synthesizer.go

// Package assistant answers analytical questions about aggregated feedback,
// preferring a remote model when configured and always able to fall back to
// deterministic local heuristics.
package assistant

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"talkclass/internal/domain/assistant"
	"talkclass/internal/service/intent"
)

const (
	maxInsights      = 5
	maxLocalActions  = 3
	maxRemoteActions = 4
)

var greetingTemplates = []string{
	"Oi! Sou o assistente do TalkClass. Posso explicar NPS, categorias ou palavras críticas. O que você quer ver?",
	"Olá! Posso te ajudar a ler os gráficos e comentários (NPS, tópicos, palavras). Por onde começamos?",
	"E aí! Estou pronto para te mostrar categorias críticas ou palavras mais citadas. Qual caminho prefere?",
	"Oi! Me diz se quer ver NPS, tópicos ou recomendações rápidas e eu resumo para você.",
}

var greetingSuggestions = []string{
	"Pergunte por NPS ou evolução de satisfação.",
	"Peça as categorias ou tópicos mais negativos.",
}

const greetingHighlight = "Assistente pronto para explicar NPS, categorias e comentários."

var summaryTemplates = []string{
	"%s",
	"Visão rápida: %s",
	"Em linha: %s",
}

// Synthesizer builds answers from the analytics context with fixed rules
type Synthesizer struct {
	classifier *intent.Classifier
	pick       func(n int) int
}

// SynthesizerOption customizes a Synthesizer
type SynthesizerOption func(*Synthesizer)

// WithPicker replaces the random source used for greeting templates
func WithPicker(pick func(n int) int) SynthesizerOption {
	return func(s *Synthesizer) {
		s.pick = pick
	}
}

// NewSynthesizer creates a synthesizer using the built-in trigger tables
func NewSynthesizer(classifier *intent.Classifier, opts ...SynthesizerOption) *Synthesizer {
	if classifier == nil {
		classifier = intent.NewClassifier()
	}
	s := &Synthesizer{
		classifier: classifier,
		pick:       rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Greeting returns a canned welcome with two orientation suggestions
func (s *Synthesizer) Greeting(c assistant.Context) assistant.Answer {
	return assistant.Answer{
		Answer:      greetingTemplates[s.pick(len(greetingTemplates))],
		Highlights:  []string{greetingHighlight},
		Suggestions: append([]string(nil), greetingSuggestions...),
		Filters:     echoFilters(c.Filters),
	}
}

// Synthesize answers the question for the given intent
func (s *Synthesizer) Synthesize(in assistant.Intent, question string, c assistant.Context) assistant.Answer {
	if in == assistant.IntentGreeting {
		return s.Greeting(c)
	}

	f := readFacts(c)
	focus := s.classifier.DetectFocus(question)

	actions := capLines(dedupeKeepOrder(buildActions(in, f)), maxLocalActions)
	insights := capLines(dedupeKeepOrder(buildInsights(in, focus, f)), maxInsights)
	summary := ChooseVariant(summaryTemplates, question)
	summary = fmt.Sprintf(summary, buildSummaryCore(in, f))

	answer := assistant.Answer{
		Answer:      withProvenance(FormatAnswer(summary, insights, actions, in), ProvenanceLocal),
		Highlights:  []string{},
		Suggestions: []string{},
		Filters:     echoFilters(c.Filters),
	}
	if in == assistant.IntentActions {
		answer.Highlights = append(answer.Highlights, actions...)
		answer.Suggestions = append(answer.Suggestions, actions...)
	}
	return answer
}

// buildSummaryCore picks the numeric facts worth stating for the intent
func buildSummaryCore(in assistant.Intent, f facts) string {
	var parts []string
	switch {
	case in == assistant.IntentNPS && f.hasNPS:
		parts = append(parts,
			fmt.Sprintf("NPS atual: %s.", formatNumber(f.nps)),
			fmt.Sprintf("Tendência: %s.", f.trend))
	case in == assistant.IntentKeywords && (f.hasTopNeg || f.hasPosSum):
		if f.hasTopNeg {
			parts = append(parts, fmt.Sprintf("Palavra negativa mais citada: %s (%dx).", f.topNeg.Keyword, f.topNeg.Total))
		}
		if f.hasPosSum {
			parts = append(parts, fmt.Sprintf("Principais elogios: %s.", f.posSummary))
		}
	case in == assistant.IntentTopics && f.hasTopic:
		parts = append(parts, fmt.Sprintf("Tópico crítico: %s com %.1f%% de negativo.", f.topic.Topic, f.topic.PNeg))
	case in == assistant.IntentActions && f.hasTopic:
		parts = append(parts, fmt.Sprintf("Tópico mais citado para ação: %s.", f.topic.Topic))
	case in == assistant.IntentSummary:
		if f.hasNPS {
			parts = append(parts, fmt.Sprintf("NPS: %s. %s.", formatNumber(f.nps), f.trend))
		}
		if f.hasTotal && f.totalFeedbacks != 0 {
			parts = append(parts, fmt.Sprintf("Volume: %d feedbacks.", int(f.totalFeedbacks)))
		}
	case in == assistant.IntentGeneric:
		parts = append(parts, "Me diga se quer NPS, tópicos ou palavras-chave e eu foco nisso.")
	}

	if len(parts) == 0 {
		return "Dados insuficientes para este recorte."
	}
	return strings.Join(parts, " ")
}

// buildInsights includes each fact only when the intent asks for it. Focus
// only adds the positive keyword line.
func buildInsights(in assistant.Intent, focus assistant.Focus, f facts) []string {
	if in == assistant.IntentGeneric {
		return []string{"Posso detalhar NPS, tópicos críticos ou palavras recorrentes; é só pedir o foco."}
	}

	var insights []string
	if f.hasNegSum && in == assistant.IntentKeywords {
		insights = append(insights, "Palavras negativas: "+f.negSummary+".")
	}
	if f.hasPosSum && (in == assistant.IntentKeywords || focus.Positive) {
		insights = append(insights, "Palavras positivas: "+f.posSummary+".")
	}
	if f.hasTopic && (in == assistant.IntentTopics || in == assistant.IntentSummary || in == assistant.IntentActions) {
		insights = append(insights, fmt.Sprintf("Tópico mais crítico: %s (neg=%.1f%%).", f.topic.Topic, f.topic.PNeg))
	}
	for _, w := range f.worst {
		insights = append(insights, fmt.Sprintf("Pergunta crítica: '%s' média=%.2f (n=%d).", w.Question, w.Avg, w.Total))
	}
	if f.hasSpike && (in == assistant.IntentSummary || in == assistant.IntentNPS || in == assistant.IntentTopics) {
		insights = append(insights, fmt.Sprintf("Pico de volume: %s.", f.spike))
	}

	if len(insights) == 0 && f.hasNegSum {
		insights = append(insights, "Palavras negativas: "+f.negSummary+".")
	}
	if len(insights) == 0 {
		insights = append(insights, "Ainda não há insights fortes com os filtros atuais.")
	}
	return insights
}

func echoFilters(filters map[string]string) map[string]string {
	out := make(map[string]string, len(filters))
	for k, v := range filters {
		out[k] = v
	}
	return out
}

// formatNumber drops a trailing ".0" so an NPS of 42 reads "42"
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
