// internal/service/assistant/actions.go

package assistant

import (
	"fmt"
	"math"
	"strings"

	"talkclass/internal/domain/assistant"
	"talkclass/internal/service/lexicon"
)

// maxActionKeywords bounds how many negative keywords feed the category rules
const maxActionKeywords = 8

// actionRule appends canned remediation steps when any negative keyword
// contains one of its markers
type actionRule struct {
	markers []string
	actions []string
}

var actionRules = []actionRule{
	{
		markers: []string{"móvel", "cadeira", "mesa", "infra", "sala", "ilum", "ruido", "ruído"},
		actions: []string{
			"Infraestrutura: trocar ou consertar cadeiras/mesas citadas e revisar iluminação/ruído nas salas apontadas; prazo 30 dias.",
			"Infraestrutura: priorizar vistoria nas salas com mais menções negativas e publicar cronograma de correção.",
		},
	},
	{
		markers: []string{"atendimento", "secretaria", "suporte", "monitor", "fila", "demora", "retorno"},
		actions: []string{
			"Atendimento: criar roteiro padrão e metas de tempo de resposta; piloto de senha/agendamento em horários de pico por 2 semanas.",
			"Atendimento: coletar feedback pós-atendimento (1 pergunta) para medir queda no tempo de espera.",
		},
	},
	{
		markers: []string{"prof", "docente", "aula", "explica"},
		actions: []string{
			"Docência: sessões de alinhamento com docentes citados para ajustar ritmo/clareza; revisar materiais com exemplos práticos.",
		},
	},
	{
		markers: []string{"não sei", "nao sei", "não conheço", "falta informação", "pouco divulgado"},
		actions: []string{
			"Comunicação: enviar comunicado com canais e prazos, incluir QR Codes nas áreas citadas; medir alcance em 2 semanas.",
		},
	},
}

const (
	actionPrioritize = "Priorizar as categorias ou perguntas mais negativas, definir responsáveis e metas de curto prazo."
	actionMonitor    = "Agendar revisão quinzenal das áreas críticas e monitorar novos feedbacks."
)

// facts is the per-request reading of the context shared by the rules
type facts struct {
	trend          Trend
	spike          VolumeSpike
	hasSpike       bool
	topic          assistant.TopicPolarity
	hasTopic       bool
	worst          []assistant.WorstQuestion
	negWords       []string
	negSummary     string
	hasNegSum      bool
	posSummary     string
	hasPosSum      bool
	topNeg         KeywordCount
	hasTopNeg      bool
	nps            float64
	hasNPS         bool
	totalFeedbacks float64
	hasTotal       bool
}

func readFacts(c assistant.Context) facts {
	f := facts{trend: DescribeTrend(c.Series)}
	f.spike, f.hasSpike = FindVolumeSpike(c.Volume)
	f.topic, f.hasTopic = TopTopic(c.Topics)
	f.worst = WorstQuestions(c.WorstQuestions)
	f.negSummary, f.hasNegSum = SummarizeKeywords(c.WordsNeg)
	f.posSummary, f.hasPosSum = SummarizeKeywords(c.WordsPos)
	f.topNeg, f.hasTopNeg = TopKeyword(c.WordsNeg)
	f.nps, f.hasNPS = c.KPI("nps")
	f.totalFeedbacks, f.hasTotal = c.KPI("totalFeedbacks")

	words := c.WordsNeg
	if len(words) > maxActionKeywords {
		words = words[:maxActionKeywords]
	}
	for _, w := range words {
		f.negWords = append(f.negWords, w.Keyword)
	}
	return f
}

// buildActions runs the remediation rules in their fixed order
func buildActions(intent assistant.Intent, f facts) []string {
	var actions []string

	for _, rule := range actionRules {
		if anyKeywordContains(f.negWords, rule.markers) {
			actions = append(actions, rule.actions...)
		}
	}

	if f.hasTopic && (intent == assistant.IntentActions || intent == assistant.IntentTopics || intent == assistant.IntentSummary) {
		actions = append(actions, topicActions(f.topic)...)
	}
	for _, w := range f.worst {
		actions = append(actions, worstQuestionAction(w))
	}
	if f.hasSpike && (intent == assistant.IntentActions || intent == assistant.IntentSummary) {
		actions = append(actions, fmt.Sprintf(
			"Volume: investigar pico em %s e aplicar ação corretiva rápida; repetir medição em 2 semanas.", f.spike.Bucket))
	}

	if intent == assistant.IntentActions && len(actions) == 0 {
		actions = append(actions, actionPrioritize)
	}
	if intent != assistant.IntentGeneric && len(actions) == 0 {
		actions = append(actions, actionMonitor)
	}
	return actions
}

func topicActions(t assistant.TopicPolarity) []string {
	total := int(t.Neg + t.Neu + t.Pos)
	return []string{
		fmt.Sprintf("Para '%s' (neg=%.1f%%, n=%d): rodar entrevistas curtas com alunos citando exemplos e ajustar processo específico.", t.Topic, t.PNeg, total),
		fmt.Sprintf("Meta: elevar a nota média de '%s' em +1.0 ponto no próximo ciclo, acompanhando semanalmente.", t.Topic),
	}
}

func worstQuestionAction(w assistant.WorstQuestion) string {
	target := math.Min(w.Avg+1.0, 5.0)
	return fmt.Sprintf(
		"Pergunta '%s' (média %.2f, n=%d): abrir plano de ação com dono definido e subir a média para %.1f no próximo ciclo; aplicar pesquisa relâmpago após ajustes.",
		w.Question, w.Avg, w.Total, target)
}

func anyKeywordContains(keywords, markers []string) bool {
	for _, kw := range keywords {
		folded := lexicon.Normalize(kw)
		for _, m := range markers {
			if strings.Contains(folded, lexicon.Normalize(m)) {
				return true
			}
		}
	}
	return false
}
