// internal/service/intent/triggers.go

package intent

import (
	"talkclass/internal/domain/assistant"
)

// TriggerGroup ties an intent to the substrings that select it
type TriggerGroup struct {
	Intent   assistant.Intent
	Triggers []string
}

var (
	defaultGreetings = []string{
		"oi", "ola", "olá", "eai", "e aí", "opa", "fala", "bom dia",
		"boa tarde", "boa noite", "tudo bem", "tudo bom", "td bem",
		"boa noite, tudo bem", "boa tarde, tudo bem", "bom dia, tudo bem",
	}

	// checked in this order; the first group with a hit wins
	defaultIntentGroups = []TriggerGroup{
		{Intent: assistant.IntentSummary, Triggers: []string{
			"resumo", "geral", "panorama", "visao", "visão geral", "últimos", "ultimos", "30 dias",
		}},
		{Intent: assistant.IntentNPS, Triggers: []string{
			"nps", "satisfacao", "satisfação", "nota", "promoter", "score",
		}},
		{Intent: assistant.IntentKeywords, Triggers: []string{
			"palavra", "keyword", "termo", "nuvem", "heatmap", "coment", "texto",
		}},
		{Intent: assistant.IntentTopics, Triggers: []string{
			"categoria", "topico", "tópico", "pergunta", "questao", "questão", "area", "área",
		}},
		{Intent: assistant.IntentActions, Triggers: []string{
			"acao", "ação", "plano", "prioridade", "resolver", "melhorar", "recomendacao",
			"recomendação", "o que fazer", "como corrigir", "planos de ação",
		}},
	}

	defaultFocusTriggers = focusTriggers{
		actions:  []string{"ação", "acoes", "melhorar", "plano", "fazer", "recomenda"},
		trend:    []string{"tend", "evolu", "melhorou", "piorou", "vari"},
		volume:   []string{"volume", "quant", "qtd", "número", "numero"},
		nps:      []string{"nps", "promoter"},
		negative: []string{"pior", "ruim", "crítico", "critico", "negat"},
		positive: []string{"melhor", "bom", "positivo", "elogio"},
		keywords: []string{"palavra", "keyword", "termo", "palavras"},
		topics:   []string{"categoria", "área", "area", "tópico", "topico", "pergunta", "questão", "questao"},
		alerts:   []string{"alerta", "risco", "evas", "crítico", "critico"},
	}
)

type focusTriggers struct {
	actions  []string
	trend    []string
	volume   []string
	nps      []string
	negative []string
	positive []string
	keywords []string
	topics   []string
	alerts   []string
}
