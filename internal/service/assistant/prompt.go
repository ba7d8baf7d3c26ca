// internal/service/assistant/prompt.go

package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"talkclass/internal/domain/assistant"
)

// IntentHint returns the focus instruction for an intent
func IntentHint(in assistant.Intent) string {
	if hint, ok := intentHints[in]; ok {
		return hint
	}
	return genericHint
}

// BuildPrompt renders the instruction block and the JSON snapshot
func BuildPrompt(question string, in assistant.Intent, c assistant.Context) (string, error) {
	var data bytes.Buffer
	enc := json.NewEncoder(&data)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(BuildSnapshot(question, in, c)); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	label := strings.ToUpper(string(in))
	var b strings.Builder
	b.WriteString("Você é um assistente de dados do TalkClass. Responda em português do Brasil, tom de consultor educacional. ")
	b.WriteString("Use SOMENTE os dados do JSON fornecido (não invente nenhum número). ")
	fmt.Fprintf(&b, "Intenção inferida: %s. %s ", label, IntentHint(in))
	b.WriteString("Retorne APENAS um JSON válido com este formato:\n")
	b.WriteString(`{"summary": "frase curta (1-2) contextualizada com números", "insights": ["bullet 1", "bullet 2", "..."], "actions": ["ação 1", "ação 2", "..."]}` + "\n")
	b.WriteString("Regras:\n")
	b.WriteString("- summary deve mencionar métricas relevantes (NPS, tendência, volume) se existirem; se não houver dados, diga isso de forma concisa.\n")
	b.WriteString("- insights: 2 a 5 frases curtas com números (percentual negativo, volume, palavra mais citada, etc.). Varie redação, evite repetir sempre as mesmas frases.\n")
	b.WriteString("- actions: 2 a 4 recomendações práticas conectadas aos dados. Se faltarem dados, sugira coletar/filtrar melhor.\n")
	b.WriteString("- Para intent ACTIONS: gere ações específicas por tópico/pergunta/palavra negativa. Cada ação deve incluir o que fazer, onde (área ou tópico), prazo sugerido e indicador de sucesso (ex.: subir média de X para Y, reduzir negativos em %). Evite frases genéricas como 'revisar' ou 'melhorar' sem detalhar.\n")
	b.WriteString("- Para intent GENÉRICO sem dados fortes, peça que o usuário escolha foco (NPS, tópicos, palavras) em vez de inventar métricas.\n")
	b.WriteString("- Adapte o tom e o conteúdo ao intent: RESUMO/NPS/TOPICS/KEYWORDS/ACTIONS.\n")
	b.WriteString("- Nunca adicione texto fora do JSON. Não crie campos extras.\n")
	b.WriteString("Dados de contexto (JSON): ")
	b.WriteString(strings.TrimSpace(data.String()))
	return b.String(), nil
}
