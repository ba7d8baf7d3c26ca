// internal/service/assistant/format.go

package assistant

import (
	"fmt"
	"hash/fnv"
	"strings"

	"talkclass/internal/domain/assistant"
)

const (
	// ProvenanceLocal marks answers built by the local heuristics
	ProvenanceLocal = "[Origem: Fallback local]"
	// ProvenanceRemote marks answers produced by the remote model
	ProvenanceRemote = "[Origem: Gemini]"
)

var bulletCycle = []string{"•", "◦", "▪"}

var summaryGlyphs = map[assistant.Intent]string{
	assistant.IntentNPS:      "📊",
	assistant.IntentTopics:   "📌",
	assistant.IntentKeywords: "🗂️",
	assistant.IntentActions:  "🧭",
	assistant.IntentSummary:  "📈",
	assistant.IntentGeneric:  "💬",
}

// VariantIndex maps text to [0, n) with 32-bit FNV-1a over its UTF-8 bytes,
// so the same question always picks the same template
func VariantIndex(text string, n int) int {
	if n <= 0 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(text))
	return int(h.Sum32() % uint32(n))
}

// ChooseVariant picks one of options by VariantIndex
func ChooseVariant(options []string, seed string) string {
	if len(options) == 0 {
		return ""
	}
	return options[VariantIndex(seed, len(options))]
}

// FormatAnswer lays out the summary, insight and action blocks. Empty
// blocks are omitted.
func FormatAnswer(summary string, insights, actions []string, intent assistant.Intent) string {
	glyph, ok := summaryGlyphs[intent]
	if !ok {
		glyph = summaryGlyphs[assistant.IntentGeneric]
	}

	var lines []string
	if summary != "" {
		lines = append(lines, fmt.Sprintf("%s %s", glyph, summary))
	}
	if len(insights) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "🔎 Insights:")
		lines = append(lines, withBullets(insights, true)...)
	}
	if len(actions) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "🛠️ Próximas ações:")
		lines = append(lines, withBullets(actions, false)...)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func withBullets(items []string, bold bool) []string {
	out := make([]string, len(items))
	for i, it := range items {
		if bold {
			it = "**" + it + "**"
		}
		out[i] = bulletCycle[i%len(bulletCycle)] + " " + it
	}
	return out
}

// withProvenance appends the origin marker on its own paragraph
func withProvenance(body, marker string) string {
	if body == "" {
		return marker
	}
	return body + "\n\n" + marker
}
