// internal/service/intent/classifier.go

// Package intent maps free-text questions to a fixed set of intents using
// substring triggers over the folded question.
package intent

import (
	"strings"

	"talkclass/internal/domain/assistant"
	"talkclass/internal/service/lexicon"
)

// maxGreetingTokens is the longest question still checked for a greeting by containment
const maxGreetingTokens = 4

// Classifier holds the folded trigger tables
type Classifier struct {
	greetings []string
	exact     map[string]bool
	groups    []TriggerGroup
	focus     focusTriggers
}

var defaultClassifier = NewClassifier()

// NewClassifier builds a classifier from the built-in trigger tables
func NewClassifier() *Classifier {
	c := &Classifier{
		exact: make(map[string]bool),
		focus: focusTriggers{
			actions:  foldAll(defaultFocusTriggers.actions),
			trend:    foldAll(defaultFocusTriggers.trend),
			volume:   foldAll(defaultFocusTriggers.volume),
			nps:      foldAll(defaultFocusTriggers.nps),
			negative: foldAll(defaultFocusTriggers.negative),
			positive: foldAll(defaultFocusTriggers.positive),
			keywords: foldAll(defaultFocusTriggers.keywords),
			topics:   foldAll(defaultFocusTriggers.topics),
			alerts:   foldAll(defaultFocusTriggers.alerts),
		},
	}

	c.greetings = foldAll(defaultGreetings)
	for _, g := range c.greetings {
		c.exact[g] = true
	}

	c.groups = make([]TriggerGroup, 0, len(defaultIntentGroups))
	for _, g := range defaultIntentGroups {
		c.groups = append(c.groups, TriggerGroup{Intent: g.Intent, Triggers: foldAll(g.Triggers)})
	}
	return c
}

// IsGreeting reports whether the question is only a salutation
func (c *Classifier) IsGreeting(question string) bool {
	q := lexicon.Normalize(question)
	if q == "" {
		return false
	}

	stripped := strings.TrimSpace(strings.NewReplacer("?", "", "!", "").Replace(q))
	if c.exact[stripped] {
		return true
	}
	if len(strings.Fields(stripped)) > maxGreetingTokens {
		return false
	}
	return containsAny(stripped, c.greetings)
}

// InferIntent returns the dominant intent of a question
func (c *Classifier) InferIntent(question string) assistant.Intent {
	if c.IsGreeting(question) {
		return assistant.IntentGreeting
	}

	q := lexicon.Normalize(question)
	for _, g := range c.groups {
		if containsAny(q, g.Triggers) {
			return g.Intent
		}
	}
	return assistant.IntentGeneric
}

// DetectFocus flags secondary subjects. It never changes the primary intent.
func (c *Classifier) DetectFocus(question string) assistant.Focus {
	q := lexicon.Normalize(question)
	return assistant.Focus{
		Actions:  containsAny(q, c.focus.actions),
		Trend:    containsAny(q, c.focus.trend),
		Volume:   containsAny(q, c.focus.volume),
		NPS:      containsAny(q, c.focus.nps),
		Negative: containsAny(q, c.focus.negative),
		Positive: containsAny(q, c.focus.positive),
		Keywords: containsAny(q, c.focus.keywords),
		Topics:   containsAny(q, c.focus.topics),
		Alerts:   containsAny(q, c.focus.alerts),
	}
}

// IsGreeting uses the built-in tables
func IsGreeting(question string) bool {
	return defaultClassifier.IsGreeting(question)
}

// InferIntent uses the built-in tables
func InferIntent(question string) assistant.Intent {
	return defaultClassifier.InferIntent(question)
}

// DetectFocus uses the built-in tables
func DetectFocus(question string) assistant.Focus {
	return defaultClassifier.DetectFocus(question)
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

// foldAll normalizes and deduplicates trigger phrases, keeping order
func foldAll(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		n := lexicon.Normalize(t)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
