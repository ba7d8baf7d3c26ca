// internal/domain/assistant/model.go

package assistant

import (
	"talkclass/internal/domain/feedback"
)

// Intent is the dominant goal inferred from a question
type Intent string

const (
	IntentGreeting Intent = "saudacao"
	IntentSummary  Intent = "resumo"
	IntentNPS      Intent = "nps"
	IntentKeywords Intent = "keywords"
	IntentTopics   Intent = "topics"
	IntentActions  Intent = "actions"
	IntentGeneric  Intent = "generic"
)

// Focus flags secondary subjects mentioned in a question
type Focus struct {
	Actions  bool
	Trend    bool
	Volume   bool
	NPS      bool
	Negative bool
	Positive bool
	Keywords bool
	Topics   bool
	Alerts   bool
}

// SeriesPoint is one bucket of a satisfaction or volume series
type SeriesPoint struct {
	Bucket string   `json:"bucket"`
	Avg    *float64 `json:"avg,omitempty"`
	Count  *int     `json:"count,omitempty"`
	Total  *int     `json:"total,omitempty"`
}

// TopicPolarity holds the polarity split of one topic
type TopicPolarity struct {
	Topic string  `json:"topic"`
	Neg   float64 `json:"neg"`
	Neu   float64 `json:"neu"`
	Pos   float64 `json:"pos"`
	PNeg  float64 `json:"pneg"`
}

// WorstQuestion is a low-scoring survey question, ranked by the caller
type WorstQuestion struct {
	Question string  `json:"question"`
	Avg      float64 `json:"avg"`
	Total    int     `json:"total"`
}

// Context is the analytics snapshot a question is answered against
type Context struct {
	Filters        map[string]string      `json:"filters"`
	KPIs           map[string]float64     `json:"kpis"`
	Series         []SeriesPoint          `json:"series"`
	Volume         []SeriesPoint          `json:"volume"`
	Topics         []TopicPolarity        `json:"topics"`
	WordsNeg       []feedback.KeywordStat `json:"words_neg"`
	WordsPos       []feedback.KeywordStat `json:"words_pos"`
	WorstQuestions []WorstQuestion        `json:"worst_questions"`
}

// KPI returns a KPI value and whether it was supplied
func (c Context) KPI(name string) (float64, bool) {
	if c.KPIs == nil {
		return 0, false
	}
	v, ok := c.KPIs[name]
	return v, ok
}

// Request is a question about a context
type Request struct {
	Question string  `json:"question"`
	Context  Context `json:"context"`
}

// Answer is the structured reply returned to the caller
type Answer struct {
	Answer      string            `json:"answer"`
	Highlights  []string          `json:"highlights"`
	Suggestions []string          `json:"suggestions"`
	Filters     map[string]string `json:"filters"`
}

// Origin names where an answer was produced
type Origin string

const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "gemini"
)
