// internal/domain/feedback/model.go

package feedback

// Comment is a single free-text feedback entry submitted for analysis
type Comment struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Week       string  `json:"week"`
	CategoryID *string `json:"categoryId,omitempty"`
}

// Term is a lexicon entry with its polarity weight in [-1, 1]
type Term struct {
	Term   string
	Weight float64
}

// Bucket identifies the output list a keyword is routed to
type Bucket string

const (
	BucketPositive Bucket = "pos"
	BucketNegative Bucket = "neg"
)

// AggregationKey identifies one (period, category, keyword) cell
type AggregationKey struct {
	Week        string
	CategoryID  string
	HasCategory bool
	Keyword     string
}

// NewAggregationKey builds the key for a comment and a matched keyword
func NewAggregationKey(c Comment, keyword string) AggregationKey {
	key := AggregationKey{Week: c.Week, Keyword: keyword}
	if c.CategoryID != nil {
		key.CategoryID = *c.CategoryID
		key.HasCategory = true
	}
	return key
}

// Category returns the category pointer used in the output stat
func (k AggregationKey) Category() *string {
	if !k.HasCategory {
		return nil
	}
	id := k.CategoryID
	return &id
}

// AggregationCell accumulates matches for one key
type AggregationCell struct {
	Count    int
	ScoreSum float64
}

// Add records one weighted match
func (c *AggregationCell) Add(weight float64) {
	c.Count++
	c.ScoreSum += weight
}

// Average returns ScoreSum/Count, or 0 for an empty cell
func (c AggregationCell) Average() float64 {
	if c.Count == 0 {
		return 0
	}
	return c.ScoreSum / float64(c.Count)
}

// KeywordStat is an aggregated keyword for a week and optional category
type KeywordStat struct {
	Week       string  `json:"week"`
	CategoryID *string `json:"categoryId"`
	Keyword    string  `json:"keyword"`
	Total      int     `json:"total"`
	Score      float64 `json:"score"`
}

// Bucket routes the stat by the strict sign of its average score
func (s KeywordStat) Bucket() Bucket {
	if s.Score > 0 {
		return BucketPositive
	}
	return BucketNegative
}

// KeywordResult holds the ranked positive and negative keyword lists
type KeywordResult struct {
	Pos []KeywordStat `json:"pos"`
	Neg []KeywordStat `json:"neg"`
}

// Sentiment labels used by per-comment analysis
const (
	SentimentPositive = "pos"
	SentimentNeutral  = "neu"
	SentimentNegative = "neg"
)

// Analysis is the per-comment sentiment and keyword summary
type Analysis struct {
	ID        string   `json:"id"`
	Sentiment string   `json:"sentiment"`
	Score01   float64  `json:"score01"`
	Keywords  []string `json:"keywords"`
	Summary   *string  `json:"summary,omitempty"`
}
