// internal/domain/feedback/analyzer.go

package feedback

import (
	"context"
)

// Aggregator turns comments into ranked keyword statistics
type Aggregator interface {
	// Aggregate scores, buckets and ranks keywords across the comments
	Aggregate(comments []Comment, topN, minFrequency int) KeywordResult
}

// Analyzer produces per-comment sentiment summaries
type Analyzer interface {
	// Analyze returns one analysis per comment, in input order
	Analyze(ctx context.Context, comments []Comment) []Analysis
}

// BatchGenerator asks a remote model to analyze comments in one call
type BatchGenerator interface {
	// AnalyzeBatch returns analyses for the comments it could process
	AnalyzeBatch(ctx context.Context, comments []Comment) ([]Analysis, error)
}

// EventPublisher receives notifications about aggregation runs
type EventPublisher interface {
	PublishKeywords(comments, positive, negative int) error
}
