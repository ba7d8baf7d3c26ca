// internal/domain/assistant/service.go

package assistant

import (
	"context"
)

// Service answers analytical questions about aggregated feedback
type Service interface {
	// Answer always returns a well-formed answer, falling back to local heuristics
	Answer(ctx context.Context, req Request) Answer
}

// GenerationParams are the sampling parameters sent with a generation request
type GenerationParams struct {
	Model       string
	Preamble    string
	Temperature float32
	TopP        float32
	JSON        bool
}

// Generator is a remote text generation capability
type Generator interface {
	// Generate returns the text of every candidate the model produced
	Generate(ctx context.Context, prompt string, params GenerationParams) ([]string, error)
}

// EventPublisher receives notifications about produced answers
type EventPublisher interface {
	PublishAnswer(intent Intent, origin Origin) error
}
