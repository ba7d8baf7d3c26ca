// internal/adapter/events/publisher.go

package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"talkclass/internal/domain/assistant"
)

// Bus is the subset of *nats.Conn the publisher needs
type Bus interface {
	Publish(subject string, data []byte) error
}

// Publisher emits domain events to the message bus
type Publisher struct {
	bus   Bus
	topic string
	now   func() time.Time
}

// AnswerEvent is emitted after every assistant answer
type AnswerEvent struct {
	ID         string    `json:"id"`
	Intent     string    `json:"intent"`
	Origin     string    `json:"origin"`
	OccurredAt time.Time `json:"occurredAt"`
}

// KeywordsEvent is emitted after every keyword aggregation
type KeywordsEvent struct {
	ID         string    `json:"id"`
	Comments   int       `json:"comments"`
	Positive   int       `json:"positive"`
	Negative   int       `json:"negative"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewPublisher creates a new event publisher. A nil bus makes every publish a no-op.
func NewPublisher(bus Bus, topic string) *Publisher {
	return &Publisher{
		bus:   bus,
		topic: topic,
		now:   time.Now,
	}
}

// PublishAnswer publishes an assistant answered event
func (p *Publisher) PublishAnswer(intent assistant.Intent, origin assistant.Origin) error {
	if !p.enabled() {
		return nil
	}
	return p.publish("assistant.answered", AnswerEvent{
		ID:         uuid.New().String(),
		Intent:     string(intent),
		Origin:     string(origin),
		OccurredAt: p.now().UTC(),
	})
}

// PublishKeywords publishes a keywords aggregated event
func (p *Publisher) PublishKeywords(comments, positive, negative int) error {
	if !p.enabled() {
		return nil
	}
	return p.publish("keywords.aggregated", KeywordsEvent{
		ID:         uuid.New().String(),
		Comments:   comments,
		Positive:   positive,
		Negative:   negative,
		OccurredAt: p.now().UTC(),
	})
}

func (p *Publisher) enabled() bool {
	return p != nil && p.bus != nil
}

func (p *Publisher) publish(suffix string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Publish to event bus
	subject := fmt.Sprintf("%s.%s", p.topic, suffix)
	if err := p.bus.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}
