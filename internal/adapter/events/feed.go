// internal/adapter/events/feed.go

package events

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

// Subscriber is the subset of *nats.Conn the feed needs
type Subscriber interface {
	Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error)
}

// Feed relays every event under the topic to a callback
type Feed struct {
	sub   Subscriber
	topic string
}

// NewFeed creates a feed over the given subscriber
func NewFeed(sub Subscriber, topic string) *Feed {
	return &Feed{
		sub:   sub,
		topic: topic,
	}
}

// Subject returns the wildcard subject covering every published event
func (f *Feed) Subject() string {
	return fmt.Sprintf("%s.>", f.topic)
}

// Subscribe registers handler and returns a function that cancels it
func (f *Feed) Subscribe(handler func(subject string, data []byte)) (func() error, error) {
	s, err := f.sub.Subscribe(f.Subject(), func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", f.Subject(), err)
	}
	return s.Unsubscribe, nil
}
