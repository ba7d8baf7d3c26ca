package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talkclass/internal/domain/assistant"
	"talkclass/internal/service/intent"
)

type publishedAnswer struct {
	intent assistant.Intent
	origin assistant.Origin
}

type recordingEvents struct {
	events []publishedAnswer
	err    error
}

func (r *recordingEvents) PublishAnswer(in assistant.Intent, origin assistant.Origin) error {
	r.events = append(r.events, publishedAnswer{intent: in, origin: origin})
	return r.err
}

func newTestService(gen assistant.Generator, events assistant.EventPublisher) *Service {
	classifier := intent.NewClassifier()
	var remote *RemoteProvider
	if gen != nil {
		remote = NewRemoteProvider(gen, time.Second, nil)
	}
	return NewService(classifier, NewSynthesizer(classifier, WithPicker(func(int) int { return 0 })), remote, events, nil)
}

func TestServiceGreetingSkipsRemote(t *testing.T) {
	gen := &fakeGenerator{candidates: []string{`{"summary": "remoto"}`}}
	events := &recordingEvents{}
	svc := newTestService(gen, events)

	got := svc.Answer(context.Background(), assistant.Request{Question: "oi, tudo bem?"})

	assert.Equal(t, 0, gen.calls)
	assert.Equal(t, greetingTemplates[0], got.Answer)
	assert.Equal(t, []publishedAnswer{{intent: assistant.IntentGreeting, origin: assistant.OriginLocal}}, events.events)
}

func TestServiceUsesRemoteAnswer(t *testing.T) {
	gen := &fakeGenerator{candidates: []string{`{"summary": "NPS estável.", "insights": [], "actions": []}`}}
	events := &recordingEvents{}
	svc := newTestService(gen, events)

	got := svc.Answer(context.Background(), assistant.Request{Question: "qual o nps atual?"})

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "📊 NPS estável.\n\n"+ProvenanceRemote, got.Answer)
	assert.Equal(t, []publishedAnswer{{intent: assistant.IntentNPS, origin: assistant.OriginRemote}}, events.events)
}

func TestServiceFallsBackWhenRemoteIsEmpty(t *testing.T) {
	gen := &fakeGenerator{}
	events := &recordingEvents{}
	svc := newTestService(gen, events)

	got := svc.Answer(context.Background(), assistant.Request{
		Question: "qual o nps atual?",
		Context:  assistant.Context{KPIs: map[string]float64{"nps": 42}},
	})

	assert.Equal(t, 1, gen.calls)
	assert.True(t, strings.HasSuffix(got.Answer, ProvenanceLocal))
	assert.Contains(t, got.Answer, "NPS atual: 42.")
	require.Len(t, events.events, 1)
	assert.Equal(t, assistant.OriginLocal, events.events[0].origin)
}

func TestServiceWithoutRemote(t *testing.T) {
	svc := newTestService(nil, nil)

	got := svc.Answer(context.Background(), assistant.Request{Question: "o que fazer para melhorar?"})

	assert.True(t, strings.HasSuffix(got.Answer, ProvenanceLocal))
	assert.Equal(t, []string{actionPrioritize}, got.Highlights)
}

func TestServiceIgnoresPublishErrors(t *testing.T) {
	events := &recordingEvents{err: errors.New("bus down")}
	svc := newTestService(nil, events)

	got := svc.Answer(context.Background(), assistant.Request{Question: "qual o nps atual?"})

	assert.NotEmpty(t, got.Answer)
	assert.Len(t, events.events, 1)
}
