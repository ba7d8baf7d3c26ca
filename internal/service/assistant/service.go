// internal/service/assistant/service.go

package assistant

import (
	"context"
	"log/slog"

	"talkclass/internal/domain/assistant"
	"talkclass/internal/service/intent"
)

// Service implements assistant.Service
type Service struct {
	classifier  *intent.Classifier
	synthesizer *Synthesizer
	remote      *RemoteProvider
	events      assistant.EventPublisher
	logger      *slog.Logger
}

// NewService wires the classifier, the local synthesizer and the optional
// remote provider. remote and events may be nil.
func NewService(
	classifier *intent.Classifier,
	synthesizer *Synthesizer,
	remote *RemoteProvider,
	events assistant.EventPublisher,
	logger *slog.Logger,
) *Service {
	if classifier == nil {
		classifier = intent.NewClassifier()
	}
	if synthesizer == nil {
		synthesizer = NewSynthesizer(classifier)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		classifier:  classifier,
		synthesizer: synthesizer,
		remote:      remote,
		events:      events,
		logger:      logger,
	}
}

// Answer classifies the question, tries the remote provider and falls
// back to the local synthesizer. Greetings never reach the remote model.
func (s *Service) Answer(ctx context.Context, req assistant.Request) assistant.Answer {
	in := s.classifier.InferIntent(req.Question)

	if in == assistant.IntentGreeting {
		s.publish(in, assistant.OriginLocal)
		return s.synthesizer.Greeting(req.Context)
	}

	if s.remote.Enabled() {
		if answer, ok := s.remote.Answer(ctx, req.Question, in, req.Context); ok {
			s.publish(in, assistant.OriginRemote)
			return answer
		}
	}

	answer := s.synthesizer.Synthesize(in, req.Question, req.Context)
	s.publish(in, assistant.OriginLocal)
	return answer
}

func (s *Service) publish(in assistant.Intent, origin assistant.Origin) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishAnswer(in, origin); err != nil {
		s.logger.Warn("failed to publish answer event", "intent", in, "origin", origin, "error", err)
	}
}
