package service

import (
	"context"
	"time"

	"github.com/alexanderramin/restwell/internal/coach"
	"github.com/alexanderramin/restwell/internal/domain"
)

type coachService struct {
	coach    *coach.Coach
	delay    time.Duration
	observer UseCaseObserver
}

// NewCoachService answers through c after delay. A zero delay replies
// immediately.
func NewCoachService(c *coach.Coach, delay time.Duration, observers ...UseCaseObserver) CoachService {
	if delay < 0 {
		delay = 0
	}
	return &coachService{
		coach:    c,
		delay:    delay,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *coachService) NewConversation() *coach.Conversation {
	return coach.NewConversation(s.coach)
}

func (s *coachService) QuickQuestions() []string {
	return s.coach.QuickQuestions()
}

func (s *coachService) TypingDelay() time.Duration {
	return s.delay
}

func (s *coachService) Ask(ctx context.Context, question string) (reply domain.ChatMessage, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "coach-ask",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	conv := s.NewConversation()
	var sent domain.ChatMessage
	sent, err = conv.Send(question)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	fields["rule"], _ = s.coach.Match(sent.Content)

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return domain.ChatMessage{}, err
		case <-timer.C:
		}
	}
	return conv.Deliver()
}
