package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/restwell/internal/coach"
	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCoachService(t *testing.T, delay time.Duration) (CoachService, *recordingObserver) {
	t.Helper()
	script, err := coach.DefaultScript()
	require.NoError(t, err)
	obs := &recordingObserver{}
	return NewCoachService(coach.New(script), delay, obs), obs
}

func TestCoachAsk_ImmediateReply(t *testing.T) {
	svc, obs := newCoachService(t, 0)

	reply, err := svc.Ask(context.Background(), "Should I change my bedtime?")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAssistant, reply.Role)
	assert.Contains(t, reply.Content, "Sleep window optimization")

	ev := obs.last()
	assert.Equal(t, "coach-ask", ev.Name)
	assert.Equal(t, "sleep_window", ev.Fields["rule"])
	assert.True(t, ev.Success)
}

func TestCoachAsk_WaitsForDelay(t *testing.T) {
	svc, _ := newCoachService(t, 30*time.Millisecond)

	start := time.Now()
	_, err := svc.Ask(context.Background(), "hello")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestCoachAsk_Cancelled(t *testing.T) {
	svc, obs := newCoachService(t, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Ask(ctx, "Why do I wake up at 3am?")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, obs.last().Success)
}

func TestCoachAsk_Empty(t *testing.T) {
	svc, _ := newCoachService(t, 0)
	_, err := svc.Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
}

func TestCoachService_Conversation(t *testing.T) {
	svc, _ := newCoachService(t, 1200*time.Millisecond)
	assert.Equal(t, 1200*time.Millisecond, svc.TypingDelay())
	assert.Len(t, svc.QuickQuestions(), 4)

	conv := svc.NewConversation()
	assert.Len(t, conv.Messages(), 1)
	assert.Len(t, conv.QuickQuestions(), 4)
}

func TestNewCoachService_NegativeDelayClamped(t *testing.T) {
	svc, _ := newCoachService(t, -time.Second)
	assert.Equal(t, time.Duration(0), svc.TypingDelay())
}
