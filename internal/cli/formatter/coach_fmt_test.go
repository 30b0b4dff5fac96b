package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatConversation(t *testing.T) {
	at := time.Date(2025, 6, 16, 22, 5, 0, 0, time.UTC)
	msgs := []domain.ChatMessage{
		{ID: "1", Role: domain.RoleAssistant, Content: "Hello, how did you sleep?", Timestamp: at},
		{ID: "2", Role: domain.RoleUser, Content: "Badly", Timestamp: at.Add(time.Minute)},
	}
	out := stripANSI(FormatConversation(msgs, 60))
	assert.Contains(t, out, "Coach 22:05")
	assert.Contains(t, out, "You 22:06")
	assert.Contains(t, out, "Badly")
}

func TestFormatQuickQuestions(t *testing.T) {
	out := stripANSI(FormatQuickQuestions([]string{"first?", "second?"}))
	assert.Contains(t, out, "1. first?")
	assert.Contains(t, out, "2. second?")
}

func TestFormatCoachReply(t *testing.T) {
	out := stripANSI(FormatCoachReply(domain.ChatMessage{Role: domain.RoleAssistant, Content: "Keep a fixed wake time."}))
	assert.Contains(t, out, "COACH")
	assert.Contains(t, out, "Keep a fixed wake time.")
}
