package coach

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/google/uuid"
)

// ErrNothingPending is returned by Deliver when no user message awaits a
// reply.
var ErrNothingPending = errors.New("no coach reply pending")

// Conversation is one chat thread with the coach. It opens with the
// greeting and alternates user messages with scripted replies. Send marks
// the thread as typing until Deliver posts the answer; the caller owns the
// delay in between.
type Conversation struct {
	mu       sync.Mutex
	coach    *Coach
	now      func() time.Time
	messages []domain.ChatMessage
	pending  string
	typing   bool
}

// ConversationOption configures a Conversation.
type ConversationOption func(*Conversation)

// WithNow overrides the timestamp source.
func WithNow(now func() time.Time) ConversationOption {
	return func(c *Conversation) {
		if now != nil {
			c.now = now
		}
	}
}

// NewConversation starts a thread holding only the greeting.
func NewConversation(coach *Coach, opts ...ConversationOption) *Conversation {
	c := &Conversation{coach: coach, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.messages = append(c.messages, c.newMessage(domain.RoleAssistant, coach.Greeting()))
	return c
}

// Messages returns a copy of the thread in order.
func (c *Conversation) Messages() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Typing reports whether a reply is pending.
func (c *Conversation) Typing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typing
}

// QuickQuestions are offered only before the user has said anything.
func (c *Conversation) QuickQuestions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) > 1 {
		return nil
	}
	return c.coach.QuickQuestions()
}

// Send appends a user message and marks the coach as typing.
func (c *Conversation) Send(text string) (domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, domain.ErrEmptyMessage
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.typing {
		return domain.ChatMessage{}, domain.ErrCoachBusy
	}
	msg := c.newMessage(domain.RoleUser, text)
	c.messages = append(c.messages, msg)
	c.pending = text
	c.typing = true
	return msg, nil
}

// Deliver appends the scripted answer to the pending message and clears
// the typing flag.
func (c *Conversation) Deliver() (domain.ChatMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.typing {
		return domain.ChatMessage{}, ErrNothingPending
	}
	msg := c.newMessage(domain.RoleAssistant, c.coach.Reply(c.pending))
	c.messages = append(c.messages, msg)
	c.pending = ""
	c.typing = false
	return msg, nil
}

func (c *Conversation) newMessage(role domain.ChatRole, content string) domain.ChatMessage {
	return domain.ChatMessage{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: c.now(),
	}
}
