package domain

import "time"

// ChatMessage is one turn of a coach conversation.
type ChatMessage struct {
	ID        string
	Role      ChatRole
	Content   string
	Timestamp time.Time
}

// IsUser reports whether the message was written by the user.
func (m ChatMessage) IsUser() bool {
	return m.Role == RoleUser
}
