package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatChatMessage renders a chat bubble. User messages are right-aligned
// within width.
func FormatChatMessage(m domain.ChatMessage, width int) string {
	body := m.Content
	if bubbleWidth := max(width*3/4, 20); lipgloss.Width(body) > bubbleWidth {
		body = lipgloss.NewStyle().Width(bubbleWidth).Render(body)
	}
	stamp := Dim(m.Timestamp.Format("15:04"))

	if m.IsUser() {
		who := StyleBlue.Render("You") + " " + stamp
		block := who + "\n" + body
		if width <= 0 {
			return block
		}
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(block)
	}
	return StylePurple.Render("Coach") + " " + stamp + "\n" + body
}

// FormatConversation renders the whole thread.
func FormatConversation(msgs []domain.ChatMessage, width int) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, FormatChatMessage(m, width))
	}
	return strings.Join(parts, "\n\n")
}

// FormatQuickQuestions renders the numbered quick questions.
func FormatQuickQuestions(qs []string) string {
	var b strings.Builder
	for i, q := range qs {
		fmt.Fprintf(&b, "  %s %s\n", StylePurple.Render(fmt.Sprintf("%d.", i+1)), q)
	}
	return b.String()
}

// FormatCoachReply renders a one-shot reply for the command line.
func FormatCoachReply(m domain.ChatMessage) string {
	return RenderBox("Coach", lipgloss.NewStyle().Width(64).Render(m.Content))
}
