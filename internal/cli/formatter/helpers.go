package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// NightLabel names a diary night relative to now: "Last night",
// "2 nights ago", or a calendar date once it is a week old.
func NightLabel(night, now time.Time) string {
	today := domain.TruncateToDate(now)
	days := int(today.Sub(domain.TruncateToDate(night)).Hours() / 24)
	switch {
	case days == 0:
		return "Tonight"
	case days == 1:
		return "Last night"
	case days > 1 && days < 7:
		return fmt.Sprintf("%d nights ago", days)
	default:
		return night.Format("Mon Jan 2")
	}
}

// QualityPill renders a sleep-quality rating with its label.
func QualityPill(q domain.SleepQuality) string {
	if !q.Valid() {
		return StyleDim.Render(q.Label())
	}
	dots := strings.Repeat("●", int(q)+1) + strings.Repeat("○", int(domain.QualityExcellent-q))
	style := StyleYellow
	switch {
	case q >= domain.QualityVeryGood:
		style = StyleGreen
	case q <= domain.QualityPoor:
		style = StyleRed
	}
	return style.Render(dots) + " " + q.Label()
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// Checkmark renders a green tick for done and a dim circle otherwise.
func Checkmark(done bool) string {
	if done {
		return StyleGreen.Render("✔")
	}
	return StyleDim.Render("○")
}
