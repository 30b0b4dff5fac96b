package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Night-sky palette, gruvbox based.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#b8bb26")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the style for a wind-down run status.
func StatusColor(status domain.RunStatus) lipgloss.Style {
	switch status {
	case domain.RunRunning:
		return StyleGreen
	case domain.RunPaused:
		return StyleYellow
	case domain.RunCompleted:
		return StyleBlue
	default:
		return StyleDim
	}
}

// StatusIndicator returns a colored status pill such as "● RUNNING".
func StatusIndicator(status domain.RunStatus) string {
	switch status {
	case domain.RunRunning:
		return StyleGreen.Render("● RUNNING")
	case domain.RunPaused:
		return StyleYellow.Render("○ PAUSED")
	case domain.RunCompleted:
		return StyleBlue.Render("✔ DONE")
	default:
		return StyleDim.Render("○ READY")
	}
}

// EfficiencyStyle colors a sleep-efficiency percentage against the target.
func EfficiencyStyle(pct int) lipgloss.Style {
	switch {
	case pct >= domain.SleepEfficiencyTarget:
		return StyleGreen
	case pct >= domain.SleepEfficiencyTarget-10:
		return StyleYellow
	default:
		return StyleRed
	}
}

// Header renders a section header with the header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
