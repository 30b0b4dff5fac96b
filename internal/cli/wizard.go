package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/restwell/internal/cli/formatter"
	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const dateLayout = "2006-01-02"

// restwellHuhTheme returns a huh theme using the formatter palette.
func restwellHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorPurple).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorPurple)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorPurple).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorPurple)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorPurple)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// parseNonNegativeInt parses s, returning fallback for empty or invalid input.
// Callers run it after huh validation has accepted s.
func parseNonNegativeInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

// validateNonNegativeInt accepts empty or a non-negative integer.
func validateNonNegativeInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

// validateClockTime accepts H:MM or HH:MM.
func validateClockTime(s string) error {
	if _, err := domain.ParseClockTime(s); err != nil {
		return fmt.Errorf("use HH:MM")
	}
	return nil
}

// validateDate accepts a YYYY-MM-DD date.
func validateDate(s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// qualityOptions lists the 0..4 sleep quality scale for selects.
func qualityOptions() []huh.Option[domain.SleepQuality] {
	opts := make([]huh.Option[domain.SleepQuality], 0, 5)
	for q := domain.QualityPoor; q <= domain.QualityExcellent; q++ {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%d %s", q, q.Label()), q))
	}
	return opts
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(restwellHuhTheme()).WithShowHelp(false)
}
