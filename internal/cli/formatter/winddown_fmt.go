package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/alexanderramin/restwell/internal/winddown"
)

const windDownBarWidth = 24

// FormatActivities renders the activity catalog as a table.
func FormatActivities(acts []domain.Activity) string {
	headers := []string{"#", "KEY", "NAME", "LENGTH", "ABOUT"}
	rows := make([][]string, 0, len(acts))
	for i, a := range acts {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", i+1)),
			StylePurple.Render(string(a.Key)),
			Bold(a.Name),
			domain.FormatClock(a.DurationSeconds),
			Dim(a.Description),
		})
	}
	return RenderTable(headers, rows)
}

// FormatProgressLine renders one headless progress line for a snapshot.
func FormatProgressLine(s winddown.Snapshot) string {
	line := fmt.Sprintf("%-18s %5s  %s",
		s.Activity.Name, s.Clock, RenderProgress(s.ProgressPercent, windDownBarWidth))
	if s.Breathing && s.Running {
		line += fmt.Sprintf("  %s %s", StylePurple.Render(s.PhaseLabel), Dim(fmt.Sprintf("(%d)", s.PhaseSeconds)))
	}
	return line
}

// FormatCompletion announces a finished activity and the overall tally.
func FormatCompletion(s winddown.Snapshot) string {
	msg := fmt.Sprintf("%s %s complete  %s",
		StyleGreen.Render("✔"),
		Bold(s.Activity.Name),
		Dim(fmt.Sprintf("(%d/%d)", len(s.Completed), len(domain.ActivityKeys()))))
	if s.FullyComplete {
		msg += "\n" + StyleGreen.Render("Wind-down complete. Sleep well.")
	}
	return msg
}

// FormatActivityTabs renders the activity selector with completion marks.
func FormatActivityTabs(s winddown.Snapshot) string {
	tabs := make([]string, 0, 3)
	for i, a := range domain.Activities() {
		label := fmt.Sprintf("%d %s", i+1, a.Label)
		if s.IsCompleted(a.Key) {
			label += " ✔"
		}
		if a.Key == s.Activity.Key {
			tabs = append(tabs, StyleHeader.Render("["+label+"]"))
		} else {
			tabs = append(tabs, Dim(" "+label+" "))
		}
	}
	return strings.Join(tabs, "  ")
}

// FormatBreathingRing draws the breathing guide. The ring grows on the
// inhale and shrinks on the exhale.
func FormatBreathingRing(s winddown.Snapshot) string {
	width := 13
	switch {
	case s.Scale > 1.0:
		width = 17
	case s.Scale < 1.0:
		width = 9
	}
	inner := fmt.Sprintf("%s %d", s.PhaseLabel, s.PhaseSeconds)
	if !s.Running {
		inner = "Ready"
	}
	bar := strings.Repeat("─", width)
	pad := max((width-len(inner))/2, 0)
	mid := strings.Repeat(" ", pad) + inner + strings.Repeat(" ", max(width-pad-len(inner), 0))
	ring := []string{
		"╭" + bar + "╮",
		"│" + mid + "│",
		"╰" + bar + "╯",
	}
	return StylePurple.Render(strings.Join(ring, "\n"))
}

// FormatWindDown renders the full wind-down panel.
func FormatWindDown(s winddown.Snapshot) string {
	var b strings.Builder
	b.WriteString(FormatActivityTabs(s))
	b.WriteString("\n\n")
	b.WriteString(Bold(s.Activity.Name) + "  " + StatusIndicator(s.Status) + "\n")
	b.WriteString(Dim(s.Activity.Description) + "\n\n")

	if s.Breathing {
		b.WriteString(FormatBreathingRing(s) + "\n\n")
	} else {
		b.WriteString(s.Activity.Guide + "\n\n")
	}

	b.WriteString(StatusColor(s.Status).Render(s.Clock) + "  ")
	b.WriteString(RenderProgress(s.ProgressPercent, windDownBarWidth) + "\n")

	switch {
	case s.FullyComplete:
		b.WriteString("\n" + StyleGreen.Render("All activities complete. Sleep well."))
	case s.Status == domain.RunCompleted:
		b.WriteString("\n" + Dim("Done. Press r to repeat or pick another activity."))
	}
	return b.String()
}
