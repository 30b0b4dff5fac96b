package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/restwell/internal/domain"
)

// FormatDiaryList renders diary entries newest first.
func FormatDiaryList(entries []*domain.DiaryEntry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No diary entries yet. Log one with: restwell diary log") + "\n"
	}
	headers := []string{"ID", "NIGHT", "IN BED", "ASLEEP", "EFFICIENCY", "QUALITY"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		eff := e.SleepEfficiency()
		rows = append(rows, []string{
			TruncID(e.ID),
			NightLabel(e.NightOf, now),
			fmt.Sprintf("%s-%s", e.BedTime, e.WakeTime),
			FormatMinutes(e.SleepMinutes()),
			EfficiencyStyle(eff).Render(fmt.Sprintf("%d%%", eff)),
			QualityPill(e.Quality),
		})
	}
	return RenderTable(headers, rows)
}

// FormatDiaryEntry renders one entry in detail.
func FormatDiaryEntry(e *domain.DiaryEntry) string {
	var b strings.Builder
	eff := e.SleepEfficiency()
	fmt.Fprintf(&b, "%s %s\n", Dim("Night of"), Bold(e.NightOf.Format("Monday, Jan 2 2006")))
	fmt.Fprintf(&b, "%s %s   %s %s\n", Dim("Bed"), e.BedTime, Dim("Asleep"), e.SleepTime)
	fmt.Fprintf(&b, "%s %s   %s %s\n", Dim("Wake"), e.WakeTime, Dim("Out of bed"), e.OutOfBedTime)
	fmt.Fprintf(&b, "%s %d   %s %s\n", Dim("Wakeups"), e.NightWakeups, Dim("Awake"), FormatMinutes(e.WakeMinutes))
	fmt.Fprintf(&b, "%s %s\n", Dim("Quality"), QualityPill(e.Quality))
	fmt.Fprintf(&b, "\n%s %s  %s\n",
		Dim("Sleep efficiency"),
		EfficiencyStyle(eff).Render(fmt.Sprintf("%d%%", eff)),
		Dim(fmt.Sprintf("(%s asleep of %s in bed)", FormatMinutes(e.SleepMinutes()), FormatMinutes(e.TimeInBedMinutes()))))
	if e.Note != "" {
		fmt.Fprintf(&b, "\n%s\n", e.Note)
	}
	return RenderBox("Sleep Diary", b.String())
}

// FormatDiarySummary renders the averages over a window.
func FormatDiarySummary(s domain.DiarySummary) string {
	var b strings.Builder
	if s.Entries == 0 {
		fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("No entries in the last %d days.", s.Days)))
		return RenderBox("Summary", b.String())
	}
	fmt.Fprintf(&b, "%s %d %s\n", Dim("Entries"), s.Entries, Dim(fmt.Sprintf("in the last %d days", s.Days)))
	fmt.Fprintf(&b, "%s %s\n", Dim("Average efficiency"),
		EfficiencyStyle(s.AverageEfficiency).Render(fmt.Sprintf("%d%%", s.AverageEfficiency)))
	fmt.Fprintf(&b, "%s %.1f / 4\n", Dim("Average quality"), s.AverageQuality)
	if s.MeetsTarget {
		fmt.Fprintf(&b, "\n%s\n", StyleGreen.Render(fmt.Sprintf("On target (≥%d%%).", domain.SleepEfficiencyTarget)))
	} else {
		fmt.Fprintf(&b, "\n%s\n", StyleYellow.Render(fmt.Sprintf("Below the %d%% target.", domain.SleepEfficiencyTarget)))
	}
	return RenderBox("Summary", b.String())
}
