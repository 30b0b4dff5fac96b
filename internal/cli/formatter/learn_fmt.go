package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/restwell/internal/domain"
)

const learnBarWidth = 12

// FormatModules renders the learning catalog with progress.
func FormatModules(statuses []domain.ModuleStatus, ov domain.LearningOverview) string {
	var b strings.Builder
	headers := []string{"#", "MODULE", "LENGTH", "PROGRESS", ""}
	rows := make([][]string, 0, len(statuses))
	for _, st := range statuses {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", st.Module.ID)),
			Bold(st.Module.Title),
			FormatMinutes(st.Module.Minutes),
			RenderCompactBar(st.Progress.Percent, learnBarWidth, st.Progress.Percent == 0) +
				fmt.Sprintf(" %3d%%", st.Progress.Percent),
			Checkmark(st.Progress.Completed()),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("%d of %d modules complete", ov.Completed, ov.Total)))
	return b.String()
}

// FormatModule renders one module in detail.
func FormatModule(st domain.ModuleStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", Bold(st.Module.Title), Dim(st.Module.Description))
	for _, topic := range st.Module.Topics {
		fmt.Fprintf(&b, "  • %s\n", topic)
	}
	fmt.Fprintf(&b, "\n%s %s\n", Dim(FormatMinutes(st.Module.Minutes)), RenderProgress(st.Progress.Percent, learnBarWidth))
	if st.Progress.Completed() {
		fmt.Fprintf(&b, "%s\n", StyleGreen.Render("✔ Completed "+st.Progress.CompletedAt.Format("Jan 2")))
	}
	return RenderBox(fmt.Sprintf("Module %d", st.Module.ID), b.String())
}

// FormatTips renders the quick tips in catalog order.
func FormatTips(tips []domain.QuickTip) string {
	var b strings.Builder
	for _, t := range tips {
		fmt.Fprintf(&b, "%s %s\n  %s\n\n", StylePurple.Render("["+t.Category+"]"), Bold(t.Title), t.Description)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
