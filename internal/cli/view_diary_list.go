package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/restwell/internal/cli/formatter"
	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// diaryListDays is how far back the diary list reaches.
const diaryListDays = 30

type diaryLoadedMsg struct {
	entries []*domain.DiaryEntry
	summary domain.DiarySummary
	err     error
}

func (diaryLoadedMsg) targetView() ViewID { return ViewDiaryList }

// diaryListView lists recent nights with the weekly summary on top.
type diaryListView struct {
	state   *SharedState
	entries []*domain.DiaryEntry
	summary domain.DiarySummary
	cursor  int
	loading bool
	err     error
}

func newDiaryListView(state *SharedState) *diaryListView {
	return &diaryListView{state: state, loading: true}
}

func (v *diaryListView) ID() ViewID    { return ViewDiaryList }
func (v *diaryListView) Title() string { return "Diary" }

func (v *diaryListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "log night")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "summary")),
	}
}

func (v *diaryListView) Init() tea.Cmd {
	return v.loadData()
}

func (v *diaryListView) loadData() tea.Cmd {
	app := v.state.App
	days := v.state.DiaryDays
	return func() tea.Msg {
		ctx := context.Background()
		entries, err := app.Diary.ListRecent(ctx, diaryListDays)
		if err != nil {
			return diaryLoadedMsg{err: err}
		}
		summary, err := app.Diary.Summary(ctx, days)
		if err != nil {
			return diaryLoadedMsg{err: err}
		}
		return diaryLoadedMsg{entries: entries, summary: summary}
	}
}

func (v *diaryListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case diaryLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.entries = msg.entries
		v.summary = msg.summary
		if v.cursor >= len(v.entries) {
			v.cursor = max(len(v.entries)-1, 0)
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.entries)-1 {
				v.cursor++
			}
		case "n":
			return v, pushView(newDiaryFormView(v.state))
		case "s":
			return v, showOutput(formatter.FormatDiarySummary(v.summary))
		case "enter":
			if e := v.selected(); e != nil {
				return v, showOutput(formatter.FormatDiaryEntry(e))
			}
		case "x", "delete":
			if e := v.selected(); e != nil {
				return v, pushView(newDeleteEntryView(v.state, e))
			}
		}
	}
	return v, nil
}

func (v *diaryListView) selected() *domain.DiaryEntry {
	if v.cursor < 0 || v.cursor >= len(v.entries) {
		return nil
	}
	return v.entries[v.cursor]
}

func (v *diaryListView) View() string {
	if v.loading {
		return "\n" + formatter.Dim("Loading diary...")
	}
	if v.err != nil {
		return "\n" + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString("\n")
	if v.summary.Entries > 0 {
		eff := v.summary.AverageEfficiency
		fmt.Fprintf(&b, "%s %s   %s %.1f\n\n",
			formatter.Dim(fmt.Sprintf("%d-day efficiency", v.summary.Days)),
			formatter.EfficiencyStyle(eff).Render(fmt.Sprintf("%d%%", eff)),
			formatter.Dim("quality"),
			v.summary.AverageQuality)
	}
	if len(v.entries) == 0 {
		b.WriteString(formatter.Dim("No nights logged yet. Press n to log last night.") + "\n")
		return b.String()
	}

	now := v.state.Now()
	for i, e := range v.entries {
		marker := "  "
		if i == v.cursor {
			marker = formatter.StylePurple.Render("▸ ")
		}
		eff := e.SleepEfficiency()
		fmt.Fprintf(&b, "%s%-14s %s-%s  %s  %s\n",
			marker,
			formatter.NightLabel(e.NightOf, now),
			e.BedTime, e.WakeTime,
			formatter.EfficiencyStyle(eff).Render(fmt.Sprintf("%3d%%", eff)),
			formatter.QualityPill(e.Quality))
	}
	return b.String()
}

// newDeleteEntryView asks for confirmation before removing an entry.
func newDeleteEntryView(state *SharedState, e *domain.DiaryEntry) View {
	var confirmed bool
	id := e.ID
	label := e.NightOf.Format("Mon Jan 2")
	form := wizardConfirm(fmt.Sprintf("Delete the entry for %s?", label), &confirmed)
	done := func() tea.Cmd {
		return func() tea.Msg {
			if !confirmed {
				return cmdOutputMsg{output: formatter.Dim("Kept.")}
			}
			if err := state.App.Diary.Delete(context.Background(), id); err != nil {
				return errorOutput(err)
			}
			return successOutput("Deleted " + label)
		}
	}
	return newWizardView(state, "Delete Entry", form, done)
}
