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

type homeEntry struct {
	shortcut string
	label    string
	hint     string
	open     func(*SharedState) View
}

var homeEntries = []homeEntry{
	{"w", "Wind-down", "breathing, journaling and a body scan before bed",
		func(s *SharedState) View { return newWindDownView(s) }},
	{"c", "Sleep coach", "ask about sleep schedules, night waking and CBT-I",
		func(s *SharedState) View { return newCoachView(s) }},
	{"d", "Sleep diary", "log last night and watch your sleep efficiency",
		func(s *SharedState) View { return newDiaryListView(s) }},
	{"l", "Learn", "short CBT-I modules and quick tips",
		func(s *SharedState) View { return newLearnView(s) }},
}

// homeLoadedMsg carries the overview shown under the menu.
type homeLoadedMsg struct {
	summary  domain.DiarySummary
	overview domain.LearningOverview
	err      error
}

func (homeLoadedMsg) targetView() ViewID { return ViewHome }

// homeView is the bottom of the view stack: a menu plus tonight's overview.
type homeView struct {
	state    *SharedState
	cursor   int
	loaded   bool
	summary  domain.DiarySummary
	overview domain.LearningOverview
	err      error
}

func newHomeView(state *SharedState) *homeView {
	return &homeView{state: state}
}

func (v *homeView) ID() ViewID    { return ViewHome }
func (v *homeView) Title() string { return "" }

func (v *homeView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("w", "c", "d", "l"), key.WithHelp("w/c/d/l", "jump")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *homeView) Init() tea.Cmd {
	return v.loadData()
}

func (v *homeView) loadData() tea.Cmd {
	app := v.state.App
	days := v.state.DiaryDays
	return func() tea.Msg {
		ctx := context.Background()
		summary, err := app.Diary.Summary(ctx, days)
		if err != nil {
			return homeLoadedMsg{err: err}
		}
		overview, err := app.Learning.Overall(ctx)
		if err != nil {
			return homeLoadedMsg{err: err}
		}
		return homeLoadedMsg{summary: summary, overview: overview}
	}
}

func (v *homeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case homeLoadedMsg:
		v.loaded = true
		v.err = msg.err
		v.summary = msg.summary
		v.overview = msg.overview
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
			return v, nil
		case "down", "j":
			if v.cursor < len(homeEntries)-1 {
				v.cursor++
			}
			return v, nil
		case "enter":
			return v, pushView(homeEntries[v.cursor].open(v.state))
		}
		for i, e := range homeEntries {
			if msg.String() == e.shortcut {
				v.cursor = i
				return v, pushView(e.open(v.state))
			}
		}
	}
	return v, nil
}

func (v *homeView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	for i, e := range homeEntries {
		marker := "  "
		label := formatter.StyleFg.Render(e.label)
		if i == v.cursor {
			marker = formatter.StylePurple.Render("▸ ")
			label = formatter.Bold(e.label)
		}
		fmt.Fprintf(&b, "%s%s %s  %s\n", marker, formatter.Dim("["+e.shortcut+"]"), label, formatter.Dim(e.hint))
	}

	b.WriteString("\n")
	switch {
	case v.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n")
	case !v.loaded:
		b.WriteString(formatter.Dim("Loading...") + "\n")
	default:
		b.WriteString(v.renderOverview())
	}
	return b.String()
}

func (v *homeView) renderOverview() string {
	var b strings.Builder
	if v.summary.Entries == 0 {
		b.WriteString(formatter.Dim("No diary entries this week.") + "\n")
	} else {
		eff := v.summary.AverageEfficiency
		fmt.Fprintf(&b, "%s %s %s\n",
			formatter.Dim(fmt.Sprintf("Sleep efficiency, last %d days:", v.summary.Days)),
			formatter.EfficiencyStyle(eff).Render(fmt.Sprintf("%d%%", eff)),
			formatter.Dim(fmt.Sprintf("(%d nights)", v.summary.Entries)))
	}
	fmt.Fprintf(&b, "%s %d/%d\n", formatter.Dim("Learning modules complete:"), v.overview.Completed, v.overview.Total)
	return b.String()
}
