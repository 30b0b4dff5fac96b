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

// learnStep is how far one study press advances a module.
const learnStep = 25

type learnLoadedMsg struct {
	statuses []domain.ModuleStatus
	overview domain.LearningOverview
	err      error
}

func (learnLoadedMsg) targetView() ViewID { return ViewLearn }

// learnView lists the learning modules with their progress.
type learnView struct {
	state    *SharedState
	statuses []domain.ModuleStatus
	overview domain.LearningOverview
	cursor   int
	loading  bool
	err      error
}

func newLearnView(state *SharedState) *learnView {
	return &learnView{state: state, loading: true}
}

func (v *learnView) ID() ViewID    { return ViewLearn }
func (v *learnView) Title() string { return "Learn" }

func (v *learnView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", fmt.Sprintf("study +%d%%", learnStep))),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tips")),
	}
}

func (v *learnView) Init() tea.Cmd {
	return v.loadData()
}

func (v *learnView) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx := context.Background()
		statuses, err := app.Learning.List(ctx)
		if err != nil {
			return learnLoadedMsg{err: err}
		}
		overview, err := app.Learning.Overall(ctx)
		if err != nil {
			return learnLoadedMsg{err: err}
		}
		return learnLoadedMsg{statuses: statuses, overview: overview}
	}
}

func (v *learnView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case learnLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.statuses = msg.statuses
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
		case "down", "j":
			if v.cursor < len(v.statuses)-1 {
				v.cursor++
			}
		case "enter":
			if st, ok := v.selected(); ok {
				return v, showOutput(formatter.FormatModule(st))
			}
		case " ", "space":
			if st, ok := v.selected(); ok {
				return v, v.study(st)
			}
		case "x":
			if st, ok := v.selected(); ok {
				return v, v.reset(st.Module.ID)
			}
		case "t":
			return v, showOutput(formatter.FormatTips(v.state.App.Learning.Tips()))
		}
	}
	return v, nil
}

func (v *learnView) selected() (domain.ModuleStatus, bool) {
	if v.cursor < 0 || v.cursor >= len(v.statuses) {
		return domain.ModuleStatus{}, false
	}
	return v.statuses[v.cursor], true
}

func (v *learnView) study(st domain.ModuleStatus) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		_, err := app.Learning.RecordProgress(context.Background(), st.Module.ID, st.Progress.Percent+learnStep)
		if err != nil {
			return errorOutput(err)
		}
		return refreshViewMsg{}
	}
}

func (v *learnView) reset(moduleID int) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		if err := app.Learning.ResetProgress(context.Background(), moduleID); err != nil {
			return errorOutput(err)
		}
		return refreshViewMsg{}
	}
}

func (v *learnView) View() string {
	if v.loading {
		return "\n" + formatter.Dim("Loading modules...")
	}
	if v.err != nil {
		return "\n" + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, st := range v.statuses {
		marker := "  "
		title := formatter.StyleFg.Render(st.Module.Title)
		if i == v.cursor {
			marker = formatter.StylePurple.Render("▸ ")
			title = formatter.Bold(st.Module.Title)
		}
		fmt.Fprintf(&b, "%s%s %-28s %s %3d%%  %s\n",
			marker,
			formatter.Checkmark(st.Progress.Completed()),
			title,
			formatter.RenderCompactBar(st.Progress.Percent, 12, st.Progress.Percent == 0),
			st.Progress.Percent,
			formatter.Dim(formatter.FormatMinutes(st.Module.Minutes)))
	}
	fmt.Fprintf(&b, "\n%s\n", formatter.Dim(fmt.Sprintf("%d of %d modules complete", v.overview.Completed, v.overview.Total)))
	return b.String()
}
