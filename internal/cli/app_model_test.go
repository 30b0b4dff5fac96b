package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubView struct {
	id         ViewID
	title      string
	viewText   string
	shortHelp  []key.Binding
	initCmd    tea.Cmd
	updateCmd  tea.Cmd
	updateSeen []tea.Msg
	closed     int
}

func (v *stubView) Init() tea.Cmd { return v.initCmd }

func (v *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.updateSeen = append(v.updateSeen, msg)
	return v, v.updateCmd
}

func (v *stubView) View() string             { return v.viewText }
func (v *stubView) ID() ViewID               { return v.id }
func (v *stubView) ShortHelp() []key.Binding { return v.shortHelp }
func (v *stubView) Title() string            { return v.title }
func newStubView(id ViewID, title, text string) *stubView {
	return &stubView{id: id, title: title, viewText: text}
}

// closingStubView also owns resources released on pop.
type closingStubView struct{ *stubView }

func (v closingStubView) Close() { v.closed++ }

func TestNewAppModelStartsAtHome(t *testing.T) {
	m := newAppModel(testApp(t))

	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewHome, m.activeView().ID())
}

func TestAppModel_NavigationMessages(t *testing.T) {
	m := newAppModel(testApp(t))
	v2 := newStubView(ViewDiaryList, "Diary", "diary view")
	v3 := newStubView(ViewLearn, "Learn", "learn view")

	model, cmd := m.Update(pushViewMsg{view: v2})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, v2, m.activeView())

	model, cmd = m.Update(replaceViewMsg{view: v3})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, v3, m.activeView())

	model, cmd = m.Update(popViewMsg{})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewHome, m.activeView().ID())

	// Home is never popped.
	model, _ = m.Update(popViewMsg{})
	m = model.(appModel)
	require.Len(t, m.viewStack, 1)
}

func TestAppModel_ClosesViewsLeavingTheStack(t *testing.T) {
	t.Run("pop", func(t *testing.T) {
		m := newAppModel(testApp(t))
		v := closingStubView{newStubView(ViewWindDown, "Wind Down", "")}

		model, _ := m.Update(pushViewMsg{view: v})
		model, _ = model.(appModel).Update(popViewMsg{})
		require.Len(t, model.(appModel).viewStack, 1)
		assert.Equal(t, 1, v.closed)
	})

	t.Run("replace", func(t *testing.T) {
		m := newAppModel(testApp(t))
		v := closingStubView{newStubView(ViewWindDown, "Wind Down", "")}

		model, _ := m.Update(pushViewMsg{view: v})
		model, _ = model.(appModel).Update(replaceViewMsg{view: newStubView(ViewLearn, "Learn", "")})
		am := model.(appModel)
		assert.Equal(t, ViewLearn, am.activeView().ID())
		assert.Equal(t, 1, v.closed)
	})

	t.Run("quit", func(t *testing.T) {
		m := newAppModel(testApp(t))
		v := closingStubView{newStubView(ViewWindDown, "Wind Down", "")}

		model, _ := m.Update(pushViewMsg{view: v})
		model, cmd := model.(appModel).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.True(t, model.(appModel).quitting)
		assert.Equal(t, 1, v.closed)
	})
}

func TestAppModel_LoadResultReachesCoveredView(t *testing.T) {
	m := newAppModel(testApp(t))
	top := newStubView(ViewLearn, "Learn", "learn")

	model, _ := m.Update(pushViewMsg{view: top})
	model, cmd := model.(appModel).Update(homeLoadedMsg{
		overview: domain.LearningOverview{Completed: 2, Total: 5},
	})
	m = model.(appModel)
	require.Nil(t, cmd)

	home, ok := m.viewStack[0].(*homeView)
	require.True(t, ok)
	assert.True(t, home.loaded)
	assert.Equal(t, 2, home.overview.Completed)
	assert.Empty(t, top.updateSeen)
	assert.Equal(t, top, m.activeView())
}

func TestAppModel_LoadResultWithoutTargetIsDropped(t *testing.T) {
	m := newAppModel(testApp(t))
	top := newStubView(ViewCoach, "Coach", "coach")

	model, _ := m.Update(pushViewMsg{view: top})
	model, cmd := model.(appModel).Update(diaryLoadedMsg{})
	m = model.(appModel)
	require.Nil(t, cmd)
	assert.Empty(t, top.updateSeen)
	require.Len(t, m.viewStack, 2)
}

func TestAppModel_WindowResizeForwardsToViews(t *testing.T) {
	m := newAppModel(testApp(t))
	v := newStubView(ViewDiaryList, "Diary", "diary")
	m.viewStack = []View{v}

	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = model.(appModel)

	assert.Equal(t, 100, m.state.Width)
	assert.Equal(t, 30, m.state.Height)
	require.Len(t, v.updateSeen, 1)
	_, ok := v.updateSeen[0].(tea.WindowSizeMsg)
	assert.True(t, ok)
}

func TestAppModel_KeyHandling_GlobalAndCaptured(t *testing.T) {
	t.Run("q quits when active view does not capture input", func(t *testing.T) {
		m := newAppModel(testApp(t))
		m.viewStack = []View{newStubView(ViewHome, "", "home")}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		m = model.(appModel)
		require.NotNil(t, cmd)
		assert.True(t, m.quitting)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("capturing view receives q and does not quit", func(t *testing.T) {
		m := newAppModel(testApp(t))
		v := newStubView(ViewCoach, "Coach", "coach")
		m.viewStack = []View{v}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		m = model.(appModel)
		require.Nil(t, cmd)
		assert.False(t, m.quitting)
		require.Len(t, v.updateSeen, 1)
		assert.Equal(t, "q", v.updateSeen[0].(tea.KeyMsg).String())
	})

	t.Run("esc pops back stack and clears output", func(t *testing.T) {
		m := newAppModel(testApp(t))
		m.viewStack = []View{
			newStubView(ViewHome, "", "home"),
			newStubView(ViewLearn, "Learn", "learn"),
		}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = model.(appModel)
		require.Nil(t, cmd)
		require.Len(t, m.viewStack, 1)
		assert.Empty(t, m.lastOutput)
		assert.False(t, m.outputActive)
	})

	t.Run("esc with output only dismisses it", func(t *testing.T) {
		m := newAppModel(testApp(t))
		m.viewStack = []View{
			newStubView(ViewHome, "", "home"),
			newStubView(ViewLearn, "Learn", "learn"),
		}

		model, _ := m.Update(cmdOutputMsg{output: "stale output"})
		model, _ = model.(appModel).Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = model.(appModel)
		require.Len(t, m.viewStack, 2)
		assert.Empty(t, m.lastOutput)
	})
}

func TestAppModel_StatusBarShowsBindings(t *testing.T) {
	m := newAppModel(testApp(t))
	v := newStubView(ViewLearn, "Learn", "learn")
	v.shortHelp = []key.Binding{key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tips"))}

	model, _ := m.Update(pushViewMsg{view: v})
	m = model.(appModel)

	bar := m.renderStatusBar()
	assert.Contains(t, bar, "t tips")
	assert.Contains(t, bar, "esc back")
	assert.Contains(t, m.renderHeader(), "Learn")
}

func TestAppModel_WizardCompleteAndOutput(t *testing.T) {
	m := newAppModel(testApp(t))
	m.viewStack = []View{
		newStubView(ViewHome, "", "home"),
		newStubView(ViewForm, "Log Night", "wizard"),
	}

	next := func() tea.Msg { return cmdOutputMsg{output: "done"} }

	model, cmd := m.Update(wizardCompleteMsg{nextCmd: next})
	m = model.(appModel)
	require.NotNil(t, cmd)
	require.Len(t, m.viewStack, 1)

	batchMsg := cmd()
	batch, ok := batchMsg.(tea.BatchMsg)
	require.True(t, ok, "expected tea.BatchMsg, got %T", batchMsg)
	var gotOutput, gotRefresh bool
	for _, c := range batch {
		if c == nil {
			continue
		}
		switch c().(type) {
		case cmdOutputMsg:
			gotOutput = true
		case refreshViewMsg:
			gotRefresh = true
		}
	}
	assert.True(t, gotOutput, "batch should contain cmdOutputMsg")
	assert.True(t, gotRefresh, "batch should contain refreshViewMsg")

	model, cmd = m.Update(cmdOutputMsg{output: "hello"})
	m = model.(appModel)
	require.Nil(t, cmd)
	assert.Contains(t, m.View(), "hello")
}

func TestViewCapturesInput(t *testing.T) {
	assert.False(t, viewCapturesInput(nil))
	assert.True(t, viewCapturesInput(newStubView(ViewCoach, "Coach", "")))
	assert.True(t, viewCapturesInput(newStubView(ViewForm, "Form", "")))
	assert.False(t, viewCapturesInput(newStubView(ViewHome, "", "")))
	assert.False(t, viewCapturesInput(newStubView(ViewWindDown, "Wind Down", "")))
}

func TestAppModel_OutputViewportScroll(t *testing.T) {
	m := newAppModel(testApp(t))
	m.viewStack = []View{newStubView(ViewHome, "", "home")}

	// Set terminal size (height 10 → content height = 5).
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m = model.(appModel)

	// Generate output that exceeds viewport height.
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	content := strings.Join(lines, "\n")

	model, _ = m.Update(cmdOutputMsg{output: content})
	m = model.(appModel)
	assert.True(t, m.outputActive)

	// View starts at the top.
	view := m.View()
	assert.Contains(t, view, "line 1")

	// Scroll down: output stays active.
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(appModel)
	assert.True(t, m.outputActive)

	// Non-scroll key dismisses.
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = model.(appModel)
	assert.False(t, m.outputActive)
	assert.Empty(t, m.lastOutput)
}

func TestAppModel_OutputShortContentNoScroll(t *testing.T) {
	m := newAppModel(testApp(t))
	m.viewStack = []View{newStubView(ViewHome, "", "home")}

	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = model.(appModel)

	model, _ = m.Update(cmdOutputMsg{output: "short output"})
	m = model.(appModel)
	assert.True(t, m.outputActive)

	view := m.View()
	assert.Contains(t, view, "short output")
	// Status bar should NOT show scroll hints for short content.
	assert.NotContains(t, view, "pgup/pgdn")
}

func TestIsOutputScrollKey(t *testing.T) {
	scrollKeys := []tea.KeyType{
		tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD,
	}
	for _, k := range scrollKeys {
		assert.True(t, isOutputScrollKey(tea.KeyMsg{Type: k}), "expected scroll key: %v", k)
	}

	nonScrollKeys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyRunes, Runes: []rune{':'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyEnter},
	}
	for _, k := range nonScrollKeys {
		assert.False(t, isOutputScrollKey(k), "expected non-scroll key: %v", k)
	}
}
