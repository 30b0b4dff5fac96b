package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/restwell/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea Model for the TUI. It manages a view
// stack with the home menu at the bottom.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool

	// Transient output from forms and detail actions, displayed in the
	// content area until dismissed.
	lastOutput string

	// Scrollable viewport for output that exceeds terminal height.
	outputVP     viewport.Model
	outputActive bool

	// Renders the active view's key bindings in the status bar.
	help help.Model
}

func newAppModel(app *App) appModel {
	state := newSharedState(app)

	vp := viewport.New(0, 0)
	vp.KeyMap = outputViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(formatter.ColorPurple)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return appModel{
		state:     state,
		outputVP:  vp,
		help:      h,
		viewStack: []View{newHomeView(state)},
	}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// popActive removes the top view, keeping home, and releases its resources.
func (m *appModel) popActive() bool {
	if len(m.viewStack) <= 1 {
		return false
	}
	closeView(m.viewStack[len(m.viewStack)-1])
	m.viewStack = m.viewStack[:len(m.viewStack)-1]
	return true
}

// quit releases every view and stops the program.
func (m appModel) quit() (tea.Model, tea.Cmd) {
	for _, v := range m.viewStack {
		closeView(v)
	}
	m.quitting = true
	return m, tea.Quit
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if m.outputActive {
			m.outputVP.Width = msg.Width
			m.outputVP.Height = m.state.ContentHeight()
		}
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.outputActive {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return m, cmd
		}

	case pushViewMsg:
		m.clearOutput()
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		m.popActive()
		return m, nil

	case replaceViewMsg:
		m.clearOutput()
		if len(m.viewStack) > 0 {
			closeView(m.activeView())
			m.viewStack[len(m.viewStack)-1] = msg.view
		} else {
			m.viewStack = append(m.viewStack, msg.view)
		}
		return m, msg.view.Init()

	case refreshViewMsg:
		// Broadcast so underlying views reload after mutations made above them.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case cmdOutputMsg:
		m.lastOutput = msg.output
		m.outputActive = true
		m.outputVP.SetContent(msg.output)
		m.outputVP.Width = m.state.Width
		m.outputVP.Height = m.state.ContentHeight()
		m.outputVP.GotoTop()
		return m, nil

	case viewDataMsg:
		// Deliver to the topmost view of the requesting kind.
		for i := len(m.viewStack) - 1; i >= 0; i-- {
			if m.viewStack[i].ID() == msg.targetView() {
				updated, cmd := m.viewStack[i].Update(msg)
				m.viewStack[i] = updated.(View)
				return m, cmd
			}
		}
		return m, nil

	case wizardCompleteMsg:
		// Pop the wizard and run the follow-up in one step.
		m.popActive()
		m.clearOutput()
		return m, tea.Batch(msg.nextCmd, func() tea.Msg { return refreshViewMsg{} })
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	// Scroll keys move the output viewport; anything else dismisses the
	// output and falls through.
	if m.outputActive {
		if isOutputScrollKey(msg) {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return m, cmd
		}
		m.clearOutput()
		if msg.Type == tea.KeyEsc {
			return m, nil
		}
	}

	// Views with their own text input receive every key, including q and esc.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == "q":
		return m.quit()

	case msg.Type == tea.KeyEsc:
		m.popActive()
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}

	if m.lastOutput != "" {
		if m.outputActive && m.state.Height > 0 {
			sections = append(sections, m.outputVP.View())
		} else {
			sections = append(sections, m.lastOutput)
		}
	} else if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	sections = append(sections, m.renderStatusBar())
	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("restwell")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return title + breadcrumb + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var bar string

	if m.outputActive && m.outputVP.TotalLineCount() > m.outputVP.Height {
		bar = strings.Join([]string{
			scrollIndicator(m.outputVP),
			formatter.Dim("↑↓ pgup/pgdn: scroll"),
			formatter.Dim("esc: dismiss"),
		}, "  ")
	} else if m.outputActive {
		bar = formatter.Dim("any key: dismiss")
	} else if v := m.activeView(); v != nil {
		bindings := v.ShortHelp()
		if len(m.viewStack) > 1 && !viewCapturesInput(v) {
			bindings = append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")))
		}
		m.help.Width = m.state.Width
		bar = m.help.ShortHelpView(bindings)
	}

	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + bar
}

// clearOutput dismisses the transient output and deactivates the viewport.
func (m *appModel) clearOutput() {
	m.lastOutput = ""
	m.outputActive = false
}

// outputViewportKeyMap returns a restricted keymap for the output viewport.
// Only arrow and page keys scroll, so letters stay free to dismiss.
func outputViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

// isOutputScrollKey returns true if the key should scroll the output viewport
// rather than dismissing the output.
func isOutputScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD:
		return true
	}
	return false
}

// scrollIndicator returns a dim scroll position string for the status bar.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}

// viewCapturesInput returns true if the view has its own text input and
// should receive all key events.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewCoach, ViewForm:
		return true
	}
	return false
}
