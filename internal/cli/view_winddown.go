package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/restwell/internal/cli/formatter"
	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/alexanderramin/restwell/internal/winddown"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// engineEventMsg wraps an engine event for the bubbletea loop.
type engineEventMsg struct {
	event winddown.Event
}

// engineClosedMsg signals that the engine closed its event channel.
type engineClosedMsg struct{}

// waitForEngineEvent blocks on the next engine event. The view re-arms it
// after every event so exactly one wait is outstanding.
func waitForEngineEvent(events <-chan winddown.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return engineClosedMsg{}
		}
		return engineEventMsg{event: ev}
	}
}

// windDownView is the mounted wind-down session. It owns its Engine and
// closes it when the view leaves the stack. Rendering reads the engine's
// snapshot every frame; events only trigger the redraw.
type windDownView struct {
	state  *SharedState
	engine *winddown.Engine
	events <-chan winddown.Event
	notice string
}

func newWindDownView(state *SharedState) *windDownView {
	e := state.App.NewEngine()
	return &windDownView{
		state:  state,
		engine: e,
		events: e.Subscribe(16),
	}
}

func (v *windDownView) ID() ViewID    { return ViewWindDown }
func (v *windDownView) Title() string { return "Wind-down" }

func (v *windDownView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		key.NewBinding(key.WithKeys("1", "2", "3", "tab"), key.WithHelp("1-3/tab", "activity")),
	}
}

func (v *windDownView) Init() tea.Cmd {
	return waitForEngineEvent(v.events)
}

// Close unmounts the session: both timers stop and no further events fire.
func (v *windDownView) Close() {
	v.engine.Close()
}

func (v *windDownView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case engineEventMsg:
		if msg.event.Type == winddown.EventCompleted {
			v.notice = formatter.FormatCompletion(msg.event.Snapshot)
		}
		return v, waitForEngineEvent(v.events)

	case engineClosedMsg:
		return v, nil

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *windDownView) handleKey(msg tea.KeyMsg) tea.Cmd {
	var err error
	switch k := msg.String(); k {
	case " ", "space", "enter":
		err = v.engine.ToggleRun()
	case "r":
		err = v.engine.Reset()
	case "1", "2", "3":
		keys := domain.ActivityKeys()
		err = v.engine.SwitchActivity(keys[int(k[0]-'1')])
	case "tab":
		err = v.engine.SwitchActivity(nextActivity(v.engine.Snapshot().Activity.Key))
	case "shift+tab":
		err = v.engine.SwitchActivity(prevActivity(v.engine.Snapshot().Activity.Key))
	default:
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrSessionAlreadyComplete):
		v.notice = formatter.StyleYellow.Render("This activity is done. Press r to go again.")
	case err != nil:
		v.notice = formatter.StyleRed.Render("Error: " + err.Error())
	default:
		v.notice = ""
	}
	return nil
}

func (v *windDownView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(formatter.FormatWindDown(v.engine.Snapshot()))
	if v.notice != "" {
		b.WriteString("\n\n" + v.notice)
	}
	b.WriteString("\n")
	return b.String()
}

func nextActivity(cur domain.ActivityKey) domain.ActivityKey {
	keys := domain.ActivityKeys()
	for i, k := range keys {
		if k == cur {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}

func prevActivity(cur domain.ActivityKey) domain.ActivityKey {
	keys := domain.ActivityKeys()
	for i, k := range keys {
		if k == cur {
			return keys[(i+len(keys)-1)%len(keys)]
		}
	}
	return keys[0]
}
