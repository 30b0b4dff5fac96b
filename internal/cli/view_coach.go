package cli

import (
	"strings"
	"time"

	"github.com/alexanderramin/restwell/internal/cli/formatter"
	"github.com/alexanderramin/restwell/internal/coach"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// coachReplyMsg fires when the typing delay for reply seq has elapsed.
type coachReplyMsg struct {
	seq int
}

// coachView is the chat with the sleep coach. The coach "types" for the
// configured delay before its reply is delivered.
type coachView struct {
	state *SharedState
	conv  *coach.Conversation
	input textinput.Model
	vp    viewport.Model
	spin  spinner.Model
	err   string

	// replySeq is bumped per send and per new chat; stale delayed replies
	// carry an old seq and are ignored.
	replySeq int
}

func newCoachView(state *SharedState) *coachView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.Placeholder = "Ask about your sleep..."
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = formatter.StylePurple

	v := &coachView{
		state: state,
		conv:  state.App.Coach.NewConversation(),
		input: ti,
		vp:    viewport.New(max(state.Width, 20), max(state.ContentHeight()-3, 3)),
		spin:  sp,
	}
	v.syncViewport()
	return v
}

func (v *coachView) ID() ViewID    { return ViewCoach }
func (v *coachView) Title() string { return "Coach" }

func (v *coachView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new chat")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *coachView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *coachView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = max(msg.Width, 20)
		v.vp.Height = max(v.state.ContentHeight()-3, 3)
		v.syncViewport()
		return v, nil

	case coachReplyMsg:
		if msg.seq != v.replySeq {
			return v, nil
		}
		if _, err := v.conv.Deliver(); err != nil {
			v.err = err.Error()
		}
		v.syncViewport()
		return v, nil

	case spinner.TickMsg:
		if !v.conv.Typing() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return v, popView()
		case tea.KeyCtrlN:
			v.replySeq++
			v.conv = v.state.App.Coach.NewConversation()
			v.err = ""
			v.input.Reset()
			v.syncViewport()
			return v, nil
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
			var cmd tea.Cmd
			v.vp, cmd = v.vp.Update(msg)
			return v, cmd
		case tea.KeyEnter:
			text := v.quickQuestion(v.input.Value())
			v.input.Reset()
			return v, v.send(text)
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// quickQuestion maps "1".."4" to a quick question while they are still
// offered.
func (v *coachView) quickQuestion(text string) string {
	return resolveQuickQuestion(v.conv.QuickQuestions(), strings.TrimSpace(text))
}

func (v *coachView) send(text string) tea.Cmd {
	if _, err := v.conv.Send(text); err != nil {
		v.err = err.Error()
		return nil
	}
	v.err = ""
	v.replySeq++
	v.syncViewport()

	seq := v.replySeq
	delay := v.state.App.Coach.TypingDelay()
	if delay <= 0 {
		return func() tea.Msg { return coachReplyMsg{seq: seq} }
	}
	return tea.Batch(
		v.spin.Tick,
		tea.Tick(delay, func(time.Time) tea.Msg { return coachReplyMsg{seq: seq} }),
	)
}

func (v *coachView) syncViewport() {
	v.vp.SetContent(formatter.FormatConversation(v.conv.Messages(), v.vp.Width))
	v.vp.GotoBottom()
}

func (v *coachView) View() string {
	var b strings.Builder
	b.WriteString(v.vp.View())
	b.WriteString("\n")

	if qs := v.conv.QuickQuestions(); len(qs) > 0 {
		b.WriteString(formatter.Dim("Quick questions (type a number):") + "\n")
		b.WriteString(formatter.FormatQuickQuestions(qs))
	}
	if v.conv.Typing() {
		b.WriteString(v.spin.View() + " " + formatter.Dim("Coach is typing...") + "\n")
	}
	if v.err != "" {
		b.WriteString(formatter.StyleRed.Render(v.err) + "\n")
	}

	b.WriteString(formatter.StylePurple.Render("you") + formatter.Dim("> "))
	b.WriteString(v.input.View())
	return b.String()
}
