package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewHome ViewID = iota
	ViewWindDown
	ViewCoach
	ViewDiaryList
	ViewLearn
	ViewForm
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// viewCloser is implemented by views that own background resources. The
// app model calls Close when the view leaves the stack.
type viewCloser interface {
	Close()
}

func closeView(v View) {
	if c, ok := v.(viewCloser); ok {
		c.Close()
	}
}

// viewDataMsg is implemented by async load results. The app model hands
// them to the view that requested them even when it is not on top.
type viewDataMsg interface {
	targetView() ViewID
}
