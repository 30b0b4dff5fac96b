package cli

import (
	"testing"

	"github.com/alexanderramin/restwell/internal/teatest"
)

// TestDriver wraps teatest.Driver with restwell-specific inspection methods.
// It provides access to appModel internals (view stack, shared state,
// transient output) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init()
// (which loads the home overview synchronously via in-memory SQLite).
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── restwell-specific inspection ─────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveView returns the top view on the stack.
func (d *TestDriver) ActiveView() View {
	m := d.appModel()
	return m.activeView()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// LastOutput returns the last transient output displayed in the content area.
func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}

// WindDown returns the active wind-down view, failing the test otherwise.
func (d *TestDriver) WindDown() *windDownView {
	d.T.Helper()
	v, ok := d.ActiveView().(*windDownView)
	if !ok {
		d.T.Fatalf("active view is %v, not the wind-down view", d.ActiveViewID())
	}
	return v
}

// Coach returns the active coach view, failing the test otherwise.
func (d *TestDriver) Coach() *coachView {
	d.T.Helper()
	v, ok := d.ActiveView().(*coachView)
	if !ok {
		d.T.Fatalf("active view is %v, not the coach view", d.ActiveViewID())
	}
	return v
}
