package cli

import (
	"testing"

	"github.com/alexanderramin/compass/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
)

// TestDriver wraps teatest.Driver with Compass-specific inspection methods.
// It provides access to appModel internals (view stack, shared state,
// flash line) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver starting at the given view.
// It constructs the appModel, sets terminal size, and drains Init()
// (which loads data synchronously through the fake advisor).
func NewTestDriver(t *testing.T, app *App, start ViewID) *TestDriver {
	t.Helper()

	m := newAppModel(app, start)
	d := teatest.New(t, m, teatest.WithSize(120, 60))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── Compass-specific inspection ──────────────────────────────────────────────

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

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// Flash returns the current one-line notice.
func (d *TestDriver) Flash() string {
	return d.appModel().flash
}

// Onboarding returns the onboarding view at the bottom of the stack.
func (d *TestDriver) Onboarding() *onboardingView {
	d.T.Helper()
	for _, v := range d.appModel().viewStack {
		if ov, ok := v.(*onboardingView); ok {
			return ov
		}
	}
	d.T.Fatalf("no onboarding view on the stack")
	return nil
}

// Dashboard returns the dashboard view on the stack.
func (d *TestDriver) Dashboard() *dashboardView {
	d.T.Helper()
	for _, v := range d.appModel().viewStack {
		if dv, ok := v.(*dashboardView); ok {
			return dv
		}
	}
	d.T.Fatalf("no dashboard view on the stack")
	return nil
}

// Submit fills the onboarding answers with fill and submits the current
// step as if its form had been completed.
func (d *TestDriver) Submit(fill func(a *stepAnswers)) {
	d.T.Helper()
	ov := d.Onboarding()
	if fill != nil {
		fill(&ov.answers)
	}
	d.Send(stepSubmitMsg{step: ov.state.App.Machine.State().Step})
}

// PressTab sends the Tab key.
func (d *TestDriver) PressTab() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyTab})
}
