package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/compass/internal/cli/formatter"
	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/session"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// ── messages ─────────────────────────────────────────────────────────────────

// stepSubmitMsg applies the answers of the form shown for step.
type stepSubmitMsg struct {
	step domain.Step
}

// stepSettledMsg reports the end of an asynchronous advance or retry.
type stepSettledMsg struct {
	err error
}

// ── view ─────────────────────────────────────────────────────────────────────

// onboardingView renders the intake wizard one step at a time. Input steps
// are huh forms; the welcome and results steps are plain key-driven screens.
type onboardingView struct {
	state *SharedState

	answers  stepAnswers
	form     *huh.Form
	formStep domain.Step

	spinner spinner.Model
	busy    bool // an advance or retry is waiting on the advising service
	cursor  int  // highlighted suggestion on the results step
	err     error
}

func newOnboardingView(state *SharedState) *onboardingView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple
	return &onboardingView{
		state:    state,
		formStep: -1,
		spinner:  sp,
	}
}

func (v *onboardingView) ID() ViewID    { return ViewOnboarding }
func (v *onboardingView) Title() string { return "Onboarding" }

// CapturesInput is true while a form is on screen so typed letters reach it.
func (v *onboardingView) CapturesInput() bool {
	return v.form != nil && !v.busy
}

func (v *onboardingView) ShortHelp() []key.Binding {
	s := v.state.App.Machine.State()
	switch {
	case v.busy || s.IsLoading:
		return []key.Binding{key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))}
	case s.Step == domain.StepWelcome:
		return []key.Binding{key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "get started"))}
	case s.Step == domain.StepResults && s.SelectedMajor != nil:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start your journey")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		}
	case s.Step == domain.StepResults && s.Error != nil:
		return []key.Binding{
			key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "try again")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		}
	case s.Step == domain.StepResults:
		return []key.Binding{
			key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "choose")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		}
	default:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		}
	}
}

func (v *onboardingView) Init() tea.Cmd {
	return v.sync()
}

// sync rebuilds the step form when the wizard moved to a different step.
func (v *onboardingView) sync() tea.Cmd {
	s := v.state.App.Machine.State()
	if s.Step == v.formStep {
		return nil
	}
	v.formStep = s.Step
	v.cursor = 0
	v.answers = stepAnswers{
		school:     s.School,
		knowsMajor: s.KnowsMajor,
		major:      s.SelectedMajorName(),
		interests:  append([]string{}, s.Interests...),
	}
	if v.answers.knowsMajor == domain.KnowsMajorUnknown {
		v.answers.knowsMajor = domain.KnowsMajorYes
	}
	v.form = newStepForm(s, &v.answers)
	if v.form == nil {
		return nil
	}
	return v.form.Init()
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *onboardingView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepSubmitMsg:
		if msg.step != v.state.App.Machine.State().Step {
			return v, nil
		}
		return v, v.submit(msg.step)

	case stepSettledMsg:
		v.busy = false
		if msg.err != nil && !errors.Is(msg.err, session.ErrSuperseded) {
			v.err = msg.err
		}
		return v, v.sync()

	case spinner.TickMsg:
		if !v.busy && !v.state.App.Machine.State().IsLoading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case refreshViewMsg:
		return v, v.sync()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, v.updateForm(msg)
}

func (v *onboardingView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	m := v.state.App.Machine

	if msg.Type == tea.KeyEsc {
		v.err = nil
		v.busy = false
		m.Retreat(ctx)
		return v, v.sync()
	}
	if v.busy {
		return v, nil
	}
	if v.form != nil {
		return v, v.updateForm(msg)
	}

	s := m.State()
	switch s.Step {
	case domain.StepWelcome:
		if msg.Type == tea.KeyEnter {
			v.err = m.Advance(ctx)
			return v, v.sync()
		}
	case domain.StepResults:
		return v, v.handleResultsKey(ctx, s, msg)
	}
	return v, nil
}

func (v *onboardingView) handleResultsKey(ctx context.Context, s domain.OnboardingState, msg tea.KeyMsg) tea.Cmd {
	if s.SelectedMajor != nil {
		if msg.Type == tea.KeyEnter {
			return resetStack(newDashboardView(v.state))
		}
		return nil
	}
	if s.IsLoading || s.KnowsMajor != domain.KnowsMajorNo {
		return nil
	}
	if s.Error != nil {
		if msg.String() == "r" {
			return v.retry()
		}
		return nil
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(s.SuggestedMajors)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(s.SuggestedMajors) {
			return v.choose(ctx, s.SuggestedMajors[v.cursor])
		}
	case "1", "2", "3":
		i := int(msg.Runes[0] - '1')
		if i < len(s.SuggestedMajors) {
			return v.choose(ctx, s.SuggestedMajors[i])
		}
	}
	return nil
}

func (v *onboardingView) choose(ctx context.Context, major string) tea.Cmd {
	v.err = v.state.App.Machine.HandleMajorSelection(ctx, major)
	if v.err != nil {
		return nil
	}
	return func() tea.Msg { return refreshViewMsg{} }
}

// updateForm forwards msg to the step form and submits it on completion.
func (v *onboardingView) updateForm(msg tea.Msg) tea.Cmd {
	if v.form == nil {
		return nil
	}
	model, cmd := v.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted {
		step := v.formStep
		v.form = nil
		return tea.Batch(cmd, func() tea.Msg { return stepSubmitMsg{step: step} })
	}
	return cmd
}

// submit records the answers for step and moves the wizard forward.
// Leaving the interests step waits on the advising service, so that
// advance runs as a command.
func (v *onboardingView) submit(step domain.Step) tea.Cmd {
	ctx := context.Background()
	app := v.state.App
	v.err = nil

	switch step {
	case domain.StepSchool:
		app.Onboarding.SetSchool(ctx, strings.TrimSpace(v.answers.school))
	case domain.StepMajorCheck:
		app.Onboarding.SetKnowsMajor(ctx, v.answers.knowsMajor)
	case domain.StepMajorOrInterests:
		if app.Machine.State().KnowsMajor == domain.KnowsMajorNo {
			if err := app.Onboarding.SetInterests(v.answers.interests); err != nil {
				return v.fail(err)
			}
			return v.advanceAsync()
		}
		if err := app.Machine.ConfirmMajorSelection(ctx, v.answers.major); err != nil {
			return v.fail(err)
		}
	}

	if err := app.Machine.Advance(ctx); err != nil {
		return v.fail(err)
	}
	return v.sync()
}

// fail shows err and rebuilds the current step's form.
func (v *onboardingView) fail(err error) tea.Cmd {
	v.err = err
	v.formStep = -1
	return v.sync()
}

func (v *onboardingView) advanceAsync() tea.Cmd {
	m := v.state.App.Machine
	v.busy = true
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		return stepSettledMsg{err: m.Advance(context.Background())}
	})
}

func (v *onboardingView) retry() tea.Cmd {
	m := v.state.App.Machine
	v.busy = true
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		return stepSettledMsg{err: m.Retry(context.Background())}
	})
}

// ── view ─────────────────────────────────────────────────────────────────────

func (v *onboardingView) View() string {
	s := v.state.App.Machine.State()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + stepDots(s.Step) + "\n\n")

	switch {
	case v.busy && s.Step != domain.StepResults:
		b.WriteString(v.loadingLine())
	case s.Step == domain.StepWelcome:
		b.WriteString("  " + formatter.StyleHeader.Render("Welcome to Career Compass") + "\n")
		b.WriteString("  " + formatter.Dim("Let's discover the perfect major for your future") + "\n")
	case s.Step == domain.StepResults:
		b.WriteString(v.renderResults(s))
	case v.form != nil:
		b.WriteString(v.form.View())
	}

	if v.err != nil {
		b.WriteString("\n  " + formatter.StyleRed.Render(v.err.Error()) + "\n")
	}
	return b.String()
}

func (v *onboardingView) loadingLine() string {
	return fmt.Sprintf("  %s %s\n", v.spinner.View(), formatter.Dim("Finding majors that match your interests..."))
}

func (v *onboardingView) renderResults(s domain.OnboardingState) string {
	var b strings.Builder
	if s.SelectedMajor != nil {
		major := *s.SelectedMajor
		b.WriteString("  " + formatter.StyleHeader.Render("You're All Set!") + "\n\n")
		b.WriteString("  " + formatter.Bold("Your Selected Major:") + "\n")
		b.WriteString("  " + formatter.StyleGreen.Render(major) + "\n\n")
		b.WriteString("  " + formatter.Dim(fmt.Sprintf(
			"Get ready to explore your academic journey! We'll help you navigate your path in %s with personalized resources and guidance.",
			major)) + "\n")
		return b.String()
	}

	if s.KnowsMajor == domain.KnowsMajorYes {
		b.WriteString("  " + formatter.Bold("Great choice! Let's explore your major:") + "\n")
		return b.String()
	}

	b.WriteString("  " + formatter.Bold("Here are your recommended majors:") + "\n\n")
	switch {
	case s.IsLoading || v.busy:
		b.WriteString(v.loadingLine())
	case s.Error != nil:
		b.WriteString("  " + formatter.StyleRed.Render(*s.Error) + "\n")
		b.WriteString("  " + formatter.Dim("Press r to Try Again") + "\n")
	default:
		b.WriteString(formatter.NumberedMajors(s.SuggestedMajors, v.cursor))
	}
	return b.String()
}

// stepDots renders wizard progress as filled and empty dots.
func stepDots(step domain.Step) string {
	var b strings.Builder
	for s := domain.StepWelcome; s <= domain.LastStep; s++ {
		if s <= step {
			b.WriteString(formatter.StyleHeader.Render("●"))
		} else {
			b.WriteString(formatter.Dim("○"))
		}
	}
	return b.String()
}
