package cli

import (
	"github.com/alexanderramin/compass/internal/cli/formatter"
	"github.com/alexanderramin/compass/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// compassHuhTheme returns a custom huh theme using the Gruvbox palette.
func compassHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[✓] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// stepAnswers holds the values the onboarding step forms write into.
type stepAnswers struct {
	school     string
	knowsMajor domain.KnowsMajor
	major      string
	interests  []string
}

// newStepForm builds the form for an input step of the wizard, or nil
// for steps that take no input.
func newStepForm(s domain.OnboardingState, a *stepAnswers) *huh.Form {
	var field huh.Field
	switch s.Step {
	case domain.StepSchool:
		field = schoolInput(&a.school)
	case domain.StepMajorCheck:
		field = knowsMajorSelect(&a.knowsMajor)
	case domain.StepMajorOrInterests:
		switch s.KnowsMajor {
		case domain.KnowsMajorYes:
			field = majorSelect(s.AvailableMajors, &a.major)
		case domain.KnowsMajorNo:
			field = interestsSelect(&a.interests)
		}
	}
	if field == nil {
		return nil
	}
	return huh.NewForm(huh.NewGroup(field)).
		WithTheme(compassHuhTheme()).
		WithShowHelp(false)
}

// profileForm collects the name and fun fact for the dashboard greeting.
func profileForm(name, funFact *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			nameInput(name),
			funFactInput(funFact),
		),
	).WithTheme(compassHuhTheme()).WithShowHelp(false)
}
