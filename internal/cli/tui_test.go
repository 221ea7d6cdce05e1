package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/compass/internal/advising"
	"github.com/alexanderramin/compass/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── onboarding ───────────────────────────────────────────────────────────────

func TestOnboarding_WelcomeEnterMovesToSchoolForm(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app, ViewOnboarding)

	assert.Contains(t, d.View(), "Welcome to Career Compass")

	d.PressEnter()

	assert.Equal(t, domain.StepSchool, app.Machine.State().Step)
	assert.True(t, d.Onboarding().CapturesInput())
	assert.Contains(t, d.View(), "Which school do you attend?")
}

func TestOnboarding_FormReceivesQInsteadOfQuitting(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app, ViewOnboarding)
	d.PressEnter()

	d.Type("Queens")

	assert.False(t, d.IsQuitting())
	assert.Equal(t, domain.StepSchool, app.Machine.State().Step)
}

func TestOnboarding_InterestsFlowConfirmsSuggestedMajor(t *testing.T) {
	app, adv := testApp(t)
	d := NewTestDriver(t, app, ViewOnboarding)

	d.PressEnter()
	d.Submit(func(a *stepAnswers) { a.school = "  Bethune-Cookman University " })
	require.Equal(t, domain.StepMajorCheck, app.Machine.State().Step)
	assert.Equal(t, "Bethune-Cookman University", app.Onboarding.Get().School)

	d.Submit(func(a *stepAnswers) { a.knowsMajor = domain.KnowsMajorNo })
	require.Equal(t, domain.StepMajorOrInterests, app.Machine.State().Step)
	assert.Contains(t, d.View(), "What interests you?")

	d.Submit(func(a *stepAnswers) { a.interests = []string{"Robotics", "Cybersecurity"} })

	s := app.Machine.State()
	require.Equal(t, domain.StepResults, s.Step)
	assert.False(t, s.IsLoading)
	assert.Equal(t, []string{"Robotics", "Cybersecurity"}, adv.interests)
	view := d.View()
	assert.Contains(t, view, "Here are your recommended majors:")
	assert.Contains(t, view, "2. Cybersecurity")

	d.PressKey('2')

	assert.Equal(t, "Cybersecurity", app.Onboarding.Get().SelectedMajorName())
	assert.Equal(t, "Cybersecurity", app.Dashboard.Get().SelectedMajor)
	assert.Contains(t, d.View(), "You're All Set!")

	d.PressEnter()

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())
	assert.Contains(t, d.View(), "Your Roadmap for Cybersecurity")
}

func TestOnboarding_ArrowSelectionOfSuggestion(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app, ViewOnboarding)
	d.PressEnter()
	d.Submit(func(a *stepAnswers) { a.school = "B-CU" })
	d.Submit(func(a *stepAnswers) { a.knowsMajor = domain.KnowsMajorNo })
	d.Submit(func(a *stepAnswers) { a.interests = []string{"Robotics"} })

	d.PressDown()
	d.PressDown()
	d.PressDown()
	d.PressEnter()

	assert.Equal(t, "Robotics Engineering", app.Dashboard.Get().SelectedMajor)
	assert.Contains(t, d.View(), "Your Selected Major:")
}

func TestOnboarding_KnownMajorFlow(t *testing.T) {
	app, adv := testApp(t)
	d := NewTestDriver(t, app, ViewOnboarding)

	d.PressEnter()
	d.Submit(func(a *stepAnswers) { a.school = "B-CU" })
	d.Submit(func(a *stepAnswers) { a.knowsMajor = domain.KnowsMajorYes })
	assert.Contains(t, d.View(), "Select Your Major")

	d.Submit(func(a *stepAnswers) { a.major = "Nursing" })

	assert.Equal(t, domain.StepResults, app.Machine.State().Step)
	assert.Equal(t, "Nursing", app.Dashboard.Get().SelectedMajor)
	assert.Nil(t, adv.interests, "no recommendation for a known major")
	assert.Contains(t, d.View(), "You're All Set!")
}

func TestOnboarding_MajorNotOfferedStaysOnStep(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app, ViewOnboarding)
	d.PressEnter()
	d.Submit(func(a *stepAnswers) { a.school = "B-CU" })
	d.Submit(func(a *stepAnswers) { a.knowsMajor = domain.KnowsMajorYes })

	d.Submit(func(a *stepAnswers) { a.major = "Astrology" })

	assert.Equal(t, domain.StepMajorOrInterests, app.Machine.State().Step)
	assert.Equal(t, domain.DefaultMajor, app.Dashboard.Get().SelectedMajor)
	assert.Contains(t, d.View(), "not offered")
}

func TestOnboarding_BlankSchoolIsIncomplete(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app, ViewOnboarding)
	d.PressEnter()

	d.Submit(func(a *stepAnswers) { a.school = "   " })

	assert.Equal(t, domain.StepSchool, app.Machine.State().Step)
	assert.Contains(t, d.View(), "incomplete")
	assert.True(t, d.Onboarding().CapturesInput(), "form is rebuilt for another try")
}

func TestOnboarding_FailureThenRetry(t *testing.T) {
	app, adv := testApp(t)
	adv.setRecommendErr(&advising.RequestFailedError{Endpoint: "/recommend-majors", Status: 503, Message: "Failed to fetch majors"})
	d := NewTestDriver(t, app, ViewOnboarding)
	d.PressEnter()
	d.Submit(func(a *stepAnswers) { a.school = "B-CU" })
	d.Submit(func(a *stepAnswers) { a.knowsMajor = domain.KnowsMajorNo })
	d.Submit(func(a *stepAnswers) { a.interests = []string{"Medicine"} })

	require.Equal(t, domain.StepResults, app.Machine.State().Step)
	assert.Contains(t, d.View(), "Failed to fetch majors")
	assert.Contains(t, d.View(), "Try Again")
	assert.Empty(t, app.Machine.State().SuggestedMajors)

	adv.setRecommendErr(nil)
	d.PressKey('r')

	s := app.Machine.State()
	assert.Nil(t, s.Error)
	assert.Len(t, s.SuggestedMajors, 3)
	assert.Contains(t, d.View(), "Computer Engineering")
}

func TestOnboarding_EscRetreatsAndWelcomeResets(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app, ViewOnboarding)
	d.PressEnter()
	d.Submit(func(a *stepAnswers) { a.school = "B-CU" })
	require.Equal(t, domain.StepMajorCheck, app.Machine.State().Step)

	d.PressEsc()
	assert.Equal(t, domain.StepSchool, app.Machine.State().Step)
	assert.Equal(t, "B-CU", app.Onboarding.Get().School)

	d.PressEsc()
	assert.Equal(t, domain.StepWelcome, app.Machine.State().Step)
	assert.Empty(t, app.Onboarding.Get().School)
	assert.False(t, d.IsQuitting())
}

func TestOnboarding_QQuitsOnWelcome(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app, ViewOnboarding)

	d.PressKey('q')

	assert.True(t, d.IsQuitting())
}

// ── dashboard ────────────────────────────────────────────────────────────────

func TestDashboard_RendersGreetingRoadmapAndResources(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app, ViewDashboard)

	view := d.View()
	assert.Contains(t, view, "Good morning")
	assert.Contains(t, view, "Your Roadmap for Computer Science")
	assert.Contains(t, view, "CS 131 Introduction to Computer Science")
	assert.Contains(t, view, "Fall Semester")
	assert.Contains(t, view, "CS50")
	assert.Contains(t, view, "Financial Buddy")
}

func TestDashboard_YearKeysSwitchRoadmap(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app, ViewDashboard)

	d.PressKey('3')
	assert.Equal(t, domain.YearJunior, app.Dashboard.Get().ActiveYear)
	assert.Contains(t, d.View(), "CS 341 Operating Systems")

	d.PressKey('l')
	assert.Equal(t, domain.YearSenior, app.Dashboard.Get().ActiveYear)

	d.PressKey('l')
	assert.Equal(t, domain.YearFreshman, app.Dashboard.Get().ActiveYear, "wraps around")

	d.PressKey('h')
	assert.Equal(t, domain.YearSenior, app.Dashboard.Get().ActiveYear)
}

func TestDashboard_MajorWithoutRoadmap(t *testing.T) {
	app, _ := testApp(t)
	app.Dashboard.SetSelectedMajor(context.Background(), "Robotics Engineering")
	d := NewTestDriver(t, app, ViewDashboard)

	assert.Contains(t, d.View(), "No roadmap is available for Robotics Engineering yet.")
}

func TestDashboard_SearchCapturesKeysAndRefetches(t *testing.T) {
	app, adv := testApp(t)
	d := NewTestDriver(t, app, ViewDashboard)

	d.PressKey('/')
	assert.True(t, d.Dashboard().CapturesInput())

	d.Type("quantum")
	assert.False(t, d.IsQuitting())
	d.PressEnter()

	assert.False(t, d.Dashboard().CapturesInput())
	assert.Equal(t, "Computer Science|quantum", adv.lastQuery())
	assert.Contains(t, d.View(), "search: quantum")
}

func TestDashboard_FailedRefreshKeepsPreviousList(t *testing.T) {
	app, adv := testApp(t)
	d := NewTestDriver(t, app, ViewDashboard)
	require.Contains(t, d.View(), "CS50")

	adv.mu.Lock()
	adv.resourceErr = &advising.RequestFailedError{Endpoint: "/learning-resources", Status: 500, Message: "Failed to fetch learning resources"}
	adv.mu.Unlock()
	d.PressKey('r')

	view := d.View()
	assert.Contains(t, view, "CS50")
	assert.Contains(t, view, "Failed to fetch learning resources")
}

func TestDashboard_ProfileFormUpdatesGreeting(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app, ViewDashboard)

	d.PressKey('p')
	require.Equal(t, ViewForm, d.ActiveViewID())

	d.Type("Ada")
	d.PressEnter()
	d.Type("I juggle")
	d.PressEnter()

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Equal(t, "Good morning, Ada", app.Dashboard.Get().Greeting)
	assert.Equal(t, "I juggle", app.Dashboard.Get().FunFact)
	assert.Contains(t, d.Flash(), "surprise")
	assert.Contains(t, d.View(), "Good morning, Ada")
}

func TestDashboard_ProfileEscCancels(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app, ViewDashboard)

	d.PressKey('p')
	d.PressEsc()

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Contains(t, d.Flash(), "Cancelled.")
	assert.Equal(t, "Good morning", app.Dashboard.Get().Greeting)
}

func TestDashboard_FinanceViewAndBack(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app, ViewDashboard)

	d.PressKey('f')
	assert.Equal(t, ViewFinance, d.ActiveViewID())
	assert.Contains(t, d.View(), "https://www.fidelity.com")

	d.PressEsc()
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
}

func TestDashboard_SignOutReturnsToWelcome(t *testing.T) {
	app, _ := testApp(t)
	ctx := context.Background()
	require.True(t, app.Dashboard.SaveProfile(ctx, "Ada", "I juggle"))
	d := NewTestDriver(t, app, ViewDashboard)

	d.PressKey('s')

	assert.Equal(t, ViewOnboarding, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())
	assert.Equal(t, "Good morning", app.Dashboard.Get().Greeting)
	assert.Empty(t, app.Dashboard.Get().FunFact)
	assert.Contains(t, d.View(), "Welcome to Career Compass")
	assert.Equal(t, "Signed out.", d.Flash())
}

func TestDashboard_QQuits(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app, ViewDashboard)

	d.PressKey('q')

	assert.True(t, d.IsQuitting())
}
