package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/compass/internal/advising"
	"github.com/alexanderramin/compass/internal/cli/formatter"
	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/session"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ── messages ─────────────────────────────────────────────────────────────────

// resourcesLoadedMsg carries the feed's list after a refresh.
type resourcesLoadedMsg struct {
	major     string
	resources []domain.Resource
	err       error
}

// ── view ─────────────────────────────────────────────────────────────────────

// dashboardView is the home screen after onboarding: greeting, the roadmap
// for the selected major, learning resources and the Financial Buddy panel.
type dashboardView struct {
	state *SharedState

	search    textinput.Model
	searching bool
	query     string

	major     string // major the resource list was requested for
	loading   bool
	resources []domain.Resource
	resErr    error
}

func newDashboardView(state *SharedState) *dashboardView {
	ti := textinput.New()
	ti.Placeholder = "Search for specific topics..."
	ti.Prompt = "/ "
	ti.CharLimit = 120
	return &dashboardView{
		state:  state,
		search: ti,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

// CapturesInput is true while the search box has focus.
func (v *dashboardView) CapturesInput() bool { return v.searching }

func (v *dashboardView) ShortHelp() []key.Binding {
	if v.searching {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4/←→", "year")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finance")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sign out")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	v.major = v.state.App.Dashboard.Get().SelectedMajor
	return v.loadResources()
}

// ── data loading ─────────────────────────────────────────────────────────────

func (v *dashboardView) loadResources() tea.Cmd {
	feed := v.state.App.Feed
	major, query := v.major, v.query
	v.loading = true
	return func() tea.Msg {
		list, err := feed.Refresh(context.Background(), major, query)
		return resourcesLoadedMsg{major: major, resources: list, err: err}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resourcesLoadedMsg:
		if msg.major != v.major {
			return v, nil
		}
		v.loading = false
		v.resources = msg.resources
		v.resErr = msg.err
		return v, nil

	case refreshViewMsg:
		if major := v.state.App.Dashboard.Get().SelectedMajor; major != v.major {
			v.major = major
			return v, v.loadResources()
		}
		return v, nil

	case tea.KeyMsg:
		if v.searching {
			return v, v.handleSearchKey(msg)
		}
		return v, v.handleKey(msg)
	}

	if v.searching {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *dashboardView) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		v.searching = false
		v.search.Blur()
		v.query = strings.TrimSpace(v.search.Value())
		return v.loadResources()
	case tea.KeyEsc:
		v.searching = false
		v.search.Blur()
		v.search.SetValue(v.query)
		return nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	return cmd
}

func (v *dashboardView) handleKey(msg tea.KeyMsg) tea.Cmd {
	ctx := context.Background()
	app := v.state.App

	switch msg.String() {
	case "1", "2", "3", "4":
		app.Dashboard.SetActiveYear(ctx, domain.Years()[msg.Runes[0]-'1'])
	case "left", "h":
		v.shiftYear(ctx, -1)
	case "right", "l", "tab":
		v.shiftYear(ctx, 1)
	case "/":
		v.searching = true
		return v.search.Focus()
	case "r":
		return v.loadResources()
	case "p":
		return v.editProfile()
	case "f":
		return pushView(newFinanceView(v.state))
	case "s":
		session.SignOut(ctx, app.Onboarding, app.Dashboard)
		return tea.Batch(resetStack(newOnboardingView(v.state)), flash("Signed out."))
	}
	return nil
}

func (v *dashboardView) shiftYear(ctx context.Context, delta int) {
	years := domain.Years()
	cur := v.state.App.Dashboard.Get().ActiveYear
	i := 0
	for j, y := range years {
		if y == cur {
			i = j
		}
	}
	i = (i + delta + len(years)) % len(years)
	v.state.App.Dashboard.SetActiveYear(ctx, years[i])
}

// editProfile opens the profile form. Saving with a name personalizes the
// greeting; an empty name leaves everything as it was.
func (v *dashboardView) editProfile() tea.Cmd {
	dash := v.state.App.Dashboard
	name := ""
	fact := dash.Get().FunFact
	form := profileForm(&name, &fact)
	return startWizardCmd(v.state, "Profile", form, func() tea.Cmd {
		if !dash.SaveProfile(context.Background(), strings.TrimSpace(name), strings.TrimSpace(fact)) {
			return flash("Enter your name to personalize your dashboard.")
		}
		return flash("Check your dashboard for a surprise! 🎉")
	})
}

// ── view ─────────────────────────────────────────────────────────────────────

func (v *dashboardView) View() string {
	d := v.state.App.Dashboard.Get()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + formatter.StyleHeader.Render(d.Greeting) + "\n")
	b.WriteString("  " + formatter.FunFactLine(d.FunFact) + "\n\n")

	b.WriteString(v.renderRoadmap(d))
	b.WriteString("\n")
	b.WriteString(v.renderResources(d))
	b.WriteString("\n")
	b.WriteString(formatter.RenderBox("Financial Buddy",
		formatter.Dim("Powered by "+domain.FinancePartner)+"\n"+
			"Take control of your financial future with our partner, "+domain.FinancePartner+".\n\n"+
			formatter.StyleBlue.Render("f: Explore Financial Buddy")))
	b.WriteString("\n")
	return b.String()
}

func (v *dashboardView) renderRoadmap(d domain.DashboardState) string {
	var b strings.Builder
	b.WriteString("  " + formatter.Bold("Your Roadmap for "+d.SelectedMajor) + "\n")
	b.WriteString("  " + formatter.Dim("Track your progress through your degree") + "\n\n")
	b.WriteString("  " + formatter.YearTabs(d.ActiveYear) + "\n\n")

	major, err := v.state.App.Catalog.Find(d.SelectedMajor)
	if err != nil {
		b.WriteString("  " + formatter.Dim(fmt.Sprintf("No roadmap is available for %s yet.", d.SelectedMajor)) + "\n")
		return b.String()
	}
	for _, line := range strings.Split(formatter.FormatYear(major, d.ActiveYear), "\n") {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

func (v *dashboardView) renderResources(d domain.DashboardState) string {
	var b strings.Builder
	b.WriteString("  " + formatter.Bold("Learning Resources") + "\n")
	b.WriteString("  " + formatter.Dim("Recommended materials to support your studies") + "\n")
	if v.searching {
		b.WriteString("  " + v.search.View() + "\n\n")
	} else if v.query != "" {
		b.WriteString("  " + formatter.Dim("search: "+v.query) + "\n\n")
	} else {
		b.WriteString("\n")
	}

	switch {
	case v.loading && len(v.resources) == 0:
		b.WriteString("  " + formatter.Dim("Loading resources...") + "\n")
	default:
		b.WriteString(formatter.ResourceLines(v.resources, max(v.state.Width-16, 20)))
	}
	if v.resErr != nil {
		b.WriteString("  " + formatter.StyleYellow.Render(advising.UserMessage(v.resErr)) + "\n")
	}
	return b.String()
}
