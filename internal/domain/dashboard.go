package domain

// DashboardState holds display preferences that survive across views.
type DashboardState struct {
	ActiveYear    YearKey `json:"activeYear"`
	Greeting      string  `json:"greeting"`
	FunFact       string  `json:"funFact"`
	SelectedMajor string  `json:"selectedMajor"`
}

// NewDashboardState returns the defaults for the given local hour.
func NewDashboardState(hour int) DashboardState {
	return DashboardState{
		ActiveYear:    YearFreshman,
		Greeting:      GreetingFor(hour, ""),
		FunFact:       "",
		SelectedMajor: DefaultMajor,
	}
}

// GreetingFor derives the dashboard greeting from the hour of day,
// addressing name when one is given.
func GreetingFor(hour int, name string) string {
	var g string
	switch {
	case hour < 12:
		g = "Good morning"
	case hour < 18:
		g = "Good afternoon"
	default:
		g = "Good evening"
	}
	if name != "" {
		g += ", " + name
	}
	return g
}

// Resource is one learning resource suggested for a major.
type Resource struct {
	Title string       `json:"title"`
	Type  ResourceType `json:"type"`
	URL   string       `json:"url"`
}
