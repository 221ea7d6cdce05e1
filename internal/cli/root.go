package cli

import (
	"github.com/alexanderramin/compass/internal/advising"
	"github.com/alexanderramin/compass/internal/catalog"
	"github.com/alexanderramin/compass/internal/config"
	"github.com/alexanderramin/compass/internal/onboarding"
	"github.com/alexanderramin/compass/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds everything the commands and views work against.
type App struct {
	Machine    *onboarding.Machine
	Onboarding *session.OnboardingStore
	Dashboard  *session.DashboardStore
	Catalog    *catalog.Catalog
	Advisor    advising.Recommender
	Resources  advising.ResourceFetcher
	Feed       *advising.ResourceFeed
	Log        *zap.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool

	// RunProgram runs a TUI model to completion. Nil uses a full-screen
	// bubbletea program.
	RunProgram func(tea.Model) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "compass" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "compass",
		Short:         "Career Compass: find your major and plan your degree",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runTUI(cmd.Context(), app, ViewOnboarding)
		},
	}

	// Parsed early by main to build the App; registered here so cobra
	// accepts them and lists them in help.
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newOnboardCmd(app),
		newDashboardCmd(app),
		newMajorsCmd(app),
		newRecommendCmd(app),
		newResourcesCmd(app),
		newProfileCmd(app),
		newSignOutCmd(app),
	)

	return root
}
