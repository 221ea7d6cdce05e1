package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var errNotInteractive = errors.New("this command needs an interactive terminal")

func newOnboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Start the onboarding wizard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			return runTUI(cmd.Context(), app, ViewOnboarding)
		},
	}
}

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open your dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			return runTUI(cmd.Context(), app, ViewDashboard)
		},
	}
}

// runTUI runs the full-screen app from start. Onboarding progress belongs
// to the session, so it is discarded when the program exits.
func runTUI(ctx context.Context, app *App, start ViewID) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer app.Onboarding.EndSession(ctx)

	m := newAppModel(app, start)
	if app.RunProgram != nil {
		return app.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
