package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/compass/internal/cli/formatter"
	"github.com/alexanderramin/compass/internal/session"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View or personalize your profile",
	}
	cmd.AddCommand(newProfileShowCmd(app), newProfileSetCmd(app))
	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your greeting, fun fact and major",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfile(app.Dashboard.Get()))
			return nil
		},
	}
}

func newProfileSetCmd(app *App) *cobra.Command {
	var name, funFact string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set your name and fun fact for the dashboard greeting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Dashboard.SaveProfile(cmd.Context(), strings.TrimSpace(name), strings.TrimSpace(funFact)) {
				return errors.New("--name is required to personalize your dashboard")
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfile(app.Dashboard.Get()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Your name")
	cmd.Flags().StringVar(&funFact, "fun-fact", "", "Something interesting about you")

	return cmd
}

func newSignOutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Forget everything Career Compass stored about you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session.SignOut(cmd.Context(), app.Onboarding, app.Dashboard)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Signed out. Your saved progress was cleared."))
			return nil
		},
	}
}
