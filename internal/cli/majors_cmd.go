package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/compass/internal/cli/formatter"
	"github.com/alexanderramin/compass/internal/domain"
	"github.com/spf13/cobra"
)

func newMajorsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "majors",
		Short: "Browse the major catalog",
	}
	cmd.AddCommand(newMajorsListCmd(app), newMajorsShowCmd(app))
	return cmd
}

func newMajorsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every major in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMajorList(app.Catalog.University(), app.Catalog.Majors()))
			return nil
		},
	}
}

func newMajorsShowCmd(app *App) *cobra.Command {
	var year string

	cmd := &cobra.Command{
		Use:   "show <major>",
		Short: "Show the four-year roadmap for a major",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			major, err := app.Catalog.Find(resolveMajor(app, strings.Join(args, " ")))
			if err != nil {
				return err
			}

			var only *domain.YearKey
			if year != "" {
				y, err := domain.ParseYearKey(year)
				if err != nil {
					return err
				}
				only = &y
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoadmap(major, only))
			return nil
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "Only show one year (freshman, sophomore, junior, senior)")

	return cmd
}
