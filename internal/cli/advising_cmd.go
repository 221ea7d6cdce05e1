package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/compass/internal/advising"
	"github.com/alexanderramin/compass/internal/cli/formatter"
	"github.com/alexanderramin/compass/internal/domain"
	"github.com/spf13/cobra"
)

func newRecommendCmd(app *App) *cobra.Command {
	var school string
	var interests []string

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Ask the advising service which majors fit your interests",
		Example: `  compass recommend --school "Bethune-Cookman University" --interest Robotics --interest "Data Science"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved := make([]string, 0, len(interests))
			for _, in := range interests {
				name, ok := resolveInterest(in)
				if !ok {
					return fmt.Errorf("unknown interest %q (see --help for the list)", in)
				}
				resolved = append(resolved, name)
			}

			stop := startSpinner(app, cmd.ErrOrStderr(), "Finding majors that match your interests...")
			majors, err := app.Advisor.Recommend(cmd.Context(), resolved, school)
			stop()
			if err != nil {
				return fmt.Errorf("%s: %w", advising.UserMessage(err), err)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecommendations(school, resolved, majors))
			return nil
		},
	}

	cmd.Flags().StringVar(&school, "school", "", "School you attend (required)")
	cmd.Flags().StringArrayVar(&interests, "interest", nil,
		"An interest, repeatable. One of: "+strings.Join(domain.InterestOptions, ", "))
	_ = cmd.MarkFlagRequired("school")
	_ = cmd.MarkFlagRequired("interest")

	return cmd
}

func newResourcesCmd(app *App) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "resources [major]",
		Short: "List learning resources for a major (defaults to your dashboard major)",
		RunE: func(cmd *cobra.Command, args []string) error {
			major := app.Dashboard.Get().SelectedMajor
			if len(args) > 0 {
				major = resolveMajor(app, strings.Join(args, " "))
			}

			stop := startSpinner(app, cmd.ErrOrStderr(), "Loading resources...")
			list, err := app.Resources.FetchResources(cmd.Context(), major, query)
			stop()
			if err != nil {
				return fmt.Errorf("%s: %w", advising.UserMessage(err), err)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResources(major, list))
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Narrow results to a topic")

	return cmd
}

// resolveInterest matches s against the interest vocabulary ignoring case.
func resolveInterest(s string) (string, bool) {
	for _, opt := range domain.InterestOptions {
		if strings.EqualFold(opt, strings.TrimSpace(s)) {
			return opt, true
		}
	}
	return "", false
}

// resolveMajor returns the catalog spelling of name when the catalog has
// it in any case, otherwise name unchanged.
func resolveMajor(app *App, name string) string {
	name = strings.TrimSpace(name)
	for _, n := range app.Catalog.Names() {
		if strings.EqualFold(n, name) {
			return n
		}
	}
	return name
}

// startSpinner animates on w only in a terminal so piped output stays clean.
func startSpinner(app *App, w io.Writer, message string) func() {
	if !app.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(w, message)
}
