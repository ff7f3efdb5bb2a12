package cli

import "github.com/spf13/cobra"

func newTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's calendar entry for the cohort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.api.FetchToday(cmd.Context())
			if err != nil {
				return err
			}
			renderEntry(cmd.OutOrStdout(), *entry, app.now())
			return nil
		},
	}
}

func newCalendarCmd(app *App) *cobra.Command {
	var upcoming bool

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "List every calendar day of the cohort in date order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.api.FetchAllCalendarEntries(cmd.Context())
			if err != nil {
				return err
			}
			if upcoming {
				today := app.now().Format(dateLayout)
				kept := entries[:0]
				for _, e := range entries {
					if e.Day() >= today {
						kept = append(kept, e)
					}
				}
				entries = kept
			}
			renderCalendar(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().BoolVar(&upcoming, "upcoming", false, "only show today and later")
	return cmd
}
