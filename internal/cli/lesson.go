package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLessonCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lesson <lesson-id>",
		Short: "Show a lesson outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outline, err := app.api.FetchLessonOutline(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderOutline(cmd.OutOrStdout(), *outline, app.now())
			return nil
		},
	}
}

func newFeedbackCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "feedback <lesson-id> <text...>",
		Short: "Send feedback about a lesson",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			if err := app.api.SubmitLessonFeedback(cmd.Context(), args[0], text); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Thanks for the feedback.")
			return nil
		},
	}
}
