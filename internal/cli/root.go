package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	appErrors "github.com/noah-isme/tsma-calendar-client/pkg/errors"
)

// NewRootCmd builds the command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	var showMetrics bool

	root := &cobra.Command{
		Use:           "tsma",
		Short:         "Mountainland calendar, assignments and lessons from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if showMetrics {
				renderMetrics(cmd.ErrOrStderr(), app.metrics.Snapshot())
			}
		},
	}
	root.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "print request metrics after the command")

	root.AddCommand(newLoginCmd(app))
	root.AddCommand(newLogoutCmd(app))
	root.AddCommand(newWhoAmICmd(app))
	root.AddCommand(newCohortCmd(app))
	root.AddCommand(newTodayCmd(app))
	root.AddCommand(newCalendarCmd(app))
	root.AddCommand(newAssignmentsCmd(app))
	root.AddCommand(newAssignmentCmd(app))
	root.AddCommand(newProgressCmd(app))
	root.AddCommand(newFAQCmd(app))
	root.AddCommand(newLessonCmd(app))
	root.AddCommand(newFeedbackCmd(app))
	root.AddCommand(newExportCmd(app))

	return root
}

// ReportError prints err for a terminal user and, when the session is missing
// or was rejected, how to sign in again.
func ReportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "tsma: %v\n", err)
	if appErrors.RequiresLogin(err) {
		fmt.Fprintln(w, "Your session is missing or expired. Run `tsma login` to sign in again.")
	}
}
