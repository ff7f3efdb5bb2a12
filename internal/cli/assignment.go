package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/tsma-calendar-client/internal/models"
)

func newAssignmentsCmd(app *App) *cobra.Command {
	var (
		withProgress bool
		overdueOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "assignments",
		Short: "List the cohort's assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.api.FetchAllAssignments(cmd.Context(), withProgress, false)
			if err != nil {
				return err
			}
			now := app.now()
			if overdueOnly {
				kept := list[:0]
				for _, a := range list {
					if a.IsOverdue(now) {
						kept = append(kept, a)
					}
				}
				list = kept
			}
			renderAssignments(cmd.OutOrStdout(), list, now)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&withProgress, "progress", true, "include your progress")
	flags.BoolVar(&overdueOnly, "overdue", false, "only show overdue assignments")
	return cmd
}

func newAssignmentCmd(app *App) *cobra.Command {
	var withProgress, withFAQs bool

	cmd := &cobra.Command{
		Use:   "assignment <assignment-id>",
		Short: "Show one assignment with its description and FAQs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.api.FetchAssignment(cmd.Context(), args[0], withProgress, withFAQs)
			if err != nil {
				return err
			}
			renderAssignment(cmd.OutOrStdout(), *a, app.now())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&withProgress, "progress", true, "include your progress")
	flags.BoolVar(&withFAQs, "faqs", true, "include FAQs")
	return cmd
}

func newProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Record or clear progress on an assignment",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <assignment-id> <notStarted|inProgress|complete>",
		Short: "Record progress",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := models.ParseProgressState(args[1])
			if err != nil {
				return err
			}
			a, err := app.api.SubmitAssignmentProgress(cmd.Context(), args[0], state)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", a.Name, status(*a, app.now()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear <assignment-id>",
		Short: "Remove recorded progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.api.DeleteAssignmentProgress(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Progress cleared for %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func newFAQCmd(app *App) *cobra.Command {
	var question, answer string

	cmd := &cobra.Command{
		Use:   "faq <assignment-id>",
		Short: "Ask (or answer) a question on an assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.api.SubmitFAQ(cmd.Context(), args[0], question, answer); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "FAQ submitted.")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&question, "question", "q", "", "question text")
	flags.StringVarP(&answer, "answer", "a", "", "answer text (optional)")
	return cmd
}
