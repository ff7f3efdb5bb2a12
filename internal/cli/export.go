package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/tsma-calendar-client/internal/service"
	"github.com/noah-isme/tsma-calendar-client/pkg/export"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		formatFlag string
		label      string
		prune      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "export <calendar|assignments>",
		Short: "Write the calendar or assignment list to a CSV or PDF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := service.ParseExportKind(args[0])
			if err != nil {
				return err
			}
			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			exports, err := app.exportService()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if prune > 0 {
				removed, err := exports.Cleanup(prune)
				if err != nil {
					return err
				}
				for _, name := range removed {
					fmt.Fprintf(out, "removed %s\n", name)
				}
			}

			if label == "" {
				label = app.session.Snapshot().CohortID
			}
			result, err := exports.Generate(cmd.Context(), service.ExportRequest{Kind: kind, Format: format, Label: label})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %d rows to %s\n", result.Rows, result.Path)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&formatFlag, "format", string(export.FormatCSV), "output format: csv or pdf")
	flags.StringVar(&label, "label", "", "label used in the file name (defaults to the cohort)")
	flags.DurationVar(&prune, "prune", 0, "first delete exports older than this age")
	return cmd
}
