package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var (
		email         string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			reader := bufio.NewReader(cmd.InOrStdin())

			var err error
			if email == "" {
				if email, err = promptLine(reader, out, "Email: "); err != nil {
					return fmt.Errorf("read email: %w", err)
				}
			}

			var password string
			if passwordStdin {
				password, err = promptLine(reader, out, "")
			} else {
				password, err = promptPassword(out)
			}
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}

			identity, err := app.api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Signed in as %s <%s>\n", identity.DisplayName, identity.Email)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&email, "email", "", "account email (prompted when empty)")
	flags.BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin instead of the terminal")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user and cohort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderIdentity(cmd.OutOrStdout(), app.session.Snapshot())
			return nil
		},
	}
}

func newCohortCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cohort [cohort-id]",
		Short: "Show or switch the cohort used for calendar queries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(out, app.session.Snapshot().CohortID)
				return nil
			}
			if err := app.session.SetCohort(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out, "Cohort set to %s\n", app.session.Snapshot().CohortID)
			return nil
		},
	}
}
