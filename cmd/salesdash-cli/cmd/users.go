package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/nfrund/salesdash/internal/domain"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

func newUsersCmd(injector func() do.Injector) *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage dashboard accounts in the credential file",
	}

	store := func() (domain.CredentialRepository, error) {
		return do.Invoke[domain.CredentialRepository](injector())
	}

	usersCmd.AddCommand(
		&cobra.Command{
			Use:   "register <username> <password>",
			Short: "Register a new account",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := store()
				if err != nil {
					return err
				}
				result, err := s.Register(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				switch result {
				case domain.RegisterExists:
					return errors.New("username already exists")
				case domain.RegisterEmpty:
					return errors.New("username and password are required")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Registration successful.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "check <username> <password>",
			Short: "Check a username and password",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := store()
				if err != nil {
					return err
				}
				ok, err := s.Authenticate(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("%w: invalid username or password", domain.ErrAuth)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Login successful")
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List registered usernames",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := store()
				if err != nil {
					return err
				}
				creds, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(creds) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No users registered.")
					return nil
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "#\tUSERNAME")
				for i, c := range creds {
					fmt.Fprintf(w, "%d\t%s\n", i+1, c.Username)
				}
				return w.Flush()
			},
		},
	)
	return usersCmd
}
