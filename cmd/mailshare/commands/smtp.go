package commands

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/mailshare/internal/credential"
)

func smtpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smtp",
		Short: "Manage credentials for the direct-send target",
	}

	cmd.AddCommand(smtpSetPasswordCmd(), smtpClearPasswordCmd())
	return cmd
}

func smtpSetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-password",
		Short: "Store the SMTP account password in the system keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("SMTP password").
						EchoMode(huh.EchoModePassword).
						Value(&password),
				),
			)
			if err := form.Run(); err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			if password == "" {
				return fmt.Errorf("password must not be empty")
			}

			if err := credential.Set(credential.KeySMTPPassword, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "password stored in keyring")
			return nil
		},
	}
}

func smtpClearPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-password",
		Short: "Remove the stored SMTP password from the keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := credential.Delete(credential.KeySMTPPassword); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "password removed")
			return nil
		},
	}
}
