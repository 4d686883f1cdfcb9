package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func recipientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipients",
		Short: "Manage the numbered recipient slots",
	}

	cmd.AddCommand(
		recipientsSetCmd(),
		recipientsListCmd(),
		recipientsDeleteCmd(),
	)
	return cmd
}

func recipientsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <slot> <address>",
		Short: "Bind an email address to a recipient slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[0])
			if err != nil || slot < 1 {
				return fmt.Errorf("slot must be a positive number, got %q", args[0])
			}

			address := strings.TrimSpace(args[1])
			if !strings.Contains(address, "@") {
				return fmt.Errorf("%q does not look like an email address", address)
			}

			if err := st.SetRecipient(cmd.Context(), slot, address); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "slot %d -> %s\n", slot, address)
			return nil
		},
	}
}

func recipientsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured recipient slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recipients, err := st.ListRecipients(cmd.Context())
			if err != nil {
				return err
			}
			if len(recipients) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no recipients configured")
				return nil
			}
			for _, r := range recipients {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", r.Slot, r.Address)
			}
			return nil
		},
	}
}

func recipientsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slot>",
		Short: "Remove a recipient slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("slot must be a number, got %q", args[0])
			}
			return st.DeleteRecipient(cmd.Context(), slot)
		},
	}
}
