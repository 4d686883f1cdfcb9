package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent share operations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := st.RecentShares(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no shares recorded yet")
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(),
					"%s  %-8s %-24s %s (%d links, %d files)\n",
					r.CreatedAt.Local().Format("2006-01-02 15:04"),
					r.Target, r.Recipient, r.Subject,
					r.LinkCount, r.AttachmentCount,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries to show")
	return cmd
}
