package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/mailshare/internal/store"
	"github.com/nhle/mailshare/internal/theme"
)

func targetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Inspect and choose the dispatch target",
	}

	cmd.AddCommand(targetsListCmd(), targetsChooseCmd())
	return cmd
}

func targetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available dispatch targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, _, err := st.GetSetting(cmd.Context(), store.SettingDefaultTarget)
			if err != nil {
				return err
			}
			for _, d := range registry.All() {
				marker := " "
				if d.ID() == def {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n",
					marker, theme.TargetLabelStyle(d.ID()).Render(d.ID()), d.Name())
			}
			return nil
		},
	}
}

func targetsChooseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "choose",
		Short: "Pick the default dispatch target interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := registry.Choose()
			if err != nil {
				return err
			}
			if err := st.SetSetting(cmd.Context(), store.SettingDefaultTarget, d.ID()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "default target: %s\n", d.ID())
			return nil
		},
	}
}
