package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jots/internal/config"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or print the vault settings.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write the default settings file unless one exists.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				vault, err := a.vaultDir()
				if err != nil {
					return err
				}
				path, created, err := config.Init(vault)
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings as YAML.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.load(); err != nil {
					return err
				}
				data, err := a.cfg.YAML()
				if err != nil {
					return err
				}
				source := a.cfg.Path
				if source == "" {
					source = "defaults"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n%s", source, data)
				return nil
			},
		},
	)

	return cmd
}
