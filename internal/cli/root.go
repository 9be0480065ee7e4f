package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/faizmokh/jots/internal/ui"
)

// NewRootCommand creates the top-level Cobra command to host subcommands and TUI launcher.
func NewRootCommand(ctx context.Context) *cobra.Command {
	return newRootCommand(ctx, newApp())
}

func newRootCommand(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jots",
		Short: "Collect tagged entries of your markdown notes into one callout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := a.load()
			if err != nil {
				return err
			}
			m := ui.NewModel(ctx, service)
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&a.vault, "vault", "", "Vault directory (default: $JOTS_VAULT or the current directory)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override log.level from the config file")

	cmd.AddCommand(
		newCollectCommand(ctx, a),
		newBatchCommand(ctx, a),
		newCheckCommand(ctx, a),
		newConfigCommand(a),
		newVersionCommand(),
	)

	return cmd
}

// ExecuteCommand is a thin wrapper that executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	return NewRootCommand(ctx).ExecuteContext(ctx)
}

// Main is a helper used by cmd/jots/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
