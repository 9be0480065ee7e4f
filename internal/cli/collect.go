package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jots/internal/files"
	"github.com/faizmokh/jots/internal/notes"
)

func newCollectCommand(ctx context.Context, a *app) *cobra.Command {
	var (
		dateFlag  string
		stdinFlag bool
		opts      notes.CollectOptions
	)

	cmd := &cobra.Command{
		Use:   "collect [notes...]",
		Short: "Move tagged entries into the collection callout.",
		Long: "Rewrite the given notes, or the daily note of --date (default today), " +
			"so every tagged entry ends up in the collection callout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := a.load()
			if err != nil {
				return err
			}

			if stdinFlag {
				if len(args) > 0 {
					return errors.New("--stdin does not take note arguments")
				}
				return collectStdin(cmd, a.stdin, service, opts)
			}

			if len(args) == 0 {
				date, err := resolveDate(dateFlag)
				if err != nil {
					return err
				}
				res, err := service.CollectDaily(ctx, date, opts)
				if err != nil {
					if errors.Is(err, files.ErrNoteNotFound) {
						fmt.Fprintf(cmd.OutOrStdout(), "No daily note for %s\n", date.Format(dateLayout))
						return nil
					}
					return err
				}
				printCollectResult(cmd, service.Manager(), res)
				return nil
			}

			for _, path := range args {
				res, err := service.Collect(ctx, path, opts)
				if err != nil {
					return err
				}
				printCollectResult(cmd, service.Manager(), res)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Daily note date in YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read a note from stdin and write the result to stdout")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print a diff instead of writing")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Re-sort the section even when nothing moves")

	return cmd
}

func collectStdin(cmd *cobra.Command, in io.Reader, service *notes.Service, opts notes.CollectOptions) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	out, res := service.CollectText(string(data), opts)
	if opts.DryRun {
		fmt.Fprint(cmd.OutOrStdout(), res.Diff)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func printCollectResult(cmd *cobra.Command, manager *files.Manager, res notes.Result) {
	out := cmd.OutOrStdout()
	rel := manager.Rel(res.Path)
	switch res.Status {
	case notes.StatusCollected:
		fmt.Fprintf(out, "Collected %d entries into %s (%d in section)\n", res.Moved, rel, res.Entries)
	case notes.StatusPending:
		fmt.Fprintf(out, "--- %s\n%s", rel, res.Diff)
	default:
		fmt.Fprintf(out, "Nothing to collect in %s\n", rel)
	}
}
