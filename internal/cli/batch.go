package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jots/internal/notes"
)

func newBatchCommand(ctx context.Context, a *app) *cobra.Command {
	var (
		dateFlag string
		fromFlag string
		toFlag   string
		daysFlag int
		weekFlag bool
		opts     notes.CollectOptions
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Collect every daily note across a range of days.",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := a.load()
			if err != nil {
				return err
			}

			days := daysFlag
			if weekFlag {
				days = 7
			}
			start, end, err := resolveRange(fromFlag, toFlag, dateFlag, days)
			if err != nil {
				return err
			}

			results, err := service.Range(ctx, start, end, opts)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No daily notes between %s and %s\n",
					start.Format(dateLayout), end.Format(dateLayout))
				return nil
			}

			printResults(cmd, service.Manager(), results)
			if opts.DryRun {
				for _, r := range results {
					if r.Diff != "" {
						fmt.Fprintf(cmd.OutOrStdout(), "--- %s\n%s", service.Manager().Rel(r.Path), r.Diff)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "End date in YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&fromFlag, "from", "", "First date in YYYY-MM-DD")
	cmd.Flags().StringVar(&toFlag, "to", "", "Last date in YYYY-MM-DD (default: --date)")
	cmd.Flags().IntVar(&daysFlag, "days", 1, "Number of days ending at --date")
	cmd.Flags().BoolVar(&weekFlag, "week", false, "Shortcut for --days 7")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report and diff without writing")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Re-sort sections even when nothing moves")

	return cmd
}
