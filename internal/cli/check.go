package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/faizmokh/jots/internal/files"
	"github.com/faizmokh/jots/internal/notes"
)

// ErrPending is returned by check when a note still has entries to collect.
var ErrPending = errors.New("entries waiting to be collected")

func newCheckCommand(ctx context.Context, a *app) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "check [notes...]",
		Short: "Report notes whose tagged entries are not collected yet.",
		Long: "Inspect the given notes, or the daily note of --date, without writing. " +
			"Exits with an error when any note would change.",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := a.load()
			if err != nil {
				return err
			}

			paths := args
			if len(paths) == 0 {
				date, err := resolveDate(dateFlag)
				if err != nil {
					return err
				}
				paths = []string{service.Manager().DailyPath(date)}
			}

			var results []notes.Result
			for _, path := range paths {
				res, err := service.Check(ctx, path)
				if err != nil && !errors.Is(err, files.ErrNoteNotFound) {
					return err
				}
				results = append(results, res)
			}

			printReports(cmd, service.Manager(), results)

			if pending := notes.Summarize(results).Pending; pending > 0 {
				return fmt.Errorf("%d of %d notes: %w", pending, len(results), ErrPending)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Daily note date in YYYY-MM-DD (default: today)")

	return cmd
}

func printReports(cmd *cobra.Command, manager *files.Manager, results []notes.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleDouble)
	t.AppendHeader(table.Row{
		text.FgGreen.Sprintf("Note"),
		text.FgGreen.Sprintf("Section"),
		text.FgGreen.Sprintf("Entries"),
		text.FgGreen.Sprintf("Pending"),
		text.FgGreen.Sprintf("Duplicates"),
		text.FgGreen.Sprintf("Status"),
	})

	for _, r := range results {
		section := "none"
		if r.Report.HasSection {
			section = r.Report.Section.Fold.String()
			if r.Report.HeaderRewrite {
				section += " (refold)"
			}
		}
		if r.Status == notes.StatusMissing {
			section = "-"
		}
		t.AppendRow(table.Row{
			manager.Rel(r.Path),
			section,
			len(r.Report.Entries),
			r.Report.Pending,
			r.Report.Duplicates,
			statusText(r.Status),
		})
	}
	t.Render()
}
