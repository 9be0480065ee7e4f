package cli

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/faizmokh/jots/internal/files"
	"github.com/faizmokh/jots/internal/notes"
)

const dateLayout = "2006-01-02"

func resolveDate(dateFlag string) (time.Time, error) {
	if dateFlag == "" {
		now := time.Now().In(time.Local)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}

	parsed, err := time.ParseInLocation(dateLayout, dateFlag, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date: %w", err)
	}
	return parsed, nil
}

// resolveRange turns --from/--to or --days/--date into an inclusive range.
// --from wins over --days; a missing --to means the reference date.
func resolveRange(fromFlag, toFlag, dateFlag string, days int) (time.Time, time.Time, error) {
	end, err := resolveDate(dateFlag)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if toFlag != "" {
		if end, err = resolveDate(toFlag); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if fromFlag != "" {
		start, err := resolveDate(fromFlag)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, fmt.Errorf("--from %s is after --to %s", fromFlag, end.Format(dateLayout))
		}
		return start, end, nil
	}

	if days <= 0 {
		days = 1
	}
	return end.AddDate(0, 0, -(days - 1)), end, nil
}

func statusText(status notes.Status) string {
	switch status {
	case notes.StatusCollected:
		return text.FgGreen.Sprintf("%s", status)
	case notes.StatusPending:
		return text.FgHiYellow.Sprintf("%s", status)
	case notes.StatusMissing:
		return text.FgHiRed.Sprintf("%s", status)
	default:
		return string(status)
	}
}

func printResults(cmd *cobra.Command, manager *files.Manager, results []notes.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleDouble)
	t.AppendHeader(table.Row{
		text.FgGreen.Sprintf("Note"),
		text.FgGreen.Sprintf("Entries"),
		text.FgGreen.Sprintf("Moved"),
		text.FgGreen.Sprintf("Duplicates"),
		text.FgGreen.Sprintf("Status"),
	})

	for _, r := range results {
		t.AppendRow(table.Row{manager.Rel(r.Path), r.Entries, r.Moved, r.Duplicates, statusText(r.Status)})
	}

	sum := notes.Summarize(results)
	t.AppendFooter(table.Row{
		fmt.Sprintf("%d notes", sum.Notes),
		"",
		sum.Moved,
		"",
		fmt.Sprintf("%d collected, %d pending", sum.Collected, sum.Pending),
	})
	t.Render()
}
