// Package notes applies the jots rewrite to notes on disk.
package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/faizmokh/jots/internal/files"
	"github.com/faizmokh/jots/internal/jots"
	"github.com/faizmokh/jots/internal/logging"
)

// Status describes what happened to a single note.
type Status string

const (
	StatusCollected Status = "collected"
	StatusUnchanged Status = "unchanged"
	StatusPending   Status = "pending"
	StatusMissing   Status = "missing"
)

// CollectOptions tune a Collect call.
type CollectOptions struct {
	// DryRun computes the result and diff without writing.
	DryRun bool
	// Force rebuilds an existing section even when nothing moves.
	Force bool
}

// Result reports the outcome for one note.
type Result struct {
	Path   string
	Date   time.Time
	Status Status
	// Moved counts entries pulled into the section from elsewhere.
	Moved      int
	Duplicates int
	// Entries is the number of distinct entries the section ends up with.
	Entries int
	Changed bool
	// Diff is only filled for dry runs that would change the note.
	Diff   string
	Report jots.Report
}

// Service reads, rewrites and writes notes. Rewrites of the same path are
// serialized.
type Service struct {
	manager *files.Manager
	cfg     jots.Config
	logger  logging.Logger
	locks   *pathLocks
}

// NewService wires a service. cfg is normalized and must be valid.
func NewService(manager *files.Manager, cfg jots.Config, logger logging.Logger) (*Service, error) {
	if manager == nil {
		return nil, errors.New("notes: files manager is required")
	}
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		manager: manager,
		cfg:     cfg,
		logger:  logging.OrNoOp(logger),
		locks:   newPathLocks(),
	}, nil
}

// Config returns the engine configuration in use.
func (s *Service) Config() jots.Config {
	return s.cfg
}

// Manager exposes the vault the service works on.
func (s *Service) Manager() *files.Manager {
	return s.manager
}

// CollectText rewrites text in memory.
func (s *Service) CollectText(text string, opts CollectOptions) (string, Result) {
	report := jots.Inspect(text, s.cfg)

	var rewriteOpts []jots.Option
	if opts.Force {
		rewriteOpts = append(rewriteOpts, jots.WithResort())
	}
	out, changed := jots.Rewrite(text, s.cfg, rewriteOpts...)
	changed = changed && out != text

	res := Result{
		Status:     StatusUnchanged,
		Moved:      report.Pending,
		Duplicates: report.Duplicates,
		Entries:    len(jots.Dedupe(report.Entries)),
		Changed:    changed,
		Report:     report,
	}
	if changed {
		res.Status = StatusCollected
		if opts.DryRun {
			res.Status = StatusPending
			res.Diff = LineDiff(text, out)
		}
	}
	return out, res
}

// Collect rewrites the note at path, writing it back unless opts.DryRun is
// set. Relative paths resolve against the vault root.
func (s *Service) Collect(ctx context.Context, path string, opts CollectOptions) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	path = s.manager.Resolve(path)
	log := s.logger.WithFields(map[string]any{"path": s.manager.Rel(path)})

	unlock := s.locks.lock(path)
	defer unlock()

	before, err := s.manager.Read(path)
	if err != nil {
		return Result{Path: path, Status: StatusMissing}, err
	}

	after, res := s.CollectText(before, opts)
	res.Path = path
	if !res.Changed {
		log.Debug("note unchanged", "entries", res.Entries)
		return res, nil
	}
	if opts.DryRun {
		log.Debug("note pending", "moved", res.Moved)
		return res, nil
	}

	if err := s.manager.Write(path, after); err != nil {
		return res, fmt.Errorf("write %s: %w", s.manager.Rel(path), err)
	}
	log.Debug("note collected", "moved", res.Moved, "duplicates", res.Duplicates)
	return res, nil
}

// CollectDaily runs Collect on the daily note for date.
func (s *Service) CollectDaily(ctx context.Context, date time.Time, opts CollectOptions) (Result, error) {
	res, err := s.Collect(ctx, s.manager.DailyPath(date), opts)
	res.Date = date
	return res, err
}

// Check inspects the note at path without touching it. The status is
// StatusPending when a rewrite would change it.
func (s *Service) Check(ctx context.Context, path string) (Result, error) {
	res, err := s.Collect(ctx, path, CollectOptions{DryRun: true})
	if err != nil {
		return res, err
	}
	res.Diff = ""
	return res, nil
}

// Range collects every daily note dated between start and end inclusive,
// one at a time. Notes that disappear mid-run are reported as missing.
// Cancelling ctx stops the run before the next note.
func (s *Service) Range(ctx context.Context, start, end time.Time, opts CollectOptions) ([]Result, error) {
	notes, err := s.manager.DailyNotes(start, end)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(notes))
	for _, note := range notes {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := s.Collect(ctx, note.Path, opts)
		res.Date = note.Date
		if err != nil {
			if errors.Is(err, files.ErrNoteNotFound) {
				s.logger.Warn("note vanished during batch", "path", s.manager.Rel(note.Path))
				results = append(results, res)
				continue
			}
			return results, err
		}
		results = append(results, res)
	}

	sum := Summarize(results)
	s.logger.Info("batch finished",
		"from", start.Format("2006-01-02"),
		"to", end.Format("2006-01-02"),
		"notes", sum.Notes,
		"collected", sum.Collected,
		"pending", sum.Pending,
		"moved", sum.Moved,
	)
	return results, nil
}

// Summary totals a set of results.
type Summary struct {
	Notes     int
	Collected int
	Pending   int
	Unchanged int
	Missing   int
	Moved     int
}

// Summarize counts results by status.
func Summarize(results []Result) Summary {
	sum := Summary{Notes: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusCollected:
			sum.Collected++
		case StatusPending:
			sum.Pending++
		case StatusUnchanged:
			sum.Unchanged++
		case StatusMissing:
			sum.Missing++
		}
		if r.Changed {
			sum.Moved += r.Moved
		}
	}
	return sum
}
