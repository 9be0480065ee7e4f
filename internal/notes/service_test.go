package notes

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faizmokh/jots/internal/files"
	"github.com/faizmokh/jots/internal/jots"
	"github.com/faizmokh/jots/internal/logging"
)

const (
	rawNote       = "# Day\n- [a] buy milk\n"
	collectedNote = "# Day\n\n> [!jots]\n> - [a] buy milk\n"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	tmp := t.TempDir()
	mgr, err := files.NewManager(tmp, files.WithDailyNotes("daily", ""))
	require.NoError(t, err)
	svc, err := NewService(mgr, jots.DefaultConfig(), logging.NoOp())
	require.NoError(t, err)
	return svc, tmp
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewServiceRejectsInvalidConfig(t *testing.T) {
	mgr, err := files.NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = NewService(mgr, jots.Config{SectionName: "x"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jots.ErrInvalidConfig))

	_, err = NewService(nil, jots.DefaultConfig(), nil)
	require.Error(t, err)
}

func TestCollectWritesNote(t *testing.T) {
	svc, tmp := newTestService(t)
	path := filepath.Join(tmp, "inbox.md")
	writeFile(t, path, rawNote)

	res, err := svc.Collect(context.Background(), "inbox.md", CollectOptions{})
	require.NoError(t, err)
	assert.Equal(t, StatusCollected, res.Status)
	assert.Equal(t, path, res.Path)
	assert.Equal(t, 1, res.Moved)
	assert.Equal(t, 1, res.Entries)
	assert.True(t, res.Changed)
	assert.Empty(t, res.Diff)
	assert.Equal(t, collectedNote, readFile(t, path))

	again, err := svc.Collect(context.Background(), path, CollectOptions{})
	require.NoError(t, err)
	assert.Equal(t, StatusUnchanged, again.Status)
	assert.False(t, again.Changed)
}

func TestCollectDryRunLeavesFileAlone(t *testing.T) {
	svc, tmp := newTestService(t)
	path := filepath.Join(tmp, "inbox.md")
	writeFile(t, path, rawNote)

	res, err := svc.Collect(context.Background(), path, CollectOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, res.Status)
	assert.Contains(t, res.Diff, "  # Day\n")
	assert.Contains(t, res.Diff, "- - [a] buy milk\n")
	assert.Contains(t, res.Diff, "+ > [!jots]\n")
	assert.Equal(t, rawNote, readFile(t, path))
}

func TestCollectForceResortsSection(t *testing.T) {
	svc, tmp := newTestService(t)
	path := filepath.Join(tmp, "inbox.md")
	writeFile(t, path, "> [!jots]\n> - [a] later\n> - [a] (time:: 08:00) first\n")

	res, err := svc.Collect(context.Background(), path, CollectOptions{})
	require.NoError(t, err)
	assert.Equal(t, StatusUnchanged, res.Status)

	res, err = svc.Collect(context.Background(), path, CollectOptions{Force: true})
	require.NoError(t, err)
	assert.Equal(t, StatusCollected, res.Status)
	assert.Equal(t, "> [!jots]\n> - [a] (time:: 08:00) first\n> - [a] later\n", readFile(t, path))
}

func TestCollectMissingNote(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Collect(context.Background(), "nope.md", CollectOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, files.ErrNoteNotFound))
	assert.Equal(t, StatusMissing, res.Status)
}

func TestCollectHonorsCancelledContext(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Collect(ctx, "whatever.md", CollectOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollectDailyUsesDailyPath(t *testing.T) {
	svc, tmp := newTestService(t)
	date := time.Date(2025, time.November, 2, 0, 0, 0, 0, time.Local)
	path := filepath.Join(tmp, "daily", "2025-11-02.md")
	writeFile(t, path, rawNote)

	res, err := svc.CollectDaily(context.Background(), date, CollectOptions{})
	require.NoError(t, err)
	assert.Equal(t, path, res.Path)
	assert.True(t, res.Date.Equal(date))
	assert.Equal(t, collectedNote, readFile(t, path))
}

func TestCheckReportsPendingWithoutWriting(t *testing.T) {
	svc, tmp := newTestService(t)
	path := filepath.Join(tmp, "inbox.md")
	writeFile(t, path, rawNote)

	res, err := svc.Check(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, res.Status)
	assert.Equal(t, 1, res.Report.Pending)
	assert.Empty(t, res.Diff)
	assert.Equal(t, rawNote, readFile(t, path))
}

func TestRangeCollectsDailyNotesInOrder(t *testing.T) {
	svc, tmp := newTestService(t)
	daily := filepath.Join(tmp, "daily")
	writeFile(t, filepath.Join(daily, "2025-11-03.md"), rawNote)
	writeFile(t, filepath.Join(daily, "2025-11-01.md"), collectedNote)
	writeFile(t, filepath.Join(daily, "2025-11-10.md"), rawNote)

	start := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, time.November, 7, 0, 0, 0, 0, time.Local)
	results, err := svc.Range(context.Background(), start, end, CollectOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "2025-11-01.md", filepath.Base(results[0].Path))
	assert.Equal(t, StatusUnchanged, results[0].Status)
	assert.Equal(t, "2025-11-03.md", filepath.Base(results[1].Path))
	assert.Equal(t, StatusCollected, results[1].Status)

	assert.Equal(t, collectedNote, readFile(t, filepath.Join(daily, "2025-11-03.md")))
	assert.Equal(t, rawNote, readFile(t, filepath.Join(daily, "2025-11-10.md")))

	sum := Summarize(results)
	assert.Equal(t, Summary{Notes: 2, Collected: 1, Unchanged: 1, Moved: 1}, sum)
}

func TestRangeStopsWhenCancelled(t *testing.T) {
	svc, tmp := newTestService(t)
	writeFile(t, filepath.Join(tmp, "daily", "2025-11-01.md"), rawNote)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	day := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.Local)
	results, err := svc.Range(ctx, day, day, CollectOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
	assert.Equal(t, rawNote, readFile(t, filepath.Join(tmp, "daily", "2025-11-01.md")))
}

func TestConcurrentCollectsOnSamePath(t *testing.T) {
	svc, tmp := newTestService(t)
	path := filepath.Join(tmp, "inbox.md")
	writeFile(t, path, rawNote)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Collect(context.Background(), path, CollectOptions{})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, collectedNote, readFile(t, path))
}

func TestCollectTextFilters(t *testing.T) {
	svc, _ := newTestService(t)

	out, res := svc.CollectText(rawNote, CollectOptions{})
	assert.Equal(t, collectedNote, out)
	assert.Equal(t, StatusCollected, res.Status)

	out, res = svc.CollectText("plain text\n", CollectOptions{})
	assert.Equal(t, "plain text\n", out)
	assert.Equal(t, StatusUnchanged, res.Status)
}
