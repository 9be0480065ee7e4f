package files

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// Note is a dated markdown file inside the daily folder.
type Note struct {
	Path string
	// Date comes from the file name, or from the front matter `date` field
	// when the name does not carry one.
	Date time.Time
}

type noteMeta struct {
	Date string `yaml:"date"`
}

var metaDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// DailyNotes lists the notes dated between start and end (inclusive, by
// calendar day), oldest first. A missing daily folder yields no notes.
func (m *Manager) DailyNotes(start, end time.Time) ([]Note, error) {
	if m == nil {
		return nil, errors.New("files.Manager is nil")
	}
	first := startOfDay(start)
	last := startOfDay(end)
	if last.Before(first) {
		return nil, nil
	}

	entries, err := os.ReadDir(m.DailyDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list daily notes: %w", err)
	}

	var notes []Note
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), noteExt) {
			continue
		}
		path := filepath.Join(m.DailyDir(), entry.Name())
		date, ok := m.NoteDate(path, start.Location())
		if !ok {
			continue
		}
		if date.Before(first) || date.After(last) {
			continue
		}
		notes = append(notes, Note{Path: path, Date: date})
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Date.Equal(notes[j].Date) {
			return notes[i].Path < notes[j].Path
		}
		return notes[i].Date.Before(notes[j].Date)
	})
	return notes, nil
}

// NoteDate resolves the calendar day a note belongs to, in loc.
func (m *Manager) NoteDate(path string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if date, err := time.ParseInLocation(m.dailyFormat, name, loc); err == nil {
		return startOfDay(date), true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}, false
	}
	return metaDate(data, loc)
}

func metaDate(data []byte, loc *time.Location) (time.Time, bool) {
	var meta noteMeta
	if _, err := frontmatter.Parse(bytes.NewReader(data), &meta); err != nil {
		return time.Time{}, false
	}
	value := strings.TrimSpace(meta.Date)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range metaDateLayouts {
		if date, err := time.ParseInLocation(layout, value, loc); err == nil {
			return startOfDay(date.In(loc)), true
		}
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
