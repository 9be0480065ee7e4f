package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644

	defaultDailyFormat = "2006-01-02"
	noteExt            = ".md"
)

// ErrNoteNotFound is returned when a note does not exist on disk.
var ErrNoteNotFound = errors.New("note not found")

// Manager centralizes where notes live inside the vault and how they are
// read and replaced on disk.
type Manager struct {
	basePath    string
	dailyFolder string
	dailyFormat string
}

// Option customizes a Manager.
type Option func(*Manager)

// WithDailyNotes sets the vault-relative folder of daily notes and the Go
// time layout of their file names.
func WithDailyNotes(folder, format string) Option {
	return func(m *Manager) {
		m.dailyFolder = folder
		if strings.TrimSpace(format) != "" {
			m.dailyFormat = format
		}
	}
}

// NewManager constructs a Manager rooted at the provided directory. If
// basePath is empty, it falls back to ResolveBasePath.
func NewManager(basePath string, opts ...Option) (*Manager, error) {
	var err error
	if basePath == "" {
		basePath, err = ResolveBasePath()
		if err != nil {
			return nil, err
		}
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		basePath:    abs,
		dailyFormat: defaultDailyFormat,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// BasePath returns the vault root.
func (m *Manager) BasePath() string {
	return m.basePath
}

// DailyDir returns the absolute folder holding daily notes.
func (m *Manager) DailyDir() string {
	return filepath.Join(m.basePath, m.dailyFolder)
}

// DailyPath resolves the daily note for the supplied day. The file may not
// exist yet.
func (m *Manager) DailyPath(t time.Time) string {
	return filepath.Join(m.DailyDir(), t.Format(m.dailyFormat)+noteExt)
}

// Resolve turns a user-supplied path into an absolute one. Relative paths
// are taken relative to the vault root.
func (m *Manager) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.basePath, path)
}

// Rel returns path relative to the vault root when it lies inside it.
func (m *Manager) Rel(path string) string {
	rel, err := filepath.Rel(m.basePath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// Read returns the note contents.
func (m *Manager) Read(path string) (string, error) {
	if m == nil {
		return "", errors.New("files.Manager is nil")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNoteNotFound, m.Rel(path))
		}
		return "", fmt.Errorf("read note: %w", err)
	}
	return string(data), nil
}

// Write replaces the note atomically through a temp file in the same
// directory, keeping the original file mode.
func (m *Manager) Write(path, content string) error {
	if m == nil {
		return errors.New("files.Manager is nil")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	temp, err := os.CreateTemp(dir, ".jots-*")
	if err != nil {
		return err
	}
	defer os.Remove(temp.Name())

	if _, err := temp.WriteString(content); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Sync(); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Close(); err != nil {
		return err
	}

	mode := os.FileMode(filePermissions)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.Chmod(temp.Name(), mode); err != nil {
		return err
	}

	return os.Rename(temp.Name(), path)
}
