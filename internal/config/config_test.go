package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faizmokh/jots/internal/jots"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(PathEnv, "")
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Empty(t, cfg.Path)

	engine, err := cfg.Engine()
	require.NoError(t, err)
	assert.Equal(t, jots.DefaultConfig(), engine)
}

func TestInitWritesParsableDefaults(t *testing.T) {
	t.Setenv(PathEnv, "")
	vault := t.TempDir()

	path, created, err := Init(vault)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, filepath.Join(vault, Dir, FileName), path)

	cfg, err := Load(vault)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	cfg.Path = ""
	assert.Equal(t, Default(), cfg)

	_, created, err = Init(vault)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	t.Setenv(PathEnv, "")
	vault := t.TempDir()
	writeConfig(t, vault, `
section_name: "  Inbox "
section_format: Foldable-Closed
task_letters: [t, " q "]
daily:
  folder: journal/daily/
  format: "2006/01/02"
`)

	_, err := Load(vault)
	require.ErrorIs(t, err, ErrInvalid, "format with separators must be rejected")

	writeConfig(t, vault, `
section_name: "  Inbox "
section_format: Foldable-Closed
task_letters: [t, " q "]
daily:
  folder: journal/daily/
  format: "Jan 2, 2006"
log:
  level: DEBUG
`)

	cfg, err := Load(vault)
	require.NoError(t, err)
	assert.Equal(t, "Inbox", cfg.SectionName)
	assert.Equal(t, "foldable-closed", cfg.SectionFormat)
	assert.Equal(t, []string{"T", "Q"}, cfg.TaskLetters)
	assert.Equal(t, filepath.Join("journal", "daily"), cfg.Daily.Folder)
	assert.Equal(t, "Jan 2, 2006", cfg.Daily.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	engine, err := cfg.Engine()
	require.NoError(t, err)
	assert.Equal(t, jots.FormatFoldableClosed, engine.SectionFormat)
	assert.Equal(t, "> [!inbox]-", engine.Header())
}

func TestLoadHonorsPathOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elsewhere.yaml")
	require.NoError(t, os.WriteFile(path, []byte("task_letters: [B]\n"), 0o644))
	t.Setenv(PathEnv, path)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, []string{"B"}, cfg.TaskLetters)
	assert.Equal(t, "JOTS", cfg.SectionName)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	t.Setenv(PathEnv, "")
	cases := map[string]string{
		"format":        "section_format: sideways\n",
		"letters":       "task_letters: [AB]\n",
		"name":          "section_name: \"a]b\"\n",
		"folder":        "daily:\n  folder: ../outside\n",
		"layout":        "daily:\n  format: \"2006-01\"\n",
		"log level":     "log:\n  level: loud\n",
		"log format":    "log:\n  format: xml\n",
		"broken yaml":   "task_letters: [A\n",
		"absolute path": "daily:\n  folder: /abs\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			vault := t.TempDir()
			writeConfig(t, vault, body)
			_, err := Load(vault)
			require.Error(t, err)
			if name != "broken yaml" {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	data, err := Default().YAML()
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), parsed)
}

func writeConfig(t *testing.T, vault, body string) {
	t.Helper()
	path := filepath.Join(vault, Dir, FileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestWithLogLevel(t *testing.T) {
	cfg, err := Default().WithLogLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)

	same, err := Default().WithLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, Default(), same)

	_, err = Default().WithLogLevel("chatty")
	assert.ErrorIs(t, err, ErrInvalid)
}
