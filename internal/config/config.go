// Package config loads jots settings from <vault>/.jots/config.yaml.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/faizmokh/jots/internal/jots"
)

const (
	// Dir is the per-vault directory holding jots state.
	Dir = ".jots"
	// FileName is the settings file inside Dir.
	FileName = "config.yaml"
	// PathEnv overrides the settings file location.
	PathEnv = "JOTS_CONFIG"

	defaultDailyFormat = "2006-01-02"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

const defaultConfigYAML = `# jots configuration

# Callout that collects tagged entries. Matched case-insensitively, written lower-case.
section_name: JOTS

# plain | foldable-open | foldable-closed
section_format: plain

# Bracket letters that mark an entry for collection, in the order untimed
# entries are grouped.
task_letters:
  - A

daily:
  # Folder of daily notes, relative to the vault root.
  folder: ""
  # Go time layout of daily note file names (without .md).
  format: "2006-01-02"

log:
  # trace | debug | info | warn | error
  level: error
  # console | json | pretty
  format: console
`

// DailyConfig describes where daily notes live.
type DailyConfig struct {
	Folder string `yaml:"folder"`
	Format string `yaml:"format"`
}

// LogConfig is handed to the logging provider.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config models .jots/config.yaml.
type Config struct {
	SectionName   string      `yaml:"section_name"`
	SectionFormat string      `yaml:"section_format"`
	TaskLetters   []string    `yaml:"task_letters"`
	Daily         DailyConfig `yaml:"daily"`
	Log           LogConfig   `yaml:"log"`

	// Path is the file the config was read from, empty when defaults were used.
	Path string `yaml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	engine := jots.DefaultConfig()
	return Config{
		SectionName:   engine.SectionName,
		SectionFormat: engine.SectionFormat.String(),
		TaskLetters:   append([]string(nil), engine.TaskLetters...),
		Daily: DailyConfig{
			Format: defaultDailyFormat,
		},
		Log: LogConfig{
			Level:  "error",
			Format: "console",
		},
	}
}

// FilePath resolves the settings file for a vault, honoring JOTS_CONFIG.
func FilePath(vaultDir string) string {
	if override := strings.TrimSpace(os.Getenv(PathEnv)); override != "" {
		return override
	}
	return filepath.Join(vaultDir, Dir, FileName)
}

// Load reads the settings for vaultDir. A missing file yields Default().
func Load(vaultDir string) (Config, error) {
	return LoadFile(FilePath(vaultDir))
}

// LoadFile reads, defaults, normalizes and validates the file at path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes YAML settings and applies defaults.
func Parse(data []byte) (Config, error) {
	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Config{}, fmt.Errorf("parse: %w", err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return Config{}, err
	}
	return parsed, nil
}

// Init writes the default settings file for vaultDir unless one exists.
// It returns the path and whether a file was created.
func Init(vaultDir string) (string, bool, error) {
	path := FilePath(vaultDir)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", false, fmt.Errorf("config: stat %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", false, fmt.Errorf("config: ensure dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return "", false, fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, true, nil
}

// Engine converts the settings into the rewriter's configuration.
func (c Config) Engine() (jots.Config, error) {
	format, err := jots.ParseSectionFormat(c.SectionFormat)
	if err != nil {
		return jots.Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	engine := jots.Config{
		SectionName:   c.SectionName,
		SectionFormat: format,
		TaskLetters:   c.TaskLetters,
	}.Normalize()
	if err := engine.Validate(); err != nil {
		return jots.Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return engine, nil
}

// WithLogLevel returns a copy using level, validated like the file value.
// An empty level leaves the settings untouched.
func (c Config) WithLogLevel(level string) (Config, error) {
	if strings.TrimSpace(level) == "" {
		return c, nil
	}
	c.Log.Level = level
	c.normalize()
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// YAML renders the effective settings.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) applyDefaults() {
	defaults := Default()
	if strings.TrimSpace(c.SectionName) == "" {
		c.SectionName = defaults.SectionName
	}
	if strings.TrimSpace(c.SectionFormat) == "" {
		c.SectionFormat = defaults.SectionFormat
	}
	if len(c.TaskLetters) == 0 {
		c.TaskLetters = defaults.TaskLetters
	}
	if strings.TrimSpace(c.Daily.Format) == "" {
		c.Daily.Format = defaults.Daily.Format
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = defaults.Log.Level
	}
	if strings.TrimSpace(c.Log.Format) == "" {
		c.Log.Format = defaults.Log.Format
	}
}

func (c *Config) normalize() {
	c.SectionName = strings.TrimSpace(c.SectionName)
	c.SectionFormat = strings.ToLower(strings.TrimSpace(c.SectionFormat))
	letters := make([]string, 0, len(c.TaskLetters))
	for _, letter := range c.TaskLetters {
		letters = append(letters, strings.ToUpper(strings.TrimSpace(letter)))
	}
	c.TaskLetters = letters
	c.Daily.Folder = filepath.Clean(strings.TrimSpace(c.Daily.Folder))
	if c.Daily.Folder == "." {
		c.Daily.Folder = ""
	}
	c.Daily.Format = strings.TrimSpace(c.Daily.Format)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

func (c Config) validate() error {
	if _, err := c.Engine(); err != nil {
		return err
	}
	if filepath.IsAbs(c.Daily.Folder) || strings.HasPrefix(c.Daily.Folder, "..") {
		return fmt.Errorf("%w: daily.folder must be relative to the vault", ErrInvalid)
	}
	sample := time.Date(2025, time.November, 2, 0, 0, 0, 0, time.UTC)
	name := sample.Format(c.Daily.Format)
	if parsed, err := time.Parse(c.Daily.Format, name); err != nil || !parsed.Equal(sample) {
		return fmt.Errorf("%w: daily.format %q does not round-trip a date", ErrInvalid, c.Daily.Format)
	}
	if strings.ContainsRune(name, filepath.Separator) {
		return fmt.Errorf("%w: daily.format must not produce path separators", ErrInvalid)
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json", "pretty":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}
