package jots

import (
	"fmt"
	"strings"
)

// SectionFormat controls the fold suffix written after the callout name.
type SectionFormat uint8

const (
	// FormatPlain renders a non-foldable callout.
	FormatPlain SectionFormat = iota
	// FormatFoldableOpen renders a foldable callout that starts expanded.
	FormatFoldableOpen
	// FormatFoldableClosed renders a foldable callout that starts collapsed.
	FormatFoldableClosed
)

// Suffix returns the characters appended to the callout header.
func (f SectionFormat) Suffix() string {
	switch f {
	case FormatFoldableOpen:
		return "+"
	case FormatFoldableClosed:
		return "-"
	default:
		return ""
	}
}

// Fold reports the fold state a header written with this format carries.
func (f SectionFormat) Fold() FoldState {
	switch f {
	case FormatFoldableOpen:
		return FoldOpen
	case FormatFoldableClosed:
		return FoldClosed
	default:
		return FoldPlain
	}
}

func (f SectionFormat) String() string {
	switch f {
	case FormatFoldableOpen:
		return "foldable-open"
	case FormatFoldableClosed:
		return "foldable-closed"
	default:
		return "plain"
	}
}

// ParseSectionFormat accepts the names produced by String as well as the
// bare suffixes. Matching is case-insensitive.
func ParseSectionFormat(value string) (SectionFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "plain":
		return FormatPlain, nil
	case "foldable-open", "open", "+":
		return FormatFoldableOpen, nil
	case "foldable-closed", "closed", "-":
		return FormatFoldableClosed, nil
	default:
		return FormatPlain, fmt.Errorf("%w: unknown section format %q (expected plain|foldable-open|foldable-closed)", ErrInvalidConfig, value)
	}
}

// FoldState is the fold marker found on an existing section header.
type FoldState uint8

const (
	// FoldPlain means no marker, or one that is not recognized.
	FoldPlain FoldState = iota
	// FoldOpen means the header ends its name with "+".
	FoldOpen
	// FoldClosed means the header ends its name with "-".
	FoldClosed
)

func (s FoldState) String() string {
	switch s {
	case FoldOpen:
		return "open"
	case FoldClosed:
		return "closed"
	default:
		return "plain"
	}
}

// Config carries every setting the rewriter reads. It is passed into each
// call; the package keeps no state between calls.
type Config struct {
	SectionName   string
	SectionFormat SectionFormat
	// TaskLetters is both the allow-list of bracket letters and the order in
	// which untimed groups are emitted.
	TaskLetters []string
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		SectionName:   "JOTS",
		SectionFormat: FormatPlain,
		TaskLetters:   []string{"A"},
	}
}

// Normalize trims the section name and upper-cases, trims and deduplicates
// the task letters while keeping their order.
func (c Config) Normalize() Config {
	out := Config{
		SectionName:   strings.TrimSpace(c.SectionName),
		SectionFormat: c.SectionFormat,
	}
	seen := make(map[string]bool, len(c.TaskLetters))
	for _, letter := range c.TaskLetters {
		letter = strings.ToUpper(strings.TrimSpace(letter))
		if letter == "" || seen[letter] {
			continue
		}
		seen[letter] = true
		out.TaskLetters = append(out.TaskLetters, letter)
	}
	return out
}

// Validate reports settings the rewriter cannot work with.
func (c Config) Validate() error {
	name := strings.TrimSpace(c.SectionName)
	if name == "" {
		return fmt.Errorf("%w: section name is required", ErrInvalidConfig)
	}
	if strings.ContainsAny(name, "[]\n") {
		return fmt.Errorf("%w: section name %q must not contain brackets or newlines", ErrInvalidConfig, name)
	}
	if c.SectionFormat > FormatFoldableClosed {
		return fmt.Errorf("%w: unknown section format %d", ErrInvalidConfig, c.SectionFormat)
	}
	if len(c.TaskLetters) == 0 {
		return fmt.Errorf("%w: at least one task letter is required", ErrInvalidConfig)
	}
	for _, letter := range c.TaskLetters {
		letter = strings.TrimSpace(letter)
		if len(letter) != 1 || !isASCIILetter(letter[0]) {
			return fmt.Errorf("%w: task letter %q must be a single letter", ErrInvalidConfig, letter)
		}
	}
	return nil
}

// Header renders a fresh section header line for this config.
func (c Config) Header() string {
	return "> [!" + strings.ToLower(strings.TrimSpace(c.SectionName)) + "]" + c.SectionFormat.Suffix()
}

func (c Config) allows(letter string) bool {
	return c.rank(letter) < len(c.TaskLetters)
}

// rank returns the position of letter in TaskLetters, or len(TaskLetters)
// when it is not listed.
func (c Config) rank(letter string) int {
	for i, l := range c.TaskLetters {
		if strings.EqualFold(l, letter) {
			return i
		}
	}
	return len(c.TaskLetters)
}

// TimeOfDay holds the value of an inline (time:: HH:mm) field.
type TimeOfDay struct {
	// Present is set when the line carries a time field at all.
	Present bool
	// Valid is set when the field parsed to a real clock time.
	Valid   bool
	Minutes int
}

func (t TimeOfDay) String() string {
	if !t.Valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.Minutes/60, t.Minutes%60)
}

// Entry is one tagged list line.
type Entry struct {
	// Text is the line as it is written into the collection section.
	Text string
	// Content is the line with its quote markers and indentation removed.
	Content string
	Letter  string
	Time    TimeOfDay
	// Line is the 0-based index of the line within the document body.
	Line int
	// Callout names the nearest enclosing callout, empty when unquoted.
	Callout   string
	InSection bool
}

// Key is the value entries are deduplicated on.
func (e Entry) Key() string {
	return strings.Join(strings.Fields(e.Content), " ")
}

// Section locates the collection callout inside the document body.
type Section struct {
	// Start is the header line index.
	Start int
	// End is the index of the first line after the section.
	End  int
	Fold FoldState
	// Name is the callout name as written in the header.
	Name string
	// Tail is whatever follows the fold marker on the header line.
	Tail   string
	Header string
}

// Report summarizes what a rewrite would do to a document.
type Report struct {
	HasFrontMatter bool
	HasSection     bool
	Section        Section
	// Entries lists every tagged entry in discovery order.
	Entries []Entry
	// Pending counts entries that would be moved into the section.
	Pending int
	// Duplicates counts entries that would be dropped by deduplication.
	Duplicates    int
	HeaderRewrite bool
}

// NeedsRewrite reports whether Rewrite would change the document.
func (r Report) NeedsRewrite() bool {
	return r.Pending > 0 || r.HeaderRewrite
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
