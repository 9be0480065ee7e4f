package jots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTaskLine(t *testing.T) {
	letters := []string{"A", "B"}
	tests := []struct {
		name   string
		line   string
		ok     bool
		letter string
		depth  int
	}{
		{name: "plain", line: "- [a] buy milk", ok: true, letter: "A"},
		{name: "upper", line: "- [B] call", ok: true, letter: "B"},
		{name: "quoted", line: "> - [a] nested", ok: true, letter: "A", depth: 1},
		{name: "double quoted", line: "> > - [b] deeper", ok: true, letter: "B", depth: 2},
		{name: "indented", line: "    - [a] child", ok: true, letter: "A"},
		{name: "bare", line: "- [a]", ok: true, letter: "A"},
		{name: "letter not allowed", line: "- [z] nope"},
		{name: "checkbox space", line: "- [ ] todo"},
		{name: "two letters", line: "- [ab] nope"},
		{name: "no space after bracket", line: "- [a]nope"},
		{name: "star bullet", line: "* [a] nope"},
		{name: "prose", line: "remember [a] thing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := IsTaskLine(tt.line, letters)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.letter, match.Letter)
			assert.Equal(t, tt.depth, match.Depth)
		})
	}
}

func TestExtractTimeField(t *testing.T) {
	tests := []struct {
		line string
		want TimeOfDay
	}{
		{line: "- [a] (time:: 09:30) standup", want: TimeOfDay{Present: true, Valid: true, Minutes: 570}},
		{line: "- [a] (time::7:05) early", want: TimeOfDay{Present: true, Valid: true, Minutes: 425}},
		{line: "- [a] late (time:: 23:59)", want: TimeOfDay{Present: true, Valid: true, Minutes: 1439}},
		{line: "- [a] (time:: 24:00) bad hour", want: TimeOfDay{Present: true}},
		{line: "- [a] (time:: 10:75) bad minute", want: TimeOfDay{Present: true}},
		{line: "- [a] (time:: soon) words", want: TimeOfDay{Present: true}},
		{line: "- [a] (place:: home) other field", want: TimeOfDay{}},
		{line: "- [a] no field", want: TimeOfDay{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractTimeField(tt.line), tt.line)
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "07:05", TimeOfDay{Present: true, Valid: true, Minutes: 425}.String())
	assert.Equal(t, "", TimeOfDay{Present: true}.String())
}

func TestIsSectionHeader(t *testing.T) {
	tests := []struct {
		name string
		line string
		ok   bool
		fold FoldState
		tail string
	}{
		{name: "plain", line: "> [!jots]", ok: true, fold: FoldPlain},
		{name: "case insensitive", line: "> [!JOTS]", ok: true, fold: FoldPlain},
		{name: "open", line: "> [!jots]+", ok: true, fold: FoldOpen},
		{name: "closed with title", line: "> [!Jots]- Collected", ok: true, fold: FoldClosed, tail: " Collected"},
		{name: "unknown suffix", line: "> [!jots]* odd", ok: true, fold: FoldPlain, tail: "* odd"},
		{name: "no space after marker", line: ">[!jots]", ok: true, fold: FoldPlain},
		{name: "other callout", line: "> [!note]"},
		{name: "nested", line: "> > [!jots]"},
		{name: "unquoted", line: "[!jots]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fold, tail, ok := IsSectionHeader(tt.line, "jots")
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.fold, fold)
			assert.Equal(t, tt.tail, tail)
		})
	}
}

func TestQuoteHelpers(t *testing.T) {
	assert.True(t, IsQuoted("> text"))
	assert.True(t, IsQuoted("   >text"))
	assert.False(t, IsQuoted("text > quote"))

	assert.Equal(t, 0, QuoteDepth("- [a] x"))
	assert.Equal(t, 2, QuoteDepth("> >- [a] x"))

	assert.Equal(t, "- [a] x", StripQuote(" >  > - [a] x"))
	assert.Equal(t, "", StripQuote(">"))

	name, ok := CalloutName("> > [!tip]- Hint")
	require.True(t, ok)
	assert.Equal(t, "tip", name)

	_, ok = CalloutName("> [!] empty")
	assert.False(t, ok)
}

func TestParseSectionFormat(t *testing.T) {
	for input, want := range map[string]SectionFormat{
		"":                FormatPlain,
		"Plain":           FormatPlain,
		"Foldable-Open":   FormatFoldableOpen,
		"+":               FormatFoldableOpen,
		"foldable-closed": FormatFoldableClosed,
		"closed":          FormatFoldableClosed,
	} {
		got, err := ParseSectionFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseSectionFormat("sideways")
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigNormalizeAndValidate(t *testing.T) {
	cfg := Config{
		SectionName: "  Jots ",
		TaskLetters: []string{"a", " b", "A", ""},
	}.Normalize()

	assert.Equal(t, "Jots", cfg.SectionName)
	assert.Equal(t, []string{"A", "B"}, cfg.TaskLetters)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "> [!jots]", cfg.Header())

	bad := []Config{
		{SectionName: "", TaskLetters: []string{"A"}},
		{SectionName: "a]b", TaskLetters: []string{"A"}},
		{SectionName: "jots"},
		{SectionName: "jots", TaskLetters: []string{"AB"}},
		{SectionName: "jots", TaskLetters: []string{"1"}},
		{SectionName: "jots", TaskLetters: []string{"A"}, SectionFormat: SectionFormat(9)},
	}
	for _, c := range bad {
		assert.ErrorIs(t, c.Validate(), ErrInvalidConfig, "%+v", c)
	}
}
