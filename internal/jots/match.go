package jots

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	taskPattern      = regexp.MustCompile(`^((?:[ \t]*>)*)[ \t]*-[ \t]+\[([A-Za-z])\](?:[ \t]|$)`)
	calloutPattern   = regexp.MustCompile(`^((?:[ \t]*>)+)[ \t]*\[!([^\]\n]+)\](.*)$`)
	timeFieldPattern = regexp.MustCompile(`\(time::([^)]*)\)`)
	clockPattern     = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// TaskMatch describes a line recognized by IsTaskLine.
type TaskMatch struct {
	// Letter is the bracket letter, upper-cased.
	Letter string
	// Depth is the number of leading quote markers.
	Depth int
}

// IsTaskLine reports whether line is a dash list item with a single
// bracketed letter from letters. Letters compare case-insensitively.
func IsTaskLine(line string, letters []string) (TaskMatch, bool) {
	matches := taskPattern.FindStringSubmatch(line)
	if matches == nil {
		return TaskMatch{}, false
	}

	letter := strings.ToUpper(matches[2])
	allowed := false
	for _, l := range letters {
		if strings.EqualFold(strings.TrimSpace(l), letter) {
			allowed = true
			break
		}
	}
	if !allowed {
		return TaskMatch{}, false
	}

	return TaskMatch{
		Letter: letter,
		Depth:  strings.Count(matches[1], ">"),
	}, true
}

// ExtractTimeField reads the first (time:: HH:mm) field on the line.
func ExtractTimeField(line string) TimeOfDay {
	matches := timeFieldPattern.FindStringSubmatch(line)
	if matches == nil {
		return TimeOfDay{}
	}

	clock := clockPattern.FindStringSubmatch(strings.TrimSpace(matches[1]))
	if clock == nil {
		return TimeOfDay{Present: true}
	}
	hour, _ := strconv.Atoi(clock[1])
	minute, _ := strconv.Atoi(clock[2])
	if hour > 23 || minute > 59 {
		return TimeOfDay{Present: true}
	}

	return TimeOfDay{
		Present: true,
		Valid:   true,
		Minutes: hour*60 + minute,
	}
}

// IsSectionHeader reports whether line opens the callout called name. Only a
// top-level callout (one quote marker) qualifies. The returned tail is the
// header text after the fold marker.
func IsSectionHeader(line, name string) (FoldState, string, bool) {
	depth, calloutName, rest, ok := parseCallout(line)
	if !ok || depth != 1 || !strings.EqualFold(calloutName, strings.TrimSpace(name)) {
		return FoldPlain, "", false
	}

	switch {
	case strings.HasPrefix(rest, "+"):
		return FoldOpen, rest[1:], true
	case strings.HasPrefix(rest, "-"):
		return FoldClosed, rest[1:], true
	default:
		return FoldPlain, rest, true
	}
}

// CalloutName returns the name of the callout opened by line, at any depth.
func CalloutName(line string) (string, bool) {
	_, name, _, ok := parseCallout(line)
	return name, ok
}

// IsQuoted reports whether line starts with a quote marker.
func IsQuoted(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), ">")
}

// QuoteDepth counts the leading quote markers on line.
func QuoteDepth(line string) int {
	depth := 0
	s := strings.TrimLeft(line, " \t")
	for strings.HasPrefix(s, ">") {
		depth++
		s = strings.TrimLeft(s[1:], " \t")
	}
	return depth
}

// StripQuote removes every leading quote marker and the whitespace around
// them.
func StripQuote(line string) string {
	s := strings.TrimLeft(line, " \t")
	for strings.HasPrefix(s, ">") {
		s = strings.TrimLeft(s[1:], " \t")
	}
	return s
}

func parseCallout(line string) (int, string, string, bool) {
	matches := calloutPattern.FindStringSubmatch(line)
	if matches == nil {
		return 0, "", "", false
	}
	name := strings.TrimSpace(matches[2])
	if name == "" {
		return 0, "", "", false
	}
	return strings.Count(matches[1], ">"), name, matches[3], true
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
