package jots

import "strings"

// Option adjusts a single Rewrite call.
type Option func(*options)

type options struct {
	resort bool
}

// WithResort rebuilds an existing section from its own entries even when
// nothing outside it needs collecting.
func WithResort() Option {
	return func(o *options) {
		o.resort = true
	}
}

// Rewrite collects every tagged entry of text into the collection section.
// It reports false, and returns text untouched, when nothing needs to move
// and the section header already carries the configured fold state. An
// invalid cfg is treated the same way.
func Rewrite(text string, cfg Config, opts ...Option) (string, bool) {
	cfg = cfg.Normalize()
	if cfg.Validate() != nil {
		return text, false
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	crlf := strings.Contains(text, "\r\n")
	frontMatter, body, hasFrontMatter := SplitFrontMatter(strings.ReplaceAll(text, "\r\n", "\n"))
	doc := parse(splitLines(body), cfg)

	headerRewrite := doc.hasSection && doc.section.Fold != cfg.SectionFormat.Fold()
	pending := len(doc.moved) > 0
	if !pending && !headerRewrite && !(o.resort && doc.hasSection) {
		return text, false
	}

	out := doc.emit(cfg)
	if hasFrontMatter {
		head := strings.Split(frontMatter, "\n")
		if len(out) > 0 {
			head = append(head, "")
		}
		out = append(head, out...)
	} else if opensFrontMatter(out) {
		// Body that starts with a fenced block would read back as front matter.
		out = append([]string{""}, out...)
	}

	result := strings.Join(out, "\n") + "\n"
	if crlf {
		result = strings.ReplaceAll(result, "\n", "\r\n")
	}
	return result, true
}

// Apply is Rewrite for callers that only want the resulting text.
func Apply(text string, cfg Config, opts ...Option) string {
	out, _ := Rewrite(text, cfg, opts...)
	return out
}

// Inspect scans text without rewriting it.
func Inspect(text string, cfg Config) Report {
	cfg = cfg.Normalize()
	if cfg.Validate() != nil {
		return Report{}
	}

	_, body, hasFrontMatter := SplitFrontMatter(strings.ReplaceAll(text, "\r\n", "\n"))
	doc := parse(splitLines(body), cfg)

	report := Report{
		HasFrontMatter: hasFrontMatter,
		HasSection:     doc.hasSection,
		Section:        doc.section,
		Entries:        doc.entries,
		Pending:        len(doc.moved),
		Duplicates:     len(doc.entries) - len(Dedupe(doc.entries)),
		HeaderRewrite:  doc.hasSection && doc.section.Fold != cfg.SectionFormat.Fold(),
	}
	return report
}

// emit rebuilds the body. The preamble, everything before the first entry or
// section, is kept as written. After it moved lines are skipped and blank
// runs collapse to a single blank line. The section block replaces the old
// section or is appended when there was none.
func (d document) emit(cfg Config) []string {
	merged := SortEntries(Dedupe(append(d.sectionEntries(), d.outsideEntries()...)), cfg.TaskLetters)
	block := d.sectionBlock(merged, cfg)

	out := make([]string, 0, len(d.lines)+len(block)+2)
	preamble := len(d.lines)
	if len(d.entries) > 0 {
		preamble = d.entries[0].Line
	}
	if d.hasSection && d.section.Start < preamble {
		preamble = d.section.Start
	}

	placed := false
	blockEnd := -1
	for i := 0; i < len(d.lines); i++ {
		if d.hasSection && i == d.section.Start {
			out = appendBlock(out, block)
			placed = true
			blockEnd = len(out)
			i = d.section.End - 1
			continue
		}
		if d.moved[i] {
			out = collapseTrailingBlank(out)
			continue
		}

		line := d.lines[i]
		if isBlank(line) && (len(out) == 0 || (i >= preamble && isBlank(out[len(out)-1]))) {
			continue
		}
		// A quoted line touching the section would be read back as part of it.
		if len(out) == blockEnd && IsQuoted(line) {
			out = append(out, "")
		}
		out = append(out, line)
	}

	if !placed {
		out = appendBlock(out, block)
	}
	return trimTrailingBlank(out)
}

func (d document) sectionBlock(entries []Entry, cfg Config) []string {
	header := cfg.Header()
	if d.hasSection {
		header = d.section.Header
		if d.section.Fold != cfg.SectionFormat.Fold() {
			header = cfg.Header() + d.section.Tail
		}
	}

	block := make([]string, 0, 1+len(d.extras)+len(entries))
	block = append(block, header)
	block = append(block, d.extras...)
	for _, e := range entries {
		block = append(block, e.Text)
	}
	return block
}

// appendBlock places block after out with exactly one blank line between
// them, or none when out is empty.
func appendBlock(out, block []string) []string {
	out = trimTrailingBlank(out)
	if len(out) > 0 {
		out = append(out, "")
	}
	return append(out, block...)
}

// collapseTrailingBlank leaves at most one blank line at the end of lines.
func collapseTrailingBlank(lines []string) []string {
	for len(lines) > 1 && isBlank(lines[len(lines)-1]) && isBlank(lines[len(lines)-2]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func opensFrontMatter(lines []string) bool {
	if len(lines) == 0 || lines[0] != frontMatterFence {
		return false
	}
	_, _, ok := SplitFrontMatter(strings.Join(lines, "\n"))
	return ok
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func splitLines(body string) []string {
	if body == "" {
		return nil
	}
	return strings.Split(body, "\n")
}
