package jots

// document is the parsed view of a body. It is built once per call and
// never mutated after parse returns.
type document struct {
	lines      []string
	hasSection bool
	section    Section
	// extras are the non-entry lines kept inside the section.
	extras  []string
	entries []Entry
	moved   map[int]bool
}

func parse(lines []string, cfg Config) document {
	doc := document{
		lines: lines,
		moved: make(map[int]bool),
	}
	doc.section, doc.hasSection = FindSection(lines, cfg)

	for i, line := range lines {
		inSection := doc.hasSection && i >= doc.section.Start && i < doc.section.End
		if inSection && i == doc.section.Start {
			continue
		}

		match, ok := IsTaskLine(line, cfg.TaskLetters)
		if !ok {
			if inSection && StripQuote(line) != "" {
				doc.extras = append(doc.extras, line)
			}
			continue
		}

		content := StripQuote(line)
		entry := Entry{
			Text:      "> " + content,
			Content:   content,
			Letter:    match.Letter,
			Time:      ExtractTimeField(content),
			Line:      i,
			InSection: inSection,
		}
		if match.Depth > 0 {
			entry.Callout = enclosingCallout(lines, i)
		}
		if !inSection {
			doc.moved[i] = true
		}
		doc.entries = append(doc.entries, entry)
	}

	return doc
}

// FindSection returns the first collection section in lines. The section
// runs from its header through every following quoted line.
func FindSection(lines []string, cfg Config) (Section, bool) {
	for i, line := range lines {
		fold, tail, ok := IsSectionHeader(line, cfg.SectionName)
		if !ok {
			continue
		}
		name, _ := CalloutName(line)
		end := i + 1
		for end < len(lines) && IsQuoted(lines[end]) {
			end++
		}
		return Section{
			Start:  i,
			End:    end,
			Fold:   fold,
			Name:   name,
			Tail:   tail,
			Header: line,
		}, true
	}
	return Section{}, false
}

// enclosingCallout walks up from the quoted line at idx to the nearest
// callout header at the same or a shallower depth. Callouts have no closing
// fence, so the walk stops at the first unquoted line.
func enclosingCallout(lines []string, idx int) string {
	depth := QuoteDepth(lines[idx])
	for i := idx - 1; i >= 0; i-- {
		if !IsQuoted(lines[i]) {
			break
		}
		name, ok := CalloutName(lines[i])
		if ok && QuoteDepth(lines[i]) <= depth {
			return name
		}
	}
	return ""
}

func (d document) sectionEntries() []Entry {
	var out []Entry
	for _, e := range d.entries {
		if e.InSection {
			out = append(out, e)
		}
	}
	return out
}

func (d document) outsideEntries() []Entry {
	var out []Entry
	for _, e := range d.entries {
		if !e.InSection {
			out = append(out, e)
		}
	}
	return out
}
