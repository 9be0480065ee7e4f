package jots

import (
	"math"
	"sort"
)

// Dedupe drops entries whose Key matches an earlier entry.
func Dedupe(entries []Entry) []Entry {
	seen := make(map[string]bool, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		key := e.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

// SortEntries returns entries ordered for the collection section: timed
// entries first by time of day, then untimed entries grouped by letter in
// the order of letters. The sort is stable, so ties and entries whose time
// field does not parse keep their input order.
func SortEntries(entries []Entry, letters []string) []Entry {
	cfg := Config{TaskLetters: letters}
	out := append([]Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return sortKey(out[i], cfg).less(sortKey(out[j], cfg))
	})
	return out
}

type entryKey struct {
	class int
	value int
}

func (k entryKey) less(other entryKey) bool {
	if k.class != other.class {
		return k.class < other.class
	}
	return k.value < other.value
}

func sortKey(e Entry, cfg Config) entryKey {
	switch {
	case e.Time.Valid:
		return entryKey{class: 0, value: e.Time.Minutes}
	case e.Time.Present:
		return entryKey{class: 1, value: math.MaxInt}
	default:
		return entryKey{class: 2, value: cfg.rank(e.Letter)}
	}
}
