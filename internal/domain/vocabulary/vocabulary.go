// Package vocabulary maps free-text user terms to the canonical tags stored on agencies.
package vocabulary

import "strings"

// Entry maps one lower-case user term to its canonical tags.
type Entry struct {
	Key  string
	Tags []string
}

// Table is an immutable, ordered term mapping. Order decides which entry wins
// a partial match, so tables are slices rather than maps.
type Table struct {
	entries []Entry
	index   map[string]int
}

// NewTable builds a table from entries. Keys are lower-cased; later duplicates are ignored.
func NewTable(entries ...Entry) *Table {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Key))
		if key == "" {
			continue
		}
		if _, dup := t.index[key]; dup {
			continue
		}
		t.index[key] = len(t.entries)
		t.entries = append(t.entries, Entry{Key: key, Tags: append([]string(nil), e.Tags...)})
	}
	return t
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Keys returns the entry keys in table order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.Key
	}
	return keys
}

// Normalize resolves input against the table:
// an exact case-insensitive key wins, then the first key that contains or is
// contained in the input, otherwise the input itself is returned unchanged.
func Normalize(input string, t *Table) []string {
	lower := strings.ToLower(strings.TrimSpace(input))

	if t != nil && lower != "" {
		if i, ok := t.index[lower]; ok {
			return append([]string(nil), t.entries[i].Tags...)
		}
		for _, e := range t.entries {
			if strings.Contains(lower, e.Key) || strings.Contains(e.Key, lower) {
				return append([]string(nil), e.Tags...)
			}
		}
	}

	return []string{input}
}

// NormalizeAll normalizes every non-blank input and returns the de-duplicated
// union of tags in first-seen order.
func NormalizeAll(inputs []string, t *Table) []string {
	out := make([]string, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in) == "" {
			continue
		}
		for _, tag := range Normalize(in, t) {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}
