package filter

import (
	"sort"

	"assetdesk/internal/core/record"
)

// Spec maps a column key to its condition.
type Spec map[string]Condition

// Active reports whether any condition constrains rows.
func (s Spec) Active() bool {
	for _, c := range s {
		if !c.IsEmpty() {
			return true
		}
	}
	return false
}

// Match reports whether rec satisfies every condition.
func (s Spec) Match(rec record.Record) bool {
	for key, c := range s {
		if !c.Match(rec.Lookup(key)) {
			return false
		}
	}
	return true
}

// Apply keeps the records matching spec, preserving order.
// An inactive spec returns records as given.
func Apply(records []record.Record, spec Spec) []record.Record {
	if !spec.Active() {
		return records
	}

	out := make([]record.Record, 0, len(records))
	for _, rec := range records {
		if spec.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Describe renders active conditions as "Title: condition" lines ordered by key.
// title maps a column key to its display title.
func (s Spec) Describe(title func(key string) string) []string {
	keys := make([]string, 0, len(s))
	for k, c := range s {
		if !c.IsEmpty() {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		name := k
		if title != nil {
			if t := title(k); t != "" {
				name = t
			}
		}
		lines = append(lines, name+": "+s[k].String())
	}
	return lines
}
