package metadata

import (
	"maps"
	"slices"
	"strings"

	"assetdesk/internal/core/record"
)

// FieldKey maps a logical query-field name ("Asset ID") to a record key ("asset_id")
// using the explicit field map first and column titles second. Case-insensitive
// matches in the field map are tried in sorted name order.
func (d ReportDef) FieldKey(logical string) (string, bool) {
	if key, ok := d.Fields[logical]; ok {
		return key, true
	}
	for _, name := range slices.Sorted(maps.Keys(d.Fields)) {
		if strings.EqualFold(name, logical) {
			return d.Fields[name], true
		}
	}
	for _, c := range d.Columns {
		if c.Key != "" && strings.EqualFold(c.Title, logical) {
			return c.Key, true
		}
	}
	return "", false
}

// Resolve reads the value of a logical field from rec. Unmapped names fall back to a
// normalised guess: lowercase with spaces removed, then lowercase with spaces as underscores.
func (d ReportDef) Resolve(logical string, rec record.Record) record.Value {
	if key, ok := d.FieldKey(logical); ok {
		return rec.Lookup(key)
	}
	for _, key := range guessKeys(logical) {
		if v, ok := rec.Get(key); ok {
			return v
		}
	}
	return record.Null()
}

// IsDateField reports whether logical is the report's designated date field.
func (d ReportDef) IsDateField(logical string) bool {
	if d.DateField == "" {
		return false
	}
	if strings.EqualFold(d.DateField, logical) {
		return true
	}
	want, ok1 := d.FieldKey(d.DateField)
	got, ok2 := d.FieldKey(logical)
	return ok1 && ok2 && want == got
}

func guessKeys(logical string) []string {
	lower := strings.ToLower(strings.TrimSpace(logical))
	return []string{
		strings.ReplaceAll(lower, " ", ""),
		strings.Join(strings.Fields(lower), "_"),
	}
}
