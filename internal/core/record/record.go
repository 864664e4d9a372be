package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// KeyField is the synthetic row-identity attribute added by AssignKeys.
const KeyField = "key"

// Record is one flat row of report data.
type Record map[string]Value

// FromMap converts a decoded JSON object into a Record.
func FromMap(m map[string]any) Record {
	rec := make(Record, len(m))
	for k, v := range m {
		rec[k] = Of(v)
	}
	return rec
}

// Get returns the value stored under key. The bool is false when the key is absent,
// which lets callers tell a missing field from an explicit null.
func (r Record) Get(key string) (Value, bool) {
	v, ok := r[key]
	return v, ok
}

// Lookup returns the value under key, folding missing keys to null.
func (r Record) Lookup(key string) Value {
	return r[key]
}

// Clone returns a shallow copy. Values are immutable so this is a full copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// UnmarshalJSON decodes a JSON object, keeping numbers exact until conversion.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	*r = FromMap(m)
	return nil
}

// AssignKeys returns copies of records with KeyField set for UI row identity.
// The key prefers idField, then "id", then the position in the slice.
func AssignKeys(records []Record, idField string) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		c := rec.Clone()
		c[KeyField] = String(rowKey(rec, idField, i))
		out[i] = c
	}
	return out
}

func rowKey(rec Record, idField string, index int) string {
	for _, field := range []string{idField, "id"} {
		if field == "" {
			continue
		}
		if v, ok := rec.Get(field); ok && !v.IsEmpty() {
			return v.String()
		}
	}
	return strconv.Itoa(index)
}

// CloneAll copies a slice of records so callers can never observe mutation.
func CloneAll(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
