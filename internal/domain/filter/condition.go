// Package filter narrows report rows by per-column conditions.
// All conditions of a Spec must hold for a row to be kept.
package filter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"assetdesk/internal/core/record"
	"assetdesk/internal/core/timestamps"
	"assetdesk/internal/core/types"
)

// Kind is the shape of a filter condition.
type Kind uint8

const (
	KindNone         Kind = iota // no constraint
	KindValues                   // membership in a value set
	KindText                     // case-insensitive substring
	KindDateRange                // inclusive date range
	KindNumericRange             // inclusive numeric range
)

// Condition is the constraint placed on one column.
// The zero Condition is "no constraint".
type Condition struct {
	Kind   Kind
	Values []record.Value
	Text   string
	From   time.Time
	To     time.Time
	Min    float64
	Max    float64
}

// Values keeps rows whose cell equals one of vals.
func Values(vals ...record.Value) Condition {
	return Condition{Kind: KindValues, Values: vals}
}

// Strings is Values over string cells.
func Strings(vals ...string) Condition {
	out := make([]record.Value, len(vals))
	for i, v := range vals {
		out[i] = record.String(v)
	}
	return Values(out...)
}

// Text keeps rows whose cell contains s, ignoring case.
func Text(s string) Condition {
	return Condition{Kind: KindText, Text: s}
}

// DateRange keeps rows whose cell parses as a date within [from, to].
func DateRange(from, to time.Time) Condition {
	return Condition{Kind: KindDateRange, From: from, To: to}
}

// NumericRange keeps rows whose cell parses as a number within [min, max].
func NumericRange(min, max float64) Condition {
	return Condition{Kind: KindNumericRange, Min: min, Max: max}
}

// IsEmpty reports whether the condition places no constraint.
func (c Condition) IsEmpty() bool {
	switch c.Kind {
	case KindValues:
		return len(c.Values) == 0
	case KindText:
		return c.Text == ""
	case KindDateRange, KindNumericRange:
		return false
	default:
		return true
	}
}

// Match evaluates the condition against one cell.
// A null cell fails every non-empty condition; unparseable cells fail range conditions.
func (c Condition) Match(v record.Value) bool {
	if c.IsEmpty() {
		return true
	}
	if v.IsNull() {
		return false
	}

	switch c.Kind {
	case KindValues:
		for _, want := range c.Values {
			if v.Equal(want) {
				return true
			}
		}
		return false

	case KindText:
		return strings.Contains(strings.ToLower(v.String()), strings.ToLower(c.Text))

	case KindDateRange:
		t, ok := timestamps.ParseValue(v)
		if !ok {
			return false
		}
		return !t.Before(c.From) && !t.After(c.To)

	case KindNumericRange:
		f, ok := cellFloat(v)
		if !ok {
			return false
		}
		return c.Min <= f && f <= c.Max
	}
	return true
}

// cellFloat reads plain numbers first and currency-decorated amounts second.
func cellFloat(v record.Value) (float64, bool) {
	if f, ok := v.Float(); ok {
		return f, true
	}
	if s, ok := v.Str(); ok {
		if m, ok := types.ParseCurrency(s); ok {
			return m.InexactFloat64(), true
		}
	}
	return 0, false
}

// UnmarshalJSON accepts the four wire shapes:
//
//	["Active", "Pending"]                     value set
//	"router"                                  substring
//	{"range": ["2026-01-01", "2026-03-31"]}   date range
//	{"numeric": [100, 5000]}                  numeric range
//
// Falsy and unrecognised shapes decode to the empty condition.
func (c *Condition) UnmarshalJSON(data []byte) error {
	*c = Condition{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '[':
		var vals []record.Value
		if err := json.Unmarshal(data, &vals); err != nil {
			return fmt.Errorf("decode value set: %w", err)
		}
		*c = Values(vals...)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode text filter: %w", err)
		}
		*c = Text(s)
	case '{':
		var shape struct {
			Range   []string  `json:"range"`
			Numeric []float64 `json:"numeric"`
		}
		if err := json.Unmarshal(data, &shape); err != nil {
			// Unknown object shapes pass everything.
			return nil
		}
		switch {
		case len(shape.Range) == 2:
			if cond, ok := ParseDateRange(shape.Range[0], shape.Range[1]); ok {
				*c = cond
			}
		case len(shape.Numeric) == 2:
			*c = NumericRange(shape.Numeric[0], shape.Numeric[1])
		}
	}
	return nil
}

// MarshalJSON writes the condition back in its wire shape.
func (c Condition) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindValues:
		return json.Marshal(c.Values)
	case KindText:
		return json.Marshal(c.Text)
	case KindDateRange:
		return json.Marshal(map[string][]string{
			"range": {c.From.Format(time.RFC3339), c.To.Format(time.RFC3339)},
		})
	case KindNumericRange:
		return json.Marshal(map[string][]float64{"numeric": {c.Min, c.Max}})
	default:
		return []byte("null"), nil
	}
}

// ParseDateRange builds a date range from text bounds.
// A date-only upper bound covers that whole day.
func ParseDateRange(from, to string) (Condition, bool) {
	start, ok := timestamps.Parse(from)
	if !ok {
		return Condition{}, false
	}
	end, ok := timestamps.Parse(to)
	if !ok {
		return Condition{}, false
	}
	if len(strings.TrimSpace(to)) == len("2006-01-02") {
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return DateRange(start, end), true
}

// String describes the condition for humans, e.g. in export headers.
func (c Condition) String() string {
	switch c.Kind {
	case KindValues:
		parts := make([]string, len(c.Values))
		for i, v := range c.Values {
			parts[i] = v.String()
		}
		return strings.Join(parts, ", ")
	case KindText:
		return fmt.Sprintf("contains %q", c.Text)
	case KindDateRange:
		return c.From.Format("2006-01-02") + " to " + c.To.Format("2006-01-02")
	case KindNumericRange:
		return fmt.Sprintf("%g to %g", c.Min, c.Max)
	default:
		return ""
	}
}
