package query

import (
	"strings"
	"time"

	"assetdesk/internal/core/record"
	"assetdesk/internal/core/timestamps"
	"assetdesk/internal/metadata"
)

// Chain is an ordered list of clauses.
type Chain []Clause

// Active reports whether any clause restricts rows.
func (c Chain) Active() bool {
	for _, cl := range c {
		if !cl.Skipped() {
			return true
		}
	}
	return false
}

// Apply keeps the records for which the chain evaluates to true.
// Field names resolve through def; now anchors "@Today" operands.
func Apply(records []record.Record, chain Chain, def metadata.ReportDef, now time.Time) []record.Record {
	if !chain.Active() {
		return records
	}

	out := make([]record.Record, 0, len(records))
	for _, rec := range records {
		if chain.Match(rec, def, now) {
			out = append(out, rec)
		}
	}
	return out
}

// Match folds the clauses over rec from left to right.
// The first evaluated clause seeds the result and its Logical is ignored.
// Skipped clauses neither change the result nor take the seed position.
func (c Chain) Match(rec record.Record, def metadata.ReportDef, now time.Time) bool {
	result := true
	seeded := false

	for _, cl := range c {
		if cl.Skipped() {
			continue
		}

		ok := evaluate(cl, def.Resolve(cl.Field, rec), def.IsDateField(cl.Field), now)

		switch {
		case !seeded:
			result = ok
			seeded = true
		case cl.Logical == Or:
			result = result || ok
		default:
			result = result && ok
		}
	}
	return result
}

func evaluate(cl Clause, field record.Value, dateField bool, now time.Time) bool {
	want := strings.TrimSpace(cl.Value)

	switch cl.Operator {
	case Equal:
		return strings.EqualFold(field.String(), want)
	case NotEqual:
		return !strings.EqualFold(field.String(), want)
	case Greater, Less, GreaterOrEqual, LessOrEqual:
		if dateField {
			return compareDates(cl.Operator, field, want, now)
		}
		return compareNumbers(cl.Operator, field, want)
	default:
		if field.IsNull() {
			return false
		}
		return strings.Contains(strings.ToLower(field.String()), strings.ToLower(want))
	}
}

// compareDates compares calendar days in now's location.
func compareDates(op Operator, field record.Value, operand string, now time.Time) bool {
	got, ok := timestamps.ParseValue(field)
	if !ok {
		return false
	}
	want, ok := timestamps.ParseOperand(operand, now)
	if !ok {
		return false
	}
	return ordered(op, day(got, now.Location()).Compare(day(want, now.Location())))
}

func compareNumbers(op Operator, field record.Value, operand string) bool {
	got, ok := field.Float()
	if !ok {
		return false
	}
	want, ok := record.String(operand).Float()
	if !ok {
		return false
	}
	switch {
	case got < want:
		return ordered(op, -1)
	case got > want:
		return ordered(op, 1)
	default:
		return ordered(op, 0)
	}
}

func ordered(op Operator, c int) bool {
	switch op {
	case Greater:
		return c > 0
	case Less:
		return c < 0
	case GreaterOrEqual:
		return c >= 0
	case LessOrEqual:
		return c <= 0
	default:
		return false
	}
}

func day(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
