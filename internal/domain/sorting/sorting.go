// Package sorting orders report rows by one column with type-aware comparison.
package sorting

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"assetdesk/internal/core/record"
	"assetdesk/internal/core/timestamps"
	"assetdesk/internal/core/types"
	"assetdesk/internal/metadata"
)

// Order is the sort direction.
type Order string

const (
	Ascend  Order = "ascend"
	Descend Order = "descend"
)

// ParseOrder accepts "ascend"/"descend" and the short forms "asc"/"desc".
// Anything else is Ascend.
func ParseOrder(s string) Order {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "descend", "desc":
		return Descend
	default:
		return Ascend
	}
}

// Spec selects the sort column and direction.
type Spec struct {
	Field string `json:"field"`
	Order Order  `json:"order"`
}

// IsZero reports whether the spec leaves rows in their given order.
func (s Spec) IsZero() bool {
	return s.Field == ""
}

// Sorter compares cells with a locale-aware collator for text.
type Sorter struct {
	tag language.Tag
}

// New creates a Sorter collating text for tag.
func New(tag language.Tag) *Sorter {
	return &Sorter{tag: tag}
}

// Apply sorts with the default English collation.
func Apply(records []record.Record, spec Spec, kind metadata.Kind) []record.Record {
	return New(language.English).Sort(records, spec, kind)
}

// Sort returns a stably sorted copy of records. The input is never reordered.
//
// Null cells always come last, in both directions. Cells that cannot be read as
// the column kind come after readable cells and before nulls.
func (s *Sorter) Sort(records []record.Record, spec Spec, kind metadata.Kind) []record.Record {
	if spec.IsZero() {
		return records
	}

	out := record.CloneAll(records)
	cmp := comparator{
		col:  collate.New(s.tag),
		desc: spec.Order == Descend,
		kind: kind,
	}

	sort.SliceStable(out, func(i, j int) bool {
		return cmp.compare(out[i].Lookup(spec.Field), out[j].Lookup(spec.Field)) < 0
	})
	return out
}

// comparator is not safe for concurrent use: collate.Collator keeps internal buffers.
type comparator struct {
	col  *collate.Collator
	desc bool
	kind metadata.Kind
}

func (c comparator) compare(a, b record.Value) int {
	switch an, bn := a.IsNull(), b.IsNull(); {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}

	switch c.kind {
	case metadata.KindNumber:
		return typed(a, b, asFloat, cmpFloat, c.directed, c.text)
	case metadata.KindDate:
		return typed(a, b, timestamps.ParseValue, timeCompare, c.directed, c.text)
	case metadata.KindCurrency:
		return typed(a, b, asMoney, decimal.Decimal.Cmp, c.directed, c.text)
	case metadata.KindText:
		return c.text(a, b)
	default:
		return c.auto(a, b)
	}
}

// auto infers the comparison from the cell values:
// numbers, then ISO dates, then currency or numeric strings, then collation.
func (c comparator) auto(a, b record.Value) int {
	if x, ok := a.Num(); ok {
		if y, ok := b.Num(); ok {
			return c.directed(cmpFloat(x, y))
		}
	}

	if x, ok := a.Boolean(); ok {
		if y, ok := b.Boolean(); ok {
			return c.directed(cmpBool(x, y))
		}
	}

	as, bs := a.String(), b.String()
	if timestamps.IsISODate(as) && timestamps.IsISODate(bs) {
		x, ok1 := timestamps.Parse(as)
		y, ok2 := timestamps.Parse(bs)
		if ok1 && ok2 {
			return c.directed(timeCompare(x, y))
		}
	}

	if x, ok := asMoney(a); ok {
		if y, ok := asMoney(b); ok {
			return c.directed(x.Cmp(y))
		}
	}

	return c.text(a, b)
}

func (c comparator) text(a, b record.Value) int {
	return c.directed(c.col.CompareString(a.String(), b.String()))
}

func (c comparator) directed(n int) int {
	if c.desc {
		return -n
	}
	return n
}

// typed compares parsed values; unparseable cells sort after parseable ones.
func typed[T any](a, b record.Value, parse func(record.Value) (T, bool), cmp func(T, T) int, directed func(int) int, fallback func(a, b record.Value) int) int {
	x, okA := parse(a)
	y, okB := parse(b)
	switch {
	case okA && okB:
		return directed(cmp(x, y))
	case okA:
		return -1
	case okB:
		return 1
	default:
		return fallback(a, b)
	}
}

func asFloat(v record.Value) (float64, bool) {
	if f, ok := v.Float(); ok {
		return f, true
	}
	if m, ok := asMoney(v); ok {
		return m.InexactFloat64(), true
	}
	return 0, false
}

func asMoney(v record.Value) (types.Money, bool) {
	if f, ok := v.Num(); ok {
		return decimal.NewFromFloat(f), true
	}
	if s, ok := v.Str(); ok {
		return types.ParseCurrency(s)
	}
	return types.Zero(), false
}
