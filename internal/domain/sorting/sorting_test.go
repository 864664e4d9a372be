package sorting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"assetdesk/internal/core/record"
	"assetdesk/internal/metadata"
)

func row(id string, v record.Value) record.Record {
	return record.Record{"asset_id": record.String(id), "value": v}
}

func ids(records []record.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Lookup("asset_id").String()
	}
	return out
}

func TestApply_DescendKeepsNullsLast(t *testing.T) {
	in := []record.Record{
		row("A1", record.String("100")),
		row("A2", record.String("50")),
		row("A3", record.Null()),
	}

	got := Apply(in, Spec{Field: "value", Order: Descend}, metadata.KindAuto)
	assert.Equal(t, []string{"A1", "A2", "A3"}, ids(got))

	got = Apply(in, Spec{Field: "value", Order: Ascend}, metadata.KindAuto)
	assert.Equal(t, []string{"A2", "A1", "A3"}, ids(got))
}

func TestApply_ZeroSpecIsIdentity(t *testing.T) {
	in := []record.Record{row("B", record.Number(2)), row("A", record.Number(1))}
	assert.Equal(t, []string{"B", "A"}, ids(Apply(in, Spec{}, metadata.KindAuto)))
}

func TestApply_DoesNotReorderInput(t *testing.T) {
	in := []record.Record{row("B", record.Number(2)), row("A", record.Number(1))}
	_ = Apply(in, Spec{Field: "value"}, metadata.KindAuto)
	assert.Equal(t, []string{"B", "A"}, ids(in))
}

func TestApply_Stable(t *testing.T) {
	in := []record.Record{
		row("A1", record.String("x")),
		row("A2", record.String("y")),
		row("A3", record.String("x")),
		row("A4", record.String("y")),
		row("A5", record.String("x")),
	}

	asc := Apply(in, Spec{Field: "value", Order: Ascend}, metadata.KindText)
	assert.Equal(t, []string{"A1", "A3", "A5", "A2", "A4"}, ids(asc))

	desc := Apply(in, Spec{Field: "value", Order: Descend}, metadata.KindText)
	assert.Equal(t, []string{"A2", "A4", "A1", "A3", "A5"}, ids(desc))

	assert.Equal(t, ids(asc), ids(Apply(asc, Spec{Field: "value", Order: Ascend}, metadata.KindText)))
}

func TestApply_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		kind  metadata.Kind
		order Order
		vals  []record.Value
		want  []string
	}{
		{
			name: "auto numbers",
			vals: []record.Value{record.Number(10), record.Number(2), record.Number(33)},
			want: []string{"r1", "r0", "r2"},
		},
		{
			name: "auto iso dates",
			vals: []record.Value{record.String("2026-03-01"), record.String("2025-12-31"), record.String("2026-01-15T10:00:00Z")},
			want: []string{"r1", "r2", "r0"},
		},
		{
			name: "auto currency strings",
			vals: []record.Value{record.String("₹ 1,20,000"), record.String("$950.50"), record.String("₹ 12,000")},
			want: []string{"r1", "r2", "r0"},
		},
		{
			name: "auto falls back to collation",
			vals: []record.Value{record.String("beta"), record.String("Alpha"), record.String("gamma")},
			want: []string{"r1", "r0", "r2"},
		},
		{
			name:  "number kind puts unparseable after parseable in both directions",
			kind:  metadata.KindNumber,
			order: Descend,
			vals:  []record.Value{record.String("n/a"), record.Number(5), record.Null(), record.String("12")},
			want:  []string{"r3", "r1", "r0", "r2"},
		},
		{
			name: "date kind",
			kind: metadata.KindDate,
			vals: []record.Value{record.String("15/01/2026"), record.String("2026-01-02"), record.String("garbage")},
			want: []string{"r1", "r0", "r2"},
		},
		{
			name:  "currency kind descend",
			kind:  metadata.KindCurrency,
			order: Descend,
			vals:  []record.Value{record.String("$5"), record.Number(1000), record.String("€ 40")},
			want:  []string{"r1", "r2", "r0"},
		},
		{
			name: "text kind compares numbers as text",
			kind: metadata.KindText,
			vals: []record.Value{record.String("100"), record.String("50"), record.String("9")},
			want: []string{"r0", "r1", "r2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]record.Record, len(tt.vals))
			for i, v := range tt.vals {
				in[i] = row("r"+string(rune('0'+i)), v)
			}
			order := tt.order
			if order == "" {
				order = Ascend
			}
			got := Apply(in, Spec{Field: "value", Order: order}, tt.kind)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestParseOrder(t *testing.T) {
	assert.Equal(t, Descend, ParseOrder("descend"))
	assert.Equal(t, Descend, ParseOrder("DESC"))
	assert.Equal(t, Ascend, ParseOrder("ascend"))
	assert.Equal(t, Ascend, ParseOrder(""))
}
