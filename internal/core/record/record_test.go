package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_UnmarshalJSON_Kinds(t *testing.T) {
	var rec Record
	err := json.Unmarshal([]byte(`{"asset_id":"A1","value":100.5,"active":true,"owner":null,"tags":["x","y"]}`), &rec)
	require.NoError(t, err)

	assert.Equal(t, KindString, rec.Lookup("asset_id").Kind())
	n, ok := rec.Lookup("value").Num()
	require.True(t, ok)
	assert.Equal(t, 100.5, n)
	assert.Equal(t, KindBool, rec.Lookup("active").Kind())
	assert.Equal(t, `["x","y"]`, rec.Lookup("tags").String())

	owner, present := rec.Get("owner")
	assert.True(t, present)
	assert.True(t, owner.IsNull())

	_, present = rec.Get("missing")
	assert.False(t, present)
}

func TestValue_MarshalJSON(t *testing.T) {
	rec := Record{"a": String("x"), "b": Number(2), "c": Null(), "d": Bool(false)}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":2,"c":null,"d":false}`, string(data))
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, String("Active").Equal(String("Active")))
	assert.False(t, String("1").Equal(Number(1)))
	assert.True(t, Null().Equal(Value{}))
	assert.False(t, Number(1).Equal(Number(2)))
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "100", Number(100).String())
	assert.Equal(t, "1.25", Number(1.25).String())
	assert.Equal(t, "", Null().String())
	assert.Equal(t, "true", Bool(true).String())
}

func TestAssignKeys(t *testing.T) {
	in := []Record{
		{"asset_id": String("A1")},
		{"id": Number(7)},
		{"name": String("no id")},
	}

	out := AssignKeys(in, "asset_id")

	assert.Equal(t, "A1", out[0].Lookup(KeyField).String())
	assert.Equal(t, "7", out[1].Lookup(KeyField).String())
	assert.Equal(t, "2", out[2].Lookup(KeyField).String())

	_, mutated := in[0].Get(KeyField)
	assert.False(t, mutated, "input records must not be modified")
}

func TestValue_Float(t *testing.T) {
	tests := []struct {
		in   Value
		want float64
		ok   bool
	}{
		{Number(12.5), 12.5, true},
		{String(" 40 "), 40, true},
		{String("1e3"), 1000, true},
		{String("abc"), 0, false},
		{Bool(true), 0, false},
		{Null(), 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.in.Float()
		assert.Equal(t, tt.ok, ok, tt.in.String())
		assert.Equal(t, tt.want, got)
	}
}
