package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/core/record"
	"assetdesk/internal/metadata"
)

func TestRegister(t *testing.T) {
	reg := metadata.NewRegistry()
	require.NoError(t, Register(reg))
	require.Len(t, reg.List(), len(builtins))

	def, ok := reg.Get("asset-register")
	require.True(t, ok)

	last := def.Columns[len(def.Columns)-1]
	assert.Equal(t, metadata.ActionsKey, last.Key)
	assert.False(t, last.Exportable())

	assert.Equal(t, metadata.KindCurrency, def.ColumnKind("purchase_cost"))
	assert.Equal(t, metadata.KindDate, def.ColumnKind("purchase_date"))
	assert.Equal(t, metadata.KindDate, def.ColumnKind("changed_on"))
	assert.Equal(t, metadata.KindText, def.ColumnKind("serial_no"))

	rec := record.Record{"asset_id": record.String("A1"), "changed_on": record.String("2026-01-02")}
	assert.Equal(t, "A1", def.Resolve("Asset", rec).String())
	assert.Equal(t, "A1", def.Resolve("Asset ID", rec).String())
	assert.True(t, def.IsDateField("Changed"))
}

func TestRegister_DefaultClauseFieldsResolve(t *testing.T) {
	reg := metadata.NewRegistry()
	require.NoError(t, Register(reg))

	for _, def := range reg.List() {
		for _, field := range def.DefaultClauseFields {
			_, ok := def.FieldKey(field)
			assert.True(t, ok, "%s: clause field %q has no column", def.Name, field)
		}
	}
}
