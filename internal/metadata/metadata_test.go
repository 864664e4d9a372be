package metadata

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/core/record"
)

type sampleAsset struct {
	AssetID       string    `json:"asset_id" query:"Asset"`
	IPAddress     string    `json:"ip_address"`
	PurchaseDate  string    `json:"purchase_date"`
	PurchaseCost  float64   `json:"purchase_cost"`
	Quantity      int       `json:"quantity"`
	State         string    `json:"state" title:"State / Province"`
	LastChangedAt time.Time `json:"changed"`
	Notes         string    `json:"-"`
}

func TestInspect(t *testing.T) {
	def := Inspect(sampleAsset{}, "assets")

	require.Len(t, def.Columns, 7)
	assert.Equal(t, "assets", def.Name)
	assert.Equal(t, Column{Key: "asset_id", Title: "Asset ID", Kind: KindText}, def.Columns[0])
	assert.Equal(t, "IP Address", def.Columns[1].Title)
	assert.Equal(t, KindDate, def.Columns[2].Kind)
	assert.Equal(t, KindCurrency, def.Columns[3].Kind)
	assert.Equal(t, KindNumber, def.Columns[4].Kind)
	assert.Equal(t, "State / Province", def.Columns[5].Title)
	assert.Equal(t, KindDate, def.Columns[6].Kind)
	assert.Equal(t, "asset_id", def.Fields["Asset"])
}

func TestColumn_Exportable(t *testing.T) {
	assert.True(t, Column{Key: "a", Title: "A"}.Exportable())
	assert.False(t, Column{Key: ActionsKey, Title: "Actions"}.Exportable())
	assert.False(t, Column{Key: "a"}.Exportable())
	assert.False(t, Column{Title: "A"}.Exportable())
}

func TestReportDef_Resolve(t *testing.T) {
	def := ReportDef{
		Name:    "assets",
		Columns: []Column{{Key: "asset_id", Title: "Asset ID"}, {Key: "updated_on", Title: "Changed"}},
		Fields:  map[string]string{"Owner": "owner_name"},
	}
	rec := record.Record{
		"asset_id":    record.String("A1"),
		"owner_name":  record.String("Ops"),
		"serialno":    record.String("S-9"),
		"cost_centre": record.String("CC1"),
		"updated_on":  record.String("2026-01-02"),
	}

	assert.Equal(t, "Ops", def.Resolve("Owner", rec).String())
	assert.Equal(t, "A1", def.Resolve("asset id", rec).String())
	assert.Equal(t, "S-9", def.Resolve("Serial No", rec).String())
	assert.Equal(t, "CC1", def.Resolve("Cost Centre", rec).String())
	assert.True(t, def.Resolve("Unknown", rec).IsNull())
}

func TestReportDef_FieldKeyCaseCollision(t *testing.T) {
	def := ReportDef{Fields: map[string]string{
		"owner": "owner_login",
		"Owner": "owner_name",
		"OWNER": "owner_code",
	}}

	for range 50 {
		key, ok := def.FieldKey("oWnEr")
		require.True(t, ok)
		assert.Equal(t, "owner_code", key)
	}

	key, _ := def.FieldKey("Owner")
	assert.Equal(t, "owner_name", key)
}

func TestReportDef_IsDateField(t *testing.T) {
	def := ReportDef{
		DateField: "Changed",
		Columns:   []Column{{Key: "updated_on", Title: "Changed"}},
		Fields:    map[string]string{"Last Change": "updated_on"},
	}
	assert.True(t, def.IsDateField("changed"))
	assert.True(t, def.IsDateField("Last Change"))
	assert.False(t, def.IsDateField("Asset ID"))
	assert.False(t, ReportDef{}.IsDateField("Changed"))
}

func TestLoadYAML(t *testing.T) {
	src := `
reports:
  - name: vehicles
    label: Vehicles
    endpoint: /vehicles
    envelope: $.data
    dateField: Changed
    columns:
      - {key: plate, title: Plate}
      - {key: mileage, title: Mileage, kind: number}
      - {key: actions, title: Actions}
    fields:
      Registration: plate
`
	defs, err := LoadYAML(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, defs, 1)

	reg := NewRegistry()
	require.NoError(t, reg.Register(defs[0]))
	got, ok := reg.Get("vehicles")
	require.True(t, ok)
	assert.Equal(t, "$.data", got.Envelope)
	assert.Equal(t, KindNumber, got.ColumnKind("mileage"))
	assert.Len(t, ExportableColumns(got.Columns), 2)
	assert.Equal(t, "plate", got.Fields["Registration"])
}

func TestLoadYAML_RejectsDuplicateKeys(t *testing.T) {
	src := `
reports:
  - name: broken
    columns:
      - {key: a, title: A}
      - {key: a, title: B}
`
	_, err := LoadYAML(strings.NewReader(src))
	assert.Error(t, err)
}

func TestGuessLabel(t *testing.T) {
	assert.Equal(t, "Purchase Date", guessLabel("PurchaseDate"))
	assert.Equal(t, "Asset ID", guessLabel("AssetID"))
	assert.Equal(t, "IP Address", guessLabel("IPAddress"))
	assert.Equal(t, "Name", guessLabel("Name"))
}
