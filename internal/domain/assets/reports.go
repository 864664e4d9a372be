package assets

import (
	"fmt"

	"assetdesk/internal/metadata"
)

// DateField is the logical "changed" field every built-in report compares as a date.
const DateField = "Changed"

type builtin struct {
	entity   any
	name     string
	label    string
	endpoint string
	idField  string
	clauses  []string
}

var builtins = []builtin{
	{Asset{}, "asset-register", "Asset Register", "/assets", "asset_id", []string{"Asset", "Status", "State"}},
	{Allocation{}, "allocations", "Asset Allocations", "/allocations", "allocation_id", []string{"Asset ID", "Allocated To", "State"}},
	{Transfer{}, "transfers", "Asset Transfers", "/transfers", "transfer_id", []string{"Asset ID", "To Location", "State"}},
	{Maintenance{}, "maintenance", "Maintenance Tickets", "/maintenance", "ticket_id", []string{"Asset ID", "Issue Type", "Status"}},
	{Depreciation{}, "depreciation", "Depreciation Schedule", "/depreciation", "asset_id", []string{"Asset ID", "Category", "Fiscal Year"}},
}

// Register adds the built-in report definitions to reg.
// Each definition ends with the UI-only actions column.
func Register(reg *metadata.Registry) error {
	for _, b := range builtins {
		def := metadata.Inspect(b.entity, b.name)
		def.Label = b.label
		def.Endpoint = b.endpoint
		def.IDField = b.idField
		def.DateField = DateField
		def.DefaultClauseFields = b.clauses
		def.Columns = append(def.Columns, metadata.Column{Key: metadata.ActionsKey, Title: "Actions"})

		if err := reg.Register(def); err != nil {
			return fmt.Errorf("register %s: %w", b.name, err)
		}
	}
	return nil
}
