// Package assets declares the row shapes of the asset back office reports.
// The structs are never persisted here; their tags derive the column descriptors.
package assets

// Asset is one entry of the asset register.
type Asset struct {
	AssetID      string  `json:"asset_id" query:"Asset"`
	Name         string  `json:"asset_name"`
	Category     string  `json:"category"`
	SerialNo     string  `json:"serial_no" title:"Serial No"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Status       string  `json:"status"`
	Location     string  `json:"location"`
	State        string  `json:"state"`
	Custodian    string  `json:"custodian"`
	PurchaseDate string  `json:"purchase_date"`
	PurchaseCost float64 `json:"purchase_cost"`
	Vendor       string  `json:"vendor"`
	Warranty     string  `json:"warranty_end" title:"Warranty End" kind:"date"`
	ChangedAt    string  `json:"changed_on" title:"Changed"`
}

// Allocation records an asset issued to an employee or site.
type Allocation struct {
	AllocationID string `json:"allocation_id" title:"Allocation ID"`
	AssetID      string `json:"asset_id"`
	AssetName    string `json:"asset_name"`
	AllocatedTo  string `json:"allocated_to"`
	Department   string `json:"department"`
	Location     string `json:"location"`
	State        string `json:"state"`
	IssuedDate   string `json:"issue_date" title:"Issue Date" kind:"date"`
	ReturnDate   string `json:"return_date"`
	Status       string `json:"status"`
	ChangedAt    string `json:"changed_on" title:"Changed"`
}

// Transfer moves an asset between locations.
type Transfer struct {
	TransferID   string `json:"transfer_id" title:"Transfer ID"`
	AssetID      string `json:"asset_id"`
	AssetName    string `json:"asset_name"`
	FromLocation string `json:"from_location"`
	ToLocation   string `json:"to_location"`
	State        string `json:"state"`
	TransferDate string `json:"transfer_date"`
	ApprovedBy   string `json:"approved_by"`
	Status       string `json:"status"`
	ChangedAt    string `json:"changed_on" title:"Changed"`
}

// Maintenance is a service ticket raised against an asset.
type Maintenance struct {
	TicketID    string  `json:"ticket_id" title:"Ticket ID"`
	AssetID     string  `json:"asset_id"`
	AssetName   string  `json:"asset_name"`
	IssueType   string  `json:"issue_type"`
	Vendor      string  `json:"vendor"`
	State       string  `json:"state"`
	ReportedOn  string  `json:"reported_on" kind:"date"`
	ClosedOn    string  `json:"closed_on" kind:"date"`
	RepairCost  float64 `json:"repair_cost"`
	DowntimeHrs float64 `json:"downtime_hours" title:"Downtime (h)"`
	Status      string  `json:"status"`
	ChangedAt   string  `json:"changed_on" title:"Changed"`
}

// Depreciation is the yearly book value schedule of an asset.
type Depreciation struct {
	AssetID      string  `json:"asset_id"`
	AssetName    string  `json:"asset_name"`
	Category     string  `json:"category"`
	Method       string  `json:"method"`
	FiscalYear   int     `json:"fiscal_year" kind:"text"`
	OpeningValue float64 `json:"opening_value"`
	Rate         float64 `json:"rate_percent" title:"Rate (%)"`
	Charge       float64 `json:"depreciation" title:"Depreciation" kind:"currency"`
	ClosingValue float64 `json:"closing_value"`
	ChangedAt    string  `json:"changed_on" title:"Changed"`
}
