// Package export turns a finished record set into a spreadsheet, a print document
// or a dashboard handoff.
package export

import (
	"context"
	"strings"

	"assetdesk/internal/core/record"
	"assetdesk/internal/metadata"
)

// Kind selects the export path.
type Kind string

const (
	KindExcel      Kind = "excel"
	KindPDF        Kind = "pdf"
	KindPDFCompact Kind = "pdf-compact"
	KindDashboard  Kind = "dashboard"
)

// ParseKind maps text to a Kind. The bool is false for unknown kinds.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindExcel, KindPDF, KindPDFCompact, KindDashboard:
		return k, true
	default:
		return k, false
	}
}

const (
	// DashboardSlot is the well-known handoff slot read by the dashboard view.
	DashboardSlot = "dashboardData"
	// DashboardPath is where the caller navigates after a dashboard handoff.
	DashboardPath = "/dashboard"
)

// Job is one export request. It is consumed once.
type Job struct {
	Kind         Kind
	Records      []record.Record
	Columns      []metadata.Column
	BaseFilename string
	Title        string
	ReportType   string

	// FilterLines describe the active filters and clauses. Non-empty marks the file "_filtered".
	FilterLines []string
	// Filters is the structured filter state passed through to the dashboard.
	Filters any
	// SessionID scopes the dashboard handoff slot.
	SessionID string
}

// Filtered reports whether any filter or clause restricted the rows.
func (j Job) Filtered() bool {
	return len(j.FilterLines) > 0
}

// Result is the outcome reported to the caller. Failures never surface as errors.
type Result struct {
	Success     bool   `json:"success"`
	Filename    string `json:"filename,omitempty"`
	RecordCount int    `json:"recordCount,omitempty"`
	Error       string `json:"error,omitempty"`
	Redirect    string `json:"redirect,omitempty"`
}

// Artifact is a produced file. Dashboard exports produce none.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
	// Pages is the physical page count of PDF output.
	Pages int
}

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// HandoffStore keeps a payload for a session until the destination view reads it.
type HandoffStore interface {
	Put(ctx context.Context, sessionID, slot string, payload []byte) error
}
