package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"assetdesk/internal/core/record"
	"assetdesk/internal/metadata"
)

// Options bound the PDF layouts.
type Options struct {
	// ColumnThreshold is the most columns a full PDF page carries.
	ColumnThreshold int
	// CompactColumns is the number of columns a compact PDF shows.
	CompactColumns int
	// FontFile is an optional UTF-8 TrueType font for PDF text.
	FontFile string
	// Uncompressed leaves PDF content streams as plain text.
	Uncompressed bool
}

// DefaultOptions returns the standard layout limits.
func DefaultOptions() Options {
	return Options{ColumnThreshold: 20, CompactColumns: 8}
}

// Formatter runs export jobs.
type Formatter struct {
	opts    Options
	handoff HandoffStore
	now     func() time.Time
}

// NewFormatter creates a Formatter. handoff may be nil when dashboard exports are not offered.
func NewFormatter(opts Options, handoff HandoffStore) *Formatter {
	return &Formatter{
		opts:    opts,
		handoff: handoff,
		now:     time.Now,
	}
}

// DashboardPayload is the object handed to the dashboard view.
type DashboardPayload struct {
	ReportType  string            `json:"reportType"`
	Title       string            `json:"title"`
	Records     []record.Record   `json:"records"`
	Columns     []metadata.Column `json:"columns"`
	Filters     any               `json:"filters,omitempty"`
	FilterLines []string          `json:"filterLines,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
	RecordCount int               `json:"recordCount"`
}

// Export runs job. Every failure, including a panic inside a writer, is
// reported through Result and never as an error.
func (f *Formatter) Export(ctx context.Context, job Job) (art Artifact, res Result) {
	defer func() {
		if r := recover(); r != nil {
			art = Artifact{}
			res = Result{Success: false, Error: fmt.Sprintf("export failed: %v", r)}
		}
	}()

	now := f.now()
	var err error

	switch job.Kind {
	case KindExcel:
		art, err = f.excel(job, now)
	case KindPDF:
		art, err = f.pdf(job, now, false)
	case KindPDFCompact:
		art, err = f.pdf(job, now, true)
	case KindDashboard:
		if err = f.dashboard(ctx, job, now); err == nil {
			return Artifact{}, Result{Success: true, RecordCount: len(job.Records), Redirect: DashboardPath}
		}
	default:
		return Artifact{}, Result{Success: false, Error: "unsupported export type"}
	}

	if err != nil {
		return Artifact{}, Result{Success: false, Error: err.Error()}
	}
	return art, Result{Success: true, Filename: art.Filename, RecordCount: len(job.Records)}
}

func (f *Formatter) excel(job Job, now time.Time) (Artifact, error) {
	data, err := WriteExcel(FormatRows(job.Records, job.Columns))
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Filename:    Filename(job.BaseFilename, job.Filtered(), now, "xlsx"),
		ContentType: ContentTypeXLSX,
		Data:        data,
	}, nil
}

func (f *Formatter) pdf(job Job, now time.Time, compact bool) (Artifact, error) {
	t := FormatRows(job.Records, job.Columns)

	var (
		data  []byte
		pages int
		err   error
	)
	if compact {
		data, pages, err = WriteCompactPDF(job, t, f.opts, now)
	} else {
		data, pages, err = WritePDF(job, t, f.opts, now)
	}
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Filename:    Filename(job.BaseFilename, job.Filtered(), now, "pdf"),
		ContentType: ContentTypePDF,
		Data:        data,
		Pages:       pages,
	}, nil
}

func (f *Formatter) dashboard(ctx context.Context, job Job, now time.Time) error {
	if f.handoff == nil {
		return errors.New("dashboard handoff is not configured")
	}
	if job.SessionID == "" {
		return errors.New("dashboard handoff needs a session")
	}

	payload, err := json.Marshal(DashboardPayload{
		ReportType:  job.ReportType,
		Title:       job.Title,
		Records:     job.Records,
		Columns:     metadata.ExportableColumns(job.Columns),
		Filters:     job.Filters,
		FilterLines: job.FilterLines,
		Timestamp:   now.UTC(),
		RecordCount: len(job.Records),
	})
	if err != nil {
		return fmt.Errorf("encode dashboard payload: %w", err)
	}

	if err := f.handoff.Put(ctx, job.SessionID, DashboardSlot, payload); err != nil {
		return fmt.Errorf("store dashboard payload: %w", err)
	}
	return nil
}
