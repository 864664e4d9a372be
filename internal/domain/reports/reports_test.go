package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/core/apperror"
	"assetdesk/internal/core/record"
	"assetdesk/internal/domain/export"
	"assetdesk/internal/domain/filter"
	"assetdesk/internal/domain/query"
	"assetdesk/internal/domain/sorting"
	"assetdesk/internal/metadata"
)

var now = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func testDef() metadata.ReportDef {
	return metadata.ReportDef{
		Name:      "asset-register",
		Label:     "Asset Register",
		IDField:   "asset_id",
		DateField: "Changed",
		Columns: []metadata.Column{
			{Key: "asset_id", Title: "Asset ID"},
			{Key: "status", Title: "Status"},
			{Key: "state", Title: "State"},
			{Key: "value", Title: "Value", Kind: metadata.KindAuto},
			{Key: "changed_on", Title: "Changed", Kind: metadata.KindDate},
			{Key: metadata.ActionsKey, Title: "Actions"},
		},
		DefaultClauseFields: []string{"Asset ID", "Status", "State"},
	}
}

func testRows() []record.Record {
	return []record.Record{
		{"asset_id": record.String("A1"), "status": record.String("Active"), "state": record.String("Goa"), "value": record.String("100"), "changed_on": record.String("2026-10-01")},
		{"asset_id": record.String("A2"), "status": record.String("Archived"), "state": record.String("Goa"), "value": record.String("50"), "changed_on": record.String("2026-06-01")},
		{"asset_id": record.String("A3"), "status": record.String("Pending"), "state": record.String("Kerala"), "value": record.Null(), "changed_on": record.String("2026-10-10")},
		{"asset_id": record.String("A4"), "status": record.String("Active"), "state": record.String("Kerala"), "value": record.String("75"), "changed_on": record.String("2026-09-30")},
	}
}

type fakeSource struct {
	rows []record.Record
	err  error
}

func (f *fakeSource) Fetch(context.Context, metadata.ReportDef) ([]record.Record, error) {
	return f.rows, f.err
}

type fakeExporter struct {
	job export.Job
	res export.Result
}

func (f *fakeExporter) Export(_ context.Context, job export.Job) (export.Artifact, export.Result) {
	f.job = job
	if f.res.Success || f.res.Error != "" {
		return export.Artifact{}, f.res
	}
	return export.Artifact{Filename: "x.pdf"}, export.Result{Success: true, Filename: "x.pdf", RecordCount: len(job.Records)}
}

func newService(t *testing.T, src Source, exp Exporter) *Service {
	t.Helper()
	reg := metadata.NewRegistry()
	require.NoError(t, reg.Register(testDef()))
	svc := NewService(reg, src, exp, Config{DefaultPageSize: 2, MaxPageSize: 3})
	svc.now = func() time.Time { return now }
	return svc
}

func ids(records []record.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Lookup("asset_id").String()
	}
	return out
}

func TestRun_FilterQuerySort(t *testing.T) {
	p := NewParams().
		WithFilters(filter.Spec{"status": filter.Strings("Active", "Pending")}).
		WithClauses(query.Chain{{ID: 1, Field: "Changed", Operator: query.GreaterOrEqual, Value: "@Today - 30"}}).
		WithSort(sorting.Spec{Field: "value", Order: sorting.Descend})

	got := Run(testRows(), testDef(), p, now)
	assert.Equal(t, []string{"A1", "A4", "A3"}, ids(got))
}

func TestParams_Immutable(t *testing.T) {
	spec := filter.Spec{"status": filter.Text("a")}
	base := NewParams()
	withF := base.WithFilters(spec)

	spec["state"] = filter.Text("x")
	assert.Len(t, withF.Filters(), 1)
	assert.Empty(t, base.Filters())

	out := withF.Filters()
	out["other"] = filter.Text("y")
	assert.Len(t, withF.Filters(), 1)

	assert.Equal(t, 1, base.Page())
	assert.Equal(t, 3, base.WithPage(3, 10).Page())
	assert.Equal(t, 1, base.Page())
}

func TestParams_Fingerprint(t *testing.T) {
	a := NewParams().WithFilters(filter.Spec{"status": filter.Strings("Active")})
	b := NewParams().
		WithFilters(filter.Spec{"status": filter.Strings("Active"), "state": filter.Text("")}).
		WithClauses(query.Reset(testDef())).
		WithPage(4, 50)
	c := a.WithSort(sorting.Spec{Field: "value", Order: sorting.Descend})

	assert.Len(t, a.Fingerprint(), 16)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.False(t, NewParams().WithClauses(query.Reset(testDef())).Filtered())
	assert.True(t, a.Filtered())
}

func TestService_QueryPaginates(t *testing.T) {
	svc := newService(t, &fakeSource{rows: testRows()}, &fakeExporter{})

	page, err := svc.Query(context.Background(), "asset-register", NewParams())
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, ids(page.Rows))
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "A1", page.Rows[0].Lookup(record.KeyField).String())

	page, err = svc.Query(context.Background(), "asset-register", NewParams().WithPage(2, 100))
	require.NoError(t, err)
	assert.Equal(t, 3, page.PageSize)
	assert.Equal(t, []string{"A4"}, ids(page.Rows))

	page, err = svc.Query(context.Background(), "asset-register", NewParams().WithPage(9, 2))
	require.NoError(t, err)
	assert.Empty(t, page.Rows)
	assert.Equal(t, 9, page.Page)
}

func TestService_QueryHugePageIsEmpty(t *testing.T) {
	svc := newService(t, &fakeSource{rows: testRows()}, &fakeExporter{})

	var (
		page *Page
		err  error
	)
	require.NotPanics(t, func() {
		page, err = svc.Query(context.Background(), "asset-register", NewParams().WithPage(1<<62+1, 3))
	})
	require.NoError(t, err)
	assert.Empty(t, page.Rows)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestService_QueryErrors(t *testing.T) {
	svc := newService(t, &fakeSource{err: errors.New("connection refused")}, &fakeExporter{})

	_, err := svc.Query(context.Background(), "missing", NewParams())
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.Query(context.Background(), "asset-register", NewParams())
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUpstream, appErr.Code)
}

func TestService_ExportUsesWholeResult(t *testing.T) {
	exp := &fakeExporter{}
	svc := newService(t, &fakeSource{rows: testRows()}, exp)

	p := NewParams().
		WithFilters(filter.Spec{"state": filter.Strings("Goa")}).
		WithPage(1, 1)
	_, res, err := svc.Export(context.Background(), "asset-register", export.KindPDF, p, "s-1")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.RecordCount)
	assert.Equal(t, "asset_register", exp.job.BaseFilename)
	assert.Equal(t, "Asset Register", exp.job.Title)
	assert.Equal(t, "s-1", exp.job.SessionID)
	assert.Equal(t, []string{"State: Goa"}, exp.job.FilterLines)
	assert.True(t, exp.job.Filtered())
}

func TestService_ExportFailureIsAResult(t *testing.T) {
	exp := &fakeExporter{res: export.Result{Success: false, Error: "unsupported export type"}}
	svc := newService(t, &fakeSource{rows: testRows()}, exp)

	_, res, err := svc.Export(context.Background(), "asset-register", export.Kind("csv"), NewParams(), "")
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestService_MutateClauses(t *testing.T) {
	svc := newService(t, &fakeSource{}, &fakeExporter{})

	chain, err := svc.MutateClauses("asset-register", nil, ClauseReset, query.Clause{}, 0)
	require.NoError(t, err)
	require.Len(t, chain, 3)

	chain, err = svc.MutateClauses("asset-register", chain, ClauseAppend, query.Clause{Field: "State", Value: "Goa"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, chain[3].ID)

	chain, err = svc.MutateClauses("asset-register", chain, ClauseRemove, query.Clause{}, 1)
	require.NoError(t, err)
	assert.Len(t, chain, 3)
	assert.Equal(t, query.None, chain[0].Logical)

	_, err = svc.MutateClauses("asset-register", chain, ClauseAppend, query.Clause{}, 0)
	assert.Error(t, err)

	_, err = svc.MutateClauses("asset-register", chain, "shuffle", query.Clause{}, 0)
	assert.Equal(t, apperror.CodeValidation, mustAppErr(t, err).Code)
}

func TestFilterLines(t *testing.T) {
	p := NewParams().
		WithFilters(filter.Spec{"status": filter.Strings("Active")}).
		WithClauses(query.Chain{
			{ID: 1, Field: "State", Operator: query.Equal, Value: "Goa"},
			{ID: 2, Field: "Value", Operator: query.Greater, Value: "10", Logical: query.Or},
		})

	assert.Equal(t, []string{"Status: Active", "Query: State = Goa Or Value > 10"}, FilterLines(testDef(), p))
}

func mustAppErr(t *testing.T, err error) *apperror.AppError {
	t.Helper()
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	return appErr
}
