package dto

import (
	"assetdesk/internal/core/record"
	"assetdesk/internal/domain/filter"
	"assetdesk/internal/domain/query"
	"assetdesk/internal/domain/reports"
	"assetdesk/internal/domain/sorting"
	"assetdesk/internal/metadata"
)

// --- Definitions ---

// ReportSummary is the list view of a report definition.
type ReportSummary struct {
	Name         string `json:"name"`
	Label        string `json:"label"`
	Columns      int    `json:"columns"`
	HasDateField bool   `json:"hasDateField"`
}

// FromReportDefs summarizes definitions for the meta list.
func FromReportDefs(defs []metadata.ReportDef) []ReportSummary {
	out := make([]ReportSummary, 0, len(defs))
	for _, d := range defs {
		out = append(out, ReportSummary{
			Name:         d.Name,
			Label:        d.Label,
			Columns:      len(metadata.ExportableColumns(d.Columns)),
			HasDateField: d.DateField != "",
		})
	}
	return out
}

// ReportDefinitionResponse is the full definition plus the query builder vocabulary.
type ReportDefinitionResponse struct {
	metadata.ReportDef
	ClauseFields []string         `json:"clauseFields"`
	Operators    []query.Operator `json:"operators"`
	Defaults     query.Chain      `json:"defaultClauses"`
}

// FromReportDef builds the definition response.
func FromReportDef(def metadata.ReportDef) ReportDefinitionResponse {
	return ReportDefinitionResponse{
		ReportDef:    def,
		ClauseFields: def.ClauseFields(),
		Operators: []query.Operator{
			query.Equal, query.NotEqual,
			query.Greater, query.Less, query.GreaterOrEqual, query.LessOrEqual,
			query.Contains,
		},
		Defaults: query.Reset(def),
	}
}

// --- Query ---

// SortRequest names the sort column and direction ("ascend"/"descend").
type SortRequest struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// ReportQueryRequest is the full screen state of a report.
type ReportQueryRequest struct {
	PaginationRequest
	Filters filter.Spec  `json:"filters"`
	Clauses query.Chain  `json:"clauses"`
	Sort    *SortRequest `json:"sort"`
}

// ToParams converts the request into pipeline params.
func (r ReportQueryRequest) ToParams() reports.Params {
	p := reports.NewParams().
		WithFilters(r.Filters).
		WithClauses(r.Clauses).
		WithPage(r.Page, r.PageSize)
	if r.Sort != nil && r.Sort.Field != "" {
		p = p.WithSort(sorting.Spec{Field: r.Sort.Field, Order: sorting.ParseOrder(r.Sort.Order)})
	}
	return p
}

// ReportQueryResponse is one page of rows.
type ReportQueryResponse struct {
	Data        []record.Record    `json:"data"`
	Pagination  PaginationResponse `json:"pagination"`
	Fingerprint string             `json:"fingerprint"`
}

// FromPage converts a service page.
func FromPage(p *reports.Page) ReportQueryResponse {
	return ReportQueryResponse{
		Data:        p.Rows,
		Pagination:  NewPaginationResponse(p.Page, p.PageSize, p.Total, p.TotalPages),
		Fingerprint: p.Fingerprint,
	}
}

// --- Clauses ---

// ClauseMutationRequest asks for one chain mutation.
type ClauseMutationRequest struct {
	Action  string       `json:"action" binding:"required,oneof=append remove reset normalize"`
	Clauses query.Chain  `json:"clauses"`
	Clause  query.Clause `json:"clause"`
	ID      int          `json:"id"`
}

// ClauseMutationResponse returns the resulting chain.
type ClauseMutationResponse struct {
	Clauses     query.Chain `json:"clauses"`
	Description []string    `json:"description"`
}
