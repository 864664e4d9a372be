package reports

import (
	"strings"
	"time"

	"assetdesk/internal/core/record"
	"assetdesk/internal/domain/filter"
	"assetdesk/internal/domain/query"
	"assetdesk/internal/domain/sorting"
	"assetdesk/internal/metadata"
)

// Run applies the column filters, then the clause chain, then the sort.
// records is never modified.
func Run(records []record.Record, def metadata.ReportDef, p Params, now time.Time) []record.Record {
	out := filter.Apply(records, p.filters)
	out = query.Apply(out, p.clauses, def, now)
	return sorting.Apply(out, p.sort, def.ColumnKind(p.sort.Field))
}

// FilterLines describes the active column filters and clauses for export headers.
func FilterLines(def metadata.ReportDef, p Params) []string {
	title := func(key string) string {
		if c, ok := def.Column(key); ok {
			return c.Title
		}
		return ""
	}
	lines := p.filters.Describe(title)
	if clauses := p.clauses.Describe(); len(clauses) > 0 {
		lines = append(lines, "Query: "+strings.Join(clauses, " "))
	}
	return lines
}
