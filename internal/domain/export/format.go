package export

import (
	"strings"

	"golang.org/x/net/html"

	"assetdesk/internal/core/record"
	"assetdesk/internal/core/types"
	"assetdesk/internal/metadata"
)

// Table is the rectangular projection of records through the exportable columns.
// Every row has exactly one cell per column.
type Table struct {
	Columns []metadata.Column
	Rows    [][]record.Value
}

// Titles returns the header row.
func (t Table) Titles() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Title
	}
	return out
}

// Slice returns the table restricted to columns [from, to).
func (t Table) Slice(from, to int) Table {
	out := Table{
		Columns: t.Columns[from:to],
		Rows:    make([][]record.Value, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = row[from:to]
	}
	return out
}

// FormatRows projects records through the exportable columns.
// Missing and null cells become empty strings; markup is reduced to its text.
func FormatRows(records []record.Record, columns []metadata.Column) Table {
	cols := metadata.ExportableColumns(columns)
	t := Table{
		Columns: cols,
		Rows:    make([][]record.Value, len(records)),
	}
	for i, rec := range records {
		row := make([]record.Value, len(cols))
		for j, c := range cols {
			row[j] = formatCell(rec.Lookup(c.Key))
		}
		t.Rows[i] = row
	}
	return t
}

func formatCell(v record.Value) record.Value {
	switch v.Kind() {
	case record.KindNull:
		return record.String("")
	case record.KindNumber:
		return v
	case record.KindString:
		s, _ := v.Str()
		if types.IsCurrencyDecorated(s) {
			return v
		}
		return record.String(plainText(s))
	default:
		return record.String(v.String())
	}
}

// plainText unwraps markup such as `<span class="tag">Active</span>` to "Active".
func plainText(s string) string {
	if !strings.Contains(s, "<") || !strings.Contains(s, ">") {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(parts, " ")
}
