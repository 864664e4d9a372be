package metadata

import (
	"fmt"
	"sort"
	"strings"
)

// Kind is the value kind of a column. It selects the comparator used when sorting.
type Kind string

const (
	KindAuto     Kind = "" // detect from the values themselves
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindDate     Kind = "date"
	KindCurrency Kind = "currency"
)

// ParseKind maps a textual kind to Kind. Unknown text yields KindAuto.
func ParseKind(s string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindText:
		return KindText
	case KindNumber:
		return KindNumber
	case KindDate:
		return KindDate
	case KindCurrency:
		return KindCurrency
	default:
		return KindAuto
	}
}

// ActionsKey is the key of the UI-only column holding row buttons.
const ActionsKey = "actions"

// Column describes one field for display, sorting and export.
type Column struct {
	Key   string `json:"key" yaml:"key"`
	Title string `json:"title" yaml:"title"`
	Kind  Kind   `json:"kind,omitempty" yaml:"kind"`
}

// Exportable reports whether the column may appear in exported output.
func (c Column) Exportable() bool {
	return c.Key != "" && c.Key != ActionsKey && c.Title != ""
}

// ExportableColumns keeps only exportable columns, in order.
func ExportableColumns(cols []Column) []Column {
	out := make([]Column, 0, len(cols))
	for _, c := range cols {
		if c.Exportable() {
			out = append(out, c)
		}
	}
	return out
}

// ReportDef describes a report screen: where its rows come from and how they are shown.
type ReportDef struct {
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label,omitempty" yaml:"label"`

	// Endpoint is the REST path the rows are fetched from, relative to the source base URL.
	Endpoint string `json:"-" yaml:"endpoint"`
	// Envelope is a JSONPath locating the row array when the payload is wrapped, e.g. "$.data".
	Envelope string `json:"-" yaml:"envelope"`
	// IDField is preferred when assigning synthetic row keys.
	IDField string `json:"idField,omitempty" yaml:"idField"`
	// DateField is the logical query field compared as a date (the "changed" field).
	DateField string `json:"dateField,omitempty" yaml:"dateField"`

	Columns []Column `json:"columns" yaml:"columns"`

	// Fields maps logical query-field names to record keys.
	Fields map[string]string `json:"fields,omitempty" yaml:"fields"`
	// DefaultClauseFields seeds a reset query chain.
	DefaultClauseFields []string `json:"defaultClauseFields,omitempty" yaml:"defaultClauseFields"`
}

// Validate checks structural consistency of a definition.
func (d ReportDef) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("report definition without name")
	}
	seen := make(map[string]struct{}, len(d.Columns))
	for _, c := range d.Columns {
		if c.Key == "" {
			continue
		}
		if _, dup := seen[c.Key]; dup {
			return fmt.Errorf("report %s: duplicate column key %q", d.Name, c.Key)
		}
		seen[c.Key] = struct{}{}
	}
	return nil
}

// Column returns the column with the given key.
func (d ReportDef) Column(key string) (Column, bool) {
	for _, c := range d.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnKind returns the kind declared for key, or KindAuto.
func (d ReportDef) ColumnKind(key string) Kind {
	if c, ok := d.Column(key); ok {
		return c.Kind
	}
	return KindAuto
}

// ClauseFields returns the logical field names offered by the query builder.
func (d ReportDef) ClauseFields() []string {
	out := make([]string, 0, len(d.Columns))
	for _, c := range d.Columns {
		if c.Exportable() {
			out = append(out, c.Title)
		}
	}
	return out
}

// Registry stores report definitions.
type Registry struct {
	reports map[string]ReportDef
}

func NewRegistry() *Registry {
	return &Registry{
		reports: make(map[string]ReportDef),
	}
}

// Register adds or replaces a definition.
func (r *Registry) Register(def ReportDef) error {
	if err := def.Validate(); err != nil {
		return err
	}
	r.reports[def.Name] = def
	return nil
}

func (r *Registry) Get(name string) (ReportDef, bool) {
	d, ok := r.reports[name]
	return d, ok
}

// List returns all definitions ordered by name.
func (r *Registry) List() []ReportDef {
	list := make([]ReportDef, 0, len(r.reports))
	for _, def := range r.reports {
		list = append(list, def)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
