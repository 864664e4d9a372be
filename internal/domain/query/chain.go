package query

import (
	"slices"

	"assetdesk/internal/metadata"
)

// DefaultClauses is the length of a reset chain.
const DefaultClauses = 3

// Append adds a clause with the next free id. It joins with And unless it is the first clause.
func (c Chain) Append(cl Clause) Chain {
	next := 1
	for _, existing := range c {
		if existing.ID >= next {
			next = existing.ID + 1
		}
	}
	cl.ID = next
	cl.Logical = And
	if len(c) == 0 {
		cl.Logical = None
	}
	if cl.Operator == "" {
		cl.Operator = Equal
	}

	out := make(Chain, len(c), len(c)+1)
	copy(out, c)
	return append(out, cl)
}

// Remove drops the clause with id. The surviving clauses are re-joined:
// the first gets None and every other one And, whatever they had before.
// Removing the last clause leaves an empty chain, which keeps every row.
func (c Chain) Remove(id int) Chain {
	out := make(Chain, 0, len(c))
	for _, cl := range c {
		if cl.ID != id {
			out = append(out, cl)
		}
	}
	for i := range out {
		out[i].Logical = And
		if i == 0 {
			out[i].Logical = None
		}
	}
	return out
}

// Normalize clears the first clause's Logical and turns any later None into And.
func (c Chain) Normalize() Chain {
	out := make(Chain, len(c))
	copy(out, c)
	for i := range out {
		switch {
		case i == 0:
			out[i].Logical = None
		case out[i].Logical == None:
			out[i].Logical = And
		}
		if out[i].Operator == "" {
			out[i].Operator = Contains
		}
	}
	return out
}

// Reset returns the canonical placeholder chain of a report: three "[Any]" clauses
// over its default clause fields, topped up from its column titles.
func Reset(def metadata.ReportDef) Chain {
	fields := make([]string, 0, DefaultClauses)
	fields = append(fields, def.DefaultClauseFields...)
	for _, f := range def.ClauseFields() {
		if len(fields) >= DefaultClauses {
			break
		}
		if !slices.Contains(fields, f) {
			fields = append(fields, f)
		}
	}
	if len(fields) > DefaultClauses {
		fields = fields[:DefaultClauses]
	}

	chain := make(Chain, 0, DefaultClauses)
	for i, f := range fields {
		logical := And
		if i == 0 {
			logical = None
		}
		chain = append(chain, Clause{
			ID:       i + 1,
			Field:    f,
			Operator: Equal,
			Value:    AnyValue,
			Logical:  logical,
		})
	}
	return chain
}

// Describe renders the evaluated clauses as text, skipping placeholders.
func (c Chain) Describe() []string {
	var lines []string
	for _, cl := range c {
		if cl.Skipped() {
			continue
		}
		if len(lines) == 0 {
			cl.Logical = None
		}
		lines = append(lines, cl.String())
	}
	return lines
}
