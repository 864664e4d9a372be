// Package reports composes the filter, query and sort engines into the
// report pipeline and serves pages and exports of report screens.
package reports

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"maps"

	"github.com/minio/highwayhash"

	"assetdesk/internal/domain/filter"
	"assetdesk/internal/domain/query"
	"assetdesk/internal/domain/sorting"
)

// fingerprintKey is the fixed HighwayHash key. Fingerprints only need to be
// stable across processes, not secret.
var fingerprintKey = []byte("assetdesk-report-params-v1-key!!")

// Params is the immutable query state of a report screen.
// The With* methods return modified copies.
type Params struct {
	filters  filter.Spec
	clauses  query.Chain
	sort     sorting.Spec
	page     int
	pageSize int
}

// NewParams returns params for the first page with no constraints.
func NewParams() Params {
	return Params{page: 1}
}

func (p Params) Filters() filter.Spec { return maps.Clone(p.filters) }

func (p Params) Clauses() query.Chain { return append(query.Chain(nil), p.clauses...) }

func (p Params) Sort() sorting.Spec { return p.sort }

func (p Params) Page() int { return p.page }

func (p Params) PageSize() int { return p.pageSize }

// WithFilters replaces the column filters.
func (p Params) WithFilters(spec filter.Spec) Params {
	p.filters = maps.Clone(spec)
	return p
}

// WithClauses replaces the clause chain.
func (p Params) WithClauses(chain query.Chain) Params {
	p.clauses = append(query.Chain(nil), chain...)
	return p
}

// WithSort replaces the sort.
func (p Params) WithSort(spec sorting.Spec) Params {
	p.sort = spec
	return p
}

// WithPage selects a page. Sizes are clamped by the service.
func (p Params) WithPage(page, size int) Params {
	p.page = page
	p.pageSize = size
	return p
}

// Filtered reports whether any filter or clause restricts the rows.
func (p Params) Filtered() bool {
	return p.filters.Active() || p.clauses.Active()
}

// State is the serialisable form of the constraints, without pagination.
type State struct {
	Filters filter.Spec  `json:"filters,omitempty"`
	Clauses query.Chain  `json:"clauses,omitempty"`
	Sort    sorting.Spec `json:"sort"`
}

// State returns the constraints for hand-off to other views.
func (p Params) State() State {
	return State{Filters: p.Filters(), Clauses: p.Clauses(), Sort: p.sort}
}

// Fingerprint identifies the row set selected by p, ignoring pagination.
// Equal constraints give equal fingerprints.
func (p Params) Fingerprint() string {
	st := p.State()
	st.Filters = activeOnly(st.Filters)
	st.Clauses = evaluatedOnly(st.Clauses)

	data, err := json.Marshal(st)
	if err != nil {
		return ""
	}

	sum := highwayhash.Sum64(data, fingerprintKey)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], sum)
	return hex.EncodeToString(buf[:])
}

func activeOnly(spec filter.Spec) filter.Spec {
	out := make(filter.Spec, len(spec))
	for k, c := range spec {
		if !c.IsEmpty() {
			out[k] = c
		}
	}
	return out
}

func evaluatedOnly(chain query.Chain) query.Chain {
	out := make(query.Chain, 0, len(chain))
	for _, cl := range chain {
		if !cl.Skipped() {
			cl.ID = 0
			out = append(out, cl)
		}
	}
	return out.Normalize()
}
