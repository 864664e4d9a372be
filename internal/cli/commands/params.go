package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"assetdesk/internal/domain/filter"
	"assetdesk/internal/domain/query"
	"assetdesk/internal/domain/reports"
	"assetdesk/internal/domain/sorting"
)

// pipelineFlags hold the screen state given on the command line.
type pipelineFlags struct {
	records  string
	filters  []string
	contains []string
	between  []string
	numeric  []string
	where    []string
	sort     string
}

func (f *pipelineFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.records, "records", "", "JSON file with the report rows (required)")
	fs.StringArrayVar(&f.filters, "filter", nil, "keep rows whose column equals one of the values: key=v1,v2")
	fs.StringArrayVar(&f.contains, "contains", nil, "keep rows whose column contains text: key=text")
	fs.StringArrayVar(&f.between, "between", nil, "keep rows whose date column is in range: key=from..to")
	fs.StringArrayVar(&f.numeric, "numeric", nil, "keep rows whose numeric column is in range: key=min..max")
	fs.StringArrayVar(&f.where, "where", nil, `query clause "[and|or] Field op value", op one of = != > < >= <= contains`)
	fs.StringVar(&f.sort, "sort", "", "sort column and direction: key[:asc|desc]")
	_ = cmd.MarkFlagRequired("records")
}

// params converts the flags into pipeline params.
func (f *pipelineFlags) params() (reports.Params, error) {
	spec := filter.Spec{}

	for _, arg := range f.filters {
		key, val, err := splitAssign("filter", arg)
		if err != nil {
			return reports.Params{}, err
		}
		spec[key] = filter.Strings(strings.Split(val, ",")...)
	}
	for _, arg := range f.contains {
		key, val, err := splitAssign("contains", arg)
		if err != nil {
			return reports.Params{}, err
		}
		spec[key] = filter.Text(val)
	}
	for _, arg := range f.between {
		key, val, err := splitAssign("between", arg)
		if err != nil {
			return reports.Params{}, err
		}
		from, to, err := splitRange("between", val)
		if err != nil {
			return reports.Params{}, err
		}
		cond, ok := filter.ParseDateRange(from, to)
		if !ok {
			return reports.Params{}, fmt.Errorf("--between %s: unrecognised date", arg)
		}
		spec[key] = cond
	}
	for _, arg := range f.numeric {
		key, val, err := splitAssign("numeric", arg)
		if err != nil {
			return reports.Params{}, err
		}
		lo, hi, err := splitRange("numeric", val)
		if err != nil {
			return reports.Params{}, err
		}
		minV, err1 := strconv.ParseFloat(lo, 64)
		maxV, err2 := strconv.ParseFloat(hi, 64)
		if err1 != nil || err2 != nil {
			return reports.Params{}, fmt.Errorf("--numeric %s: bounds must be numbers", arg)
		}
		spec[key] = filter.NumericRange(minV, maxV)
	}

	var chain query.Chain
	for _, arg := range f.where {
		cl, err := parseClause(arg)
		if err != nil {
			return reports.Params{}, err
		}
		logical := cl.Logical
		chain = chain.Append(cl)
		if len(chain) > 1 && logical == query.Or {
			chain[len(chain)-1].Logical = query.Or
		}
	}

	p := reports.NewParams().WithFilters(spec).WithClauses(chain)
	if f.sort != "" {
		field, order, _ := strings.Cut(f.sort, ":")
		p = p.WithSort(sorting.Spec{Field: field, Order: sorting.ParseOrder(order)})
	}
	return p, nil
}

func splitAssign(flag, arg string) (string, string, error) {
	key, val, ok := strings.Cut(arg, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("--%s %q: expected key=value", flag, arg)
	}
	return strings.TrimSpace(key), val, nil
}

func splitRange(flag, val string) (string, string, error) {
	lo, hi, ok := strings.Cut(val, "..")
	if !ok {
		return "", "", fmt.Errorf("--%s %q: expected from..to", flag, val)
	}
	return strings.TrimSpace(lo), strings.TrimSpace(hi), nil
}

var operatorTokens = map[string]query.Operator{
	"=": query.Equal, "!=": query.NotEqual,
	">": query.Greater, "<": query.Less,
	">=": query.GreaterOrEqual, "<=": query.LessOrEqual,
	"contains": query.Contains,
}

// parseClause reads "[and|or] Field Name op value". The field may contain spaces;
// the first operator token ends it.
func parseClause(arg string) (query.Clause, error) {
	tokens := strings.Fields(arg)
	var cl query.Clause

	if len(tokens) > 0 {
		if l := query.ParseLogical(tokens[0]); l != query.None {
			cl.Logical = l
			tokens = tokens[1:]
		}
	}

	for i, tok := range tokens {
		op, ok := operatorTokens[strings.ToLower(tok)]
		if !ok || i == 0 {
			continue
		}
		cl.Field = strings.Join(tokens[:i], " ")
		cl.Operator = op
		cl.Value = strings.Join(tokens[i+1:], " ")
		if cl.Value == "" {
			break
		}
		return cl, nil
	}
	return query.Clause{}, fmt.Errorf("--where %q: expected \"Field op value\"", arg)
}
