// Package query evaluates user-built clause chains over report rows.
//
// Clauses combine strictly left to right with no precedence:
// "A And B Or C" means "(A And B) Or C".
package query

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Operator is the comparison of one clause.
type Operator string

const (
	Equal          Operator = "="
	NotEqual       Operator = "!="
	Greater        Operator = ">"
	Less           Operator = "<"
	GreaterOrEqual Operator = ">="
	LessOrEqual    Operator = "<="
	Contains       Operator = "contains" // default for anything unrecognised
)

// ParseOperator maps text to an Operator. Unknown text is Contains.
func ParseOperator(s string) Operator {
	switch op := Operator(strings.TrimSpace(s)); op {
	case Equal, NotEqual, Greater, Less, GreaterOrEqual, LessOrEqual:
		return op
	default:
		return Contains
	}
}

// IsOrdering reports whether the operator compares magnitudes.
func (o Operator) IsOrdering() bool {
	switch o {
	case Greater, Less, GreaterOrEqual, LessOrEqual:
		return true
	default:
		return false
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Operator) UnmarshalText(text []byte) error {
	*o = ParseOperator(string(text))
	return nil
}

// Logical joins a clause to the result of the clauses before it.
type Logical string

const (
	None Logical = "" // first clause of a chain
	And  Logical = "And"
	Or   Logical = "Or"
)

// ParseLogical accepts "And"/"Or" in any case. Anything else is None.
func ParseLogical(s string) Logical {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "and":
		return And
	case "or":
		return Or
	default:
		return None
	}
}

// MarshalJSON writes None as null.
func (l Logical) MarshalJSON() ([]byte, error) {
	if l == None {
		return []byte("null"), nil
	}
	return json.Marshal(string(l))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Logical) UnmarshalText(text []byte) error {
	*l = ParseLogical(string(text))
	return nil
}

// AnyValue is the placeholder operand meaning "no restriction".
const AnyValue = "[Any]"

// Clause is one (field, operator, value) predicate of a chain.
type Clause struct {
	ID       int      `json:"id"`
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
	Logical  Logical  `json:"logicalOperator"`
}

// Skipped reports whether the clause is a placeholder that takes no part in evaluation.
func (c Clause) Skipped() bool {
	v := strings.TrimSpace(c.Value)
	return v == "" || v == AnyValue
}

// String renders the clause for humans, e.g. "And Status = Active".
func (c Clause) String() string {
	op := string(c.Operator)
	if c.Operator == Contains || op == "" {
		op = "contains"
	}
	s := fmt.Sprintf("%s %s %s", c.Field, op, c.Value)
	if c.Logical != None {
		s = string(c.Logical) + " " + s
	}
	return s
}
