package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/periodica-labs/periodica/pkg/chem"
)

// Operator is a predicate comparison operator.
type Operator string

// Operators. Numeric fields take Equals, GreaterThan, and LessThan;
// string fields take Equals and Contains; bool fields take Equals;
// list fields take Contains.
const (
	OpEquals      Operator = "equals"
	OpGreaterThan Operator = "greaterThan"
	OpLessThan    Operator = "lessThan"
	OpContains    Operator = "contains"
)

// ParseOperator converts a string to an Operator. Short aliases eq, gt,
// and lt are accepted alongside the canonical names.
func ParseOperator(s string) (Operator, bool) {
	switch strings.ToLower(s) {
	case "equals", "eq", "=":
		return OpEquals, true
	case "greaterthan", "gt", ">":
		return OpGreaterThan, true
	case "lessthan", "lt", "<":
		return OpLessThan, true
	case "contains":
		return OpContains, true
	}
	return "", false
}

// Predicate is one field comparison. A filter is a conjunction of
// predicates.
type Predicate struct {
	Field string   `json:"field"`
	Op    Operator `json:"op"`
	Value string   `json:"value"`
}

// ParsePredicate parses the CLI/API grammar field:op:value, e.g.
// "melting_point:greaterThan:3000". The value may itself contain colons.
func ParsePredicate(s string) (Predicate, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return Predicate{}, &chem.InvalidQueryError{Part: s, Reason: "want field:op:value"}
	}
	op, ok := ParseOperator(parts[1])
	if !ok {
		return Predicate{}, &chem.InvalidQueryError{Part: parts[1], Reason: "unknown operator"}
	}
	return Predicate{Field: strings.ToLower(strings.TrimSpace(parts[0])), Op: op, Value: parts[2]}, nil
}

// matcher is a compiled predicate.
type matcher func(*chem.Element) bool

// compile resolves the predicate against the field registry and returns
// a matcher. Elements whose value for a compared numeric field is null
// never match; that is an exclusion, not an error.
func (p Predicate) compile() (matcher, error) {
	field, ok := chem.FieldByName(p.Field)
	if !ok {
		return nil, &chem.InvalidQueryError{Part: p.Field, Reason: "unknown field"}
	}

	switch field.Kind {
	case chem.FieldNumeric:
		return p.compileNumeric(field)
	case chem.FieldString:
		return p.compileString(field)
	case chem.FieldBool:
		return p.compileBool(field)
	case chem.FieldStringList:
		return p.compileList(field)
	}
	return nil, &chem.InvalidQueryError{Part: p.Field, Reason: "unsupported field kind"}
}

func (p Predicate) compileNumeric(field chem.Field) (matcher, error) {
	want, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
	if err != nil {
		return nil, &chem.InvalidQueryError{Part: p.Value, Reason: fmt.Sprintf("%s wants a number", p.Field)}
	}

	switch p.Op {
	case OpEquals:
		return func(e *chem.Element) bool {
			v, ok := field.Number(e)
			return ok && v == want
		}, nil
	case OpGreaterThan:
		return func(e *chem.Element) bool {
			v, ok := field.Number(e)
			return ok && v > want
		}, nil
	case OpLessThan:
		return func(e *chem.Element) bool {
			v, ok := field.Number(e)
			return ok && v < want
		}, nil
	}
	return nil, &chem.InvalidQueryError{Part: string(p.Op), Reason: fmt.Sprintf("not applicable to numeric field %s", p.Field)}
}

func (p Predicate) compileString(field chem.Field) (matcher, error) {
	want := strings.ToLower(strings.TrimSpace(p.Value))

	switch p.Op {
	case OpEquals:
		return func(e *chem.Element) bool {
			return strings.ToLower(field.Text(e)) == want
		}, nil
	case OpContains:
		return func(e *chem.Element) bool {
			return strings.Contains(strings.ToLower(field.Text(e)), want)
		}, nil
	}
	return nil, &chem.InvalidQueryError{Part: string(p.Op), Reason: fmt.Sprintf("not applicable to string field %s", p.Field)}
}

func (p Predicate) compileBool(field chem.Field) (matcher, error) {
	if p.Op != OpEquals {
		return nil, &chem.InvalidQueryError{Part: string(p.Op), Reason: fmt.Sprintf("not applicable to bool field %s", p.Field)}
	}
	want, err := strconv.ParseBool(strings.TrimSpace(p.Value))
	if err != nil {
		return nil, &chem.InvalidQueryError{Part: p.Value, Reason: fmt.Sprintf("%s wants true or false", p.Field)}
	}
	return func(e *chem.Element) bool {
		return field.Flag(e) == want
	}, nil
}

func (p Predicate) compileList(field chem.Field) (matcher, error) {
	if p.Op != OpContains {
		return nil, &chem.InvalidQueryError{Part: string(p.Op), Reason: fmt.Sprintf("not applicable to list field %s", p.Field)}
	}
	want := strings.ToLower(strings.TrimSpace(p.Value))
	return func(e *chem.Element) bool {
		for _, item := range field.List(e) {
			if strings.Contains(strings.ToLower(item), want) {
				return true
			}
		}
		return false
	}, nil
}
