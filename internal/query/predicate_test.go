package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/periodica-labs/periodica/pkg/chem"
)

func TestParseOperator(t *testing.T) {
	tests := []struct {
		in     string
		want   Operator
		wantOK bool
	}{
		{"equals", OpEquals, true},
		{"eq", OpEquals, true},
		{"greaterThan", OpGreaterThan, true},
		{"greaterthan", OpGreaterThan, true},
		{"gt", OpGreaterThan, true},
		{"lessThan", OpLessThan, true},
		{"lt", OpLessThan, true},
		{"contains", OpContains, true},
		{"between", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseOperator(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePredicate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Predicate
		wantErr bool
	}{
		{
			name: "numeric greaterThan",
			in:   "melting_point:greaterThan:3000",
			want: Predicate{Field: "melting_point", Op: OpGreaterThan, Value: "3000"},
		},
		{
			name: "alias operator",
			in:   "density:lt:1000",
			want: Predicate{Field: "density", Op: OpLessThan, Value: "1000"},
		},
		{
			name: "value keeps colons",
			in:   "name:contains:a:b",
			want: Predicate{Field: "name", Op: OpContains, Value: "a:b"},
		},
		{
			name: "field is lowercased",
			in:   "Category:equals:nonmetal",
			want: Predicate{Field: "category", Op: OpEquals, Value: "nonmetal"},
		},
		{name: "missing value", in: "melting_point:greaterThan", wantErr: true},
		{name: "bare field", in: "melting_point", wantErr: true},
		{name: "unknown operator", in: "melting_point:near:3000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePredicate(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, chem.IsInvalidQuery(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPredicateCompileUnknownField(t *testing.T) {
	_, err := Predicate{Field: "nope", Op: OpEquals, Value: "1"}.compile()
	require.Error(t, err)
	assert.True(t, chem.IsInvalidQuery(err))
	assert.Contains(t, err.Error(), "nope")
}
