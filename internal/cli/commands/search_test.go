package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clitest "github.com/periodica-labs/periodica/internal/cli/testutil"
	"github.com/periodica-labs/periodica/internal/query"
	"github.com/periodica-labs/periodica/pkg/chem"
)

func TestBuildPredicates(t *testing.T) {
	tests := []struct {
		name  string
		opts  *SearchOptions
		flags map[string]string
		want  []query.Predicate
	}{
		{
			name: "no filters",
			opts: &SearchOptions{},
			want: nil,
		},
		{
			name: "where clauses keep their order",
			opts: &SearchOptions{Where: []string{"melting_point:gt:2000", "name:contains:ium"}},
			want: []query.Predicate{
				{Field: "melting_point", Op: query.OpGreaterThan, Value: "2000"},
				{Field: "name", Op: query.OpContains, Value: "ium"},
			},
		},
		{
			name: "convenience flags compile to equals",
			opts: &SearchOptions{Category: "noble_gas", Phase: "gas", Block: "p"},
			want: []query.Predicate{
				{Field: "category", Op: query.OpEquals, Value: "noble_gas"},
				{Field: "phase", Op: query.OpEquals, Value: "gas"},
				{Field: "block", Op: query.OpEquals, Value: "p"},
			},
		},
		{
			name:  "radioactive true",
			opts:  &SearchOptions{Radioactive: true},
			flags: map[string]string{"radioactive": "true"},
			want:  []query.Predicate{{Field: "radioactive", Op: query.OpEquals, Value: "true"}},
		},
		{
			// --radioactive=false is a filter for stable elements, not
			// the flag's default.
			name:  "radioactive false",
			opts:  &SearchOptions{Radioactive: false},
			flags: map[string]string{"radioactive": "false"},
			want:  []query.Predicate{{Field: "radioactive", Op: query.OpEquals, Value: "false"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewSearchCommand()
			for name, value := range tt.flags {
				require.NoError(t, cmd.Flags().Set(name, value))
			}

			got, err := buildPredicates(cmd, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPredicatesBadWhere(t *testing.T) {
	cmd := NewSearchCommand()

	_, err := buildPredicates(cmd, &SearchOptions{Where: []string{"no-colons"}})
	require.Error(t, err)
	assert.True(t, chem.IsInvalidQuery(err))
}

func TestExtraFields(t *testing.T) {
	preds := []query.Predicate{
		{Field: "category", Op: query.OpEquals, Value: "transition_metal"},
		{Field: "melting_point", Op: query.OpGreaterThan, Value: "2000"},
		{Field: "melting_point", Op: query.OpLessThan, Value: "4000"},
	}

	got := extraFields(preds, "density")
	require.Len(t, got, 2)
	assert.Equal(t, "melting_point", got[0].Name)
	assert.Equal(t, "density", got[1].Name)
}

func TestExtraFieldsSkipsBaseAndUnknown(t *testing.T) {
	preds := []query.Predicate{
		{Field: "phase", Op: query.OpEquals, Value: "gas"},
		{Field: "no_such_field", Op: query.OpEquals, Value: "x"},
	}
	assert.Empty(t, extraFields(preds, ""))
	assert.Empty(t, extraFields(nil, "symbol"))

	// A sort field already named by a predicate is not repeated.
	got := extraFields([]query.Predicate{{Field: "density", Op: query.OpGreaterThan, Value: "1"}}, "density")
	require.Len(t, got, 1)
	assert.Equal(t, "density", got[0].Name)
}

func TestFieldCell(t *testing.T) {
	tungsten := fixtureElement(t, "W")
	helium := fixtureElement(t, "He")
	uranium := fixtureElement(t, "U")
	iron := fixtureElement(t, "Fe")

	field := func(name string) chem.Field {
		f, ok := chem.FieldByName(name)
		require.True(t, ok, "field %q", name)
		return f
	}

	assert.Equal(t, "3,695.0", fieldCell(field("melting_point"), &tungsten))
	assert.Equal(t, "—", fieldCell(field("electron_affinity"), &helium))
	assert.Equal(t, "true", fieldCell(field("radioactive"), &uranium))
	assert.Equal(t, "false", fieldCell(field("radioactive"), &iron))
	assert.Equal(t, "steel production, construction, hemoglobin", fieldCell(field("applications"), &iron))
	assert.Equal(t, "Tungsten", fieldCell(field("name"), &tungsten))
}

func TestRenderElementTableMarkdown(t *testing.T) {
	tr := clitest.NewTestRendererMarkdown()
	melt, ok := chem.FieldByName("melting_point")
	require.True(t, ok)

	renderElementTable(tr.Renderer, []chem.Element{fixtureElement(t, "W")}, []chem.Field{melt})

	out := tr.Output()
	assert.Contains(t, out, "| Z | Symbol | Name | Category | Phase | melting_point (K) |")
	assert.Contains(t, out, "| 74 | W | Tungsten | transition_metal | solid | 3,695.0 |")
	clitest.AssertNoANSI(t, out)
	clitest.AssertValidMarkdown(t, out)
}
