package query

import (
	"context"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/periodica-labs/periodica/internal/store"
	"github.com/periodica-labs/periodica/internal/testutil"
	"github.com/periodica-labs/periodica/pkg/chem"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	root := testutil.WriteCorpus(t)
	s, err := store.Open(context.Background(), root, testutil.NewTestLogger(t))
	require.NoError(t, err)
	return New(s, testutil.NewTestLogger(t))
}

func symbols(elements []chem.Element) []string {
	out := make([]string, len(elements))
	for i, e := range elements {
		out[i] = e.Symbol
	}
	return out
}

func TestFindByIdentifierEveryLoadedNumber(t *testing.T) {
	eng := newEngine(t)

	for _, want := range eng.Store().Elements() {
		got, err := eng.FindByIdentifier(strconv.Itoa(want.AtomicNumber))
		require.NoError(t, err)
		assert.Equal(t, want.Symbol, got.Symbol)
	}
}

func TestFindByIdentifier(t *testing.T) {
	eng := newEngine(t)

	tests := []struct {
		ident      string
		wantSymbol string
		wantErr    bool
	}{
		{"74", "W", false},
		{"w", "W", false},
		{"Tungsten", "W", false},
		{"hg", "Hg", false},
		{"119", "", true},
		{"Argon", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			e, err := eng.FindByIdentifier(tt.ident)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, chem.IsNotFound(err))
				assert.Contains(t, err.Error(), tt.ident)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSymbol, e.Symbol)
		})
	}
}

func TestFilterNoPredicates(t *testing.T) {
	eng := newEngine(t)

	got, err := eng.Filter(nil)
	require.NoError(t, err)
	assert.Len(t, got, eng.Store().Len())
	assert.True(t, sort.SliceIsSorted(got, func(i, j int) bool {
		return got[i].AtomicNumber < got[j].AtomicNumber
	}), "no predicates returns the whole corpus ascending by atomic number")
}

func TestFilterMeltingPoint(t *testing.T) {
	eng := newEngine(t)

	got, err := eng.Filter([]Predicate{{Field: "melting_point", Op: OpGreaterThan, Value: "3000"}})
	require.NoError(t, err)

	syms := symbols(got)
	assert.Contains(t, syms, "W", "tungsten melts above 3000 K")
	assert.NotContains(t, syms, "He", "helium has no recorded melting point and is excluded, not an error")
	assert.NotContains(t, syms, "Fe")
	for _, e := range got {
		require.NotNil(t, e.Physical.MeltingPointK)
		assert.Greater(t, *e.Physical.MeltingPointK, 3000.0)
	}
}

func TestFilterConjunction(t *testing.T) {
	eng := newEngine(t)

	got, err := eng.Filter([]Predicate{
		{Field: "category", Op: OpEquals, Value: "transition_metal"},
		{Field: "radioactive", Op: OpEquals, Value: "true"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tc"}, symbols(got))
}

func TestFilterContains(t *testing.T) {
	eng := newEngine(t)

	got, err := eng.Filter([]Predicate{{Field: "name", Op: OpContains, Value: "IUM"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"He", "Li", "Tc", "U"}, symbols(got))

	apps, err := eng.Filter([]Predicate{{Field: "applications", Op: OpContains, Value: "batteries"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Li"}, symbols(apps))
}

func TestFilterInvalid(t *testing.T) {
	eng := newEngine(t)

	tests := []struct {
		name string
		pred Predicate
	}{
		{"unknown field", Predicate{Field: "molar_mass", Op: OpEquals, Value: "1"}},
		{"contains on numeric", Predicate{Field: "melting_point", Op: OpContains, Value: "30"}},
		{"greaterThan on string", Predicate{Field: "name", Op: OpGreaterThan, Value: "M"}},
		{"bad number", Predicate{Field: "density", Op: OpLessThan, Value: "heavy"}},
		{"bad bool", Predicate{Field: "radioactive", Op: OpEquals, Value: "maybe"}},
		{"equals on list", Predicate{Field: "applications", Op: OpEquals, Value: "steel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eng.Filter([]Predicate{tt.pred})
			require.Error(t, err)
			assert.True(t, chem.IsInvalidQuery(err), "want InvalidQuery, got %v", err)
		})
	}
}

func TestReactionsFor(t *testing.T) {
	eng := newEngine(t)

	all, err := eng.ReactionsFor("Fe", ReactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Fe-environmental-001", all[0].ID)
	assert.Equal(t, "Fe-industrial-001", all[1].ID)

	industrial, err := eng.ReactionsFor("Fe", ReactionFilter{Category: "industrial"})
	require.NoError(t, err)
	require.Len(t, industrial, 1)
	assert.Equal(t, "Fe-industrial-001", industrial[0].ID)
	assert.True(t, industrial[0].Involves("Fe"))

	redox, err := eng.ReactionsFor("O", ReactionFilter{Type: "redox"})
	require.NoError(t, err)
	assert.Len(t, redox, 3)
}

func TestReactionsForErrors(t *testing.T) {
	eng := newEngine(t)

	_, err := eng.ReactionsFor("Xx", ReactionFilter{})
	require.Error(t, err)
	assert.True(t, chem.IsNotFound(err))

	_, err = eng.ReactionsFor("Fe", ReactionFilter{Category: "culinary"})
	require.Error(t, err)
	assert.True(t, chem.IsInvalidQuery(err))

	// Types are open-ended, so an unmatched type is empty, not an error.
	none, err := eng.ReactionsFor("Fe", ReactionFilter{Type: "fusion"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReactionsCorpusWide(t *testing.T) {
	eng := newEngine(t)

	industrial, err := eng.Reactions(ReactionFilter{Category: "industrial"})
	require.NoError(t, err)
	assert.Len(t, industrial, 3)
	assert.True(t, sort.SliceIsSorted(industrial, func(i, j int) bool {
		return industrial[i].ID < industrial[j].ID
	}))

	all, err := eng.Reactions(ReactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, eng.Store().ReactionCount())
}

func TestReactionByID(t *testing.T) {
	eng := newEngine(t)

	r, err := eng.Reaction("O-biological-001")
	require.NoError(t, err)
	assert.Equal(t, chem.ReactionBiological, r.Category)

	_, err = eng.Reaction("O-biological-042")
	require.Error(t, err)
	assert.True(t, chem.IsNotFound(err))
}

func TestSortNumericNullsLast(t *testing.T) {
	eng := newEngine(t)
	elements, err := eng.Filter(nil)
	require.NoError(t, err)

	require.NoError(t, Sort(elements, "melting_point", false))
	assert.Equal(t, "H", elements[0].Symbol, "hydrogen has the lowest recorded melting point")
	assert.Equal(t, "He", elements[len(elements)-1].Symbol, "null melting point sorts last ascending")

	require.NoError(t, Sort(elements, "melting_point", true))
	assert.Equal(t, "C", elements[0].Symbol)
	assert.Equal(t, "He", elements[len(elements)-1].Symbol, "null melting point sorts last descending too")
}

func TestSortString(t *testing.T) {
	eng := newEngine(t)
	elements, err := eng.Filter(nil)
	require.NoError(t, err)

	require.NoError(t, Sort(elements, "name", false))
	assert.Equal(t, "Carbon", elements[0].Name)
	assert.Equal(t, "Uranium", elements[len(elements)-1].Name)
}

func TestSortInvalid(t *testing.T) {
	elements := []chem.Element{}

	err := Sort(elements, "charisma", false)
	require.Error(t, err)
	assert.True(t, chem.IsInvalidQuery(err))

	err = Sort(elements, "applications", false)
	require.Error(t, err)
	assert.True(t, chem.IsInvalidQuery(err))
}

func TestStats(t *testing.T) {
	eng := newEngine(t)

	stats := eng.Stats()
	assert.Equal(t, 11, stats.Elements)
	assert.Equal(t, 8, stats.Reactions)
	assert.Equal(t, 2, stats.Radioactive)

	assert.Equal(t, 4, stats.ByPhase["gas"])
	assert.Equal(t, 1, stats.ByPhase["liquid"])
	assert.Equal(t, 6, stats.ByPhase["solid"])

	assert.Equal(t, 4, stats.ByCategory["nonmetal"])
	assert.Equal(t, 4, stats.ByCategory["transition_metal"])
	assert.Equal(t, 1, stats.ByBlock["f"])

	assert.Equal(t, 3, stats.ReactionsByCategory["industrial"])
	assert.Equal(t, 1, stats.ReactionsByCategory["biological"])

	var melting *FieldCoverage
	for i := range stats.Coverage {
		if stats.Coverage[i].Field == "melting_point" {
			melting = &stats.Coverage[i]
		}
	}
	require.NotNil(t, melting)
	assert.Equal(t, 10, melting.Present)
	assert.InDelta(t, 90.9, melting.Percent, 0.1)
}
