package index_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/periodica-labs/periodica/internal/index"
	"github.com/periodica-labs/periodica/internal/testutil"
	"github.com/periodica-labs/periodica/pkg/chem"
)

func buildFixture(t *testing.T) (string, *index.Result) {
	t.Helper()

	root := testutil.WriteCorpus(t)
	b := index.NewBuilder(root, testutil.NewTestLogger(t))
	res, err := b.Build(context.Background())
	require.NoError(t, err)
	return root, res
}

func decodeArtifact(t *testing.T, root, name string, v any) {
	t.Helper()

	raw, err := os.ReadFile(filepath.Join(root, index.Dir, name))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, v))
}

func TestBuildWritesAllArtifacts(t *testing.T) {
	root, res := buildFixture(t)

	assert.Equal(t, 11, res.ElementCount)
	assert.Equal(t, 8, res.ReactionCount)
	require.Len(t, res.Artifacts, 3)
	for _, path := range res.Artifacts {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Greater(t, res.Duration, time.Duration(0))

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Join(root, index.Dir))
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestPeriodicTableArtifact(t *testing.T) {
	root, _ := buildFixture(t)

	var table []index.TableEntry
	decodeArtifact(t, root, index.TableFile, &table)
	require.Len(t, table, 11)

	for i := 1; i < len(table); i++ {
		assert.Less(t, table[i-1].AtomicNumber, table[i].AtomicNumber)
	}

	h := table[0]
	assert.Equal(t, 1, h.AtomicNumber)
	assert.Equal(t, "H", h.Symbol)
	assert.Equal(t, "Hydrogen", h.Name)
	assert.Equal(t, 1.008, h.AtomicMassU)
	require.NotNil(t, h.Group)
	assert.Equal(t, 1, *h.Group)
	assert.Equal(t, "s", h.Block)
	assert.Equal(t, "nonmetal", h.Category)
	assert.Equal(t, "gas", h.PhaseAtSTP)
	require.NotNil(t, h.Electronegativity)
	assert.Equal(t, 2.20, *h.Electronegativity)
	assert.False(t, h.Radioactive)

	// Helium has no electronegativity; the column stays null.
	he := table[1]
	assert.Equal(t, "He", he.Symbol)
	assert.Nil(t, he.Electronegativity)

	// Uranium has no group (f-block) and is radioactive.
	u := table[10]
	assert.Equal(t, "U", u.Symbol)
	assert.Nil(t, u.Group)
	assert.Equal(t, "f", u.Block)
	assert.True(t, u.Radioactive)
}

func TestByCategoryArtifact(t *testing.T) {
	root, _ := buildFixture(t)

	var byCat map[string][]index.CategoryEntry
	decodeArtifact(t, root, index.ByCategoryFile, &byCat)
	require.Len(t, byCat, 5)

	nonmetals := byCat["nonmetal"]
	require.Len(t, nonmetals, 4)
	for i, want := range []int{1, 6, 7, 8} {
		assert.Equal(t, want, nonmetals[i].AtomicNumber)
	}

	transition := byCat["transition_metal"]
	require.Len(t, transition, 4)
	assert.Equal(t, "Fe", transition[0].Symbol)
	assert.Equal(t, "Hg", transition[3].Symbol)

	actinides := byCat["actinide"]
	require.Len(t, actinides, 1)
	assert.Equal(t, "Uranium", actinides[0].Name)
}

func TestByPropertyArtifact(t *testing.T) {
	root, _ := buildFixture(t)

	var props map[string]index.PropertyStats
	decodeArtifact(t, root, index.ByPropertyFile, &props)

	// Three properties have no values in the fixture and must be
	// omitted rather than reported with zero counts.
	require.Len(t, props, 10)
	assert.NotContains(t, props, "heat_of_fusion_kj_mol")
	assert.NotContains(t, props, "heat_of_vaporization_kj_mol")
	assert.NotContains(t, props, "molar_heat_capacity_j_mol_k")

	melting := props["melting_point_k"]
	assert.Equal(t, 10, melting.Count) // helium records none
	assert.Equal(t, index.Extreme{Value: 13.99, Element: "H"}, melting.Min)
	assert.Equal(t, index.Extreme{Value: 3823, Element: "C"}, melting.Max)
	assert.Equal(t, 1398.3771, melting.Mean)
	assert.Equal(t, 929.475, melting.Median)

	en := props["electronegativity_pauling"]
	assert.Equal(t, 10, en.Count)
	assert.Equal(t, index.Extreme{Value: 0.98, Element: "Li"}, en.Min)
	assert.Equal(t, index.Extreme{Value: 3.44, Element: "O"}, en.Max)
	assert.Equal(t, 2.168, en.Mean)
	assert.Equal(t, 2.1, en.Median)

	affinity := props["electron_affinity_kj_mol"]
	assert.Equal(t, 7, affinity.Count)
	assert.Equal(t, index.Extreme{Value: -6.8, Element: "N"}, affinity.Min)
	assert.Equal(t, index.Extreme{Value: 141, Element: "O"}, affinity.Max)

	ionization := props["first_ionization_energy_kj_mol"]
	assert.Equal(t, 11, ionization.Count)
	assert.Equal(t, index.Extreme{Value: 2372.3, Element: "He"}, ionization.Max)
	assert.Equal(t, 1007.1, ionization.Median)

	mass := props["atomic_mass_u"]
	assert.Equal(t, 11, mass.Count)
	assert.Equal(t, index.Extreme{Value: 1.008, Element: "H"}, mass.Min)
	assert.Equal(t, index.Extreme{Value: 238.02891, Element: "U"}, mass.Max)
}

func TestBuildReplacesPreviousArtifacts(t *testing.T) {
	root := testutil.WriteCorpus(t)

	// Pre-seed a stale artifact that a non-atomic writer could leave.
	outDir := filepath.Join(root, index.Dir)
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	stale := filepath.Join(outDir, index.TableFile)
	require.NoError(t, os.WriteFile(stale, []byte("{truncated"), 0o644))

	b := index.NewBuilder(root, testutil.NewTestLogger(t))
	_, err := b.Build(context.Background())
	require.NoError(t, err)

	var table []index.TableEntry
	decodeArtifact(t, root, index.TableFile, &table)
	assert.Len(t, table, 11)
}

func TestBuildMissingCorpus(t *testing.T) {
	b := index.NewBuilder(t.TempDir(), testutil.NewTestLogger(t))

	_, err := b.Build(context.Background())
	require.Error(t, err)
	var loadErr *chem.LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestWatchRebuildsOnChange(t *testing.T) {
	root := testutil.WriteCorpus(t)
	b := index.NewBuilder(root, testutil.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan *index.Result, 1)
	go func() {
		_ = b.Watch(ctx, func(res *index.Result, err error) {
			if err != nil {
				return
			}
			select {
			case results <- res:
			default:
			}
		})
	}()

	// Re-touch an element file until a rebuild lands; the first write
	// can race watcher registration.
	path := filepath.Join(root, "elements", "001-hydrogen.json")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(250 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case res := <-results:
			assert.Equal(t, 11, res.ElementCount)
			assert.Equal(t, 8, res.ReactionCount)
			return
		case <-deadline:
			t.Fatal("no rebuild observed after touching an element file")
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, raw, 0o644))
		}
	}
}
