package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	clitest "github.com/periodica-labs/periodica/internal/cli/testutil"
	"github.com/periodica-labs/periodica/internal/testutil"
	"github.com/periodica-labs/periodica/internal/validate"
	"github.com/periodica-labs/periodica/pkg/chem"
)

func TestRunInitScaffold(t *testing.T) {
	dir := t.TempDir()
	tr := clitest.NewTestRendererText()

	require.NoError(t, runInit(tr.Renderer, dir, false))

	for _, path := range []string{
		"periodica.yaml",
		"data/elements/001-hydrogen.json",
		"data/elements/008-oxygen.json",
		"data/reactions/notable.json",
	} {
		assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(path)))
	}

	out := tr.Output()
	assert.Contains(t, out, "created periodica.yaml")
	assert.Contains(t, out, "Periodica project initialized!")
	assert.Contains(t, out, "Next steps:")
}

func TestRunInitCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-corpus")
	tr := clitest.NewTestRendererText()

	require.NoError(t, runInit(tr.Renderer, dir, false))

	assert.FileExists(t, filepath.Join(dir, "periodica.yaml"))
}

func TestRunInitRefusesExisting(t *testing.T) {
	dir := t.TempDir()
	tr := clitest.NewTestRendererText()

	require.NoError(t, runInit(tr.Renderer, dir, false))

	err := runInit(tr.Renderer, dir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	assert.NoError(t, runInit(tr.Renderer, dir, true))
}

func TestScaffoldConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	_, err := writeScaffold(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "periodica.yaml"))
	require.NoError(t, err)

	var cfg scaffoldConfig
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, ".periodica/catalog.db", cfg.CatalogPath)
	assert.Equal(t, "auto", cfg.Output)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "duckdb", cfg.Export.Target)
}

func TestScaffoldSamplesDecode(t *testing.T) {
	dir := t.TempDir()
	_, err := writeScaffold(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "data", "elements", "001-hydrogen.json"))
	require.NoError(t, err)
	var h chem.Element
	require.NoError(t, json.Unmarshal(data, &h))
	assert.Equal(t, "H", h.Symbol)
	assert.Equal(t, 1, h.AtomicNumber)
	require.Len(t, h.Reactions, 1)
	assert.Equal(t, "H-notable-001", h.Reactions[0].ID)

	data, err = os.ReadFile(filepath.Join(dir, "data", "reactions", "notable.json"))
	require.NoError(t, err)
	var wrapper map[string][]chem.Reaction
	require.NoError(t, json.Unmarshal(data, &wrapper))
	require.Len(t, wrapper["reactions"], 1)
	assert.Equal(t, []string{"H", "O"}, wrapper["reactions"][0].ElementsInvolved)
}

func TestScaffoldPassesValidation(t *testing.T) {
	dir := t.TempDir()
	_, err := writeScaffold(dir)
	require.NoError(t, err)

	report, err := validate.New(filepath.Join(dir, "data"), testutil.NewTestLogger(t)).Run(context.Background())
	require.NoError(t, err)

	for _, f := range report.Findings {
		t.Logf("finding: %s", f)
	}
	assert.True(t, report.Passed())
	assert.Equal(t, 2, report.Elements)
	assert.Equal(t, 1, report.Reactions)
}
