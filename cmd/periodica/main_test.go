package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/periodica-labs/periodica/internal/cli"
	clitest "github.com/periodica-labs/periodica/internal/cli/testutil"
)

// execRoot runs the root command with args and returns the combined
// stdout/stderr it produced.
func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "periodica")
}

func TestHelpListsSubcommands(t *testing.T) {
	out, err := execRoot(t, "--help")
	require.NoError(t, err)

	for _, name := range []string{
		"element", "search", "reactions", "compare", "stats",
		"validate", "index", "query", "export", "serve", "explore", "init",
	} {
		assert.Contains(t, out, name)
	}
}

func TestElementCommand(t *testing.T) {
	root := clitest.SetupTestProject(t)
	t.Chdir(root)

	out, err := execRoot(t, "element", "Fe")
	require.NoError(t, err)
	assert.Contains(t, out, "Iron (Fe), element 26")
	assert.Contains(t, out, "transition_metal")
}

func TestElementCommandJSON(t *testing.T) {
	root := clitest.SetupTestProject(t)
	t.Chdir(root)

	out, err := execRoot(t, "element", "26", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"symbol": "Fe"`)
	assert.Contains(t, out, `"atomic_number": 26`)
}

func TestElementCommandNotFound(t *testing.T) {
	root := clitest.SetupTestProject(t)
	t.Chdir(root)

	_, err := execRoot(t, "element", "unobtainium")
	require.Error(t, err)
	assert.Equal(t, 1, cli.ExitCode(err))
}

func TestSearchCommand(t *testing.T) {
	root := clitest.SetupTestProject(t)
	t.Chdir(root)

	out, err := execRoot(t, "search", "--category", "transition_metal")
	require.NoError(t, err)
	assert.Contains(t, out, "Iron")
	assert.Contains(t, out, "Tungsten")
	assert.NotContains(t, out, "Uranium")
}

func TestSearchCommandBadPredicate(t *testing.T) {
	root := clitest.SetupTestProject(t)
	t.Chdir(root)

	_, err := execRoot(t, "search", "--where", "nonsense")
	require.Error(t, err)
	assert.Equal(t, 2, cli.ExitCode(err))
}

func TestReactionsCommand(t *testing.T) {
	root := clitest.SetupTestProject(t)
	t.Chdir(root)

	out, err := execRoot(t, "reactions", "--element", "Fe")
	require.NoError(t, err)
	assert.Contains(t, out, "Rusting of iron")
}

func TestCompareCommand(t *testing.T) {
	root := clitest.SetupTestProject(t)
	t.Chdir(root)

	out, err := execRoot(t, "compare", "H", "He")
	require.NoError(t, err)
	assert.Contains(t, out, "H (Hydrogen)")
	assert.Contains(t, out, "He (Helium)")
}

func TestCompareCommandTooFew(t *testing.T) {
	root := clitest.SetupTestProject(t)
	t.Chdir(root)

	_, err := execRoot(t, "compare", "H")
	require.Error(t, err)
	assert.Equal(t, 2, cli.ExitCode(err))
}

func TestStatsCommandJSON(t *testing.T) {
	root := clitest.SetupTestProject(t)
	t.Chdir(root)

	out, err := execRoot(t, "stats", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"elements": 11`)
	assert.Contains(t, out, `"reactions": 8`)
}

func TestValidateCommand(t *testing.T) {
	root := clitest.SetupTestProject(t)
	t.Chdir(root)

	out, err := execRoot(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "VALIDATION PASSED")
}

func TestIndexThenQuery(t *testing.T) {
	root := clitest.SetupTestProject(t)
	t.Chdir(root)

	out, err := execRoot(t, "index")
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 11 elements")

	out, err = execRoot(t, "query", "SELECT COUNT(*) AS n FROM elements", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "n")
	assert.Contains(t, out, "11")
}

func TestQueryWithoutCatalog(t *testing.T) {
	root := clitest.SetupTestProject(t)
	t.Chdir(root)

	_, err := execRoot(t, "query", "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog not found")
}

func TestExportUnknownTarget(t *testing.T) {
	root := clitest.SetupTestProject(t)
	t.Chdir(root)

	_, err := execRoot(t, "export", "--to", "nosuch", "--dsn", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export target")
}

func TestExploreNeedsTTY(t *testing.T) {
	root := clitest.SetupTestProject(t)
	t.Chdir(root)

	_, err := execRoot(t, "explore")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestInitScaffoldsProject(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := execRoot(t, "init", "fresh")
	require.NoError(t, err)
	assert.Contains(t, out, "periodica.yaml")

	// A second init without --force refuses to clobber the config.
	_, err = execRoot(t, "init", "fresh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
