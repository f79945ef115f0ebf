package state

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/periodica-labs/periodica/internal/testutil"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(":memory:", testutil.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestOpenMigrates(t *testing.T) {
	c := openTestCatalog(t)

	for _, table := range []string{"elements", "reactions", "reaction_elements", "builds"} {
		rows, err := c.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		require.NoError(t, err, "table %s must exist", table)
		require.NoError(t, rows.Close())
	}

	version, err := c.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".periodica", "catalog.db")

	c, err := Open(path, testutil.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, path, c.Path())
	_, err = os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	// Reopening an existing catalog applies no further migrations.
	c, err = Open(path, testutil.NewTestLogger(t))
	require.NoError(t, err)
	version, err := c.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
	require.NoError(t, c.Close())
}

func TestRebuild(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.Rebuild(ctx, testutil.Elements(), testutil.Reactions()))

	elements, reactions, err := c.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, elements)
	assert.Equal(t, 8, reactions)

	var category string
	var melting float64
	var group sql.NullInt64
	var firstIE sql.NullFloat64
	err = c.db.QueryRow(
		`SELECT category, melting_point_k, group_num, first_ionization_energy_kj_mol
		 FROM elements WHERE symbol = 'Fe'`,
	).Scan(&category, &melting, &group, &firstIE)
	require.NoError(t, err)
	assert.Equal(t, "transition_metal", category)
	assert.InDelta(t, 1811, melting, 1e-9)
	require.True(t, group.Valid)
	assert.EqualValues(t, 8, group.Int64)
	require.True(t, firstIE.Valid)
	assert.InDelta(t, 762.5, firstIE.Float64, 1e-9)

	// Uranium has no group; the column must be NULL, not zero.
	err = c.db.QueryRow(`SELECT group_num FROM elements WHERE symbol = 'U'`).Scan(&group)
	require.NoError(t, err)
	assert.False(t, group.Valid)

	var deltaH sql.NullFloat64
	var reversible bool
	err = c.db.QueryRow(
		`SELECT delta_h_kj, reversible FROM reactions WHERE id = 'H-industrial-001'`,
	).Scan(&deltaH, &reversible)
	require.NoError(t, err)
	require.True(t, deltaH.Valid)
	assert.InDelta(t, -92.4, deltaH.Float64, 1e-9)
	assert.True(t, reversible)

	var joined int
	require.NoError(t, c.db.QueryRow(`SELECT COUNT(*) FROM reaction_elements`).Scan(&joined))
	assert.Equal(t, 19, joined)

	require.NoError(t, c.db.QueryRow(
		`SELECT COUNT(*) FROM v_element_reactions WHERE symbol = 'Fe'`).Scan(&joined))
	assert.Equal(t, 2, joined)
}

func TestRebuildReplaces(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.Rebuild(ctx, testutil.Elements(), testutil.Reactions()))
	// A second rebuild with a smaller corpus must not accumulate rows.
	require.NoError(t, c.Rebuild(ctx, testutil.Elements()[:3], nil))

	elements, reactions, err := c.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, elements)
	assert.Equal(t, 0, reactions)
}

func TestRebuildRollsBackOnUnknownSymbol(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.Rebuild(ctx, testutil.Elements(), testutil.Reactions()))

	bad := testutil.Reactions()
	bad[0].ElementsInvolved = append(bad[0].ElementsInvolved, "Xx")
	err := c.Rebuild(ctx, testutil.Elements(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad[0].ID)

	// The failed rebuild must leave the previous mirror intact.
	elements, reactions, err := c.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, elements)
	assert.Equal(t, 8, reactions)
}

func TestBuildRunLifecycle(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	none, err := c.LatestBuild(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	run, err := c.StartBuild(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)
	assert.Equal(t, BuildRunning, run.Status)
	assert.False(t, run.StartedAt.IsZero())

	require.NoError(t, c.FinishBuild(ctx, run.ID, 11, 8, nil))

	got, err := c.LatestBuild(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, BuildCompleted, got.Status)
	assert.Equal(t, 11, got.Elements)
	assert.Equal(t, 8, got.Reactions)
	require.NotNil(t, got.FinishedAt)
	assert.False(t, got.FinishedAt.Before(got.StartedAt))
	assert.Empty(t, got.Error)
}

func TestBuildRunFailure(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	run, err := c.StartBuild(ctx)
	require.NoError(t, err)
	require.NoError(t, c.FinishBuild(ctx, run.ID, 0, 0, errors.New("corpus unreadable")))

	got, err := c.LatestBuild(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, BuildFailed, got.Status)
	assert.Equal(t, "corpus unreadable", got.Error)

	err = c.FinishBuild(ctx, "no-such-build", 0, 0, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListBuilds(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		run, err := c.StartBuild(ctx)
		require.NoError(t, err)
		require.NoError(t, c.FinishBuild(ctx, run.ID, i, i, nil))
		ids = append(ids, run.ID)
	}

	builds, err := c.ListBuilds(ctx, 2)
	require.NoError(t, err)
	require.Len(t, builds, 2)
	assert.Equal(t, ids[2], builds[0].ID, "newest first")
	assert.Equal(t, ids[1], builds[1].ID)

	all, err := c.ListBuilds(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
