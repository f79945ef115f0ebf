package commands

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupQueryDB creates a small on-disk catalog with a table, a view,
// an index, and a goose bookkeeping table that must stay hidden.
func setupQueryDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	stmts := []string{
		`CREATE TABLE elements (
			symbol TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			melting_point_k REAL
		)`,
		`CREATE INDEX idx_elements_name ON elements (name)`,
		`CREATE VIEW radioactive_elements AS
			SELECT symbol, name FROM elements WHERE symbol = 'U'`,
		`CREATE TABLE goose_db_version (id INTEGER PRIMARY KEY)`,
		`INSERT INTO elements (symbol, name, melting_point_k) VALUES
			('Fe', 'Iron', 1811),
			('He', 'Helium', NULL),
			('U', 'Uranium', 1405.3)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

func queryRows(t *testing.T, db *sql.DB, query string) *sql.Rows {
	t.Helper()
	rows, err := db.Query(query)
	require.NoError(t, err)
	return rows
}

func TestRenderResultSetTable(t *testing.T) {
	db := setupQueryDB(t)
	rows := queryRows(t, db, `SELECT symbol, name FROM elements ORDER BY symbol`)

	var buf bytes.Buffer
	require.NoError(t, renderResultSet(&buf, rows, "table"))

	out := buf.String()
	assert.Contains(t, out, "SYMBOL")
	assert.Contains(t, out, "Iron")
	assert.Contains(t, out, "(3 rows)")
}

func TestRenderResultSetJSON(t *testing.T) {
	db := setupQueryDB(t)
	rows := queryRows(t, db, `SELECT symbol, melting_point_k FROM elements ORDER BY symbol`)

	var buf bytes.Buffer
	require.NoError(t, renderResultSet(&buf, rows, "json"))

	var results []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "Fe", results[0]["symbol"])
	assert.Equal(t, 1811.0, results[0]["melting_point_k"])
	// SQL NULL comes through as JSON null, not a placeholder string.
	assert.Nil(t, results[1]["melting_point_k"])
}

func TestRenderResultSetCSV(t *testing.T) {
	db := setupQueryDB(t)
	rows := queryRows(t, db, `SELECT symbol, name FROM elements ORDER BY symbol`)

	var buf bytes.Buffer
	require.NoError(t, renderResultSet(&buf, rows, "csv"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "symbol,name", lines[0])
	assert.Equal(t, "Fe,Iron", lines[1])
}

func TestRenderResultSetMarkdown(t *testing.T) {
	db := setupQueryDB(t)
	rows := queryRows(t, db, `SELECT symbol, melting_point_k FROM elements WHERE symbol IN ('Fe', 'He') ORDER BY symbol`)

	var buf bytes.Buffer
	require.NoError(t, renderResultSet(&buf, rows, "md"))

	out := buf.String()
	assert.Contains(t, out, "| symbol | melting_point_k |")
	assert.Contains(t, out, "| --- | --- |")
	assert.Contains(t, out, "| Fe | 1811 |")
	assert.Contains(t, out, "| He | NULL |")
}

func TestRenderResultSetEmpty(t *testing.T) {
	db := setupQueryDB(t)

	for _, format := range []string{"table", "md"} {
		rows := queryRows(t, db, `SELECT symbol FROM elements WHERE symbol = 'Xx'`)

		var buf bytes.Buffer
		require.NoError(t, renderResultSet(&buf, rows, format))
		assert.Contains(t, buf.String(), "(0 rows)", "format %s", format)
	}
}

func TestSQLValue(t *testing.T) {
	assert.Equal(t, "NULL", sqlValue(nil))
	assert.Equal(t, "Iron", sqlValue("Iron"))
	assert.Equal(t, "42", sqlValue(int64(42)))
	assert.Equal(t, "1405.3", sqlValue(1405.3))
}

func TestEscapeCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Iron", "Iron"},
		{"comma", "iron, cast", `"iron, cast"`},
		{"quote", `say "hi"`, `"say ""hi"""`},
		{"newline", "a\nb", "\"a\nb\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeCSV(tt.in))
		})
	}
}

func TestListTablesFromDB(t *testing.T) {
	db := setupQueryDB(t)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, listTablesFromDB(ctx, &buf, db, "csv", false))

	out := buf.String()
	assert.Contains(t, out, "elements,table")
	assert.Contains(t, out, "radioactive_elements,view")
	assert.NotContains(t, out, "goose_db_version")

	buf.Reset()
	require.NoError(t, listTablesFromDB(ctx, &buf, db, "csv", true))
	assert.NotContains(t, buf.String(), "elements,table")
	assert.Contains(t, buf.String(), "radioactive_elements,view")
}

func TestShowSchemaFromDB(t *testing.T) {
	db := setupQueryDB(t)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, showSchemaFromDB(ctx, &buf, db, "elements", "table"))

	out := buf.String()
	assert.Contains(t, out, "Table: elements")
	assert.Contains(t, out, "symbol")
	assert.Contains(t, out, "(primary key)")
	assert.Contains(t, out, "Indexes:")
	assert.Contains(t, out, "idx_elements_name")
}

func TestShowSchemaFromDBView(t *testing.T) {
	db := setupQueryDB(t)

	var buf bytes.Buffer
	require.NoError(t, showSchemaFromDB(context.Background(), &buf, db, "radioactive_elements", "table"))

	assert.Contains(t, buf.String(), "View: radioactive_elements")
}

func TestShowSchemaFromDBJSON(t *testing.T) {
	db := setupQueryDB(t)

	var buf bytes.Buffer
	require.NoError(t, showSchemaFromDB(context.Background(), &buf, db, "elements", "json"))

	var schema schemaOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &schema))
	assert.Equal(t, "elements", schema.Name)
	assert.Equal(t, "table", schema.Type)
	require.Len(t, schema.Columns, 3)
	assert.True(t, schema.Columns[0].PK)
	assert.Equal(t, "NO", schema.Columns[1].Nullable)
}

func TestShowSchemaFromDBUnknownTable(t *testing.T) {
	db := setupQueryDB(t)

	var buf bytes.Buffer
	err := showSchemaFromDB(context.Background(), &buf, db, "isotopes", "table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
