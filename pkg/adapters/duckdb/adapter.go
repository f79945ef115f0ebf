// Package duckdb publishes the corpus to DuckDB, file-backed or in-memory.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/periodica-labs/periodica/pkg/adapter"
)

func init() {
	adapter.Register("duckdb", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a DuckDB adapter. A nil logger discards output.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger}}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return "duckdb"
}

// Connect opens the database file. An empty path or ":memory:" opens an
// in-memory instance.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.DSN
	if path == "" {
		path = cfg.Path
	}
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	a.Logger.Debug("connected to duckdb", slog.String("path", path))
	return nil
}

// Publish replaces the table's contents. Rows go through one prepared
// statement inside a transaction.
func (a *Adapter) Publish(ctx context.Context, schema string, t adapter.Table) (int64, error) {
	if a.DB == nil {
		return 0, fmt.Errorf("database connection not established")
	}

	drop, create := adapter.CreateTableSQL(schema, t)
	if err := a.Exec(ctx, drop); err != nil {
		return 0, fmt.Errorf("drop %s: %w", t.Name, err)
	}
	if err := a.Exec(ctx, create); err != nil {
		return 0, fmt.Errorf("create %s: %w", t.Name, err)
	}

	tx, err := a.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin publish: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	marks := make([]string, len(t.Columns))
	for i := range marks {
		marks[i] = "?"
	}
	insert := fmt.Sprintf("INSERT INTO %s VALUES (%s)",
		adapter.QualifiedName(schema, t.Name), strings.Join(marks, ", "))

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range t.Rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("insert into %s: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit publish: %w", err)
	}
	return int64(len(t.Rows)), nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
