// Package adapter defines the contract for publishing the corpus to
// external analytical databases.
//
// Concrete implementations live under pkg/adapters and register
// themselves at init time; import one with a blank identifier and look
// it up through the registry:
//
//	import _ "github.com/periodica-labs/periodica/pkg/adapters/duckdb"
package adapter

import (
	"context"
	"database/sql"
)

// Config carries the connection settings for an export target.
type Config struct {
	// Type selects the registered adapter ("duckdb", "postgres").
	Type string
	// DSN is a raw connection string. When set it is passed to the
	// driver verbatim; otherwise adapters assemble one from the
	// fields below.
	DSN string
	// Path is the database file for file-backed engines.
	Path     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	// Schema is the namespace exported tables are created in.
	Schema  string
	Options map[string]string
}

// Column describes one column of a published table. Type is a portable
// SQL type understood by every supported engine: TEXT, INTEGER,
// DOUBLE PRECISION, or BOOLEAN.
type Column struct {
	Name string
	Type string
}

// Table is an in-memory table ready for publishing. Row values are
// plain Go scalars; nil publishes as SQL NULL.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// Rows wraps sql.Rows so callers do not depend on database/sql.
type Rows struct {
	*sql.Rows
}

// Adapter is the interface every export target implements.
type Adapter interface {
	// Connect establishes the connection described by cfg.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the connection and releases resources.
	Close() error

	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, sql string) error

	// Query runs a statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// IsConnected reports whether Connect has succeeded.
	IsConnected() bool

	// CreateSchema creates the namespace if it does not exist yet.
	CreateSchema(ctx context.Context, name string) error

	// Publish replaces the table's contents with the given rows and
	// returns the number of rows written.
	Publish(ctx context.Context, schema string, table Table) (int64, error)

	// DialectName identifies the target engine for logs and errors.
	DialectName() string
}
