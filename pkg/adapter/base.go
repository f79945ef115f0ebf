package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

// BaseSQLAdapter provides the database/sql plumbing shared by concrete
// adapters. Embed it to inherit Close, Exec, Query, IsConnected, and
// CreateSchema.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    Config
	Logger *slog.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		return b.DB.Close()
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, sqlStr string) error {
	if b.DB == nil {
		return fmt.Errorf("database connection not established")
	}
	if _, err := b.DB.ExecContext(ctx, sqlStr); err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// Query executes a SQL statement that returns rows.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string) (*Rows, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.DB.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return &Rows{Rows: rows}, nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// CreateSchema creates the namespace if missing. Both supported
// engines accept the same statement; an empty name is the engine's
// default schema and needs no DDL.
func (b *BaseSQLAdapter) CreateSchema(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	return b.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+SanitizeIdentifier(name))
}

// CreateTableSQL renders the DROP and CREATE statements that give a
// published table a clean slate.
func CreateTableSQL(schema string, t Table) (drop, create string) {
	name := QualifiedName(schema, t.Name)
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = SanitizeIdentifier(c.Name) + " " + c.Type
	}
	return "DROP TABLE IF EXISTS " + name,
		"CREATE TABLE " + name + " (" + strings.Join(cols, ", ") + ")"
}

// QualifiedName joins schema and table for use in SQL statements.
func QualifiedName(schema, table string) string {
	if schema == "" {
		return SanitizeIdentifier(table)
	}
	return SanitizeIdentifier(schema) + "." + SanitizeIdentifier(table)
}

// SanitizeIdentifier makes a name safe to splice into DDL. Spaces and
// dashes become underscores; reserved words and anything outside plain
// lower_snake form get double-quoted.
func SanitizeIdentifier(name string) string {
	safe := strings.ReplaceAll(name, " ", "_")
	safe = strings.ReplaceAll(safe, "-", "_")
	if !plainIdentifier(safe) || isReservedWord(safe) {
		return `"` + strings.ReplaceAll(safe, `"`, `""`) + `"`
	}
	return safe
}

func plainIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// isReservedWord checks names that commonly collide with SQL keywords.
func isReservedWord(name string) bool {
	reserved := map[string]bool{
		"user": true, "order": true, "group": true, "table": true,
		"select": true, "from": true, "where": true, "index": true,
	}
	return reserved[strings.ToLower(name)]
}
