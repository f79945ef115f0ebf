package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	// sqlite driver for catalog queries.
	_ "modernc.org/sqlite"
)

// openCatalogReadOnly opens the catalog database in read-only mode so
// ad-hoc SQL can never corrupt the mirror. The file: form is required
// for the driver to honor mode=ro.
func openCatalogReadOnly(path string) (*sql.DB, error) {
	return sql.Open("sqlite", "file:"+path+"?mode=ro")
}

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format string
	File   string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Run SQL against the catalog database",
		Long: `Run SQL against the catalog, a SQLite mirror of the corpus built by
'periodica index'. The mirror holds the elements, reactions and
reaction_elements tables plus the builds history.

SQL can come from arguments, --file, or piped stdin. With no SQL on an
interactive terminal, a REPL is started.`,
		Example: `  # Execute SQL directly
  periodica query "SELECT symbol, name FROM elements WHERE radioactive = 1"

  # List available tables
  periodica query tables

  # Show schema for a table
  periodica query schema reactions

  # Output as JSON
  periodica query "SELECT * FROM builds" --format json

  # Interactive mode
  periodica query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json, csv, md")
	cmd.Flags().StringVar(&opts.File, "file", "", "Read SQL from file")

	cmd.AddCommand(newQueryTablesCommand(opts))
	cmd.AddCommand(newQueryViewsCommand(opts))
	cmd.AddCommand(newQuerySchemaCommand(opts))

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	cc := NewCommandContextWithoutEngine(cmd)
	catalogPath := resolveCatalogPath(cc.Cfg)

	if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
		return fmt.Errorf("catalog not found at %s (run 'periodica index' first)", catalogPath)
	}

	var sqlQuery string

	switch {
	case len(args) > 0:
		sqlQuery = strings.Join(args, " ")
	case opts.File != "":
		content, err := os.ReadFile(opts.File)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	case !isTerminal(os.Stdin):
		// Piped input.
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	default:
		return runQueryREPL(cmd, catalogPath, opts)
	}

	return executeAndRender(cmd.Context(), cmd, catalogPath, sqlQuery, opts.Format)
}

func executeAndRender(ctx context.Context, cmd *cobra.Command, catalogPath, sqlQuery, format string) error {
	db, err := openCatalogReadOnly(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, sqlQuery)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return renderResultSet(cmd.OutOrStdout(), rows, format)
}

func newQueryTablesCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables and views in the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContextWithoutEngine(cmd)
			return listTables(cmd, resolveCatalogPath(cc.Cfg), opts.Format, false)
		},
	}
}

func newQueryViewsCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List views only",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContextWithoutEngine(cmd)
			return listTables(cmd, resolveCatalogPath(cc.Cfg), opts.Format, true)
		},
	}
}

func newQuerySchemaCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <table>",
		Short: "Show schema for a table or view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContextWithoutEngine(cmd)
			return showSchema(cmd, resolveCatalogPath(cc.Cfg), args[0], opts.Format)
		},
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
