// Package postgres publishes the corpus to PostgreSQL over pgx.
package postgres

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/periodica-labs/periodica/pkg/adapter"
)

func init() {
	adapter.Register("postgres", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a PostgreSQL adapter. A nil logger discards output.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger}}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return "postgres"
}

// Connect establishes a connection to PostgreSQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = buildDSN(cfg)
	}

	a.Logger.Debug("connecting to postgres",
		slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// buildDSN constructs a key=value connection string from config parts.
func buildDSN(cfg adapter.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if cfg.Options != nil {
		if mode, ok := cfg.Options["sslmode"]; ok {
			sslmode = mode
		}
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)

	if cfg.Username != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.Username)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}
	return dsn
}

// Publish replaces the table's contents using COPY FROM STDIN, the
// fastest bulk path postgres offers.
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

	payload, err := encodeCSV(t.Rows)
	if err != nil {
		return 0, fmt.Errorf("encode rows: %w", err)
	}

	conn, err := a.DB.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// COPY needs the raw pgx connection; database/sql has no bulk API.
	var copied int64
	err = conn.Raw(func(driverConn any) error {
		pgxConn := driverConn.(*stdlib.Conn).Conn()
		copySQL := fmt.Sprintf(`COPY %s FROM STDIN WITH (FORMAT csv, NULL '\N')`,
			adapter.QualifiedName(schema, t.Name))
		tag, err := pgxConn.PgConn().CopyFrom(ctx, strings.NewReader(payload), copySQL)
		if err != nil {
			return err
		}
		copied = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", t.Name, err)
	}
	return copied, nil
}

// encodeCSV renders rows in the form COPY expects: nil becomes the \N
// null marker, so empty text stays distinguishable from NULL.
func encodeCSV(rows [][]any) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	record := make([]string, 0, 8)
	for _, row := range rows {
		record = record[:0]
		for _, v := range row {
			record = append(record, formatField(v))
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

func formatField(v any) string {
	switch x := v.(type) {
	case nil:
		return `\N`
	case string:
		return x
	case bool:
		if x {
			return "t"
		}
		return "f"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
