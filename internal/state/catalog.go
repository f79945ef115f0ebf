// Package state maintains the SQLite catalog: a queryable mirror of the
// corpus plus a history of index builds. The mirror is derived data and
// is rebuilt wholesale from the loaded corpus; the JSON files stay the
// source of truth.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/periodica-labs/periodica/pkg/chem"
)

// DefaultPath is the catalog location relative to the data directory.
const DefaultPath = ".periodica/catalog.db"

// BuildStatus is the lifecycle state of a recorded index build.
type BuildStatus string

// Build statuses.
const (
	BuildRunning   BuildStatus = "running"
	BuildCompleted BuildStatus = "completed"
	BuildFailed    BuildStatus = "failed"
)

// BuildRun is one recorded index build.
type BuildRun struct {
	ID         string
	Status     BuildStatus
	StartedAt  time.Time
	FinishedAt *time.Time
	Elements   int
	Reactions  int
	Error      string
}

// Catalog is a SQLite mirror of the corpus.
type Catalog struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens the catalog at path, creating the file and its parent
// directory as needed, and applies any pending schema migrations.
// Use ":memory:" for an ephemeral catalog.
func Open(path string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// _time_format makes the driver write time.Time values in the text
	// form it can also parse back; without it round-trips break.
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	if path == ":memory:" {
		dsn = "file::memory:?_pragma=foreign_keys(1)&_time_format=sqlite"
	} else if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if path == ":memory:" {
		// Each pooled connection would otherwise get its own empty
		// in-memory database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping catalog: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("catalog opened", "path", path)
	return &Catalog{db: db, path: path, logger: logger}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Path returns the location the catalog was opened with.
func (c *Catalog) Path() string { return c.path }

// Rebuild replaces the mirror tables with the given corpus snapshot.
// The swap happens in a single transaction, so concurrent readers never
// observe a half-populated mirror.
func (c *Catalog) Rebuild(ctx context.Context, elements []chem.Element, reactions []chem.Reaction) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rebuild: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Children first, the foreign keys point upward.
	for _, table := range []string{"reaction_elements", "reactions", "elements"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := insertElements(ctx, tx, elements); err != nil {
		return err
	}
	if err := insertReactions(ctx, tx, reactions); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rebuild: %w", err)
	}

	c.logger.Debug("catalog rebuilt",
		"path", c.path,
		"elements", len(elements),
		"reactions", len(reactions))
	return nil
}

// Counts returns the number of mirrored elements and reactions.
func (c *Catalog) Counts(ctx context.Context) (elements, reactions int, err error) {
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM elements`).Scan(&elements); err != nil {
		return 0, 0, fmt.Errorf("count elements: %w", err)
	}
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reactions`).Scan(&reactions); err != nil {
		return 0, 0, fmt.Errorf("count reactions: %w", err)
	}
	return elements, reactions, nil
}

// StartBuild records the beginning of an index build.
func (c *Catalog) StartBuild(ctx context.Context) (*BuildRun, error) {
	run := &BuildRun{
		ID:        uuid.New().String(),
		Status:    BuildRunning,
		StartedAt: time.Now().UTC(),
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO builds (id, status, started_at) VALUES (?, ?, ?)`,
		run.ID, run.Status, run.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("record build start: %w", err)
	}
	return run, nil
}

// FinishBuild marks a build as completed, or as failed when buildErr is
// non-nil, and stores the resulting counts.
func (c *Catalog) FinishBuild(ctx context.Context, id string, elements, reactions int, buildErr error) error {
	status := BuildCompleted
	var errMsg *string
	if buildErr != nil {
		status = BuildFailed
		s := buildErr.Error()
		errMsg = &s
	}

	res, err := c.db.ExecContext(ctx,
		`UPDATE builds SET status = ?, finished_at = ?, elements = ?, reactions = ?, error = ? WHERE id = ?`,
		status, time.Now().UTC(), elements, reactions, errMsg, id)
	if err != nil {
		return fmt.Errorf("record build finish: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record build finish: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("build not found: %s", id)
	}
	return nil
}

// LatestBuild returns the most recent build run, or nil when the
// catalog has never been built.
func (c *Catalog) LatestBuild(ctx context.Context) (*BuildRun, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, status, started_at, finished_at, elements, reactions, error
		 FROM builds ORDER BY started_at DESC, rowid DESC LIMIT 1`)

	run, err := scanBuild(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest build: %w", err)
	}
	return run, nil
}

// ListBuilds returns build history, newest first. A limit <= 0 returns
// the default of 20.
func (c *Catalog) ListBuilds(ctx context.Context, limit int) ([]*BuildRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, status, started_at, finished_at, elements, reactions, error
		 FROM builds ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*BuildRun
	for rows.Next() {
		run, err := scanBuild(rows)
		if err != nil {
			return nil, fmt.Errorf("list builds: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBuild(row rowScanner) (*BuildRun, error) {
	run := &BuildRun{}
	var finished sql.NullTime
	var errMsg sql.NullString

	err := row.Scan(&run.ID, &run.Status, &run.StartedAt, &finished,
		&run.Elements, &run.Reactions, &errMsg)
	if err != nil {
		return nil, err
	}
	if finished.Valid {
		run.FinishedAt = &finished.Time
	}
	if errMsg.Valid {
		run.Error = errMsg.String
	}
	return run, nil
}

func insertElements(ctx context.Context, tx *sql.Tx, elements []chem.Element) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO elements (
		atomic_number, symbol, name, category, group_num, period, block,
		phase_at_stp, radioactive, discovery_year,
		atomic_mass_u, melting_point_k, boiling_point_k, density_kg_m3,
		electronegativity_pauling, electron_affinity_kj_mol,
		first_ionization_energy_kj_mol, atomic_radius_pm, covalent_radius_pm,
		thermal_conductivity_w_m_k, heat_of_fusion_kj_mol,
		heat_of_vaporization_kj_mol, molar_heat_capacity_j_mol_k
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare elements insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range elements {
		e := &elements[i]
		var firstIE *float64
		if v, ok := e.FirstIonizationEnergy(); ok {
			firstIE = &v
		}
		_, err := stmt.ExecContext(ctx,
			e.AtomicNumber, e.Symbol, e.Name, e.Classification.Category,
			e.Classification.Group, e.Classification.Period, e.Classification.Block,
			e.Physical.PhaseAtSTP, e.Nuclear.Radioactive, e.Discovery.Year,
			e.AtomicMassU, e.Physical.MeltingPointK, e.Physical.BoilingPointK,
			e.Physical.DensityKgM3, e.Structure.Electronegativity,
			e.Structure.ElectronAffinity, firstIE, e.Structure.AtomicRadiusPM,
			e.Structure.CovalentRadiusPM, e.Physical.ThermalConductivity,
			e.Physical.HeatOfFusion, e.Physical.HeatOfVaporization,
			e.Physical.MolarHeatCapacity)
		if err != nil {
			return fmt.Errorf("insert element %s: %w", e.Symbol, err)
		}
	}
	return nil
}

func insertReactions(ctx context.Context, tx *sql.Tx, reactions []chem.Reaction) error {
	rxnStmt, err := tx.PrepareContext(ctx, `INSERT INTO reactions
		(id, name, equation, type, category, delta_h_kj, reversible, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare reactions insert: %w", err)
	}
	defer func() { _ = rxnStmt.Close() }()

	elemStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO reaction_elements (reaction_id, symbol) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare reaction elements insert: %w", err)
	}
	defer func() { _ = elemStmt.Close() }()

	for i := range reactions {
		r := &reactions[i]
		_, err := rxnStmt.ExecContext(ctx,
			r.ID, r.Name, r.Equation, r.Type, r.Category,
			r.Thermodynamics.DeltaHKJ, r.Reversible, r.Description)
		if err != nil {
			return fmt.Errorf("insert reaction %s: %w", r.ID, err)
		}
		for _, sym := range r.ElementsInvolved {
			if _, err := elemStmt.ExecContext(ctx, r.ID, sym); err != nil {
				return fmt.Errorf("insert reaction %s element %s: %w", r.ID, sym, err)
			}
		}
	}
	return nil
}
