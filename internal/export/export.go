// Package export publishes the corpus to an external analytical
// database through a registered adapter. The published shape matches
// the catalog mirror: elements, reactions, and the reaction_elements
// join table.
package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/periodica-labs/periodica/pkg/adapter"
	"github.com/periodica-labs/periodica/pkg/chem"
)

// Exporter drives one adapter through a full publish.
type Exporter struct {
	adapter adapter.Adapter
	logger  *slog.Logger
}

// New creates an Exporter. The caller owns the adapter and closes it.
func New(a adapter.Adapter, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Exporter{adapter: a, logger: logger}
}

// TableCount reports rows written to one published table.
type TableCount struct {
	Name string
	Rows int64
}

// Result reports what one Run published.
type Result struct {
	Target string
	Schema string
	Tables []TableCount
}

// Run connects, creates the target schema, and publishes the three
// corpus tables. The adapter connection stays open so callers can run
// verification queries before closing.
func (e *Exporter) Run(ctx context.Context, cfg adapter.Config, elements []chem.Element, reactions []chem.Reaction) (*Result, error) {
	if err := e.adapter.Connect(ctx, cfg); err != nil {
		return nil, err
	}

	if err := e.adapter.CreateSchema(ctx, cfg.Schema); err != nil {
		return nil, fmt.Errorf("create schema %q: %w", cfg.Schema, err)
	}

	res := &Result{Target: e.adapter.DialectName(), Schema: cfg.Schema}
	for _, t := range []adapter.Table{
		ElementsTable(elements),
		ReactionsTable(reactions),
		ReactionElementsTable(reactions),
	} {
		n, err := e.adapter.Publish(ctx, cfg.Schema, t)
		if err != nil {
			return nil, fmt.Errorf("publish %s: %w", t.Name, err)
		}
		e.logger.Info("published table",
			"target", res.Target, "table", t.Name, "rows", n)
		res.Tables = append(res.Tables, TableCount{Name: t.Name, Rows: n})
	}
	return res, nil
}

// ElementsTable flattens element records into the published shape, one
// row per element with the registry's numeric properties as columns.
func ElementsTable(elements []chem.Element) adapter.Table {
	t := adapter.Table{
		Name: "elements",
		Columns: []adapter.Column{
			{Name: "atomic_number", Type: "INTEGER"},
			{Name: "symbol", Type: "TEXT"},
			{Name: "name", Type: "TEXT"},
			{Name: "category", Type: "TEXT"},
			{Name: "group_num", Type: "INTEGER"},
			{Name: "period", Type: "INTEGER"},
			{Name: "block", Type: "TEXT"},
			{Name: "phase_at_stp", Type: "TEXT"},
			{Name: "radioactive", Type: "BOOLEAN"},
			{Name: "discovery_year", Type: "INTEGER"},
			{Name: "atomic_mass_u", Type: "DOUBLE PRECISION"},
			{Name: "melting_point_k", Type: "DOUBLE PRECISION"},
			{Name: "boiling_point_k", Type: "DOUBLE PRECISION"},
			{Name: "density_kg_m3", Type: "DOUBLE PRECISION"},
			{Name: "electronegativity_pauling", Type: "DOUBLE PRECISION"},
			{Name: "electron_affinity_kj_mol", Type: "DOUBLE PRECISION"},
			{Name: "first_ionization_energy_kj_mol", Type: "DOUBLE PRECISION"},
			{Name: "atomic_radius_pm", Type: "DOUBLE PRECISION"},
			{Name: "covalent_radius_pm", Type: "DOUBLE PRECISION"},
			{Name: "thermal_conductivity_w_m_k", Type: "DOUBLE PRECISION"},
			{Name: "heat_of_fusion_kj_mol", Type: "DOUBLE PRECISION"},
			{Name: "heat_of_vaporization_kj_mol", Type: "DOUBLE PRECISION"},
			{Name: "molar_heat_capacity_j_mol_k", Type: "DOUBLE PRECISION"},
		},
	}

	for i := range elements {
		e := &elements[i]
		var firstIE any
		if v, ok := e.FirstIonizationEnergy(); ok {
			firstIE = v
		}
		t.Rows = append(t.Rows, []any{
			e.AtomicNumber, e.Symbol, e.Name, string(e.Classification.Category),
			optInt(e.Classification.Group), e.Classification.Period, e.Classification.Block,
			string(e.Physical.PhaseAtSTP), e.Nuclear.Radioactive, optInt(e.Discovery.Year),
			e.AtomicMassU, optFloat(e.Physical.MeltingPointK), optFloat(e.Physical.BoilingPointK),
			optFloat(e.Physical.DensityKgM3), optFloat(e.Structure.Electronegativity),
			optFloat(e.Structure.ElectronAffinity), firstIE, optFloat(e.Structure.AtomicRadiusPM),
			optFloat(e.Structure.CovalentRadiusPM), optFloat(e.Physical.ThermalConductivity),
			optFloat(e.Physical.HeatOfFusion), optFloat(e.Physical.HeatOfVaporization),
			optFloat(e.Physical.MolarHeatCapacity),
		})
	}
	return t
}

// ReactionsTable flattens reaction records, one row per reaction.
func ReactionsTable(reactions []chem.Reaction) adapter.Table {
	t := adapter.Table{
		Name: "reactions",
		Columns: []adapter.Column{
			{Name: "id", Type: "TEXT"},
			{Name: "name", Type: "TEXT"},
			{Name: "equation", Type: "TEXT"},
			{Name: "type", Type: "TEXT"},
			{Name: "category", Type: "TEXT"},
			{Name: "delta_h_kj", Type: "DOUBLE PRECISION"},
			{Name: "reversible", Type: "BOOLEAN"},
			{Name: "description", Type: "TEXT"},
		},
	}

	for i := range reactions {
		r := &reactions[i]
		t.Rows = append(t.Rows, []any{
			r.ID, r.Name, r.Equation, string(r.Type), string(r.Category),
			optFloat(r.Thermodynamics.DeltaHKJ), r.Reversible, r.Description,
		})
	}
	return t
}

// ReactionElementsTable builds the (reaction_id, symbol) join table.
func ReactionElementsTable(reactions []chem.Reaction) adapter.Table {
	t := adapter.Table{
		Name: "reaction_elements",
		Columns: []adapter.Column{
			{Name: "reaction_id", Type: "TEXT"},
			{Name: "symbol", Type: "TEXT"},
		},
	}

	for i := range reactions {
		r := &reactions[i]
		for _, sym := range r.ElementsInvolved {
			t.Rows = append(t.Rows, []any{r.ID, sym})
		}
	}
	return t
}

func optFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func optInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
