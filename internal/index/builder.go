// Package index materializes derived JSON artifacts from the corpus: a
// flat periodic-table summary, a category grouping, and per-property
// numeric statistics. Artifacts are always rebuilt as a whole and each
// file is written atomically, so readers never observe a partial one.
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/periodica-labs/periodica/internal/store"
	"github.com/periodica-labs/periodica/pkg/chem"
)

// Dir is the artifact directory name under the data root.
const Dir = "indexes"

// Artifact file names under Dir.
const (
	TableFile      = "periodic-table.json"
	ByCategoryFile = "by-category.json"
	ByPropertyFile = "by-property.json"
)

// TableEntry is one row of periodic-table.json: a flat projection of
// the fields needed to render an overview table without loading full
// element records.
type TableEntry struct {
	AtomicNumber      int      `json:"atomic_number"`
	Symbol            string   `json:"symbol"`
	Name              string   `json:"name"`
	AtomicMassU       float64  `json:"atomic_mass_u"`
	Group             *int     `json:"group"`
	Period            int      `json:"period"`
	Block             string   `json:"block"`
	Category          string   `json:"category"`
	PhaseAtSTP        string   `json:"phase_at_stp"`
	Electronegativity *float64 `json:"electronegativity_pauling"`
	Radioactive       bool     `json:"radioactive"`
}

// CategoryEntry is one member of a by-category.json bucket.
type CategoryEntry struct {
	AtomicNumber int    `json:"atomic_number"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
}

// Extreme is the minimum or maximum of a numeric property together
// with the symbol of the element that holds it.
type Extreme struct {
	Value   float64 `json:"value"`
	Element string  `json:"element"`
}

// PropertyStats summarizes one numeric property across all elements
// that record it.
type PropertyStats struct {
	Min    Extreme `json:"min"`
	Max    Extreme `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
}

// Result reports one completed build.
type Result struct {
	ElementCount  int           `json:"elements"`
	ReactionCount int           `json:"reactions"`
	Artifacts     []string      `json:"artifacts"`
	Duration      time.Duration `json:"duration_ns"`
}

// Builder derives index artifacts from a corpus on disk. Each Build
// reloads the corpus from scratch, so a Builder stays valid across
// file changes.
type Builder struct {
	dataRoot string
	logger   *slog.Logger
}

// NewBuilder returns a Builder rooted at dataRoot. A nil logger
// disables logging.
func NewBuilder(dataRoot string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{dataRoot: dataRoot, logger: logger}
}

// Build loads the corpus and writes all three artifacts under
// <dataRoot>/indexes, replacing any previous versions.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()

	st, err := store.Open(ctx, b.dataRoot, b.logger)
	if err != nil {
		return nil, err
	}
	elements := st.Elements()

	outDir := filepath.Join(b.dataRoot, Dir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}

	artifacts := []struct {
		name string
		data any
	}{
		{TableFile, buildTable(elements)},
		{ByCategoryFile, buildByCategory(elements)},
		{ByPropertyFile, buildByProperty(elements)},
	}

	res := &Result{ElementCount: st.Len(), ReactionCount: st.ReactionCount()}
	for _, a := range artifacts {
		path := filepath.Join(outDir, a.name)
		if err := writeJSONAtomic(path, a.data); err != nil {
			return nil, err
		}
		res.Artifacts = append(res.Artifacts, path)
	}
	res.Duration = time.Since(start)

	b.logger.Info("indexes built",
		"elements", res.ElementCount,
		"reactions", res.ReactionCount,
		"artifacts", len(res.Artifacts),
		"duration", res.Duration)
	return res, nil
}

func buildTable(elements []chem.Element) []TableEntry {
	out := make([]TableEntry, len(elements))
	for i := range elements {
		e := &elements[i]
		out[i] = TableEntry{
			AtomicNumber:      e.AtomicNumber,
			Symbol:            e.Symbol,
			Name:              e.Name,
			AtomicMassU:       e.AtomicMassU,
			Group:             e.Classification.Group,
			Period:            e.Classification.Period,
			Block:             e.Classification.Block,
			Category:          string(e.Classification.Category),
			PhaseAtSTP:        string(e.Physical.PhaseAtSTP),
			Electronegativity: e.Structure.Electronegativity,
			Radioactive:       e.Nuclear.Radioactive,
		}
	}
	return out
}

func buildByCategory(elements []chem.Element) map[string][]CategoryEntry {
	out := make(map[string][]CategoryEntry)
	for i := range elements {
		e := &elements[i]
		cat := string(e.Classification.Category)
		out[cat] = append(out[cat], CategoryEntry{
			AtomicNumber: e.AtomicNumber,
			Symbol:       e.Symbol,
			Name:         e.Name,
		})
	}
	return out
}

// statProperty binds a by-property.json key, named after the property's
// JSON key in element records, to the accessor that extracts it.
type statProperty struct {
	key string
	get func(*chem.Element) (float64, bool)
}

var statProperties = []statProperty{
	{"atomic_mass_u", fieldNumber("atomic_mass")},
	{"electronegativity_pauling", fieldNumber("electronegativity")},
	{"first_ionization_energy_kj_mol", (*chem.Element).FirstIonizationEnergy},
	{"electron_affinity_kj_mol", fieldNumber("electron_affinity")},
	{"atomic_radius_pm", fieldNumber("atomic_radius")},
	{"covalent_radius_pm", fieldNumber("covalent_radius")},
	{"melting_point_k", fieldNumber("melting_point")},
	{"boiling_point_k", fieldNumber("boiling_point")},
	{"density_kg_m3", fieldNumber("density")},
	{"thermal_conductivity_w_m_k", fieldNumber("thermal_conductivity")},
	{"heat_of_fusion_kj_mol", func(e *chem.Element) (float64, bool) { return fromPtr(e.Physical.HeatOfFusion) }},
	{"heat_of_vaporization_kj_mol", func(e *chem.Element) (float64, bool) { return fromPtr(e.Physical.HeatOfVaporization) }},
	{"molar_heat_capacity_j_mol_k", func(e *chem.Element) (float64, bool) { return fromPtr(e.Physical.MolarHeatCapacity) }},
}

func fieldNumber(name string) func(*chem.Element) (float64, bool) {
	f, ok := chem.FieldByName(name)
	if !ok {
		panic("index: no such query field: " + name)
	}
	return f.Number
}

func fromPtr(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func buildByProperty(elements []chem.Element) map[string]PropertyStats {
	out := make(map[string]PropertyStats, len(statProperties))
	for _, prop := range statProperties {
		var samples []sample
		for i := range elements {
			if v, ok := prop.get(&elements[i]); ok {
				samples = append(samples, sample{value: v, symbol: elements[i].Symbol})
			}
		}
		// Properties recorded by no element are omitted entirely.
		if len(samples) == 0 {
			continue
		}
		out[prop.key] = summarize(samples)
	}
	return out
}

type sample struct {
	value  float64
	symbol string
}

func summarize(samples []sample) PropertyStats {
	sort.Slice(samples, func(i, j int) bool {
		if samples[i].value != samples[j].value {
			return samples[i].value < samples[j].value
		}
		return samples[i].symbol < samples[j].symbol
	})

	sum := 0.0
	for _, s := range samples {
		sum += s.value
	}

	n := len(samples)
	median := samples[n/2].value
	if n%2 == 0 {
		median = (samples[n/2-1].value + samples[n/2].value) / 2
	}

	return PropertyStats{
		Min:    Extreme{Value: samples[0].value, Element: samples[0].symbol},
		Max:    Extreme{Value: samples[n-1].value, Element: samples[n-1].symbol},
		Mean:   round4(sum / float64(n)),
		Median: round4(median),
		Count:  n,
	}
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// writeJSONAtomic writes v to a temp file in the target directory and
// renames it into place, so a crash mid-write never leaves a truncated
// artifact behind.
func writeJSONAtomic(path string, v any) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
