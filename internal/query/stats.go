package query

import "github.com/periodica-labs/periodica/pkg/chem"

// CorpusStats aggregates the loaded corpus for the stats command and
// the /api/stats endpoint.
type CorpusStats struct {
	Elements  int `json:"elements"`
	Reactions int `json:"reactions"`

	ByCategory map[string]int `json:"by_category"`
	ByPhase    map[string]int `json:"by_phase"`
	ByBlock    map[string]int `json:"by_block"`

	Radioactive int `json:"radioactive"`

	ReactionsByCategory map[string]int `json:"reactions_by_category"`
	ReactionsByType     map[string]int `json:"reactions_by_type"`

	// Coverage reports, per numeric field, how much of the corpus
	// records a value.
	Coverage []FieldCoverage `json:"coverage"`
}

// FieldCoverage is the non-null share of one numeric field.
type FieldCoverage struct {
	Field   string  `json:"field"`
	Present int     `json:"present"`
	Percent float64 `json:"percent"`
}

// Stats computes corpus aggregates.
func (e *Engine) Stats() CorpusStats {
	elements := e.store.Elements()
	reactions := e.store.Reactions()

	stats := CorpusStats{
		Elements:            len(elements),
		Reactions:           len(reactions),
		ByCategory:          map[string]int{},
		ByPhase:             map[string]int{},
		ByBlock:             map[string]int{},
		ReactionsByCategory: map[string]int{},
		ReactionsByType:     map[string]int{},
	}

	for i := range elements {
		el := &elements[i]
		stats.ByCategory[string(el.Classification.Category)]++
		stats.ByPhase[string(el.Physical.PhaseAtSTP)]++
		stats.ByBlock[el.Classification.Block]++
		if el.Nuclear.Radioactive {
			stats.Radioactive++
		}
	}
	for i := range reactions {
		r := &reactions[i]
		stats.ReactionsByCategory[string(r.Category)]++
		stats.ReactionsByType[string(r.Type)]++
	}

	if len(elements) > 0 {
		for _, field := range chem.NumericFields() {
			present := 0
			for i := range elements {
				if _, ok := field.Number(&elements[i]); ok {
					present++
				}
			}
			stats.Coverage = append(stats.Coverage, FieldCoverage{
				Field:   field.Name,
				Present: present,
				Percent: 100 * float64(present) / float64(len(elements)),
			})
		}
	}
	return stats
}
