// Package compare builds side-by-side element property tables.
package compare

import (
	"fmt"
	"strings"

	"github.com/periodica-labs/periodica/internal/query"
	"github.com/periodica-labs/periodica/pkg/chem"
)

// Comparison size limits.
const (
	MinElements = 2
	MaxElements = 5
)

// Comparison is a property-by-element table. Columns follow the request
// order; every row carries exactly one value per requested element, nil
// where the element does not record the property.
type Comparison struct {
	// Symbols are the compared element symbols in request order.
	Symbols []string `json:"symbols"`
	// Headers are the column titles, "SYM (Name)" per element.
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Row is one property across all compared elements.
type Row struct {
	Property string `json:"property"`
	Values   []any  `json:"values"`
}

// property is one row definition: a label and a getter that returns nil
// for unrecorded values.
type property struct {
	label string
	get   func(*chem.Element) any
}

func numeric(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func text(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// properties is the fixed comparison row set.
var properties = []property{
	{"Atomic number", func(e *chem.Element) any { return e.AtomicNumber }},
	{"Atomic mass (u)", func(e *chem.Element) any { return e.AtomicMassU }},
	{"Category", func(e *chem.Element) any { return string(e.Classification.Category) }},
	{"Group", func(e *chem.Element) any {
		if e.Classification.Group == nil {
			return nil
		}
		return *e.Classification.Group
	}},
	{"Period", func(e *chem.Element) any { return e.Classification.Period }},
	{"Block", func(e *chem.Element) any { return e.Classification.Block }},
	{"Phase at STP", func(e *chem.Element) any { return string(e.Physical.PhaseAtSTP) }},
	{"Melting point (K)", func(e *chem.Element) any { return numeric(e.Physical.MeltingPointK) }},
	{"Boiling point (K)", func(e *chem.Element) any { return numeric(e.Physical.BoilingPointK) }},
	{"Density (kg/m3)", func(e *chem.Element) any { return numeric(e.Physical.DensityKgM3) }},
	{"Electronegativity", func(e *chem.Element) any { return numeric(e.Structure.Electronegativity) }},
	{"1st ionization (kJ/mol)", func(e *chem.Element) any {
		if v, ok := e.FirstIonizationEnergy(); ok {
			return v
		}
		return nil
	}},
	{"Electron affinity (kJ/mol)", func(e *chem.Element) any { return numeric(e.Structure.ElectronAffinity) }},
	{"Atomic radius (pm)", func(e *chem.Element) any { return numeric(e.Structure.AtomicRadiusPM) }},
	{"Electron config", func(e *chem.Element) any { return text(e.Structure.ElectronConfiguration) }},
	{"Oxidation states", func(e *chem.Element) any {
		if len(e.Structure.OxidationStates) == 0 {
			return nil
		}
		parts := make([]string, len(e.Structure.OxidationStates))
		for i, s := range e.Structure.OxidationStates {
			parts[i] = fmt.Sprintf("%d", s)
		}
		return strings.Join(parts, ", ")
	}},
	{"Crystal structure", func(e *chem.Element) any { return text(e.Physical.CrystalStructure) }},
	{"Magnetic ordering", func(e *chem.Element) any { return text(e.Physical.MagneticOrdering) }},
	{"Thermal conductivity", func(e *chem.Element) any { return numeric(e.Physical.ThermalConductivity) }},
	{"Radioactive", func(e *chem.Element) any {
		if e.Nuclear.Radioactive {
			return "Yes"
		}
		return "No"
	}},
}

// Compare resolves 2 to 5 identifiers and builds their comparison.
// Any unresolvable identifier fails the whole call with NotFound;
// identifiers resolving to the same element twice are an InvalidQuery.
func Compare(eng *query.Engine, identifiers []string) (*Comparison, error) {
	if len(identifiers) < MinElements {
		return nil, &chem.InvalidQueryError{Reason: fmt.Sprintf("compare wants at least %d elements", MinElements)}
	}
	if len(identifiers) > MaxElements {
		return nil, &chem.InvalidQueryError{Reason: fmt.Sprintf("compare wants at most %d elements", MaxElements)}
	}

	elements := make([]chem.Element, 0, len(identifiers))
	seen := map[int]string{}
	for _, ident := range identifiers {
		elem, err := eng.FindByIdentifier(ident)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[elem.AtomicNumber]; dup {
			return nil, &chem.InvalidQueryError{
				Part:   ident,
				Reason: fmt.Sprintf("resolves to the same element as %q", prev),
			}
		}
		seen[elem.AtomicNumber] = ident
		elements = append(elements, elem)
	}

	cmp := &Comparison{
		Symbols: make([]string, len(elements)),
		Headers: make([]string, len(elements)),
		Rows:    make([]Row, 0, len(properties)),
	}
	for i, e := range elements {
		cmp.Symbols[i] = e.Symbol
		cmp.Headers[i] = fmt.Sprintf("%s (%s)", e.Symbol, e.Name)
	}
	for _, p := range properties {
		row := Row{Property: p.label, Values: make([]any, len(elements))}
		for i := range elements {
			row.Values[i] = p.get(&elements[i])
		}
		cmp.Rows = append(cmp.Rows, row)
	}
	return cmp, nil
}
