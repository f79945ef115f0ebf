package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/periodica-labs/periodica/pkg/chem"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func bptr(v bool) *bool       { return &v }

// Elements returns the fixture elements: a small but real slice of the
// periodic table covering every phase, several categories and blocks, a
// liquid, a synthetic radioactive, and null-heavy records. Reaction
// back-references are injected from Reactions().
func Elements() []chem.Element {
	elements := []chem.Element{
		{
			AtomicNumber: 1, Symbol: "H", Name: "Hydrogen", AtomicMassU: 1.008,
			Classification: chem.Classification{Category: chem.CategoryNonmetal, Group: iptr(1), Period: 1, Block: "s", NaturalOccurrence: "primordial"},
			Structure: chem.AtomicStructure{
				ElectronConfiguration: "1s1",
				ElectronShells:        []int{1},
				ValenceElectrons:      iptr(1),
				OxidationStates:       []int{-1, 1},
				Electronegativity:     fptr(2.20),
				IonizationEnergies:    []float64{1312.0},
				ElectronAffinity:      fptr(72.8),
				AtomicRadiusPM:        fptr(53),
				CovalentRadiusPM:      fptr(31),
			},
			Physical: chem.Physical{
				PhaseAtSTP: chem.PhaseGas, MeltingPointK: fptr(13.99), BoilingPointK: fptr(20.271),
				DensityKgM3: fptr(0.08988), ThermalConductivity: fptr(0.1805),
			},
			Nuclear:      chem.Nuclear{StableIsotopes: []string{"1H", "2H"}},
			Discovery:    chem.Discovery{Year: iptr(1766), Discoverers: []string{"Henry Cavendish"}, NameOrigin: "Greek hydro + genes, water-forming"},
			Applications: []string{"ammonia synthesis", "rocket fuel", "hydrogenation"},
		},
		{
			AtomicNumber: 2, Symbol: "He", Name: "Helium", AtomicMassU: 4.0026,
			Classification: chem.Classification{Category: chem.CategoryNobleGas, Group: iptr(18), Period: 1, Block: "s", NaturalOccurrence: "primordial"},
			Structure: chem.AtomicStructure{
				ElectronConfiguration: "1s2",
				ElectronShells:        []int{2},
				ValenceElectrons:      iptr(2),
				IonizationEnergies:    []float64{2372.3},
				AtomicRadiusPM:        fptr(31),
				CovalentRadiusPM:      fptr(28),
			},
			Physical: chem.Physical{
				PhaseAtSTP: chem.PhaseGas, BoilingPointK: fptr(4.222),
				DensityKgM3: fptr(0.1786), ThermalConductivity: fptr(0.1513),
			},
			Nuclear:      chem.Nuclear{StableIsotopes: []string{"3He", "4He"}},
			Discovery:    chem.Discovery{Year: iptr(1868), Discoverers: []string{"Pierre Janssen", "Norman Lockyer"}, NameOrigin: "Greek helios, the sun"},
			Applications: []string{"cryogenics", "airships", "shielding gas"},
		},
		{
			AtomicNumber: 3, Symbol: "Li", Name: "Lithium", AtomicMassU: 6.94,
			Classification: chem.Classification{Category: chem.CategoryAlkaliMetal, Group: iptr(1), Period: 2, Block: "s", NaturalOccurrence: "primordial"},
			Structure: chem.AtomicStructure{
				ElectronConfiguration: "[He] 2s1",
				ElectronShells:        []int{2, 1},
				ValenceElectrons:      iptr(1),
				OxidationStates:       []int{1},
				Electronegativity:     fptr(0.98),
				IonizationEnergies:    []float64{520.2},
				ElectronAffinity:      fptr(59.6),
				AtomicRadiusPM:        fptr(167),
				CovalentRadiusPM:      fptr(128),
			},
			Physical: chem.Physical{
				PhaseAtSTP: chem.PhaseSolid, MeltingPointK: fptr(453.65), BoilingPointK: fptr(1603),
				DensityKgM3: fptr(534), ThermalConductivity: fptr(84.8), CrystalStructure: "body-centered cubic",
			},
			Nuclear:      chem.Nuclear{StableIsotopes: []string{"6Li", "7Li"}},
			Discovery:    chem.Discovery{Year: iptr(1817), Discoverers: []string{"Johan August Arfwedson"}, NameOrigin: "Greek lithos, stone"},
			Applications: []string{"batteries", "psychiatric medication", "alloys"},
		},
		{
			AtomicNumber: 6, Symbol: "C", Name: "Carbon", AtomicMassU: 12.011,
			Classification: chem.Classification{Category: chem.CategoryNonmetal, Group: iptr(14), Period: 2, Block: "p", NaturalOccurrence: "primordial"},
			Structure: chem.AtomicStructure{
				ElectronConfiguration: "[He] 2s2 2p2",
				ElectronShells:        []int{2, 4},
				ValenceElectrons:      iptr(4),
				OxidationStates:       []int{-4, -3, -2, -1, 1, 2, 3, 4},
				Electronegativity:     fptr(2.55),
				IonizationEnergies:    []float64{1086.5},
				ElectronAffinity:      fptr(121.8),
				AtomicRadiusPM:        fptr(67),
				CovalentRadiusPM:      fptr(76),
			},
			Physical: chem.Physical{
				PhaseAtSTP: chem.PhaseSolid, MeltingPointK: fptr(3823),
				DensityKgM3: fptr(2267), ThermalConductivity: fptr(140), CrystalStructure: "hexagonal (graphite)",
			},
			Nuclear:      chem.Nuclear{StableIsotopes: []string{"12C", "13C"}},
			Discovery:    chem.Discovery{NameOrigin: "Latin carbo, charcoal"},
			Applications: []string{"steelmaking", "organic chemistry", "composite materials"},
		},
		{
			AtomicNumber: 7, Symbol: "N", Name: "Nitrogen", AtomicMassU: 14.007,
			Classification: chem.Classification{Category: chem.CategoryNonmetal, Group: iptr(15), Period: 2, Block: "p", NaturalOccurrence: "primordial"},
			Structure: chem.AtomicStructure{
				ElectronConfiguration: "[He] 2s2 2p3",
				ElectronShells:        []int{2, 5},
				ValenceElectrons:      iptr(5),
				OxidationStates:       []int{-3, -2, -1, 1, 2, 3, 4, 5},
				Electronegativity:     fptr(3.04),
				IonizationEnergies:    []float64{1402.3},
				ElectronAffinity:      fptr(-6.8),
				AtomicRadiusPM:        fptr(56),
				CovalentRadiusPM:      fptr(71),
			},
			Physical: chem.Physical{
				PhaseAtSTP: chem.PhaseGas, MeltingPointK: fptr(63.15), BoilingPointK: fptr(77.355),
				DensityKgM3: fptr(1.2506), ThermalConductivity: fptr(0.02583),
			},
			Nuclear:      chem.Nuclear{StableIsotopes: []string{"14N", "15N"}},
			Discovery:    chem.Discovery{Year: iptr(1772), Discoverers: []string{"Daniel Rutherford"}, NameOrigin: "Greek nitron + genes, niter-forming"},
			Applications: []string{"fertilizer production", "inert atmosphere", "cryogenic coolant"},
		},
		{
			AtomicNumber: 8, Symbol: "O", Name: "Oxygen", AtomicMassU: 15.999,
			Classification: chem.Classification{Category: chem.CategoryNonmetal, Group: iptr(16), Period: 2, Block: "p", NaturalOccurrence: "primordial"},
			Structure: chem.AtomicStructure{
				ElectronConfiguration: "[He] 2s2 2p4",
				ElectronShells:        []int{2, 6},
				ValenceElectrons:      iptr(6),
				OxidationStates:       []int{-2, -1, 1, 2},
				Electronegativity:     fptr(3.44),
				IonizationEnergies:    []float64{1313.9},
				ElectronAffinity:      fptr(141),
				AtomicRadiusPM:        fptr(48),
				CovalentRadiusPM:      fptr(66),
			},
			Physical: chem.Physical{
				PhaseAtSTP: chem.PhaseGas, MeltingPointK: fptr(54.36), BoilingPointK: fptr(90.188),
				DensityKgM3: fptr(1.429), ThermalConductivity: fptr(0.02658),
			},
			Nuclear:      chem.Nuclear{StableIsotopes: []string{"16O", "17O", "18O"}},
			Discovery:    chem.Discovery{Year: iptr(1774), Discoverers: []string{"Joseph Priestley", "Carl Wilhelm Scheele"}, NameOrigin: "Greek oxys + genes, acid-forming"},
			Applications: []string{"steelmaking", "medical oxygen", "water treatment"},
		},
		{
			AtomicNumber: 26, Symbol: "Fe", Name: "Iron", AtomicMassU: 55.845,
			Classification: chem.Classification{Category: chem.CategoryTransitionMetal, Group: iptr(8), Period: 4, Block: "d", NaturalOccurrence: "primordial"},
			Structure: chem.AtomicStructure{
				ElectronConfiguration: "[Ar] 3d6 4s2",
				ElectronShells:        []int{2, 8, 14, 2},
				ValenceElectrons:      iptr(2),
				OxidationStates:       []int{-2, 2, 3, 6},
				Electronegativity:     fptr(1.83),
				IonizationEnergies:    []float64{762.5, 1561.9},
				ElectronAffinity:      fptr(15.7),
				AtomicRadiusPM:        fptr(126),
				CovalentRadiusPM:      fptr(132),
			},
			Physical: chem.Physical{
				PhaseAtSTP: chem.PhaseSolid, MeltingPointK: fptr(1811), BoilingPointK: fptr(3134),
				DensityKgM3: fptr(7874), ThermalConductivity: fptr(80.4),
				CrystalStructure: "body-centered cubic", MagneticOrdering: "ferromagnetic",
			},
			Nuclear:      chem.Nuclear{StableIsotopes: []string{"54Fe", "56Fe", "57Fe", "58Fe"}},
			Discovery:    chem.Discovery{NameOrigin: "Latin ferrum"},
			Applications: []string{"steel production", "construction", "hemoglobin"},
		},
		{
			AtomicNumber: 43, Symbol: "Tc", Name: "Technetium", AtomicMassU: 98,
			Classification: chem.Classification{Category: chem.CategoryTransitionMetal, Group: iptr(7), Period: 5, Block: "d", NaturalOccurrence: "synthetic"},
			Structure: chem.AtomicStructure{
				ElectronConfiguration: "[Kr] 4d5 5s2",
				ElectronShells:        []int{2, 8, 18, 13, 2},
				ValenceElectrons:      iptr(7),
				OxidationStates:       []int{4, 7},
				Electronegativity:     fptr(1.9),
				IonizationEnergies:    []float64{702},
				AtomicRadiusPM:        fptr(183),
				CovalentRadiusPM:      fptr(147),
			},
			Physical: chem.Physical{
				PhaseAtSTP: chem.PhaseSolid, MeltingPointK: fptr(2430), BoilingPointK: fptr(4538),
				DensityKgM3: fptr(11000), ThermalConductivity: fptr(50.6),
			},
			Nuclear: chem.Nuclear{
				Radioactive: true, HalfLife: "4.21 My", DecayMode: "beta",
				Isotopes: []chem.Isotope{{MassNumber: 98, Stable: false, HalfLife: "4.21 My"}},
			},
			Discovery:    chem.Discovery{Year: iptr(1937), Discoverers: []string{"Carlo Perrier", "Emilio Segrè"}, NameOrigin: "Greek technetos, artificial"},
			Applications: []string{"medical imaging tracers"},
		},
		{
			AtomicNumber: 74, Symbol: "W", Name: "Tungsten", AtomicMassU: 183.84,
			Classification: chem.Classification{Category: chem.CategoryTransitionMetal, Group: iptr(6), Period: 6, Block: "d", NaturalOccurrence: "primordial"},
			Structure: chem.AtomicStructure{
				ElectronConfiguration: "[Xe] 4f14 5d4 6s2",
				ElectronShells:        []int{2, 8, 18, 32, 12, 2},
				ValenceElectrons:      iptr(2),
				OxidationStates:       []int{-2, 2, 4, 5, 6},
				Electronegativity:     fptr(2.36),
				IonizationEnergies:    []float64{770, 1700},
				ElectronAffinity:      fptr(78.6),
				AtomicRadiusPM:        fptr(193),
				CovalentRadiusPM:      fptr(162),
			},
			Physical: chem.Physical{
				PhaseAtSTP: chem.PhaseSolid, MeltingPointK: fptr(3695), BoilingPointK: fptr(6203),
				DensityKgM3: fptr(19254), ThermalConductivity: fptr(173),
				CrystalStructure: "body-centered cubic",
			},
			Nuclear:      chem.Nuclear{StableIsotopes: []string{"182W", "183W", "184W", "186W"}},
			Discovery:    chem.Discovery{Year: iptr(1783), Discoverers: []string{"Juan José Elhuyar", "Fausto Elhuyar"}, NameOrigin: "Swedish tung sten, heavy stone"},
			Applications: []string{"lamp filaments", "cutting tools", "radiation shielding"},
		},
		{
			AtomicNumber: 80, Symbol: "Hg", Name: "Mercury", AtomicMassU: 200.592,
			Classification: chem.Classification{Category: chem.CategoryTransitionMetal, Group: iptr(12), Period: 6, Block: "d", NaturalOccurrence: "primordial"},
			Structure: chem.AtomicStructure{
				ElectronConfiguration: "[Xe] 4f14 5d10 6s2",
				ElectronShells:        []int{2, 8, 18, 32, 18, 2},
				ValenceElectrons:      iptr(2),
				OxidationStates:       []int{1, 2},
				Electronegativity:     fptr(2.00),
				IonizationEnergies:    []float64{1007.1},
				AtomicRadiusPM:        fptr(171),
				CovalentRadiusPM:      fptr(132),
			},
			Physical: chem.Physical{
				PhaseAtSTP: chem.PhaseLiquid, MeltingPointK: fptr(234.321), BoilingPointK: fptr(629.88),
				DensityKgM3: fptr(13534), ThermalConductivity: fptr(8.3),
			},
			Nuclear:      chem.Nuclear{StableIsotopes: []string{"196Hg", "198Hg", "199Hg", "200Hg", "201Hg", "202Hg", "204Hg"}},
			Discovery:    chem.Discovery{NameOrigin: "named for the planet Mercury; symbol from Latin hydrargyrum"},
			Applications: []string{"thermometers", "chlor-alkali electrolysis", "dental amalgam"},
		},
		{
			AtomicNumber: 92, Symbol: "U", Name: "Uranium", AtomicMassU: 238.02891,
			Classification: chem.Classification{Category: chem.CategoryActinide, Period: 7, Block: "f", NaturalOccurrence: "primordial"},
			Structure: chem.AtomicStructure{
				ElectronConfiguration: "[Rn] 5f3 6d1 7s2",
				ElectronShells:        []int{2, 8, 18, 32, 21, 9, 2},
				OxidationStates:       []int{3, 4, 5, 6},
				Electronegativity:     fptr(1.38),
				IonizationEnergies:    []float64{597.6},
				AtomicRadiusPM:        fptr(156),
				CovalentRadiusPM:      fptr(196),
			},
			Physical: chem.Physical{
				PhaseAtSTP: chem.PhaseSolid, MeltingPointK: fptr(1405.3), BoilingPointK: fptr(4404),
				DensityKgM3: fptr(19050), ThermalConductivity: fptr(27.5),
			},
			Nuclear: chem.Nuclear{
				Radioactive: true, HalfLife: "4.468 Gy", DecayMode: "alpha",
				Isotopes: []chem.Isotope{
					{MassNumber: 238, AbundancePercent: fptr(99.274), Stable: false, HalfLife: "4.468 Gy"},
					{MassNumber: 235, AbundancePercent: fptr(0.7204), Stable: false, HalfLife: "703.8 My"},
				},
			},
			Discovery:    chem.Discovery{Year: iptr(1789), Discoverers: []string{"Martin Heinrich Klaproth"}, NameOrigin: "named for the planet Uranus"},
			Applications: []string{"nuclear fuel", "radiometric dating"},
		},
	}

	// Inject reaction back-references the way the curation pipeline
	// does: a flattened summary per reaction, ordered by category then ID.
	refs := map[string][]chem.ReactionRef{}
	for _, r := range Reactions() {
		ref := chem.ReactionRef{
			ID:          r.ID,
			Name:        r.Name,
			Equation:    r.Equation,
			Type:        r.Type,
			Category:    r.Category,
			DeltaHKJ:    r.Thermodynamics.DeltaHKJ,
			Conditions:  summarizeConditions(r.Conditions),
			Description: r.Description,
			Reversible:  r.Reversible,
		}
		for _, sym := range r.ElementsInvolved {
			refs[sym] = append(refs[sym], ref)
		}
	}
	for i := range elements {
		rs := refs[elements[i].Symbol]
		sort.Slice(rs, func(a, b int) bool {
			if rs[a].Category != rs[b].Category {
				return rs[a].Category < rs[b].Category
			}
			return rs[a].ID < rs[b].ID
		})
		elements[i].Reactions = rs
	}
	return elements
}

func summarizeConditions(c chem.Conditions) string {
	var parts []string
	if c.TemperatureK != nil {
		parts = append(parts, fmt.Sprintf("%v K", *c.TemperatureK))
	}
	if c.PressureAtm != nil {
		parts = append(parts, fmt.Sprintf("%v atm", *c.PressureAtm))
	}
	if c.Catalyst != "" {
		parts = append(parts, c.Catalyst)
	}
	if c.Other != "" {
		parts = append(parts, c.Other)
	}
	return strings.Join(parts, "; ")
}

// Reactions returns the fixture reactions. Every symbol in
// ElementsInvolved exists in Elements(), so the corpus cross-validates.
func Reactions() []chem.Reaction {
	return []chem.Reaction{
		{
			ID: "Fe-environmental-001", Name: "Rusting of iron",
			Equation:      "4 Fe + 3 O2 -> 2 Fe2O3",
			EquationLaTeX: `4\,Fe + 3\,O_2 \rightarrow 2\,Fe_2O_3`,
			Type:          chem.ReactionRedox, Category: chem.ReactionEnvironmental,
			ElementsInvolved: []string{"Fe", "O"},
			Reactants: []chem.Species{
				{Formula: "Fe", Moles: 4, State: "s"},
				{Formula: "O2", Moles: 3, State: "g"},
			},
			Products:       []chem.Species{{Formula: "Fe2O3", Moles: 2, State: "s"}},
			Thermodynamics: chem.Thermodynamics{DeltaHKJ: fptr(-1648.4), Exothermic: bptr(true)},
			Conditions:     chem.Conditions{Other: "accelerated by moisture and electrolytes"},
			Description:    "Slow atmospheric oxidation of iron to hematite, the classic corrosion reaction.",
		},
		{
			ID: "Fe-industrial-001", Name: "Blast furnace reduction",
			Equation:      "Fe2O3 + 3 CO -> 2 Fe + 3 CO2",
			EquationLaTeX: `Fe_2O_3 + 3\,CO \rightarrow 2\,Fe + 3\,CO_2`,
			Type:          chem.ReactionRedox, Category: chem.ReactionIndustrial,
			ElementsInvolved: []string{"Fe", "C", "O"},
			Reactants: []chem.Species{
				{Formula: "Fe2O3", Moles: 1, State: "s"},
				{Formula: "CO", Moles: 3, State: "g"},
			},
			Products: []chem.Species{
				{Formula: "Fe", Moles: 2, State: "l"},
				{Formula: "CO2", Moles: 3, State: "g"},
			},
			Thermodynamics: chem.Thermodynamics{DeltaHKJ: fptr(-24.8), Exothermic: bptr(true)},
			Conditions:     chem.Conditions{TemperatureK: fptr(1973)},
			Description:    "Carbon monoxide reduces hematite to pig iron in the blast furnace stack.",
		},
		{
			ID: "H-industrial-001", Name: "Haber-Bosch ammonia synthesis",
			Equation:      "N2 + 3 H2 <-> 2 NH3",
			EquationLaTeX: `N_2 + 3\,H_2 \rightleftharpoons 2\,NH_3`,
			Type:          chem.ReactionSynthesis, Category: chem.ReactionIndustrial,
			ElementsInvolved: []string{"N", "H"},
			Reactants: []chem.Species{
				{Formula: "N2", Moles: 1, State: "g"},
				{Formula: "H2", Moles: 3, State: "g"},
			},
			Products:       []chem.Species{{Formula: "NH3", Moles: 2, State: "g"}},
			Thermodynamics: chem.Thermodynamics{DeltaHKJ: fptr(-92.4), DeltaSJK: fptr(-198.8), Exothermic: bptr(true)},
			Conditions:     chem.Conditions{TemperatureK: fptr(700), PressureAtm: fptr(200), Catalyst: "Fe3O4 with K2O promoter"},
			Reversible:     true,
			Description:    "Fixes atmospheric nitrogen into ammonia; the backbone of fertilizer production.",
		},
		{
			ID: "H-laboratory-001", Name: "Electrolysis of water",
			Equation:      "2 H2O -> 2 H2 + O2",
			EquationLaTeX: `2\,H_2O \rightarrow 2\,H_2 + O_2`,
			Type:          chem.ReactionDecomposition, Category: chem.ReactionLaboratory,
			ElementsInvolved: []string{"H", "O"},
			Reactants:        []chem.Species{{Formula: "H2O", Moles: 2, State: "l"}},
			Products: []chem.Species{
				{Formula: "H2", Moles: 2, State: "g"},
				{Formula: "O2", Moles: 1, State: "g"},
			},
			Thermodynamics: chem.Thermodynamics{DeltaHKJ: fptr(571.6), DeltaGKJ: fptr(474.2), Exothermic: bptr(false)},
			Conditions:     chem.Conditions{Other: "electrolytic cell, dilute electrolyte"},
			Description:    "Splits water into its elements at inert electrodes.",
		},
		{
			ID: "H-notable-001", Name: "Oxyhydrogen combustion",
			Equation:      "2 H2 + O2 -> 2 H2O",
			EquationLaTeX: `2\,H_2 + O_2 \rightarrow 2\,H_2O`,
			Type:          chem.ReactionCombustion, Category: chem.ReactionNotable,
			ElementsInvolved: []string{"H", "O"},
			Reactants: []chem.Species{
				{Formula: "H2", Moles: 2, State: "g"},
				{Formula: "O2", Moles: 1, State: "g"},
			},
			Products:       []chem.Species{{Formula: "H2O", Moles: 2, State: "g"}},
			Thermodynamics: chem.Thermodynamics{DeltaHKJ: fptr(-571.6), Exothermic: bptr(true)},
			Conditions:     chem.Conditions{Other: "spark ignition"},
			Description:    "Violently exothermic; the Hindenburg fire and rocket main engines alike.",
		},
		{
			ID: "N-environmental-001", Name: "Nitric oxide formation in lightning",
			Equation:      "N2 + O2 -> 2 NO",
			EquationLaTeX: `N_2 + O_2 \rightarrow 2\,NO`,
			Type:          chem.ReactionSynthesis, Category: chem.ReactionEnvironmental,
			ElementsInvolved: []string{"N", "O"},
			Reactants: []chem.Species{
				{Formula: "N2", Moles: 1, State: "g"},
				{Formula: "O2", Moles: 1, State: "g"},
			},
			Products:       []chem.Species{{Formula: "NO", Moles: 2, State: "g"}},
			Thermodynamics: chem.Thermodynamics{DeltaHKJ: fptr(180.5), Exothermic: bptr(false)},
			Conditions:     chem.Conditions{TemperatureK: fptr(3000), Other: "lightning discharge"},
			Description:    "High-temperature nitrogen fixation in the atmosphere, a natural NOx source.",
		},
		{
			ID: "O-biological-001", Name: "Aerobic respiration of glucose",
			Equation:      "C6H12O6 + 6 O2 -> 6 CO2 + 6 H2O",
			EquationLaTeX: `C_6H_{12}O_6 + 6\,O_2 \rightarrow 6\,CO_2 + 6\,H_2O`,
			Type:          chem.ReactionCombustion, Category: chem.ReactionBiological,
			ElementsInvolved: []string{"C", "H", "O"},
			Reactants: []chem.Species{
				{Formula: "C6H12O6", Moles: 1, State: "aq"},
				{Formula: "O2", Moles: 6, State: "g"},
			},
			Products: []chem.Species{
				{Formula: "CO2", Moles: 6, State: "g"},
				{Formula: "H2O", Moles: 6, State: "l"},
			},
			Thermodynamics: chem.Thermodynamics{DeltaHKJ: fptr(-2808), DeltaGKJ: fptr(-2870), Exothermic: bptr(true)},
			Conditions:     chem.Conditions{TemperatureK: fptr(310), Catalyst: "enzyme cascade"},
			Description:    "The net energy-yielding oxidation that powers aerobic life.",
		},
		{
			ID: "W-industrial-001", Name: "Hydrogen reduction of tungsten trioxide",
			Equation:      "WO3 + 3 H2 -> W + 3 H2O",
			EquationLaTeX: `WO_3 + 3\,H_2 \rightarrow W + 3\,H_2O`,
			Type:          chem.ReactionRedox, Category: chem.ReactionIndustrial,
			ElementsInvolved: []string{"W", "H", "O"},
			Reactants: []chem.Species{
				{Formula: "WO3", Moles: 1, State: "s"},
				{Formula: "H2", Moles: 3, State: "g"},
			},
			Products: []chem.Species{
				{Formula: "W", Moles: 1, State: "s"},
				{Formula: "H2O", Moles: 3, State: "g"},
			},
			Thermodynamics: chem.Thermodynamics{DeltaHKJ: fptr(-84.5), Exothermic: bptr(true)},
			Conditions:     chem.Conditions{TemperatureK: fptr(1123)},
			Description:    "Produces tungsten metal powder for sintering into filaments and tooling.",
		},
	}
}

// WriteCorpus writes the fixture corpus into a temp directory using the
// on-disk layout (elements/NNN-name.json, reactions/<category>.json) and
// returns the data root.
func WriteCorpus(t testing.TB) string {
	t.Helper()

	root := t.TempDir()
	WriteCorpusTo(t, root)
	return root
}

// WriteCorpusTo writes the fixture corpus under an existing root.
func WriteCorpusTo(t testing.TB, root string) {
	t.Helper()

	elemDir := filepath.Join(root, "elements")
	rxnDir := filepath.Join(root, "reactions")
	for _, dir := range []string{elemDir, rxnDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	for _, e := range Elements() {
		name := fmt.Sprintf("%03d-%s.json", e.AtomicNumber, strings.ToLower(e.Name))
		writeJSON(t, filepath.Join(elemDir, name), e)
	}

	byCategory := map[chem.ReactionCategory][]chem.Reaction{}
	for _, r := range Reactions() {
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}
	for cat, rxns := range byCategory {
		path := filepath.Join(rxnDir, string(cat)+".json")
		// Exercise both accepted file shapes: bare arrays and the
		// {"reactions": [...]} wrapper.
		if cat == chem.ReactionIndustrial {
			writeJSON(t, path, map[string]any{"reactions": rxns})
			continue
		}
		writeJSON(t, path, rxns)
	}
}

func writeJSON(t testing.TB, path string, v any) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
