package explore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/periodica-labs/periodica/pkg/chem"
)

// renderElement lays out the property sheet shown in the detail pane:
// classification, atomic structure, physical properties, nuclear data,
// discovery, applications, and the element's reactions.
func renderElement(e *chem.Element, st styles) string {
	var b strings.Builder
	row := func(label, value string) {
		if value == "" {
			value = "N/A"
		}
		b.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	section := func(name string) {
		b.WriteString("\n" + st.header.Render(name) + "\n")
	}

	b.WriteString(st.header.Render(fmt.Sprintf("%s (%s)", e.Name, e.Symbol)))
	b.WriteString(st.muted.Render(fmt.Sprintf("  element %d", e.AtomicNumber)) + "\n")
	row("Atomic mass", formatFloat(e.AtomicMassU)+" u")

	section("Classification")
	row("Category", string(e.Classification.Category))
	row("Group", optInt(e.Classification.Group, ""))
	row("Period", strconv.Itoa(e.Classification.Period))
	row("Block", e.Classification.Block)
	row("Occurrence", e.Classification.NaturalOccurrence)

	a := e.Structure
	section("Atomic structure")
	row("Electron config", a.ElectronConfiguration)
	row("Shells", joinInts(a.ElectronShells))
	row("Valence electrons", optInt(a.ValenceElectrons, ""))
	row("Oxidation states", joinInts(a.OxidationStates))
	row("Electronegativity", optFloat(a.Electronegativity, " (Pauling)"))
	if v, ok := e.FirstIonizationEnergy(); ok {
		row("1st ionization", formatFloat(v)+" kJ/mol")
	}
	row("Electron affinity", optFloat(a.ElectronAffinity, " kJ/mol"))
	row("Atomic radius", optFloat(a.AtomicRadiusPM, " pm"))
	row("Covalent radius", optFloat(a.CovalentRadiusPM, " pm"))

	p := e.Physical
	section("Physical properties")
	row("Phase at STP", string(p.PhaseAtSTP))
	row("Melting point", optFloat(p.MeltingPointK, " K"))
	row("Boiling point", optFloat(p.BoilingPointK, " K"))
	row("Density", optFloat(p.DensityKgM3, " kg/m3"))
	row("Molar heat capacity", optFloat(p.MolarHeatCapacity, " J/(mol·K)"))
	row("Crystal structure", p.CrystalStructure)
	row("Magnetic ordering", p.MagneticOrdering)
	row("Thermal conductivity", optFloat(p.ThermalConductivity, " W/(m·K)"))

	n := e.Nuclear
	section("Nuclear")
	if n.Radioactive {
		row("Radioactive", "yes")
		row("Half-life", n.HalfLife)
		row("Decay mode", n.DecayMode)
	} else {
		row("Radioactive", "no")
	}
	if len(n.StableIsotopes) > 0 {
		row("Stable isotopes", strings.Join(n.StableIsotopes, ", "))
	} else {
		row("Stable isotopes", "none")
	}

	d := e.Discovery
	section("Discovery")
	row("Year", optInt(d.Year, "ancient"))
	row("By", strings.Join(d.Discoverers, ", "))
	row("Name origin", d.NameOrigin)

	if len(e.Applications) > 0 {
		section(fmt.Sprintf("Applications (%d)", len(e.Applications)))
		for _, app := range e.Applications {
			b.WriteString("  • " + app + "\n")
		}
	}

	if len(e.Reactions) > 0 {
		section(fmt.Sprintf("Reactions (%d)", len(e.Reactions)))
		for _, r := range e.Reactions {
			b.WriteString(st.value.Render(fmt.Sprintf("  [%s] %s", r.Category, r.Name)) + "\n")
			b.WriteString(st.muted.Render("    "+r.Equation) + "\n")
			var extra []string
			if r.Conditions != "" {
				extra = append(extra, r.Conditions)
			}
			if r.DeltaHKJ != nil {
				extra = append(extra, "ΔH "+formatFloat(*r.DeltaHKJ)+" kJ")
			}
			if len(extra) > 0 {
				b.WriteString(st.muted.Render("    "+strings.Join(extra, " • ")) + "\n")
			}
		}
	}

	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optFloat(p *float64, unit string) string {
	if p == nil {
		return ""
	}
	return formatFloat(*p) + unit
}

// optInt renders a nullable int, falling back to the given text (or
// N/A when the fallback is empty too).
func optInt(p *int, fallback string) string {
	if p == nil {
		return fallback
	}
	return strconv.Itoa(*p)
}

func joinInts(vs []int) string {
	if len(vs) == 0 {
		return ""
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
