package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/periodica-labs/periodica/internal/cli/output"
	"github.com/periodica-labs/periodica/pkg/chem"
)

// NewElementCommand creates the element command.
func NewElementCommand() *cobra.Command {
	var rawJSON bool

	cmd := &cobra.Command{
		Use:   "element <identifier>",
		Short: "Show the full record for one element",
		Long: `Show everything the corpus knows about one element.

The identifier may be an atomic number, a symbol, or a name. Symbol
and name matching is case-insensitive.`,
		Example: `  # By symbol
  periodica element Fe

  # By atomic number or name
  periodica element 26
  periodica element iron

  # Raw JSON record
  periodica element Fe --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runElement(cmd, args[0], rawJSON)
		},
	}

	cmd.Flags().BoolVar(&rawJSON, "json", false, "Emit the raw JSON record")

	return cmd
}

func runElement(cmd *cobra.Command, identifier string, rawJSON bool) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	el, err := cc.Engine.FindByIdentifier(identifier)
	if err != nil {
		return err
	}

	r := cc.Renderer
	if rawJSON || r.EffectiveMode() == output.ModeJSON {
		return r.JSON(el)
	}

	renderElementSheet(r, &el)
	return nil
}

// renderElementSheet writes the element property sheet: classification,
// atomic structure, physical properties, nuclear data, discovery,
// applications, and reactions, in that order.
func renderElementSheet(r *output.Renderer, e *chem.Element) {
	md := r.EffectiveMode() == output.ModeMarkdown

	kv := func(label, value string) {
		if value == "" {
			value = "—"
		}
		if md {
			r.Println(output.FormatKeyValue(label, value))
		} else {
			r.Printf("  %-22s %s\n", label, value)
		}
	}
	section := func(name string) {
		if md {
			r.Println("")
		}
		r.Header(2, name)
	}
	bullet := func(text string) {
		if md {
			r.Println("- " + text)
		} else {
			r.Println("  • " + text)
		}
	}

	r.Header(1, fmt.Sprintf("%s (%s), element %d", e.Name, e.Symbol, e.AtomicNumber))
	kv("Atomic mass", output.FormatValueUnit(e.AtomicMassU, "u"))

	c := e.Classification
	section("Classification")
	kv("Category", string(c.Category))
	kv("Group", output.FormatValue(c.Group))
	kv("Period", strconv.Itoa(c.Period))
	kv("Block", c.Block)
	kv("Occurrence", c.NaturalOccurrence)

	a := e.Structure
	section("Atomic structure")
	kv("Electron config", a.ElectronConfiguration)
	kv("Shells", joinInts(a.ElectronShells))
	kv("Valence electrons", output.FormatValue(a.ValenceElectrons))
	kv("Oxidation states", joinInts(a.OxidationStates))
	kv("Electronegativity", output.FormatValueUnit(a.Electronegativity, "(Pauling)"))
	if v, ok := e.FirstIonizationEnergy(); ok {
		kv("1st ionization", output.FormatValueUnit(v, "kJ/mol"))
	} else {
		kv("1st ionization", "")
	}
	kv("Electron affinity", output.FormatValueUnit(a.ElectronAffinity, "kJ/mol"))
	kv("Atomic radius", output.FormatValueUnit(a.AtomicRadiusPM, "pm"))
	kv("Covalent radius", output.FormatValueUnit(a.CovalentRadiusPM, "pm"))

	p := e.Physical
	section("Physical properties")
	kv("Phase at STP", string(p.PhaseAtSTP))
	kv("Melting point", output.FormatValueUnit(p.MeltingPointK, "K"))
	kv("Boiling point", output.FormatValueUnit(p.BoilingPointK, "K"))
	kv("Density", output.FormatValueUnit(p.DensityKgM3, "kg/m³"))
	kv("Molar heat capacity", output.FormatValueUnit(p.MolarHeatCapacity, "J/(mol·K)"))
	kv("Crystal structure", p.CrystalStructure)
	kv("Magnetic ordering", p.MagneticOrdering)
	kv("Thermal conductivity", output.FormatValueUnit(p.ThermalConductivity, "W/(m·K)"))

	n := e.Nuclear
	section("Nuclear")
	if n.Radioactive {
		kv("Radioactive", "yes")
		kv("Half-life", n.HalfLife)
		kv("Decay mode", n.DecayMode)
	} else {
		kv("Radioactive", "no")
	}
	if len(n.StableIsotopes) > 0 {
		kv("Stable isotopes", strings.Join(n.StableIsotopes, ", "))
	} else {
		kv("Stable isotopes", "none")
	}

	d := e.Discovery
	section("Discovery")
	if d.Year != nil {
		kv("Year", strconv.Itoa(*d.Year))
	} else {
		// Elements known before recorded history have no year.
		kv("Year", "Ancient")
	}
	kv("By", strings.Join(d.Discoverers, ", "))
	kv("Name origin", d.NameOrigin)

	if len(e.Applications) > 0 {
		section(fmt.Sprintf("Applications (%d)", len(e.Applications)))
		for _, app := range e.Applications {
			bullet(app)
		}
	}

	if len(e.Reactions) > 0 {
		section(fmt.Sprintf("Reactions (%d)", len(e.Reactions)))
		for _, ref := range e.Reactions {
			bullet(fmt.Sprintf("[%s] %s", ref.Category, ref.Name))
			indent := "    "
			if md {
				indent = "  "
			}
			r.Println(indent + ref.Equation)
			var extra []string
			if ref.Conditions != "" {
				extra = append(extra, ref.Conditions)
			}
			if ref.DeltaHKJ != nil {
				extra = append(extra, "ΔH "+output.FormatValue(*ref.DeltaHKJ)+" kJ")
			}
			if len(extra) > 0 {
				r.Println(indent + strings.Join(extra, "; "))
			}
		}
	}
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
