package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/periodica-labs/periodica/internal/cli/output"
	"github.com/periodica-labs/periodica/pkg/chem"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new periodica project",
		Long: `Initialize a periodica project with the default layout and a starter
corpus.

This creates:
  - periodica.yaml configuration file
  - data/elements/ with sample element records
  - data/reactions/ with a sample reaction file

The samples pass 'periodica validate' as written, so they double as a
reference for the record schema.`,
		Example: `  # Initialize in the current directory
  periodica init

  # Initialize in a new directory
  periodica init my-corpus

  # Overwrite an existing configuration
  periodica init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			mode := output.Mode(cfg.OutputFormat)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

// scaffoldConfig is the periodica.yaml written by init. Field names
// match the koanf keys the loader reads back.
type scaffoldConfig struct {
	DataDir     string `yaml:"data_dir"`
	CatalogPath string `yaml:"catalog_path"`
	Output      string `yaml:"output"`
	Server      struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Export struct {
		Target string `yaml:"target"`
		DSN    string `yaml:"dsn"`
		Schema string `yaml:"schema"`
	} `yaml:"export"`
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "periodica.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("periodica.yaml already exists. Use --force to overwrite")
	}

	created, err := writeScaffold(dir)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	for _, f := range created {
		r.Printf("  created %s\n", f)
	}

	r.Println("")
	r.Success("Periodica project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Add element records to data/elements/")
	r.Println("  2. Run 'periodica validate' to check the corpus")
	r.Println("  3. Run 'periodica index' to build artifacts and the catalog")
	r.Println("  4. Run 'periodica element H' to look up a record")

	return nil
}

// writeScaffold writes the config and starter corpus, returning the
// paths it created relative to dir.
func writeScaffold(dir string) ([]string, error) {
	var created []string

	cfg := scaffoldConfig{
		DataDir:     "data",
		CatalogPath: ".periodica/catalog.db",
		Output:      "auto",
	}
	cfg.Server.Port = 8080
	cfg.Export.Target = "duckdb"
	cfg.Export.DSN = "periodica.duckdb"
	cfg.Export.Schema = "chem"

	var buf bytes.Buffer
	buf.WriteString("# periodica project configuration\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, "periodica.yaml"), buf.Bytes(), 0o644); err != nil {
		return nil, err
	}
	created = append(created, "periodica.yaml")

	for _, sub := range []string{"data/elements", "data/reactions"} {
		if err := os.MkdirAll(filepath.Join(dir, filepath.FromSlash(sub)), 0o750); err != nil {
			return nil, err
		}
	}

	files := []struct {
		path string
		data any
	}{
		{"data/elements/001-hydrogen.json", sampleHydrogen()},
		{"data/elements/008-oxygen.json", sampleOxygen()},
		{"data/reactions/notable.json", sampleReactions()},
	}
	for _, f := range files {
		if err := writeScaffoldJSON(filepath.Join(dir, filepath.FromSlash(f.path)), f.data); err != nil {
			return nil, err
		}
		created = append(created, f.path)
	}

	return created, nil
}

func writeScaffoldJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func sampleHydrogen() chem.Element {
	fp := func(v float64) *float64 { return &v }
	ip := func(v int) *int { return &v }

	return chem.Element{
		AtomicNumber: 1,
		Symbol:       "H",
		Name:         "Hydrogen",
		AtomicMassU:  1.008,
		Classification: chem.Classification{
			Category:          chem.CategoryNonmetal,
			Group:             ip(1),
			Period:            1,
			Block:             "s",
			NaturalOccurrence: "primordial",
		},
		Structure: chem.AtomicStructure{
			ElectronConfiguration: "1s1",
			ElectronShells:        []int{1},
			ValenceElectrons:      ip(1),
			OxidationStates:       []int{-1, 1},
			Electronegativity:     fp(2.2),
			IonizationEnergies:    []float64{1312.0},
			ElectronAffinity:      fp(72.8),
			AtomicRadiusPM:        fp(53),
			CovalentRadiusPM:      fp(31),
		},
		Physical: chem.Physical{
			PhaseAtSTP:          chem.PhaseGas,
			MeltingPointK:       fp(13.99),
			BoilingPointK:       fp(20.271),
			DensityKgM3:         fp(0.08988),
			MolarHeatCapacity:   fp(28.836),
			ThermalConductivity: fp(0.1805),
		},
		Nuclear: chem.Nuclear{
			Radioactive:    false,
			StableIsotopes: []string{"1H", "2H"},
		},
		Discovery: chem.Discovery{
			Year:        ip(1766),
			Discoverers: []string{"Henry Cavendish"},
			NameOrigin:  "Greek: hydro and genes, water-forming",
		},
		Applications: []string{"Ammonia synthesis", "Rocket fuel", "Hydrogenation of fats"},
		Reactions: []chem.ReactionRef{
			{
				ID:         "H-notable-001",
				Name:       "Formation of water",
				Equation:   "2H2 + O2 -> 2H2O",
				Type:       chem.ReactionCombustion,
				Category:   chem.ReactionNotable,
				DeltaHKJ:   fp(-571.6),
				Conditions: "spark ignition",
			},
		},
	}
}

func sampleOxygen() chem.Element {
	fp := func(v float64) *float64 { return &v }
	ip := func(v int) *int { return &v }

	return chem.Element{
		AtomicNumber: 8,
		Symbol:       "O",
		Name:         "Oxygen",
		AtomicMassU:  15.999,
		Classification: chem.Classification{
			Category:          chem.CategoryNonmetal,
			Group:             ip(16),
			Period:            2,
			Block:             "p",
			NaturalOccurrence: "primordial",
		},
		Structure: chem.AtomicStructure{
			ElectronConfiguration: "1s2 2s2 2p4",
			ElectronShells:        []int{2, 6},
			ValenceElectrons:      ip(6),
			OxidationStates:       []int{-2},
			Electronegativity:     fp(3.44),
			IonizationEnergies:    []float64{1313.9},
			ElectronAffinity:      fp(141),
			AtomicRadiusPM:        fp(48),
			CovalentRadiusPM:      fp(66),
		},
		Physical: chem.Physical{
			PhaseAtSTP:          chem.PhaseGas,
			MeltingPointK:       fp(54.36),
			BoilingPointK:       fp(90.188),
			DensityKgM3:         fp(1.429),
			ThermalConductivity: fp(0.02658),
		},
		Nuclear: chem.Nuclear{
			Radioactive:    false,
			StableIsotopes: []string{"16O", "17O", "18O"},
		},
		Discovery: chem.Discovery{
			Year:        ip(1774),
			Discoverers: []string{"Carl Wilhelm Scheele", "Joseph Priestley"},
			NameOrigin:  "Greek: oxys and genes, acid-forming",
		},
		Applications: []string{"Steelmaking", "Medical oxygen", "Water treatment"},
	}
}

func sampleReactions() map[string][]chem.Reaction {
	fp := func(v float64) *float64 { return &v }
	bp := func(v bool) *bool { return &v }

	return map[string][]chem.Reaction{
		"reactions": {
			{
				ID:               "H-notable-001",
				Name:             "Formation of water",
				Equation:         "2H2 + O2 -> 2H2O",
				Type:             chem.ReactionCombustion,
				Category:         chem.ReactionNotable,
				ElementsInvolved: []string{"H", "O"},
				Reactants: []chem.Species{
					{Formula: "H2", Moles: 2, State: "g"},
					{Formula: "O2", Moles: 1, State: "g"},
				},
				Products: []chem.Species{
					{Formula: "H2O", Moles: 2, State: "l"},
				},
				Thermodynamics: chem.Thermodynamics{
					DeltaHKJ:   fp(-571.6),
					Exothermic: bp(true),
				},
				Conditions: chem.Conditions{
					Other: "spark ignition",
				},
				Description: "Hydrogen burns in oxygen to give liquid water.",
			},
		},
	}
}
