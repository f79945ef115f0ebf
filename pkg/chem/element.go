package chem

// Category is the chemical classification of an element.
type Category string

// Element categories.
const (
	CategoryAlkaliMetal        Category = "alkali_metal"
	CategoryAlkalineEarthMetal Category = "alkaline_earth_metal"
	CategoryTransitionMetal    Category = "transition_metal"
	CategoryPostTransition     Category = "post_transition_metal"
	CategoryMetalloid          Category = "metalloid"
	CategoryNonmetal           Category = "nonmetal"
	CategoryHalogen            Category = "halogen"
	CategoryNobleGas           Category = "noble_gas"
	CategoryLanthanide         Category = "lanthanide"
	CategoryActinide           Category = "actinide"
)

// Categories lists all valid element categories in display order.
var Categories = []Category{
	CategoryAlkaliMetal,
	CategoryAlkalineEarthMetal,
	CategoryTransitionMetal,
	CategoryPostTransition,
	CategoryMetalloid,
	CategoryNonmetal,
	CategoryHalogen,
	CategoryNobleGas,
	CategoryLanthanide,
	CategoryActinide,
}

// Phase is the state of matter at standard temperature and pressure.
type Phase string

// Phases at STP.
const (
	PhaseSolid   Phase = "solid"
	PhaseLiquid  Phase = "liquid"
	PhaseGas     Phase = "gas"
	PhaseUnknown Phase = "unknown"
)

// Element is a single element record as stored in the corpus.
// Pointer fields are nullable: a nil value means the property is not
// recorded, which is distinct from zero.
type Element struct {
	// AtomicNumber is the record identifier (Z).
	AtomicNumber int `json:"atomic_number" validate:"gte=1,lte=118"`
	// Symbol is the one- or two-letter element symbol, unique in the corpus.
	Symbol string `json:"symbol" validate:"required,elemsymbol"`
	// Name is the English element name, unique case-insensitively.
	Name string `json:"name" validate:"required"`
	// AtomicMassU is the standard atomic weight in unified mass units.
	AtomicMassU float64 `json:"atomic_mass_u" validate:"gt=0"`

	Classification Classification  `json:"classification"`
	Structure      AtomicStructure `json:"atomic_structure"`
	Physical       Physical        `json:"physical_properties"`
	Nuclear        Nuclear         `json:"nuclear_properties"`
	Discovery      Discovery       `json:"discovery"`

	// Applications are free-text usage notes.
	Applications []string `json:"applications,omitempty"`
	// Reactions are denormalized back-references to reactions that
	// involve this element.
	Reactions []ReactionRef `json:"reactions,omitempty" validate:"omitempty,dive"`
}

// Classification places an element on the periodic table.
type Classification struct {
	Category Category `json:"category" validate:"required,elemcategory"`
	// Group is 1-18, or nil for lanthanides/actinides.
	Group  *int   `json:"group" validate:"omitempty,gte=1,lte=18"`
	Period int    `json:"period" validate:"gte=1,lte=7"`
	Block  string `json:"block" validate:"required,oneof=s p d f"`
	// NaturalOccurrence is primordial, decay, or synthetic.
	NaturalOccurrence string `json:"natural_occurrence" validate:"omitempty,oneof=primordial decay synthetic"`
}

// AtomicStructure holds electron-level properties.
type AtomicStructure struct {
	ElectronConfiguration string    `json:"electron_configuration" validate:"required"`
	ElectronShells        []int     `json:"electron_shells,omitempty" validate:"omitempty,dive,gte=1"`
	ValenceElectrons      *int      `json:"valence_electrons" validate:"omitempty,gte=0,lte=18"`
	OxidationStates       []int     `json:"oxidation_states,omitempty"`
	Electronegativity     *float64  `json:"electronegativity_pauling" validate:"omitempty,gt=0,lte=4"`
	IonizationEnergies    []float64 `json:"ionization_energies_kj_mol,omitempty" validate:"omitempty,dive,gt=0"`
	ElectronAffinity      *float64  `json:"electron_affinity_kj_mol"`
	AtomicRadiusPM        *float64  `json:"atomic_radius_pm" validate:"omitempty,gt=0"`
	CovalentRadiusPM      *float64  `json:"covalent_radius_pm" validate:"omitempty,gt=0"`
}

// Physical holds bulk physical properties.
type Physical struct {
	PhaseAtSTP          Phase    `json:"phase_at_stp" validate:"required,phase"`
	MeltingPointK       *float64 `json:"melting_point_k" validate:"omitempty,gt=0"`
	BoilingPointK       *float64 `json:"boiling_point_k" validate:"omitempty,gt=0"`
	DensityKgM3         *float64 `json:"density_kg_m3" validate:"omitempty,gt=0"`
	MolarHeatCapacity   *float64 `json:"molar_heat_capacity_j_mol_k" validate:"omitempty,gt=0"`
	CrystalStructure    string   `json:"crystal_structure,omitempty"`
	MagneticOrdering    string   `json:"magnetic_ordering,omitempty"`
	ThermalConductivity *float64 `json:"thermal_conductivity_w_m_k" validate:"omitempty,gt=0"`
	HeatOfFusion        *float64 `json:"heat_of_fusion_kj_mol" validate:"omitempty,gt=0"`
	HeatOfVaporization  *float64 `json:"heat_of_vaporization_kj_mol" validate:"omitempty,gt=0"`
}

// Nuclear holds stability and isotope data.
type Nuclear struct {
	Radioactive bool `json:"radioactive"`
	// HalfLife is a human-readable duration of the most stable isotope,
	// empty for stable elements.
	HalfLife       string    `json:"half_life,omitempty"`
	DecayMode      string    `json:"decay_mode,omitempty"`
	StableIsotopes []string  `json:"stable_isotopes,omitempty"`
	Isotopes       []Isotope `json:"isotopes,omitempty" validate:"omitempty,dive"`
}

// Isotope is a single isotope entry.
type Isotope struct {
	MassNumber int `json:"mass_number" validate:"gte=1"`
	// AbundancePercent is the natural abundance, nil for synthetic isotopes.
	AbundancePercent *float64 `json:"abundance_percent" validate:"omitempty,gte=0,lte=100"`
	Stable           bool     `json:"stable"`
	HalfLife         string   `json:"half_life,omitempty"`
}

// Discovery records the discovery history of an element.
type Discovery struct {
	// Year is the discovery year; negative values are BCE. Nil means
	// known since antiquity with no recorded year.
	Year        *int     `json:"year"`
	Discoverers []string `json:"discoverers,omitempty"`
	NameOrigin  string   `json:"name_origin,omitempty"`
}

// ReactionRef is a denormalized summary of a reaction, embedded in
// element records so an element file is self-describing. The curation
// pipeline collapses the reaction's conditions into one human-readable
// string when injecting these.
type ReactionRef struct {
	ID          string           `json:"id" validate:"required"`
	Name        string           `json:"name"`
	Equation    string           `json:"equation"`
	Type        ReactionType     `json:"type,omitempty"`
	Category    ReactionCategory `json:"category"`
	DeltaHKJ    *float64         `json:"delta_h_kj,omitempty"`
	Conditions  string           `json:"conditions,omitempty"`
	Description string           `json:"description,omitempty"`
	Reversible  bool             `json:"reversible,omitempty"`
}

// FirstIonizationEnergy returns the first ionization energy in kJ/mol.
func (e *Element) FirstIonizationEnergy() (float64, bool) {
	if len(e.Structure.IonizationEnergies) == 0 {
		return 0, false
	}
	return e.Structure.IonizationEnergies[0], true
}

// StableIsotopeCount returns the number of stable isotopes. It prefers
// the detailed isotope list and falls back to the legacy name list.
func (e *Element) StableIsotopeCount() int {
	if len(e.Nuclear.Isotopes) > 0 {
		n := 0
		for _, iso := range e.Nuclear.Isotopes {
			if iso.Stable {
				n++
			}
		}
		return n
	}
	return len(e.Nuclear.StableIsotopes)
}
