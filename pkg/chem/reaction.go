package chem

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ReactionCategory groups reactions by where they matter.
type ReactionCategory string

// Reaction categories.
const (
	ReactionIndustrial    ReactionCategory = "industrial"
	ReactionLaboratory    ReactionCategory = "laboratory"
	ReactionBiological    ReactionCategory = "biological"
	ReactionEnvironmental ReactionCategory = "environmental"
	ReactionNotable       ReactionCategory = "notable"
)

// ReactionCategories lists all valid reaction categories.
var ReactionCategories = []ReactionCategory{
	ReactionIndustrial,
	ReactionLaboratory,
	ReactionBiological,
	ReactionEnvironmental,
	ReactionNotable,
}

// ParseReactionCategory converts a string to a ReactionCategory.
// Returns the category and true if valid.
func ParseReactionCategory(s string) (ReactionCategory, bool) {
	c := ReactionCategory(strings.ToLower(s))
	for _, known := range ReactionCategories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// ReactionType is the mechanistic classification of a reaction. Unlike
// categories, types are open-ended: the corpus records whatever label
// the literature uses ("reforming", "roasting", "phase change").
type ReactionType string

// Common reaction types. Not exhaustive.
const (
	ReactionSynthesis     ReactionType = "synthesis"
	ReactionDecomposition ReactionType = "decomposition"
	ReactionCombustion    ReactionType = "combustion"
	ReactionRedox         ReactionType = "redox"
	ReactionReduction     ReactionType = "reduction"
	ReactionOxidation     ReactionType = "oxidation"
	ReactionElectrolysis  ReactionType = "electrolysis"
	ReactionPrecipitation ReactionType = "precipitation"
)

// Matches reports whether the type equals s, ignoring case.
func (t ReactionType) Matches(s string) bool {
	return strings.EqualFold(string(t), s)
}

// Reaction is a single reaction record as stored in the corpus.
type Reaction struct {
	// ID is unique across the corpus, shaped <Symbol>-<category>-<NNN>.
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Equation string `json:"equation" validate:"required"`
	// EquationLaTeX is the typeset form of the equation.
	EquationLaTeX string           `json:"equation_latex,omitempty"`
	Type          ReactionType     `json:"type" validate:"required"`
	Category      ReactionCategory `json:"category" validate:"required,rxncategory"`
	// ElementsInvolved are the symbols of every element taking part.
	ElementsInvolved []string `json:"elements_involved" validate:"min=1,dive,elemsymbol"`

	Reactants []Species `json:"reactants,omitempty" validate:"min=1,dive"`
	Products  []Species `json:"products,omitempty" validate:"min=1,dive"`

	Thermodynamics Thermodynamics `json:"thermodynamics"`
	Conditions     Conditions     `json:"conditions"`

	Reversible  bool   `json:"reversible"`
	Description string `json:"description,omitempty"`
}

// Species is one participant of a reaction equation.
type Species struct {
	Formula string  `json:"formula" validate:"required"`
	Moles   float64 `json:"moles" validate:"gt=0"`
	// State is s, l, g, or aq.
	State string `json:"state" validate:"omitempty,oneof=s l g aq"`
}

// Thermodynamics holds standard-condition reaction energetics.
type Thermodynamics struct {
	DeltaHKJ   *float64 `json:"delta_h_kj"`
	DeltaGKJ   *float64 `json:"delta_g_kj"`
	DeltaSJK   *float64 `json:"delta_s_j_k"`
	Exothermic *bool    `json:"exothermic"`
}

// Conditions holds the practical conditions a reaction runs under.
type Conditions struct {
	TemperatureK *float64 `json:"temperature_k" validate:"omitempty,gt=0"`
	PressureAtm  *float64 `json:"pressure_atm" validate:"omitempty,gt=0"`
	Catalyst     string   `json:"catalyst,omitempty"`
	Other        string   `json:"other,omitempty"`
}

// Involves reports whether the reaction involves the element with the
// given symbol. Matching is case-insensitive.
func (r *Reaction) Involves(symbol string) bool {
	for _, s := range r.ElementsInvolved {
		if strings.EqualFold(s, symbol) {
			return true
		}
	}
	return false
}

// DecodeReactions accepts the two shapes a reaction file may take: a
// bare array of reactions, or an object wrapping one under "reactions".
func DecodeReactions(data []byte) ([]Reaction, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	if trimmed[0] == '[' {
		var rxns []Reaction
		if err := json.Unmarshal(data, &rxns); err != nil {
			return nil, err
		}
		return rxns, nil
	}

	var wrapper struct {
		Reactions []Reaction `json:"reactions"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}
	if wrapper.Reactions == nil {
		return nil, fmt.Errorf("object form must carry a \"reactions\" array")
	}
	return wrapper.Reactions, nil
}
