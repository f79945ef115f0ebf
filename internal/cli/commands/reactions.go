package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/periodica-labs/periodica/internal/cli/output"
	"github.com/periodica-labs/periodica/internal/query"
	"github.com/periodica-labs/periodica/pkg/chem"
)

// ReactionsOptions holds options for the reactions command.
type ReactionsOptions struct {
	Element  string
	Category string
	Type     string
}

// NewReactionsCommand creates the reactions command.
func NewReactionsCommand() *cobra.Command {
	opts := &ReactionsOptions{}

	cmd := &cobra.Command{
		Use:   "reactions [id]",
		Short: "List reactions, or show one by ID",
		Long: `List the documented reactions, optionally narrowed by element,
category, or type. With an ID argument, show that single reaction in
full.

Categories are a fixed set (industrial, laboratory, biological,
environmental, notable). Types are open-ended labels matched
case-insensitively; an unknown type simply matches nothing.`,
		Example: `  # Everything involving iron
  periodica reactions --element Fe

  # Industrial synthesis reactions
  periodica reactions --category industrial --type synthesis

  # One reaction in full
  periodica reactions H-industrial-001`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runReactionDetail(cmd, args[0])
			}
			return runReactions(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Element, "element", "", "Only reactions involving this element")
	cmd.Flags().StringVar(&opts.Category, "category", "", "Filter by reaction category")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Filter by reaction type")

	return cmd
}

func runReactions(cmd *cobra.Command, opts *ReactionsOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	filter := query.ReactionFilter{Category: opts.Category, Type: opts.Type}

	var rxns []chem.Reaction
	if opts.Element != "" {
		rxns, err = cc.Engine.ReactionsFor(opts.Element, filter)
	} else {
		rxns, err = cc.Engine.Reactions(filter)
	}
	if err != nil {
		return err
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		if rxns == nil {
			rxns = []chem.Reaction{}
		}
		return r.JSON(rxns)
	}

	header := []string{"ID", "Name", "Equation", "Category", "Type", "ΔH (kJ)"}
	rows := make([][]string, 0, len(rxns))
	for i := range rxns {
		rx := &rxns[i]
		rows = append(rows, []string{
			rx.ID,
			rx.Name,
			rx.Equation,
			string(rx.Category),
			string(rx.Type),
			output.FormatValue(rx.Thermodynamics.DeltaHKJ),
		})
	}
	renderRows(r, header, rows)
	if r.EffectiveMode() == output.ModeText {
		r.Printf("(%d reactions)\n", len(rxns))
	}
	return nil
}

func runReactionDetail(cmd *cobra.Command, id string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	rx, err := cc.Engine.Reaction(id)
	if err != nil {
		return err
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rx)
	}

	renderReactionSheet(r, &rx)
	return nil
}

func renderReactionSheet(r *output.Renderer, rx *chem.Reaction) {
	md := r.EffectiveMode() == output.ModeMarkdown

	kv := func(label, value string) {
		// Absent values are omitted rather than dashed; a single
		// record reads better without placeholder rows.
		if value == "" || value == "—" {
			return
		}
		if md {
			r.Println(output.FormatKeyValue(label, value))
		} else {
			r.Printf("  %-16s %s\n", label, value)
		}
	}

	r.Header(1, rx.Name)
	kv("ID", rx.ID)
	kv("Equation", rx.Equation)
	kv("Category", string(rx.Category))
	kv("Type", string(rx.Type))
	kv("Elements", strings.Join(rx.ElementsInvolved, ", "))

	th := rx.Thermodynamics
	kv("ΔH", output.FormatValueUnit(th.DeltaHKJ, "kJ"))
	kv("ΔG", output.FormatValueUnit(th.DeltaGKJ, "kJ"))
	kv("ΔS", output.FormatValueUnit(th.DeltaSJK, "J/K"))
	if th.Exothermic != nil {
		if *th.Exothermic {
			kv("Energetics", "exothermic")
		} else {
			kv("Energetics", "endothermic")
		}
	}

	cond := rx.Conditions
	var parts []string
	if cond.TemperatureK != nil {
		parts = append(parts, output.FormatValueUnit(cond.TemperatureK, "K"))
	}
	if cond.PressureAtm != nil {
		parts = append(parts, output.FormatValueUnit(cond.PressureAtm, "atm"))
	}
	if cond.Catalyst != "" {
		parts = append(parts, fmt.Sprintf("catalyst: %s", cond.Catalyst))
	}
	if cond.Other != "" {
		parts = append(parts, cond.Other)
	}
	kv("Conditions", strings.Join(parts, "; "))

	if rx.Reversible {
		kv("Reversible", "yes")
	}
	kv("Description", rx.Description)
}
