package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/periodica-labs/periodica/internal/cli/output"
	"github.com/periodica-labs/periodica/internal/query"
	"github.com/periodica-labs/periodica/pkg/chem"
)

// SearchOptions holds options for the search command.
type SearchOptions struct {
	Where       []string
	Category    string
	Phase       string
	Block       string
	Radioactive bool
	Sort        string
	Desc        bool
	Limit       int
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	opts := &SearchOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Filter and list elements",
		Long: `List elements matching a set of predicates.

Predicates use the field:op:value grammar, where op is equals,
greaterThan, lessThan, or contains (short forms: eq, gt, lt). Multiple
predicates are combined with AND. Elements missing a numeric property
never match a numeric comparison.

Convenience flags like --category compile to the same predicates.`,
		Example: `  # All transition metals
  periodica search --category transition_metal

  # Refractory metals, heaviest first
  periodica search --where melting_point:gt:2000 --sort melting_point --desc

  # Radioactive gases, if any
  periodica search --radioactive --phase gas

  # Elements used in steel
  periodica search --where applications:contains:steel`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Where, "where", "w", nil, "Predicate field:op:value (repeatable)")
	cmd.Flags().StringVar(&opts.Category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&opts.Phase, "phase", "", "Filter by phase at STP")
	cmd.Flags().StringVar(&opts.Block, "block", "", "Filter by block (s, p, d, f)")
	cmd.Flags().BoolVar(&opts.Radioactive, "radioactive", false, "Filter by radioactivity")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort by field")
	cmd.Flags().BoolVar(&opts.Desc, "desc", false, "Sort descending")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Limit the number of results (0 = all)")

	return cmd
}

func runSearch(cmd *cobra.Command, opts *SearchOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	preds, err := buildPredicates(cmd, opts)
	if err != nil {
		return err
	}

	matches, err := cc.Engine.Filter(preds)
	if err != nil {
		return err
	}

	if opts.Sort != "" {
		if err := query.Sort(matches, opts.Sort, opts.Desc); err != nil {
			return err
		}
	} else if opts.Desc {
		return &chem.InvalidQueryError{Part: "desc", Reason: "requires --sort"}
	}

	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(matches)
	}

	renderElementTable(r, matches, extraFields(preds, opts.Sort))
	if r.EffectiveMode() == output.ModeText {
		r.Printf("(%d elements)\n", len(matches))
	}
	return nil
}

func buildPredicates(cmd *cobra.Command, opts *SearchOptions) ([]query.Predicate, error) {
	var preds []query.Predicate

	for _, w := range opts.Where {
		p, err := query.ParsePredicate(w)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}

	if opts.Category != "" {
		preds = append(preds, query.Predicate{Field: "category", Op: query.OpEquals, Value: opts.Category})
	}
	if opts.Phase != "" {
		preds = append(preds, query.Predicate{Field: "phase", Op: query.OpEquals, Value: opts.Phase})
	}
	if opts.Block != "" {
		preds = append(preds, query.Predicate{Field: "block", Op: query.OpEquals, Value: opts.Block})
	}
	// Only filter on radioactivity when the flag was given, so plain
	// "search" still lists everything.
	if cmd.Flags().Changed("radioactive") {
		preds = append(preds, query.Predicate{Field: "radioactive", Op: query.OpEquals, Value: strconv.FormatBool(opts.Radioactive)})
	}

	return preds, nil
}

// baseColumns are always shown; fields referenced by --where or --sort
// get appended as extra columns so the values being filtered on are
// visible in the result.
var baseColumns = map[string]bool{
	"atomic_number": true,
	"symbol":        true,
	"name":          true,
	"category":      true,
	"phase":         true,
}

func extraFields(preds []query.Predicate, sortField string) []chem.Field {
	var names []string
	seen := map[string]bool{}
	for _, p := range preds {
		if !baseColumns[p.Field] && !seen[p.Field] {
			names = append(names, p.Field)
			seen[p.Field] = true
		}
	}
	if sortField != "" && !baseColumns[sortField] && !seen[sortField] {
		names = append(names, sortField)
	}

	var fields []chem.Field
	for _, name := range names {
		if f, ok := chem.FieldByName(name); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

func renderElementTable(r *output.Renderer, elements []chem.Element, extras []chem.Field) {
	header := []string{"Z", "Symbol", "Name", "Category", "Phase"}
	for _, f := range extras {
		label := f.Name
		if f.Unit != "" {
			label += " (" + f.Unit + ")"
		}
		header = append(header, label)
	}

	rows := make([][]string, 0, len(elements))
	for i := range elements {
		e := &elements[i]
		row := []string{
			strconv.Itoa(e.AtomicNumber),
			e.Symbol,
			e.Name,
			string(e.Classification.Category),
			string(e.Physical.PhaseAtSTP),
		}
		for _, f := range extras {
			row = append(row, fieldCell(f, e))
		}
		rows = append(rows, row)
	}

	renderRows(r, header, rows)
}

// fieldCell renders one registry field of one element for table output.
func fieldCell(f chem.Field, e *chem.Element) string {
	switch f.Kind {
	case chem.FieldNumeric:
		v, ok := f.Number(e)
		if !ok {
			return output.FormatValue(nil)
		}
		return output.FormatValue(v)
	case chem.FieldBool:
		return strconv.FormatBool(f.Flag(e))
	case chem.FieldStringList:
		return strings.Join(f.List(e), ", ")
	default:
		return output.FormatValue(f.Text(e))
	}
}
