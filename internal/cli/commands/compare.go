package commands

import (
	"github.com/spf13/cobra"

	"github.com/periodica-labs/periodica/internal/cli/output"
	"github.com/periodica-labs/periodica/internal/compare"
)

// NewCompareCommand creates the compare command.
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <element> <element> [element...]",
		Short: "Compare 2 to 5 elements side by side",
		Long: `Compare elements property by property, one column per element.

Identifiers may be atomic numbers, symbols, or names, in any mix.
Between 2 and 5 elements can be compared at once, and the same element
may not appear twice.`,
		Example: `  periodica compare H He
  periodica compare iron 74 Hg
  periodica compare Fe W --output json`,
		// Argument count is validated by the comparison itself so the
		// error carries the query-error exit code, same as the API.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args)
		},
	}
	return cmd
}

func runCompare(cmd *cobra.Command, identifiers []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	cmp, err := compare.Compare(cc.Engine, identifiers)
	if err != nil {
		return err
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(cmp)
	}

	header := append([]string{"Property"}, cmp.Headers...)
	rows := make([][]string, 0, len(cmp.Rows))
	for _, row := range cmp.Rows {
		cells := make([]string, 0, len(row.Values)+1)
		cells = append(cells, row.Property)
		for _, v := range row.Values {
			cells = append(cells, output.FormatValue(v))
		}
		rows = append(rows, cells)
	}
	renderRows(r, header, rows)
	return nil
}
