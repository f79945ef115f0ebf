package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/periodica-labs/periodica/internal/cli/output"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show corpus statistics",
		Long: `Summarize the loaded corpus: element and reaction counts, breakdowns
by category, phase and block, and per-field coverage of the optional
properties.`,
		Example: `  periodica stats
  periodica stats --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd)
		},
	}
	return cmd
}

func runStats(cmd *cobra.Command) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	stats := cc.Engine.Stats()

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(stats)
	}

	r.Header(1, "Corpus statistics")
	r.Printf("Elements:    %d\n", stats.Elements)
	r.Printf("Reactions:   %d\n", stats.Reactions)
	r.Printf("Radioactive: %d\n", stats.Radioactive)
	r.Println("")

	renderCountTable(r, "Elements by category", "Category", stats.ByCategory)
	renderCountTable(r, "Elements by phase", "Phase", stats.ByPhase)
	renderCountTable(r, "Elements by block", "Block", stats.ByBlock)
	renderCountTable(r, "Reactions by category", "Category", stats.ReactionsByCategory)
	renderCountTable(r, "Reactions by type", "Type", stats.ReactionsByType)

	r.Header(2, "Field coverage")
	rows := make([][]string, 0, len(stats.Coverage))
	for _, c := range stats.Coverage {
		rows = append(rows, []string{
			c.Field,
			fmt.Sprintf("%d/%d", c.Present, stats.Elements),
			fmt.Sprintf("%.1f%%", c.Percent),
		})
	}
	renderRows(r, []string{"Field", "Present", "Coverage"}, rows)
	return nil
}

// renderCountTable prints a name/count breakdown sorted by count
// descending, ties broken alphabetically so output stays stable.
func renderCountTable(r *output.Renderer, title, label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	r.Header(2, title)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, fmt.Sprintf("%d", counts[name])})
	}
	renderRows(r, []string{label, "Count"}, rows)
	r.Println("")
}
