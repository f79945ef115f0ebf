package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/periodica-labs/periodica/internal/explore"
)

// NewExploreCommand creates the explore command.
func NewExploreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse the periodic table interactively",
		Long: `Open a terminal UI over the corpus: a filterable element list on the
left, the selected element's property sheet and reactions on the
right. Press / to filter, enter for detail, q to quit.`,
		Example: `  periodica explore`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd)
		},
	}
	return cmd
}

func runExplore(cmd *cobra.Command) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if !cc.Renderer.IsTTY() {
		return fmt.Errorf("explore needs an interactive terminal")
	}
	return explore.Run(cc.Engine)
}
