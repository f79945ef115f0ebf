package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/periodica-labs/periodica/internal/cli/output"
	"github.com/periodica-labs/periodica/internal/validate"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check corpus integrity",
		Long: `Validate every element and reaction file under the data directory:
schema compliance, duplicate keys, malformed reaction IDs, and
cross-references between elements and reactions.

Warnings are informational. Any error finding fails the run.`,
		Example: `  periodica validate
  periodica validate --data-dir ./data --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd)
		},
	}
	return cmd
}

func runValidate(cmd *cobra.Command) error {
	// The validator reads files directly so a broken corpus still gets a
	// full report instead of failing at store load.
	cc := NewCommandContextWithoutEngine(cmd)
	if err := cc.Cfg.ValidateDataDir(); err != nil {
		return err
	}

	report, err := validate.New(cc.Cfg.DataDir, cc.Logger).Run(cmd.Context())
	if err != nil {
		return err
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(report); err != nil {
			return err
		}
		return validationErr(report)
	}

	r.Header(1, "Validation report")
	r.Printf("Elements checked:  %d\n", report.Elements)
	r.Printf("Reactions checked: %d\n", report.Reactions)
	r.Println("")

	if len(report.Findings) > 0 {
		r.Header(2, "Findings")
		for _, f := range report.Findings {
			r.Printf("- %s\n", f.String())
		}
		r.Println("")
	}

	if len(report.NullCoverage) > 0 {
		r.Header(2, "Null coverage")
		rows := make([][]string, 0, len(report.NullCoverage))
		for _, n := range report.NullCoverage {
			rows = append(rows, []string{
				n.Field,
				fmt.Sprintf("%d/%d", n.Count, n.Total),
				fmt.Sprintf("%.1f%%", n.Percent()),
			})
		}
		renderRows(r, []string{"Field", "Null", "Share"}, rows)
		r.Println("")
	}

	if report.Passed() {
		r.Success(fmt.Sprintf("%s (%d warning(s))", report.Summary(), report.WarningCount()))
		return nil
	}
	r.Println(report.Summary())
	return validationErr(report)
}

func validationErr(report *validate.Report) error {
	if report.Passed() {
		return nil
	}
	return fmt.Errorf("validation failed with %d error(s)", report.ErrorCount())
}
