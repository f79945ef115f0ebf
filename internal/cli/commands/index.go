package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/periodica-labs/periodica/internal/cli/output"
	"github.com/periodica-labs/periodica/internal/index"
	"github.com/periodica-labs/periodica/internal/state"
	"github.com/periodica-labs/periodica/internal/store"
)

// historyLimit caps the build runs shown by --history.
const historyLimit = 20

// IndexOptions holds options for the index command.
type IndexOptions struct {
	Watch   bool
	History bool
}

// NewIndexCommand creates the index command.
func NewIndexCommand() *cobra.Command {
	opts := &IndexOptions{}

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build derived index artifacts",
		Long: `Build the derived artifacts under <data-dir>/indexes (periodic table
summary, category index, per-property statistics), refresh the SQL
catalog mirror, and record the run in the build history.

With --watch the corpus is rebuilt whenever an element or reaction
file changes. With --history recent build runs are listed instead.`,
		Example: `  periodica index
  periodica index --watch
  periodica index --history`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Rebuild on corpus changes until interrupted")
	cmd.Flags().BoolVar(&opts.History, "history", false, "List recorded build runs instead of building")

	return cmd
}

func runIndex(cmd *cobra.Command, opts *IndexOptions) error {
	cc := NewCommandContextWithoutEngine(cmd)

	cat, err := state.Open(resolveCatalogPath(cc.Cfg), cc.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = cat.Close() }()

	if opts.History {
		return renderBuildHistory(cmd.Context(), cc.Renderer, cat)
	}

	if err := cc.Cfg.ValidateDataDir(); err != nil {
		return err
	}
	builder := index.NewBuilder(cc.Cfg.DataDir, cc.Logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := buildOnce(ctx, cc, cat, builder)
	if err != nil {
		return err
	}
	renderBuildResult(cc.Renderer, res)

	if !opts.Watch {
		return nil
	}

	r := cc.Renderer
	if r.EffectiveMode() != output.ModeJSON {
		r.Println("")
		r.Printf("Watching %s for changes, Ctrl-C to stop\n", cc.Cfg.DataDir)
	}
	return builder.Watch(ctx, func(res *index.Result, buildErr error) {
		// Watch reports after the fact, so the run is recorded in
		// one shot here rather than around the build.
		run, err := cat.StartBuild(ctx)
		if err != nil {
			cc.Logger.Error("record build", "error", err)
		} else {
			finishBuild(ctx, cc, cat, run.ID, res, buildErr)
		}
		if buildErr != nil {
			r.Warning(fmt.Sprintf("rebuild failed: %v", buildErr))
			return
		}
		if err := refreshCatalog(ctx, cc, cat); err != nil {
			r.Warning(fmt.Sprintf("catalog refresh failed: %v", err))
		}
		renderBuildResult(r, res)
	})
}

// buildOnce runs a single build cycle: record start, write artifacts,
// refresh the catalog mirror, record the outcome.
func buildOnce(ctx context.Context, cc *CommandContext, cat *state.Catalog, builder *index.Builder) (*index.Result, error) {
	run, err := cat.StartBuild(ctx)
	if err != nil {
		return nil, err
	}

	res, buildErr := builder.Build(ctx)
	if buildErr == nil {
		buildErr = refreshCatalog(ctx, cc, cat)
	}
	finishBuild(ctx, cc, cat, run.ID, res, buildErr)
	if buildErr != nil {
		return nil, buildErr
	}
	return res, nil
}

func finishBuild(ctx context.Context, cc *CommandContext, cat *state.Catalog, runID string, res *index.Result, buildErr error) {
	elements, reactions := 0, 0
	if res != nil {
		elements, reactions = res.ElementCount, res.ReactionCount
	}
	if err := cat.FinishBuild(ctx, runID, elements, reactions, buildErr); err != nil {
		cc.Logger.Error("record build", "run_id", runID, "error", err)
	}
}

// refreshCatalog mirrors the corpus into the catalog tables so the
// query command sees the same data the artifacts were built from.
func refreshCatalog(ctx context.Context, cc *CommandContext, cat *state.Catalog) error {
	st, err := store.Open(ctx, cc.Cfg.DataDir, cc.Logger)
	if err != nil {
		return err
	}
	return cat.Rebuild(ctx, st.Elements(), st.Reactions())
}

func renderBuildResult(r *output.Renderer, res *index.Result) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(res)
		return
	}
	r.Success(fmt.Sprintf("Indexed %d elements, %d reactions in %s",
		res.ElementCount, res.ReactionCount, res.Duration.Round(time.Millisecond)))
	for _, path := range res.Artifacts {
		r.Printf("  %s\n", path)
	}
}

// buildRunView shapes a build run for JSON output.
type buildRunView struct {
	ID         string     `json:"id"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Elements   int        `json:"elements"`
	Reactions  int        `json:"reactions"`
	Error      string     `json:"error,omitempty"`
}

func renderBuildHistory(ctx context.Context, r *output.Renderer, cat *state.Catalog) error {
	builds, err := cat.ListBuilds(ctx, historyLimit)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		views := make([]buildRunView, 0, len(builds))
		for _, b := range builds {
			views = append(views, buildRunView{
				ID:         b.ID,
				Status:     string(b.Status),
				StartedAt:  b.StartedAt,
				FinishedAt: b.FinishedAt,
				Elements:   b.Elements,
				Reactions:  b.Reactions,
				Error:      b.Error,
			})
		}
		return r.JSON(views)
	}

	if len(builds) == 0 {
		r.Println("No builds recorded yet. Run 'periodica index' first.")
		return nil
	}

	rows := make([][]string, 0, len(builds))
	for _, b := range builds {
		finished := "—"
		if b.FinishedAt != nil {
			finished = b.FinishedAt.Sub(b.StartedAt).Round(time.Millisecond).String()
		}
		rows = append(rows, []string{
			b.ID,
			string(b.Status),
			b.StartedAt.Format(time.RFC3339),
			finished,
			fmt.Sprintf("%d", b.Elements),
			fmt.Sprintf("%d", b.Reactions),
			b.Error,
		})
	}
	renderRows(r, []string{"ID", "Status", "Started", "Took", "Elements", "Reactions", "Error"}, rows)
	return nil
}
