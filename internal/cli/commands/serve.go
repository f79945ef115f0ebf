package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/periodica-labs/periodica/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the corpus over HTTP",
		Long: `Start the JSON API server. The corpus is loaded once at startup; edit
the data directory and restart (or rerun) to pick up changes.

Endpoints live under /api: elements, reactions, compare, stats. A
health probe answers on /healthz.`,
		Example: `  periodica serve
  periodica serve --port 9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from server.port)")

	return cmd
}

func runServe(cmd *cobra.Command, port int) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if port == 0 {
		port = cc.Cfg.GetServerConfig().Port
	}

	srv := server.NewServer(server.Config{
		Engine: cc.Engine,
		Port:   port,
		Logger: cc.Logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cc.Renderer.Printf("Serving on http://localhost:%d (Ctrl-C to stop)\n", port)
	return srv.Serve(ctx)
}
