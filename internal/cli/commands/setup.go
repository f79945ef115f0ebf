// Package commands implements the periodica subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/periodica-labs/periodica/internal/cli/config"
	"github.com/periodica-labs/periodica/internal/cli/output"
	"github.com/periodica-labs/periodica/internal/query"
	"github.com/periodica-labs/periodica/internal/store"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *query.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with the corpus loaded and
// a query engine over it. The store is immutable and in-memory, so
// there is nothing to close.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cc := NewCommandContextWithoutEngine(cmd)

	if err := cc.Cfg.ValidateDataDir(); err != nil {
		return nil, err
	}

	st, err := store.Open(cmd.Context(), cc.Cfg.DataDir, cc.Logger)
	if err != nil {
		return nil, err
	}
	cc.Engine = query.New(st, cc.Logger)

	return cc, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without
// loading the corpus. Useful for commands that don't read the data
// directory.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	return &config.Config{
		DataDir:      getEnvOrDefault("PERIODICA_DATA_DIR", config.DefaultDataDir),
		CatalogPath:  getEnvOrDefault("PERIODICA_CATALOG_PATH", config.DefaultCatalogFile),
		OutputFormat: getEnvOrDefault("PERIODICA_OUTPUT", config.DefaultOutput),
		Verbose:      os.Getenv("PERIODICA_VERBOSE") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// resolveCatalogPath returns the catalog database path from config or
// the default.
func resolveCatalogPath(cfg *config.Config) string {
	if cfg.CatalogPath != "" {
		return cfg.CatalogPath
	}
	return config.DefaultCatalogFile
}
