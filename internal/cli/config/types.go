// Package config provides configuration management for the periodica CLI.
//
// Settings come from four layers, lowest to highest precedence:
// built-in defaults, a periodica.yaml file, PERIODICA_* environment
// variables, and explicitly set command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	DataDir      string        `koanf:"data_dir"`
	CatalogPath  string        `koanf:"catalog_path"`
	Verbose      bool          `koanf:"verbose"`
	OutputFormat string        `koanf:"output"`
	Server       *ServerConfig `koanf:"server"`
	Export       *ExportConfig `koanf:"export"`

	// ProjectRoot is the directory relative paths were resolved
	// against. It is derived, never read from the file.
	ProjectRoot string `koanf:"-"`
}

// ServerConfig holds settings for the HTTP API server.
type ServerConfig struct {
	Port int `koanf:"port"`
}

// ExportConfig holds default connection settings for the export command.
// Flags override these per invocation.
type ExportConfig struct {
	Target string `koanf:"target"`
	DSN    string `koanf:"dsn"`
	Schema string `koanf:"schema"`
}

// Default configuration values.
const (
	DefaultDataDir      = "data"
	DefaultCatalogFile  = ".periodica/catalog.db"
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultServerPort   = 8080
	DefaultExportSchema = "chem"
)

// GetServerConfig returns the server config with defaults applied for
// any unset values.
func (c *Config) GetServerConfig() *ServerConfig {
	if c.Server == nil {
		return &ServerConfig{Port: DefaultServerPort}
	}
	srv := c.Server
	if srv.Port == 0 {
		srv.Port = DefaultServerPort
	}
	return srv
}

// GetExportConfig returns the export config with defaults applied for
// any unset values.
func (c *Config) GetExportConfig() *ExportConfig {
	if c.Export == nil {
		return &ExportConfig{Schema: DefaultExportSchema}
	}
	exp := c.Export
	if exp.Schema == "" {
		exp.Schema = DefaultExportSchema
	}
	return exp
}
