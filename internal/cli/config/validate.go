package config

import (
	"fmt"
	"os"
)

// validOutputModes are the formats the renderer understands.
var validOutputModes = map[string]bool{
	"":         true, // empty means auto
	"auto":     true,
	"text":     true,
	"markdown": true,
	"json":     true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if !validOutputModes[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q (want auto, text, markdown, or json)", c.OutputFormat)
	}
	if c.Server != nil && (c.Server.Port < 0 || c.Server.Port > 65535) {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

// ValidateDataDir checks that the data directory exists. Commands that
// load the corpus call this before opening the store; help and
// scaffolding commands work without it.
func (c *Config) ValidateDataDir() error {
	if _, err := os.Stat(c.DataDir); os.IsNotExist(err) {
		return fmt.Errorf("data directory does not exist: %s\nHint: Create the directory or use --data-dir to specify a different path", c.DataDir)
	}
	return nil
}
