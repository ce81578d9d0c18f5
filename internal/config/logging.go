package config

import (
	"fmt"
	"path/filepath"

	"bwcalc/internal/logging"
)

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`      // debug, info, warn, error
	Format     string          `yaml:"format"`     // json, text
	DebugMode  bool            `yaml:"debug_mode"` // master toggle, false = no log files
	Dir        string          `yaml:"dir,omitempty"`
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// Validate checks level and format.
func (c *LoggingConfig) Validate() error {
	if _, err := logging.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %w", err)
	}
	switch c.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid logging.format: %s (valid: text, json)", c.Format)
	}
	return nil
}

// Options converts the config section into logging options. A relative or
// empty dir is resolved against the directory holding configPath.
func (c *LoggingConfig) Options(configPath, sessionID string) logging.Options {
	dir := c.Dir
	if dir == "" {
		dir = "logs"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(configPath), dir)
	}
	return logging.Options{
		Dir:        dir,
		DebugMode:  c.DebugMode,
		Level:      c.Level,
		JSONFormat: c.Format == "json",
		Categories: c.Categories,
		SessionID:  sessionID,
	}
}
