package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bwcalc/internal/calc"
	"bwcalc/internal/logging"

	"gopkg.in/yaml.v3"
)

// DirName is the directory holding the config file and logs.
const DirName = ".bwcalc"

// FileName is the config file name inside DirName.
const FileName = "config.yaml"

// Config holds all bwcalc configuration.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// DisplayConfig configures the calculator engine and its display.
type DisplayConfig struct {
	MaxLength   int    `yaml:"max_length"`   // typed characters per operand, sign excluded
	Precision   int    `yaml:"precision"`    // significant digits in results
	ErrorToken  string `yaml:"error_token"`  // shown after division by zero / overflow
	ErrorRevert string `yaml:"error_revert"` // how long the error token stays up
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			MaxLength:   calc.DefaultMaxLength,
			Precision:   calc.DefaultPrecision,
			ErrorToken:  calc.DefaultErrorToken,
			ErrorRevert: "1500ms",
		},
		UI: *DefaultUIConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the config file location: ./.bwcalc/config.yaml when
// that directory exists, otherwise ~/.bwcalc/config.yaml.
func DefaultPath() string {
	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, DirName)
		if st, err := os.Stat(local); err == nil && st.IsDir() {
			return filepath.Join(local, FileName)
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, DirName, FileName)
	}
	return filepath.Join(DirName, FileName)
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if theme := os.Getenv("BWCALC_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}
	if lvl := os.Getenv("BWCALC_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	switch strings.ToLower(os.Getenv("BWCALC_DEBUG")) {
	case "1", "true", "yes":
		c.Logging.DebugMode = true
	case "0", "false", "no":
		c.Logging.DebugMode = false
	}
	if d := os.Getenv("BWCALC_ERROR_REVERT"); d != "" {
		c.Display.ErrorRevert = d
	}
}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{ThemeAuto, ThemeLight, ThemeDark}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Display.MaxLength < 1 || c.Display.MaxLength > 64 {
		return fmt.Errorf("display.max_length must be between 1 and 64, got %d", c.Display.MaxLength)
	}
	if c.Display.Precision < 1 || c.Display.Precision > 17 {
		return fmt.Errorf("display.precision must be between 1 and 17, got %d", c.Display.Precision)
	}
	if c.Display.ErrorRevert != "" {
		if _, err := time.ParseDuration(c.Display.ErrorRevert); err != nil {
			return fmt.Errorf("invalid display.error_revert %q: %w", c.Display.ErrorRevert, err)
		}
	}

	validTheme := false
	for _, t := range ValidThemes {
		if c.UI.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("invalid ui.theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}

	return c.Logging.Validate()
}

// GetErrorRevert returns the error display duration. Zero disables the
// timed revert.
func (c *Config) GetErrorRevert() time.Duration {
	if c.Display.ErrorRevert == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Display.ErrorRevert)
	if err != nil {
		return 1500 * time.Millisecond
	}
	return d
}

// EngineOptions returns the calculator engine options for this config. The
// engine logs to the engine category, so call it after logging.Initialize.
func (c *Config) EngineOptions() calc.Options {
	return calc.Options{
		MaxLength:  c.Display.MaxLength,
		Precision:  c.Display.Precision,
		ErrorToken: c.Display.ErrorToken,
		Logger:     logging.Get(logging.CategoryEngine),
	}
}
