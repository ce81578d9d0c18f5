package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bwcalc/internal/calc"
	"bwcalc/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// clearEnv blanks every override so the developer's shell cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BWCALC_THEME", "BWCALC_LOG_LEVEL", "BWCALC_DEBUG", "BWCALC_ERROR_REVERT"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 16, cfg.Display.MaxLength)
	assert.Equal(t, 12, cfg.Display.Precision)
	assert.Equal(t, "Error", cfg.Display.ErrorToken)
	assert.Equal(t, ThemeAuto, cfg.UI.Theme)
	assert.True(t, cfg.UI.ShowHistory)
	assert.False(t, cfg.Logging.DebugMode)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), DirName, FileName)

	cfg := DefaultConfig()
	cfg.UI.Theme = ThemeDark
	cfg.Display.Precision = 8
	cfg.Logging.Categories = map[string]bool{"ui": false}

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_LoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_LoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: light\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, cfg.UI.Theme)
	assert.True(t, cfg.UI.ShowKeypad)
	assert.Equal(t, 16, cfg.Display.MaxLength)
}

func TestConfig_LoadRejectsBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("display: [unclosed"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero max length", func(c *Config) { c.Display.MaxLength = 0 }, "max_length"},
		{"precision too high", func(c *Config) { c.Display.Precision = 30 }, "precision"},
		{"bad revert", func(c *Config) { c.Display.ErrorRevert = "soon" }, "error_revert"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestConfig_GetErrorRevert(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1500*time.Millisecond, cfg.GetErrorRevert())

	cfg.Display.ErrorRevert = ""
	assert.Equal(t, time.Duration(0), cfg.GetErrorRevert())

	cfg.Display.ErrorRevert = "garbage"
	assert.Equal(t, 1500*time.Millisecond, cfg.GetErrorRevert())
}

func TestConfig_EngineOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.ErrorToken = "E"
	opts := cfg.EngineOptions()
	assert.Equal(t, 16, opts.MaxLength)
	assert.Equal(t, 12, opts.Precision)
	assert.Equal(t, "E", opts.ErrorToken)
}

func TestLoggingConfig_Options(t *testing.T) {
	lc := LoggingConfig{Level: "debug", Format: "json", DebugMode: true}
	opts := lc.Options("/etc/bwcalc/config.yaml", "abc")

	assert.Equal(t, filepath.Join("/etc/bwcalc", "logs"), opts.Dir)
	assert.True(t, opts.JSONFormat)
	assert.True(t, opts.DebugMode)
	assert.Equal(t, "abc", opts.SessionID)

	lc.Dir = "/var/log/bwcalc"
	assert.Equal(t, "/var/log/bwcalc", lc.Options("/etc/bwcalc/config.yaml", "").Dir)
}

func TestLoggingConfig_OptionsCarryCategories(t *testing.T) {
	lc := LoggingConfig{DebugMode: true, Categories: map[string]bool{"ui": false}}
	opts := lc.Options("/etc/bwcalc/config.yaml", "s1")
	assert.True(t, opts.DebugMode)
	assert.Equal(t, "s1", opts.SessionID)
	assert.Equal(t, map[string]bool{"ui": false}, opts.Categories)
}

func TestEngineOptions_LogsToEngineCategory(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Logging.DebugMode = true
	cfg.Logging.Level = "debug"
	cfg.Logging.Dir = dir

	require.NoError(t, logging.Initialize(cfg.Logging.Options(filepath.Join(dir, FileName), "")))
	t.Cleanup(func() {
		logging.CloseAll()
		_ = logging.Initialize(logging.Options{})
	})

	opts := cfg.EngineOptions()
	require.NotNil(t, opts.Logger)

	e := calc.New(opts)
	for _, in := range []calc.Input{
		calc.DigitInput('6'), calc.OperatorInput(calc.OpDiv), calc.DigitInput('3'), {Kind: calc.KindEquals},
		calc.DigitInput('1'), calc.OperatorInput(calc.OpDiv), calc.DigitInput('0'), {Kind: calc.KindEquals},
	} {
		e.Apply(in)
	}
	logging.CloseAll()

	matches, err := filepath.Glob(filepath.Join(dir, "*_engine.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "evaluated")
	assert.Contains(t, string(data), "error outcome")
}

func TestEngineOptions_NopWithoutDebugMode(t *testing.T) {
	require.NoError(t, logging.Initialize(logging.Options{}))
	opts := DefaultConfig().EngineOptions()
	require.NotNil(t, opts.Logger)
	assert.False(t, opts.Logger.Core().Enabled(zapcore.DebugLevel))
}

func TestDefaultPath_PrefersLocalDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, DirName), 0755))
	t.Chdir(dir)

	assert.Equal(t, filepath.Join(dir, DirName, FileName), DefaultPath())
}
