// Package logging provides config-driven categorized file logging for bwcalc.
// Logs are written to the configured logs directory with one file per
// category. Logging is controlled by debug_mode in the config file: when it is
// false no files are created and every logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/subsystem.
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config loading
	CategoryEngine Category = "engine" // Calculator state machine
	CategoryInput  Category = "input"  // Key and button dispatch
	CategoryUI     Category = "ui"     // Terminal rendering
	CategoryImage  Category = "image"  // Image URL validation
	CategoryConfig Category = "config" // Config watcher and reloads
)

// Options mirrors the logging section of the config file. It is a separate
// type so config can depend on logging and not the other way round.
type Options struct {
	Dir        string
	DebugMode  bool
	Level      string
	JSONFormat bool
	Categories map[string]bool
	SessionID  string
}

type categoryLogger struct {
	logger *zap.Logger
	file   *os.File
}

var (
	mu      sync.RWMutex
	opts    Options
	level   = zapcore.InfoLevel
	loggers = make(map[Category]*categoryLogger)
)

// Initialize sets up the logs directory. It may be called again to apply a
// reloaded config; existing category loggers are closed first.
func Initialize(o Options) error {
	CloseAll()

	lvl, err := ParseLevel(o.Level)
	if err != nil {
		return err
	}
	if o.DebugMode && o.Dir == "" {
		return fmt.Errorf("logs directory required in debug mode")
	}

	mu.Lock()
	opts = o
	level = lvl
	mu.Unlock()

	if !o.DebugMode {
		return nil
	}
	if err := os.MkdirAll(o.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("logging initialized",
		zap.String("dir", o.Dir),
		zap.String("level", lvl.String()),
		zap.Bool("json", o.JSONFormat))
	if len(o.Categories) == 0 {
		boot.Debug("all categories enabled")
	}
	return nil
}

// ParseLevel maps a config level name onto a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
}

// IsDebugMode returns whether file logging is enabled at all.
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return opts.DebugMode
}

// IsCategoryEnabled returns whether a specific category writes to disk.
// Categories missing from the filter are enabled.
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()

	if !opts.DebugMode {
		return false
	}
	enabled, exists := opts.Categories[string(category)]
	return !exists || enabled
}

// Get returns (or creates) the logger for category. It returns a no-op
// logger when debug mode or the category is disabled, or the log file cannot
// be opened.
func Get(category Category) *zap.Logger {
	if !IsCategoryEnabled(category) {
		return zap.NewNop()
	}

	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l.logger
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	if l, ok := loggers[category]; ok {
		return l.logger
	}

	date := time.Now().Format("2006-01-02")
	path := filepath.Join(opts.Dir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] could not open log file %s: %v\n", path, err)
		return zap.NewNop()
	}

	core := zapcore.NewCore(newEncoder(opts.JSONFormat), zapcore.AddSync(file), level)
	logger := zap.New(core).With(zap.String("category", string(category)))
	if opts.SessionID != "" {
		logger = logger.With(zap.String("session", opts.SessionID))
	}

	loggers[category] = &categoryLogger{logger: logger, file: file}
	return logger
}

func newEncoder(json bool) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if json {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// CloseAll flushes and closes every open category logger.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()

	for cat, l := range loggers {
		_ = l.logger.Sync()
		_ = l.file.Close()
		delete(loggers, cat)
	}
}
