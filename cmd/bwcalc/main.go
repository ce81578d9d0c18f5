package main

import (
	"fmt"
	"os"

	"bwcalc/internal/config"
	"bwcalc/internal/logging"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Root (TUI) flags
	imageURL string
	theme    string
	watch    bool

	// Logger
	logger *zap.Logger

	// Effective configuration, loaded before every command runs.
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bwcalc",
	Short: "bwcalc - black and white terminal calculator",
	Long: `bwcalc is a two-operand calculator for the terminal.

Type digits and operators, press enter to evaluate, or click the keypad.
Pressing enter again repeats the last operation.

Run without arguments to start the interactive calculator.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The TUI owns the terminal; stderr diagnostics would corrupt it.
		if cmd == cmd.Root() {
			logger = zap.NewNop()
		} else {
			zc := zap.NewProductionConfig()
			if verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
		}
		// config init replaces the file, so a broken one must not block it.
		return setup(cmd != configInitCmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

// setup loads the configuration and starts the file loggers. With load
// false the file is not read and the defaults apply.
func setup(load bool) error {
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	cfg = config.DefaultConfig()
	if load {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	opts := cfg.Logging.Options(configPath, uuid.NewString())
	if verbose {
		opts.Level = "debug"
	}
	if err := logging.Initialize(opts); err != nil {
		return fmt.Errorf("failed to initialize file logging: %w", err)
	}

	logger.Debug("configuration loaded",
		zap.String("path", configPath),
		zap.String("theme", cfg.UI.Theme),
		zap.Bool("debug_mode", cfg.Logging.DebugMode))
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default .bwcalc/config.yaml)")

	rootCmd.Flags().StringVar(&imageURL, "image", "", "Show an image panel for this http(s) or data:image URL")
	rootCmd.Flags().StringVar(&theme, "theme", "", "Color theme: light, dark or auto (overrides config)")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "Reload the config file when it changes")

	evalCmd.Flags().BoolVar(&trace, "trace", false, "Print the display after every key")

	configCmd.AddCommand(configInitCmd, configShowCmd)
	configInitCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(evalCmd, keysCmd, imageCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
