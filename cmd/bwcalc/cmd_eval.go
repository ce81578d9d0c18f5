package main

import (
	"fmt"

	"bwcalc/internal/calc"
	"bwcalc/internal/input"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var trace bool

// evalCmd runs a key sequence without the TUI
var evalCmd = &cobra.Command{
	Use:   "eval [keys...]",
	Short: "Evaluate a key sequence and print the display",
	Long: `Feeds keys to the calculator exactly as if they were typed and prints
the final display. Keys may be packed ("12+3=") or separated, and the words
enter, equals, backspace, clear, neg and percent are accepted.

Example:
  bwcalc eval 12+3=
  bwcalc eval 5 + = =
  bwcalc eval --trace 50 + 10 percent enter`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
	inputs, err := input.ParseSequence(args)
	if err != nil {
		return err
	}

	engine := calc.New(cfg.EngineOptions())
	d := input.NewDispatcher(engine)
	out := cmd.OutOrStdout()

	final := engine.Display()
	for i, disp := range d.Run(inputs) {
		final = disp
		if trace {
			fmt.Fprintf(out, "%-10s %s\n", inputs[i], formatDisplay(disp))
		}
	}
	logger.Debug("evaluated sequence",
		zap.Int("inputs", len(inputs)),
		zap.String("display", final.Value))

	fmt.Fprintln(out, final.Value)
	if final.IsError() {
		return fmt.Errorf("evaluation failed: %w", final.Err)
	}
	return nil
}

func formatDisplay(d calc.Display) string {
	if d.History == "" {
		return d.Value
	}
	return fmt.Sprintf("%s  [%s]", d.Value, d.History)
}
