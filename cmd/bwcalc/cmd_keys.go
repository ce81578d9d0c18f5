package main

import (
	"fmt"
	"strings"

	"bwcalc/internal/input"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// keysCmd prints the key reference
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the keyboard reference",
	Args:  cobra.NoArgs,
	RunE:  runKeys,
}

const keysReference = `# bwcalc keys

| Key | Action |
|-----|--------|
| 0-9 | Type a digit |
| . or , | Decimal point |
| + - * / (also x × ÷ −) | Choose an operator |
| enter or = | Evaluate; press again to repeat the last operation |
| backspace | Delete the last character |
| esc, delete or c | Clear everything |
| n or _ | Toggle the sign |
| % | Divide the current value by 100 |
| arrows, space | Move the keypad focus, press the focused button |
| ? | Toggle full help |
| q or ctrl+c | Quit |

Choosing a second operator after typing an operand evaluates the pending
operation first, so 2 + 3 × 4 = gives 20.

## Keypad

`

// keysMarkdown builds the reference, including the on-screen keypad layout.
func keysMarkdown() string {
	var b strings.Builder
	b.WriteString(keysReference)
	b.WriteString("```\n")
	for _, row := range input.DefaultKeypad() {
		labels := make([]string, 0, len(row))
		for _, btn := range row {
			labels = append(labels, fmt.Sprintf("[%s]", btn.Label))
		}
		b.WriteString(strings.Join(labels, " "))
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return b.String()
}

func runKeys(cmd *cobra.Command, args []string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(keysMarkdown())
	if err != nil {
		return fmt.Errorf("failed to render key reference: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
