package input

import "bwcalc/internal/calc"

// Button is one key on the on-screen keypad.
type Button struct {
	Label string
	Input calc.Input
}

// Keypad is the button grid, row-major.
type Keypad [][]Button

func digit(d byte) Button {
	return Button{Label: string(rune(d)), Input: calc.DigitInput(d)}
}

func operator(op calc.Operator) Button {
	return Button{Label: op.Symbol(), Input: calc.OperatorInput(op)}
}

// DefaultKeypad returns the standard 5x4 layout.
func DefaultKeypad() Keypad {
	return Keypad{
		{
			{Label: "C", Input: calc.Input{Kind: calc.KindClear}},
			{Label: "⌫", Input: calc.Input{Kind: calc.KindBackspace}},
			{Label: "%", Input: calc.Input{Kind: calc.KindPercent}},
			operator(calc.OpDiv),
		},
		{digit('7'), digit('8'), digit('9'), operator(calc.OpMul)},
		{digit('4'), digit('5'), digit('6'), operator(calc.OpSub)},
		{digit('1'), digit('2'), digit('3'), operator(calc.OpAdd)},
		{
			{Label: "±", Input: calc.Input{Kind: calc.KindNegate}},
			digit('0'),
			{Label: ".", Input: calc.Input{Kind: calc.KindDecimal}},
			{Label: "=", Input: calc.Input{Kind: calc.KindEquals}},
		},
	}
}

// Rows returns the number of rows.
func (k Keypad) Rows() int {
	return len(k)
}

// Cols returns the width of the widest row.
func (k Keypad) Cols() int {
	n := 0
	for _, row := range k {
		n = max(n, len(row))
	}
	return n
}

// At returns the button at row, col.
func (k Keypad) At(row, col int) (Button, bool) {
	if row < 0 || row >= len(k) || col < 0 || col >= len(k[row]) {
		return Button{}, false
	}
	return k[row][col], true
}

// Find returns the position of the first button producing in.
func (k Keypad) Find(in calc.Input) (row, col int, ok bool) {
	for r, buttons := range k {
		for c, b := range buttons {
			if b.Input == in {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
