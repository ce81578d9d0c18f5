package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings shown in the help footer. Calculator keys are
// resolved by input.FromKey; these bindings cover navigation and the keys
// worth advertising.
type KeyMap struct {
	Digits    key.Binding
	Operators key.Binding
	Equals    key.Binding
	Backspace key.Binding
	Clear     key.Binding
	Negate    key.Binding
	Percent   key.Binding

	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Press key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Digits: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "."),
			key.WithHelp("0-9 .", "digits"),
		),
		Operators: key.NewBinding(
			key.WithKeys("+", "-", "*", "/", "x"),
			key.WithHelp("+ - * /", "operators"),
		),
		Equals: key.NewBinding(
			key.WithKeys("enter", "="),
			key.WithHelp("enter", "equals"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc", "delete", "c"),
			key.WithHelp("esc/c", "clear"),
		),
		Negate: key.NewBinding(
			key.WithKeys("n", "_"),
			key.WithHelp("n", "±"),
		),
		Percent: key.NewBinding(
			key.WithKeys("%"),
			key.WithHelp("%", "percent"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		Press: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "press focused"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Equals, k.Clear, k.Press, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digits, k.Operators, k.Equals, k.Percent},
		{k.Backspace, k.Clear, k.Negate},
		{k.Up, k.Down, k.Left, k.Right, k.Press},
		{k.Help, k.Quit},
	}
}
