// Package ui provides the terminal front end for bwcalc: a bubbletea model
// rendering the display, history line, keypad and image panel.
package ui

import (
	"os"
	"strconv"
	"strings"

	"bwcalc/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Black and white palette with a single accent for focus and errors.
var (
	LightBackground = lipgloss.Color("#ffffff")
	LightForeground = lipgloss.Color("#111111")
	LightMuted      = lipgloss.Color("#8a8a8a")
	LightBorder     = lipgloss.Color("#c8c8c8")
	LightKey        = lipgloss.Color("#f0f0f0")

	DarkBackground = lipgloss.Color("#0b0b0b")
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkMuted      = lipgloss.Color("#7a7a7a")
	DarkBorder     = lipgloss.Color("#3a3a3a")
	DarkKey        = lipgloss.Color("#1c1c1c")

	Destructive = lipgloss.Color("#e53935")
	Focus       = lipgloss.Color("#2196F3")
)

// Theme holds the current color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Key        lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Muted:      LightMuted,
		Border:     LightBorder,
		Key:        LightKey,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Key:        DarkKey,
		IsDark:     true,
	}
}

// DetectTheme picks a theme from COLORFGBG ("fg;bg", dark backgrounds are
// 0-6 and 8) or BWCALC_DARK_MODE=1, defaulting to light.
func DetectTheme() Theme {
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil {
			if (bg >= 0 && bg <= 6) || bg == 8 {
				return DarkTheme()
			}
		}
	}
	if os.Getenv("BWCALC_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// ThemeFor resolves a ui.theme config value.
func ThemeFor(name string) Theme {
	switch name {
	case config.ThemeDark:
		return DarkTheme()
	case config.ThemeLight:
		return LightTheme()
	}
	return DetectTheme()
}

// buttonWidth is the inner width of a keypad button; borders add two cells.
const buttonWidth = 5

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	Header  lipgloss.Style
	Screen  lipgloss.Style
	History lipgloss.Style
	Value   lipgloss.Style
	Error   lipgloss.Style

	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	Operator      lipgloss.Style

	ImagePanel   lipgloss.Style
	ImageBlocked lipgloss.Style
	Muted        lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme.
func NewStyles(theme Theme) Styles {
	button := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Foreground).
		Background(theme.Key).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Screen: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Foreground).
			Padding(0, 1),

		History: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Value: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Button: button,

		ButtonFocused: button.
			BorderForeground(Focus).
			Bold(true),

		Operator: button.
			Foreground(theme.Background).
			Background(theme.Foreground),

		ImagePanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		ImageBlocked: lipgloss.NewStyle().
			Foreground(Destructive).
			Italic(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}
