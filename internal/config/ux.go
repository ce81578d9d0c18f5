package config

// Theme names accepted by ui.theme.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UIConfig holds terminal user interface configuration.
type UIConfig struct {
	// Theme is light, dark or auto (detect from the terminal).
	Theme string `yaml:"theme"`

	// ShowHistory shows the "<previous> <operator>" line above the display.
	ShowHistory bool `yaml:"show_history"`

	// ShowKeypad renders the clickable button grid.
	ShowKeypad bool `yaml:"show_keypad"`

	// Mouse enables click support on the keypad.
	Mouse bool `yaml:"mouse"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:       ThemeAuto,
		ShowHistory: true,
		ShowKeypad:  true,
		Mouse:       true,
	}
}
