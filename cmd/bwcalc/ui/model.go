package ui

import (
	"strings"
	"time"

	"bwcalc/internal/calc"
	"bwcalc/internal/config"
	"bwcalc/internal/imageref"
	"bwcalc/internal/input"
	"bwcalc/internal/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// DefaultErrorRevert is used when no revert delay is configured.
const DefaultErrorRevert = 1500 * time.Millisecond

// ConfigReloadedMsg carries a configuration that changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// errorRevertMsg clears the error token. seq ties it to the error that
// scheduled it so a stale tick never clears a newer error.
type errorRevertMsg struct {
	seq int
}

// Options configures a Model.
type Options struct {
	Config   *config.Config
	ImageURL string
	Theme    string // overrides Config.UI.Theme when set
}

// Model is the calculator screen.
type Model struct {
	dispatcher *input.Dispatcher
	keypad     input.Keypad
	keys       KeyMap
	help       help.Model
	styles     Styles
	image      imageref.Panel
	log        *zap.Logger

	display     calc.Display
	errorSeq    int
	showError   bool
	errorRevert time.Duration

	focusRow, focusCol int
	showHistory        bool
	showKeypad         bool
	themeOverride      string

	width, height int
	quitting      bool
}

// NewModel creates the model. A nil Config means defaults.
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	engine := calc.New(cfg.EngineOptions())
	theme := cfg.UI.Theme
	if opts.Theme != "" {
		theme = opts.Theme
	}

	m := Model{
		dispatcher:    input.NewDispatcher(engine),
		keypad:        input.DefaultKeypad(),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		styles:        NewStyles(ThemeFor(theme)),
		image:         imageref.Resolve(opts.ImageURL),
		log:           logging.Get(logging.CategoryUI),
		display:       engine.Display(),
		errorRevert:   revertDelay(cfg),
		showHistory:   cfg.UI.ShowHistory,
		showKeypad:    cfg.UI.ShowKeypad,
		themeOverride: opts.Theme,
	}
	// Start on "=" so space evaluates until the user moves.
	m.focusRow, m.focusCol = m.keypad.Rows()-1, m.keypad.Cols()-1
	return m
}

func revertDelay(cfg *config.Config) time.Duration {
	if d := cfg.GetErrorRevert(); d > 0 {
		return d
	}
	return DefaultErrorRevert
}

// Display returns what the screen currently shows.
func (m Model) Display() calc.Display {
	return m.display
}

// Engine returns the underlying calculator.
func (m Model) Engine() *calc.Engine {
	return m.dispatcher.Engine()
}

// Focus returns the focused keypad position.
func (m Model) Focus() (row, col int) {
	return m.focusRow, m.focusCol
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		row, col, ok := m.buttonAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.focusRow, m.focusCol = row, col
		return m.press(row, col)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case errorRevertMsg:
		if msg.seq != m.errorSeq || !m.showError {
			return m, nil
		}
		m.showError = false
		m.display = m.Engine().Display()
		return m, nil

	case ConfigReloadedMsg:
		return m.applyConfig(msg.Config), nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1, 0)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1, 0)
		return m, nil
	case key.Matches(msg, m.keys.Left):
		m.moveFocus(0, -1)
		return m, nil
	case key.Matches(msg, m.keys.Right):
		m.moveFocus(0, 1)
		return m, nil
	case key.Matches(msg, m.keys.Press):
		return m.press(m.focusRow, m.focusCol)
	}

	// Focus follows typed keys so the keypad shows what was pressed.
	if in, ok := input.FromKey(msg.String()); ok {
		if r, c, found := m.keypad.Find(in); found {
			m.focusRow, m.focusCol = r, c
		}
	}
	display, ok := m.dispatcher.Key(msg.String())
	if !ok {
		return m, nil
	}
	return m.show(display)
}

func (m *Model) moveFocus(dr, dc int) {
	rows, cols := m.keypad.Rows(), m.keypad.Cols()
	m.focusRow = (m.focusRow + dr + rows) % rows
	m.focusCol = (m.focusCol + dc + cols) % cols
}

func (m Model) press(row, col int) (tea.Model, tea.Cmd) {
	b, ok := m.keypad.At(row, col)
	if !ok {
		return m, nil
	}
	m.log.Debug("keypad press", zap.String("label", b.Label))
	return m.show(m.dispatcher.Dispatch(b.Input))
}

// show updates the screen with d, scheduling a revert when it is an error.
func (m Model) show(d calc.Display) (tea.Model, tea.Cmd) {
	m.display = d
	if !d.IsError() {
		m.showError = false
		return m, nil
	}
	m.showError = true
	m.errorSeq++
	seq := m.errorSeq
	return m, tea.Tick(m.errorRevert, func(time.Time) tea.Msg {
		return errorRevertMsg{seq: seq}
	})
}

func (m Model) applyConfig(cfg *config.Config) Model {
	if cfg == nil {
		return m
	}
	theme := cfg.UI.Theme
	if m.themeOverride != "" {
		theme = m.themeOverride
	}
	m.styles = NewStyles(ThemeFor(theme))
	m.errorRevert = revertDelay(cfg)
	m.showHistory = cfg.UI.ShowHistory
	m.showKeypad = cfg.UI.ShowKeypad
	m.log.Info("config reloaded", zap.String("theme", theme))
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderTop()}
	if m.showKeypad {
		sections = append(sections, m.renderKeypad())
	}
	if m.image.Visible {
		sections = append(sections, m.renderImage())
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTop renders everything above the keypad.
func (m Model) renderTop() string {
	width := m.screenWidth()

	history := ""
	if m.showHistory {
		history = m.display.History
	}
	value := m.styles.Value.Render(m.display.Value)
	if m.display.IsError() {
		value = m.styles.Error.Render(m.display.Value)
	}

	screen := m.styles.Screen.Render(lipgloss.JoinVertical(lipgloss.Right,
		m.styles.History.Width(width).Align(lipgloss.Right).Render(history),
		lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(value),
	))
	return lipgloss.JoinVertical(lipgloss.Left, m.styles.Header.Render("bwcalc"), screen)
}

// screenWidth is the inner display width, matching the keypad below it.
func (m Model) screenWidth() int {
	w, _ := m.cellSize()
	// Screen border and padding take four cells.
	return max(w*m.keypad.Cols()-4, 1)
}

func (m Model) cellSize() (w, h int) {
	cell := m.styles.Button.Render("0")
	return lipgloss.Width(cell), lipgloss.Height(cell)
}

func (m Model) renderKeypad() string {
	rows := make([]string, 0, m.keypad.Rows())
	for r := 0; r < m.keypad.Rows(); r++ {
		cells := make([]string, 0, m.keypad.Cols())
		for c := 0; c < m.keypad.Cols(); c++ {
			b, ok := m.keypad.At(r, c)
			if !ok {
				continue
			}
			cells = append(cells, m.buttonStyle(r, c, b).Render(b.Label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) buttonStyle(r, c int, b input.Button) lipgloss.Style {
	focused := r == m.focusRow && c == m.focusCol
	pending := b.Input.Kind == calc.KindOperator && b.Input.Operator == m.Engine().State().Operator
	switch {
	case pending && focused:
		return m.styles.Operator.BorderForeground(Focus)
	case pending:
		return m.styles.Operator
	case focused:
		return m.styles.ButtonFocused
	}
	return m.styles.Button
}

// buttonAt maps a terminal cell to a keypad button.
func (m Model) buttonAt(x, y int) (row, col int, ok bool) {
	if !m.showKeypad || x < 0 {
		return 0, 0, false
	}
	top := lipgloss.Height(m.renderTop())
	if y < top {
		return 0, 0, false
	}
	w, h := m.cellSize()
	row, col = (y-top)/h, x/w
	if _, ok := m.keypad.At(row, col); !ok {
		return 0, 0, false
	}
	return row, col, true
}

func (m Model) renderImage() string {
	var b strings.Builder
	if m.image.Allowed {
		b.WriteString(m.styles.Muted.Render("image: "))
		b.WriteString(truncate(m.image.Label, maxLabelWidth))
		if mt := m.image.MediaType(); mt != "" {
			b.WriteString(m.styles.Muted.Render(" (" + mt + ")"))
		}
	} else {
		b.WriteString(m.styles.ImageBlocked.Render(m.image.Label))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(m.image.Alt))
	return m.styles.ImagePanel.Render(b.String())
}

const maxLabelWidth = 48

// truncate shortens s to n runes, which matters for inline data: URIs.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
