package main

import (
	"context"
	"fmt"
	"slices"

	"bwcalc/cmd/bwcalc/ui"
	"bwcalc/internal/config"
	"bwcalc/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// runTUI starts the interactive calculator and blocks until it exits.
func runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if theme != "" && !slices.Contains(config.ValidThemes, theme) {
		return fmt.Errorf("invalid theme %q (want one of %v)", theme, config.ValidThemes)
	}

	model := ui.NewModel(ui.Options{
		Config:   cfg,
		ImageURL: imageURL,
		Theme:    theme,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)

	if watch {
		w, err := config.NewWatcher(configPath,
			func(c *config.Config) { p.Send(ui.ConfigReloadedMsg{Config: c}) },
			func(err error) {
				logging.Get(logging.CategoryConfig).Warn("config reload failed", zap.Error(err))
			},
		)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			w.Stop()
			return err
		}
		defer w.Stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("calculator exited: %w", err)
	}
	return nil
}
