// Package tui is the terminal host for an outline: a navigable row pane, a filter
// input and a markdown detail pane, rebuilt whenever the watched source changes.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	applyThemePreference()
	applyColorProfilePreference()
	applyGlyphPreference(opts.Glyphs)

	m := NewModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if opts.WatchPath != "" {
		wctx, cancel := context.WithCancel(ctx)
		defer cancel()
		if err := watchSource(wctx, opts.WatchPath, p.Send, opts.Logger); err != nil {
			// The outline still works without live reload.
			opts.Logger.Warn("watch source", zap.String("path", opts.WatchPath), zap.Error(err))
		}
	}

	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("run tui: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return Result{}, nil
	}
	if err := fm.saveViewState(context.Background()); err != nil {
		opts.Logger.Warn("save view state", zap.Error(err))
	}
	return fm.result(), nil
}
