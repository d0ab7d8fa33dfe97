package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/folio/internal/prefetch"
	"github.com/desertthunder/folio/internal/shared"
	"github.com/desertthunder/folio/internal/ui"
	"github.com/urfave/cli/v3"
)

// Browse launches the interactive terminal portfolio browser.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/folio-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	ctrl, err := r.controller(ctx, config)
	if err != nil {
		return err
	}

	updates := make(chan prefetch.Update, ctrl.Store().ArtworkTotal()+1)
	ctrl.StartPrefetch(ctx, r.httpClient, updates)

	model := ui.NewModel(ctx, ctrl, updates)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
