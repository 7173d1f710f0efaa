package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"ramos/internal/logging"
	"ramos/internal/services"
	"ramos/internal/ui"
)

// RunCmd starts the TUI application
type RunCmd struct {
	Repo string `arg:"" optional:"" help:"Repository as owner/name or URL (default: origin remote of the current directory)"`
}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	resolver, err := resolverFor(r.Repo)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cli.Container.Maintenance.RunStartup()
	cli.Container.Maintenance.Start(ctx)

	model := ui.NewModel(
		cli.Container.Orchestrator,
		cli.Container.Cache,
		resolver,
		services.PageView{Tree: true, Root: true},
		cli.Container.Opener,
		cli.Container.BaseURL,
		cli.AppVersion,
	)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logging.Logger.Error("TUI exited with error", "error", err)
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
