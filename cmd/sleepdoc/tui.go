package main

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/sleepdoctor/sleepdoc/internal/oauth"
	"github.com/sleepdoctor/sleepdoc/internal/paths"
	"github.com/sleepdoctor/sleepdoc/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive TUI",
		Long:  "Opens the full-screen viewer for last night's sleep stages and recent body measurements.",
		RunE:  runTUI,
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if _, err := paths.EnsureDir(); err != nil {
		return err
	}
	logPath, err := paths.Log()
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	// the alt screen hides stderr, so the consent URL goes to the log as well
	a, err := newApp(ctx, appOptions{
		logOutput:    logFile,
		promptOutput: logFile,
	})
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	model := tui.New(tui.Deps{
		Ctx:         ctx,
		Logger:      a.logger,
		Channel:     a.channel,
		Permissions: a.tokens,
		Scopes:      oauth.Scopes,
	})

	p := tea.NewProgram(&model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
