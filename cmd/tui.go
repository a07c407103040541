package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/tui"
	"github.com/twiced-technology-gmbh/tasklist/internal/watcher"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive task list",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	model := tui.NewBoard(s)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startTUIWatcher(ctx, model, p)

	_, err = p.Run()
	return err
}

func startTUIWatcher(ctx context.Context, model *tui.Board, p *tea.Program) {
	paths := model.WatchPaths()
	if len(paths) == 0 {
		return
	}
	w, err := watcher.New(paths, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, func(watchErr error) {
		p.Send(tui.ErrMsg{Err: watchErr})
	})
}
