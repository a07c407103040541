package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/board"
	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/storage"
	"github.com/twiced-technology-gmbh/tasklist/internal/store"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
	"github.com/twiced-technology-gmbh/tasklist/internal/watcher"
)

var flagWatch bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists active and completed tasks in two panes, sorted with the most urgent
first. Use --filter to show a single tag.

Use --watch to keep the listing live-updating whenever the task data changes on
disk (e.g., from the TUI in another terminal). Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringP("filter", "f", task.AllLists, "show only tasks with this tag")
	listCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "live-update the listing on changes")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	filter, _ := cmd.Flags().GetString("filter")

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.Dispatch(store.FilterCommand{Filter: board.ParseFilter(filter)}); err != nil {
		return err
	}
	if err := renderView(s.View()); err != nil {
		return err
	}

	if !flagWatch {
		return nil
	}
	return watchList(s)
}

func watchList(s *store.Store) error {
	path := storage.WatchPath(s.Backend(), s.Key())
	if path == "" {
		return clierr.New(clierr.InvalidInput, "--watch needs a file or sqlite storage backend")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var mu sync.Mutex
	w, err := watcher.New([]string{path}, func() {
		mu.Lock()
		defer mu.Unlock()
		clearScreen()
		printWarning(s.Reload())
		if renderErr := renderView(s.View()); renderErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: rendering list: %v\n", renderErr)
		}
	})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	w.Run(ctx, func(watchErr error) {
		fmt.Fprintf(os.Stderr, "Warning: file watcher: %v\n", watchErr)
	})

	return nil
}

// clearScreen sends ANSI escape codes to clear the terminal and move the
// cursor to the top-left corner.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}
