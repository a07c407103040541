package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Long:  `Displays a single task with its tag, state, and due date.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	t, ok := s.Get(id)
	if !ok {
		return task.NotFound(id)
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, output.CardFor(t, s.View()))
	case output.FormatCompact:
		output.TaskDetailCompact(os.Stdout, output.CardFor(t, s.View()))
	default:
		output.TaskDetail(os.Stdout, t, s.Today(), cfg.DateFormat())
	}
	return nil
}
