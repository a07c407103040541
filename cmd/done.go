package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/store"
)

var doneCmd = &cobra.Command{
	Use:     "done ID",
	Aliases: []string{"toggle"},
	Short:   "Toggle a task between active and completed",
	Args:    cobra.ExactArgs(1),
	RunE:    runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	changed, err := runAction(s, store.Request{Action: store.ActionToggle, ID: id})
	if err != nil {
		return err
	}

	verb := "Reopened"
	if t, ok := s.Get(id); ok && t.IsCompleted {
		verb = "Completed"
	}
	return reportMutation(s, store.ActionToggle, id, changed, verb)
}

// runAction dispatches a per-task request.
func runAction(s *store.Store, r store.Request) (bool, error) {
	c, err := store.ActionFor(r)
	if err != nil {
		return false, err
	}
	return s.Dispatch(c)
}
