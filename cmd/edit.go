package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/store"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit ID TEXT",
	Short: "Change a task's text",
	Long: `Replaces the text of an existing task. The tag and due date stay as they
are; the text may not be empty.`,
	Args: cobra.MinimumNArgs(2), //nolint:mnd // id and text
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")
	if _, err := task.NormalizeText(text); err != nil {
		return err
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	changed, err := runAction(s, store.Request{Action: store.ActionEdit, ID: id, Text: text})
	if err != nil {
		return err
	}
	return reportMutation(s, store.ActionEdit, id, changed, "Updated")
}
