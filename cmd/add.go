package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/tasklist/internal/board"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/store"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

var addCmd = &cobra.Command{
	Use:     "add TEXT",
	Aliases: []string{"create"},
	Short:   "Add a task",
	Long: `Adds a task to the list. The task goes to the default tag unless --list is
given; an unknown tag is created on first use. Due date and time are optional.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringP("list", "l", "", "tag to file the task under (default from config)")
	addCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().String("time", "", "due time (HH:MM, 24-hour)")
	addCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "tag":
			name = "list"
		case "at":
			name = "time"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	in, err := addInput(cmd, args)
	if err != nil {
		return err
	}

	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := s.Create(in)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	output.Messagef(os.Stdout, "Added task #%d: %s", t.ID, t.Text)
	if due := task.FormatDue(t, cfg.DateFormat()); due != "" {
		output.Messagef(os.Stdout, "  List: %s | Due: %s", t.List, due)
	} else {
		output.Messagef(os.Stdout, "  List: %s", t.List)
	}
	return nil
}

// addInput validates the flags before any storage is touched.
func addInput(cmd *cobra.Command, args []string) (store.CreateInput, error) {
	list, _ := cmd.Flags().GetString("list")
	due, _ := cmd.Flags().GetString("due")
	dueTime, _ := cmd.Flags().GetString("time")

	in := store.CreateInput{Text: strings.Join(args, " "), DueTime: strings.TrimSpace(dueTime)}
	if _, err := task.NormalizeText(in.Text); err != nil {
		return in, err
	}
	if err := task.ValidateDueTime(in.DueTime); err != nil {
		return in, err
	}
	d, err := task.ParseDueDate(due)
	if err != nil {
		return in, err
	}
	in.DueDate = d

	if list = strings.TrimSpace(list); list != "" {
		if err := task.ValidateList(list); err != nil {
			return in, err
		}
		in.List = board.ExistingTag(list)
	}
	return in, nil
}
