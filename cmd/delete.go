package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/store"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Removes a task permanently. Prompts for confirmation in interactive mode;
pass --yes when running non-interactively.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	yes, _ := cmd.Flags().GetBool("yes")

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	t, ok := s.Get(id)
	if !ok {
		return reportMutation(s, store.ActionDelete, id, false, "")
	}

	confirm := store.AlwaysConfirm
	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return clierr.New(clierr.ConfirmationReq,
				"cannot prompt for confirmation (not a terminal); use --yes")
		}
		confirm = store.ConfirmFunc(promptDelete)
	}

	changed, err := runAction(s, store.Request{Action: store.ActionDelete, ID: id, Confirm: confirm})
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(os.Stderr, "Canceled.")
		return nil
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, output.MutationResult{
			ID: id, Action: string(store.ActionDelete), Changed: true, Task: t,
		})
	}
	output.Messagef(os.Stdout, "Deleted task #%d: %s", t.ID, t.Text)
	return nil
}

// promptDelete asks on the terminal whether t may be deleted.
func promptDelete(t *task.Task) (bool, error) {
	fmt.Fprintf(os.Stderr, "Delete task #%d %q? [y/N] ", t.ID, t.Text)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}
