package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/board"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags with task counts",
	Long: `Lists every tag: the configured base tags first, then tags introduced by
tasks, in order of first use. Tags marked * are not in the base set.`,
	Args: cobra.NoArgs,
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(_ *cobra.Command, _ []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	summary := board.Summarize(cfg.Lists.Base, s.Tasks(), s.Today())

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, summary)
	case output.FormatCompact:
		output.TagsCompact(os.Stdout, summary)
	default:
		output.TagTable(os.Stdout, summary)
	}
	return nil
}
