// Package cmd implements the tasklist CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/board"
	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/config"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/storage"
	"github.com/twiced-technology-gmbh/tasklist/internal/store"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagConfig  string
	flagNoColor bool
	flagEphem   bool
)

var rootCmd = &cobra.Command{
	Use:   "tasklist",
	Short: "Tagged to-do list for the terminal",
	Long: `tasklist keeps a to-do list of tasks filed under tags, with optional due
dates. Run tasklist without arguments to open the interactive list.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default $"+config.EnvConfig+")")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().BoolVar(&flagEphem, "ephemeral", false, "keep tasks in memory for this run only")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// SilentError: exit with its code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	err = classify(err)

	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv(output.EnvOutput) == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// classify maps config sentinels onto coded errors.
func classify(err error) error {
	if errors.Is(err, config.ErrInvalid) || errors.Is(err, config.ErrUnknown) {
		return clierr.Wrap(clierr.InvalidConfig, err, "config")
	}
	return err
}

// loadConfig loads the config file, writing defaults on first run.
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return config.LoadOrInit(path)
}

// openStore loads the config and opens the task store it points at. Load
// warnings are printed to stderr; the store starts empty in that case.
func openStore() (*store.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if flagEphem {
		cfg.Storage.Backend = config.BackendMemory
	}
	backend, err := storage.Open(cfg)
	if err != nil {
		return nil, nil, clierr.Wrap(clierr.StorageError, err, "opening storage")
	}

	s, err := store.Open(backend,
		store.WithKey(cfg.Storage.Key),
		store.WithDefaultList(cfg.Lists.Default),
		store.WithBaseTags(cfg.Lists.Base),
		store.WithDateFormat(cfg.DateFormat()),
		store.WithActivityLog(cfg.Dir()),
	)
	if err != nil {
		_ = backend.Close()
		return nil, nil, err
	}
	printWarning(s.Warning())
	return s, cfg, nil
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// printWarning writes a load warning to stderr.
func printWarning(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

// parseID parses a task ID argument.
func parseID(arg string) (int64, error) {
	return task.ParseID(arg)
}

// noteMissing tells the user that a command found nothing to act on. A
// lookup miss is not an error.
func noteMissing(id int64) {
	fmt.Fprintf(os.Stderr, "Note: no task #%d\n", id)
}

// renderView prints the current view in the selected format.
func renderView(v board.View) error {
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, v)
	case output.FormatCompact:
		output.ViewCompact(os.Stdout, v)
	default:
		output.ViewTable(os.Stdout, v)
	}
	return nil
}

// reportMutation prints the outcome of a single-task command.
func reportMutation(s *store.Store, action store.Action, id int64, changed bool, verb string) error {
	t, found := s.Get(id)
	if outputFormat() == output.FormatJSON {
		res := output.MutationResult{ID: id, Action: string(action), Changed: changed}
		if found {
			res.Task = t
		}
		return output.JSON(os.Stdout, res)
	}

	if !changed {
		noteMissing(id)
		return nil
	}
	if found {
		output.Messagef(os.Stdout, "%s task #%d: %s", verb, id, t.Text)
	} else {
		output.Messagef(os.Stdout, "%s task #%d", verb, id)
	}
	return nil
}
