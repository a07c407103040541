package cmd

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/config"
	"github.com/twiced-technology-gmbh/tasklist/internal/date"
	"github.com/twiced-technology-gmbh/tasklist/internal/storage"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// setupConfig writes a file-backed config into a temp dir and points the
// CLI at it.
func setupConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.NewDefault()
	cfg.SetPath(filepath.Join(dir, config.ConfigFileName))
	cfg.Storage.Path = dir
	require.NoError(t, cfg.Save())
	t.Setenv(config.EnvConfig, cfg.Path())
	t.Setenv("NO_COLOR", "1")
	return dir
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func loadTasks(t *testing.T, dir string) []*task.Task {
	t.Helper()
	b, err := storage.NewFileBackend(dir)
	require.NoError(t, err)
	tasks, err := storage.Load(b, config.DefaultKey)
	require.NoError(t, err)
	return tasks
}

func TestTaskLifecycle(t *testing.T) {
	dir := setupConfig(t)

	require.NoError(t, run(t, "add", "Buy", "milk", "--tag", "Shopping", "--due", "2024-06-08", "--time", "09:30"))
	tasks := loadTasks(t, dir)
	require.Len(t, tasks, 1)
	milk := tasks[0]
	assert.Equal(t, "Buy milk", milk.Text)
	assert.Equal(t, "Shopping", milk.List)
	assert.Equal(t, date.New(2024, 6, 8), milk.DueDate)
	assert.Equal(t, "09:30", milk.DueTime)
	id := strconv.FormatInt(milk.ID, 10)

	require.NoError(t, run(t, "done", id))
	assert.True(t, loadTasks(t, dir)[0].IsCompleted)

	require.NoError(t, run(t, "edit", id, "Buy", "oat", "milk"))
	got := loadTasks(t, dir)[0]
	assert.Equal(t, "Buy oat milk", got.Text)
	assert.True(t, got.IsCompleted)

	require.NoError(t, run(t, "list", "--filter", "Shopping"))
	require.NoError(t, run(t, "tags"))
	require.NoError(t, run(t, "show", id))

	require.NoError(t, run(t, "rm", id, "--yes"))
	assert.Empty(t, loadTasks(t, dir))
}

func TestLookupMissIsNotAnError(t *testing.T) {
	setupConfig(t)
	assert.NoError(t, run(t, "done", "42"))
	assert.NoError(t, run(t, "edit", "42", "text"))
}

func TestShowMissing(t *testing.T) {
	setupConfig(t)
	err := run(t, "show", "42")
	assert.True(t, clierr.HasCode(err, clierr.TaskNotFound))
}

func TestAddValidation(t *testing.T) {
	dir := setupConfig(t)

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"blank text", []string{"add", "   "}, clierr.EmptyText},
		{"bad time", []string{"add", "x", "--time", "9:30"}, clierr.InvalidTime},
		{"bad date", []string{"add", "x", "--time", "", "--due", "June 8"}, clierr.InvalidDate},
		{"reserved tag", []string{"add", "x", "--due", "", "--list", "All"}, clierr.ReservedTag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(t, tt.args...)
			assert.True(t, clierr.HasCode(err, tt.code), "got %v", err)
		})
	}
	assert.Empty(t, loadTasks(t, dir))
}

func TestEditRejectsEmptyText(t *testing.T) {
	setupConfig(t)
	err := run(t, "edit", "1", " ")
	assert.True(t, clierr.HasCode(err, clierr.EmptyText))
}

func TestInvalidID(t *testing.T) {
	setupConfig(t)
	err := run(t, "done", "abc")
	assert.True(t, clierr.HasCode(err, clierr.InvalidTaskID))
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		t.Skip("stdin is a terminal")
	}
	dir := setupConfig(t)
	require.NoError(t, run(t, "add", "Keep", "--list", "Work"))
	id := strconv.FormatInt(loadTasks(t, dir)[0].ID, 10)

	deleteCmd.Flags().Set("yes", "false") //nolint:errcheck // known flag
	err := run(t, "delete", id)
	assert.True(t, clierr.HasCode(err, clierr.ConfirmationReq))
	assert.Len(t, loadTasks(t, dir), 1)
}

func TestConfigSetGet(t *testing.T) {
	setupConfig(t)
	require.NoError(t, run(t, "config", "set", "lists.default", "Work"))

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Work", cfg.Lists.Default)

	err = run(t, "config", "set", "lists.default", "All")
	assert.True(t, clierr.HasCode(classify(err), clierr.InvalidConfig))

	err = run(t, "config", "get", "nope")
	assert.True(t, clierr.HasCode(classify(err), clierr.InvalidConfig))
}

func TestEphemeralLeavesStorageUntouched(t *testing.T) {
	dir := setupConfig(t)
	t.Cleanup(func() { flagEphem = false })

	require.NoError(t, run(t, "--ephemeral", "add", "Scratch", "--list", "Work"))
	assert.Empty(t, loadTasks(t, dir))
}
