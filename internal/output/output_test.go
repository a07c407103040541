package output

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/tasklist/internal/board"
	"github.com/twiced-technology-gmbh/tasklist/internal/date"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

var today = date.New(2024, 6, 10)

func TestMain(m *testing.M) {
	DisableColor()
	os.Exit(m.Run())
}

func sampleView(f board.Filter) board.View {
	tasks := []*task.Task{
		{ID: 1, Text: "Buy milk", List: "Shopping", DueDate: today.AddDays(-2)},
		{ID: 2, Text: "Call mom", List: "Personal", DueDate: today.AddDays(1), DueTime: "19:30"},
		{ID: 3, Text: "Essay", List: "Study", IsCompleted: true},
	}
	return board.Build(tasks, f, today, board.ViewOptions{})
}

func TestDetect(t *testing.T) {
	t.Setenv(EnvOutput, "")
	assert.Equal(t, FormatJSON, Detect(true, true, true))
	assert.Equal(t, FormatCompact, Detect(false, true, true))
	assert.Equal(t, FormatTable, Detect(false, true, false))
	assert.Equal(t, FormatTable, Detect(false, false, false))

	t.Setenv(EnvOutput, "json")
	assert.Equal(t, FormatJSON, Detect(false, false, false))
	t.Setenv(EnvOutput, "oneline")
	assert.Equal(t, FormatCompact, Detect(false, false, false))
}

func TestViewTable(t *testing.T) {
	var buf bytes.Buffer
	ViewTable(&buf, sampleView(board.All()))
	out := buf.String()

	assert.Contains(t, out, "Active\n")
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Jun 8, 2024 (Overdue: 2 days ago)")
	assert.Contains(t, out, "Jun 11, 2024 19:30")
	assert.Contains(t, out, "Essay")
	assert.Contains(t, out, "Filter: [All] General Work Personal Study Shopping")
	assert.NotContains(t, out, "No active")
}

func TestViewTableEmptyPanes(t *testing.T) {
	var buf bytes.Buffer
	ViewTable(&buf, sampleView(board.Named("Work")))
	out := buf.String()

	assert.Contains(t, out, "No active Work tasks.")
	assert.Contains(t, out, "No completed Work tasks.")
	assert.Contains(t, out, "[Work]")
}

func TestViewCompact(t *testing.T) {
	var buf bytes.Buffer
	ViewCompact(&buf, sampleView(board.All()))

	want := "active (All):\n" +
		"  #1 [ ] Buy milk (Shopping) due:Jun_8,_2024 !Overdue: 2 days ago\n" +
		"  #2 [ ] Call mom (Personal) due:Jun_11,_2024_19:30\n" +
		"completed (All):\n" +
		"  #3 [x] Essay (Study)\n"
	assert.Equal(t, want, buf.String())
}

func TestJSONView(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleView(board.Named("Study"))))

	var decoded struct {
		Filter          string           `json:"filter"`
		Incomplete      []map[string]any `json:"incomplete"`
		Completed       []map[string]any `json:"completed"`
		EmptyIncomplete string           `json:"emptyIncomplete"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Study", decoded.Filter)
	assert.Empty(t, decoded.Incomplete)
	require.Len(t, decoded.Completed, 1)
	assert.Equal(t, "No active Study tasks.", decoded.EmptyIncomplete)
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "EMPTY_TEXT", "task text cannot be empty", nil)
	assert.JSONEq(t, `{"error":"task text cannot be empty","code":"EMPTY_TEXT"}`, buf.String())
}

func TestTaskDetail(t *testing.T) {
	var buf bytes.Buffer
	tk := &task.Task{ID: 7, Text: "Buy milk", List: "Shopping", DueDate: today.AddDays(-2)}
	TaskDetail(&buf, tk, today, "")
	out := buf.String()

	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Shopping")
	assert.Contains(t, out, "Overdue: 2 days ago")
}

func TestTagTable(t *testing.T) {
	tasks := []*task.Task{
		{List: "Work", DueDate: today.AddDays(-1)},
		{List: "Garden", IsCompleted: true},
	}
	var buf bytes.Buffer
	TagTable(&buf, board.Summarize([]string{"Work"}, tasks, today))
	out := buf.String()

	assert.Contains(t, out, "TAG")
	assert.Contains(t, out, "Work")
	assert.Contains(t, out, "Garden*")
}

func TestTagsCompact(t *testing.T) {
	var buf bytes.Buffer
	TagsCompact(&buf, []board.TagSummary{
		{Tag: "Work", Total: 3, Active: 2, Overdue: 1},
		{Tag: "Study"},
	})
	assert.Equal(t, "Work: 2/3 (1 overdue)\nStudy: 0/0\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ääääääá...", truncate("ääääääáááááá", 10))
}
