package board

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/tasklist/internal/date"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

var today = date.New(2024, 6, 10)

func ids(tasks []*task.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func cardIDs(cards []Card) []int64 {
	out := make([]int64, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestSortPrecedence(t *testing.T) {
	tasks := []*task.Task{
		{ID: 1, IsCompleted: true, DueDate: today.AddDays(-5)},
		{ID: 2},
		{ID: 3, DueTime: "07:00"},
		{ID: 4, DueDate: today.AddDays(2)},
		{ID: 5, DueDate: today.AddDays(2), DueTime: "09:00"},
		{ID: 6, DueDate: today.AddDays(2), DueTime: "08:30"},
		{ID: 7, DueDate: today.AddDays(-1)},
		{ID: 8, IsCompleted: true},
	}
	Sort(tasks)
	assert.Equal(t, []int64{7, 6, 5, 4, 3, 2, 1, 8}, ids(tasks))
}

func TestSortIsStable(t *testing.T) {
	// Three key classes, several tasks each; the ID encodes insertion order.
	var tasks []*task.Task
	for i := 0; i < 30; i++ {
		tk := &task.Task{ID: int64(i)}
		switch i % 3 {
		case 0:
			tk.DueDate = today
		case 1:
			tk.DueTime = "12:00"
		}
		tasks = append(tasks, tk)
	}

	rng := rand.New(rand.NewSource(42))
	for j := 0; j < 20; j++ {
		shuffled := append([]*task.Task(nil), tasks...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		position := make(map[int64]int, len(shuffled))
		for i, tk := range shuffled {
			position[tk.ID] = i
		}

		Sort(shuffled)
		for i := 1; i < len(shuffled); i++ {
			a, b := shuffled[i-1], shuffled[i]
			require.LessOrEqual(t, compareTasks(a, b), 0, "out of order")
			if compareTasks(a, b) == 0 {
				assert.Less(t, position[a.ID], position[b.ID], "equal keys reordered")
			}
		}
	}
}

func TestSortEqualKeysKeepInsertionOrder(t *testing.T) {
	a := &task.Task{ID: 10, Text: "A", List: "Work"}
	b := &task.Task{ID: 11, Text: "B", List: "Work"}
	got := Apply([]*task.Task{a, b}, All())
	assert.Equal(t, []int64{10, 11}, ids(got))
}

func TestApplyFilter(t *testing.T) {
	tasks := []*task.Task{
		{ID: 1, List: "Work", DueDate: today.AddDays(3)},
		{ID: 2, List: "Shopping"},
		{ID: 3, List: "Work", DueDate: today},
		{ID: 4, List: "work"},
		{ID: 5, List: "Work", IsCompleted: true},
	}
	input := ids(tasks)

	all := Apply(tasks, All())
	assert.Equal(t, []int64{3, 1, 2, 4, 5}, ids(all))
	assert.Equal(t, input, ids(tasks), "input must not be reordered")

	work := Apply(tasks, Named("Work"))
	assert.Equal(t, []int64{3, 1, 5}, ids(work))

	// Same relative order as the unfiltered sort.
	var fromAll []int64
	for _, tk := range all {
		if tk.List == "Work" {
			fromAll = append(fromAll, tk.ID)
		}
	}
	assert.Equal(t, fromAll, ids(work))

	assert.Empty(t, Apply(tasks, Named("Study")))
}

func TestParseFilter(t *testing.T) {
	assert.True(t, ParseFilter("").IsAll())
	assert.True(t, ParseFilter("All").IsAll())
	assert.Equal(t, Named("all"), ParseFilter("all"))
	assert.Equal(t, Named("Work"), ParseFilter(" Work "))
	assert.Equal(t, "All", All().String())
	assert.Equal(t, "Work", Named("Work").String())
	assert.NotEqual(t, All(), Named(""))
}

func TestKnownTags(t *testing.T) {
	tasks := []*task.Task{
		{List: "Garden"},
		{List: "Work"},
		{List: ""},
		{List: "Books"},
		{List: "Garden"},
	}
	assert.Equal(t,
		[]string{"General", "Work", "Personal", "Study", "Shopping", "Garden", "Books"},
		KnownTags(BaseTags, tasks))
}

func TestListOptionsAndResolve(t *testing.T) {
	opts := ListOptions([]string{"General", "Work"})
	require.Len(t, opts, 3)
	assert.True(t, opts[0].IsAddNew())
	assert.Equal(t, AddNewLabel, opts[0].Label())
	assert.Equal(t, "Work", opts[2].Label())

	assert.Equal(t, "General", AddNewTag().Resolve("General"))
	assert.Equal(t, "General", ExistingTag("").Resolve("General"))
	assert.Equal(t, "Work", ExistingTag("Work").Resolve("General"))
}

func TestFilterToggles(t *testing.T) {
	toggles := FilterToggles([]string{"General", "Work"}, Named("Work"))
	require.Len(t, toggles, 3)
	assert.Equal(t, "All", toggles[0].Label)
	assert.False(t, toggles[0].Active)
	assert.True(t, toggles[2].Active)
	assert.Equal(t, Named("Work"), toggles[2].Filter)

	toggles = FilterToggles([]string{"General"}, All())
	assert.True(t, toggles[0].Active)
	assert.False(t, toggles[1].Active)
}

func TestBuildOverdueScenario(t *testing.T) {
	tasks := []*task.Task{
		{ID: 1, Text: "Buy milk", List: "Shopping", DueDate: today.AddDays(-2)},
	}
	v := Build(tasks, All(), today, ViewOptions{})

	require.Len(t, v.Incomplete, 1)
	card := v.Incomplete[0]
	assert.True(t, card.Overdue)
	assert.Equal(t, 2, card.OverdueDays)
	assert.Equal(t, "Overdue: 2 days ago", card.OverdueLabel)
	assert.Empty(t, v.EmptyIncomplete)
	assert.Equal(t, "No completed tasks.", v.EmptyCompleted)
}

func TestBuildOverdueFlags(t *testing.T) {
	tasks := []*task.Task{
		{ID: 1, DueDate: today.AddDays(-1)},
		{ID: 2, DueDate: today.AddDays(-1), IsCompleted: true},
		{ID: 3, DueDate: today},
	}
	v := Build(tasks, All(), today, ViewOptions{})

	require.Len(t, v.Incomplete, 2)
	assert.True(t, v.Incomplete[0].Overdue)
	assert.Equal(t, 1, v.Incomplete[0].OverdueDays)
	assert.False(t, v.Incomplete[1].Overdue)
	require.Len(t, v.Completed, 1)
	assert.False(t, v.Completed[0].Overdue)

	// Same data, one day later: the today task is now overdue.
	later := Build(tasks, All(), today.AddDays(1), ViewOptions{})
	assert.True(t, later.Incomplete[1].Overdue)
	assert.Equal(t, 2, later.Incomplete[0].OverdueDays)
}

func TestBuildEmptyMessages(t *testing.T) {
	v := Build(nil, Named("Work"), today, ViewOptions{})
	assert.Equal(t, "No active Work tasks.", v.EmptyIncomplete)
	assert.Equal(t, "No completed Work tasks.", v.EmptyCompleted)
	assert.Equal(t, BaseTags, v.Tags)

	v = Build(nil, All(), today, ViewOptions{Base: []string{"Inbox"}})
	assert.Equal(t, "No active tasks.", v.EmptyIncomplete)
	assert.Equal(t, []string{"Inbox"}, v.Tags)
	assert.Len(t, v.Options, 2)
}

func TestBuildPanesFollowCompletion(t *testing.T) {
	tk := &task.Task{ID: 1, Text: "Essay", List: "Study"}
	v := Build([]*task.Task{tk}, All(), today, ViewOptions{})
	assert.Equal(t, []int64{1}, cardIDs(v.Incomplete))
	assert.Empty(t, v.Completed)

	tk.IsCompleted = true
	v = Build([]*task.Task{tk}, All(), today, ViewOptions{})
	assert.Empty(t, v.Incomplete)
	assert.Equal(t, []int64{1}, cardIDs(v.Completed))
}

func TestViewJSON(t *testing.T) {
	tasks := []*task.Task{{ID: 9, Text: "Run", List: "Personal", DueDate: today.AddDays(-1)}}
	data, err := json.Marshal(Build(tasks, Named("Personal"), today, ViewOptions{}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Personal", decoded["filter"])
	incomplete := decoded["incomplete"].([]any)
	require.Len(t, incomplete, 1)
	card := incomplete[0].(map[string]any)
	assert.Equal(t, "Run", card["text"])
	assert.Equal(t, true, card["overdue"])
	assert.Equal(t, "Overdue: 1 day ago", card["overdueLabel"])
}

func TestSummarize(t *testing.T) {
	tasks := []*task.Task{
		{List: "Work", DueDate: today.AddDays(-1)},
		{List: "Work", IsCompleted: true},
		{List: "Garden"},
	}
	sums := Summarize([]string{"General", "Work"}, tasks, today)
	require.Len(t, sums, 3)
	assert.Equal(t, TagSummary{Tag: "General", Base: true}, sums[0])
	assert.Equal(t, TagSummary{Tag: "Work", Total: 2, Active: 1, Completed: 1, Overdue: 1, Base: true}, sums[1])
	assert.Equal(t, TagSummary{Tag: "Garden", Total: 1, Active: 1}, sums[2])
}

func TestActivityLog(t *testing.T) {
	dir := t.TempDir()

	entries, err := ReadLog(dir, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)

	LogMutation(dir, "create", 1, "Buy milk")
	LogMutation(dir, "toggle", 1, "completed")
	LogMutation("", "create", 2, "ignored")

	entries, err = ReadLog(dir, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "create", entries[0].Action)
	assert.Equal(t, int64(1), entries[1].TaskID)

	last, err := ReadLog(dir, 1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "toggle", last[0].Action)
}
