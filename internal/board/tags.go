package board

import (
	"github.com/twiced-technology-gmbh/tasklist/internal/date"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// BaseTags are the lists offered before any task exists.
var BaseTags = []string{"General", "Work", "Personal", "Study", "Shopping"}

// AddNewLabel is how the add-new choice is shown in list pickers.
const AddNewLabel = "+ Add New Tag..."

// KnownTags returns base followed by every other list used by tasks, in
// order of first use. Duplicates and empty names are dropped.
func KnownTags(base []string, tasks []*task.Task) []string {
	seen := make(map[string]bool, len(base)+len(tasks))
	tags := make([]string, 0, len(base))
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		tags = append(tags, name)
	}
	for _, name := range base {
		add(name)
	}
	for _, t := range tasks {
		add(t.List)
	}
	return tags
}

// ListChoice is one entry of the list picker: either an existing tag or the
// request to type a new one.
type ListChoice struct {
	name   string
	addNew bool
}

// AddNewTag returns the choice that asks the user for a new tag name.
func AddNewTag() ListChoice { return ListChoice{addNew: true} }

// ExistingTag returns the choice for a known tag.
func ExistingTag(name string) ListChoice { return ListChoice{name: name} }

// IsAddNew reports whether c is the add-new choice.
func (c ListChoice) IsAddNew() bool { return c.addNew }

// Name returns the tag name, or "" for the add-new choice.
func (c ListChoice) Name() string { return c.name }

// Label returns the text shown for c in a picker.
func (c ListChoice) Label() string {
	if c.addNew {
		return AddNewLabel
	}
	return c.name
}

// Resolve returns the list a task created with c belongs to. The add-new
// choice and an empty name both resolve to fallback.
func (c ListChoice) Resolve(fallback string) string {
	if c.addNew || c.name == "" {
		return fallback
	}
	return c.name
}

// ListOptions returns the picker entries: the add-new choice followed by
// every known tag.
func ListOptions(known []string) []ListChoice {
	opts := make([]ListChoice, 0, len(known)+1)
	opts = append(opts, AddNewTag())
	for _, name := range known {
		opts = append(opts, ExistingTag(name))
	}
	return opts
}

// Toggle is one filter button.
type Toggle struct {
	Filter Filter `json:"-"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// FilterToggles returns the All toggle followed by one toggle per known tag.
func FilterToggles(known []string, active Filter) []Toggle {
	toggles := make([]Toggle, 0, len(known)+1)
	toggles = append(toggles, Toggle{Filter: All(), Label: task.AllLists, Active: active.IsAll()})
	for _, name := range known {
		f := Named(name)
		toggles = append(toggles, Toggle{Filter: f, Label: name, Active: active == f})
	}
	return toggles
}

// TagSummary counts the tasks in one list.
type TagSummary struct {
	Tag       string `json:"tag"`
	Total     int    `json:"total"`
	Active    int    `json:"active"`
	Completed int    `json:"completed"`
	Overdue   int    `json:"overdue"`
	Base      bool   `json:"base"`
}

// Summarize returns one summary per known tag, in KnownTags order.
func Summarize(base []string, tasks []*task.Task, today date.Date) []TagSummary {
	known := KnownTags(base, tasks)
	isBase := make(map[string]bool, len(base))
	for _, name := range base {
		isBase[name] = true
	}

	byTag := make(map[string]*TagSummary, len(known))
	out := make([]TagSummary, len(known))
	for i, name := range known {
		out[i] = TagSummary{Tag: name, Base: isBase[name]}
		byTag[name] = &out[i]
	}
	for _, t := range tasks {
		s, ok := byTag[t.List]
		if !ok {
			continue
		}
		s.Total++
		if t.IsCompleted {
			s.Completed++
		} else {
			s.Active++
		}
		if _, overdue := task.Overdue(t, today); overdue {
			s.Overdue++
		}
	}
	return out
}
