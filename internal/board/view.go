package board

import (
	"github.com/twiced-technology-gmbh/tasklist/internal/date"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// Card is one task as rendered, with the presentation rules already applied.
type Card struct {
	*task.Task

	Overdue      bool   `json:"overdue"`
	OverdueDays  int    `json:"overdueDays,omitempty"`
	DueLabel     string `json:"dueLabel,omitempty"`
	OverdueLabel string `json:"overdueLabel,omitempty"`
}

// View is everything a renderer needs to draw the task list.
type View struct {
	Incomplete []Card       `json:"incomplete"`
	Completed  []Card       `json:"completed"`
	Tags       []string     `json:"tags"`
	Toggles    []Toggle     `json:"toggles"`
	Options    []ListChoice `json:"-"`
	Filter     Filter       `json:"filter"`
	Today      date.Date    `json:"today"`

	// Empty-state messages; set only when the pane has no cards.
	EmptyIncomplete string `json:"emptyIncomplete,omitempty"`
	EmptyCompleted  string `json:"emptyCompleted,omitempty"`
}

// Renderer draws a View.
type Renderer interface {
	Render(View)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(View)

// Render calls f(v).
func (f RendererFunc) Render(v View) { f(v) }

// ViewOptions configures Build.
type ViewOptions struct {
	Base       []string
	DateFormat string
}

// Build derives the view of tasks under filter f as of today. Overdue flags
// depend on today and must be recomputed for every render.
func Build(tasks []*task.Task, f Filter, today date.Date, opts ViewOptions) View {
	base := opts.Base
	if base == nil {
		base = BaseTags
	}
	known := KnownTags(base, tasks)
	incomplete, completed := Partition(Apply(tasks, f))

	v := View{
		Incomplete: cards(incomplete, today, opts.DateFormat),
		Completed:  cards(completed, today, opts.DateFormat),
		Tags:       known,
		Toggles:    FilterToggles(known, f),
		Options:    ListOptions(known),
		Filter:     f,
		Today:      today,
	}
	if len(v.Incomplete) == 0 {
		v.EmptyIncomplete = EmptyMessage("active", f)
	}
	if len(v.Completed) == 0 {
		v.EmptyCompleted = EmptyMessage("completed", f)
	}
	return v
}

// EmptyMessage returns "No {state} {tag }tasks.", omitting the tag for All.
func EmptyMessage(state string, f Filter) string {
	if f.IsAll() {
		return "No " + state + " tasks."
	}
	return "No " + state + " " + f.Tag() + " tasks."
}

func cards(tasks []*task.Task, today date.Date, layout string) []Card {
	out := make([]Card, 0, len(tasks))
	for _, t := range tasks {
		c := Card{Task: t.Clone(), DueLabel: task.FormatDue(t, layout)}
		if days, ok := task.Overdue(t, today); ok {
			c.Overdue = true
			c.OverdueDays = days
			c.OverdueLabel = task.OverdueLabel(days)
		}
		out = append(out, c)
	}
	return out
}
