package task

import (
	"bytes"
	"fmt"

	"github.com/twiced-technology-gmbh/tasklist/internal/date"
)

// DefaultDateFormat is the layout due dates are displayed with.
const DefaultDateFormat = "Jan 2, 2006"

// FormatDue renders the due date and time for display, e.g.
// "Jan 2, 2006 09:30". Either part may be missing.
func FormatDue(t *Task, layout string) string {
	if layout == "" {
		layout = DefaultDateFormat
	}
	switch {
	case t.HasDueDate() && t.HasDueTime():
		return t.DueDate.Format(layout) + " " + t.DueTime
	case t.HasDueDate():
		return t.DueDate.Format(layout)
	case t.HasDueTime():
		return t.DueTime
	}
	return ""
}

// Markdown renders a task as a markdown document for detail views.
func Markdown(t *Task, today date.Date, layout string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", t.Text)

	status := "open"
	if t.IsCompleted {
		status = "completed"
	}
	fmt.Fprintf(&buf, "- **ID:** %d\n", t.ID)
	fmt.Fprintf(&buf, "- **List:** %s\n", t.List)
	fmt.Fprintf(&buf, "- **Status:** %s\n", status)
	if due := FormatDue(t, layout); due != "" {
		fmt.Fprintf(&buf, "- **Due:** %s\n", due)
	}
	if days, ok := Overdue(t, today); ok {
		fmt.Fprintf(&buf, "\n> **%s**\n", OverdueLabel(days))
	}
	return buf.String()
}
