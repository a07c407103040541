package task

import (
	"strconv"

	"github.com/twiced-technology-gmbh/tasklist/internal/date"
)

// Overdue reports how many whole days t is past its due date. ok is false
// for completed tasks, tasks without a due date, and tasks due today or
// later.
func Overdue(t *Task, today date.Date) (days int, ok bool) {
	if t.IsCompleted || !t.HasDueDate() {
		return 0, false
	}
	days = date.DaysBetween(t.DueDate, today)
	if days < 1 {
		return 0, false
	}
	return days, true
}

// FormatOverdue renders a day count as "1 day ago" or "N days ago".
func FormatOverdue(days int) string {
	if days == 1 {
		return "1 day ago"
	}
	return strconv.Itoa(days) + " days ago"
}

// OverdueLabel is the label shown on an overdue task.
func OverdueLabel(days int) string {
	return "Overdue: " + FormatOverdue(days)
}
