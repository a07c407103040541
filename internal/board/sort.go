package board

import (
	"sort"
	"strings"

	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// Sort orders tasks in place: incomplete before completed, then by due
// date (dated first, earliest first), then by due time (timed first,
// lexicographic HH:MM). Ties keep their input order.
func Sort(tasks []*task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return compareTasks(tasks[i], tasks[j]) < 0
	})
}

// Apply returns the tasks matching f in display order. The input slice is
// not modified.
func Apply(tasks []*task.Task, f Filter) []*task.Task {
	result := Select(tasks, f)
	Sort(result)
	return result
}

// Partition splits sorted tasks into incomplete and completed, preserving order.
func Partition(sorted []*task.Task) (incomplete, completed []*task.Task) {
	for _, t := range sorted {
		if t.IsCompleted {
			completed = append(completed, t)
		} else {
			incomplete = append(incomplete, t)
		}
	}
	return incomplete, completed
}

func compareTasks(a, b *task.Task) int {
	if a.IsCompleted != b.IsCompleted {
		if a.IsCompleted {
			return 1
		}
		return -1
	}
	if c := compareDueDate(a, b); c != 0 {
		return c
	}
	return compareDueTime(a, b)
}

func compareDueDate(a, b *task.Task) int {
	switch {
	case !a.HasDueDate() && !b.HasDueDate():
		return 0
	case !a.HasDueDate():
		return 1 // absent sorts last
	case !b.HasDueDate():
		return -1
	}
	return a.DueDate.Compare(b.DueDate.Time)
}

func compareDueTime(a, b *task.Task) int {
	switch {
	case !a.HasDueTime() && !b.HasDueTime():
		return 0
	case !a.HasDueTime():
		return 1
	case !b.HasDueTime():
		return -1
	}
	return strings.Compare(a.DueTime, b.DueTime)
}
