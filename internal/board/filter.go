// Package board derives what is shown from the task collection: the
// filtered and sorted panes, the known tags, and the filter toggles.
package board

import (
	"encoding/json"
	"strings"

	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// Filter selects which tasks are visible. The zero Filter is All.
type Filter struct {
	tag   string
	named bool
}

// All returns the filter that matches every task.
func All() Filter { return Filter{} }

// Named returns a filter matching tasks whose list is exactly tag.
func Named(tag string) Filter { return Filter{tag: tag, named: true} }

// ParseFilter maps "All" or "" to All and anything else to Named.
func ParseFilter(s string) Filter {
	s = strings.TrimSpace(s)
	if s == "" || s == task.AllLists {
		return All()
	}
	return Named(s)
}

// IsAll reports whether f matches every task.
func (f Filter) IsAll() bool { return !f.named }

// Tag returns the list name for a Named filter, or "" for All.
func (f Filter) Tag() string { return f.tag }

// Matches reports whether t passes the filter. Comparison is exact and
// case-sensitive.
func (f Filter) Matches(t *task.Task) bool {
	return !f.named || t.List == f.tag
}

// String returns "All" or the tag name.
func (f Filter) String() string {
	if !f.named {
		return task.AllLists
	}
	return f.tag
}

// Select returns the tasks matching f, preserving order.
func Select(tasks []*task.Task, f Filter) []*task.Task {
	result := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			result = append(result, t)
		}
	}
	return result
}

// MarshalJSON encodes the filter as its String form.
func (f Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}
