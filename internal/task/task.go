// Package task defines the task entity, its validation rules, and the
// overdue presentation rule.
package task

import (
	"github.com/twiced-technology-gmbh/tasklist/internal/date"
)

// Task is a single to-do item. The JSON field names are the persisted
// format and must not change.
type Task struct {
	ID          int64     `json:"id" yaml:"id"`
	Text        string    `json:"text" yaml:"text"`
	IsCompleted bool      `json:"isCompleted" yaml:"isCompleted"`
	List        string    `json:"list" yaml:"list"`
	DueDate     date.Date `json:"dueDate" yaml:"dueDate"`
	DueTime     string    `json:"dueTime" yaml:"dueTime"`
}

// HasDueDate reports whether a due date is set.
func (t *Task) HasDueDate() bool { return !t.DueDate.IsZero() }

// HasDueTime reports whether a due time is set.
func (t *Task) HasDueTime() bool { return t.DueTime != "" }

// Clone returns a copy of t.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// CloneAll copies every task in tasks, preserving order.
func CloneAll(tasks []*Task) []*Task {
	out := make([]*Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
