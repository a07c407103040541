package store

import (
	"github.com/twiced-technology-gmbh/tasklist/internal/board"
	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// Confirmer decides whether a destructive action may proceed.
type Confirmer interface {
	Confirm(t *task.Task) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(t *task.Task) (bool, error)

// Confirm calls f(t).
func (f ConfirmFunc) Confirm(t *task.Task) (bool, error) { return f(t) }

// AlwaysConfirm approves every request.
var AlwaysConfirm Confirmer = ConfirmFunc(func(*task.Task) (bool, error) { return true, nil })

// Command is one store operation, built by a UI and run with Dispatch.
type Command interface {
	execute(s *Store) (bool, error)
}

// CreateCommand adds a task.
type CreateCommand struct{ Input CreateInput }

// DeleteCommand removes a task after confirmation.
type DeleteCommand struct {
	ID      int64
	Confirm Confirmer
}

// ToggleCommand flips a task's completion state.
type ToggleCommand struct{ ID int64 }

// EditCommand replaces a task's text.
type EditCommand struct {
	ID   int64
	Text string
}

// FilterCommand changes the active filter.
type FilterCommand struct{ Filter board.Filter }

func (c CreateCommand) execute(s *Store) (bool, error) {
	_, err := s.Create(c.Input)
	return err == nil, err
}

func (c DeleteCommand) execute(s *Store) (bool, error) { return s.Delete(c.ID, c.Confirm) }

func (c ToggleCommand) execute(s *Store) (bool, error) { return s.ToggleComplete(c.ID) }

func (c EditCommand) execute(s *Store) (bool, error) { return s.EditText(c.ID, c.Text) }

func (c FilterCommand) execute(s *Store) (bool, error) {
	s.SetFilter(c.Filter)
	return true, nil
}

// Dispatch runs cmd. changed is false for lookup misses and declined
// confirmations.
func (s *Store) Dispatch(cmd Command) (changed bool, err error) {
	return cmd.execute(s)
}

// Action names a per-task operation a UI can trigger.
type Action string

// Per-task actions.
const (
	ActionToggle Action = "toggle"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Request is a per-task action together with its arguments. Text is used
// by ActionEdit, Confirm by ActionDelete.
type Request struct {
	Action  Action
	ID      int64
	Text    string
	Confirm Confirmer
}

// ActionFor turns a request into the command that carries it out.
func ActionFor(r Request) (Command, error) {
	switch r.Action {
	case ActionToggle:
		return ToggleCommand{ID: r.ID}, nil
	case ActionEdit:
		return EditCommand{ID: r.ID, Text: r.Text}, nil
	case ActionDelete:
		return DeleteCommand{ID: r.ID, Confirm: r.Confirm}, nil
	}
	return nil, clierr.Newf(clierr.InvalidInput, "unknown action %q", r.Action).
		WithDetails(map[string]any{"action": string(r.Action)})
}
