package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/tasklist/internal/board"
	"github.com/twiced-technology-gmbh/tasklist/internal/store"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

type formField int

const (
	fieldText formField = iota
	fieldList
	fieldDue
	fieldTime
	fieldCount
)

// form holds the add and edit dialogs. editID is zero while adding.
type form struct {
	editID  int64
	focus   formField
	text    textinput.Model
	due     textinput.Model
	time    textinput.Model
	options []board.ListChoice
	listIdx int
	newTag  string
}

func (f *form) editing() bool { return f.editID != 0 }

func (f *form) choice() board.ListChoice {
	if f.listIdx < 0 || f.listIdx >= len(f.options) {
		return board.AddNewTag()
	}
	return f.options[f.listIdx]
}

// listLabel is what the list field currently shows.
func (f *form) listLabel() string {
	c := f.choice()
	if c.IsAddNew() && f.newTag != "" {
		return f.newTag + " (new)"
	}
	return c.Label()
}

// indexOf returns the option for the named tag, or -1.
func (f *form) indexOf(name string) int {
	return slices.IndexFunc(f.options, func(c board.ListChoice) bool {
		return !c.IsAddNew() && c.Name() == name
	})
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return in
}

func (b *Board) openAddForm() tea.Cmd {
	f := form{
		text:    newInput("What needs doing?", 200),
		due:     newInput("YYYY-MM-DD", 10),
		time:    newInput("HH:MM", 5),
		options: b.v.Options,
	}
	// Preselect the filtered tag so new tasks stay visible.
	f.listIdx = f.indexOf(b.store.DefaultList())
	if !b.v.Filter.IsAll() {
		if i := f.indexOf(b.v.Filter.Tag()); i >= 0 {
			f.listIdx = i
		}
	}
	f.listIdx = max(f.listIdx, 0)
	b.form = f
	b.view = viewForm
	b.err = nil
	return b.form.text.Focus()
}

func (b *Board) openEditForm(t *task.Task) tea.Cmd {
	f := form{editID: t.ID, text: newInput("What needs doing?", 200)}
	f.text.SetValue(t.Text)
	b.form = f
	b.view = viewForm
	b.err = nil
	return b.form.text.Focus()
}

func (b *Board) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &b.form
	switch msg.String() {
	case keyEsc:
		b.view = viewList
		b.err = nil
		return b, nil
	case "tab", "down":
		return b, b.focusField(f.focus + 1)
	case "shift+tab", "up":
		return b, b.focusField(f.focus - 1)
	case keyEnter:
		if !f.editing() && f.focus == fieldList && f.choice().IsAddNew() {
			return b, b.openNewTag()
		}
		return b, b.submitForm()
	}

	if f.focus == fieldList {
		switch msg.String() {
		case "h", "left":
			b.cycleList(-1)
		case "l", "right", " ":
			b.cycleList(1)
		}
		return b, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldText:
		f.text, cmd = f.text.Update(msg)
	case fieldDue:
		f.due, cmd = f.due.Update(msg)
	case fieldTime:
		f.time, cmd = f.time.Update(msg)
	}
	return b, cmd
}

// focusField moves focus to field, wrapping around. The edit form only has
// the text field.
func (b *Board) focusField(field formField) tea.Cmd {
	f := &b.form
	if f.editing() {
		return nil
	}
	field = (field + fieldCount) % fieldCount
	f.focus = field
	f.text.Blur()
	f.due.Blur()
	f.time.Blur()
	switch field {
	case fieldText:
		return f.text.Focus()
	case fieldDue:
		return f.due.Focus()
	case fieldTime:
		return f.time.Focus()
	}
	return nil
}

func (b *Board) cycleList(delta int) {
	f := &b.form
	if len(f.options) == 0 {
		return
	}
	f.listIdx = (f.listIdx + delta + len(f.options)) % len(f.options)
	f.newTag = ""
}

func (b *Board) submitForm() tea.Cmd {
	f := &b.form
	if f.editing() {
		b.act(store.Request{Action: store.ActionEdit, ID: f.editID, Text: f.text.Value()})
		if b.err == nil {
			b.view = viewList
		}
		return nil
	}

	due, err := task.ParseDueDate(strings.TrimSpace(f.due.Value()))
	if err != nil {
		b.err = err
		return nil
	}
	choice := f.choice()
	if choice.IsAddNew() && f.newTag != "" {
		choice = board.ExistingTag(f.newTag)
	}
	_, err = b.store.Dispatch(store.CreateCommand{Input: store.CreateInput{
		Text:    f.text.Value(),
		List:    choice,
		DueDate: due,
		DueTime: strings.TrimSpace(f.time.Value()),
	}})
	b.err = err
	if err == nil {
		b.view = viewList
		b.pane = paneActive
	}
	return nil
}

func (b *Board) openNewTag() tea.Cmd {
	b.tagInput.SetValue(b.form.newTag)
	b.view = viewNewTag
	return b.tagInput.Focus()
}

func (b *Board) handleNewTagKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		name := strings.TrimSpace(b.tagInput.Value())
		if name == "" {
			b.revertList()
			return b, b.closeNewTag()
		}
		if err := task.ValidateList(name); err != nil {
			b.err = err
			return b, nil
		}
		if i := b.form.indexOf(name); i >= 0 {
			b.form.listIdx = i
			b.form.newTag = ""
		} else {
			b.form.newTag = name
		}
		b.err = nil
		return b, b.closeNewTag()
	case keyEsc:
		b.revertList()
		return b, b.closeNewTag()
	}

	var cmd tea.Cmd
	b.tagInput, cmd = b.tagInput.Update(msg)
	return b, cmd
}

// revertList drops back to the default list after an abandoned new tag.
func (b *Board) revertList() {
	b.form.newTag = ""
	b.form.listIdx = max(b.form.indexOf(b.store.DefaultList()), 0)
	b.err = nil
}

func (b *Board) closeNewTag() tea.Cmd {
	b.tagInput.Blur()
	b.tagInput.SetValue("")
	b.view = viewForm
	return b.focusField(fieldDue)
}
