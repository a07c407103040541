// Package store owns the in-memory task collection and keeps the persisted
// copy in step with it. Every successful mutation is saved before it
// returns; a failed save leaves the collection as it was.
package store

import (
	"errors"
	"slices"
	"time"

	"github.com/twiced-technology-gmbh/tasklist/internal/board"
	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/date"
	"github.com/twiced-technology-gmbh/tasklist/internal/storage"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// Store is not safe for concurrent use. All mutations are expected to run
// on one goroutine, one at a time.
type Store struct {
	backend storage.Backend
	key     string

	tasks  []*task.Task
	filter board.Filter
	lastID int64

	now         func() time.Time
	defaultList string
	base        []string
	dateFormat  string
	logDir      string
	renderer    board.Renderer

	warning error
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the storage key. Defaults to storage.DefaultKey.
func WithKey(key string) Option { return func(s *Store) { s.key = key } }

// WithClock sets the time source used for IDs and overdue checks.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// WithDefaultList sets the list used when none is chosen.
func WithDefaultList(name string) Option { return func(s *Store) { s.defaultList = name } }

// WithBaseTags sets the lists that are always offered.
func WithBaseTags(base []string) Option { return func(s *Store) { s.base = base } }

// WithDateFormat sets the layout due dates are displayed with.
func WithDateFormat(layout string) Option { return func(s *Store) { s.dateFormat = layout } }

// WithActivityLog enables the activity log in dir.
func WithActivityLog(dir string) Option { return func(s *Store) { s.logDir = dir } }

// WithRenderer sets the renderer redrawn after every change.
func WithRenderer(r board.Renderer) Option { return func(s *Store) { s.renderer = r } }

// Open loads the persisted tasks from b and returns a Store with the All
// filter active. Unreadable data degrades to an empty collection; the cause
// is available from Warning. Nothing is rendered until Render is called.
func Open(b storage.Backend, opts ...Option) (*Store, error) {
	if b == nil {
		return nil, errors.New("store: nil backend")
	}
	s := &Store{
		backend:     b,
		key:         storage.DefaultKey,
		filter:      board.All(),
		now:         time.Now,
		defaultList: board.BaseTags[0],
		base:        board.BaseTags,
		dateFormat:  task.DefaultDateFormat,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s, nil
}

func (s *Store) load() {
	tasks, err := storage.Load(s.backend, s.key)
	s.warning = err
	for _, t := range tasks {
		if t.List == task.AddNewMarker {
			t.List = s.defaultList
		}
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	s.tasks = tasks
}

// Warning returns the error from the most recent load, if the persisted
// data could not be read.
func (s *Store) Warning() error { return s.warning }

// Reload replaces the collection with the persisted copy and redraws. It
// returns the load warning, if any.
func (s *Store) Reload() error {
	s.load()
	s.Render()
	return s.warning
}

// Close releases the backend.
func (s *Store) Close() error { return s.backend.Close() }

// Key returns the storage key.
func (s *Store) Key() string { return s.key }

// Backend returns the storage backend.
func (s *Store) Backend() storage.Backend { return s.backend }

// SetRenderer replaces the renderer.
func (s *Store) SetRenderer(r board.Renderer) { s.renderer = r }

// Tasks returns copies of all tasks in insertion order.
func (s *Store) Tasks() []*task.Task { return task.CloneAll(s.tasks) }

// Get returns a copy of the task with the given ID.
func (s *Store) Get(id int64) (*task.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return nil, false
	}
	return s.tasks[i].Clone(), true
}

// Filter returns the active filter.
func (s *Store) Filter() board.Filter { return s.filter }

// DefaultList returns the list tasks land in when none is chosen.
func (s *Store) DefaultList() string { return s.defaultList }

// Today returns the current calendar date according to the store's clock.
func (s *Store) Today() date.Date { return date.Today(s.now()) }

// View builds the current view. Overdue flags reflect the clock at call time.
func (s *Store) View() board.View {
	return board.Build(s.tasks, s.filter, s.Today(), board.ViewOptions{
		Base:       s.base,
		DateFormat: s.dateFormat,
	})
}

// Render redraws the renderer, if any.
func (s *Store) Render() {
	if s.renderer != nil {
		s.renderer.Render(s.View())
	}
}

// CreateInput holds the fields of a new task.
type CreateInput struct {
	Text    string
	List    board.ListChoice
	DueDate date.Date
	DueTime string
}

// Create validates in, appends a new task, and persists. The returned task
// is a copy.
func (s *Store) Create(in CreateInput) (*task.Task, error) {
	text, err := task.NormalizeText(in.Text)
	if err != nil {
		return nil, err
	}
	if err := task.ValidateDueTime(in.DueTime); err != nil {
		return nil, err
	}
	list := in.List.Resolve(s.defaultList)
	if list == task.AddNewMarker {
		list = s.defaultList
	}
	if err := task.ValidateList(list); err != nil {
		return nil, err
	}

	t := &task.Task{
		ID:      s.nextID(),
		Text:    text,
		List:    list,
		DueDate: in.DueDate,
		DueTime: in.DueTime,
	}
	s.tasks = append(s.tasks, t)
	if err := s.persist(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return nil, err
	}
	s.lastID = t.ID

	board.LogMutation(s.logDir, "create", t.ID, t.Text)
	s.Render()
	return t.Clone(), nil
}

// Delete removes the task with the given ID once confirm agrees. It returns
// false without error when the ID is unknown or confirmation is declined.
// A nil confirm declines.
func (s *Store) Delete(id int64, confirm Confirmer) (bool, error) {
	i := s.index(id)
	if i < 0 || confirm == nil {
		return false, nil
	}
	ok, err := confirm.Confirm(s.tasks[i].Clone())
	if err != nil || !ok {
		return false, err
	}

	prev := s.tasks
	removed := prev[i]
	s.tasks = slices.Delete(slices.Clone(prev), i, i+1)
	if err := s.persist(); err != nil {
		s.tasks = prev
		return false, err
	}

	board.LogMutation(s.logDir, "delete", id, removed.Text)
	s.Render()
	return true, nil
}

// ToggleComplete flips the completion state of the task with the given ID.
// It returns false without error when the ID is unknown.
func (s *Store) ToggleComplete(id int64) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}

	t := s.tasks[i]
	t.IsCompleted = !t.IsCompleted
	if err := s.persist(); err != nil {
		t.IsCompleted = !t.IsCompleted
		return false, err
	}

	state := "reopened"
	if t.IsCompleted {
		state = "completed"
	}
	board.LogMutation(s.logDir, "toggle", id, state)
	s.Render()
	return true, nil
}

// EditText replaces the text of the task with the given ID. Empty text is
// rejected before any lookup. It returns false without error when the ID
// is unknown.
func (s *Store) EditText(id int64, newText string) (bool, error) {
	text, err := task.NormalizeText(newText)
	if err != nil {
		return false, err
	}
	i := s.index(id)
	if i < 0 {
		return false, nil
	}

	t := s.tasks[i]
	old := t.Text
	t.Text = text
	if err := s.persist(); err != nil {
		t.Text = old
		return false, err
	}

	board.LogMutation(s.logDir, "edit", id, text)
	s.Render()
	return true, nil
}

// SetFilter changes the active filter and redraws. Filters are not persisted.
func (s *Store) SetFilter(f board.Filter) {
	s.filter = f
	s.Render()
}

func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.tasks, func(t *task.Task) bool { return t.ID == id })
}

// nextID returns a millisecond timestamp, bumped past the last issued ID so
// that tasks created within the same millisecond never collide.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	return id
}

func (s *Store) persist() error {
	if err := storage.Save(s.backend, s.key, s.tasks); err != nil {
		return clierr.Wrap(clierr.StorageError, err, "saving tasks")
	}
	return nil
}
