// Package tui implements a terminal UI for the task list.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/tasklist/internal/board"
	"github.com/twiced-technology-gmbh/tasklist/internal/storage"
	"github.com/twiced-technology-gmbh/tasklist/internal/store"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewList view = iota
	viewConfirmDelete
	viewForm
	viewNewTag
)

// pane is one of the two task columns.
type pane int

const (
	paneActive pane = iota
	paneCompleted
)

// Key and layout constants.
const (
	keyEsc   = "esc"
	keyEnter = "enter"

	listChrome   = 4 // filter bar, blank line above and below the panes, status bar
	errorChrome  = 1 // extra line when error toast is displayed
	cardHeight   = 4 // two content lines plus borders
	tickInterval = 30 * time.Second
)

// actionKeys maps list-view keys to the per-task action they trigger.
var actionKeys = map[string]store.Action{
	" ": store.ActionToggle,
	"x": store.ActionToggle,
}

// Board is the top-level bubbletea model.
type Board struct {
	store *store.Store
	v     board.View

	pane   pane
	row    [2]int
	scroll [2]int

	view   view
	width  int
	height int
	err    error

	form     form
	tagInput textinput.Model

	// Delete confirmation.
	deleteID   int64
	deleteText string
}

// NewBoard creates a Board drawing s. The board registers itself as the
// store's renderer, so every store mutation refreshes what is shown.
func NewBoard(s *store.Store) *Board {
	b := &Board{store: s}
	b.tagInput = textinput.New()
	b.tagInput.Placeholder = "Tag name"
	b.tagInput.CharLimit = 40
	s.SetRenderer(board.RendererFunc(b.apply))
	s.Render()
	if err := s.Warning(); err != nil {
		b.err = err
	}
	return b
}

// apply receives a freshly built view from the store.
func (b *Board) apply(v board.View) {
	b.v = v
	b.clampRows()
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.ensureVisible()
		return b, nil
	case ReloadMsg:
		b.err = b.store.Reload()
		return b, nil
	case TickMsg:
		// Overdue flags depend on the date, so rebuild even without changes.
		b.store.Render()
		return b, tickCmd()
	case ErrMsg:
		b.err = msg.Err
		return b, nil
	}
	return b, nil
}

// View implements tea.Model.
func (b *Board) View() string {
	if b.width == 0 {
		return "Loading..."
	}

	switch b.view {
	case viewConfirmDelete:
		return b.viewDeleteConfirm()
	case viewForm:
		return b.viewForm()
	case viewNewTag:
		return b.viewNewTag()
	default:
		return b.viewList()
	}
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return b, tea.Quit
	}

	switch b.view {
	case viewConfirmDelete:
		return b.handleDeleteKey(msg)
	case viewForm:
		return b.handleFormKey(msg)
	case viewNewTag:
		return b.handleNewTagKey(msg)
	default:
		return b.handleListKey(msg)
	}
}

func (b *Board) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if action, ok := actionKeys[k]; ok {
		if t := b.selectedTask(); t != nil {
			b.act(store.Request{Action: action, ID: t.ID})
		}
		return b, nil
	}

	switch k {
	case "q", keyEsc:
		return b, tea.Quit
	case "h", "left":
		b.pane = paneActive
		b.clampRows()
	case "l", "right":
		b.pane = paneCompleted
		b.clampRows()
	case "j", "down":
		if b.row[b.pane] < len(b.cards(b.pane))-1 {
			b.row[b.pane]++
			b.ensureVisible()
		}
	case "k", "up":
		if b.row[b.pane] > 0 {
			b.row[b.pane]--
			b.ensureVisible()
		}
	case "tab", "]":
		b.cycleFilter(1)
	case "shift+tab", "[":
		b.cycleFilter(-1)
	case "a":
		return b, b.openAddForm()
	case "e":
		if t := b.selectedTask(); t != nil {
			return b, b.openEditForm(t)
		}
	case "d", "D":
		b.handleDeleteStart()
	}
	return b, nil
}

func (b *Board) handleDeleteStart() {
	t := b.selectedTask()
	if t == nil {
		return
	}
	b.deleteID = t.ID
	b.deleteText = t.Text
	b.view = viewConfirmDelete
}

func (b *Board) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		b.act(store.Request{Action: store.ActionDelete, ID: b.deleteID, Confirm: store.AlwaysConfirm})
		b.view = viewList
	case "n", "N", keyEsc, "q":
		b.view = viewList
	}
	return b, nil
}

// act runs a per-task request against the store. Lookup misses are silent.
func (b *Board) act(r store.Request) {
	cmd, err := store.ActionFor(r)
	if err == nil {
		_, err = b.store.Dispatch(cmd)
	}
	b.err = err
}

// cycleFilter moves the active filter by delta along the toggle bar.
func (b *Board) cycleFilter(delta int) {
	toggles := b.v.Toggles
	if len(toggles) == 0 {
		return
	}
	cur := 0
	for i, t := range toggles {
		if t.Active {
			cur = i
			break
		}
	}
	next := (cur + delta + len(toggles)) % len(toggles)
	b.row = [2]int{}
	b.scroll = [2]int{}
	_, b.err = b.store.Dispatch(store.FilterCommand{Filter: toggles[next].Filter})
}

func (b *Board) cards(p pane) []board.Card {
	if p == paneCompleted {
		return b.v.Completed
	}
	return b.v.Incomplete
}

func (b *Board) selectedTask() *task.Task {
	cards := b.cards(b.pane)
	row := b.row[b.pane]
	if row < 0 || row >= len(cards) {
		return nil
	}
	return cards[row].Task
}

func (b *Board) clampRows() {
	for _, p := range []pane{paneActive, paneCompleted} {
		n := len(b.cards(p))
		if b.row[p] >= n {
			b.row[p] = n - 1
		}
		if b.row[p] < 0 {
			b.row[p] = 0
		}
	}
	b.ensureVisible()
}

// visibleCards returns how many cards fit in a pane below its header.
func (b *Board) visibleCards() int {
	budget := b.height - b.chromeHeight() - 1
	if budget < cardHeight {
		return 1
	}
	return budget / cardHeight
}

func (b *Board) chromeHeight() int {
	h := listChrome
	if b.err != nil {
		h += errorChrome
	}
	return h
}

// ensureVisible adjusts the active pane's scroll offset so the selected row
// is within the visible window.
func (b *Board) ensureVisible() {
	p := b.pane
	maxVis := b.visibleCards()
	switch {
	case b.row[p] >= b.scroll[p]+maxVis:
		b.scroll[p] = b.row[p] - maxVis + 1
	case b.row[p] < b.scroll[p]:
		b.scroll[p] = b.row[p]
	}
	if b.scroll[p] < 0 {
		b.scroll[p] = 0
	}
}

// WatchPaths returns the files whose changes should trigger a reload.
func (b *Board) WatchPaths() []string {
	if p := storage.WatchPath(b.store.Backend(), b.store.Key()); p != "" {
		return []string{p}
	}
	return nil
}

// ReloadMsg signals the board to reload tasks from storage.
type ReloadMsg struct{}

// TickMsg triggers a periodic re-render so overdue labels follow the date.
type TickMsg struct{}

// ErrMsg reports a background failure, such as a watcher error.
type ErrMsg struct{ Err error }

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return TickMsg{} })
}
