package tui

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/tasklist/internal/board"
)

// --- Styles ---

var (
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	activeColumnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 1)

	overdueCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("196")).
				Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	activeToggleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	toggleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Width(10).
			Foreground(lipgloss.Color("245"))

	focusLabelStyle = lipgloss.NewStyle().
			Width(10).
			Bold(true).
			Foreground(lipgloss.Color("212"))

	tagColorPalette = []lipgloss.Color{
		"39", "170", "214", "78", "204", "141", "117", "180",
	}

	dialogPadY = 1
	dialogPadX = 2

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(dialogPadY, dialogPadX)
)

func tagStyle(tag string) lipgloss.Style {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tag))
	color := tagColorPalette[h.Sum32()%uint32(len(tagColorPalette))]
	return lipgloss.NewStyle().Foreground(color)
}

// --- Rendering ---

func (b *Board) viewList() string {
	colWidth := b.columnWidth()

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		b.renderPane(paneActive, "Active", b.v.Incomplete, b.v.EmptyIncomplete, colWidth),
		b.renderPane(paneCompleted, "Completed", b.v.Completed, b.v.EmptyCompleted, colWidth),
	)

	targetHeight := b.height - b.chromeHeight()
	if targetHeight > 0 {
		actual := strings.Count(panes, "\n") + 1
		if actual > targetHeight {
			lines := strings.SplitN(panes, "\n", targetHeight+1)
			panes = strings.Join(lines[:targetHeight], "\n")
		} else if actual < targetHeight {
			panes += strings.Repeat("\n", targetHeight-actual)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, b.renderToggles(), "", panes, "", b.renderStatusBar())
}

func (b *Board) columnWidth() int {
	if b.width == 0 {
		return 30 //nolint:mnd // default column width
	}
	w := b.width / 2 //nolint:mnd // two panes
	const maxColWidth = 75
	if w > maxColWidth {
		w = maxColWidth
	}
	return w
}

func (b *Board) renderToggles() string {
	parts := make([]string, 0, len(b.v.Toggles))
	for _, t := range b.v.Toggles {
		if t.Active {
			parts = append(parts, activeToggleStyle.Render(t.Label))
		} else {
			parts = append(parts, toggleStyle.Render(t.Label))
		}
	}
	return lipgloss.NewStyle().MaxWidth(max(b.width, 1)).Render(strings.Join(parts, ""))
}

func (b *Board) renderPane(p pane, title string, cards []board.Card, empty string, width int) string {
	const headerPad = 2
	headerText := truncate(fmt.Sprintf("%s (%d)", title, len(cards)), width-headerPad)

	var header string
	if p == b.pane {
		header = activeColumnHeaderStyle.Width(width).Render(headerText)
	} else {
		header = columnHeaderStyle.Width(width).Render(headerText)
	}

	parts := []string{header}
	if len(cards) == 0 {
		parts = append(parts, dimStyle.Width(width).Render("  "+empty))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	start := min(b.scroll[p], len(cards))
	end := min(start+b.visibleCards(), len(cards))
	if start > 0 {
		parts = append(parts, dimStyle.Width(width).Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		active := p == b.pane && i == b.row[p]
		parts = append(parts, renderCard(cards[i], active, width))
	}
	if end < len(cards) {
		parts = append(parts, dimStyle.Width(width).Render(fmt.Sprintf("  ↓ %d more", len(cards)-end)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderCard(c board.Card, active bool, width int) string {
	const cardChrome = 4 // border (2) + padding (2)
	inner := max(width-cardChrome, 1)

	text := truncate(c.Text, inner)
	if c.IsCompleted {
		text = doneStyle.Render(text)
	}

	meta := tagStyle(c.List).Render(c.List)
	if c.DueLabel != "" {
		meta += dimStyle.Render("  " + c.DueLabel)
	}
	if c.Overdue {
		meta += "  " + overdueStyle.Render(c.OverdueLabel)
	}
	if lipgloss.Width(meta) > inner {
		meta = truncate(c.List+"  "+c.OverdueLabel, inner)
	}

	style := cardStyle
	switch {
	case active:
		style = activeCardStyle
	case c.Overdue:
		style = overdueCardStyle
	}
	return style.Width(width - 2).Render(text + "\n" + meta) //nolint:mnd // border width
}

func (b *Board) renderStatusBar() string {
	status := fmt.Sprintf(" %d active, %d done | a:add e:edit x:toggle d:del tab:filter q:quit",
		len(b.v.Incomplete), len(b.v.Completed))
	status = truncate(status, max(b.width, 4)) //nolint:mnd // minimum width

	if b.err != nil {
		errStr := errorStyle.Render(truncate("Error: "+b.err.Error(), max(b.width, 4))) //nolint:mnd // minimum width
		return errStr + "\n" + statusBarStyle.Render(status)
	}
	return statusBarStyle.Render(status)
}

func (b *Board) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		fmt.Sprintf("  #%d: %s", b.deleteID, b.deleteText) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func (b *Board) viewForm() string {
	f := &b.form
	title := "New task"
	if f.editing() {
		title = fmt.Sprintf("Edit task #%d", f.editID)
	}

	row := func(field formField, label, value string) string {
		ls := labelStyle
		if f.focus == field {
			ls = focusLabelStyle
		}
		return ls.Render(label) + value
	}

	lines := []string{activeColumnHeaderStyle.Render(title), "", row(fieldText, "Task", f.text.View())}
	help := "enter:save  esc:cancel"
	if !f.editing() {
		list := f.listLabel()
		if f.focus == fieldList {
			list = "< " + list + " >"
		}
		lines = append(lines,
			row(fieldList, "List", list),
			row(fieldDue, "Due date", f.due.View()),
			row(fieldTime, "Due time", f.time.View()),
		)
		help = "tab:next field  ←/→:change list  " + help
	}
	lines = append(lines, "")
	if b.err != nil {
		lines = append(lines, errorStyle.Render("Error: "+b.err.Error()))
	}
	lines = append(lines, dimStyle.Render(help))

	return dialogStyle.Render(strings.Join(lines, "\n"))
}

func (b *Board) viewNewTag() string {
	lines := []string{
		activeColumnHeaderStyle.Render("New tag"),
		"",
		b.tagInput.View(),
		"",
	}
	if b.err != nil {
		lines = append(lines, errorStyle.Render("Error: "+b.err.Error()))
	}
	lines = append(lines, dimStyle.Render("enter:use tag  esc:cancel"))
	return dialogStyle.Render(strings.Join(lines, "\n"))
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	target := maxLen - 3 //nolint:mnd // room for "..."
	if target > len(runes) {
		target = len(runes)
	}
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
