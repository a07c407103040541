package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/tasklist/internal/board"
	"github.com/twiced-technology-gmbh/tasklist/internal/date"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

const (
	maxTextWidth = 50
	maxListWidth = 16
	detailWrap   = 80
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	paneStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	listStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)

	colorEnabled = true
)

// DisableColor strips all styling from table and detail output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	headerStyle = lipgloss.NewStyle()
	paneStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	listStyle = lipgloss.NewStyle()
	overdueStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	activeStyle = lipgloss.NewStyle()
	colorEnabled = false
}

// ViewTable renders both panes of a view as tables, followed by the filter
// toggles.
func ViewTable(w io.Writer, v board.View) {
	fmt.Fprintln(w, paneStyle.Render("Active"))
	cardTable(w, v.Incomplete, v.EmptyIncomplete)
	fmt.Fprintln(w)
	fmt.Fprintln(w, paneStyle.Render("Completed"))
	cardTable(w, v.Completed, v.EmptyCompleted)
	fmt.Fprintln(w)
	fmt.Fprintln(w, togglesLine(v.Toggles))
}

func cardTable(w io.Writer, cards []board.Card, empty string) {
	if len(cards) == 0 {
		fmt.Fprintln(w, "  "+dimStyle.Render(empty))
		return
	}

	const pad = 2
	idW, textW, listW, dueW := 4, 6, 6, 5
	for _, c := range cards {
		idW = max(idW, len(strconv.FormatInt(c.ID, 10))+pad)
		textW = max(textW, min(lipgloss.Width(c.Text)+pad, maxTextWidth+pad))
		listW = max(listW, min(lipgloss.Width(c.List)+pad, maxListWidth+pad))
		dueW = max(dueW, lipgloss.Width(dueCell(c))+pad)
	}

	header := fmt.Sprintf("  %-*s %-*s %-*s %-*s", idW, "ID", textW, "TASK", listW, "LIST", dueW, "DUE")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, c := range cards {
		text := truncate(c.Text, maxTextWidth)
		if c.IsCompleted {
			text = doneStyle.Render(text)
		}
		due := dueCell(c)
		switch {
		case c.Overdue:
			due = overdueStyle.Render(due)
		case due == "--":
			due = dimStyle.Render(due)
		}
		row := fmt.Sprintf("  %-*d %s %s %s",
			idW, c.ID,
			padRight(text, textW),
			padRight(listStyle.Render(truncate(c.List, maxListWidth)), listW),
			due)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

func dueCell(c board.Card) string {
	switch {
	case c.Overdue && c.DueLabel != "":
		return c.DueLabel + " (" + c.OverdueLabel + ")"
	case c.Overdue:
		return c.OverdueLabel
	case c.DueLabel != "":
		return c.DueLabel
	}
	return "--"
}

func togglesLine(toggles []board.Toggle) string {
	parts := make([]string, 0, len(toggles))
	for _, t := range toggles {
		if t.Active {
			parts = append(parts, activeStyle.Render("["+t.Label+"]"))
		} else {
			parts = append(parts, dimStyle.Render(t.Label))
		}
	}
	return "Filter: " + strings.Join(parts, " ")
}

// TaskDetail renders a single task as markdown through glamour. It falls
// back to the raw markdown if rendering fails.
func TaskDetail(w io.Writer, t *task.Task, today date.Date, layout string) {
	md := task.Markdown(t, today, layout)

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(detailWrap)}
	if colorEnabled {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"), glamour.WithColorProfile(termenv.Ascii))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	fmt.Fprint(w, md)
}

// TagTable renders the tag registry with per-tag counts.
func TagTable(w io.Writer, tags []board.TagSummary) {
	if len(tags) == 0 {
		fmt.Fprintln(os.Stderr, "No tags found.")
		return
	}

	tagW := 5
	for _, s := range tags {
		tagW = max(tagW, lipgloss.Width(s.Tag)+2) //nolint:mnd // column padding
	}

	header := fmt.Sprintf("%-*s %6s %7s %10s %8s", tagW, "TAG", "TOTAL", "ACTIVE", "COMPLETED", "OVERDUE")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, s := range tags {
		name := listStyle.Render(s.Tag)
		if !s.Base {
			name += dimStyle.Render("*")
		}
		overdue := strconv.Itoa(s.Overdue)
		if s.Overdue > 0 {
			overdue = overdueStyle.Render(overdue)
		}
		fmt.Fprintf(w, "%s %6d %7d %10d %8s\n", padRight(name, tagW), s.Total, s.Active, s.Completed, overdue)
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	const ellipsis = "..."
	return string(r[:width-len(ellipsis)]) + ellipsis
}
