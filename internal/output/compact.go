package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/tasklist/internal/board"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// ViewCompact renders a view in one-line-per-task compact format.
func ViewCompact(w io.Writer, v board.View) {
	fmt.Fprintf(w, "active (%s):\n", v.Filter)
	paneCompact(w, v.Incomplete, v.EmptyIncomplete)
	fmt.Fprintf(w, "completed (%s):\n", v.Filter)
	paneCompact(w, v.Completed, v.EmptyCompleted)
}

func paneCompact(w io.Writer, cards []board.Card, empty string) {
	if len(cards) == 0 {
		fmt.Fprintln(w, "  "+empty)
		return
	}
	for _, c := range cards {
		fmt.Fprintln(w, "  "+formatCardLine(c))
	}
}

// TaskDetailCompact renders a single task on one line.
func TaskDetailCompact(w io.Writer, c board.Card) {
	fmt.Fprintln(w, formatCardLine(c))
}

// TagsCompact renders the tag registry, one tag per line.
func TagsCompact(w io.Writer, tags []board.TagSummary) {
	for _, s := range tags {
		line := s.Tag + ": " + strconv.Itoa(s.Active) + "/" + strconv.Itoa(s.Total)
		if s.Overdue > 0 {
			line += " (" + strconv.Itoa(s.Overdue) + " overdue)"
		}
		fmt.Fprintln(w, line)
	}
}

// CardFor applies the presentation rules to a single task.
func CardFor(t *task.Task, v board.View) board.Card {
	for _, panes := range [][]board.Card{v.Incomplete, v.Completed} {
		for _, c := range panes {
			if c.ID == t.ID {
				return c
			}
		}
	}
	return board.Card{Task: t}
}

// formatCardLine builds the one-line representation of a card.
func formatCardLine(c board.Card) string {
	mark := "[ ]"
	if c.IsCompleted {
		mark = "[x]"
	}
	parts := []string{"#" + strconv.FormatInt(c.ID, 10), mark, c.Text, "(" + c.List + ")"}
	if c.DueLabel != "" {
		parts = append(parts, "due:"+strings.ReplaceAll(c.DueLabel, " ", "_"))
	}
	if c.Overdue {
		parts = append(parts, "!"+c.OverdueLabel)
	}
	return strings.Join(parts, " ")
}
