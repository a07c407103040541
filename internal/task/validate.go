package task

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/date"
)

var dueTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// NormalizeText trims text and rejects it if nothing is left.
func NormalizeText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", clierr.New(clierr.EmptyText, "task text cannot be empty")
	}
	return trimmed, nil
}

// ValidateDueTime checks that a due time is empty or HH:MM on a 24-hour clock.
func ValidateDueTime(s string) error {
	if s == "" || dueTimeRe.MatchString(s) {
		return nil
	}
	return clierr.Newf(clierr.InvalidTime, "invalid due time %q: expected HH:MM", s).
		WithDetails(map[string]any{"input": s})
}

// ParseDueDate parses a user-supplied due date. An empty string means no
// due date.
func ParseDueDate(s string) (date.Date, error) {
	if strings.TrimSpace(s) == "" {
		return date.Date{}, nil
	}
	d, err := date.Parse(s)
	if err != nil {
		return date.Date{}, ValidateDate("due", s, err)
	}
	return d, nil
}

// ValidateDate returns a CLIError for invalid date input.
func ValidateDate(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid %s date: %v", field, err).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}

// ValidateTaskID returns a CLIError for invalid task ID input.
func ValidateTaskID(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", input).
		WithDetails(map[string]any{"input": input})
}

// ParseID parses a task ID argument.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ValidateTaskID(s)
	}
	return id, nil
}

// NotFound returns a CLIError for a task ID with no matching task.
func NotFound(id int64) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task not found: #%d", id).
		WithDetails(map[string]any{"id": id})
}

// AddNewMarker is the value the list picker used for its "add a new tag"
// entry. It is never a valid list name.
const AddNewMarker = "___ADD_NEW___"

// AllLists is the filter name that selects every list.
const AllLists = "All"

// ValidateList rejects list names that collide with reserved picker or
// filter values.
func ValidateList(name string) error {
	if name == AddNewMarker || name == AllLists {
		return clierr.Newf(clierr.ReservedTag, "%q is reserved and cannot be used as a list name", name).
			WithDetails(map[string]any{"list": name})
	}
	return nil
}
