package board

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	logFileName   = "activity.jsonl"
	logFileMode   = 0o600
	maxLogEntries = 10000 // truncate oldest entries when log exceeds this size
)

// LogEntry represents a single activity log entry.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	TaskID    int64     `json:"task_id"`
	Detail    string    `json:"detail"`
}

// LogPath returns the activity log file inside dir.
func LogPath(dir string) string {
	return filepath.Join(dir, logFileName)
}

// AppendLog appends a log entry to the activity log file in dir.
// If the log exceeds maxLogEntries, the oldest entries are truncated.
func AppendLog(dir string, entry LogEntry) error {
	path := LogPath(dir)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path from trusted data dir
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling log entry: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing log entry: %w", err)
	}

	// Truncate if needed (best-effort; errors are non-fatal).
	_ = truncateLogIfNeeded(path)

	return nil
}

// truncateLogIfNeeded reads the log file and, if it exceeds maxLogEntries,
// rewrites it keeping only the most recent entries.
func truncateLogIfNeeded(path string) error {
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	_ = f.Close()

	if err := scanner.Err(); err != nil {
		return err
	}

	if len(lines) <= maxLogEntries {
		return nil
	}

	// Keep only the last maxLogEntries lines.
	lines = lines[len(lines)-maxLogEntries:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(buf.String()), logFileMode)
}

// ReadLog returns the last limit entries of the activity log in dir, oldest
// first. A missing log yields no entries. Lines that fail to decode are
// skipped.
func ReadLog(dir string, limit int) ([]LogEntry, error) {
	f, err := os.Open(LogPath(dir)) //nolint:gosec // trusted path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	var entries []LogEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e LogEntry
		if json.Unmarshal(scanner.Bytes(), &e) == nil {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log file: %w", err)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// LogMutation appends an activity log entry. Errors are silently discarded
// because logging should never fail a command. An empty dir disables logging.
func LogMutation(dir, action string, taskID int64, detail string) {
	if dir == "" {
		return
	}
	entry := LogEntry{
		Timestamp: time.Now(),
		Action:    action,
		TaskID:    taskID,
		Detail:    detail,
	}
	_ = AppendLog(dir, entry)
}

