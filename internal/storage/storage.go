// Package storage persists the task collection as a single serialized blob
// under one key. Backends only get and set raw bytes; Load and Save own the
// encoding.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

// DefaultKey is the key the task blob is stored under.
const DefaultKey = "todoTasks"

// ErrUnreadable wraps load failures that were degraded to an empty collection.
var ErrUnreadable = errors.New("stored tasks could not be read")

// Backend reads and writes one blob per key.
type Backend interface {
	// Get returns the blob stored under key. ok is false if nothing is stored.
	Get(key string) (value []byte, ok bool, err error)
	// Set overwrites the blob stored under key.
	Set(key string, value []byte) error
	Close() error
}

// Load returns the tasks stored under key. A missing key yields an empty
// collection. A backend or decode failure also yields an empty collection,
// together with an error wrapping ErrUnreadable that callers should report
// as a warning rather than abort on.
func Load(b Backend, key string) ([]*task.Task, error) {
	data, ok, err := b.Get(key)
	if err != nil {
		return []*task.Task{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if !ok || len(data) == 0 {
		return []*task.Task{}, nil
	}

	var decoded []*task.Task
	if err := json.Unmarshal(data, &decoded); err != nil {
		return []*task.Task{}, fmt.Errorf("%w: decoding %q: %w", ErrUnreadable, key, err)
	}

	tasks := make([]*task.Task, 0, len(decoded))
	for _, t := range decoded {
		if t != nil {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// Save encodes the full collection and overwrites whatever is stored under key.
func Save(b Backend, key string, tasks []*task.Task) error {
	if tasks == nil {
		tasks = []*task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	if err := b.Set(key, data); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}
