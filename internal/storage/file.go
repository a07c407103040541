package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/twiced-technology-gmbh/tasklist/internal/filelock"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// FileBackend stores each key as a JSON file in a directory.
type FileBackend struct {
	dir string
}

// NewFileBackend returns a FileBackend rooted at dir, creating it if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Dir returns the directory the backend writes to.
func (b *FileBackend) Dir() string { return b.dir }

// Path returns the file a key is stored in.
func (b *FileBackend) Path(key string) string {
	name := unsafeKeyChars.ReplaceAllString(key, "-")
	if name == "" {
		name = "-"
	}
	return filepath.Join(b.dir, name+".json")
}

// Get implements Backend.
func (b *FileBackend) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(b.Path(key)) //nolint:gosec // path built from sanitized key
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s: %w", b.Path(key), err)
	}
	return data, true, nil
}

// Set implements Backend. The file is replaced atomically so readers never
// see a partial write.
func (b *FileBackend) Set(key string, value []byte) error {
	path := b.Path(key)

	unlock, err := filelock.Lock(path + ".lock")
	if err != nil {
		return fmt.Errorf("locking %s: %w", path, err)
	}
	defer func() { _ = unlock() }()

	tmp, err := os.CreateTemp(b.dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Close implements Backend.
func (b *FileBackend) Close() error { return nil }
