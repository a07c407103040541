package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/tasklist/internal/config"
	"github.com/twiced-technology-gmbh/tasklist/internal/date"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

const testRedisAddr = "localhost:6379"

func sampleTasks() []*task.Task {
	return []*task.Task{
		{ID: 1, Text: "Buy milk", List: "Shopping", DueDate: date.New(2024, 6, 8)},
		{ID: 2, Text: "Essay", List: "Study", IsCompleted: true, DueTime: "18:00"},
	}
}

// backends returns every backend that can run in this environment.
func backends(t *testing.T) map[string]Backend {
	t.Helper()

	file, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	sqlite, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	out := map[string]Backend{
		"memory": NewMemoryBackend(),
		"file":   file,
		"sqlite": sqlite,
	}
	if r := redisBackend(t); r != nil {
		out["redis"] = r
	}
	return out
}

// redisBackend returns a backend on a scratch prefix, or nil when no server
// is reachable.
func redisBackend(t *testing.T) *RedisBackend {
	t.Helper()

	r, err := DialRedis(&redis.Options{Addr: testRedisAddr}, time.Second)
	if err != nil {
		t.Logf("Redis not available at %s: %v", testRedisAddr, err)
		return nil
	}
	r.prefix = "tasklist-test:" + t.Name() + ":"
	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := r.client.Keys(ctx, r.prefix+"*").Result()
		if len(keys) > 0 {
			r.client.Del(ctx, keys...)
		}
		_ = r.Close()
	})
	return r
}

func TestRoundTrip(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			tasks, err := Load(b, DefaultKey)
			require.NoError(t, err)
			assert.Empty(t, tasks)

			require.NoError(t, Save(b, DefaultKey, sampleTasks()))
			got, err := Load(b, DefaultKey)
			require.NoError(t, err)
			assert.Equal(t, sampleTasks(), got)

			// Overwrite, not append.
			require.NoError(t, Save(b, DefaultKey, sampleTasks()[:1]))
			got, err = Load(b, DefaultKey)
			require.NoError(t, err)
			assert.Len(t, got, 1)

			require.NoError(t, Save(b, DefaultKey, nil))
			got, err = Load(b, DefaultKey)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestKeysAreIndependent(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, Save(b, "a", sampleTasks()))
			got, err := Load(b, "b")
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestLoadCorruptBlobDegradesToEmpty(t *testing.T) {
	b := NewMemoryBackend()
	require.NoError(t, b.Set(DefaultKey, []byte(`{"not":"an array"`)))

	tasks, err := Load(b, DefaultKey)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestLoadSkipsNullEntries(t *testing.T) {
	b := NewMemoryBackend()
	require.NoError(t, b.Set(DefaultKey, []byte(`[null,{"id":5,"text":"x","list":"Work"}]`)))

	tasks, err := Load(b, DefaultKey)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(5), tasks[0].ID)
}

func TestSaveErrorPropagates(t *testing.T) {
	b := NewMemoryBackend()
	b.FailSet = errors.New("quota exceeded")

	err := Save(b, DefaultKey, sampleTasks())
	require.Error(t, err)
	assert.ErrorIs(t, err, b.FailSet)
}

func TestFileBackendLayout(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "todoTasks.json"), b.Path("todoTasks"))
	assert.Equal(t, filepath.Join(dir, "-etc-passwd.json"), b.Path("../etc/passwd"))

	require.NoError(t, Save(b, DefaultKey, sampleTasks()))
	info, err := os.Stat(b.Path(DefaultKey))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(fileMode), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "temp file left behind")
	}
}

func TestOpen(t *testing.T) {
	cfg := config.NewDefault()
	cfg.SetPath(filepath.Join(t.TempDir(), "config.yml"))

	b, err := Open(cfg)
	require.NoError(t, err)
	assert.IsType(t, &FileBackend{}, b)
	assert.Equal(t, filepath.Join(cfg.Dir(), "todoTasks.json"), WatchPath(b, DefaultKey))

	cfg.Storage.Backend = config.BackendSQLite
	b, err = Open(cfg)
	require.NoError(t, err)
	defer b.Close()
	assert.IsType(t, &SQLiteBackend{}, b)
	assert.Equal(t, filepath.Join(cfg.Dir(), "tasks.db"), WatchPath(b, DefaultKey))

	cfg.Storage.Backend = config.BackendMemory
	b, err = Open(cfg)
	require.NoError(t, err)
	assert.Empty(t, WatchPath(b, DefaultKey))

	cfg.Storage.Backend = "floppy"
	_, err = Open(cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
