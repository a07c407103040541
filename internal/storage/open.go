package storage

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/twiced-technology-gmbh/tasklist/internal/config"
)

// Open builds the backend selected by cfg.
func Open(cfg *config.Config) (Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return NewFileBackend(cfg.DataPath())
	case config.BackendSQLite:
		return NewSQLiteBackend(cfg.DataPath())
	case config.BackendRedis:
		return DialRedis(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		}, cfg.RedisTimeout())
	case config.BackendMemory:
		return NewMemoryBackend(), nil
	}
	return nil, fmt.Errorf("%w: unknown storage backend %q", config.ErrInvalid, cfg.Storage.Backend)
}

// WatchPath returns the file holding key for backends that live on the
// local filesystem, or "" when changes cannot be watched.
func WatchPath(b Backend, key string) string {
	switch b := b.(type) {
	case *FileBackend:
		return b.Path(key)
	case *SQLiteBackend:
		return b.path
	}
	return ""
}
