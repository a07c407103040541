// Package config handles tasklist configuration.
package config

const (
	// AppName is the directory name used under the user config directory.
	AppName = "tasklist"
	// ConfigFileName is the name of the config file.
	ConfigFileName = "config.yml"
	// EnvConfig overrides the config file location.
	EnvConfig = "TASKLIST_CONFIG"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 1

	// Storage backends.
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"

	// DefaultBackend is the storage backend for a new config.
	DefaultBackend = BackendFile
	// DefaultKey is the key the task blob is stored under.
	DefaultKey = "todoTasks"
	// DefaultSQLiteFile is the database file name used when storage.path is empty.
	DefaultSQLiteFile = "tasks.db"
	// DefaultRedisAddr is the Redis server used when none is configured.
	DefaultRedisAddr = "localhost:6379"
	// DefaultRedisTimeout bounds each Redis call.
	DefaultRedisTimeout = "2s"

	// DefaultList is the list new tasks land in when none is chosen.
	DefaultList = "General"
	// DefaultDateFormat is the Go layout used to display due dates.
	DefaultDateFormat = "Jan 2, 2006"
)

// Backends lists the accepted storage.backend values.
var Backends = []string{BackendFile, BackendSQLite, BackendRedis, BackendMemory}

// DefaultBaseLists is the fixed set of lists offered before any task exists.
var DefaultBaseLists = []string{"General", "Work", "Personal", "Study", "Shopping"}
