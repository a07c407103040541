package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("config file not found")
	ErrInvalid  = errors.New("invalid config")
	ErrUnknown  = errors.New("unknown config key")
)

// Config represents the tasklist configuration file.
type Config struct {
	Version int           `yaml:"version"`
	Storage StorageConfig `yaml:"storage"`
	Lists   ListsConfig   `yaml:"lists"`
	Display DisplayConfig `yaml:"display"`

	// path is the absolute path of the config file (not serialized).
	path string `yaml:"-"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path,omitempty"`
	Key     string      `yaml:"key"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	DB       int    `yaml:"db"`
	Password string `yaml:"password,omitempty"`
	Timeout  string `yaml:"timeout"`
}

// ListsConfig holds the base list set and the fallback list for new tasks.
type ListsConfig struct {
	Base    []string `yaml:"base"`
	Default string   `yaml:"default"`
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	DateFormat string `yaml:"date_format"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version: CurrentVersion,
		Storage: StorageConfig{
			Backend: DefaultBackend,
			Key:     DefaultKey,
			Redis: RedisConfig{
				Addr:    DefaultRedisAddr,
				Timeout: DefaultRedisTimeout,
			},
		},
		Lists: ListsConfig{
			Base:    append([]string{}, DefaultBaseLists...),
			Default: DefaultList,
		},
		Display: DisplayConfig{DateFormat: DefaultDateFormat},
	}
}

// DefaultPath returns $TASKLIST_CONFIG, or config.yml under the user config
// directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, AppName, ConfigFileName), nil
}

// Path returns the absolute path of the config file.
func (c *Config) Path() string { return c.path }

// SetPath sets the config file path.
func (c *Config) SetPath(path string) { c.path = path }

// Dir returns the directory containing the config file. Data files default
// to living next to it.
func (c *Config) Dir() string { return filepath.Dir(c.path) }

// DataPath returns where the configured backend keeps its data: a directory
// for the file backend, a database file for sqlite.
func (c *Config) DataPath() string {
	p := c.Storage.Path
	if p == "" {
		p = c.Dir()
		if c.Storage.Backend == BackendSQLite {
			p = filepath.Join(p, DefaultSQLiteFile)
		}
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return p
}

// RedisTimeout parses storage.redis.timeout. Returns the default on an
// empty or unparseable value.
func (c *Config) RedisTimeout() time.Duration {
	d, err := time.ParseDuration(c.Storage.Redis.Timeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultRedisTimeout)
	}
	return d
}

// DateFormat returns the display layout for due dates.
func (c *Config) DateFormat() string {
	if c.Display.DateFormat == "" {
		return DefaultDateFormat
	}
	return c.Display.DateFormat
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version > CurrentVersion {
		return fmt.Errorf("%w: config version %d is newer than supported version %d (upgrade tasklist)",
			ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if !slices.Contains(Backends, c.Storage.Backend) {
		return fmt.Errorf("%w: storage.backend %q must be one of %s",
			ErrInvalid, c.Storage.Backend, strings.Join(Backends, ", "))
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("%w: storage.key is required", ErrInvalid)
	}
	if c.Storage.Backend == BackendRedis && c.Storage.Redis.Addr == "" {
		return fmt.Errorf("%w: storage.redis.addr is required for the redis backend", ErrInvalid)
	}
	if c.Storage.Redis.Timeout != "" {
		if _, err := time.ParseDuration(c.Storage.Redis.Timeout); err != nil {
			return fmt.Errorf("%w: invalid storage.redis.timeout %q: %w", ErrInvalid, c.Storage.Redis.Timeout, err)
		}
	}
	return c.validateLists()
}

func (c *Config) validateLists() error {
	if strings.TrimSpace(c.Lists.Default) == "" {
		return fmt.Errorf("%w: lists.default is required", ErrInvalid)
	}
	if err := task.ValidateList(c.Lists.Default); err != nil {
		return fmt.Errorf("%w: lists.default: %w", ErrInvalid, err)
	}
	seen := make(map[string]bool, len(c.Lists.Base))
	for _, name := range c.Lists.Base {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: lists.base contains an empty name", ErrInvalid)
		}
		if err := task.ValidateList(name); err != nil {
			return fmt.Errorf("%w: lists.base: %w", ErrInvalid, err)
		}
		if seen[name] {
			return fmt.Errorf("%w: lists.base contains duplicate %q", ErrInvalid, name)
		}
		seen[name] = true
	}
	return nil
}

// Save writes the config to its config file, creating the directory.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(c.Dir(), dirMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(c.path, data, fileMode)
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	data, err := os.ReadFile(absPath) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := NewDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.path = absPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrInit loads the config at path, writing a default one first if the
// file does not exist yet.
func LoadOrInit(path string) (*Config, error) {
	cfg, err := Load(path)
	if !errors.Is(err, ErrNotFound) {
		return cfg, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg = NewDefault()
	cfg.path = absPath
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}
	return cfg, nil
}

// Keys lists the keys accepted by Get and Set.
var Keys = []string{
	"storage.backend",
	"storage.path",
	"storage.key",
	"storage.redis.addr",
	"storage.redis.db",
	"storage.redis.timeout",
	"lists.default",
	"display.date_format",
}

// Get returns the string form of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "storage.backend":
		return c.Storage.Backend, nil
	case "storage.path":
		return c.Storage.Path, nil
	case "storage.key":
		return c.Storage.Key, nil
	case "storage.redis.addr":
		return c.Storage.Redis.Addr, nil
	case "storage.redis.db":
		return strconv.Itoa(c.Storage.Redis.DB), nil
	case "storage.redis.timeout":
		return c.Storage.Redis.Timeout, nil
	case "lists.default":
		return c.Lists.Default, nil
	case "lists.base":
		return strings.Join(c.Lists.Base, ","), nil
	case "display.date_format":
		return c.Display.DateFormat, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknown, key)
}

// Set assigns a config key from its string form and re-validates. The
// config is left unchanged if the new value is invalid.
func (c *Config) Set(key, value string) error {
	next := *c
	next.Lists.Base = append([]string{}, c.Lists.Base...)

	switch key {
	case "storage.backend":
		next.Storage.Backend = value
	case "storage.path":
		next.Storage.Path = value
	case "storage.key":
		next.Storage.Key = value
	case "storage.redis.addr":
		next.Storage.Redis.Addr = value
	case "storage.redis.db":
		db, err := strconv.Atoi(value)
		if err != nil || db < 0 {
			return fmt.Errorf("%w: storage.redis.db must be a non-negative integer", ErrInvalid)
		}
		next.Storage.Redis.DB = db
	case "storage.redis.timeout":
		next.Storage.Redis.Timeout = value
	case "lists.default":
		next.Lists.Default = value
	case "display.date_format":
		next.Display.DateFormat = value
	default:
		return fmt.Errorf("%w %q", ErrUnknown, key)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}
