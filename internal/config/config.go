package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/dshills/kestrel/internal/config/loader"
)

// ErrFileNotFound is returned when a config file named explicitly does not
// exist.
var ErrFileNotFound = errors.New("config file not found")

// Config holds every setting.
type Config struct {
	Editor  EditorConfig
	Finder  FinderConfig
	Watcher WatcherConfig
	Log     LogConfig

	// Source is the file the settings came from; empty for defaults only.
	Source string

	// Unknown lists dotted keys present in the sources but not recognized.
	Unknown []string
}

type settings struct {
	path    string
	fs      loader.FileSystem
	environ []string
	useEnv  bool
	dir     string
}

// Option configures Load.
type Option func(*settings)

// WithPath loads the named file instead of searching the config directory.
func WithPath(path string) Option {
	return func(s *settings) { s.path = path }
}

// WithFS reads files through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(s *settings) { s.fs = fsys }
}

// WithEnviron replaces the process environment. A nil slice disables
// environment overrides.
func WithEnviron(environ []string) Option {
	return func(s *settings) {
		s.environ = environ
		s.useEnv = environ != nil
	}
}

// WithConfigDir searches dir instead of the user config directory.
func WithConfigDir(dir string) Option {
	return func(s *settings) { s.dir = dir }
}

// Load builds the configuration from defaults, the config file and the
// environment.
func Load(opts ...Option) (*Config, error) {
	s := settings{fs: loader.DefaultFS(), useEnv: true}
	for _, opt := range opts {
		opt(&s)
	}

	merged := Defaults()
	source := ""

	if s.path != "" {
		m, err := loader.Load(s.fs, s.path)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, s.path)
		}
		merged = loader.DeepMerge(merged, m)
		source = s.path
	} else {
		dir := s.dir
		if dir == "" {
			dir = UserConfigDir()
		}
		for _, ext := range loader.Extensions {
			path := filepath.Join(dir, "config"+ext)
			m, err := loader.Load(s.fs, path)
			if err != nil {
				return nil, err
			}
			if m != nil {
				merged = loader.DeepMerge(merged, m)
				source = path
				break
			}
		}
	}

	if s.useEnv {
		env := loader.NewEnvLoader(loader.DefaultEnvPrefix)
		if s.environ != nil {
			env = loader.NewEnvLoaderFrom(loader.DefaultEnvPrefix, s.environ)
		}
		m, err := env.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return nil, err
	}
	cfg.Source = source
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := FromMap(Defaults())
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// Defaults returns the built-in settings as a map, the bottom layer of
// every load.
func Defaults() map[string]any {
	return map[string]any{
		"editor": map[string]any{
			"tabstop":    int64(8),
			"expandtab":  false,
			"shiftwidth": int64(8),
			"ignorecase": false,
			"smartcase":  false,
			"scrolloff":  int64(0),
			"number":     false,
			"clipboard":  "",
		},
		"finder": map[string]any{
			"max_results": int64(20),
			"algorithm":   "path",
			"ignore":      []any{"node_modules", "target", "dist", "build", "__pycache__", ".git", "vendor"},
		},
		"watcher": map[string]any{
			"enabled":  true,
			"debounce": "100ms",
		},
		"log": map[string]any{
			"level": "info",
			"file":  "",
		},
	}
}

// FromMap decodes and validates merged settings.
func FromMap(m map[string]any) (*Config, error) {
	cfg := &Config{}
	d := decoder{m: m}
	cfg.Editor = d.editor()
	cfg.Finder = d.finder()
	cfg.Watcher = d.watcher()
	cfg.Log = d.log()
	cfg.Unknown = d.unknown()
	if len(d.errs) > 0 {
		return nil, errors.Join(d.errs...)
	}
	return cfg, nil
}

// UserConfigDir returns $XDG_CONFIG_HOME/kestrel, falling back to the
// platform config directory.
func UserConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "kestrel")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "kestrel")
	}
	return ".kestrel"
}

// DefaultLogFile returns $XDG_STATE_HOME/kestrel/kestrel.log, falling back
// to ~/.local/state.
func DefaultLogFile() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "kestrel", "kestrel.log")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "kestrel", "kestrel.log")
	}
	return filepath.Join(os.TempDir(), "kestrel.log")
}

// LogFile returns the configured log file or the default.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return DefaultLogFile()
}

// knownKeys lists every recognized dotted key.
var knownKeys = []string{
	"editor.tabstop", "editor.expandtab", "editor.shiftwidth", "editor.ignorecase", "editor.smartcase",
	"editor.scrolloff", "editor.number", "editor.clipboard",
	"finder.max_results", "finder.algorithm", "finder.ignore",
	"watcher.enabled", "watcher.debounce",
	"log.level", "log.file",
}

func isKnown(key string) bool {
	return slices.Contains(knownKeys, key)
}
