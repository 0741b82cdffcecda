package config

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

// EditorConfig holds the initial editor options. They can be changed at
// runtime with :set.
type EditorConfig struct {
	// TabStop is the display width of a tab, 1 to 32.
	TabStop int

	// ExpandTab inserts spaces for Tab in Insert mode.
	ExpandTab bool

	// ShiftWidth is the indent step of > and <, 0 to 32; 0 uses TabStop.
	ShiftWidth int

	// IgnoreCase makes searches case-insensitive; SmartCase turns that off
	// again for patterns with an uppercase letter.
	IgnoreCase bool
	SmartCase  bool

	// ScrollOff is the number of lines kept visible above and below the
	// cursor.
	ScrollOff int

	// Number shows line numbers.
	Number bool

	// Clipboard selects the register mirrored to the system clipboard:
	// "", "unnamed" or "unnamedplus".
	Clipboard string
}

// FinderConfig configures the fuzzy file finder.
type FinderConfig struct {
	MaxResults int

	// Algorithm is "path" for the built-in scorer or "fzf".
	Algorithm string

	// Ignore lists directory names the file walk skips.
	Ignore []string
}

// WatcherConfig configures external change detection for open files.
type WatcherConfig struct {
	Enabled  bool
	Debounce time.Duration
}

// LogConfig configures the debug log.
type LogConfig struct {
	Level string
	File  string
}

// Off reports whether logging is disabled.
func (l LogConfig) Off() bool {
	return strings.EqualFold(l.Level, "off")
}

// LogLevels lists the accepted log.level values.
var LogLevels = []string{"debug", "info", "warn", "warning", "error", "off"}

func validLevel(s string) bool {
	return s == "" || slices.Contains(LogLevels, strings.ToLower(s))
}

// decoder reads typed values out of a merged settings map, collecting
// errors instead of stopping at the first one.
type decoder struct {
	m    map[string]any
	errs []error
}

func (d *decoder) lookup(path string) (any, bool) {
	section, key, _ := strings.Cut(path, ".")
	sm, ok := d.m[section].(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := sm[key]
	return v, ok
}

func (d *decoder) fail(err error) {
	d.errs = append(d.errs, err)
}

func (d *decoder) int(path string, def, lo, hi int) int {
	v, ok := d.lookup(path)
	if !ok {
		return def
	}
	n, ok := toInt(v)
	if !ok {
		d.fail(invalid(path, v, "expected an integer"))
		return def
	}
	if n < lo || n > hi {
		if hi == math.MaxInt {
			d.fail(invalid(path, v, "must be at least %d", lo))
		} else {
			d.fail(invalid(path, v, "must be between %d and %d", lo, hi))
		}
		return def
	}
	return n
}

func (d *decoder) bool(path string, def bool) bool {
	v, ok := d.lookup(path)
	if !ok {
		return def
	}
	switch v := v.(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	d.fail(invalid(path, v, "expected true or false"))
	return def
}

func (d *decoder) string(path, def string, allowed ...string) string {
	v, ok := d.lookup(path)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		d.fail(invalid(path, v, "expected a string"))
		return def
	}
	if len(allowed) > 0 {
		for _, a := range allowed {
			if s == a {
				return s
			}
		}
		d.fail(invalid(path, v, "must be one of %s", quoteAll(allowed)))
		return def
	}
	return s
}

func (d *decoder) strings(path string, def []string) []string {
	v, ok := d.lookup(path)
	if !ok {
		return def
	}
	switch v := v.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				d.fail(invalid(path, v, "expected a list of strings"))
				return def
			}
			out = append(out, s)
		}
		return out
	case string:
		var out []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	d.fail(invalid(path, v, "expected a list of strings"))
	return def
}

func (d *decoder) duration(path string, def time.Duration) time.Duration {
	v, ok := d.lookup(path)
	if !ok {
		return def
	}
	var dur time.Duration
	switch v := v.(type) {
	case time.Duration:
		dur = v
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			d.fail(invalid(path, v, "expected a duration like 100ms"))
			return def
		}
		dur = parsed
	default:
		// Bare numbers are milliseconds.
		n, ok := toInt(v)
		if !ok {
			d.fail(invalid(path, v, "expected a duration like 100ms"))
			return def
		}
		dur = time.Duration(n) * time.Millisecond
	}
	if dur < 0 {
		d.fail(invalid(path, v, "must not be negative"))
		return def
	}
	return dur
}

func (d *decoder) editor() EditorConfig {
	return EditorConfig{
		TabStop:    d.int("editor.tabstop", 8, 1, 32),
		ExpandTab:  d.bool("editor.expandtab", false),
		ShiftWidth: d.int("editor.shiftwidth", 8, 0, 32),
		IgnoreCase: d.bool("editor.ignorecase", false),
		SmartCase:  d.bool("editor.smartcase", false),
		ScrollOff:  d.int("editor.scrolloff", 0, 0, math.MaxInt),
		Number:     d.bool("editor.number", false),
		Clipboard:  d.string("editor.clipboard", "", "", "unnamed", "unnamedplus"),
	}
}

func (d *decoder) finder() FinderConfig {
	return FinderConfig{
		MaxResults: d.int("finder.max_results", 20, 1, math.MaxInt),
		Algorithm:  d.string("finder.algorithm", "path", "path", "fzf"),
		Ignore:     d.strings("finder.ignore", nil),
	}
}

func (d *decoder) watcher() WatcherConfig {
	return WatcherConfig{
		Enabled:  d.bool("watcher.enabled", true),
		Debounce: d.duration("watcher.debounce", 100*time.Millisecond),
	}
}

func (d *decoder) log() LogConfig {
	cfg := LogConfig{
		Level: d.string("log.level", "info"),
		File:  d.string("log.file", ""),
	}
	if !validLevel(cfg.Level) {
		d.fail(invalid("log.level", cfg.Level, "must be one of debug, info, warn, error, off"))
		cfg.Level = "info"
	}
	return cfg
}

// unknown returns the dotted keys that no section reads, sorted.
func (d *decoder) unknown() []string {
	var keys []string
	for section, v := range d.m {
		sm, ok := v.(map[string]any)
		if !ok {
			keys = append(keys, section)
			continue
		}
		for key := range sm {
			if path := section + "." + key; !isKnown(path) {
				keys = append(keys, path)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

func toInt(v any) (int, bool) {
	switch v := v.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}
	return 0, false
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
