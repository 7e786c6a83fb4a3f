// Package logger provides configurable logging capabilities
package logger

import (
	"log/slog"
	"strings"
)

// Config holds all settings for the logger.
type Config struct {
	// Level is the minimum level to log ("debug", "info", "warn", "error").
	Level string `toml:"level"`

	// FilePath is the log destination. "-" means stderr, empty means the
	// default file next to the config.
	FilePath string `toml:"file"`

	// --- Filtering Options ---

	// EnabledTags only logs tagged messages with these tags (if non-empty).
	EnabledTags []string `toml:"enable_tags"`
	// DisabledTags drops messages with these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disable_tags"`

	// EnabledPackages only logs messages from these packages (if non-empty).
	// The package is the caller's directory name, e.g. "buffer" or "editor".
	EnabledPackages []string `toml:"enable_packages"`
	// DisabledPackages drops messages from these packages.
	DisabledPackages []string `toml:"disable_packages"`

	// EnabledFiles only logs messages from these file base names.
	EnabledFiles []string `toml:"enable_files"`
	// DisabledFiles drops messages from these file base names.
	DisabledFiles []string `toml:"disable_files"`
}

// NewConfig creates a new Config with default values
func NewConfig() Config {
	return Config{Level: "info"}
}

// ParseLevel maps a level name to a slog level. Unknown names report false
// and fall back to info.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// filters is the processed, lookup-friendly form of the Config lists.
type filters struct {
	enabledTags      map[string]struct{}
	disabledTags     map[string]struct{}
	enabledPackages  map[string]struct{}
	disabledPackages map[string]struct{}
	enabledFiles     map[string]struct{}
	disabledFiles    map[string]struct{}
}

func (c Config) filters() *filters {
	return &filters{
		enabledTags:      sliceToSet(c.EnabledTags),
		disabledTags:     sliceToSet(c.DisabledTags),
		enabledPackages:  sliceToSet(c.EnabledPackages),
		disabledPackages: sliceToSet(c.DisabledPackages),
		enabledFiles:     sliceToSet(c.EnabledFiles),
		disabledFiles:    sliceToSet(c.DisabledFiles),
	}
}

// empty reports whether no filtering is configured at all.
func (f *filters) empty() bool {
	return f.enabledTags == nil && f.disabledTags == nil &&
		f.enabledPackages == nil && f.disabledPackages == nil &&
		f.enabledFiles == nil && f.disabledFiles == nil
}

// helper function to convert slice to set
func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			set[strings.ToLower(item)] = struct{}{} // case-insensitive matching
		}
	}
	if len(set) == 0 {
		return nil // nil map means "no filter"
	}
	return set
}
