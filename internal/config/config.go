// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/ebb/internal/logger"
	"github.com/bethropolis/ebb/internal/theme"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`
	Keys   KeysConfig    `toml:"keys"`
	Theme  theme.Config  `toml:"theme"`

	// Path is the file the config was read from, empty if none was found.
	Path string `toml:"-"`
	// Warnings collects problems found while loading. They are logged once
	// the logger exists.
	Warnings []string `toml:"-"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int    `toml:"tab_width"`
	ExpandTabs      bool   `toml:"expand_tabs"`
	ScrollOff       int    `toml:"scroll_off"`
	HistoryLimit    int    `toml:"history_limit"`
	StartMode       string `toml:"start_mode"` // "insert" or "normal"
	SystemClipboard bool   `toml:"system_clipboard"`
	StatusTimeoutMs int    `toml:"status_timeout_ms"`
	LineNumbers     bool   `toml:"line_numbers"`
}

// StatusTimeout returns how long a status message stays visible.
func (e EditorConfig) StatusTimeout() time.Duration {
	return time.Duration(e.StatusTimeoutMs) * time.Millisecond
}

// KeysConfig maps key sequences ("ctrl-x ctrl-s") to event names per mode.
// An empty event name or "none" removes the binding.
type KeysConfig struct {
	Insert map[string]string `toml:"insert"`
	Normal map[string]string `toml:"normal"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			HistoryLimit:    DefaultHistoryLimit,
			StartMode:       DefaultStartMode,
			SystemClipboard: SystemClipboard,
			StatusTimeoutMs: int(MessageTimeout / time.Millisecond),
			LineNumbers:     true,
		},
	}
}

// DefaultPath returns ~/.config/ebb/config.toml, or "" when the user config
// directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// Decode parses TOML data on top of cfg. Unknown keys become warnings.
func Decode(data string, cfg *Config) error {
	metadata, err := toml.Decode(data, cfg)
	if err != nil {
		return err
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unrecognized keys: %s", strings.Join(keys, ", ")))
	}
	return nil
}

// loadFromFile decodes filePath into cfg. A missing file is not an error
// and reports false.
func loadFromFile(filePath string, cfg *Config) (bool, error) {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error reading config file '%s': %w", filePath, err)
	}
	if err := Decode(string(data), cfg); err != nil {
		return false, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	return true, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Warnings = append(c.Warnings, fmt.Sprintf("tab_width %d is invalid, using %d", c.Editor.TabWidth, defaults.Editor.TabWidth))
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 { // Allow 0
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.HistoryLimit < 0 {
		c.Editor.HistoryLimit = defaults.Editor.HistoryLimit
	}
	if c.Editor.StatusTimeoutMs <= 0 {
		c.Editor.StatusTimeoutMs = defaults.Editor.StatusTimeoutMs
	}
	switch strings.ToLower(c.Editor.StartMode) {
	case "insert", "normal":
		c.Editor.StartMode = strings.ToLower(c.Editor.StartMode)
	default:
		c.Warnings = append(c.Warnings, fmt.Sprintf("start_mode %q is invalid, using %q", c.Editor.StartMode, defaults.Editor.StartMode))
		c.Editor.StartMode = defaults.Editor.StartMode
	}
	if c.Logger.Level == "" {
		c.Logger.Level = defaults.Logger.Level
	}
}

// Load builds the configuration: defaults, then the TOML file, then the
// flags that were set on the command line, then validation. configPath ""
// means DefaultPath. It does not log; the logger is configured from the
// result.
func Load(configPath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	if flags != nil && flags.ConfigFilePath != "" {
		configPath = flags.ConfigFilePath
	}
	if configPath == "" {
		configPath = DefaultPath()
	}
	if configPath != "" {
		found, err := loadFromFile(configPath, cfg)
		if err != nil {
			return nil, err
		}
		if found {
			cfg.Path = configPath
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, nil
}

// LogFilePath resolves where the log goes: the configured path, or
// ebb.log next to the config file, or in the user cache directory.
func (c *Config) LogFilePath() string {
	if c.Logger.FilePath != "" {
		return c.Logger.FilePath
	}
	if c.Path != "" {
		return filepath.Join(filepath.Dir(c.Path), DefaultLogFileName)
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, AppName, DefaultLogFileName)
	}
	return DefaultLogFileName
}

// LogWarnings reports the problems collected while loading.
func (c *Config) LogWarnings() {
	for _, w := range c.Warnings {
		logger.Warnf("Config: %s", w)
	}
	if c.Path != "" {
		logger.Infof("Loaded configuration from: %s", c.Path)
	}
}
