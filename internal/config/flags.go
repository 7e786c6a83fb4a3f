// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Flags holds values parsed from command-line flags. Only flags that were
// actually given override the config file.
type Flags struct {
	ConfigFilePath  string
	Version         bool
	LogLevel        string
	LogFilePath     string
	TabWidth        int
	ScrollOff       int
	StartMode       string
	EnableTags      string
	DisableTags     string
	EnablePkgs      string
	DisablePkgs     string
	EnableFiles     string
	DisableFiles    string
	SystemClipboard bool

	fs *flag.FlagSet
}

// NewFlags defines the command-line flags on a fresh FlagSet.
func NewFlags(name string, output io.Writer) *Flags {
	f := &Flags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	if output != nil {
		f.fs.SetOutput(output)
	}
	f.fs.Usage = func() {
		fmt.Fprintf(f.fs.Output(), "Usage: %s [flags] [file]\n", name)
		f.fs.PrintDefaults()
	}

	f.fs.StringVar(&f.ConfigFilePath, "config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.fs.BoolVar(&f.Version, "version", false, "Show version information and exit")
	f.fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.fs.IntVar(&f.TabWidth, "tabwidth", 0, "Number of columns per tab - Overrides config file")
	f.fs.IntVar(&f.ScrollOff, "scrolloff", -1, "Lines of context above/below cursor - Overrides config file")
	f.fs.StringVar(&f.StartMode, "mode", "", "Starting mode (insert or normal) - Overrides config file")
	f.fs.StringVar(&f.EnableTags, "log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.fs.StringVar(&f.DisableTags, "log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.fs.StringVar(&f.EnablePkgs, "log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.fs.StringVar(&f.DisablePkgs, "log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.fs.StringVar(&f.EnableFiles, "log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.fs.StringVar(&f.DisableFiles, "log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.fs.BoolVar(&f.SystemClipboard, "system-clipboard", false, "Use the system clipboard instead of the internal register")
	return f
}

// Parse parses args (without the program name) and returns the remaining
// non-flag arguments, e.g. the file path.
func (f *Flags) Parse(args []string) ([]string, error) {
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f.fs.Args(), nil
}

// ApplyOverrides updates cfg with the flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != "" {
				cfg.Logger.Level = f.LogLevel
			}
		case "logfile":
			cfg.Logger.FilePath = f.LogFilePath
		case "tabwidth":
			if f.TabWidth > 0 {
				cfg.Editor.TabWidth = f.TabWidth // Only override if positive
			}
		case "scrolloff":
			if f.ScrollOff >= 0 {
				cfg.Editor.ScrollOff = f.ScrollOff
			}
		case "mode":
			cfg.Editor.StartMode = f.StartMode
		case "system-clipboard":
			cfg.Editor.SystemClipboard = f.SystemClipboard
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(f.DisableFiles)
		}
	})
}

// splitCommaList splits "a, b,,c" into [a b c].
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
