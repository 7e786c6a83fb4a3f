// internal/theme/loader.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/ebb/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// StyleDef is one style as written in TOML. Pointers tell a missing value
// apart from an explicit false or empty color.
type StyleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

// Config is the [theme] table of the main config file. File, when set,
// names a standalone theme file whose styles are applied first.
type Config struct {
	Name   string              `toml:"name"`
	File   string              `toml:"file"`
	Styles map[string]StyleDef `toml:"styles"`
}

// fileTheme is the layout of a standalone theme file.
type fileTheme struct {
	Name   string              `toml:"name"`
	Styles map[string]StyleDef `toml:"styles"`
}

// Build layers the configured overrides over the built-in theme. Styles
// that fail to parse are skipped and logged; the theme is always usable.
func Build(cfg Config) *Theme {
	t := Default()

	if cfg.File != "" {
		ft, err := loadFile(cfg.File)
		if err != nil {
			logger.Warnf("Theme file ignored: %v", err)
		} else {
			if ft.Name != "" {
				t.Name = ft.Name
			}
			apply(t, ft.Styles)
		}
	}
	if cfg.Name != "" {
		t.Name = cfg.Name
	}
	apply(t, cfg.Styles)
	return t
}

func loadFile(filePath string) (*fileTheme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}
	var ft fileTheme
	metadata, err := toml.Decode(string(data), &ft)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML theme file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	if ft.Name == "" {
		// Use filename as fallback name
		ft.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}
	return &ft, nil
}

// apply converts defs onto t. "Default" goes first so that every other
// style inherits from the updated base.
func apply(t *Theme, defs map[string]StyleDef) {
	if len(defs) == 0 {
		return
	}
	if def, ok := defs[StyleDefault]; ok {
		style, err := convert(def, t.Style(StyleDefault))
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", t.Name, StyleDefault, err)
		} else {
			t.Styles[StyleDefault] = style
		}
	}

	names := make([]string, 0, len(defs))
	for name := range defs {
		if name != StyleDefault {
			names = append(names, name)
		}
	}
	sort.Strings(names) // deterministic warnings

	for _, name := range names {
		style, err := convert(defs[name], t.Style(name))
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", t.Name, name, err)
			continue
		}
		t.Styles[name] = style
	}
}

// convert applies one definition on top of base.
func convert(def StyleDef, base tcell.Style) (tcell.Style, error) {
	style := base
	if def.Fg != nil {
		color, err := ParseColor(*def.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground color '%s': %w", *def.Fg, err)
		}
		style = style.Foreground(color)
	}
	if def.Bg != nil {
		color, err := ParseColor(*def.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background color '%s': %w", *def.Bg, err)
		}
		style = style.Background(color)
	}
	if def.Bold != nil {
		style = style.Bold(*def.Bold)
	}
	if def.Italic != nil {
		style = style.Italic(*def.Italic)
	}
	if def.Underline != nil {
		style = style.Underline(*def.Underline)
	}
	if def.Reverse != nil {
		style = style.Reverse(*def.Reverse)
	}
	return style, nil
}

// ParseColor accepts "#rrggbb", "reset", "default" and the color names
// tcell knows ("red", "navy", ...).
func ParseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
		}
		val, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex value '%s': %w", s, err)
		}
		return tcell.NewHexColor(int32(val)), nil
	case s == "reset":
		return tcell.ColorReset, nil
	case s == "default":
		return tcell.ColorDefault, nil
	}
	if color, ok := tcell.ColorNames[s]; ok {
		return color, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color name '%s'", s)
}
