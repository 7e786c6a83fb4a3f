// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/ebb/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names the renderer and the status bar ask for.
const (
	StyleDefault           = "Default"
	StyleGutter            = "Gutter"
	StyleGutterCurrent     = "Gutter.current"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBar.modified"
	StyleStatusBarMessage  = "StatusBar.message"
	StyleStatusBarMode     = "StatusBar.mode"
	StylePrompt            = "Prompt"
	StyleTilde             = "Tilde"
)

// Theme is a named set of tcell styles.
type Theme struct {
	Name   string
	Styles map[string]tcell.Style
}

// Style looks a style up by name. A dotted name falls back to its base
// ("StatusBar.mode" -> "StatusBar"), then to "Default".
func (t *Theme) Style(name string) tcell.Style {
	if t == nil {
		return tcell.StyleDefault
	}
	if style, ok := t.Styles[name]; ok {
		return style
	}
	if dot := strings.Index(name, "."); dot != -1 {
		if style, ok := t.Styles[name[:dot]]; ok {
			return style
		}
	}
	if style, ok := t.Styles[StyleDefault]; ok {
		return style
	}
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Default returns the built-in dark theme. Each call returns a fresh copy so
// callers may override styles without touching other users.
func Default() *Theme {
	background := tcell.NewHexColor(0x2a2f38)
	foreground := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	blue := tcell.NewHexColor(0x61afef)

	// Text keeps the terminal background.
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)
	bar := tcell.StyleDefault.Background(background).Foreground(foreground)

	return &Theme{
		Name: "ebb dark",
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleGutter:            base.Foreground(muted),
			StyleGutterCurrent:     base.Foreground(yellow),
			StyleTilde:             base.Foreground(muted),
			StyleStatusBar:         bar,
			StyleStatusBarModified: bar.Foreground(yellow),
			StyleStatusBarMessage:  bar.Bold(true),
			StyleStatusBarMode:     bar.Foreground(blue).Bold(true),
			StylePrompt:            bar.Foreground(green).Bold(true),
		},
	}
}
