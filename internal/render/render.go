// internal/render/render.go
package render

import (
	"fmt"

	"github.com/bethropolis/ebb/internal/frontend"
	"github.com/bethropolis/ebb/internal/logger"
	"github.com/bethropolis/ebb/internal/theme"
	"github.com/bethropolis/ebb/internal/view"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Renderer draws views onto a canvas.
type Renderer struct {
	theme *theme.Theme
}

// New creates a renderer using th (nil means the built-in theme).
func New(th *theme.Theme) *Renderer {
	if th == nil {
		logger.Warnf("Renderer created with nil theme, using default.")
		th = theme.Default()
	}
	return &Renderer{theme: th}
}

// Theme returns the active theme.
func (r *Renderer) Theme() *theme.Theme { return r.theme }

// View draws the visible part of v into rows [0, height) of its text area
// and places the terminal cursor on the view's cursor.
func (r *Renderer) View(c frontend.Canvas, v *view.View) {
	width, height := v.Size()
	if width <= 0 || height <= 0 {
		c.HideCursor()
		return
	}

	defaultStyle := r.theme.Style(theme.StyleDefault)
	gutterStyle := r.theme.Style(theme.StyleGutter)
	currentGutterStyle := r.theme.Style(theme.StyleGutterCurrent)
	tildeStyle := r.theme.Style(theme.StyleTilde)

	top, left := v.Scroll()
	gutter := v.Gutter()
	tabWidth := v.Options().TabWidth
	cursorLine, cursorCol := v.CursorDisplay()
	lines := v.Buffer().Lines(top, top+height)

	for screenY := 0; screenY < height; screenY++ {
		lineIdx := top + screenY

		// Fill the entire line with the theme's default style
		frontend.Fill(c, 0, screenY, width, defaultStyle)

		if screenY >= len(lines) {
			// Past the end of the buffer.
			c.SetContent(0, screenY, '~', nil, tildeStyle)
			continue
		}

		if gutter > 0 {
			style := gutterStyle
			if lineIdx == cursorLine {
				style = currentGutterStyle
			}
			num := fmt.Sprintf("%*d", gutter-1, lineIdx+1)
			frontend.DrawString(c, 0, screenY, gutter-1, num, style)
		}

		drawLine(c, lines[screenY], screenY, gutter, left, width, tabWidth, defaultStyle)
	}

	x := cursorCol - left + gutter
	y := cursorLine - top
	if x < gutter || x >= width || y < 0 || y >= height {
		c.HideCursor()
		return
	}
	c.ShowCursor(x, y)
}

// drawLine draws one line of text starting at display column left,
// expanding tabs to tab stops measured from the start of the line.
func drawLine(c frontend.Canvas, line string, y, gutter, left, width, tabWidth int, style tcell.Style) {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	visualX := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		runes := gr.Runes()
		clusterWidth := gr.Width()
		if runes[0] == '\t' {
			clusterWidth = tabWidth - visualX%tabWidth
		}
		if visualX >= left+width-gutter {
			break
		}

		// Clusters straddling the left edge are skipped whole.
		if visualX >= left {
			screenX := visualX - left + gutter
			if runes[0] == '\t' {
				frontend.Fill(c, screenX, y, minInt(clusterWidth, width-screenX), style)
			} else if screenX+clusterWidth <= width {
				c.SetContent(screenX, y, runes[0], runes[1:], style)
				for cw := 1; cw < clusterWidth; cw++ {
					c.SetContent(screenX+cw, y, ' ', nil, style)
				}
			}
		}
		visualX += clusterWidth
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
