package frontend

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Fill paints cells [x, x+width) of row y with blanks in style.
func Fill(c Canvas, x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		c.SetContent(x+i, y, ' ', nil, style)
	}
}

// DrawString draws s from column x on row y, one grapheme cluster per cell
// group, stopping before maxX. It returns the column after the last cluster
// drawn.
func DrawString(c Canvas, x, y, maxX int, s string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		runes := gr.Runes()
		width := gr.Width()
		if x+width > maxX {
			break // Stop if cluster doesn't fit
		}
		c.SetContent(x, y, runes[0], runes[1:], style)
		// Wide clusters cover the following cell(s) too.
		for w := 1; w < width; w++ {
			c.SetContent(x+w, y, ' ', nil, style)
		}
		x += width
	}
	return x
}

// StringWidth is the number of cells s occupies.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}
