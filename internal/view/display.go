package view

import (
	"github.com/rivo/uniseg"
)

// DisplayColumn converts a rune column of line into a screen column,
// expanding tabs to the next multiple of tabWidth and measuring grapheme
// clusters by their display width.
func DisplayColumn(line []rune, runeCol, tabWidth int) int {
	if runeCol <= 0 {
		return 0
	}
	if runeCol > len(line) {
		runeCol = len(line)
	}
	if tabWidth <= 0 {
		tabWidth = 1
	}
	gr := uniseg.NewGraphemes(string(line[:runeCol]))
	col := 0
	for gr.Next() {
		runes := gr.Runes()
		if runes[0] == '\t' {
			col += tabWidth - col%tabWidth
			continue
		}
		col += gr.Width()
	}
	return col
}

// GutterWidth is the width of the line-number column for lineCount lines,
// including one cell of padding, or 0 when it would not leave room for
// text in width cells.
func GutterWidth(lineCount, width int) int {
	digits := 1
	for n := lineCount; n >= 10; n /= 10 {
		digits++
	}
	gutter := digits + 1
	if gutter >= width {
		return 0 // Disable gutter if screen too narrow
	}
	return gutter
}
