package buffer

// Line helpers over a rune slice. Positions are clamped by the callers.

// LineCount returns the number of lines in text; an empty text has one.
func LineCount(text []rune) int {
	n := 1
	for _, r := range text {
		if r == '\n' {
			n++
		}
	}
	return n
}

// StartOfLine returns the offset of the first rune of the line holding pos.
func StartOfLine(text []rune, pos int) int {
	pos = clamp(pos, len(text))
	for pos > 0 && text[pos-1] != '\n' {
		pos--
	}
	return pos
}

// EndOfLine returns the offset of the newline ending the line holding pos,
// or len(text) on the last line.
func EndOfLine(text []rune, pos int) int {
	pos = clamp(pos, len(text))
	for pos < len(text) && text[pos] != '\n' {
		pos++
	}
	return pos
}

// LineIndex returns the zero-based line number of pos.
func LineIndex(text []rune, pos int) int {
	pos = clamp(pos, len(text))
	line := 0
	for _, r := range text[:pos] {
		if r == '\n' {
			line++
		}
	}
	return line
}

// LineOffset returns the offset where line starts. Negative lines give 0,
// lines past the end give len(text).
func LineOffset(text []rune, line int) int {
	if line <= 0 {
		return 0
	}
	for i, r := range text {
		if r == '\n' {
			line--
			if line == 0 {
				return i + 1
			}
		}
	}
	return len(text)
}
