package textobject

import (
	"unicode"
	"unicode/utf8"

	"github.com/bethropolis/ebb/internal/buffer"
	"github.com/rivo/uniseg"
)

// Word boundaries come from Unicode word segmentation (UAX #29) applied to
// one line at a time. A newline is a unit of its own, and runs of blanks
// are absorbed by the word before them.

func isBlank(r rune) bool { return r != '\n' && unicode.IsSpace(r) }

// segmentAt returns the word segment of text holding pos. pos must be
// inside the content and not on a newline.
func segmentAt(text []rune, pos int) buffer.Range {
	start := buffer.StartOfLine(text, pos)
	end := buffer.EndOfLine(text, pos)
	rest := string(text[start:end])

	offset := start
	state := -1
	var word string
	for len(rest) > 0 {
		word, rest, state = uniseg.FirstWordInString(rest, state)
		n := utf8.RuneCountInString(word)
		if pos < offset+n {
			return buffer.Range{Start: offset, End: offset + n}
		}
		offset += n
	}
	return buffer.Range{Start: pos, End: clamp(pos+1, len(text))}
}

// nextWord returns where one forward word step from pos ends: past the
// word under pos and the blanks after it. From blanks it stops at the next
// word; a newline is one step.
func nextWord(text []rune, pos int) int {
	if pos >= len(text) {
		return len(text)
	}
	if text[pos] == '\n' {
		return pos + 1
	}
	if !isBlank(text[pos]) {
		pos = segmentAt(text, pos).End
	}
	for pos < len(text) && isBlank(text[pos]) {
		pos++
	}
	return pos
}

// prevWord returns the start of the word before pos, skipping blanks. A
// newline right before pos is one step.
func prevWord(text []rune, pos int) int {
	if pos <= 0 {
		return 0
	}
	q := pos
	for q > 0 && isBlank(text[q-1]) {
		q--
	}
	if q == 0 {
		return 0
	}
	if text[q-1] == '\n' {
		if q == pos {
			return q - 1
		}
		return q
	}
	return segmentAt(text, q-1).Start
}

// wordAt returns the unit under pos: a word segment, a run of blanks, or a
// newline.
func wordAt(text []rune, pos int) buffer.Range {
	if pos >= len(text) {
		return buffer.Range{Start: len(text), End: len(text)}
	}
	if text[pos] == '\n' {
		return buffer.Range{Start: pos, End: pos + 1}
	}
	if isBlank(text[pos]) {
		start, end := pos, pos
		for start > 0 && isBlank(text[start-1]) {
			start--
		}
		for end < len(text) && isBlank(text[end]) {
			end++
		}
		return buffer.Range{Start: start, End: end}
	}
	return segmentAt(text, pos)
}
