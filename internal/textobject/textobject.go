// Package textobject resolves descriptions like "two words back from the
// cursor" into concrete buffer ranges.
package textobject

import (
	"fmt"

	"github.com/bethropolis/ebb/internal/buffer"
)

// Kind is the unit a text object counts in.
type Kind int

const (
	Char Kind = iota
	Word
	Line
	LineEnd   // from the position to the end of its line
	LineStart // from the start of the line to the position
)

func (k Kind) String() string {
	switch k {
	case Char:
		return "char"
	case Word:
		return "word"
	case Line:
		return "line"
	case LineEnd:
		return "line-end"
	case LineStart:
		return "line-start"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Anchor says how an Offset is measured.
type Anchor int

const (
	Forward Anchor = iota
	Backward
	Absolute
)

// Offset locates a text object: N units forward or backward from a mark,
// or the unit containing an absolute position.
type Offset struct {
	Anchor Anchor
	N      int
	Mark   buffer.Mark // empty means the mark passed to Resolve
	Pos    int         // Absolute only
}

// Fwd is N units forward from mark.
func Fwd(n int, mark buffer.Mark) Offset { return Offset{Anchor: Forward, N: n, Mark: mark} }

// Back is N units backward from mark.
func Back(n int, mark buffer.Mark) Offset { return Offset{Anchor: Backward, N: n, Mark: mark} }

// At is the unit containing pos.
func At(pos int) Offset { return Offset{Anchor: Absolute, Pos: pos} }

// Object is a unit plus where to find it.
type Object struct {
	Kind   Kind
	Offset Offset
}

func (o Object) String() string {
	switch o.Offset.Anchor {
	case Forward:
		return fmt.Sprintf("%s+%d", o.Kind, o.Offset.N)
	case Backward:
		return fmt.Sprintf("%s-%d", o.Kind, o.Offset.N)
	}
	return fmt.Sprintf("%s@%d", o.Kind, o.Offset.Pos)
}

// Resolve turns obj into a range of src. It never fails: an unknown mark
// counts as position 0 and every bound is clamped to the content.
func Resolve(src buffer.Reader, mark buffer.Mark, obj Object) buffer.Range {
	text := src.Runes()
	off := obj.Offset

	var pos int
	if off.Anchor == Absolute {
		pos = clamp(off.Pos, len(text))
	} else {
		m := off.Mark
		if m == "" {
			m = mark
		}
		pos, _ = src.MarkPosition(m)
		pos = clamp(pos, len(text))
	}

	if off.Anchor == Absolute {
		return containing(text, obj.Kind, pos)
	}

	// LineEnd and LineStart ignore the count and direction.
	switch obj.Kind {
	case LineEnd:
		return buffer.Range{Start: pos, End: buffer.EndOfLine(text, pos)}
	case LineStart:
		return buffer.Range{Start: buffer.StartOfLine(text, pos), End: pos}
	}

	n := off.N
	if n <= 0 {
		return buffer.Range{Start: pos, End: pos}
	}

	if off.Anchor == Forward {
		end := pos
		switch obj.Kind {
		case Char:
			end = clamp(pos+n, len(text))
		case Word:
			for i := 0; i < n && end < len(text); i++ {
				end = nextWord(text, end)
			}
		case Line:
			end = buffer.LineOffset(text, buffer.LineIndex(text, pos)+n)
		}
		return buffer.Range{Start: pos, End: end}
	}

	start := pos
	switch obj.Kind {
	case Char:
		start = clamp(pos-n, len(text))
	case Word:
		for i := 0; i < n && start > 0; i++ {
			start = prevWord(text, start)
		}
	case Line:
		start = buffer.LineOffset(text, buffer.LineIndex(text, pos)-(n-1))
	}
	return buffer.Range{Start: start, End: pos}
}

// containing returns the unit of kind k that holds pos.
func containing(text []rune, k Kind, pos int) buffer.Range {
	switch k {
	case Char:
		return buffer.Range{Start: pos, End: clamp(pos+1, len(text))}
	case Word:
		return wordAt(text, pos)
	case Line:
		start := buffer.StartOfLine(text, pos)
		end := buffer.EndOfLine(text, pos)
		if end < len(text) {
			return buffer.Range{Start: start, End: end + 1}
		}
		// The last line has no newline of its own; take the one before it
		// so the line really disappears.
		if start > 0 {
			start--
		}
		return buffer.Range{Start: start, End: end}
	case LineEnd:
		return buffer.Range{Start: pos, End: buffer.EndOfLine(text, pos)}
	case LineStart:
		return buffer.Range{Start: buffer.StartOfLine(text, pos), End: pos}
	}
	return buffer.Range{Start: pos, End: pos}
}

// Destination is where a cursor lands after moving over obj resolved to r.
func Destination(obj Object, r buffer.Range) int {
	switch obj.Kind {
	case LineStart:
		return r.Start
	case LineEnd:
		return r.End
	}
	if obj.Offset.Anchor == Forward {
		return r.End
	}
	return r.Start
}

func clamp(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}
