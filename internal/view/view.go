// Package view is a window onto one buffer: it owns a cursor mark, the
// scroll position and the prompt overlay, and turns editing intents into
// buffer operations.
package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/ebb/internal/buffer"
	"github.com/bethropolis/ebb/internal/key"
	"github.com/bethropolis/ebb/internal/logger"
	"github.com/bethropolis/ebb/internal/overlay"
	"github.com/bethropolis/ebb/internal/textobject"
)

// Direction of a cursor move.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Options carry the editor settings a view needs.
type Options struct {
	TabWidth    int
	ExpandTabs  bool
	ScrollOff   int
	LineNumbers bool
	Completer   overlay.Completer // for file prompts, may be nil
}

// View shows one buffer.
type View struct {
	id     int
	buf    *buffer.Buffer
	cursor buffer.Mark
	opts   Options

	top, left     int // first visible line and display column
	width, height int // text area including the gutter
	goalCol       int // rune column kept across vertical moves, -1 if unset

	overlay overlay.Overlay
	status  string
}

// New creates a view on buf with its cursor at the start. The view
// registers itself with the buffer; Close undoes that.
func New(id int, buf *buffer.Buffer, opts Options) *View {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	if opts.ScrollOff < 0 {
		opts.ScrollOff = 0
	}
	v := &View{
		id:      id,
		buf:     buf,
		cursor:  buffer.Mark(fmt.Sprintf("cursor:%d", id)),
		opts:    opts,
		goalCol: -1,
	}
	buf.SetMark(v.cursor, 0)
	buf.Attach()
	return v
}

// ID returns the view's identifier.
func (v *View) ID() int { return v.id }

// Buffer returns the buffer being shown.
func (v *View) Buffer() *buffer.Buffer { return v.buf }

// CursorMark returns the name of the view's cursor mark.
func (v *View) CursorMark() buffer.Mark { return v.cursor }

// Cursor returns the cursor offset.
func (v *View) Cursor() int {
	pos, _ := v.buf.MarkPosition(v.cursor)
	return pos
}

// CursorLineCol returns the cursor line and rune column.
func (v *View) CursorLineCol() (line, col int) {
	v.buf.Read(func(r buffer.Reader) {
		text := r.Runes()
		pos, _ := r.MarkPosition(v.cursor)
		line = buffer.LineIndex(text, pos)
		col = pos - buffer.StartOfLine(text, pos)
	})
	return line, col
}

// Scroll returns the first visible line and display column.
func (v *View) Scroll() (top, left int) { return v.top, v.left }

// Size returns the text area size.
func (v *View) Size() (width, height int) { return v.width, v.height }

// Options returns the view settings.
func (v *View) Options() Options { return v.opts }

// Resize updates the dimensions and scrolls so the cursor stays visible.
func (v *View) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	v.width, v.height = width, height
	v.scrollToCursor()
}

// --- Movement ---

// MoveCursor moves n units. Left and Right move by runes and cross line
// boundaries; Up and Down keep the column where possible.
func (v *View) MoveCursor(dir Direction, n int) {
	if n <= 0 {
		return
	}
	switch dir {
	case Left:
		v.buf.MoveMark(v.cursor, -n)
		v.goalCol = -1
	case Right:
		v.buf.MoveMark(v.cursor, n)
		v.goalCol = -1
	case Up, Down:
		target := 0
		v.buf.Read(func(r buffer.Reader) {
			text := r.Runes()
			pos, _ := r.MarkPosition(v.cursor)
			line := buffer.LineIndex(text, pos)
			if v.goalCol < 0 {
				v.goalCol = pos - buffer.StartOfLine(text, pos)
			}
			if dir == Up {
				line -= n
			} else {
				line += n
			}
			if last := buffer.LineCount(text) - 1; line > last {
				line = last
			}
			if line < 0 {
				line = 0
			}
			start := buffer.LineOffset(text, line)
			target = start + v.goalCol
			if end := buffer.EndOfLine(text, start); target > end {
				target = end
			}
		})
		v.buf.SetMark(v.cursor, target)
	}
	v.scrollToCursor()
}

// MoveTo moves the cursor over a text object, e.g. to the next word.
func (v *View) MoveTo(obj textobject.Object) {
	var dest int
	v.buf.Read(func(r buffer.Reader) {
		dest = textobject.Destination(obj, textobject.Resolve(r, v.cursor, obj))
	})
	v.buf.SetMark(v.cursor, dest)
	v.goalCol = -1
	v.scrollToCursor()
}

// MoveToStart puts the cursor at the start of the buffer.
func (v *View) MoveToStart() {
	v.buf.SetMark(v.cursor, 0)
	v.goalCol = -1
	v.scrollToCursor()
}

// MoveToEnd puts the cursor at the end of the buffer.
func (v *View) MoveToEnd() {
	v.buf.SetMark(v.cursor, v.buf.Len())
	v.goalCol = -1
	v.scrollToCursor()
}

// Page scrolls by n screens (negative is up) and moves the cursor along.
func (v *View) Page(n int) {
	if n == 0 {
		return
	}
	step := v.height - 1
	if step < 1 {
		step = 1
	}
	lines := n * step
	v.top += lines
	if last := v.buf.LineCount() - 1; v.top > last {
		v.top = last
	}
	if v.top < 0 {
		v.top = 0
	}
	if lines < 0 {
		v.MoveCursor(Up, -lines)
	} else {
		v.MoveCursor(Down, lines)
	}
}

// --- Editing ---

// InsertChar inserts r at the cursor.
func (v *View) InsertChar(r rune) {
	v.InsertText(string(r))
}

// InsertText inserts s at the cursor; the cursor ends up after it.
func (v *View) InsertText(s string) {
	if v.buf.Insert(v.cursor, s) {
		v.goalCol = -1
		v.scrollToCursor()
	}
}

// InsertTab inserts a tab, or spaces up to the next tab stop when tabs
// are expanded.
func (v *View) InsertTab() {
	if !v.opts.ExpandTabs {
		v.InsertText("\t")
		return
	}
	var col int
	v.buf.Read(func(r buffer.Reader) {
		text := r.Runes()
		pos, _ := r.MarkPosition(v.cursor)
		start := buffer.StartOfLine(text, pos)
		col = DisplayColumn(text[start:], pos-start, v.opts.TabWidth)
	})
	v.InsertText(strings.Repeat(" ", v.opts.TabWidth-col%v.opts.TabWidth))
}

// Delete resolves obj against the cursor and deletes it, returning the
// removed text.
func (v *View) Delete(obj textobject.Object) string {
	var removed string
	v.buf.Update(func(tx *buffer.Tx) {
		removed = tx.Delete(textobject.Resolve(tx, v.cursor, obj))
	})
	v.goalCol = -1
	v.scrollToCursor()
	return removed
}

// DeleteAtCursor deletes the unit of kind that contains the cursor, e.g.
// the whole current line.
func (v *View) DeleteAtCursor(kind textobject.Kind) string {
	var removed string
	v.buf.Update(func(tx *buffer.Tx) {
		pos, _ := tx.MarkPosition(v.cursor)
		obj := textobject.Object{Kind: kind, Offset: textobject.At(pos)}
		removed = tx.Delete(textobject.Resolve(tx, v.cursor, obj))
	})
	v.goalCol = -1
	v.scrollToCursor()
	return removed
}

// YankLine returns the cursor line with a trailing newline.
func (v *View) YankLine() string {
	var line string
	v.buf.Read(func(r buffer.Reader) {
		text := r.Runes()
		pos, _ := r.MarkPosition(v.cursor)
		line = string(text[buffer.StartOfLine(text, pos):buffer.EndOfLine(text, pos)])
	})
	return line + "\n"
}

// Paste inserts text at the cursor, or for linewise text on a new line
// below the cursor line with the cursor moved to its start.
func (v *View) Paste(text string, linewise bool) {
	if text == "" {
		return
	}
	if !linewise {
		v.InsertText(text)
		return
	}
	body := strings.TrimSuffix(text, "\n")
	v.buf.Update(func(tx *buffer.Tx) {
		runes := tx.Runes()
		pos, _ := tx.MarkPosition(v.cursor)
		eol := buffer.EndOfLine(runes, pos)
		if eol < len(runes) {
			tx.Insert(eol+1, body+"\n")
		} else {
			tx.Insert(eol, "\n"+body)
		}
		tx.SetMark(v.cursor, eol+1)
	})
	v.goalCol = -1
	v.scrollToCursor()
}

// Undo reverts the last change to the buffer.
func (v *View) Undo() {
	if !v.buf.Undo() {
		v.SetStatus("Already at oldest change")
		return
	}
	v.goalCol = -1
	v.scrollToCursor()
}

// Redo reapplies the last undone change.
func (v *View) Redo() {
	if !v.buf.Redo() {
		v.SetStatus("Already at newest change")
		return
	}
	v.goalCol = -1
	v.scrollToCursor()
}

// Save writes the buffer to path ("" for its own path). The outcome is
// reported in the status message; the error is returned so callers can
// react (prompt for a name, skip quitting).
func (v *View) Save(path string) error {
	err := v.buf.Save(path)
	var ioErr *buffer.IOError
	switch {
	case err == nil:
		v.SetStatus("Wrote %s (%d lines)", v.buf.Path(), v.buf.LineCount())
	case errors.Is(err, buffer.ErrNoPath):
		v.SetStatus("No file name")
	case errors.As(err, &ioErr):
		v.SetStatus("Save failed: %v", ioErr.Err)
	default:
		v.SetStatus("Save failed: %v", err)
	}
	if err != nil {
		logger.Warnf("View %d: save failed: %v", v.id, err)
	}
	return err
}

// --- Overlay ---

// SetOverlay opens a prompt of kind, or closes it for overlay.None.
func (v *View) SetOverlay(kind overlay.Kind) {
	if kind == overlay.None {
		v.overlay = overlay.Overlay{}
		return
	}
	v.overlay = overlay.New(kind, v.opts.Completer)
}

// Overlay returns the active prompt.
func (v *View) Overlay() *overlay.Overlay { return &v.overlay }

// HandleOverlayKey routes k to the prompt. A finished prompt is closed
// before its result is returned.
func (v *View) HandleOverlayKey(k key.Key) overlay.Event {
	ev := v.overlay.HandleKey(k)
	if ev.Finished {
		v.overlay = overlay.Overlay{}
	}
	return ev
}

// --- Status ---

// SetStatus records a message for the status line.
func (v *View) SetStatus(format string, args ...interface{}) {
	v.status = fmt.Sprintf(format, args...)
}

// TakeStatus returns the pending message and clears it.
func (v *View) TakeStatus() string {
	s := v.status
	v.status = ""
	return s
}

// Close releases the cursor mark and the buffer reference. It returns how
// many views still show the buffer.
func (v *View) Close() int {
	v.buf.RemoveMark(v.cursor)
	return v.buf.Detach()
}

// --- Scrolling ---

// TextWidth is the width left for text after the gutter.
func (v *View) TextWidth() int {
	return v.width - v.Gutter()
}

// Gutter returns the current line-number column width.
func (v *View) Gutter() int {
	if !v.opts.LineNumbers {
		return 0
	}
	return GutterWidth(v.buf.LineCount(), v.width)
}

// CursorDisplay returns the cursor line and display column.
func (v *View) CursorDisplay() (line, col int) {
	v.buf.Read(func(r buffer.Reader) {
		text := r.Runes()
		pos, _ := r.MarkPosition(v.cursor)
		start := buffer.StartOfLine(text, pos)
		line = buffer.LineIndex(text, pos)
		col = DisplayColumn(text[start:buffer.EndOfLine(text, pos)], pos-start, v.opts.TabWidth)
	})
	return line, col
}

// scrollToCursor adjusts top and left so the cursor is visible with
// ScrollOff lines of context. It never moves the cursor.
func (v *View) scrollToCursor() {
	line, col := v.CursorDisplay()

	if v.height > 0 {
		off := v.opts.ScrollOff
		if limit := (v.height - 1) / 2; off > limit {
			off = limit
		}
		if line < v.top+off {
			v.top = line - off
		}
		if line >= v.top+v.height-off {
			v.top = line - v.height + off + 1
		}
		if v.top < 0 {
			v.top = 0
		}
	}

	if width := v.TextWidth(); width > 0 {
		if col < v.left {
			v.left = col
		}
		if col >= v.left+width {
			v.left = col - width + 1
		}
	}
}
