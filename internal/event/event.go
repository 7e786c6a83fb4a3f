// internal/event/event.go
package event

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Name is an opaque event token such as "editor.save". Names are data so
// binding tables can live in config files; Known guards against typos.
type Name string

// Built-in event names.
const (
	Quit        Name = "editor.quit"
	ForceQuit   Name = "editor.force_quit"
	Save        Name = "editor.save"
	SaveAs      Name = "editor.save_as"
	WriteQuit   Name = "editor.write_quit"
	CommandLine Name = "editor.command"
	Open        Name = "editor.open"
	NextBuffer  Name = "editor.next_buffer"
	PrevBuffer  Name = "editor.prev_buffer"
	CloseBuffer Name = "editor.close_buffer"

	ModeNormal Name = "mode.normal"
	ModeInsert Name = "mode.insert"

	CursorLeft         Name = "cursor.left"
	CursorRight        Name = "cursor.right"
	CursorUp           Name = "cursor.up"
	CursorDown         Name = "cursor.down"
	CursorLineStart    Name = "cursor.line_start"
	CursorLineEnd      Name = "cursor.line_end"
	CursorWordForward  Name = "cursor.word_forward"
	CursorWordBackward Name = "cursor.word_backward"
	CursorPageUp       Name = "cursor.page_up"
	CursorPageDown     Name = "cursor.page_down"
	CursorBufferStart  Name = "cursor.buffer_start"
	CursorBufferEnd    Name = "cursor.buffer_end"

	DeleteBackward     Name = "buffer.delete_backward"
	DeleteForward      Name = "buffer.delete_forward"
	DeleteWordBackward Name = "buffer.delete_word_backward"
	DeleteWordForward  Name = "buffer.delete_word_forward"
	DeleteLine         Name = "buffer.delete_line"
	DeleteToLineEnd    Name = "buffer.delete_to_line_end"
	InsertNewline      Name = "buffer.insert_newline"
	InsertTab          Name = "buffer.insert_tab"
	Undo               Name = "buffer.undo"
	Redo               Name = "buffer.redo"
	YankLine           Name = "buffer.yank_line"
	Paste              Name = "buffer.paste"
)

// builtin is the allow-list every binding and handler is validated against.
var builtin = map[Name]struct{}{
	Quit: {}, ForceQuit: {}, Save: {}, SaveAs: {}, WriteQuit: {}, CommandLine: {},
	Open: {}, NextBuffer: {}, PrevBuffer: {}, CloseBuffer: {},
	ModeNormal: {}, ModeInsert: {},
	CursorLeft: {}, CursorRight: {}, CursorUp: {}, CursorDown: {},
	CursorLineStart: {}, CursorLineEnd: {}, CursorWordForward: {}, CursorWordBackward: {},
	CursorPageUp: {}, CursorPageDown: {}, CursorBufferStart: {}, CursorBufferEnd: {},
	DeleteBackward: {}, DeleteForward: {}, DeleteWordBackward: {}, DeleteWordForward: {},
	DeleteLine: {}, DeleteToLineEnd: {}, InsertNewline: {}, InsertTab: {},
	Undo: {}, Redo: {}, YankLine: {}, Paste: {},
}

// ErrUnknown is returned for names outside the allow-list.
var ErrUnknown = errors.New("unknown event")

// Known reports whether n is a built-in event.
func Known(n Name) bool {
	_, ok := builtin[n]
	return ok
}

// Validate returns ErrUnknown (wrapped with the name) for unknown events.
func Validate(n Name) error {
	if !Known(n) {
		return fmt.Errorf("%w: %q", ErrUnknown, string(n))
	}
	return nil
}

// Parse trims and validates a name read from config or the command line.
func Parse(s string) (Name, error) {
	n := Name(strings.TrimSpace(s))
	if err := Validate(n); err != nil {
		return "", err
	}
	return n, nil
}

// All returns every built-in name in sorted order.
func All() []Name {
	names := make([]Name, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Command is a queued unit of work: an event plus optional text threaded in
// from an overlay (a path for save-as, for example). Key matches carry no Arg.
type Command struct {
	Event Name
	Arg   string
}

func (c Command) String() string {
	if c.Arg == "" {
		return string(c.Event)
	}
	return fmt.Sprintf("%s(%q)", c.Event, c.Arg)
}
