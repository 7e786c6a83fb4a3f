// Package frontend is the boundary between the editor and the terminal.
package frontend

import (
	"github.com/bethropolis/ebb/internal/key"
	"github.com/gdamore/tcell/v2"
)

// Event is what PollEvent returns: *KeyEvent, *ResizeEvent or *OtherEvent.
type Event interface {
	isEvent()
}

// KeyEvent is a key press. Key is nil when the terminal reported a key
// the editor has no name for.
type KeyEvent struct {
	Key *key.Key
}

// ResizeEvent reports the new terminal size in cells.
type ResizeEvent struct {
	Width, Height int
}

// OtherEvent is anything else (mouse, focus, paste markers...).
type OtherEvent struct{}

func (*KeyEvent) isEvent()    {}
func (*ResizeEvent) isEvent() {}
func (*OtherEvent) isEvent()  {}

// Canvas receives draw calls. tcell.Screen satisfies it.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	ShowCursor(x, y int)
	HideCursor()
	Clear()
}

// Frontend is a blocking event source plus a canvas.
type Frontend interface {
	// PollEvent blocks for the next event. nil means the frontend has
	// shut down and no more events will come.
	PollEvent() Event
	Canvas() Canvas
	// Present makes everything drawn since the last call visible.
	Present()
	Size() (width, height int)
	Close()
}
