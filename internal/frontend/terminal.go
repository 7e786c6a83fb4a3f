// internal/frontend/terminal.go
package frontend

import (
	"fmt"

	"github.com/bethropolis/ebb/internal/key"
	"github.com/bethropolis/ebb/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Terminal is the tcell frontend.
type Terminal struct {
	screen tcell.Screen
	closed bool
}

// NewTerminal creates and initialises the terminal screen.
func NewTerminal(style tcell.Style) (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewTerminalWithScreen(s, style)
}

// NewTerminalWithScreen wraps an existing screen, for instance a
// tcell.SimulationScreen in tests. The screen is initialised here.
func NewTerminalWithScreen(s tcell.Screen, style tcell.Style) (*Terminal, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.SetStyle(style)
	s.Clear()
	return &Terminal{screen: s}, nil
}

// PollEvent translates the next tcell event.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil // screen finalised
		case *tcell.EventKey:
			if k, ok := key.FromTcell(ev); ok {
				return &KeyEvent{Key: &k}
			}
			logger.DebugTagf("frontend", "Terminal: unmapped key %s", ev.Name())
			return &KeyEvent{}
		case *tcell.EventResize:
			t.screen.Sync()
			w, h := ev.Size()
			return &ResizeEvent{Width: w, Height: h}
		case *tcell.EventInterrupt:
			// Used internally to wake the poll; not meaningful to the editor.
			continue
		default:
			return &OtherEvent{}
		}
	}
}

// Canvas returns the screen for drawing.
func (t *Terminal) Canvas() Canvas { return t.screen }

// Present makes the changes visible.
func (t *Terminal) Present() { t.screen.Show() }

// Size returns the width and height of the terminal screen.
func (t *Terminal) Size() (int, int) { return t.screen.Size() }

// Close finalizes the tcell screen. Calling it again does nothing.
func (t *Terminal) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.screen.Fini()
}
