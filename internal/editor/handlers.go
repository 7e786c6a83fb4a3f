package editor

import (
	"errors"

	"github.com/bethropolis/ebb/internal/buffer"
	"github.com/bethropolis/ebb/internal/event"
	"github.com/bethropolis/ebb/internal/logger"
	"github.com/bethropolis/ebb/internal/overlay"
	"github.com/bethropolis/ebb/internal/textobject"
	"github.com/bethropolis/ebb/internal/view"
)

func fwd(k textobject.Kind) textobject.Object {
	return textobject.Object{Kind: k, Offset: textobject.Fwd(1, "")}
}

func back(k textobject.Kind) textobject.Object {
	return textobject.Object{Kind: k, Offset: textobject.Back(1, "")}
}

// registerHandlers binds every built-in event to its action.
func (e *Editor) registerHandlers() error {
	// withView adapts a view action that cannot fail.
	withView := func(fn func(v *view.View)) event.Handler {
		return func(event.Command) error {
			fn(e.ActiveView())
			return nil
		}
	}

	handlers := map[event.Name]event.Handler{
		event.Quit:        e.handleQuit,
		event.ForceQuit:   func(event.Command) error { e.stop(); return nil },
		event.Save:        e.handleSave,
		event.SaveAs:      e.handleSaveAs,
		event.WriteQuit:   e.handleWriteQuit,
		event.CommandLine: withView(func(v *view.View) { v.SetOverlay(overlay.Prompt) }),
		event.Open:        e.handleOpen,
		event.NextBuffer:  func(event.Command) error { e.cycle(1); return nil },
		event.PrevBuffer:  func(event.Command) error { e.cycle(-1); return nil },
		event.CloseBuffer: func(event.Command) error { e.closeActive(); return nil },

		event.ModeNormal: func(event.Command) error { e.setMode(ModeNormal); return nil },
		event.ModeInsert: func(event.Command) error { e.setMode(ModeInsert); return nil },

		event.CursorLeft:         withView(func(v *view.View) { v.MoveCursor(view.Left, 1) }),
		event.CursorRight:        withView(func(v *view.View) { v.MoveCursor(view.Right, 1) }),
		event.CursorUp:           withView(func(v *view.View) { v.MoveCursor(view.Up, 1) }),
		event.CursorDown:         withView(func(v *view.View) { v.MoveCursor(view.Down, 1) }),
		event.CursorLineStart:    withView(func(v *view.View) { v.MoveTo(back(textobject.LineStart)) }),
		event.CursorLineEnd:      withView(func(v *view.View) { v.MoveTo(fwd(textobject.LineEnd)) }),
		event.CursorWordForward:  withView(func(v *view.View) { v.MoveTo(fwd(textobject.Word)) }),
		event.CursorWordBackward: withView(func(v *view.View) { v.MoveTo(back(textobject.Word)) }),
		event.CursorPageUp:       withView(func(v *view.View) { v.Page(-1) }),
		event.CursorPageDown:     withView(func(v *view.View) { v.Page(1) }),
		event.CursorBufferStart:  withView(func(v *view.View) { v.MoveToStart() }),
		event.CursorBufferEnd:    withView(func(v *view.View) { v.MoveToEnd() }),

		event.DeleteBackward:     withView(func(v *view.View) { v.Delete(back(textobject.Char)) }),
		event.DeleteForward:      withView(func(v *view.View) { v.Delete(fwd(textobject.Char)) }),
		event.DeleteWordBackward: withView(func(v *view.View) { v.Delete(back(textobject.Word)) }),
		event.DeleteWordForward:  withView(func(v *view.View) { v.Delete(fwd(textobject.Word)) }),
		event.DeleteLine: withView(func(v *view.View) {
			if removed := v.DeleteAtCursor(textobject.Line); removed != "" {
				e.clip.Copy(lineText(removed), true)
			}
		}),
		event.DeleteToLineEnd: withView(func(v *view.View) {
			if removed := v.Delete(fwd(textobject.LineEnd)); removed != "" {
				e.clip.Copy(removed, false)
			}
		}),
		event.InsertNewline: withView(func(v *view.View) { v.InsertText("\n") }),
		event.InsertTab:     withView(func(v *view.View) { v.InsertTab() }),
		event.Undo:          withView(func(v *view.View) { v.Undo() }),
		event.Redo:          withView(func(v *view.View) { v.Redo() }),
		event.YankLine: withView(func(v *view.View) {
			e.clip.Copy(v.YankLine(), true)
			v.SetStatus("Line yanked")
		}),
		event.Paste: withView(func(v *view.View) {
			text, linewise := e.clip.Paste()
			if text == "" {
				v.SetStatus("Clipboard empty")
				return
			}
			v.Paste(text, linewise)
		}),
	}

	for _, name := range event.All() {
		h, ok := handlers[name]
		if !ok {
			continue // reported by Missing
		}
		if err := e.handlers.Register(name, h); err != nil {
			return err
		}
	}
	return nil
}

// lineText normalises a deleted line so it pastes as a whole line. The
// last line of a buffer is removed together with the newline before it.
func lineText(removed string) string {
	if len(removed) > 0 && removed[0] == '\n' {
		return removed[1:] + "\n"
	}
	return removed
}

func (e *Editor) setMode(m Mode) {
	if e.mode == m {
		return
	}
	e.matchers[e.mode].Reset()
	e.mode = m
	logger.Debugf("Editor: mode %s", m)
}

// handleQuit stops unless a buffer has unsaved changes. The first such
// quit only warns; a second one in a row stops anyway. With every buffer
// clean it stops at once, so ctrl-q ends the loop in the iteration that
// received it. editor.force_quit skips the guard.
func (e *Editor) handleQuit(event.Command) error {
	if e.anyDirty() && !e.quitArmed {
		e.quitArmed = true
		e.ActiveView().SetStatus("Unsaved changes! Quit again to discard them.")
		return nil
	}
	e.stop()
	return nil
}

// save writes the active buffer. With no path anywhere it opens the save
// prompt instead.
func (e *Editor) save(path string) error {
	v := e.ActiveView()
	if path == "" && v.Buffer().Path() == "" {
		v.SetOverlay(overlay.SavePrompt)
		return buffer.ErrNoPath
	}
	return v.Save(path)
}

func (e *Editor) handleSave(cmd event.Command) error {
	// Failures are already on the status line.
	_ = e.save(cmd.Arg)
	return nil
}

func (e *Editor) handleSaveAs(cmd event.Command) error {
	if cmd.Arg == "" {
		e.ActiveView().SetOverlay(overlay.SavePrompt)
		return nil
	}
	_ = e.ActiveView().Save(cmd.Arg)
	return nil
}

func (e *Editor) handleWriteQuit(cmd event.Command) error {
	if err := e.save(cmd.Arg); err != nil {
		return nil // reported on the status line, or the save prompt is open
	}
	if e.anyDirty() {
		e.quitArmed = true
		e.ActiveView().SetStatus("Other buffers have unsaved changes! Quit again to discard them.")
		return nil
	}
	e.stop()
	return nil
}

func (e *Editor) handleOpen(cmd event.Command) error {
	if cmd.Arg == "" {
		e.ActiveView().SetOverlay(overlay.SelectFile)
		return nil
	}
	if _, err := e.openBuffer(cmd.Arg); err != nil {
		var ioErr *buffer.IOError
		if errors.As(err, &ioErr) {
			e.ActiveView().SetStatus("Open failed: %v", ioErr.Err)
		} else {
			e.ActiveView().SetStatus("Open failed: %v", err)
		}
		logger.Warnf("Editor: open '%s': %v", cmd.Arg, err)
	}
	return nil
}
