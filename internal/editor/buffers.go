package editor

import (
	"path/filepath"

	"github.com/bethropolis/ebb/internal/buffer"
	"github.com/bethropolis/ebb/internal/logger"
	"github.com/bethropolis/ebb/internal/view"
)

func (e *Editor) bufferOptions() buffer.Options {
	return buffer.Options{Store: e.store, HistoryLimit: e.settings.Editor.HistoryLimit}
}

func (e *Editor) viewOptions() view.Options {
	ed := e.settings.Editor
	return view.Options{
		TabWidth:    ed.TabWidth,
		ExpandTabs:  ed.ExpandTabs,
		ScrollOff:   ed.ScrollOff,
		LineNumbers: ed.LineNumbers,
		Completer:   e.completer,
	}
}

// addView opens a view on b and makes it active.
func (e *Editor) addView(b *buffer.Buffer) *view.View {
	e.nextID++
	v := view.New(e.nextID, b, e.viewOptions())
	e.views = append(e.views, v)
	e.active = len(e.views) - 1
	return v
}

// findView returns the index of the view showing path, or -1.
func (e *Editor) findView(path string) int {
	want := canonicalPath(path)
	for i, v := range e.views {
		if p := v.Buffer().Path(); p != "" && canonicalPath(p) == want {
			return i
		}
	}
	return -1
}

func canonicalPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// openBuffer switches to path, loading it first if no view shows it yet.
// A missing file gives an empty buffer bound to the path.
func (e *Editor) openBuffer(path string) (*view.View, error) {
	if i := e.findView(path); i != -1 {
		e.activate(i)
		return e.views[i], nil
	}
	b, err := buffer.Load(path, e.bufferOptions())
	if err != nil {
		return nil, err
	}

	// An untouched scratch buffer is replaced rather than kept around.
	if len(e.views) == 1 && isPristineScratch(e.views[0]) {
		e.views[0].Close()
		e.views = e.views[:0]
	}
	v := e.addView(b)
	e.resizeActive()
	logger.Infof("Editor: opened '%s' (%d lines)", path, b.LineCount())
	return v, nil
}

func isPristineScratch(v *view.View) bool {
	b := v.Buffer()
	return b.Path() == "" && !b.Dirty() && b.Len() == 0 && !b.CanUndo()
}

func (e *Editor) activate(i int) {
	if i < 0 || i >= len(e.views) {
		return
	}
	e.active = i
	e.resizeActive()
}

// cycle moves the active view by delta, wrapping around.
func (e *Editor) cycle(delta int) {
	n := len(e.views)
	if n < 2 {
		e.ActiveView().SetStatus("No other buffers")
		return
	}
	e.activate(((e.active+delta)%n + n) % n)
}

// closeActive closes the active view. A dirty buffer is kept open and
// nothing happens. Closing the last view leaves an empty scratch buffer.
func (e *Editor) closeActive() {
	v := e.ActiveView()
	b := v.Buffer()
	if b.Dirty() && b.Refs() <= 1 {
		v.SetStatus("No write since last change (save it or use :q!)")
		return
	}

	refs := v.Close()
	if refs == 0 {
		logger.Debugf("Editor: evicted buffer '%s'", b.Path())
	}
	e.views = append(e.views[:e.active], e.views[e.active+1:]...)

	if len(e.views) == 0 {
		e.addView(buffer.New("", e.bufferOptions()))
	} else if e.active >= len(e.views) {
		e.active = len(e.views) - 1
	}
	e.resizeActive()
}

// anyDirty reports whether some open buffer has unsaved changes.
func (e *Editor) anyDirty() bool {
	for _, v := range e.views {
		if v.Buffer().Dirty() {
			return true
		}
	}
	return false
}
