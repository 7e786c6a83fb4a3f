package buffer

import "github.com/bethropolis/ebb/internal/logger"

// actionType indicates whether text was inserted or deleted.
type actionType int

const (
	insertAction actionType = iota
	deleteAction
)

func (a actionType) String() string {
	if a == insertAction {
		return "insert"
	}
	return "delete"
}

// change is a single primitive edit, enough to apply it or its inverse.
type change struct {
	kind actionType
	pos  int
	text []rune // inserted or deleted text
}

// entry is one undo step: the edits of one Update plus the mark table on
// both sides of it.
type entry struct {
	changes     []change
	marksBefore map[Mark]int
	marksAfter  map[Mark]int
}

// history is a linear undo stack; entries[current:] are redoable.
type history struct {
	entries []entry
	current int
	max     int
	saved   int // value of current at the last save, -1 when unreachable
}

// record pushes e, dropping any redo entries and the oldest entries past
// the limit.
func (h *history) record(e entry) {
	if h.current < len(h.entries) {
		h.entries = h.entries[:h.current]
		if h.saved > h.current {
			h.saved = -1
		}
	}
	h.entries = append(h.entries, e)
	if over := len(h.entries) - h.max; over > 0 {
		h.entries = h.entries[over:]
		h.saved -= over
		if h.saved < 0 {
			h.saved = -1
		}
	}
	h.current = len(h.entries)
}

func (h *history) markSaved()    { h.saved = h.current }
func (h *history) atSaved() bool { return h.saved == h.current }
func (h *history) canUndo() bool { return h.current > 0 }
func (h *history) canRedo() bool { return h.current < len(h.entries) }

// CanUndo reports whether Undo would do anything.
func (b *Buffer) CanUndo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hist.canUndo()
}

// CanRedo reports whether Redo would do anything.
func (b *Buffer) CanRedo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hist.canRedo()
}

// Undo reverts the last step, restoring content and marks exactly as they
// were before it. It reports false when there is nothing to undo.
func (b *Buffer) Undo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.hist.canUndo() {
		logger.DebugTagf("history", "History: Nothing to undo.")
		return false
	}
	b.hist.current--
	e := b.hist.entries[b.hist.current]
	for i := len(e.changes) - 1; i >= 0; i-- {
		c := e.changes[i]
		switch c.kind {
		case insertAction:
			b.deleteLocked(c.pos, c.pos+len(c.text))
		case deleteAction:
			b.insertLocked(c.pos, c.text)
		}
	}
	b.restoreMarks(e.marksBefore)
	b.dirty = !b.hist.atSaved()
	logger.DebugTagf("history", "History: undid %d change(s). Index: %d, Count: %d", len(e.changes), b.hist.current, len(b.hist.entries))
	return true
}

// Redo reapplies the last undone step and restores the marks as they were
// after it. It reports false when there is nothing to redo.
func (b *Buffer) Redo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.hist.canRedo() {
		logger.DebugTagf("history", "History: Nothing to redo.")
		return false
	}
	e := b.hist.entries[b.hist.current]
	b.hist.current++
	for _, c := range e.changes {
		switch c.kind {
		case insertAction:
			b.insertLocked(c.pos, c.text)
		case deleteAction:
			b.deleteLocked(c.pos, c.pos+len(c.text))
		}
	}
	b.restoreMarks(e.marksAfter)
	b.dirty = !b.hist.atSaved()
	logger.DebugTagf("history", "History: redid %d change(s). Index: %d, Count: %d", len(e.changes), b.hist.current, len(b.hist.entries))
	return true
}
