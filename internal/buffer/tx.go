package buffer

import "github.com/bethropolis/ebb/internal/logger"

// Reader is a read-only view of the buffer while its lock is held. The
// slice returned by Runes must not be modified or kept after the callback
// returns.
type Reader interface {
	Runes() []rune
	Len() int
	MarkPosition(m Mark) (int, bool)
}

// Tx is a mutation in progress. Everything done through one Tx is a single
// undo step. A Tx is only valid inside the Update callback.
type Tx struct {
	b       *Buffer
	changes []change
}

// Update runs fn with the buffer locked. The edits fn makes are recorded as
// one undo step, and the redo stack is cleared if there were any. It
// reports whether anything changed.
func (b *Buffer) Update(fn func(tx *Tx)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	before := b.snapshotMarks()
	tx := &Tx{b: b}
	fn(tx)
	if len(tx.changes) == 0 {
		return false
	}
	b.hist.record(entry{
		changes:     tx.changes,
		marksBefore: before,
		marksAfter:  b.snapshotMarks(),
	})
	b.dirty = true
	logger.DebugTagf("history", "History: recorded %d change(s). Index: %d", len(tx.changes), b.hist.current)
	return true
}

// Read runs fn with the buffer locked for reading.
func (b *Buffer) Read(fn func(r Reader)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(lockedReader{b})
}

// lockedReader exposes the buffer to a callback that already holds the lock.
type lockedReader struct{ b *Buffer }

func (r lockedReader) Runes() []rune { return r.b.text }
func (r lockedReader) Len() int      { return len(r.b.text) }
func (r lockedReader) MarkPosition(m Mark) (int, bool) {
	pos, ok := r.b.marks[m]
	return pos, ok
}

// Runes returns the current content. Do not modify it.
func (tx *Tx) Runes() []rune { return tx.b.text }

// Len returns the current length in runes.
func (tx *Tx) Len() int { return len(tx.b.text) }

// MarkPosition returns a mark's current offset.
func (tx *Tx) MarkPosition(m Mark) (int, bool) {
	pos, ok := tx.b.marks[m]
	return pos, ok
}

// SetMark creates or moves a mark inside the transaction.
func (tx *Tx) SetMark(m Mark, pos int) {
	tx.b.marks[m] = clamp(pos, len(tx.b.text))
}

// Insert inserts text at pos (clamped) and returns the number of runes
// inserted.
func (tx *Tx) Insert(pos int, text string) int {
	if text == "" {
		return 0
	}
	runes := []rune(text)
	pos = clamp(pos, len(tx.b.text))
	tx.b.insertLocked(pos, runes)
	tx.changes = append(tx.changes, change{kind: insertAction, pos: pos, text: runes})
	return len(runes)
}

// InsertAtMark inserts text at a mark. It reports false for an unknown mark
// or empty text.
func (tx *Tx) InsertAtMark(m Mark, text string) bool {
	pos, ok := tx.b.marks[m]
	if !ok {
		logger.Debugf("Buffer: insert at unknown mark %q ignored", m)
		return false
	}
	return tx.Insert(pos, text) > 0
}

// Delete removes the clamped range and returns the removed text.
func (tx *Tx) Delete(r Range) string {
	start := clamp(r.Start, len(tx.b.text))
	end := clamp(r.End, len(tx.b.text))
	if end <= start {
		return ""
	}
	removed := tx.b.deleteLocked(start, end)
	tx.changes = append(tx.changes, change{kind: deleteAction, pos: start, text: removed})
	return string(removed)
}

// insertLocked splices runes in at pos and shifts marks. Caller holds the
// lock and has clamped pos.
func (b *Buffer) insertLocked(pos int, runes []rune) {
	text := make([]rune, 0, len(b.text)+len(runes))
	text = append(text, b.text[:pos]...)
	text = append(text, runes...)
	text = append(text, b.text[pos:]...)
	b.text = text
	b.shiftForInsert(pos, len(runes))
}

// deleteLocked cuts [start,end) and returns a copy of it. Caller holds the
// lock and has clamped the range.
func (b *Buffer) deleteLocked(start, end int) []rune {
	removed := make([]rune, end-start)
	copy(removed, b.text[start:end])
	b.text = append(b.text[:start], b.text[end:]...)
	b.shiftForDelete(start, end)
	return removed
}
