package buffer

import "sort"

// Mark names a position that follows the text as it is edited. Views keep
// their cursor in a mark, so two views on one buffer move independently.
type Mark string

// MarkPosition returns the mark's rune offset.
func (b *Buffer) MarkPosition(m Mark) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	pos, ok := b.marks[m]
	return pos, ok
}

// SetMark creates or moves a mark. pos is clamped to the buffer.
func (b *Buffer) SetMark(m Mark, pos int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	pos = clamp(pos, len(b.text))
	b.marks[m] = pos
	return pos
}

// MoveMark shifts a mark by delta runes, clamped. It reports false for an
// unknown mark.
func (b *Buffer) MoveMark(m Mark, delta int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	pos, ok := b.marks[m]
	if !ok {
		return false
	}
	b.marks[m] = clamp(pos+delta, len(b.text))
	return true
}

// RemoveMark forgets a mark.
func (b *Buffer) RemoveMark(m Mark) {
	b.mu.Lock()
	delete(b.marks, m)
	b.mu.Unlock()
}

// Marks lists the mark names in sorted order.
func (b *Buffer) Marks() []Mark {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Mark, 0, len(b.marks))
	for m := range b.marks {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// snapshotMarks copies the mark table. Caller holds the lock.
func (b *Buffer) snapshotMarks() map[Mark]int {
	out := make(map[Mark]int, len(b.marks))
	for m, pos := range b.marks {
		out[m] = pos
	}
	return out
}

// restoreMarks puts recorded positions back for marks that still exist.
// Marks created after the snapshot keep their current position.
func (b *Buffer) restoreMarks(saved map[Mark]int) {
	for m, pos := range saved {
		if _, ok := b.marks[m]; ok {
			b.marks[m] = clamp(pos, len(b.text))
		}
	}
}

// shiftForInsert moves marks at or after pos forward by n.
func (b *Buffer) shiftForInsert(pos, n int) {
	for m, p := range b.marks {
		if p >= pos {
			b.marks[m] = p + n
		}
	}
}

// shiftForDelete moves marks after [start,end) back and collapses marks
// inside it onto start.
func (b *Buffer) shiftForDelete(start, end int) {
	for m, p := range b.marks {
		switch {
		case p >= end:
			b.marks[m] = p - (end - start)
		case p > start:
			b.marks[m] = start
		}
	}
}
