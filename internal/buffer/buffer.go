// internal/buffer/buffer.go
package buffer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/bethropolis/ebb/internal/logger"
)

// DefaultHistoryLimit bounds the undo stack when Options leave it unset.
const DefaultHistoryLimit = 1000

// ErrNoPath is returned by Save when neither an explicit path nor an
// associated path is available.
var ErrNoPath = errors.New("buffer: no file name")

// IOError wraps a failure of the persistence layer.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Store is the persistence boundary. Buffers only touch it on Load and Save.
type Store interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// DiskStore implements Store on the local file system.
type DiskStore struct{}

func (DiskStore) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (DiskStore) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// Options configure a new buffer.
type Options struct {
	Store        Store // nil means DiskStore
	HistoryLimit int   // <= 0 means DefaultHistoryLimit
}

// Range is a half-open span [Start, End) of rune offsets.
type Range struct {
	Start, End int
}

// Len returns the number of runes covered.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether the range covers nothing.
func (r Range) Empty() bool { return r.End <= r.Start }

// Buffer holds text as runes together with its marks and undo history.
// All exported methods are safe for concurrent use; each holds the lock
// for the duration of one operation only.
type Buffer struct {
	mu    sync.Mutex
	text  []rune
	marks map[Mark]int
	path  string
	dirty bool
	store Store
	hist  history
	refs  int // views currently showing this buffer
}

// New creates a buffer holding text, not bound to any file.
func New(text string, opt Options) *Buffer {
	if opt.Store == nil {
		opt.Store = DiskStore{}
	}
	if opt.HistoryLimit <= 0 {
		opt.HistoryLimit = DefaultHistoryLimit
	}
	return &Buffer{
		text:  []rune(text),
		marks: make(map[Mark]int),
		store: opt.Store,
		hist:  history{max: opt.HistoryLimit},
	}
}

// Load reads path through the store. A file that does not exist yet gives
// an empty buffer bound to path, so the first save creates it.
func Load(path string, opt Options) (*Buffer, error) {
	b := New("", opt)
	b.path = path

	data, err := b.store.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debugf("Buffer: %s does not exist yet, starting empty", path)
		return b, nil
	}
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	b.text = []rune(string(data))
	logger.Debugf("Buffer: loaded %s (%d runes)", path, len(b.text))
	return b, nil
}

// Save writes the content to path, or to the associated path when path is
// empty. On success the buffer becomes clean and bound to the written path.
func (b *Buffer) Save(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	dest := path
	if dest == "" {
		dest = b.path
	}
	if dest == "" {
		return ErrNoPath
	}
	if err := b.store.WriteFile(dest, []byte(string(b.text))); err != nil {
		return &IOError{Op: "write", Path: dest, Err: err}
	}
	b.path = dest
	b.dirty = false
	b.hist.markSaved()
	logger.Infof("Buffer: wrote %s (%d runes)", dest, len(b.text))
	return nil
}

// Path returns the associated file path, possibly empty.
func (b *Buffer) Path() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.path
}

// SetPath binds the buffer to a file path without writing it.
func (b *Buffer) SetPath(path string) {
	b.mu.Lock()
	b.path = path
	b.mu.Unlock()
}

// Dirty reports unsaved changes.
func (b *Buffer) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirty
}

// Attach registers a view showing the buffer and returns the new count.
func (b *Buffer) Attach() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refs++
	return b.refs
}

// Detach unregisters a view and returns the remaining count.
func (b *Buffer) Detach() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.refs > 0 {
		b.refs--
	}
	return b.refs
}

// Refs returns how many views show the buffer.
func (b *Buffer) Refs() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refs
}

// --- Edits ---

// Insert inserts text at the mark. Every mark at or after that position,
// the inserting mark included, moves past the new text. It reports false
// when the mark does not exist or text is empty.
func (b *Buffer) Insert(mark Mark, text string) bool {
	return b.Update(func(tx *Tx) { tx.InsertAtMark(mark, text) })
}

// InsertAt inserts text at a rune offset (clamped).
func (b *Buffer) InsertAt(pos int, text string) bool {
	return b.Update(func(tx *Tx) { tx.Insert(pos, text) })
}

// Delete removes the clamped range and returns the removed text.
func (b *Buffer) Delete(r Range) string {
	var removed string
	b.Update(func(tx *Tx) { removed = tx.Delete(r) })
	return removed
}

// --- Content access ---

// Text returns the whole content.
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.text)
}

// Runes returns a copy of the content.
func (b *Buffer) Runes() []rune {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]rune, len(b.text))
	copy(out, b.text)
	return out
}

// Len returns the content length in runes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.text)
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return LineCount(b.text)
}

// Line returns line i without its newline, or "" when out of range.
func (b *Buffer) Line(i int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= LineCount(b.text) {
		return ""
	}
	start := LineOffset(b.text, i)
	return string(b.text[start:EndOfLine(b.text, start)])
}

// Lines returns lines [from, to) without newlines, clipped to the buffer.
func (b *Buffer) Lines(from, to int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if from < 0 {
		from = 0
	}
	if n := LineCount(b.text); to > n {
		to = n
	}
	if from >= to {
		return nil
	}
	out := make([]string, 0, to-from)
	pos := LineOffset(b.text, from)
	for i := from; i < to; i++ {
		end := EndOfLine(b.text, pos)
		out = append(out, string(b.text[pos:end]))
		pos = end + 1
	}
	return out
}

// LineOf returns the line index containing pos.
func (b *Buffer) LineOf(pos int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return LineIndex(b.text, clamp(pos, len(b.text)))
}

// LineStart returns the offset of the first rune of line i (clamped).
func (b *Buffer) LineStart(i int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return LineOffset(b.text, i)
}

// LineEnd returns the offset of the newline ending line i, or the buffer
// length for the last line.
func (b *Buffer) LineEnd(i int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return EndOfLine(b.text, LineOffset(b.text, i))
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
