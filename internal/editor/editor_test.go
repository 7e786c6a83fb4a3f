package editor

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/bethropolis/ebb/internal/buffer"
	"github.com/bethropolis/ebb/internal/clipboard"
	"github.com/bethropolis/ebb/internal/config"
	"github.com/bethropolis/ebb/internal/event"
	"github.com/bethropolis/ebb/internal/frontend"
	"github.com/bethropolis/ebb/internal/key"
	"github.com/gdamore/tcell/v2"
)

// fakeFrontend replays scripted events and counts calls.
type fakeFrontend struct {
	events   []frontend.Event
	polls    int
	presents int
	w, h     int
	canvas   nopCanvas
}

func (f *fakeFrontend) PollEvent() frontend.Event {
	f.polls++
	if len(f.events) == 0 {
		return nil
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev
}

func (f *fakeFrontend) Canvas() frontend.Canvas { return f.canvas }
func (f *fakeFrontend) Present()                { f.presents++ }
func (f *fakeFrontend) Size() (int, int)        { return f.w, f.h }
func (f *fakeFrontend) Close()                  {}

type nopCanvas struct{}

func (nopCanvas) SetContent(int, int, rune, []rune, tcell.Style) {}
func (nopCanvas) ShowCursor(int, int)                            {}
func (nopCanvas) HideCursor()                                    {}
func (nopCanvas) Clear()                                         {}

// memStore keeps files in memory.
type memStore struct {
	files map[string]string
}

func (m *memStore) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func (m *memStore) WriteFile(path string, data []byte) error {
	m.files[path] = string(data)
	return nil
}

func keys(ks ...key.Key) []frontend.Event {
	evs := make([]frontend.Event, len(ks))
	for i := range ks {
		k := ks[i]
		evs[i] = &frontend.KeyEvent{Key: &k}
	}
	return evs
}

func typed(s string) []key.Key {
	var out []key.Key
	for _, r := range s {
		out = append(out, key.Rune(r))
	}
	return out
}

type setup struct {
	settings *config.Config
	store    *memStore
	files    []string
}

func newEditor(t *testing.T, s setup, events ...frontend.Event) (*Editor, *fakeFrontend) {
	t.Helper()
	fe := &fakeFrontend{events: events, w: 40, h: 10}
	if s.store == nil {
		s.store = &memStore{files: map[string]string{}}
	}
	e, err := New(Config{
		Frontend:  fe,
		Settings:  s.settings,
		Store:     s.store,
		Clipboard: clipboard.NewManager(false),
		Completer: func(string) []string { return nil },
		Files:     s.files,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, fe
}

func normalSettings() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Editor.StartMode = "normal"
	return cfg
}

func TestQuit_StopsWithinOneIteration(t *testing.T) {
	e, fe := newEditor(t, setup{}, keys(key.Ctrl('q'))...)
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if e.State() != Stopped {
		t.Fatalf("state = %v, want Stopped", e.State())
	}
	if fe.presents != 1 || fe.polls != 1 {
		t.Fatalf("presents=%d polls=%d, want 1 and 1", fe.presents, fe.polls)
	}
}

func TestInsertFallback_TypesText(t *testing.T) {
	evs := keys(typed("hi")...)
	evs = append(evs, keys(key.Named(key.CodeEnter), key.Rune('x'), key.Named(key.CodeTab))...)
	e, _ := newEditor(t, setup{}, evs...)
	for i := 0; i < 5; i++ {
		e.Step()
	}
	if got, want := e.ActiveView().Buffer().Text(), "hi\nx\t"; got != want {
		t.Fatalf("Text = %q, want %q", got, want)
	}
}

func TestNormalMode_IgnoresUnboundKeys(t *testing.T) {
	e, _ := newEditor(t, setup{settings: normalSettings()}, keys(key.Rune('q'), key.Named(key.CodeEnter))...)
	e.Step()
	e.Step()
	if got := e.ActiveView().Buffer().Text(); got != "" {
		t.Fatalf("Text = %q, want empty", got)
	}
}

func TestQuit_DirtyNeedsSecondQuit(t *testing.T) {
	evs := keys(key.Rune('a'), key.Ctrl('q'), key.Ctrl('q'))
	e, fe := newEditor(t, setup{}, evs...)

	e.Step()
	e.Step()
	if e.State() != Running {
		t.Fatalf("first quit with unsaved changes stopped the editor")
	}
	if got := e.StatusText(); !strings.Contains(got, "Unsaved changes") {
		t.Fatalf("status = %q", got)
	}
	e.Step()
	if e.State() != Stopped {
		t.Fatalf("second quit did not stop")
	}
	// A stopped editor neither draws nor polls.
	e.Step()
	if fe.presents != 3 || fe.polls != 3 {
		t.Fatalf("presents=%d polls=%d, want 3 and 3", fe.presents, fe.polls)
	}
}

func TestQuit_GuardResetsAfterOtherInput(t *testing.T) {
	evs := keys(key.Rune('a'), key.Ctrl('q'), key.Rune('b'), key.Ctrl('q'), key.Ctrl('q'))
	e, _ := newEditor(t, setup{}, evs...)
	for i := 0; i < 4; i++ {
		e.Step()
	}
	if e.State() != Running {
		t.Fatalf("quit after typing should warn again")
	}
	e.Step()
	if e.State() != Stopped {
		t.Fatalf("consecutive quit did not stop")
	}
}

func TestForceQuit_IgnoresDirtyBuffers(t *testing.T) {
	e, _ := newEditor(t, setup{settings: normalSettings()}, keys(key.Rune('i'), key.Rune('a'), key.Named(key.CodeEsc), key.Rune('Z'), key.Rune('Q'))...)
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if e.State() != Stopped {
		t.Fatalf("not stopped")
	}
	if got := e.ActiveView().Buffer().Text(); got != "a" {
		t.Fatalf("Text = %q", got)
	}
}

func TestCommandLine_SaveThroughPrompt(t *testing.T) {
	store := &memStore{files: map[string]string{}}
	evs := keys(typed("hello")...)
	evs = append(evs, keys(key.Alt('x'))...)
	evs = append(evs, keys(typed("w out.txt")...)...)
	evs = append(evs, keys(key.Named(key.CodeEnter), key.Ctrl('q'))...)

	e, _ := newEditor(t, setup{store: store}, evs...)
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := store.files["out.txt"]; got != "hello" {
		t.Fatalf("saved %q, want %q", got, "hello")
	}
	if e.ActiveView().Buffer().Dirty() {
		t.Fatalf("buffer still dirty after save")
	}
}

func TestCommandLine_WriteQuitRunsInSameIteration(t *testing.T) {
	store := &memStore{files: map[string]string{}}
	evs := keys(key.Rune('x'), key.Alt('x'))
	evs = append(evs, keys(typed("wq f.txt")...)...)
	evs = append(evs, keys(key.Named(key.CodeEnter))...)

	e, fe := newEditor(t, setup{store: store}, evs...)
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if store.files["f.txt"] != "x" {
		t.Fatalf("saved %q", store.files["f.txt"])
	}
	if fe.polls != len(evs) {
		t.Fatalf("polls = %d, want %d", fe.polls, len(evs))
	}
}

func TestCommandLine_Unknown(t *testing.T) {
	evs := keys(key.Alt('x'))
	evs = append(evs, keys(typed("frobnicate")...)...)
	evs = append(evs, keys(key.Named(key.CodeEnter))...)
	e, _ := newEditor(t, setup{}, evs...)
	for range evs {
		e.Step()
	}
	if got := e.StatusText(); !strings.Contains(got, "not an editor command: frobnicate") {
		t.Fatalf("status = %q", got)
	}
	if e.ActiveView().Overlay().Active() {
		t.Fatalf("prompt still open")
	}
}

func TestSave_WithoutPathOpensPrompt(t *testing.T) {
	store := &memStore{files: map[string]string{}}
	evs := keys(key.Rune('z'), key.Ctrl('s'))
	evs = append(evs, keys(typed("new.txt")...)...)
	evs = append(evs, keys(key.Named(key.CodeEnter))...)

	e, _ := newEditor(t, setup{store: store}, evs...)
	e.Step()
	e.Step()
	if !e.ActiveView().Overlay().Active() {
		t.Fatalf("save prompt not open")
	}
	for i := 2; i < len(evs); i++ {
		e.Step()
	}
	if store.files["new.txt"] != "z" {
		t.Fatalf("saved %q", store.files["new.txt"])
	}
	if got := e.ActiveView().Buffer().Path(); got != "new.txt" {
		t.Fatalf("Path = %q", got)
	}
}

func TestQueue_DrainsInOrderAfterEvent(t *testing.T) {
	e, _ := newEditor(t, setup{}, keys(key.Rune('x'))...)
	e.ActiveView().InsertText("ab")
	e.ActiveView().MoveToStart()

	e.Enqueue(event.Command{Event: event.CursorBufferEnd})
	e.Enqueue(event.Command{Event: event.DeleteBackward})
	e.Step()

	// 'x' is typed at the start first, then the cursor jumps to the end
	// and deletes the last rune.
	if got, want := e.ActiveView().Buffer().Text(), "xa"; got != want {
		t.Fatalf("Text = %q, want %q", got, want)
	}
}

func TestNormalMode_DeleteLineAndPaste(t *testing.T) {
	store := &memStore{files: map[string]string{"f.txt": "one\ntwo\nthree"}}
	evs := keys(key.Rune('j'), key.Rune('d'))
	evs = append(evs, keys(key.Rune('d'), key.Rune('p'), key.Rune('u'))...)
	e, _ := newEditor(t, setup{settings: normalSettings(), store: store, files: []string{"f.txt"}}, evs...)
	b := e.ActiveView().Buffer()

	e.Step()
	e.Step()
	if got := e.matchers[ModeNormal].Pending().String(); got != "d" {
		t.Fatalf("pending = %q, want %q", got, "d")
	}
	e.Step()
	if got, want := b.Text(), "one\nthree"; got != want {
		t.Fatalf("after dd Text = %q, want %q", got, want)
	}
	e.Step()
	if got, want := b.Text(), "one\nthree\ntwo"; got != want {
		t.Fatalf("after p Text = %q, want %q", got, want)
	}
	e.Step()
	if got, want := b.Text(), "one\nthree"; got != want {
		t.Fatalf("after u Text = %q, want %q", got, want)
	}
}

func TestBuffers_OpenCycleClose(t *testing.T) {
	store := &memStore{files: map[string]string{"a.txt": "A", "b.txt": "B"}}
	evs := keys(key.Rune('g'), key.Rune('t'))
	evs = append(evs, keys(key.Rune(':'))...)
	evs = append(evs, keys(typed("e b.txt")...)...)
	evs = append(evs, keys(key.Named(key.CodeEnter), key.Rune(':'))...)
	evs = append(evs, keys(typed("bd")...)...)
	evs = append(evs, keys(key.Named(key.CodeEnter))...)

	e, _ := newEditor(t, setup{settings: normalSettings(), store: store, files: []string{"a.txt", "b.txt"}}, evs...)
	if got := len(e.Views()); got != 2 {
		t.Fatalf("views = %d, want 2", got)
	}
	if got := e.ActiveView().Buffer().Path(); got != "a.txt" {
		t.Fatalf("active = %q, want a.txt", got)
	}

	e.Step()
	e.Step()
	if got := e.ActiveView().Buffer().Path(); got != "b.txt" {
		t.Fatalf("after gt active = %q, want b.txt", got)
	}

	for i := 0; i < 9; i++ {
		e.Step()
	}
	if got := e.ActiveView().Buffer().Path(); got != "b.txt" {
		t.Fatalf("after :e active = %q, want b.txt", got)
	}
	if got := len(e.Views()); got != 2 {
		t.Fatalf("reopening an open file added a view: %d", got)
	}

	for i := 0; i < 4; i++ {
		e.Step()
	}
	views := e.Views()
	if len(views) != 1 || views[0].Buffer().Path() != "a.txt" {
		t.Fatalf("after bd views = %d, active %q", len(views), e.ActiveView().Buffer().Path())
	}
}

func TestBuffers_CloseRefusesDirty(t *testing.T) {
	e, _ := newEditor(t, setup{})
	e.ActiveView().InsertText("x")
	e.Enqueue(event.Command{Event: event.CloseBuffer})
	e.queue.Drain(e.dispatch)
	if got := e.ActiveView().Buffer().Text(); got != "x" {
		t.Fatalf("dirty buffer was closed")
	}
	if got := e.StatusText(); !strings.Contains(got, "No write since last change") {
		t.Fatalf("status = %q", got)
	}
}

func TestOpen_ReplacesScratchBuffer(t *testing.T) {
	store := &memStore{files: map[string]string{"a.txt": "A"}}
	e, _ := newEditor(t, setup{store: store})
	e.Enqueue(event.Command{Event: event.Open, Arg: "a.txt"})
	e.queue.Drain(e.dispatch)
	views := e.Views()
	if len(views) != 1 || views[0].Buffer().Text() != "A" {
		t.Fatalf("views = %d, text %q", len(views), e.ActiveView().Buffer().Text())
	}
}

func TestResizeAndIgnoredEvents(t *testing.T) {
	e, _ := newEditor(t, setup{}, &frontend.ResizeEvent{Width: 30, Height: 8}, &frontend.OtherEvent{}, &frontend.KeyEvent{})
	e.Step()
	if w, h := e.ActiveView().Size(); w != 30 || h != 7 {
		t.Fatalf("view size %dx%d, want 30x7", w, h)
	}
	e.Step()
	e.Step()
	if e.State() != Running {
		t.Fatalf("ignored events stopped the editor")
	}
	e.Step() // script exhausted: the frontend reports shutdown
	if e.State() != Stopped {
		t.Fatalf("nil event did not stop the editor")
	}
}

func TestUserBindings(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Keys.Insert = map[string]string{
		"ctrl-t":   "buffer.undo",
		"ctrl-q":   "none",
		"ctrl-":    "buffer.undo",
		"f5":       "no.such_event",
		"ctrl-x u": "buffer.redo",
	}
	e, _ := newEditor(t, setup{settings: cfg}, keys(key.Rune('a'), key.Ctrl('t'), key.Ctrl('q'))...)
	m := e.matchers[ModeInsert]
	if _, ok := m.Lookup(key.Sequence{key.Ctrl('q')}); ok {
		t.Fatalf("ctrl-q still bound")
	}
	if _, ok := m.Lookup(key.Sequence{key.Named(key.CodeF5)}); ok {
		t.Fatalf("unknown event was bound")
	}
	if ev, ok := m.Lookup(key.Sequence{key.Ctrl('x'), key.Rune('u')}); !ok || ev != event.Redo {
		t.Fatalf("ctrl-x u = %v, %v", ev, ok)
	}

	e.Step()
	e.Step()
	if got := e.ActiveView().Buffer().Text(); got != "" {
		t.Fatalf("ctrl-t did not undo: %q", got)
	}
	e.Step()
	if e.State() != Running {
		t.Fatalf("unbound ctrl-q still quits")
	}
}

func TestNew_LoadFailureIsStartupError(t *testing.T) {
	fe := &fakeFrontend{w: 10, h: 5}
	_, err := New(Config{Frontend: fe, Store: failingStore{}, Clipboard: clipboard.NewManager(false), Files: []string{"x"}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := err.(*buffer.IOError); !ok {
		t.Fatalf("err = %T, want *buffer.IOError", err)
	}
}

type failingStore struct{}

func (failingStore) ReadFile(string) ([]byte, error) { return nil, fs.ErrPermission }
func (failingStore) WriteFile(string, []byte) error  { return fs.ErrPermission }
