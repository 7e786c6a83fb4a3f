// internal/editor/editor.go
package editor

import (
	"fmt"

	"github.com/bethropolis/ebb/internal/buffer"
	"github.com/bethropolis/ebb/internal/clipboard"
	"github.com/bethropolis/ebb/internal/config"
	"github.com/bethropolis/ebb/internal/event"
	"github.com/bethropolis/ebb/internal/frontend"
	"github.com/bethropolis/ebb/internal/key"
	"github.com/bethropolis/ebb/internal/keymap"
	"github.com/bethropolis/ebb/internal/logger"
	"github.com/bethropolis/ebb/internal/overlay"
	"github.com/bethropolis/ebb/internal/render"
	"github.com/bethropolis/ebb/internal/statusbar"
	"github.com/bethropolis/ebb/internal/theme"
	"github.com/bethropolis/ebb/internal/view"
)

// State of the main loop.
type State int

const (
	Running State = iota
	Stopped
)

// Config holds the editor's collaborators. Only Frontend is required.
type Config struct {
	Frontend  frontend.Frontend
	Settings  *config.Config     // nil means defaults
	Theme     *theme.Theme       // nil means the built-in theme
	Clipboard *clipboard.Manager // nil means one built from Settings
	Store     buffer.Store       // nil means the local disk
	Completer overlay.Completer  // nil means paths relative to the working directory
	Files     []string           // opened at startup; none gives a scratch buffer
}

// Editor turns frontend events into commands and runs them against the
// active view.
type Editor struct {
	fe        frontend.Frontend
	settings  *config.Config
	renderer  *render.Renderer
	statusBar *statusbar.StatusBar
	clip      *clipboard.Manager
	store     buffer.Store
	completer overlay.Completer

	handlers *event.Manager
	queue    event.Queue
	matchers map[Mode]*keymap.Matcher
	mode     Mode
	state    State

	views  []*view.View // one per open buffer
	active int
	nextID int

	width, height int

	quitArmed bool // a quit with unsaved changes was refused once
}

// New wires an editor. Errors here are startup failures: bad built-in
// bindings, an unhandled event or a file that cannot be read.
func New(cfg Config) (*Editor, error) {
	if cfg.Frontend == nil {
		return nil, fmt.Errorf("editor: no frontend")
	}
	settings := cfg.Settings
	if settings == nil {
		settings = config.NewDefaultConfig()
	}
	clip := cfg.Clipboard
	if clip == nil {
		clip = clipboard.NewManager(settings.Editor.SystemClipboard)
	}
	store := cfg.Store
	if store == nil {
		store = buffer.DiskStore{}
	}
	completer := cfg.Completer
	if completer == nil {
		completer = overlay.PathCompleter(".")
	}
	th := cfg.Theme
	if th == nil {
		th = theme.Default()
	}

	e := &Editor{
		fe:        cfg.Frontend,
		settings:  settings,
		renderer:  render.New(th),
		statusBar: statusbar.New(statusbar.Config{Theme: th, MessageTimeout: settings.Editor.StatusTimeout()}),
		clip:      clip,
		store:     store,
		completer: completer,
		handlers:  event.NewManager(),
		matchers:  make(map[Mode]*keymap.Matcher),
	}

	var err error
	if e.matchers[ModeInsert], err = buildMatcher("insert", defaultInsertKeys, settings.Keys.Insert); err != nil {
		return nil, err
	}
	if e.matchers[ModeNormal], err = buildMatcher("normal", defaultNormalKeys, settings.Keys.Normal); err != nil {
		return nil, err
	}
	if err := e.registerHandlers(); err != nil {
		return nil, err
	}
	if missing := e.handlers.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("editor: no handler for %v", missing)
	}

	if e.mode, err = ParseMode(settings.Editor.StartMode); err != nil {
		logger.Warnf("Editor: %v, starting in insert mode", err)
	}

	for _, path := range cfg.Files {
		if _, err := e.openBuffer(path); err != nil {
			return nil, err
		}
	}
	if len(e.views) == 0 {
		e.addView(buffer.New("", e.bufferOptions()))
	}
	e.active = 0

	e.width, e.height = e.fe.Size()
	e.resizeActive()
	e.statusBar.SetTemporaryMessage("%s %s - :q to quit, :w to save", config.AppName, config.Version)
	logger.Infof("Editor: started with %d buffer(s) in %s mode", len(e.views), e.mode)
	return e, nil
}

// Run loops until the editor stops.
func (e *Editor) Run() error {
	for e.state == Running {
		e.Step()
	}
	logger.Infof("Editor: stopped")
	return nil
}

// Step runs one iteration: draw, present, wait for an event, handle it and
// drain the command queue.
func (e *Editor) Step() {
	if e.state != Running {
		return
	}
	e.draw()
	e.fe.Present()

	ev := e.fe.PollEvent()
	if ev == nil {
		logger.Infof("Editor: frontend closed")
		e.stop()
		return
	}
	e.handleEvent(ev)
	e.queue.Drain(e.dispatch)
}

// State returns Running or Stopped.
func (e *Editor) State() State { return e.state }

// Mode returns the active mode.
func (e *Editor) Mode() Mode { return e.mode }

// ActiveView returns the view receiving input.
func (e *Editor) ActiveView() *view.View { return e.views[e.active] }

// Views returns the open views in order.
func (e *Editor) Views() []*view.View {
	out := make([]*view.View, len(e.views))
	copy(out, e.views)
	return out
}

// StatusText returns the status line as it would be drawn now.
func (e *Editor) StatusText() string {
	e.updateStatusBar()
	return e.statusBar.Text()
}

// Enqueue adds a command to the pending queue; it runs on the next drain.
func (e *Editor) Enqueue(cmd event.Command) {
	e.queue.Push(cmd)
}

func (e *Editor) stop() {
	e.state = Stopped
}

// --- Events ---

func (e *Editor) handleEvent(ev frontend.Event) {
	switch ev := ev.(type) {
	case *frontend.KeyEvent:
		if ev.Key == nil {
			return // a key the frontend could not name
		}
		e.handleKey(*ev.Key)
	case *frontend.ResizeEvent:
		e.width, e.height = ev.Width, ev.Height
		e.resizeActive()
	default:
		// Mouse, focus and the like are ignored.
	}
}

func (e *Editor) handleKey(k key.Key) {
	v := e.ActiveView()

	if ov := v.Overlay(); ov.Active() {
		kind := ov.Kind()
		res := v.HandleOverlayKey(k)
		if res.Finished {
			e.overlayFinished(kind, res)
		}
		return
	}

	res := e.matchers[e.mode].Feed(k)
	switch res.Kind {
	case keymap.Matched:
		logger.DebugTagf("keymap", "Editor: %s matched %s in %s mode", k, res.Event, e.mode)
		e.queue.Push(event.Command{Event: res.Event})
	case keymap.Pending:
		logger.DebugTagf("keymap", "Editor: waiting after %s", k)
	case keymap.NoMatch:
		e.fallback(k)
	}
}

// fallback handles keys no binding claimed. Only insert mode types text.
func (e *Editor) fallback(k key.Key) {
	if e.mode != ModeInsert {
		return
	}
	v := e.ActiveView()
	switch {
	case k.IsPrintable():
		v.InsertChar(k.Rune)
	case k == key.Named(key.CodeEnter):
		v.InsertText("\n")
	case k == key.Named(key.CodeTab):
		v.InsertTab()
	default:
		return
	}
	e.quitArmed = false
}

// overlayFinished turns a closed prompt into a command.
func (e *Editor) overlayFinished(kind overlay.Kind, res overlay.Event) {
	if !res.OK {
		return
	}
	switch kind {
	case overlay.Prompt:
		cmd, err := ParseCommandLine(res.Text)
		if err != nil {
			e.statusBar.SetTemporaryMessage("%v", err)
			return
		}
		e.queue.Push(cmd)
	case overlay.SavePrompt:
		e.queue.Push(event.Command{Event: event.Save, Arg: res.Text})
	case overlay.SelectFile:
		e.queue.Push(event.Command{Event: event.Open, Arg: res.Text})
	}
}

// dispatch runs one queued command.
func (e *Editor) dispatch(cmd event.Command) {
	if e.state != Running {
		return
	}
	if cmd.Event != event.Quit {
		e.quitArmed = false
	}
	if err := e.handlers.Dispatch(cmd); err != nil {
		logger.Warnf("Editor: %s failed: %v", cmd, err)
		e.statusBar.SetTemporaryMessage("%v", err)
	}
	if msg := e.ActiveView().TakeStatus(); msg != "" {
		e.statusBar.SetTemporaryMessage("%s", msg)
	}
}

// --- Drawing ---

func (e *Editor) resizeActive() {
	h := e.height - config.StatusBarHeight
	if h < 0 {
		h = 0
	}
	e.ActiveView().Resize(e.width, h)
}

func (e *Editor) updateStatusBar() {
	v := e.ActiveView()
	if msg := v.TakeStatus(); msg != "" {
		e.statusBar.SetTemporaryMessage("%s", msg)
	}
	b := v.Buffer()
	e.statusBar.SetFileInfo(b.Path(), b.Dirty())
	line, col := v.CursorLineCol()
	e.statusBar.SetCursorInfo(line, col)
	e.statusBar.SetEditorMode(e.mode.String())
	e.statusBar.SetPending(e.matchers[e.mode].Pending().String())
	if ov := v.Overlay(); ov.Active() {
		e.statusBar.SetPrompt(ov.Line())
	} else {
		e.statusBar.SetPrompt("")
	}
}

func (e *Editor) draw() {
	e.updateStatusBar()

	c := e.fe.Canvas()
	c.Clear()
	e.renderer.View(c, e.ActiveView())

	y := e.height - config.StatusBarHeight
	if x, ok := e.statusBar.Draw(c, e.width, y); ok {
		c.ShowCursor(x, y)
	}
}
