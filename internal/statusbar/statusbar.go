// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/ebb/internal/frontend"
	"github.com/bethropolis/ebb/internal/theme"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	Theme          *theme.Theme
	MessageTimeout time.Duration
	Now            func() time.Time // clock, replaceable in tests
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme:          theme.Default(),
		MessageTimeout: 4 * time.Second,
		Now:            time.Now,
	}
}

// StatusBar is the bottom line: file info, cursor, mode, pending keys,
// transient messages and, while a prompt is open, the prompt itself.
type StatusBar struct {
	config Config
	mu     sync.Mutex

	filePath   string
	isModified bool
	line, col  int
	editorMode string
	pending    string // keys typed towards an incomplete binding
	prompt     string // overlay line, empty when none is open

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	if config.Theme == nil {
		config.Theme = theme.Default()
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.MessageTimeout <= 0 {
		config.MessageTimeout = DefaultConfig().MessageTimeout
	}
	return &StatusBar{config: config}
}

// SetFileInfo updates the file path shown in the status bar.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the zero-based cursor line and column.
func (sb *StatusBar) SetCursorInfo(line, col int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.line, sb.col = line, col
}

// SetEditorMode updates the displayed editor mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetPending shows the keys of a partially typed sequence.
func (sb *StatusBar) SetPending(keys string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.pending = keys
}

// SetPrompt shows an open prompt line; "" hides it.
func (sb *StatusBar) SetPrompt(line string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.prompt = line
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.config.Now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// content picks what to show and its style name. Expired messages are
// dropped here. Caller holds the lock.
func (sb *StatusBar) content() (text, style string, isPrompt bool) {
	if sb.prompt != "" {
		return sb.prompt, theme.StylePrompt, true
	}
	if !sb.tempMessageTime.IsZero() {
		if sb.config.Now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return sb.tempMessage, theme.StyleStatusBarMessage, false
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	return sb.defaultText(), theme.StyleStatusBar, false
}

// defaultText builds the default status line text.
func (sb *StatusBar) defaultText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	modifiedIndicator := ""
	if sb.isModified {
		modifiedIndicator = " [Modified]"
	}
	modeIndicator := ""
	if sb.editorMode != "" {
		modeIndicator = fmt.Sprintf(" -- %s", sb.editorMode)
	}
	pendingIndicator := ""
	if sb.pending != "" {
		pendingIndicator = fmt.Sprintf(" [%s]", sb.pending)
	}
	return fmt.Sprintf("%s%s -- Line: %d, Col: %d%s%s",
		fPath, modifiedIndicator, sb.line+1, sb.col+1, modeIndicator, pendingIndicator)
}

// Text returns the line as it would be drawn now.
func (sb *StatusBar) Text() string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	text, _, _ := sb.content()
	return text
}

// Draw renders the bar on row y. When a prompt is open it returns the
// column where the terminal cursor belongs and true.
func (sb *StatusBar) Draw(c frontend.Canvas, width, y int) (int, bool) {
	if width <= 0 || y < 0 {
		return 0, false
	}
	sb.mu.Lock()
	text, styleName, isPrompt := sb.content()
	modified := sb.isModified && !isPrompt && styleName == theme.StyleStatusBar
	name := sb.filePath
	sb.mu.Unlock()
	if name == "" {
		name = "[No Name]"
	}

	th := sb.config.Theme
	style := th.Style(styleName)
	frontend.Fill(c, 0, y, width, th.Style(theme.StyleStatusBar))
	end := frontend.DrawString(c, 0, y, width, text, style)

	// Repaint the modified marker in its own colour.
	if modified {
		x := frontend.StringWidth(name)
		frontend.DrawString(c, x, y, width, " [Modified]", th.Style(theme.StyleStatusBarModified))
	}

	if isPrompt {
		if end >= width {
			end = width - 1
		}
		return end, true
	}
	return 0, false
}
