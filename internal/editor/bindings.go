package editor

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/ebb/internal/event"
	"github.com/bethropolis/ebb/internal/key"
	"github.com/bethropolis/ebb/internal/keymap"
	"github.com/bethropolis/ebb/internal/logger"
)

// Mode selects which key matcher receives keys.
type Mode int

const (
	ModeInsert Mode = iota
	ModeNormal
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeNormal:
		return "NORMAL"
	}
	return "UNKNOWN"
}

// ParseMode reads "insert" or "normal".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "insert", "":
		return ModeInsert, nil
	case "normal":
		return ModeNormal, nil
	}
	return ModeInsert, fmt.Errorf("unknown mode %q", s)
}

// defaultInsertKeys is an emacs-flavoured table: text keys fall through to
// insertion, commands live on control and alt chords.
var defaultInsertKeys = map[string]event.Name{
	"ctrl-q":        event.Quit,
	"ctrl-x ctrl-c": event.Quit,
	"ctrl-s":        event.Save,
	"ctrl-x ctrl-s": event.Save,
	"ctrl-x ctrl-w": event.SaveAs,
	"ctrl-x ctrl-f": event.Open,
	"ctrl-x k":      event.CloseBuffer,
	"ctrl-x right":  event.NextBuffer,
	"ctrl-x left":   event.PrevBuffer,
	"alt-x":         event.CommandLine,
	"esc":           event.ModeNormal,

	"left":      event.CursorLeft,
	"right":     event.CursorRight,
	"up":        event.CursorUp,
	"down":      event.CursorDown,
	"ctrl-b":    event.CursorLeft,
	"ctrl-f":    event.CursorRight,
	"ctrl-p":    event.CursorUp,
	"ctrl-n":    event.CursorDown,
	"home":      event.CursorLineStart,
	"end":       event.CursorLineEnd,
	"ctrl-a":    event.CursorLineStart,
	"ctrl-e":    event.CursorLineEnd,
	"alt-f":     event.CursorWordForward,
	"alt-b":     event.CursorWordBackward,
	"pgup":      event.CursorPageUp,
	"pgdn":      event.CursorPageDown,
	"alt-v":     event.CursorPageUp,
	"ctrl-v":    event.CursorPageDown,
	"alt-<":     event.CursorBufferStart,
	"alt->":     event.CursorBufferEnd,
	"backspace": event.DeleteBackward,
	"delete":    event.DeleteForward,
	"ctrl-d":    event.DeleteForward,
	"ctrl-w":    event.DeleteWordBackward,
	"alt-d":     event.DeleteWordForward,
	"ctrl-k":    event.DeleteToLineEnd,
	"alt-k":     event.DeleteLine,
	"ctrl-z":    event.Undo,
	"alt-z":     event.Redo,
	"alt-w":     event.YankLine,
	"ctrl-y":    event.Paste,
}

// defaultNormalKeys is a vi-flavoured table.
var defaultNormalKeys = map[string]event.Name{
	"ctrl-q": event.Quit,
	"ctrl-s": event.Save,
	"Z Z":    event.WriteQuit,
	"Z Q":    event.ForceQuit,
	":":      event.CommandLine,
	"i":      event.ModeInsert,

	"h":      event.CursorLeft,
	"j":      event.CursorDown,
	"k":      event.CursorUp,
	"l":      event.CursorRight,
	"left":   event.CursorLeft,
	"right":  event.CursorRight,
	"up":     event.CursorUp,
	"down":   event.CursorDown,
	"0":      event.CursorLineStart,
	"$":      event.CursorLineEnd,
	"home":   event.CursorLineStart,
	"end":    event.CursorLineEnd,
	"w":      event.CursorWordForward,
	"b":      event.CursorWordBackward,
	"g g":    event.CursorBufferStart,
	"G":      event.CursorBufferEnd,
	"ctrl-b": event.CursorPageUp,
	"ctrl-f": event.CursorPageDown,
	"pgup":   event.CursorPageUp,
	"pgdn":   event.CursorPageDown,

	"x":      event.DeleteForward,
	"X":      event.DeleteBackward,
	"d d":    event.DeleteLine,
	"d w":    event.DeleteWordForward,
	"d b":    event.DeleteWordBackward,
	"D":      event.DeleteToLineEnd,
	"u":      event.Undo,
	"ctrl-r": event.Redo,
	"y y":    event.YankLine,
	"p":      event.Paste,

	"g t": event.NextBuffer,
	"g T": event.PrevBuffer,
}

// buildMatcher binds a built-in table, then applies user overrides.
// Built-in entries must be valid; a bad one is a startup error. User
// entries are logged and skipped.
func buildMatcher(name string, defaults map[string]event.Name, user map[string]string) (*keymap.Matcher, error) {
	m := keymap.New(name)

	for _, seq := range sortedKeys(defaults) {
		if err := m.BindString(seq, string(defaults[seq])); err != nil {
			return nil, fmt.Errorf("built-in %s binding %q: %w", name, seq, err)
		}
	}

	for _, seqText := range sortedKeys(user) {
		evName := strings.TrimSpace(user[seqText])
		if evName == "" || strings.EqualFold(evName, "none") {
			seq, err := key.ParseSequence(seqText)
			if err != nil {
				logger.Warnf("Keys [%s]: skipping %q: %v", name, seqText, err)
				continue
			}
			if !m.Unbind(seq) {
				logger.Debugf("Keys [%s]: nothing bound to %q", name, seqText)
			}
			continue
		}
		if err := m.BindString(seqText, evName); err != nil {
			var inputErr *key.InputError
			if errors.As(err, &inputErr) {
				logger.Warnf("Keys [%s]: skipping %q: bad key: %v", name, seqText, inputErr)
			} else {
				logger.Warnf("Keys [%s]: skipping %q: %v", name, seqText, err)
			}
			continue
		}
		logger.DebugTagf("keymap", "Keys [%s]: %q -> %s", name, seqText, evName)
	}
	return m, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
