// Package key describes semantic key presses and their text form.
//
// A Key is a comparable value so it can be used directly as a map key
// (the keymap trie relies on this).
package key

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Code identifies a named key. CodeRune means the key is a character.
type Code int

const (
	CodeRune Code = iota
	CodeEnter
	CodeTab
	CodeBackspace
	CodeDelete
	CodeEsc
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeHome
	CodeEnd
	CodePgUp
	CodePgDn
	CodeInsert
	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12
)

// Mod is a set of modifier keys.
type Mod uint8

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
)

// Key is a single key press.
type Key struct {
	Code Code
	Rune rune // only meaningful when Code == CodeRune
	Mod  Mod
}

// Rune returns the key for a plain character.
func Rune(r rune) Key { return Key{Code: CodeRune, Rune: r} }

// Ctrl returns the key for ctrl+r. Letters are normalised to lower case.
func Ctrl(r rune) Key { return Key{Code: CodeRune, Rune: unicode.ToLower(r), Mod: ModCtrl} }

// Alt returns the key for alt+r.
func Alt(r rune) Key { return Key{Code: CodeRune, Rune: r, Mod: ModAlt} }

// Named returns the key for a named key code without modifiers.
func Named(c Code) Key { return Key{Code: c} }

// IsPrintable reports whether the key inserts text when typed on its own.
func (k Key) IsPrintable() bool {
	return k.Code == CodeRune && k.Mod&(ModCtrl|ModAlt) == 0 && unicode.IsPrint(k.Rune)
}

var codeNames = map[Code]string{
	CodeEnter:     "enter",
	CodeTab:       "tab",
	CodeBackspace: "backspace",
	CodeDelete:    "delete",
	CodeEsc:       "esc",
	CodeUp:        "up",
	CodeDown:      "down",
	CodeLeft:      "left",
	CodeRight:     "right",
	CodeHome:      "home",
	CodeEnd:       "end",
	CodePgUp:      "pgup",
	CodePgDn:      "pgdn",
	CodeInsert:    "insert",
	CodeF1:        "f1",
	CodeF2:        "f2",
	CodeF3:        "f3",
	CodeF4:        "f4",
	CodeF5:        "f5",
	CodeF6:        "f6",
	CodeF7:        "f7",
	CodeF8:        "f8",
	CodeF9:        "f9",
	CodeF10:       "f10",
	CodeF11:       "f11",
	CodeF12:       "f12",
}

// nameCodes is the reverse of codeNames plus a few aliases.
var nameCodes = func() map[string]Code {
	m := make(map[string]Code, len(codeNames)+6)
	for c, n := range codeNames {
		m[n] = c
	}
	m["return"] = CodeEnter
	m["del"] = CodeDelete
	m["escape"] = CodeEsc
	m["pageup"] = CodePgUp
	m["pagedown"] = CodePgDn
	m["ins"] = CodeInsert
	return m
}()

// String renders the key in the same form Parse accepts.
func (k Key) String() string {
	var sb strings.Builder
	if k.Mod&ModCtrl != 0 {
		sb.WriteString("ctrl-")
	}
	if k.Mod&ModAlt != 0 {
		sb.WriteString("alt-")
	}
	if k.Mod&ModShift != 0 {
		sb.WriteString("shift-")
	}
	switch {
	case k.Code != CodeRune:
		if n, ok := codeNames[k.Code]; ok {
			sb.WriteString(n)
		} else {
			fmt.Fprintf(&sb, "code%d", int(k.Code))
		}
	case k.Rune == ' ':
		sb.WriteString("space")
	default:
		sb.WriteRune(k.Rune)
	}
	return sb.String()
}

// InputError reports key text that could not be parsed.
type InputError struct {
	Text   string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid key %q: %s", e.Text, e.Reason)
}

// Parse reads a single key such as "a", "ctrl-s", "alt-backspace" or "f5".
func Parse(text string) (Key, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Key{}, &InputError{Text: text, Reason: "empty key"}
	}

	var mod Mod
	for {
		i := strings.IndexByte(s, '-')
		// A lone "-" or a trailing dash ("ctrl--") names the dash key itself.
		if i <= 0 || i == len(s)-1 {
			break
		}
		switch strings.ToLower(s[:i]) {
		case "ctrl", "control":
			mod |= ModCtrl
		case "alt", "meta":
			mod |= ModAlt
		case "shift":
			mod |= ModShift
		default:
			return Key{}, &InputError{Text: text, Reason: fmt.Sprintf("unknown modifier %q", s[:i])}
		}
		s = s[i+1:]
	}

	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if !unicode.IsPrint(r) {
			return Key{}, &InputError{Text: text, Reason: "unprintable character"}
		}
		if mod&ModCtrl != 0 {
			r = unicode.ToLower(r)
		}
		// Terminals report shifted characters as the upper-case rune.
		if mod&ModShift != 0 {
			r = unicode.ToUpper(r)
			mod &^= ModShift
		}
		return Key{Code: CodeRune, Rune: r, Mod: mod}, nil
	}

	name := strings.ToLower(s)
	if name == "space" {
		return Key{Code: CodeRune, Rune: ' ', Mod: mod}, nil
	}
	if c, ok := nameCodes[name]; ok {
		return Key{Code: c, Mod: mod}, nil
	}
	return Key{}, &InputError{Text: text, Reason: fmt.Sprintf("unknown key name %q", s)}
}

// MustParse is Parse for built-in tables; it panics on malformed text.
func MustParse(text string) Key {
	k, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return k
}
