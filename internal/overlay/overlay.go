// Package overlay implements the one-line prompts that sit on top of a
// view: the command line, the open-file prompt and the save-as prompt.
package overlay

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/ebb/internal/key"
	"github.com/bethropolis/ebb/internal/logger"
)

// Kind selects the prompt variant.
type Kind int

const (
	None Kind = iota
	Prompt
	SelectFile
	SavePrompt
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Prompt:
		return "prompt"
	case SelectFile:
		return "select-file"
	case SavePrompt:
		return "save-prompt"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Label is the text shown before the input.
func (k Kind) Label() string {
	switch k {
	case Prompt:
		return ":"
	case SelectFile:
		return "Open: "
	case SavePrompt:
		return "Save as: "
	}
	return ""
}

// Completer returns candidates that extend prefix.
type Completer func(prefix string) []string

// Event is the outcome of one key. While Finished is false the prompt is
// still open. A finished prompt is either confirmed (OK, with Text) or
// cancelled.
type Event struct {
	Finished bool
	Text     string
	OK       bool
}

// Overlay is the state of one prompt. The zero value is None.
type Overlay struct {
	kind     Kind
	text     []rune
	complete Completer
}

// New opens a prompt of the given kind. complete may be nil.
func New(kind Kind, complete Completer) Overlay {
	return Overlay{kind: kind, complete: complete}
}

// Kind returns the variant.
func (o *Overlay) Kind() Kind { return o.kind }

// Active reports whether keys should go to the overlay.
func (o *Overlay) Active() bool { return o.kind != None }

// Text returns the input typed so far.
func (o *Overlay) Text() string { return string(o.text) }

// Line is the full prompt line, label included.
func (o *Overlay) Line() string { return o.kind.Label() + string(o.text) }

// HandleKey feeds one key. A None overlay ignores every key.
func (o *Overlay) HandleKey(k key.Key) Event {
	if o.kind == None {
		return Event{}
	}

	switch {
	case k == key.Named(key.CodeEsc), k == key.Ctrl('c'), k == key.Ctrl('g'):
		logger.DebugTagf("overlay", "Overlay %s: cancelled", o.kind)
		return Event{Finished: true}

	case k == key.Named(key.CodeEnter):
		text := string(o.text)
		if !o.accepts(text) {
			return Event{}
		}
		logger.DebugTagf("overlay", "Overlay %s: confirmed %q", o.kind, text)
		return Event{Finished: true, Text: text, OK: true}

	case k == key.Named(key.CodeBackspace):
		if len(o.text) > 0 {
			o.text = o.text[:len(o.text)-1]
		}

	case k == key.Ctrl('u'):
		o.text = o.text[:0]

	case k == key.Named(key.CodeTab):
		o.completeText()

	case k.IsPrintable():
		o.text = append(o.text, k.Rune)
	}
	return Event{}
}

// accepts is the per-kind completion predicate. Blank input never
// completes; the text itself is handed back as typed.
func (o *Overlay) accepts(text string) bool {
	switch o.kind {
	case Prompt, SelectFile, SavePrompt:
		return strings.TrimSpace(text) != ""
	}
	return false
}

func (o *Overlay) completeText() {
	if o.complete == nil || (o.kind != SelectFile && o.kind != SavePrompt) {
		return
	}
	prefix := string(o.text)
	candidates := o.complete(prefix)
	if len(candidates) == 0 {
		return
	}
	common := longestCommonPrefix(candidates)
	if len(common) > len(prefix) && strings.HasPrefix(common, prefix) {
		o.text = []rune(common)
	}
}

func longestCommonPrefix(items []string) string {
	prefix := items[0]
	for _, s := range items[1:] {
		for !strings.HasPrefix(s, prefix) {
			// Trim whole runes so a multi-byte character is never split.
			_, size := utf8.DecodeLastRuneInString(prefix)
			prefix = prefix[:len(prefix)-size]
		}
	}
	return prefix
}
