// Package keymap turns key presses into events through a trie of bound
// key sequences.
//
// Resolution is "first satisfied node wins": as soon as the keys typed so
// far reach a bound node, that binding fires. A binding that extends a
// shorter one (say "ctrl-x" and "ctrl-x ctrl-s") can therefore never fire
// until the shorter one is unbound.
package keymap

import (
	"errors"
	"fmt"

	"github.com/bethropolis/ebb/internal/event"
	"github.com/bethropolis/ebb/internal/key"
	"github.com/bethropolis/ebb/internal/logger"
)

// ErrEmptySequence is returned when binding zero keys.
var ErrEmptySequence = errors.New("keymap: empty key sequence")

// Kind is the outcome of feeding one key.
type Kind int

const (
	// NoMatch means the keys typed so far lead nowhere. The pending
	// prefix has been discarded; the caller applies its fallback to the
	// key just fed.
	NoMatch Kind = iota
	// Pending means the keys are a proper prefix of some binding.
	Pending
	// Matched means a bound node was reached. Event is set.
	Matched
)

func (k Kind) String() string {
	switch k {
	case NoMatch:
		return "no-match"
	case Pending:
		return "pending"
	case Matched:
		return "matched"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Result is what Feed reports.
type Result struct {
	Kind  Kind
	Event event.Name
}

type node struct {
	children map[key.Key]*node
	event    event.Name
	bound    bool
}

func newNode() *node {
	return &node{children: make(map[key.Key]*node)}
}

// Matcher resolves key presses against its bindings. The zero value is
// not usable; call New. A Matcher is not safe for concurrent use; the
// editor loop owns it.
type Matcher struct {
	name    string // for logging, e.g. "insert"
	root    *node
	current *node
	pending key.Sequence
}

// New creates an empty matcher.
func New(name string) *Matcher {
	root := newNode()
	return &Matcher{name: name, root: root, current: root}
}

// Name returns the name the matcher was created with.
func (m *Matcher) Name() string { return m.name }

// Bind maps seq to ev, replacing an existing binding for exactly seq.
// Any partially typed sequence is discarded.
func (m *Matcher) Bind(seq key.Sequence, ev event.Name) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}
	if err := event.Validate(ev); err != nil {
		return fmt.Errorf("bind %q: %w", seq, err)
	}
	n := m.root
	for _, k := range seq {
		child, ok := n.children[k]
		if !ok {
			child = newNode()
			n.children[k] = child
		}
		n = child
	}
	n.event = ev
	n.bound = true
	m.Reset()
	logger.DebugTagf("keymap", "Keymap %s: bound %s -> %s", m.name, seq, ev)
	return nil
}

// BindString parses a textual sequence such as "ctrl-x ctrl-s" and binds it.
func (m *Matcher) BindString(seq, ev string) error {
	parsed, err := key.ParseSequence(seq)
	if err != nil {
		return err
	}
	return m.Bind(parsed, event.Name(ev))
}

// Unbind removes the binding for exactly seq and prunes nodes that no
// longer lead anywhere. It reports whether a binding was removed.
func (m *Matcher) Unbind(seq key.Sequence) bool {
	if len(seq) == 0 {
		return false
	}
	path := make([]*node, 0, len(seq)+1)
	n := m.root
	path = append(path, n)
	for _, k := range seq {
		child, ok := n.children[k]
		if !ok {
			return false
		}
		n = child
		path = append(path, n)
	}
	if !n.bound {
		return false
	}
	n.bound = false
	n.event = ""

	// Walk back up removing empty, unbound nodes.
	for i := len(seq) - 1; i >= 0; i-- {
		child := path[i+1]
		if child.bound || len(child.children) > 0 {
			break
		}
		delete(path[i].children, seq[i])
	}
	m.Reset()
	logger.DebugTagf("keymap", "Keymap %s: unbound %s", m.name, seq)
	return true
}

// Feed advances the matcher by one key.
func (m *Matcher) Feed(k key.Key) Result {
	next, ok := m.current.children[k]
	if !ok {
		if len(m.pending) > 0 {
			logger.DebugTagf("keymap", "Keymap %s: %s %s leads nowhere", m.name, m.pending, k)
		}
		m.Reset()
		return Result{Kind: NoMatch}
	}
	if next.bound {
		ev := next.event
		m.Reset()
		return Result{Kind: Matched, Event: ev}
	}
	m.current = next
	m.pending = append(m.pending, k)
	return Result{Kind: Pending}
}

// Reset discards any partially typed sequence.
func (m *Matcher) Reset() {
	m.current = m.root
	m.pending = nil
}

// Pending returns the keys typed towards an incomplete sequence.
func (m *Matcher) Pending() key.Sequence {
	out := make(key.Sequence, len(m.pending))
	copy(out, m.pending)
	return out
}

// Lookup reports the event bound to exactly seq, without touching the
// matcher's state.
func (m *Matcher) Lookup(seq key.Sequence) (event.Name, bool) {
	n := m.root
	for _, k := range seq {
		child, ok := n.children[k]
		if !ok {
			return "", false
		}
		n = child
	}
	return n.event, n.bound
}

// Binding is one entry of a matcher, as listed by Bindings.
type Binding struct {
	Keys  key.Sequence
	Event event.Name
}

// Bindings lists every bound sequence in depth-first order.
func (m *Matcher) Bindings() []Binding {
	var out []Binding
	var walk func(n *node, prefix key.Sequence)
	walk = func(n *node, prefix key.Sequence) {
		if n.bound {
			seq := make(key.Sequence, len(prefix))
			copy(seq, prefix)
			out = append(out, Binding{Keys: seq, Event: n.event})
		}
		for k, child := range n.children {
			walk(child, append(prefix, k))
		}
	}
	walk(m.root, nil)
	return out
}
