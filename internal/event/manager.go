package event

import (
	"fmt"
	"sync"

	"github.com/bethropolis/ebb/internal/logger"
)

// Handler performs the action bound to an event.
type Handler func(cmd Command) error

// Manager maps event names to the action that executes them.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Name]Handler
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Name]Handler),
	}
}

// Register binds h to name. Only built-in names are accepted and each name
// may be registered once.
func (m *Manager) Register(name Name, h Handler) error {
	if err := Validate(name); err != nil {
		return err
	}
	if h == nil {
		return fmt.Errorf("nil handler for %q", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.handlers[name]; exists {
		return fmt.Errorf("handler for %q already registered", name)
	}
	m.handlers[name] = h
	logger.DebugTagf("event", "Event Manager: handler registered for %s", name)
	return nil
}

// Handles reports whether a handler exists for name.
func (m *Manager) Handles(name Name) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.handlers[name]
	return ok
}

// Missing lists built-in events without a handler.
func (m *Manager) Missing() []Name {
	var out []Name
	for _, n := range All() {
		if !m.Handles(n) {
			out = append(out, n)
		}
	}
	return out
}

// Dispatch runs the handler for cmd synchronously.
func (m *Manager) Dispatch(cmd Command) error {
	m.mu.RLock()
	h, ok := m.handlers[cmd.Event]
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("no handler for %q", cmd.Event)
	}
	logger.DebugTagf("event", "Event Manager: dispatching %s", cmd)
	return h(cmd)
}
