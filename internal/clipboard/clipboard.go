// Package clipboard holds yanked text, mirroring it to the system
// clipboard when one is available.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/ebb/internal/logger"
)

// Manager is the editor's single yank register.
type Manager struct {
	mu       sync.Mutex
	system   bool
	register string
	linewise bool // last yank was whole lines

	readAll  func() (string, error)
	writeAll func(string) error
}

// NewManager creates a register. With useSystem the system clipboard is
// tried first and the register is the fallback.
func NewManager(useSystem bool) *Manager {
	m := &Manager{
		system:   useSystem && !clipboard.Unsupported,
		readAll:  clipboard.ReadAll,
		writeAll: clipboard.WriteAll,
	}
	if useSystem && clipboard.Unsupported {
		logger.Warnf("Clipboard: no system clipboard available, using internal register")
	}
	return m
}

// Copy stores text. linewise marks text that was yanked as whole lines so
// a paste can put it on its own line.
func (m *Manager) Copy(text string, linewise bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.register = text
	m.linewise = linewise
	if !m.system {
		return
	}
	if err := m.writeAll(text); err != nil {
		logger.Warnf("Clipboard: system write failed, kept internal copy: %v", err)
	}
}

// Paste returns the current text and whether it was yanked linewise. The
// system clipboard wins when it holds something other than our last copy.
func (m *Manager) Paste() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.system {
		text, err := m.readAll()
		if err != nil {
			logger.Warnf("Clipboard: system read failed, using internal register: %v", err)
		} else if text != m.register {
			return text, false
		}
	}
	return m.register, m.linewise
}

// System reports whether the system clipboard is in use.
func (m *Manager) System() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.system
}
