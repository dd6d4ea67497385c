package providers

import (
	"context"
	"sync"
)

// Manager keeps track of the active provider. At most one provider is
// connected at a time.
type Manager struct {
	mu     sync.RWMutex
	active Provider
}

func NewManager() *Manager {
	return &Manager{}
}

// ActiveProvider returns nil when no provider is in use.
func (m *Manager) ActiveProvider() Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Use connects p and makes it the active provider, disconnecting the
// previous one. On failure the previous provider stays active.
func (m *Manager) Use(ctx context.Context, p Provider) error {
	if err := p.Connect(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	prev := m.active
	m.active = p
	m.mu.Unlock()

	if prev != nil && prev != p {
		prev.Disconnect()
	}
	return nil
}

func (m *Manager) Disconnect() {
	m.mu.Lock()
	prev := m.active
	m.active = nil
	m.mu.Unlock()

	if prev != nil {
		prev.Disconnect()
	}
}
