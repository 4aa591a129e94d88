package quotes

import "sync"

// Manager hands out one workflow per user so concurrent checkouts stay
// isolated while a single user's re-quotes race last-issued-wins.
type Manager struct {
	mu        sync.Mutex
	workflows map[string]*Workflow
	factory   func() *Workflow
}

// NewManager constructs a manager building workflows with the factory.
func NewManager(factory func() *Workflow) *Manager {
	if factory == nil {
		panic("quotes: nil workflow factory")
	}
	return &Manager{
		workflows: make(map[string]*Workflow),
		factory:   factory,
	}
}

// For returns the user's workflow, creating it on first use.
func (m *Manager) For(userID string) *Workflow {
	m.mu.Lock()
	defer m.mu.Unlock()

	wf, ok := m.workflows[userID]
	if !ok {
		wf = m.factory()
		m.workflows[userID] = wf
	}
	return wf
}

// Drop forgets the user's workflow, typically after a confirmed checkout.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.workflows, userID)
}
