// Package credentials owns the bearer token for the current session. The
// token never leaves this package except through the HTTP adapter, which
// injects it into outgoing requests.
package credentials

import "sync"

// Store holds the opaque bearer token issued at login.
type Store interface {
	Token() string
	Set(token string)
	Clear()
}

// Memory is the session-scoped token store. The token lives only as long as
// the process; it is never part of the persisted state snapshot.
type Memory struct {
	mu    sync.RWMutex
	token string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Memory) Set(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}

func (m *Memory) Clear() {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
}
