package session

import (
	"context"
	"sync"
	"time"
)

// Manager holds the live sessions of the server, keyed by bearer token.
// It is the token provider of the shared API client: the token comes from
// the session carried by the request context.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	onEnd    []func(*Session)
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// OnEnd registers a hook run after a session is removed.
func (m *Manager) OnEnd(fn func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEnd = append(m.onEnd, fn)
}

func (m *Manager) Start(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
}

// Lookup returns the session for token; an expired session is ended.
func (m *Manager) Lookup(token string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNoSession
	}
	if s.Expired(m.now()) {
		m.End(token)
		return nil, ErrSessionExpired
	}
	return s, nil
}

func (m *Manager) End(token string) {
	m.mu.Lock()
	s, ok := m.sessions[token]
	delete(m.sessions, token)
	hooks := append([]func(*Session){}, m.onEnd...)
	m.mu.Unlock()

	if !ok {
		return
	}
	for _, fn := range hooks {
		fn(s)
	}
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) Token(ctx context.Context) string {
	if s := FromContext(ctx); s != nil {
		return s.Token
	}
	return ""
}

// Expire ends the session of ctx after the backend answered 401.
func (m *Manager) Expire(ctx context.Context) {
	if s := FromContext(ctx); s != nil {
		m.End(s.Token)
	}
}
