package testutil

import (
	"context"
	"fmt"
	"sync"

	"stocks-simulator/session"
)

// MemSessions keeps sessions in a map. Tokens are the session ids.
type MemSessions struct {
	mu       sync.Mutex
	sessions map[string]session.Session
	next     int
}

func NewMemSessions() *MemSessions {
	return &MemSessions{sessions: map[string]session.Session{}}
}

func (m *MemSessions) Create(ctx context.Context, userID uint, flash string) (*session.Session, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	sess := session.Session{ID: fmt.Sprintf("sid-%d", m.next), UserID: userID, Flash: flash}
	m.sessions[sess.ID] = sess
	return &sess, sess.ID, nil
}

func (m *MemSessions) Load(ctx context.Context, token string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[token]
	if !ok {
		return nil, session.ErrNoSession
	}
	return &sess, nil
}

func (m *MemSessions) Save(ctx context.Context, sess *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sess.ID]; !ok {
		return session.ErrNoSession
	}
	m.sessions[sess.ID] = *sess
	return nil
}

func (m *MemSessions) Destroy(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports the number of live sessions.
func (m *MemSessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
