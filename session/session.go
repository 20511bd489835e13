// Package session holds the server-side session table. The client only
// ever sees an opaque token; identity is resolved on the server for every
// protected request.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Identity is the authenticated principal bound to a session token.
type Identity struct {
	UserID   int64
	Username string
}

type record struct {
	identity  Identity
	expiresAt time.Time
}

type Manager struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]record
}

func New(ttl time.Duration) *Manager {
	return &Manager{ttl: ttl, sessions: make(map[string]record)}
}

// Create issues a fresh opaque token bound to the given identity.
func (m *Manager) Create(userID int64, username string) string {
	token := uuid.NewString()
	m.mu.Lock()
	m.sessions[token] = record{
		identity:  Identity{UserID: userID, Username: username},
		expiresAt: time.Now().Add(m.ttl),
	}
	m.mu.Unlock()
	return token
}

// Validate resolves a token to its identity. Unknown and expired tokens
// both report false; expired entries are dropped on access.
func (m *Manager) Validate(token string) (Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.sessions[token]
	if !ok {
		return Identity{}, false
	}
	if time.Now().After(rec.expiresAt) {
		delete(m.sessions, token)
		return Identity{}, false
	}
	return rec.identity, true
}

// Destroy invalidates a token. Destroying an unknown or already-destroyed
// token is a no-op.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}
